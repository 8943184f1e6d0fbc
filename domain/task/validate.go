package task

import (
	"strings"
	"unicode/utf8"

	"github.com/example/task-management/apperr"
)

const (
	// MaxTitleLength is the longest allowed task title.
	MaxTitleLength = 200
	// MaxDescriptionLength is the longest allowed task description.
	MaxDescriptionLength = 2000
)

// ValidateCreate checks the field constraints for creating a task. All
// violations are collected into a single field-keyed ValidationError
// rather than failing on the first.
func ValidateCreate(title string, priority Priority) error {
	fields := map[string][]string{}

	if strings.TrimSpace(title) == "" {
		fields["Title"] = []string{"Title is required."}
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		fields["Title"] = []string{"Title cannot exceed 200 characters."}
	}

	if !priority.IsValid() {
		fields["Priority"] = []string{"Invalid priority value."}
	}

	if len(fields) > 0 {
		return apperr.NewFieldValidation("Task validation failed.", fields)
	}
	return nil
}
