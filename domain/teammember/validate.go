package teammember

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/example/task-management/apperr"
)

const (
	// MaxNameLength is the longest allowed team member name.
	MaxNameLength = 100
	// MaxEmailLength is the longest allowed email address.
	MaxEmailLength = 255
	// MaxRoleLength is the longest allowed role string.
	MaxRoleLength = 100
)

// ValidateCreate checks the field constraints for creating a team member.
// All violations are collected into a single field-keyed ValidationError.
func ValidateCreate(name, email string) error {
	fields := map[string][]string{}

	if strings.TrimSpace(name) == "" {
		fields["Name"] = []string{"Name is required."}
	} else if utf8.RuneCountInString(name) > MaxNameLength {
		fields["Name"] = []string{"Name cannot exceed 100 characters."}
	}

	if strings.TrimSpace(email) == "" {
		fields["Email"] = []string{"Email is required."}
	} else if utf8.RuneCountInString(email) > MaxEmailLength || !IsValidEmail(email) {
		fields["Email"] = []string{"Email format is invalid."}
	}

	if len(fields) > 0 {
		return apperr.NewFieldValidation("Team member validation failed.", fields)
	}
	return nil
}

// IsValidEmail reports whether the string is a syntactically valid bare
// address. Display names ("A <a@a.com>") are rejected.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}
