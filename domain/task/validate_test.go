package task

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/task-management/apperr"
)

func TestValidateCreate(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		if err := ValidateCreate("Write report", PriorityMedium); err != nil {
			t.Fatalf("ValidateCreate() error = %v", err)
		}
	})

	t.Run("empty title", func(t *testing.T) {
		err := ValidateCreate("", PriorityMedium)
		assertFieldError(t, err, "Title")
	})

	t.Run("whitespace title", func(t *testing.T) {
		err := ValidateCreate("   ", PriorityHigh)
		assertFieldError(t, err, "Title")
	})

	t.Run("title too long", func(t *testing.T) {
		err := ValidateCreate(strings.Repeat("a", 201), PriorityLow)
		assertFieldError(t, err, "Title")
	})

	t.Run("title at limit", func(t *testing.T) {
		if err := ValidateCreate(strings.Repeat("a", 200), PriorityLow); err != nil {
			t.Fatalf("ValidateCreate() error = %v", err)
		}
	})

	t.Run("title length counts characters not bytes", func(t *testing.T) {
		if err := ValidateCreate(strings.Repeat("漢", 200), PriorityLow); err != nil {
			t.Fatalf("ValidateCreate() error = %v", err)
		}
		err := ValidateCreate(strings.Repeat("漢", 201), PriorityLow)
		assertFieldError(t, err, "Title")
	})

	t.Run("invalid priority", func(t *testing.T) {
		err := ValidateCreate("Write report", Priority(42))
		assertFieldError(t, err, "Priority")
	})

	t.Run("collects all violations", func(t *testing.T) {
		err := ValidateCreate("", Priority(-1))

		var validationErr *apperr.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(validationErr.Fields) != 2 {
			t.Errorf("expected 2 field errors, got %d: %v", len(validationErr.Fields), validationErr.Fields)
		}
		if _, ok := validationErr.Fields["Title"]; !ok {
			t.Error("expected Title field error")
		}
		if _, ok := validationErr.Fields["Priority"]; !ok {
			t.Error("expected Priority field error")
		}
	})
}

func TestStatusIsValid(t *testing.T) {
	for _, status := range []Status{StatusTodo, StatusInProgress, StatusReview, StatusCompleted, StatusBlocked} {
		if !status.IsValid() {
			t.Errorf("expected %v to be valid", status)
		}
	}
	for _, status := range []Status{Status(-1), Status(5), Status(100)} {
		if status.IsValid() {
			t.Errorf("expected %v to be invalid", status)
		}
	}
}

func TestPriorityIsValid(t *testing.T) {
	for _, priority := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical} {
		if !priority.IsValid() {
			t.Errorf("expected %v to be valid", priority)
		}
	}
	for _, priority := range []Priority{Priority(-1), Priority(4)} {
		if priority.IsValid() {
			t.Errorf("expected %v to be invalid", priority)
		}
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusTodo:       "Todo",
		StatusInProgress: "InProgress",
		StatusReview:     "Review",
		StatusCompleted:  "Completed",
		StatusBlocked:    "Blocked",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()

	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var validationErr *apperr.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if messages, ok := validationErr.Fields[field]; !ok || len(messages) == 0 {
		t.Errorf("expected error for field %q, got %v", field, validationErr.Fields)
	}
}
