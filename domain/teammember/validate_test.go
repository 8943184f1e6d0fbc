package teammember

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/task-management/apperr"
)

func TestValidateCreate(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		if err := ValidateCreate("Ada Lovelace", "ada@example.com"); err != nil {
			t.Fatalf("ValidateCreate() error = %v", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		err := ValidateCreate("", "ada@example.com")
		assertFieldError(t, err, "Name")
	})

	t.Run("name too long", func(t *testing.T) {
		err := ValidateCreate(strings.Repeat("a", 101), "ada@example.com")
		assertFieldError(t, err, "Name")
	})

	t.Run("name length counts characters not bytes", func(t *testing.T) {
		if err := ValidateCreate(strings.Repeat("漢", 100), "ada@example.com"); err != nil {
			t.Fatalf("ValidateCreate() error = %v", err)
		}
		err := ValidateCreate(strings.Repeat("漢", 101), "ada@example.com")
		assertFieldError(t, err, "Name")
	})

	t.Run("empty email", func(t *testing.T) {
		err := ValidateCreate("Ada Lovelace", "")
		assertFieldError(t, err, "Email")
	})

	t.Run("malformed email", func(t *testing.T) {
		err := ValidateCreate("Ada Lovelace", "not-an-email")
		assertFieldError(t, err, "Email")
	})

	t.Run("email too long", func(t *testing.T) {
		err := ValidateCreate("Ada Lovelace", strings.Repeat("a", 250)+"@example.com")
		assertFieldError(t, err, "Email")
	})

	t.Run("collects all violations", func(t *testing.T) {
		err := ValidateCreate("", "nope")

		var validationErr *apperr.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(validationErr.Fields) != 2 {
			t.Errorf("expected 2 field errors, got %v", validationErr.Fields)
		}
	})
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@a.com", "ada.lovelace@example.co.uk", "x+tag@example.org"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{"", "plain", "@example.com", "a b@example.com", "Ada <ada@example.com>"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("expected %q to be invalid", email)
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
