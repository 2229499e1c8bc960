package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create reservation: %w", NotFound("user", 7))
	if !IsNotFound(wrapped) {
		t.Fatalf("expected wrapped error to be NotFound")
	}
	if IsValidation(wrapped) || IsAccessDenied(wrapped) {
		t.Fatalf("expected NotFound to match a single kind")
	}
	if wrapped.Error() != "create reservation: user #7 not found" {
		t.Fatalf("unexpected message %q", wrapped.Error())
	}
}

func TestValidationMessage(t *testing.T) {
	if got := Validation("price", "invalid decimal").Error(); got != "price: invalid decimal" {
		t.Fatalf("expected field-prefixed message, got %q", got)
	}
	if got := Validation("", "Passwords must match.").Error(); got != "Passwords must match." {
		t.Fatalf("expected bare message, got %q", got)
	}
}

func TestAccessDeniedCarriesAuthentication(t *testing.T) {
	err := AccessDenied(false, "authentication required")
	var denied *AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected AccessDeniedError")
	}
	if denied.Authenticated {
		t.Fatalf("expected anonymous denial")
	}
}
