package errortypes

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		kind Kind
	}{
		{Validation("name is required"), KindValidation},
		{NotFound("project %d not found", 3), KindNotFound},
		{UnknownOperation("rewrite_script"), KindUnknownOperation},
		{Operation(errors.New("conn refused"), "backend request failed"), KindOperation},
		{errors.New("plain"), KindOperation},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.kind {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.kind)
		}
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("calling backend: %w", NotFound("project 3 not found"))
	if !IsNotFound(err) {
		t.Errorf("wrapped not-found lost its kind: %v", err)
	}
	if Message(err) != "project 3 not found" {
		t.Errorf("Message = %q", Message(err))
	}
}

func TestMessageHidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:3306: connection refused")
	err := Operation(cause, "backend request failed")

	// The boundary-safe message omits the cause; Error() keeps it for logs.
	if Message(err) != "backend request failed" {
		t.Errorf("Message = %q", Message(err))
	}
	if err.Error() == "backend request failed" {
		t.Error("Error() should include the cause for logging")
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
}
