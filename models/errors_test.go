package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	sentinel := NewAppError(ErrCodeConflict, "busy", nil)
	returned := NewAppError(ErrCodeConflict, "a submission is already in progress", errors.New("cause"))
	wrapped := fmt.Errorf("api: %w", returned)

	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is should match an AppError with the same code")
	}
	if errors.Is(wrapped, NewAppError(ErrCodeValidation, "busy", nil)) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		err  *AppError
		want string
	}{
		{NewAppError(ErrCodeValidation, "full name is required", nil), "VALIDATION_FAILED: full name is required"},
		{NewAppError(ErrCodeStorage, "write failed", errors.New("disk full")), "STORAGE_FAILED: write failed: disk full"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestAsAppError(t *testing.T) {
	if AsAppError(nil) != nil {
		t.Error("AsAppError(nil) should be nil")
	}

	inner := NewAppError(ErrCodeSubmitFailed, "failed to send: Error 500", nil)
	if got := AsAppError(fmt.Errorf("wrap: %w", inner)); got != inner {
		t.Errorf("AsAppError = %v, want the wrapped AppError", got)
	}

	plain := errors.New("boom")
	got := AsAppError(plain)
	if got.Code != ErrCodeInternal || got.Message != "boom" || !errors.Is(got, plain) {
		t.Errorf("AsAppError(plain) = %+v, want INTERNAL_ERROR wrapping the cause", got)
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("store: %w", NewAppError(ErrCodeStorage, "write failed", nil))
	if !HasCode(err, ErrCodeStorage) {
		t.Error("HasCode(STORAGE_FAILED) = false, want true")
	}
	if HasCode(err, ErrCodeConflict) {
		t.Error("HasCode(CONFLICT) = true, want false")
	}
	if HasCode(errors.New("plain"), ErrCodeInternal) {
		t.Error("HasCode on a plain error = true, want false")
	}
}
