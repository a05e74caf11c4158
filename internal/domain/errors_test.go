package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "error without wrapped error",
			appErr:   ErrNoFaceDetected,
			expected: "No face detected",
		},
		{
			name: "error with wrapped error",
			appErr: &AppError{
				Code:       "TEST_ERROR",
				Message:    "Test message",
				StatusCode: 500,
				Err:        errors.New("underlying error"),
			},
			expected: "Test message: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	appErr := &AppError{
		Code:       "TEST",
		Message:    "test",
		StatusCode: 500,
		Err:        underlying,
	}

	if got := appErr.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}

	if got := ErrFetchFailed.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestAppError_WithError(t *testing.T) {
	underlying := errors.New("connection refused")
	newErr := ErrFetchFailed.WithError(underlying)

	if newErr.Code != ErrFetchFailed.Code {
		t.Errorf("Code = %v, want %v", newErr.Code, ErrFetchFailed.Code)
	}

	if newErr.StatusCode != ErrFetchFailed.StatusCode {
		t.Errorf("StatusCode = %v, want %v", newErr.StatusCode, ErrFetchFailed.StatusCode)
	}

	if !errors.Is(newErr, underlying) {
		t.Errorf("errors.Is should return true for wrapped error")
	}

	if ErrFetchFailed.Err != nil {
		t.Errorf("sentinel must not be mutated by WithError")
	}
}

func TestAppError_Is(t *testing.T) {
	wrapped := fmt.Errorf("search: %w", ErrNoFaceDetected.WithError(errors.New("0 faces")))

	if !errors.Is(wrapped, ErrNoFaceDetected) {
		t.Errorf("errors.Is should match sentinel by code")
	}

	if errors.Is(wrapped, ErrFetchFailed) {
		t.Errorf("errors.Is should not match a different code")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) || appErr.StatusCode != 400 {
		t.Errorf("errors.As should expose the 400 AppError, got %v", appErr)
	}
}
