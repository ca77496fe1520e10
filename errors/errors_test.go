package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := TranscriptionFailed(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("HTTPStatus = %d, want %d", err.HTTPStatus, http.StatusBadGateway)
	}
	if !err.Retryable {
		t.Error("transcription failures should be retryable")
	}
}

func TestRetryableCodes(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ErrCodeConnectionFailed, true},
		{ErrCodeResponseTooLarge, true},
		{ErrCodeTimeout, true},
		{ErrCodeInvalidAudio, false},
		{ErrCodeMalformedResponse, false},
		{ErrCodeConflict, false},
	}

	for _, tt := range tests {
		if got := IsRetryableCode(tt.code); got != tt.want {
			t.Errorf("IsRetryableCode(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestInvalidAudioDetails(t *testing.T) {
	err := InvalidAudio("text/plain")
	if err.Details["content_type"] != "text/plain" {
		t.Errorf("details = %v, want content_type recorded", err.Details)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("HTTPStatus = %d, want 400", err.HTTPStatus)
	}
}

func TestToResponse(t *testing.T) {
	err := NotFound("session", "abc")
	resp := err.ToResponse()

	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("code = %s, want %s", resp.Error.Code, ErrCodeNotFound)
	}
	if resp.Error.Details["id"] != "abc" {
		t.Errorf("details = %v, want id abc", resp.Error.Details)
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Conflict("transcription already in progress"))

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected to unwrap an AppError")
	}
	if appErr.Code != ErrCodeConflict {
		t.Errorf("code = %s, want %s", appErr.Code, ErrCodeConflict)
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("plain error should not convert")
	}
}
