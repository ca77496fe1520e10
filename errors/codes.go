package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input rejection
const (
	// ErrCodeInvalidAudio indicates the selected file is not an audio file.
	ErrCodeInvalidAudio ErrorCode = "INVALID_AUDIO"
	// ErrCodeInvalidInput indicates a malformed request field or intent.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Transport failures (retryable by the user)
const (
	// ErrCodeConnectionFailed indicates the backend could not be reached.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeResponseTooLarge indicates the connection was reset mid-response,
	// typically because the payload exceeded what the backend would return.
	ErrCodeResponseTooLarge ErrorCode = "RESPONSE_TOO_LARGE"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeServiceUnavailable indicates the backend reported it cannot serve.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// Backend response failures
const (
	// ErrCodeMalformedResponse indicates the backend answered with JSON that
	// does not match the expected result shape.
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	// ErrCodeTranscriptionFailed indicates the transcription service failed.
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
	// ErrCodeTranslationFailed indicates the translation service failed.
	ErrCodeTranslationFailed ErrorCode = "TRANSLATION_FAILED"
)

// Session/state errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeConflict indicates a conflict with the current session state,
	// such as a second transcription while one is in flight.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed:    true,
	ErrCodeResponseTooLarge:    true,
	ErrCodeTimeout:             true,
	ErrCodeServiceUnavailable:  true,
	ErrCodeTranscriptionFailed: true,
	ErrCodeTranslationFailed:   true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
