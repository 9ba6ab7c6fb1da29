package domain

// ErrorCode classifies domain failures so the transport layer can translate
// them into HTTP statuses without inspecting message text.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "validation_failed"
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeNotFound     ErrorCode = "not_found"
	CodeConflict     ErrorCode = "conflict"
	CodeRateLimited  ErrorCode = "rate_limited"
	CodeInternal     ErrorCode = "internal"
)

// Error is a domain error with a stable code and a user-visible message.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError builds a domain error. Messages are user-visible; keep them exact
// where the UI contract fixes the wording.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}
