package errors

import "fmt"

// ErrorCode represents a teledrop error code.
type ErrorCode string

const (
	ErrUnauthorized   ErrorCode = "UNAUTHORIZED"    // non-admin attempted an admin-only mutation
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // validation failure, prior state untouched
	ErrNotFound       ErrorCode = "NOT_FOUND"       // unknown token or delete target
	ErrUpstream       ErrorCode = "UPSTREAM"        // platform call failure
	ErrInternal       ErrorCode = "INTERNAL"
)

// DropError represents a structured error with code, message, and details.
type DropError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *DropError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUnauthorized creates an error for non-admin use of admin-only operations.
func NewUnauthorized() *DropError {
	return &DropError{
		Code:    ErrUnauthorized,
		Message: "you are not authorized to use this command",
	}
}

// NewInvalidRequest creates an error for invalid parameters or malformed input.
func NewInvalidRequest(msg string) *DropError {
	return &DropError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewNotFound creates an error for when a token cannot be resolved.
func NewNotFound(token string) *DropError {
	return &DropError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("link not found: %s", token),
		Details: map[string]any{"token": token},
	}
}

// NewUpstream wraps a platform call failure.
func NewUpstream(op string, err error) *DropError {
	msg := op
	if err != nil {
		msg = fmt.Sprintf("%s: %v", op, err)
	}
	return &DropError{
		Code:    ErrUpstream,
		Message: msg,
		Details: map[string]any{"op": op},
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *DropError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &DropError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is a DropError with the given code.
func Is(err error, code ErrorCode) bool {
	if dErr, ok := err.(*DropError); ok {
		return dErr.Code == code
	}
	return false
}
