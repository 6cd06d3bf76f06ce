package domain

import (
	"errors"
	"fmt"
)

// Application error codes. The handler layer maps these to HTTP status
// codes for the ledger endpoints; the reminder engine folds them into
// result messages instead.
const (
	ECONFLICT = "conflict"  // duplicate or stale write
	EINTERNAL = "internal"  // unexpected failure, details hidden from users
	EINVALID  = "invalid"   // bad input
	ENOTFOUND = "not_found" // missing record
)

// Error is an application error with a machine-readable code, a message
// safe to show to users, and the operation where it occurred.
type Error struct {
	Code    string
	Message string

	// Op identifies the failing operation, e.g. "reminder.send".
	// Used in logs, never shown to users.
	Op string

	// Err is the wrapped cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the code from an error, defaulting to EINTERNAL for
// non-application errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage extracts a user-facing message. Internal and unknown
// errors get a generic message so details are not leaked.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != EINTERNAL {
		return e.Message
	}
	return "An internal error occurred. Please try again later."
}

// Errorf creates a new application error with a formatted message.
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError attaches a code and operation to an existing error,
// preserving the cause for logging. Returns nil for a nil err.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
