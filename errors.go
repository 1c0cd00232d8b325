package octavo

import (
	"errors"
	"fmt"
)

// Sentinel errors for common composition failure conditions.
var (
	ErrNoFont       = errors.New("octavo: font has not been set")
	ErrNoPage       = errors.New("octavo: no page has been added")
	ErrClosed       = errors.New("octavo: document is closed")
	ErrInvalidParam = errors.New("octavo: invalid parameter")
	ErrUnsupported  = errors.New("octavo: unsupported operation")
)

// Error represents an error that occurred during a specific document operation.
// It wraps an underlying error and includes the operation name for context.
type Error struct {
	Op  string // operation name, e.g. "AddPage", "Cell"
	Err error  // underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("octavo.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("octavo.%s: unknown error", e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// opError creates a new Error wrapping the given error with operation context.
func opError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

// opErrorf creates a new Error with a formatted message.
func opErrorf(op, format string, args ...interface{}) *Error {
	return &Error{Op: op, Err: fmt.Errorf(format, args...)}
}
