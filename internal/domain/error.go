package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
// These classify failures for the batch driver and the HTTP layer.
const (
	EINTERNAL  = "internal"  // statement could not be prepared or executed
	EINVALID   = "invalid"   // bad input
	ENOTFOUND  = "not_found" // row or resource missing
	EPROC      = "procedure" // stored procedure returned a non-empty error string
	EPROTOCOL  = "protocol"  // stored procedure returned NULL in its error output
	ETRANSPORT = "transport" // mail transport rejected the message
)

// Error represents an application error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	// Code is a machine-readable error code (e.g., EPROC, ETRANSPORT).
	Code string

	// Message is a human-readable error message.
	Message string

	// Op is the operation where the error occurred (e.g., "mysql.log_email").
	Op string

	// Err is the underlying error, if any. Used for error wrapping.
	Err error
}

// Error implements the error interface.
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

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the error code from an error.
// Returns EINTERNAL for non-nil, non-domain errors.
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

// ErrorMessage extracts the message from an error.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}

	return err.Error()
}
