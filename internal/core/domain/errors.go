// Package domain defines the core domain errors for rudis.
package domain

import (
	"errors"
	"fmt"
)

// DomainError is a command-level failure with a stable code and a fixed
// client-facing message.
//
// The Message is what a client sees on the wire; Code and Details exist for
// logs and metrics only.
type DomainError struct {
	Code    string // Error code (e.g., "RD-KEY-4040")
	Message string // Reply text sent to the client
	Details string // Optional additional details, never sent to clients
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ReplyText returns the client-facing text for err.
// Errors that are not DomainErrors are reported as internal errors so that
// nothing about the process leaks onto the wire.
func ReplyText(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return ErrInternal.Message
}

// ============================================================================
// Command errors (CMD)
// ============================================================================

var (
	// ErrMalformedCommand indicates a wrong argument count or an argument
	// that does not parse as the expected number.
	ErrMalformedCommand = NewDomainError("RD-CMD-4000", "malformed command")

	// ErrUnknownCommand indicates the verb matched no handler.
	ErrUnknownCommand = NewDomainError("RD-CMD-4040", "unrecognized command")
)

// ============================================================================
// Lookup errors (KEY)
// ============================================================================

var (
	// ErrKeyNotFound indicates the key is absent from the addressed store.
	ErrKeyNotFound = NewDomainError("RD-KEY-4040", "key not found")

	// ErrFieldNotFound indicates the hash exists but the field does not.
	ErrFieldNotFound = NewDomainError("RD-KEY-4041", "field not found")

	// ErrMemberNotFound indicates the sorted set exists but the member does not.
	ErrMemberNotFound = NewDomainError("RD-KEY-4042", "member not found")

	// ErrListEmpty indicates a pop from a list that exists but holds nothing.
	ErrListEmpty = NewDomainError("RD-KEY-4043", "list is empty")
)

// ============================================================================
// Bitmap errors (BIT)
// ============================================================================

// ErrOffsetOutOfRange indicates a bit offset outside the bitmap capacity.
var ErrOffsetOutOfRange = NewDomainError("RD-BIT-4160", "offset out of range")

// ============================================================================
// Server errors (RATE, SYS)
// ============================================================================

var (
	// ErrRateLimited indicates the peer exceeded its command rate.
	ErrRateLimited = NewDomainError("RD-RATE-4290", "rate limit exceeded")

	// ErrNotReady is reported by the admin /ready probe before the text
	// server accepts connections.
	ErrNotReady = NewDomainError("RD-SYS-5030", "server not ready")

	// ErrInternal is the reply for any failure that is not a DomainError.
	ErrInternal = NewDomainError("RD-SYS-5000", "internal error")
)
