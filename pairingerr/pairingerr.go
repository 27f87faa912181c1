// Package pairingerr provides structured error kinds for the pairing
// cryptographic core (SRP, TLV8, OPACK2). Every error the SRP client,
// the OPACK2 encoder and the bigint helpers return wraps one of the
// sentinels below, so callers can distinguish error categories with
// errors.Is instead of matching on message text. srphash.DeriveHKDF
// returns the HKDF reader's error unwrapped.
package pairingerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds, one per error category named in the core's design.
var (
	// ErrSRPValidation covers empty identity, wrong key size, B or A
	// outside their required ranges, and missing prerequisites.
	ErrSRPValidation = errors.New("srp: validation error")

	// ErrSRPExhausted is returned when ephemeral key generation
	// rejected 100 candidates in a row.
	ErrSRPExhausted = errors.New("srp: key generation exhausted")

	// ErrDisposed is returned by any operation on a disposed client.
	ErrDisposed = errors.New("srp: client disposed")

	// ErrOPACK2Encoding covers unsupported value types and values
	// exceeding OPACK2's representable range.
	ErrOPACK2Encoding = errors.New("opack2: encoding error")

	// ErrOverflow is returned when a value does not fit into a
	// requested fixed width.
	ErrOverflow = errors.New("bigint: overflow")
)

// Error is a structured error carrying a sentinel Kind, a message, and
// an optional wrapped cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the sentinel kind, so errors.Is(err, ErrSRPValidation)
// works without inspecting Message.
func (e *Error) Unwrap() error {
	return e.Kind
}

// New creates an Error of the given kind with a message.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind, wrapping cause.
func Wrap(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}
