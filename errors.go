package cloak

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnsupportedCarrier indicates the carrier bytes are not a supported
	// raster image or WAV/PCM layout.
	ErrUnsupportedCarrier = errors.New("unsupported carrier format")

	// ErrCapacityExceeded indicates the message plus frame overhead does not
	// fit in the carrier's embeddable bits.
	ErrCapacityExceeded = errors.New("message exceeds carrier capacity")

	// ErrInvalidInput indicates an empty message, an empty passphrase, or
	// message text that is not valid UTF-8.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRecoveryFailed indicates no message could be recovered from the
	// carrier. The cause (corrupt prefix, implausible length, failed
	// authentication) is deliberately not exposed.
	ErrRecoveryFailed = errors.New("could not recover message")
)

// Decode-side failures. Both collapse into ErrRecoveryFailed before leaving
// the package.
var (
	errCorruptFrame   = errors.New("corrupt frame")
	errAuthentication = errors.New("authentication failed")
)

// CarrierError represents a carrier that could not be decoded or is not
// supported.
type CarrierError struct {
	Err    error       // Underlying sentinel error (ErrUnsupportedCarrier)
	Kind   CarrierKind // Carrier kind that was attempted
	Format string      // Detected container format, if any
	Cause  error       // Original error from the format decoder
}

func (e *CarrierError) Error() string {
	msg := e.Err.Error()
	if e.Kind != "" {
		msg = fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	if e.Format != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Format)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *CarrierError) Unwrap() error {
	return e.Err
}

// CapacityError reports how far a message overshoots the carrier.
type CapacityError struct {
	Err       error // Underlying sentinel error (ErrCapacityExceeded)
	Capacity  int   // Usable message bytes
	Requested int   // Message bytes supplied
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %d bytes requested, %d available", e.Err.Error(), e.Requested, e.Capacity)
}

func (e *CapacityError) Unwrap() error {
	return e.Err
}

// InputError names the argument that was rejected.
type InputError struct {
	Err    error  // Underlying sentinel error (ErrInvalidInput)
	Field  string // Argument name (message, passphrase)
	Reason string // Why it was rejected
}

func (e *InputError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s %s", e.Err.Error(), e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Field)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// RecoveryError is returned by every decode-side failure. Its message is
// fixed so callers cannot tell a wrong passphrase from a damaged carrier.
type RecoveryError struct {
	Err   error // Underlying sentinel error (ErrRecoveryFailed)
	cause error
}

func (e *RecoveryError) Error() string {
	return e.Err.Error()
}

func (e *RecoveryError) Unwrap() error {
	return e.Err
}

// newCarrierError creates a CarrierError for undecodable or unsupported carriers.
func newCarrierError(kind CarrierKind, format string, cause error) error {
	return &CarrierError{
		Err:    ErrUnsupportedCarrier,
		Kind:   kind,
		Format: format,
		Cause:  cause,
	}
}

// newCapacityError creates a CapacityError for oversized messages.
func newCapacityError(capacity, requested int) error {
	return &CapacityError{
		Err:       ErrCapacityExceeded,
		Capacity:  capacity,
		Requested: requested,
	}
}

// newInputError creates an InputError for a rejected argument.
func newInputError(field, reason string) error {
	return &InputError{
		Err:    ErrInvalidInput,
		Field:  field,
		Reason: reason,
	}
}

// newRecoveryError hides cause behind ErrRecoveryFailed.
func newRecoveryError(cause error) error {
	return &RecoveryError{
		Err:   ErrRecoveryFailed,
		cause: cause,
	}
}
