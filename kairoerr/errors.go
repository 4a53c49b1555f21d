// Package kairoerr defines the error taxonomy shared across the rendering
// core. Failures are returned, wrapped, and inspected with errors.Is/As —
// never raised as panics or exceptions — so callers on the frame path can
// decide locally whether a failure is recoverable.
package kairoerr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch on category without
// string-matching messages.
type Kind int

const (
	// Unknown is the zero value and should not be constructed directly.
	Unknown Kind = iota

	// ResourceCreation covers GPU resource allocation failures: buffers,
	// textures, samplers, pipeline state objects.
	ResourceCreation

	// Shader covers shader compilation or reflection failures.
	Shader

	// Device covers device loss, adapter enumeration, and context errors.
	Device

	// SwapChain covers presentation and swap-chain resize failures.
	SwapChain

	// AssetNotFound is returned when a requested asset path/type/variant has
	// no registered loader or does not exist on disk.
	AssetNotFound

	// AssetLoadFailed is returned when a loader ran but could not produce a
	// usable asset (parse error, decode error, I/O failure).
	AssetLoadFailed

	// RingBufferOOM is returned when a transient buffer allocation request
	// exceeds the ring's remaining capacity for the current frame.
	RingBufferOOM

	// AtlasFull is returned when a glyph cannot be packed into any atlas
	// page at the configured maximum page count.
	AtlasFull

	// InvalidArgument covers caller misuse: malformed descriptors, bad
	// ranges, nil handles.
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case ResourceCreation:
		return "resource_creation"
	case Shader:
		return "shader"
	case Device:
		return "device"
	case SwapChain:
		return "swap_chain"
	case AssetNotFound:
		return "asset_not_found"
	case AssetLoadFailed:
		return "asset_load_failed"
	case RingBufferOOM:
		return "ring_buffer_oom"
	case AtlasFull:
		return "atlas_full"
	case InvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// Error is the concrete error type produced by every package in the engine.
// It carries a Kind for programmatic branching, a human-readable Message,
// and an optional wrapped Cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that wraps cause. If cause is nil, Wrap returns nil,
// matching the pattern of wrapping at a call boundary only on failure.
func Wrap(kind Kind, cause error, message string) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(kind Kind, cause error, format string, args ...any) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is a *Error of the given Kind, unwrapping as
// needed. It lets callers write kairoerr.Is(err, kairoerr.AssetNotFound)
// instead of a type assertion followed by a field comparison.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// KindOf returns the Kind of err if it is (or wraps) a *Error, and false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return Unknown, false
	}
	return e.Kind, true
}
