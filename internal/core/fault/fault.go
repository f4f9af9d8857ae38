// Package fault defines the failure taxonomy of the engine. Every failure a
// command can return is one of four kinds, each carrying a short
// human-readable cause. No kind is fatal: the engine stays usable after any
// failed command.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure.
type Kind string

const (
	// KindValidation marks malformed, empty or out-of-range input,
	// caught before any I/O.
	KindValidation Kind = "validation"
	// KindNotAuthenticated marks a command issued with no active identity.
	KindNotAuthenticated Kind = "not_authenticated"
	// KindNotFound marks a reference to a task id absent from the last
	// known mirror, or a store-reported missing document.
	KindNotFound Kind = "not_found"
	// KindStoreUnavailable marks a store call that failed at the
	// transport layer, with the underlying message attached.
	KindStoreUnavailable Kind = "store_unavailable"
)

// Fault is a classified engine failure.
type Fault struct {
	Kind  Kind
	Msg   string
	Cause error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %v", f.Msg, f.Cause)
	}
	return f.Msg
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (f *Fault) Unwrap() error {
	return f.Cause
}

// Validation builds a validation fault.
func Validation(format string, args ...any) *Fault {
	return &Fault{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotAuthenticated builds a not-authenticated fault.
func NotAuthenticated(msg string) *Fault {
	return &Fault{Kind: KindNotAuthenticated, Msg: msg}
}

// NotFound builds a not-found fault.
func NotFound(format string, args ...any) *Fault {
	return &Fault{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// StoreUnavailable builds a store-unavailable fault wrapping the
// transport-level cause.
func StoreUnavailable(msg string, cause error) *Fault {
	return &Fault{Kind: KindStoreUnavailable, Msg: msg, Cause: cause}
}

// KindOf returns the kind of err, or "" when err carries no fault.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// IsValidation reports whether err is a validation fault.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotAuthenticated reports whether err is a not-authenticated fault.
func IsNotAuthenticated(err error) bool { return KindOf(err) == KindNotAuthenticated }

// IsNotFound reports whether err is a not-found fault.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsStoreUnavailable reports whether err is a store-unavailable fault.
func IsStoreUnavailable(err error) bool { return KindOf(err) == KindStoreUnavailable }
