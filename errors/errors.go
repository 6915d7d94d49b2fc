// Package errors provides error handling for mediagraph.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle not found
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors for the object graph core.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNotFound indicates a single-item fetch or query matched nothing
	ErrNotFound = New("not found")

	// ErrUnknownVariant indicates a response node's dispatch key has no
	// registered variant. Listing scans treat this as "skip"; callers
	// expecting a single known shape treat it as fatal for that item.
	ErrUnknownVariant = New("unknown variant")

	// ErrUnsupported indicates an operation was invoked on an object
	// lacking the required capability or state (reload on an object not
	// built from a URL, stream URL for a non-streamable variant, ...)
	ErrUnsupported = New("unsupported operation")

	// ErrBadRequest indicates malformed caller input
	ErrBadRequest = New("bad request")

	// ErrTransport indicates the server returned a non-success status
	ErrTransport = New("transport failure")
)

// IsNotFound checks if an error is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsUnknownVariant checks if an error is or wraps ErrUnknownVariant.
func IsUnknownVariant(err error) bool {
	return err != nil && Is(err, ErrUnknownVariant)
}

// IsUnsupported checks if an error is or wraps ErrUnsupported.
func IsUnsupported(err error) bool {
	return err != nil && Is(err, ErrUnsupported)
}

// IsBadRequest checks if an error is or wraps ErrBadRequest.
func IsBadRequest(err error) bool {
	return err != nil && Is(err, ErrBadRequest)
}

// NewNotFoundf creates a not-found error with a formatted message.
func NewNotFoundf(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewBadRequestf creates a bad-request error with a formatted message.
func NewBadRequestf(format string, args ...interface{}) error {
	return Wrap(ErrBadRequest, Newf(format, args...).Error())
}

// NewUnsupportedf creates an unsupported-operation error with a formatted message.
func NewUnsupportedf(format string, args ...interface{}) error {
	return Wrap(ErrUnsupported, Newf(format, args...).Error())
}
