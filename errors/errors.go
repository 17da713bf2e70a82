// Package errors provides error handling for typebridge.
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
//	if errors.Is(err, errors.ErrMissingTypeTag) {
//	    // handle missing type annotation
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

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the translation pass. A statement or type expression
// that trips one of these aborts the whole module: the alternative is a
// silently incomplete declaration file.
// Use with errors.Is() and wrap with errors.Wrap() to add statement context.
var (
	// ErrUnsupportedStatement indicates a top-level statement kind the
	// classifier does not recognize
	ErrUnsupportedStatement = New("unsupported top-level statement")

	// ErrUnsupportedType indicates an embedded type node of unrecognized kind
	ErrUnsupportedType = New("unsupported type expression")

	// ErrMissingTypeTag indicates a declaration with no type annotation and
	// no way to infer one
	ErrMissingTypeTag = New("declaration has no type annotation")

	// ErrBadRecordKey indicates a record type field key of unsupported kind
	ErrBadRecordKey = New("unsupported record field key")

	// ErrArity indicates a generic application with an unsupported number of
	// type arguments
	ErrArity = New("unsupported type argument count")
)

// IsFatal reports whether err is one of the translation sentinels that must
// abort the module pass.
func IsFatal(err error) bool {
	return err != nil && IsAny(err,
		ErrUnsupportedStatement,
		ErrUnsupportedType,
		ErrMissingTypeTag,
		ErrBadRecordKey,
		ErrArity,
	)
}

// WrapUnsupportedStatement wraps an unsupported-statement error with context
func WrapUnsupportedStatement(context string) error {
	return Wrap(ErrUnsupportedStatement, context)
}

// WrapMissingType wraps a missing-type error with the declaration name
func WrapMissingType(name string) error {
	return Wrapf(ErrMissingTypeTag, "declaration %q", name)
}
