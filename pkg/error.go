package pkg

// Sentinel errors for the strux module and its subpackages.
// These errors can be tested using errors.Is for reliable error checking.

import (
	"fmt"
	"strings"
)

// Error represents a chain of errors, innermost first.
type Error []error

// ErrEmptyInput is returned when the input source is empty or contains only
// whitespace. The converter treats this as a fatal usage error.
var ErrEmptyInput = MakeErrorf("input is empty")

// ErrReadInput is returned when reading the input source fails.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrParse is returned when parsing input fails.
//
// This error should be wrapped with the underlying syntax error
// to preserve the error chain and position information.
var ErrParse = MakeErrorf("parse error")

// ErrWriteOutput is returned when writing the output document fails.
var ErrWriteOutput = MakeErrorf("failed to write output")

// ErrJSONMarshal is returned when JSON encoding of a document fails.
var ErrJSONMarshal = MakeErrorf("JSON marshal error")

// ErrYAMLMarshal is returned when YAML encoding of a document fails.
var ErrYAMLMarshal = MakeErrorf("YAML marshal error")

// ErrInvalidFormat is returned when an unsupported output format is
// specified. It should be wrapped with the offending format name.
var ErrInvalidFormat = MakeErrorf("invalid format")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	part := make([]string, 0, len(e))

	for _, err := range e {
		part = append(part, err.Error())
	}

	return strings.Join(part, ": ")
}

// Wrap appends one or more errors to the receiver and returns the result.
func (e Error) Wrap(err ...error) Error {
	return append(e, err...)
}

// Wrapf appends a formatted error to the receiver and returns the result.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(e, fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
