// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

// Package pqerr defines the error taxonomy shared by every component of the
// engine: schema parsing, value conversion, the Arrow bridge, the reader and
// the writer all surface errors through the same Kind enum so a host binding
// can map them to its own exception hierarchy without inspecting messages.
package pqerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by where in the pipeline it originated, not by
// the Go type that carries it.
type Kind int

const (
	// Schema covers structural or shape violations in a parsed schema:
	// duplicate field names, unknown primitive names, an empty top-level
	// struct, or an out-of-range decimal precision/scale.
	Schema Kind = iota
	// Conversion covers a host value that cannot be coerced to its target
	// schema leaf: invalid UTF-8, an unparseable date/timestamp, decimal
	// overflow, or a malformed UUID.
	Conversion
	// Nullability covers a null value written against a non-nullable leaf.
	Nullability
	// IO covers errors from the underlying file or stream.
	IO
	// Codec covers errors surfaced by the embedded Parquet/Arrow codec:
	// corrupt files, unexpected EOF, unsupported features.
	Codec
	// Parameter covers caller misuse: a non-positive batch size, an
	// unrecognized result shape, an invalid logger.
	Parameter
	// Range covers integer overflow on a coercion.
	Range
)

func (k Kind) String() string {
	switch k {
	case Schema:
		return "schema"
	case Conversion:
		return "conversion"
	case Nullability:
		return "nullability"
	case IO:
		return "io"
	case Codec:
		return "codec"
	case Parameter:
		return "parameter"
	case Range:
		return "range"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every package in this
// module. FieldPath and Op are best-effort context: both may be empty.
type Error struct {
	Kind      Kind
	Op        string // the operation in progress, e.g. "write_rows"
	FieldPath string // dotted field path, e.g. "address.zip"
	Value     string // offending value's textual form, when safe to print
	Err       error  // wrapped cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg += " error in " + e.Op
	} else {
		msg += " error"
	}
	if e.FieldPath != "" {
		msg += fmt.Sprintf(" (field %q)", e.FieldPath)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(": value %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, pqerr.New(pqerr.Nullability, "", "")) style checks,
// or more idiomatically use Kind-comparison via As.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New constructs an *Error with no wrapped cause.
func New(kind Kind, op, fieldPath string) *Error {
	return &Error{Kind: kind, Op: op, FieldPath: fieldPath}
}

// Wrap constructs an *Error wrapping err.
func Wrap(kind Kind, op, fieldPath string, err error) *Error {
	return &Error{Kind: kind, Op: op, FieldPath: fieldPath, Err: err}
}

// Msg constructs an *Error whose cause is a plain message, for call sites
// that have no underlying error to wrap.
func Msg(kind Kind, op, fieldPath, msg string) *Error {
	return &Error{Kind: kind, Op: op, FieldPath: fieldPath, Err: errors.New(msg)}
}

// WithValue attaches a textual representation of the offending value.
func (e *Error) WithValue(v string) *Error {
	e.Value = v
	return e
}

// OfKind reports whether err (or any error it wraps) is a *Error of kind k.
func OfKind(err error, k Kind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == k
	}
	return false
}
