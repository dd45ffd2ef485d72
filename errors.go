// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrorKind classifies the recoverable failures returned by this package.
//
// An ErrorKind is itself an error, so callers can write:
//
//	if errors.Is(err, mu.KindOutOfRange) { ... }
type ErrorKind int

const (
	// KindInvalidInput indicates malformed input (bad base, no digits,
	// trailing characters, malformed address).
	KindInvalidInput ErrorKind = iota + 1

	// KindOutOfRange indicates a value that does not fit the target type.
	KindOutOfRange

	// KindInterrupted indicates that a transfer was interrupted more
	// times than the configured retry budget allows.
	KindInterrupted

	// KindIO indicates a failed read or write system call.
	KindIO

	// KindOutOfMemory indicates that an allocation could not be satisfied.
	KindOutOfMemory

	// KindOverflow indicates that an allocation size computation overflowed.
	KindOverflow
)

// Error implements error.
func (k ErrorKind) Error() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindOutOfRange:
		return "out of range"
	case KindInterrupted:
		return "interrupted"
	case KindIO:
		return "i/o error"
	case KindOutOfMemory:
		return "out of memory"
	case KindOverflow:
		return "integer overflow"
	default:
		return fmt.Sprintf("unknown error kind: %d", int(k))
	}
}

// Error is the error type returned by the recoverable operations.
type Error struct {
	// Kind is the failure category.
	Kind ErrorKind

	// Op is the failed operation (e.g., "read", "pwrite", "parse").
	Op string

	// Errno is the platform error, if any. It is zero when the
	// failure did not originate from (or map to) a system error.
	Errno syscall.Errno

	// Err is the underlying non-errno cause, if any.
	Err error
}

var _ error = &Error{}

// newError creates a new [*Error], extracting the errno from cause if possible.
func newError(kind ErrorKind, op string, cause error) *Error {
	err := &Error{Kind: kind, Op: op}
	var errno syscall.Errno
	switch {
	case cause == nil:
		// nothing
	case errors.As(cause, &errno):
		err.Errno = errno
		if cause != error(errno) {
			err.Err = cause
		}
	default:
		err.Err = cause
	}
	return err
}

// Error implements error.
func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("mu: %s: %s: %s", e.Op, e.Kind.Error(), e.Err.Error())
	case e.Errno != 0:
		return fmt.Sprintf("mu: %s: %s: %s", e.Op, e.Kind.Error(), e.Errno.Error())
	default:
		return fmt.Sprintf("mu: %s: %s", e.Op, e.Kind.Error())
	}
}

// Unwrap returns the underlying cause: Err when set, otherwise Errno.
func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if e.Errno != 0 {
		return e.Errno
	}
	return nil
}

// Is reports whether target is the [ErrorKind] of this error or its errno.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case ErrorKind:
		return t == e.Kind
	case syscall.Errno:
		return e.Errno != 0 && t == e.Errno
	default:
		return false
	}
}

// Code returns the negated errno, or zero when there is none.
//
// This preserves the magnitude of the host platform error numbering
// for diagnostics and for callers bridging to errno-based code.
func (e *Error) Code() int {
	return -int(e.Errno)
}
