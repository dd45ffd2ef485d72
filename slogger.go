// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"log/slog"
	"time"
)

// SLogger abstracts the [*slog.Logger] behavior.
//
// By using an abstraction we allow for unit testing and alternative implementations.
//
// This package uses two log levels:
//   - Info for whole operations (bulk transfers, allocation failures,
//     socket option changes)
//   - Debug for single system calls and retries after interruption
//
// The [*slog.Logger] type satisfies this interface.
type SLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// DefaultSLogger returns the default [SLogger] to use.
//
// The default is a no-op logger that discards all output, so that a library
// never writes to stdout/stderr unless explicitly configured. Fatal
// diagnostics are not log events and still go to [Config.Stderr].
func DefaultSLogger() SLogger {
	return discardSLogger{}
}

type discardSLogger struct{}

var _ SLogger = discardSLogger{}

// Debug implements [SLogger].
func (discardSLogger) Debug(msg string, args ...any) {}

// Info implements [SLogger].
func (discardSLogger) Info(msg string, args ...any) {}

// doneAttrs returns the attributes shared by all *Done events.
func doneAttrs(classifier ErrClassifier, err error, t0, t time.Time) []any {
	return []any{
		slog.Any("err", err),
		slog.String("errClass", classifier.Classify(err)),
		slog.Time("t0", t0),
		slog.Time("t", t),
	}
}
