// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"fmt"
	"io"
	"time"
)

// MaxTimestampSize is the buffer size that always fits [*Formatter.TimestampUTC].
const MaxTimestampSize = 64

// timestampLayout is the layout used by [*Formatter.TimestampUTC].
const timestampLayout = "2006/01/02 15:04:05 UTC"

// NewFormatter returns a new [*Formatter].
//
// The cfg argument contains the common configuration for mu operations.
func NewFormatter(cfg *Config) *Formatter {
	return &Formatter{
		Exit:    cfg.Exit,
		Stderr:  cfg.Stderr,
		TimeNow: cfg.TimeNow,
	}
}

// Formatter formats into bounded buffers.
//
// All fields are safe to modify after construction but before first use.
type Formatter struct {
	// Exit terminates the process when [*Formatter.Snprintf] truncates.
	//
	// Set by [NewFormatter] from [Config.Exit].
	Exit func(code int)

	// Stderr receives the truncation diagnostic.
	//
	// Set by [NewFormatter] from [Config.Stderr].
	Stderr io.Writer

	// TimeNow is the clock used by [*Formatter.TimestampUTC].
	//
	// Set by [NewFormatter] from [Config.TimeNow].
	TimeNow func() time.Time
}

// Snprintf formats according to format into dst, NUL-terminating it.
//
// Unlike [Strlcpy], truncation is treated as a programming error: when the
// formatted string does not fit in len(dst)-1 bytes, a diagnostic is written
// and the process terminates. Returns the length of the formatted string.
func (f *Formatter) Snprintf(dst []byte, format string, args ...any) int {
	s := fmt.Sprintf(format, args...)
	n := Strlcpy(dst, s)
	if n >= len(dst) {
		terminator{exit: f.Exit, stderr: f.Stderr}.panicf(0,
			"snprintf(size=%d, format=%q) truncated (returned %d)", len(dst), format, n)
	}
	return n
}

// TimestampUTC writes the current UTC time as "YYYY/MM/DD hh:mm:ss UTC"
// into dst with [Strlcpy] semantics and returns the timestamp length.
func (f *Formatter) TimestampUTC(dst []byte) int {
	return Strlcpy(dst, f.TimeNow().UTC().Format(timestampLayout))
}

// defaultFormatter backs the package-level formatting functions.
var defaultFormatter = NewFormatter(NewConfig())

// Snprintf is like [*Formatter.Snprintf] with the default configuration.
func Snprintf(dst []byte, format string, args ...any) int {
	return defaultFormatter.Snprintf(dst, format, args...)
}

// TimestampUTC is like [*Formatter.TimestampUTC] with the default configuration.
func TimestampUTC(dst []byte) int {
	return defaultFormatter.TimestampUTC(dst)
}
