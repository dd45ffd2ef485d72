// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"io"
	"math"
	"os"
	"time"
)

// Config holds common configuration for mu operations.
//
// Pass this to constructor functions to pre-wire dependencies.
// All fields have sensible defaults set by [NewConfig].
type Config struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// Exit terminates the process on fatal conditions.
	//
	// Set by [NewConfig] to [os.Exit].
	Exit func(code int)

	// FileIO performs the primitive read and write system calls.
	//
	// Set by [NewConfig] to [UnixFileIO] on unix systems and to
	// nil elsewhere, where bulk I/O is not available.
	FileIO FileIO

	// MaxAllocSize is the largest allocation, in bytes, that an
	// [*Allocator] attempts before reporting out of memory.
	//
	// Set by [NewConfig] to [math.MaxInt].
	MaxAllocSize uint

	// Stderr receives the diagnostics emitted before terminating.
	//
	// Set by [NewConfig] to [os.Stderr].
	Stderr io.Writer

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		ErrClassifier: DefaultErrClassifier,
		Exit:          os.Exit,
		FileIO:        defaultFileIO(),
		MaxAllocSize:  math.MaxInt,
		Stderr:        os.Stderr,
		TimeNow:       time.Now,
	}
}
