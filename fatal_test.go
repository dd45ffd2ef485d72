// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTerminator returns a terminator that records the exit code
// instead of exiting, along with the diagnostics buffer.
func newTestTerminator() (terminator, *bytes.Buffer) {
	cfg, stderr := newFatalConfig()
	return terminator{exit: cfg.Exit, stderr: stderr}, stderr
}

// panicf prefixes the diagnostic with the calling function and line.
func TestTerminatorPanicf(t *testing.T) {
	term, stderr := newTestTerminator()

	assert.PanicsWithValue(t, exitCode(1), func() {
		term.panicf(0, "value %d is broken", 42)
	})

	// The frame is the closure calling panicf in this test
	out := stderr.String()
	assert.Regexp(t, `^\[panic\] mu\.TestTerminatorPanicf\.func1:\d+ value 42 is broken\n$`, out)
}

// dief writes the bare message and exits with status 1.
func TestTerminatorDief(t *testing.T) {
	term, stderr := newTestTerminator()

	assert.PanicsWithValue(t, exitCode(1), func() {
		term.dief("invalid %s", "thing")
	})
	assert.Equal(t, "invalid thing\n", stderr.String())
}

// dieErrno appends the error text to the message.
func TestTerminatorDieErrno(t *testing.T) {
	term, stderr := newTestTerminator()

	assert.PanicsWithValue(t, exitCode(1), func() {
		term.dieErrno(errors.New("bad file descriptor"), "fcntl(%d, F_GETFL)", 7)
	})
	assert.Equal(t, "fcntl(7, F_GETFL): bad file descriptor\n", stderr.String())
}

// An exit function that returns must not let the caller proceed.
func TestTerminatorExitReturns(t *testing.T) {
	stderr := &bytes.Buffer{}
	var code int
	term := terminator{
		exit: func(c int) {
			code = c
		},
		stderr: stderr,
	}

	assert.PanicsWithValue(t, "mu: exit function returned", func() {
		term.dief("boom")
	})
	assert.Equal(t, 1, code)
	assert.Equal(t, "boom\n", stderr.String())
}

// callerFrame names the calling function without its package path.
func TestCallerFrame(t *testing.T) {
	name, line := callerFrame(0)

	assert.Equal(t, "mu.TestCallerFrame", name)
	require.Greater(t, line, 0)
}
