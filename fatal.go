// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// terminator writes a diagnostic to stderr and terminates the process.
//
// The exit function must not return. If it does, the terminator panics
// so the caller never continues past a fatal condition.
type terminator struct {
	exit   func(code int)
	stderr io.Writer
}

// panicf reports a broken invariant as "[panic] <func>:<line> <msg>".
//
// The skip argument selects the stack frame to name, with zero being
// the direct caller of panicf.
func (t terminator) panicf(skip int, format string, args ...any) {
	fn, line := callerFrame(skip + 1)
	fmt.Fprintf(t.stderr, "[panic] %s:%d %s\n", fn, line, fmt.Sprintf(format, args...))
	t.exitNow()
}

// dief reports a configuration error as "<msg>".
func (t terminator) dief(format string, args ...any) {
	fmt.Fprintf(t.stderr, "%s\n", fmt.Sprintf(format, args...))
	t.exitNow()
}

// dieErrno reports an OS error as "<msg>: <strerror>".
func (t terminator) dieErrno(err error, format string, args ...any) {
	fmt.Fprintf(t.stderr, "%s: %s\n", fmt.Sprintf(format, args...), err.Error())
	t.exitNow()
}

func (t terminator) exitNow() {
	t.exit(1)
	panic("mu: exit function returned")
}

// callerFrame returns the short function name and line of the given frame.
func callerFrame(skip int) (string, int) {
	pc, _, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???", 0
	}
	name := "???"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
			name = name[idx+1:]
		}
	}
	return name, line
}
