// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"bytes"
	"context"
	"log/slog"
	"net"

	"github.com/bassosimone/netstub"
	"github.com/bassosimone/slogstub"
)

// newCapturingLogger returns a logger that captures all log records into the
// returned slice. The caller can inspect the slice after exercising the code
// under test to verify which events were emitted.
func newCapturingLogger() (*slog.Logger, *[]slog.Record) {
	var records []slog.Record
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return true
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			records = append(records, record)
			return nil
		},
	}
	return slog.New(handler), &records
}

// recordMessages returns the messages of the given records in order.
func recordMessages(records []slog.Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Message)
	}
	return out
}

// exitCode is the value panicked by the Exit function of [newFatalConfig].
type exitCode int

// newFatalConfig returns a [*Config] whose Exit panics with an [exitCode]
// instead of terminating the test binary, along with the buffer that
// receives the diagnostics.
func newFatalConfig() (*Config, *bytes.Buffer) {
	stderr := &bytes.Buffer{}
	cfg := NewConfig()
	cfg.Exit = func(code int) {
		panic(exitCode(code))
	}
	cfg.Stderr = stderr
	return cfg, stderr
}

// newMinimalConn returns a [*netstub.FuncConn] with only LocalAddrFunc and
// RemoteAddrFunc set. This is the minimum needed for code that calls
// [safeconn.LocalAddr] and [safeconn.RemoteAddr].
func newMinimalConn() *netstub.FuncConn {
	return &netstub.FuncConn{
		LocalAddrFunc:  func() net.Addr { return &net.TCPAddr{} },
		RemoteAddrFunc: func() net.Addr { return &net.TCPAddr{} },
	}
}

// funcFileIO is a [FileIO] whose methods are implemented by the
// corresponding function fields. Calling a method whose field is
// nil panics, which catches unexpected system calls.
type funcFileIO struct {
	ReadFunc   func(fd int, buf []byte) (int, error)
	PreadFunc  func(fd int, buf []byte, offset int64) (int, error)
	WriteFunc  func(fd int, buf []byte) (int, error)
	PwriteFunc func(fd int, buf []byte, offset int64) (int, error)
}

var _ FileIO = &funcFileIO{}

func (f *funcFileIO) Read(fd int, buf []byte) (int, error) {
	return f.ReadFunc(fd, buf)
}

func (f *funcFileIO) Pread(fd int, buf []byte, offset int64) (int, error) {
	return f.PreadFunc(fd, buf, offset)
}

func (f *funcFileIO) Write(fd int, buf []byte) (int, error) {
	return f.WriteFunc(fd, buf)
}

func (f *funcFileIO) Pwrite(fd int, buf []byte, offset int64) (int, error) {
	return f.PwriteFunc(fd, buf, offset)
}
