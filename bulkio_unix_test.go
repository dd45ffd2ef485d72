//go:build unix

// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bassosimone/mu/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// newPipe returns a pipe whose read end is closed at the end of the test.
// Closing the write end is up to the caller.
func newPipe(t *testing.T) (rfd, wfd int) {
	var fds [2]int
	require.NoError(t, unix.Pipe(fds[:]))
	t.Cleanup(func() {
		unix.Close(fds[0])
	})
	return fds[0], fds[1]
}

// newTempFile returns a read-write descriptor for a new empty file.
func newTempFile(t *testing.T) int {
	path := filepath.Join(t.TempDir(), "data")
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_TRUNC, 0600)
	require.NoError(t, err)
	t.Cleanup(func() {
		unix.Close(fd)
	})
	return fd
}

// WriteN and ReadN move a message through a real pipe.
func TestBulkIOPipe(t *testing.T) {
	rfd, wfd := newPipe(t)
	payload := []byte("hello, world\n")

	n, err := WriteN(wfd, payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.NoError(t, unix.Close(wfd))

	// Asking for more than available stops at end of stream
	data := make([]byte, 64)
	n, err = ReadN(rfd, data)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, data[:n])
}

// PwriteN and PreadN work at explicit offsets on a real file.
func TestBulkIOPositioned(t *testing.T) {
	fd := newTempFile(t)

	n, err := PwriteN(fd, []byte("0123456789"), 0)
	require.NoError(t, err)
	require.Equal(t, 10, n)

	n, err = PwriteN(fd, []byte("abc"), 4)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	// Positioned calls leave the file offset alone
	off, err := unix.Seek(fd, 0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), off)

	data := make([]byte, 6)
	n, err = PreadN(fd, data, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []byte("23abc7"), data)

	// Reading past the end returns the available bytes
	data = make([]byte, 8)
	n, err = PreadN(fd, data, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("789"), data[:n])
}

// Wrapping the backend adds per-call events inside the bulk events.
func TestBulkIOObservedFile(t *testing.T) {
	fd := newTempFile(t)
	logger, records := newCapturingLogger()
	cfg := NewConfig()
	bio := NewBulkIO(cfg, logger)
	bio.FileIO = NewObserveFileIOFunc(cfg, logger).Wrap(bio.FileIO)

	n, err := bio.WriteN(fd, []byte("data"))
	require.NoError(t, err)
	require.Equal(t, 4, n)

	assert.Equal(t, []string{"writeNStart", "writeStart", "writeDone", "writeNDone"}, recordMessages(*records))
}

// A bad descriptor fails with KindIO and EBADF.
func TestBulkIOBadDescriptor(t *testing.T) {
	cases := []struct {
		// name is the subtest name
		name string

		// run invokes the transfer under test
		run func() (int, error)
	}{
		{name: "ReadN", run: func() (int, error) { return ReadN(-1, make([]byte, 1)) }},
		{name: "PreadN", run: func() (int, error) { return PreadN(-1, make([]byte, 1), 0) }},
		{name: "WriteN", run: func() (int, error) { return WriteN(-1, []byte("x")) }},
		{name: "PwriteN", run: func() (int, error) { return PwriteN(-1, []byte("x"), 0) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := tc.run()

			assert.Equal(t, 0, n)
			assert.True(t, errors.Is(err, KindIO))
			assert.True(t, errors.Is(err, errno.EBADF))
		})
	}
}

// Zero-length transfers succeed without touching the descriptor.
func TestPackageLevelBulkIOEmpty(t *testing.T) {
	n, err := ReadN(-1, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = WriteN(-1, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = PreadN(-1, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = PwriteN(-1, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// The unix backend reads at an offset with pread.
func TestUnixFileIO(t *testing.T) {
	fio := UnixFileIO()
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("xyz"), 0600))
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	require.NoError(t, err)
	defer unix.Close(fd)

	buf := make([]byte, 2)
	n, err := fio.Pread(fd, buf, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte("yz"), buf)
}
