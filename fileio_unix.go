//go:build unix

// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import "golang.org/x/sys/unix"

// UnixFileIO returns the [FileIO] backed by read(2), pread(2), write(2)
// and pwrite(2).
func UnixFileIO() FileIO {
	return unixFileIO{}
}

func defaultFileIO() FileIO {
	return unixFileIO{}
}

type unixFileIO struct{}

var _ FileIO = unixFileIO{}

// Read implements [FileIO].
func (unixFileIO) Read(fd int, buf []byte) (int, error) {
	return unix.Read(fd, buf)
}

// Pread implements [FileIO].
func (unixFileIO) Pread(fd int, buf []byte, offset int64) (int, error) {
	return unix.Pread(fd, buf, offset)
}

// Write implements [FileIO].
func (unixFileIO) Write(fd int, buf []byte) (int, error) {
	return unix.Write(fd, buf)
}

// Pwrite implements [FileIO].
func (unixFileIO) Pwrite(fd int, buf []byte, offset int64) (int, error) {
	return unix.Pwrite(fd, buf, offset)
}
