// SPDX-License-Identifier: GPL-3.0-or-later

package mu

// FileIO performs single read and write system calls on a file descriptor.
//
// Implementations must behave like the corresponding system calls: they may
// transfer fewer bytes than requested, a zero-byte read means end-of-stream,
// and an interrupted call fails with EINTR. Pread and Pwrite must not change
// the file offset.
//
// By making [*BulkIO] depend on an abstract implementation we allow for unit
// testing and for alternative backends.
type FileIO interface {
	Read(fd int, buf []byte) (int, error)
	Pread(fd int, buf []byte, offset int64) (int, error)
	Write(fd int, buf []byte) (int, error)
	Pwrite(fd int, buf []byte, offset int64) (int, error)
}
