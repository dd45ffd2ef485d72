//go:build unix

// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import "golang.org/x/sys/unix"

// ReuseAddr enables SO_REUSEADDR on the socket sk, terminating the
// process on failure.
func (s *Sockets) ReuseAddr(sk int) {
	t0 := s.TimeNow()
	err := unix.SetsockoptInt(sk, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	s.logDone("reuseAddr", sk, t0, err)
	if err != nil {
		s.terminator().dieErrno(err, "setsockopt(%d, SOL_SOCKET, SO_REUSEADDR)", sk)
	}
}

// SetNonblocking sets O_NONBLOCK on fd, terminating the process on failure.
func (s *Sockets) SetNonblocking(fd int) {
	t0 := s.TimeNow()
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		s.logDone("setNonblocking", fd, t0, err)
		s.terminator().dieErrno(err, "fcntl(%d, F_GETFL)", fd)
	}
	_, err = unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags|unix.O_NONBLOCK)
	s.logDone("setNonblocking", fd, t0, err)
	if err != nil {
		s.terminator().dieErrno(err, "fcntl(%d, F_SETFL, O_NONBLOCK)", fd)
	}
}

// ReuseAddr is like [*Sockets.ReuseAddr] with the default configuration.
func ReuseAddr(sk int) {
	defaultSockets.ReuseAddr(sk)
}

// SetNonblocking is like [*Sockets.SetNonblocking] with the default configuration.
func SetNonblocking(fd int) {
	defaultSockets.SetNonblocking(fd)
}
