//go:build unix

// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import "golang.org/x/sys/unix"

// ToUnix returns the equivalent [*unix.SockaddrInet4], suitable for
// [unix.Bind], [unix.Connect] and friends.
func (sa SockaddrIn) ToUnix() *unix.SockaddrInet4 {
	return &unix.SockaddrInet4{Port: int(SockaddrInPort(&sa)), Addr: sa.Addr}
}

// SockaddrInFromUnix converts a [*unix.SockaddrInet4] to a [SockaddrIn].
func SockaddrInFromUnix(usa *unix.SockaddrInet4) SockaddrIn {
	return newSockaddrIn(usa.Addr, uint16(usa.Port))
}
