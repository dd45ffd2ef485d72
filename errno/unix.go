//go:build unix

//
// SPDX-License-Identifier: GPL-3.0-or-later
//

package errno

import "golang.org/x/sys/unix"

const (
	EBADF     = unix.EBADF
	EINTR     = unix.EINTR
	EINVAL    = unix.EINVAL
	EIO       = unix.EIO
	ENOMEM    = unix.ENOMEM
	EOVERFLOW = unix.EOVERFLOW
	ERANGE    = unix.ERANGE
)
