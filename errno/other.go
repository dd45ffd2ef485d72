//go:build !unix && !plan9

//
// SPDX-License-Identifier: GPL-3.0-or-later
//

package errno

import "syscall"

// On windows these are the values the syscall package invents for
// portability. On js and wasip1 they are the native ones.
const (
	EBADF     = syscall.EBADF
	EINTR     = syscall.EINTR
	EINVAL    = syscall.EINVAL
	EIO       = syscall.EIO
	ENOMEM    = syscall.ENOMEM
	EOVERFLOW = syscall.EOVERFLOW
	ERANGE    = syscall.ERANGE
)
