// SPDX-License-Identifier: GPL-3.0-or-later

// Package errno contains the platform errno values used by package mu.
//
// All constants have type [syscall.Errno], so they compare equal to the
// errors returned by the system call wrappers of each platform. Plan 9
// has no errno values and is not supported.
package errno
