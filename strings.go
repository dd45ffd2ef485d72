// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"bytes"
	"strings"
)

// The functions in this file treat a []byte as a C string buffer whose
// capacity is len(buf) and whose content ends at the first NUL byte.
// Source strings also end at their first NUL byte, if any.

// cstrlen returns the length of s up to, and excluding, the first NUL.
func cstrlen(s string) int {
	if idx := strings.IndexByte(s, 0); idx >= 0 {
		return idx
	}
	return len(s)
}

// Strlcpy copies src into dst, copying at most len(dst)-1 bytes and always
// NUL-terminating dst unless len(dst) == 0.
//
// The return value is the length of src. Truncation occurred if and only
// if the return value is >= len(dst).
func Strlcpy(dst []byte, src string) int {
	srclen := cstrlen(src)
	if len(dst) == 0 {
		return srclen
	}
	n := min(srclen, len(dst)-1)
	copy(dst, src[:n])
	dst[n] = 0
	return srclen
}

// Strlcat appends src to the NUL-terminated string in dst. Unlike strncat,
// len(dst) is the full size of the buffer, not the space left.
//
// At most len(dst)-strlen(dst)-1 bytes are appended and the result is NUL
// terminated. When dst has no NUL within len(dst), nothing is written.
//
// The return value is min(len(dst), strlen(dst)) + strlen(src). Truncation
// occurred if and only if the return value is >= len(dst).
func Strlcat(dst []byte, src string) int {
	dlen := bytes.IndexByte(dst, 0)
	if dlen < 0 {
		return len(dst) + cstrlen(src)
	}
	return dlen + Strlcpy(dst[dlen:], src)
}

// CString returns the content of buf up to, and excluding, the first NUL.
func CString(buf []byte) string {
	if idx := bytes.IndexByte(buf, 0); idx >= 0 {
		return string(buf[:idx])
	}
	return string(buf)
}

// Chomp removes a trailing newline from the NUL-terminated string in buf.
//
// Returns 1 if a newline was removed and 0 otherwise.
func Chomp(buf []byte) int {
	n := bytes.IndexByte(buf, 0)
	if n < 0 {
		n = len(buf)
	}
	if n > 0 && buf[n-1] == '\n' {
		buf[n-1] = 0
		return 1
	}
	return 0
}
