// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"errors"
	"io"

	"github.com/bassosimone/mu/errno"
)

// transferFunc performs a single primitive transfer of buf at offset.
//
// Unpositioned transfers ignore the offset.
type transferFunc func(buf []byte, offset int64) (int, error)

// retryInterrupted returns a [transferFunc] that calls fn again whenever
// it fails with EINTR.
//
// With maxRetries == 0 there is no upper bound. Otherwise, the call fails
// with [KindInterrupted] once fn has been interrupted more than maxRetries
// consecutive times. The onRetry callback runs before each retry.
func retryInterrupted(op string, fn transferFunc, maxRetries int, onRetry func(attempt int)) transferFunc {
	return func(buf []byte, offset int64) (int, error) {
		for interrupts := 0; ; {
			count, err := fn(buf, offset)
			if err == nil || !errors.Is(err, errno.EINTR) {
				return count, err
			}
			interrupts++
			if maxRetries > 0 && interrupts > maxRetries {
				return 0, newError(KindInterrupted, op, err)
			}
			onRetry(interrupts)
		}
	}
}

// transferN calls fn until len(data) bytes have been transferred.
//
// The offset of each call is base + transferred for positioned transfers
// and is ignored otherwise. When zeroIsEOF is true, a zero-byte transfer
// ends the loop successfully (end-of-stream); otherwise it is an error,
// since a writer making no progress would loop forever.
//
// The returned count is always the number of bytes transferred so far.
func transferN(op string, fn transferFunc, data []byte, base int64, zeroIsEOF bool) (int, error) {
	total := 0
	for total < len(data) {
		count, err := fn(data[total:], base+int64(total))
		if count > 0 {
			total += min(count, len(data)-total)
		}
		if err != nil {
			var merr *Error
			if errors.As(err, &merr) {
				return total, err
			}
			return total, newError(KindIO, op, err)
		}
		if count <= 0 {
			if zeroIsEOF {
				return total, nil
			}
			return total, newError(KindIO, op, io.ErrShortWrite)
		}
	}
	return total, nil
}
