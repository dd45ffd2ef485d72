// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"errors"
	"log/slog"
	"time"
)

// NewBulkIO returns a new [*BulkIO] that retries interrupted calls forever.
//
// The cfg argument contains the common configuration for mu operations.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewBulkIO(cfg *Config, logger SLogger) *BulkIO {
	return &BulkIO{
		ErrClassifier: cfg.ErrClassifier,
		FileIO:        cfg.FileIO,
		Logger:        logger,
		MaxRetries:    0,
		TimeNow:       cfg.TimeNow,
	}
}

// BulkIO reads and writes exactly len(data) bytes, restarting the
// underlying system calls after short transfers and interruptions.
//
// Every operation returns the number of bytes transferred, which is
// also valid when the returned error is not nil. A nil error with a
// short count from a read operation means end-of-stream: compare the
// count with len(data) to tell it apart from a complete transfer.
//
// Operations block as long as the descriptor blocks and cannot be
// canceled. Use non-blocking mode and readiness polling to bound them.
// A descriptor must not be used by two concurrent operations because
// the retry loop is not atomic with respect to the file offset.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with transfers.
type BulkIO struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewBulkIO] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// FileIO performs the primitive system calls.
	//
	// Set by [NewBulkIO] from [Config.FileIO].
	FileIO FileIO

	// Logger is the [SLogger] to use.
	//
	// Set by [NewBulkIO] to the user-provided logger.
	Logger SLogger

	// MaxRetries bounds the consecutive EINTR failures of a single
	// system call. Zero means retrying without bound.
	//
	// Set by [NewBulkIO] to zero.
	MaxRetries int

	// TimeNow is the function to get the current time.
	//
	// Set by [NewBulkIO] from [Config.TimeNow].
	TimeNow func() time.Time
}

// ReadN reads len(data) bytes from fd.
//
// Returns a nil error on success, including when end-of-stream occurs
// before len(data) bytes have been read.
func (b *BulkIO) ReadN(fd int, data []byte) (int, error) {
	return b.run("read", fd, data, 0, false, true, func(fio FileIO) transferFunc {
		return func(buf []byte, _ int64) (int, error) {
			return fio.Read(fd, buf)
		}
	})
}

// PreadN reads len(data) bytes from fd starting at offset without
// changing the file offset.
//
// Returns a nil error on success, including when end-of-file occurs
// before len(data) bytes have been read.
func (b *BulkIO) PreadN(fd int, data []byte, offset int64) (int, error) {
	return b.run("pread", fd, data, offset, true, true, func(fio FileIO) transferFunc {
		return func(buf []byte, off int64) (int, error) {
			return fio.Pread(fd, buf, off)
		}
	})
}

// WriteN writes len(data) bytes to fd.
func (b *BulkIO) WriteN(fd int, data []byte) (int, error) {
	return b.run("write", fd, data, 0, false, false, func(fio FileIO) transferFunc {
		return func(buf []byte, _ int64) (int, error) {
			return fio.Write(fd, buf)
		}
	})
}

// PwriteN writes len(data) bytes to fd starting at offset without
// changing the file offset.
func (b *BulkIO) PwriteN(fd int, data []byte, offset int64) (int, error) {
	return b.run("pwrite", fd, data, offset, true, false, func(fio FileIO) transferFunc {
		return func(buf []byte, off int64) (int, error) {
			return fio.Pwrite(fd, buf, off)
		}
	})
}

// run logs and executes a bulk transfer. The offset is only meaningful
// when positioned is true.
func (b *BulkIO) run(op string, fd int, data []byte, offset int64, positioned,
	zeroIsEOF bool, mkfn func(fio FileIO) transferFunc) (int, error) {
	t0 := b.TimeNow()
	b.Logger.Info(
		op+"NStart",
		slog.Int("fd", fd),
		slog.Int("ioBufferSize", len(data)),
		slog.Int64("offset", offset),
		slog.Bool("positioned", positioned),
		slog.Time("t", t0),
	)

	var (
		total int
		err   error
	)
	if b.FileIO == nil {
		err = newError(KindIO, op, errors.ErrUnsupported)
	} else {
		fn := retryInterrupted(op, mkfn(b.FileIO), b.MaxRetries, func(attempt int) {
			b.Logger.Debug(
				"transferRetry",
				slog.Int("attempt", attempt),
				slog.Int("fd", fd),
				slog.String("op", op),
				slog.Time("t", b.TimeNow()),
			)
		})
		total, err = transferN(op, fn, data, offset, zeroIsEOF)
	}

	b.Logger.Info(
		op+"NDone",
		append([]any{
			slog.Int("fd", fd),
			slog.Int("ioBytesCount", total),
			slog.Int64("offset", offset),
			slog.Bool("positioned", positioned),
		}, doneAttrs(b.ErrClassifier, err, t0, b.TimeNow())...)...,
	)
	return total, err
}

// defaultBulkIO backs the package-level bulk I/O functions.
var defaultBulkIO = NewBulkIO(NewConfig(), DefaultSLogger())

// ReadN is like [*BulkIO.ReadN] with the default configuration.
func ReadN(fd int, data []byte) (int, error) {
	return defaultBulkIO.ReadN(fd, data)
}

// PreadN is like [*BulkIO.PreadN] with the default configuration.
func PreadN(fd int, data []byte, offset int64) (int, error) {
	return defaultBulkIO.PreadN(fd, data, offset)
}

// WriteN is like [*BulkIO.WriteN] with the default configuration.
func WriteN(fd int, data []byte) (int, error) {
	return defaultBulkIO.WriteN(fd, data)
}

// PwriteN is like [*BulkIO.PwriteN] with the default configuration.
func PwriteN(fd int, data []byte, offset int64) (int, error) {
	return defaultBulkIO.PwriteN(fd, data, offset)
}
