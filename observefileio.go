// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"log/slog"
	"time"
)

// NewObserveFileIOFunc returns a new [*ObserveFileIOFunc].
//
// The cfg argument contains the common configuration for mu operations.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewObserveFileIOFunc(cfg *Config, logger SLogger) *ObserveFileIOFunc {
	return &ObserveFileIOFunc{
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		TimeNow:       cfg.TimeNow,
	}
}

// ObserveFileIOFunc wraps a [FileIO] to log every system call.
//
// Each call emits a *Start/*Done pair at [slog.LevelDebug]. Wrapping the
// [BulkIO.FileIO] field makes the individual (possibly short or interrupted)
// calls behind a bulk transfer visible.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [Wrap].
type ObserveFileIOFunc struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewObserveFileIOFunc] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use.
	//
	// Set by [NewObserveFileIOFunc] to the user-provided logger.
	Logger SLogger

	// TimeNow is the function to get the current time.
	//
	// Set by [NewObserveFileIOFunc] from [Config.TimeNow].
	TimeNow func() time.Time
}

// Wrap returns a [FileIO] that logs and delegates to fio.
func (op *ObserveFileIOFunc) Wrap(fio FileIO) FileIO {
	return &observedFileIO{fio: fio, op: op}
}

type observedFileIO struct {
	fio FileIO
	op  *ObserveFileIOFunc
}

var _ FileIO = &observedFileIO{}

// Read implements [FileIO].
func (o *observedFileIO) Read(fd int, buf []byte) (int, error) {
	return o.observe("read", fd, len(buf), 0, false, func() (int, error) {
		return o.fio.Read(fd, buf)
	})
}

// Pread implements [FileIO].
func (o *observedFileIO) Pread(fd int, buf []byte, offset int64) (int, error) {
	return o.observe("pread", fd, len(buf), offset, true, func() (int, error) {
		return o.fio.Pread(fd, buf, offset)
	})
}

// Write implements [FileIO].
func (o *observedFileIO) Write(fd int, buf []byte) (int, error) {
	return o.observe("write", fd, len(buf), 0, false, func() (int, error) {
		return o.fio.Write(fd, buf)
	})
}

// Pwrite implements [FileIO].
func (o *observedFileIO) Pwrite(fd int, buf []byte, offset int64) (int, error) {
	return o.observe("pwrite", fd, len(buf), offset, true, func() (int, error) {
		return o.fio.Pwrite(fd, buf, offset)
	})
}

// observe emits <name>Start and <name>Done around fn. The offset is only
// meaningful when positioned is true.
func (o *observedFileIO) observe(name string, fd, size int, offset int64, positioned bool,
	fn func() (int, error)) (int, error) {
	t0 := o.op.TimeNow()
	o.op.Logger.Debug(
		name+"Start",
		slog.Int("fd", fd),
		slog.Int("ioBufferSize", size),
		slog.Int64("offset", offset),
		slog.Bool("positioned", positioned),
		slog.Time("t", t0),
	)

	count, err := fn()

	o.op.Logger.Debug(
		name+"Done",
		append([]any{
			slog.Int("fd", fd),
			slog.Int("ioBytesCount", count),
			slog.Int64("offset", offset),
			slog.Bool("positioned", positioned),
		}, doneAttrs(o.op.ErrClassifier, err, t0, o.op.TimeNow())...)...,
	)

	return count, err
}
