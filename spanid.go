// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewSpanID returns a UUIDv7 identifying a span.
//
// Attach it to a logger with [*slog.Logger.With] before passing the logger
// to [NewBulkIO] or [NewObserveFileIOFunc], so the readNStart/readNDone
// events and the readStart/readDone events of the individual system calls
// share the same spanID.
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewSpanID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
