// SPDX-License-Identifier: GPL-3.0-or-later

// Package mu provides small operating-system primitives with contracts
// stricter than the system calls and C library functions they replace.
//
// # Components
//
// Allocation:
//   - [*Allocator]: overflow-checked byte, array and string allocation
//     with a configurable [AllocPolicy]; [Malloc], [MallocArray], etc.
//     use the fail-fast policy so callers never check for failure
//   - [MakeArray], [NewArray]: typed arrays with the same checks
//
// Bounded strings (buffers are []byte, capacity is len(buf)):
//   - [Strlcpy], [Strlcat]: copy and append, always NUL-terminating and
//     returning the untruncated length so that callers detect truncation
//     by comparing the result with the capacity
//   - [CString], [Chomp], [Snprintf], [TimestampUTC]
//
// Numeric parsing:
//   - [ParseLong], [ParseInt], [ParseUint], [ParseU32], [ParseU16]: strtol
//     syntax, but the whole string must be a number in range
//
// Bulk I/O on file descriptors:
//   - [*BulkIO]: [ReadN], [PreadN], [WriteN], [PwriteN] transfer exactly
//     len(data) bytes, restarting after short transfers and EINTR
//   - [FileIO], [UnixFileIO], [*ObserveFileIOFunc]: the system call backend
//     and a logging wrapper for it
//
// IPv4 socket addresses and options:
//   - [SockaddrIn], [ParseSockaddrIn], [SockaddrInPort],
//     [SockaddrInToIPStr], [SockaddrInToStr], [LocalSockaddrIn],
//     [RemoteSockaddrIn]
//   - [*Sockets]: [InitSockaddrIn], [ReuseAddr], [SetNonblocking]
//
// # Errors
//
// Two failure policies coexist. Parsing and bulk I/O failures are expected,
// data-dependent outcomes and return an [*Error] carrying an [ErrorKind]
// and, when relevant, the platform errno:
//
//	if errors.Is(err, mu.KindOutOfRange) { ... }
//	if errors.Is(err, unix.EPIPE) { ... }
//
// Allocation failures (under [AllocAbort]), malformed startup addresses,
// socket option failures and [Snprintf] truncation are treated as fatal: a
// diagnostic is written to [Config.Stderr] and [Config.Exit] is called.
//
// # Observability
//
// Components accept an [SLogger] (satisfied by [*slog.Logger]). By default
// logging is disabled. Errors are classified by [ErrClassifier] for the
// errClass field of *Done events. Use [NewSpanID] to correlate events.
//
// # Platforms
//
// Bulk I/O and socket options require a unix system. On windows, js and
// wasip1 the package builds with bulk I/O reporting [errors.ErrUnsupported].
// Plan 9 is not supported because it has no errno values.
//
// # Concurrency
//
// No component keeps mutable state and every operation is reentrant.
// Bulk I/O blocks as long as the descriptor blocks and has no cancellation.
package mu
