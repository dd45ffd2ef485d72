// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/bits"
	"runtime"
	"strings"
	"time"
	"unsafe"

	"github.com/bassosimone/mu/errno"
	"github.com/bassosimone/runtimex"
)

// AllocPolicy selects how an [*Allocator] reacts to a failed allocation.
type AllocPolicy int

const (
	// AllocAbort writes a diagnostic to stderr and terminates the
	// process. Callers never need to check the returned error.
	AllocAbort AllocPolicy = iota

	// AllocReturnError returns the failure as an [*Error] whose
	// kind is [KindOutOfMemory] or [KindOverflow].
	AllocReturnError
)

// NewAllocator returns a new [*Allocator] using the [AllocAbort] policy.
//
// The cfg argument contains the common configuration for mu operations.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewAllocator(cfg *Config, logger SLogger) *Allocator {
	return &Allocator{
		ErrClassifier: cfg.ErrClassifier,
		Exit:          cfg.Exit,
		Logger:        logger,
		MaxSize:       cfg.MaxAllocSize,
		Policy:        AllocAbort,
		Stderr:        cfg.Stderr,
		TimeNow:       cfg.TimeNow,
	}
}

// Allocator allocates byte buffers and strings with overflow-checked sizes.
//
// Go zeroes all memory it hands out, so the "uninitialized" operations
// ([*Allocator.Malloc], [*Allocator.MallocArray]) return zero-filled memory
// like their zero-initialized counterparts.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with allocations.
type Allocator struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewAllocator] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Exit terminates the process under the [AllocAbort] policy.
	//
	// Set by [NewAllocator] from [Config.Exit].
	Exit func(code int)

	// Logger is the [SLogger] to use.
	//
	// Set by [NewAllocator] to the user-provided logger.
	Logger SLogger

	// MaxSize is the largest allocation in bytes.
	//
	// Set by [NewAllocator] from [Config.MaxAllocSize].
	MaxSize uint

	// Policy is the [AllocPolicy] to apply on failure.
	//
	// Set by [NewAllocator] to [AllocAbort].
	Policy AllocPolicy

	// Stderr receives the diagnostic under the [AllocAbort] policy.
	//
	// Set by [NewAllocator] from [Config.Stderr].
	Stderr io.Writer

	// TimeNow is the function to get the current time.
	//
	// Set by [NewAllocator] from [Config.TimeNow].
	TimeNow func() time.Time
}

// Malloc allocates size bytes.
func (a *Allocator) Malloc(size uint) ([]byte, error) {
	buf, err := makeSlice[byte](a.MaxSize, size)
	if err != nil {
		return nil, a.fail("malloc", KindOutOfMemory, err, "out of memory")
	}
	return buf, nil
}

// Calloc allocates a zero-filled array of nmemb elements of size bytes.
func (a *Allocator) Calloc(nmemb, size uint) ([]byte, error) {
	total, ok := mulSize(nmemb, size)
	if !ok {
		return nil, a.fail("calloc", KindOverflow, errno.EOVERFLOW, "integer overflow: %d * %d", nmemb, size)
	}
	buf, err := makeSlice[byte](a.MaxSize, total)
	if err != nil {
		return nil, a.fail("calloc", KindOutOfMemory, err, "out of memory")
	}
	return buf, nil
}

// Zalloc allocates n zero-filled bytes.
func (a *Allocator) Zalloc(n uint) ([]byte, error) {
	buf, err := makeSlice[byte](a.MaxSize, n)
	if err != nil {
		return nil, a.fail("zalloc", KindOutOfMemory, err, "out of memory")
	}
	return buf, nil
}

// Realloc resizes buf to size bytes.
//
// The first min(len(buf), size) bytes are preserved and any growth is
// zero-filled. The result may share memory with buf.
func (a *Allocator) Realloc(buf []byte, size uint) ([]byte, error) {
	out, err := resizeSlice(a.MaxSize, buf, size)
	if err != nil {
		return nil, a.fail("realloc", KindOutOfMemory, err, "out of memory")
	}
	return out, nil
}

// MallocArray allocates nmemb elements of size bytes each.
//
// The nmemb * size product is checked for overflow before allocating.
func (a *Allocator) MallocArray(nmemb, size uint) ([]byte, error) {
	total, ok := mulSize(nmemb, size)
	if !ok {
		return nil, a.fail("mallocarray", KindOverflow, errno.EOVERFLOW, "integer overflow: %d * %d", nmemb, size)
	}
	buf, err := makeSlice[byte](a.MaxSize, total)
	if err != nil {
		return nil, a.fail("mallocarray", KindOutOfMemory, err, "out of memory")
	}
	return buf, nil
}

// ReallocArray resizes buf to nmemb elements of size bytes each.
//
// The nmemb * size product is checked for overflow before resizing.
func (a *Allocator) ReallocArray(buf []byte, nmemb, size uint) ([]byte, error) {
	total, ok := mulSize(nmemb, size)
	if !ok {
		return nil, a.fail("reallocarray", KindOverflow, errno.EOVERFLOW, "integer overflow: %d * %d", nmemb, size)
	}
	out, err := resizeSlice(a.MaxSize, buf, total)
	if err != nil {
		return nil, a.fail("reallocarray", KindOutOfMemory, err, "out of memory")
	}
	return out, nil
}

// Strdup returns a copy of s that does not share memory with it.
func (a *Allocator) Strdup(s string) (string, error) {
	if uint(len(s)) > a.MaxSize {
		return "", a.fail("strdup", KindOutOfMemory, errno.ENOMEM, "out of memory")
	}
	return strings.Clone(s), nil
}

// MakeArray allocates count zero-valued elements of type T.
//
// The count * sizeof(T) product is checked for overflow and against
// [Allocator.MaxSize] before allocating.
func MakeArray[T any](a *Allocator, count uint) ([]T, error) {
	var zero T
	elemSize := uint(unsafe.Sizeof(zero))
	total, ok := mulSize(count, elemSize)
	if !ok {
		return nil, a.fail("makearray", KindOverflow, errno.EOVERFLOW, "integer overflow: %d * %d", count, elemSize)
	}
	if total > a.MaxSize {
		return nil, a.fail("makearray", KindOutOfMemory, errno.ENOMEM, "out of memory")
	}
	out, err := makeSlice[T](math.MaxInt, count)
	if err != nil {
		return nil, a.fail("makearray", KindOutOfMemory, err, "out of memory")
	}
	return out, nil
}

// fail logs the failure and applies the policy. Under [AllocAbort] the
// diagnostic names the exported function that called fail.
func (a *Allocator) fail(op string, kind ErrorKind, cause error, format string, args ...any) error {
	err := newError(kind, op, cause)
	diagnostic := fmt.Sprintf(format, args...)
	t := a.TimeNow()
	a.Logger.Info(
		"allocFailed",
		append([]any{
			slog.String("diagnostic", diagnostic),
			slog.String("op", op),
			slog.String("policy", a.Policy.String()),
		}, doneAttrs(a.ErrClassifier, err, t, t)...)...,
	)
	if a.Policy == AllocAbort {
		terminator{exit: a.Exit, stderr: a.Stderr}.panicf(1, "%s", diagnostic)
	}
	return err
}

// String returns the policy name.
func (p AllocPolicy) String() string {
	switch p {
	case AllocAbort:
		return "abort"
	case AllocReturnError:
		return "return"
	default:
		return fmt.Sprintf("AllocPolicy(%d)", int(p))
	}
}

// mulSize returns x * y and whether the product fits in a uint.
func mulSize(x, y uint) (uint, bool) {
	hi, lo := bits.Mul(x, y)
	return lo, hi == 0
}

// makeSlice allocates count elements, translating the runtime refusal
// of an impossible length into [errno.ENOMEM].
func makeSlice[T any](maxSize, count uint) (out []T, err error) {
	if count > maxSize || count > math.MaxInt {
		return nil, errno.ENOMEM
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			out, err = nil, errno.ENOMEM
		}
	}()
	return make([]T, int(count)), nil
}

// resizeSlice implements realloc semantics on a byte slice.
func resizeSlice(maxSize uint, buf []byte, size uint) ([]byte, error) {
	if size <= uint(cap(buf)) {
		out := buf[:size]
		if size > uint(len(buf)) {
			clear(out[len(buf):])
		}
		return out, nil
	}
	out, err := makeSlice[byte](maxSize, size)
	if err != nil {
		return nil, err
	}
	copy(out, buf)
	return out, nil
}

// Memzero sets all bytes of buf to zero.
func Memzero(buf []byte) {
	clear(buf)
}

// defaultAllocator backs the package-level allocation functions.
var defaultAllocator = NewAllocator(NewConfig(), DefaultSLogger())

// Malloc is like [*Allocator.Malloc] with the default fail-fast allocator.
func Malloc(size uint) []byte {
	return runtimex.PanicOnError1(defaultAllocator.Malloc(size))
}

// Calloc is like [*Allocator.Calloc] with the default fail-fast allocator.
func Calloc(nmemb, size uint) []byte {
	return runtimex.PanicOnError1(defaultAllocator.Calloc(nmemb, size))
}

// Zalloc is like [*Allocator.Zalloc] with the default fail-fast allocator.
func Zalloc(n uint) []byte {
	return runtimex.PanicOnError1(defaultAllocator.Zalloc(n))
}

// Realloc is like [*Allocator.Realloc] with the default fail-fast allocator.
func Realloc(buf []byte, size uint) []byte {
	return runtimex.PanicOnError1(defaultAllocator.Realloc(buf, size))
}

// MallocArray is like [*Allocator.MallocArray] with the default fail-fast allocator.
func MallocArray(nmemb, size uint) []byte {
	return runtimex.PanicOnError1(defaultAllocator.MallocArray(nmemb, size))
}

// ReallocArray is like [*Allocator.ReallocArray] with the default fail-fast allocator.
func ReallocArray(buf []byte, nmemb, size uint) []byte {
	return runtimex.PanicOnError1(defaultAllocator.ReallocArray(buf, nmemb, size))
}

// Strdup is like [*Allocator.Strdup] with the default fail-fast allocator.
func Strdup(s string) string {
	return runtimex.PanicOnError1(defaultAllocator.Strdup(s))
}

// NewArray is like [MakeArray] with the default fail-fast allocator.
func NewArray[T any](count uint) []T {
	return runtimex.PanicOnError1(MakeArray[T](defaultAllocator, count))
}
