// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"math"

	"github.com/bassosimone/mu/errno"
)

// ParseLong converts s to an int64 using the given base.
//
// The accepted syntax is the one of C's strtol: optional leading white
// space, an optional sign, then digits in base. Base 0 selects the base
// from the prefix ("0x" or "0X" for 16, "0" for 8, otherwise 10) and
// base 16 accepts an optional "0x" prefix. Valid bases are 0 and 2..36.
//
// Unlike strtol, the whole string must be consumed. Errors, in order of
// precedence, have kind:
//   - [KindInvalidInput] (EINVAL) for an invalid base;
//   - [KindOutOfRange] (ERANGE) when the value does not fit an int64;
//   - [KindInvalidInput] (EINVAL) when s contains no digits;
//   - [KindInvalidInput] (EINVAL) when digits are followed by anything else.
//
// On failure the returned value is zero.
func ParseLong(s string, base int) (int64, error) {
	if base != 0 && (base < 2 || base > 36) {
		return 0, newError(KindInvalidInput, "parse", errno.EINVAL)
	}

	idx := 0
	for idx < len(s) && isCSpace(s[idx]) {
		idx++
	}

	negative := false
	if idx < len(s) && (s[idx] == '+' || s[idx] == '-') {
		negative = s[idx] == '-'
		idx++
	}

	// A "0x" prefix only counts when a hex digit follows it. Otherwise
	// the "0" is the number and the "x" is trailing garbage.
	switch {
	case (base == 0 || base == 16) && hasHexPrefix(s[idx:]):
		idx += 2
		base = 16
	case base == 0 && idx < len(s) && s[idx] == '0':
		base = 8
	case base == 0:
		base = 10
	}

	limit := uint64(math.MaxInt64)
	if negative {
		limit++
	}

	var (
		acc      uint64
		ndigits  int
		overflow bool
	)
	for ; idx < len(s); idx++ {
		digit := digitValue(s[idx])
		if digit >= base {
			break
		}
		ndigits++
		if overflow {
			continue
		}
		if acc > (limit-uint64(digit))/uint64(base) {
			overflow = true
			continue
		}
		acc = acc*uint64(base) + uint64(digit)
	}

	switch {
	case overflow:
		return 0, newError(KindOutOfRange, "parse", errno.ERANGE)
	case ndigits == 0:
		return 0, newError(KindInvalidInput, "parse", errno.EINVAL)
	case idx != len(s):
		return 0, newError(KindInvalidInput, "parse", errno.EINVAL)
	}

	if negative {
		// acc <= MaxInt64+1 here; the conversion wraps correctly for MinInt64
		return -int64(acc), nil
	}
	return int64(acc), nil
}

// ParseInt is like [ParseLong] but the value must fit an int32.
func ParseInt(s string, base int) (int32, error) {
	return parseNarrow[int32](s, base, math.MinInt32, math.MaxInt32)
}

// ParseUint is like [ParseLong] but the value must fit a C unsigned int
// (32 bits on all supported platforms). Negative values are out of range.
func ParseUint(s string, base int) (uint32, error) {
	return parseNarrow[uint32](s, base, 0, math.MaxUint32)
}

// ParseU32 is like [ParseLong] but the value must fit a uint32.
func ParseU32(s string, base int) (uint32, error) {
	return parseNarrow[uint32](s, base, 0, math.MaxUint32)
}

// ParseU16 is like [ParseLong] but the value must fit a uint16.
func ParseU16(s string, base int) (uint16, error) {
	return parseNarrow[uint16](s, base, 0, math.MaxUint16)
}

// parseNarrow parses s as an int64 and checks it is within [lo, hi].
func parseNarrow[T int32 | uint32 | uint16](s string, base int, lo, hi int64) (T, error) {
	value, err := ParseLong(s, base)
	if err != nil {
		return 0, err
	}
	if value < lo || value > hi {
		return 0, newError(KindOutOfRange, "parse", errno.ERANGE)
	}
	return T(value), nil
}

// isCSpace is isspace(3) in the C locale.
func isCSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// hasHexPrefix reports whether s starts with "0x" or "0X" and a hex digit.
func hasHexPrefix(s string) bool {
	return len(s) >= 3 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && digitValue(s[2]) < 16
}

// digitValue returns the value of ch as a base-36 digit or 36 when ch
// is not a digit in any base.
func digitValue(ch byte) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'z':
		return int(ch-'a') + 10
	case 'A' <= ch && ch <= 'Z':
		return int(ch-'A') + 10
	default:
		return 36
	}
}
