// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"encoding/binary"
	"io"
	"log/slog"
	"net"
	"net/netip"
	"strconv"
	"time"

	"github.com/bassosimone/mu/errno"
	"github.com/bassosimone/safeconn"
)

// Sizes of the buffers that always fit a formatted address, including
// the terminating NUL.
const (
	// MaxIPStrSize fits any textual IP address (INET6_ADDRSTRLEN).
	MaxIPStrSize = 46

	// MaxPortStrSize fits "65535".
	MaxPortStrSize = 6

	// MaxInetStrSize fits "<address>:<port>".
	MaxInetStrSize = MaxIPStrSize + MaxPortStrSize
)

// SockaddrIn is an IPv4 address and port pair.
//
// The port is stored in network byte order, as in a struct sockaddr_in.
// Use [SockaddrInPort] to obtain it in host byte order.
type SockaddrIn struct {
	Addr [4]byte
	Port [2]byte
}

// ParseSockaddrIn builds a [SockaddrIn] from a dotted-decimal IPv4
// address and a decimal port.
//
// Returns a [KindInvalidInput] error for a malformed address and the
// [ParseU16] error for a malformed port.
func ParseSockaddrIn(ip, port string) (SockaddrIn, error) {
	addr, err := parseIPv4(ip)
	if err != nil {
		return SockaddrIn{}, err
	}
	value, err := ParseU16(port, 10)
	if err != nil {
		return SockaddrIn{}, err
	}
	return newSockaddrIn(addr, value), nil
}

// parseIPv4 parses an IPv4 address in dotted-decimal notation.
func parseIPv4(ip string) ([4]byte, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is4() {
		return [4]byte{}, newError(KindInvalidInput, "parseAddr", errno.EINVAL)
	}
	return addr.As4(), nil
}

func newSockaddrIn(addr [4]byte, port uint16) SockaddrIn {
	sa := SockaddrIn{Addr: addr}
	binary.BigEndian.PutUint16(sa.Port[:], port)
	return sa
}

// SockaddrInPort returns the port of sa in host byte order.
func SockaddrInPort(sa *SockaddrIn) uint16 {
	return binary.BigEndian.Uint16(sa.Port[:])
}

// SockaddrInToIPStr formats the address of sa, without the port, into dst
// with [Strlcpy] semantics.
//
// Returns the length of the formatted address: the result was truncated
// if and only if the return value is >= len(dst).
func SockaddrInToIPStr(sa *SockaddrIn, dst []byte) int {
	return Strlcpy(dst, netip.AddrFrom4(sa.Addr).String())
}

// SockaddrInToStr formats sa as "<address>:<port>" into dst with
// [Strlcpy] semantics.
//
// Returns the length of the formatted string: the result was truncated
// if and only if the return value is >= len(dst).
func SockaddrInToStr(sa *SockaddrIn, dst []byte) int {
	var buf [MaxInetStrSize]byte
	SockaddrInToIPStr(sa, buf[:])
	Strlcat(buf[:], ":"+strconv.FormatUint(uint64(SockaddrInPort(sa)), 10))
	return Strlcpy(dst, CString(buf[:]))
}

// String implements [fmt.Stringer].
func (sa SockaddrIn) String() string {
	var buf [MaxInetStrSize]byte
	SockaddrInToStr(&sa, buf[:])
	return CString(buf[:])
}

// LocalSockaddrIn returns the local address of an IPv4 connection.
func LocalSockaddrIn(conn net.Conn) (SockaddrIn, error) {
	return sockaddrInFromString(safeconn.LocalAddr(conn))
}

// RemoteSockaddrIn returns the remote address of an IPv4 connection.
func RemoteSockaddrIn(conn net.Conn) (SockaddrIn, error) {
	return sockaddrInFromString(safeconn.RemoteAddr(conn))
}

// sockaddrInFromString parses an "<address>:<port>" endpoint. IPv4-mapped
// IPv6 addresses are accepted since dual-stack sockets report them.
func sockaddrInFromString(endpoint string) (SockaddrIn, error) {
	epnt, err := netip.ParseAddrPort(endpoint)
	if err != nil {
		return SockaddrIn{}, newError(KindInvalidInput, "parseAddrPort", err)
	}
	addr := epnt.Addr().Unmap()
	if !addr.Is4() {
		return SockaddrIn{}, newError(KindInvalidInput, "parseAddrPort", errno.EINVAL)
	}
	return newSockaddrIn(addr.As4(), epnt.Port()), nil
}

// NewSockets returns a new [*Sockets].
//
// The cfg argument contains the common configuration for mu operations.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewSockets(cfg *Config, logger SLogger) *Sockets {
	return &Sockets{
		ErrClassifier: cfg.ErrClassifier,
		Exit:          cfg.Exit,
		Logger:        logger,
		Stderr:        cfg.Stderr,
		TimeNow:       cfg.TimeNow,
	}
}

// Sockets configures socket addresses and socket descriptors.
//
// Its operations are meant for startup-time configuration: failures are
// programming or configuration errors, so they write a diagnostic and
// terminate the process instead of returning an error.
//
// All fields are safe to modify after construction but before first use.
type Sockets struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewSockets] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Exit terminates the process on failure.
	//
	// Set by [NewSockets] from [Config.Exit].
	Exit func(code int)

	// Logger is the [SLogger] to use.
	//
	// Set by [NewSockets] to the user-provided logger.
	Logger SLogger

	// Stderr receives the diagnostic on failure.
	//
	// Set by [NewSockets] from [Config.Stderr].
	Stderr io.Writer

	// TimeNow is the function to get the current time.
	//
	// Set by [NewSockets] from [Config.TimeNow].
	TimeNow func() time.Time
}

// InitSockaddrIn fills sa from a dotted-decimal IPv4 address and a
// decimal port, terminating the process if either is malformed.
func (s *Sockets) InitSockaddrIn(sa *SockaddrIn, ip, port string) {
	*sa = SockaddrIn{}
	addr, err := parseIPv4(ip)
	if err != nil {
		s.terminator().dief("invalid IP address")
	}
	value, err := ParseU16(port, 10)
	if err != nil {
		s.terminator().dief("invalid port number")
	}
	*sa = newSockaddrIn(addr, value)
}

func (s *Sockets) terminator() terminator {
	return terminator{exit: s.Exit, stderr: s.Stderr}
}

// logDone emits the <name>Done event for a socket option change.
func (s *Sockets) logDone(name string, fd int, t0 time.Time, err error) {
	s.Logger.Info(
		name+"Done",
		append([]any{slog.Int("fd", fd)}, doneAttrs(s.ErrClassifier, err, t0, s.TimeNow())...)...,
	)
}

// defaultSockets backs the package-level socket functions.
var defaultSockets = NewSockets(NewConfig(), DefaultSLogger())

// InitSockaddrIn is like [*Sockets.InitSockaddrIn] with the default configuration.
func InitSockaddrIn(sa *SockaddrIn, ip, port string) {
	defaultSockets.InitSockaddrIn(sa, ip, port)
}
