// SPDX-License-Identifier: GPL-3.0-or-later

package mu_test

import (
	"errors"
	"fmt"

	"github.com/bassosimone/mu"
	"github.com/bassosimone/runtimex"
)

// This example shows how to format an IPv4 socket address into a
// bounded buffer and detect truncation.
func Example_sockaddrIn() {
	sa := runtimex.PanicOnError1(mu.ParseSockaddrIn("192.0.2.1", "8080"))

	// A buffer of MaxInetStrSize bytes always fits the result
	buf := make([]byte, mu.MaxInetStrSize)
	n := mu.SockaddrInToStr(&sa, buf)
	fmt.Println(mu.CString(buf), n)

	// A smaller buffer truncates: the return value is the full length
	small := make([]byte, 5)
	n = mu.SockaddrInToStr(&sa, small)
	fmt.Printf("%q %d truncated=%v\n", mu.CString(small), n, n >= len(small))

	// Output:
	// 192.0.2.1:8080 14
	// "192." 14 truncated=true
}

// This example shows how to parse numbers with strict whole-string
// semantics and inspect the failure kind.
func Example_parse() {
	port, err := mu.ParseU16("0x1f90", 0)
	fmt.Println(port, err)

	_, err = mu.ParseU16("70000", 10)
	fmt.Println(errors.Is(err, mu.KindOutOfRange))

	_, err = mu.ParseLong("12abc", 10)
	fmt.Println(errors.Is(err, mu.KindInvalidInput))

	// Output:
	// 8080 <nil>
	// true
	// true
}
