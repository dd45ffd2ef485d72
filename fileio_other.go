//go:build !unix && !plan9

// SPDX-License-Identifier: GPL-3.0-or-later

package mu

// Bulk I/O on raw descriptors is only available on unix systems.
func defaultFileIO() FileIO {
	return nil
}
