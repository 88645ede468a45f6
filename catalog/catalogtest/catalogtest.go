// This file is part of Nopits.
//
// Nopits is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Nopits is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Nopits.  If not, see <https://www.gnu.org/licenses/>.

// Package catalogtest creates images that the catalog applies to cleanly.
package catalogtest

import (
	"github.com/jetsetilly/nopits/recovery"
	"github.com/jetsetilly/nopits/rom/romtest"
)

// Image returns a valid image with the context of every catalog entry in
// place. PRG space is filled with NOP instructions apart from a run of $ff
// bytes before the interrupt vectors, which is the only space the recovery
// tail can be placed in.
func Image() []byte {
	data := romtest.Blank(0xea)
	for a := uint16(0xff80); a < 0xfffa; a++ {
		romtest.Place(data, a, recovery.SMB.Free)
	}

	// NMI, RESET and IRQ
	romtest.Place(data, 0xfffa, 0x82, 0x80, 0x00, 0x80, 0xf0, 0xff)

	romtest.Place(data, recovery.SMB.Entry, recovery.SMB.EntryContext...)

	// RTS at ExitCtrl and the start of CloudExit
	romtest.Place(data, 0xb1ba, 0x60, 0xa9, 0x00)

	romtest.Place(data, 0xb78d, 0xa9, 0xff, 0x8d, 0x39, 0x01, 0x20, 0x5f, 0x8f)
	romtest.Place(data, 0xdec9, 0xa9, 0x70, 0x8d, 0x09, 0x07, 0xa9, 0xf9, 0x8d, 0xdb, 0x06)
	romtest.Place(data, 0xc0eb, 0xa5, 0xce, 0xd9, 0x81, 0xc0, 0xd0, 0x23, 0xa5, 0x1d, 0xc9, 0x00, 0xd0, 0x1d)
	return data
}
