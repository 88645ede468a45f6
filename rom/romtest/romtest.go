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

// Package romtest builds synthetic images for use in tests. No copyrighted
// data is required: the images have a valid header and whatever content the
// test places in them.
package romtest

import (
	"github.com/jetsetilly/nopits/rom"
)

// Blank returns a valid NROM256 image. The PRG and CHR regions are filled
// with the fill byte.
func Blank(fill byte) []byte {
	data := make([]byte, rom.NROM256.Size())
	copy(data, rom.NROM256.Magic[:])
	data[4] = byte(rom.NROM256.PRGBanks)
	data[5] = byte(rom.NROM256.CHRBanks)
	for i := rom.HeaderSize; i < len(data); i++ {
		data[i] = fill
	}
	return data
}

// Place copies b into data at the CPU address. It panics if the address is
// not in PRG space.
func Place(data []byte, addr uint16, b ...byte) {
	o, err := rom.CPUToFile(addr)
	if err != nil {
		panic(err)
	}
	copy(data[o:], b)
}
