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

package rom

import (
	"bytes"
	"fmt"

	"github.com/jetsetilly/nopits/curated"
)

// StructuralError is the curated pattern for images that do not match the
// declared layout. It is fatal to the patching operation.
const StructuralError = "rom: structure: %v"

// sizes of the fixed regions.
const (
	HeaderSize  = 16
	PRGBankSize = 0x4000
	CHRBankSize = 0x2000
)

// Layout is the declared shape of an image.
type Layout struct {
	Name     string
	Magic    [4]byte
	PRGBanks int
	CHRBanks int
	Mapper   int
}

// NROM256 is the layout of the Super Mario Bros. cartridge.
var NROM256 = Layout{
	Name:     "NROM-256",
	Magic:    [4]byte{'N', 'E', 'S', 0x1a},
	PRGBanks: 2,
	CHRBanks: 1,
	Mapper:   0,
}

// Size returns the total length in bytes of an image with this layout.
func (l Layout) Size() int {
	return HeaderSize + l.PRGBanks*PRGBankSize + l.CHRBanks*CHRBankSize
}

func (l Layout) String() string {
	return fmt.Sprintf("%s (PRG %dx16K, CHR %dx8K, mapper %d)", l.Name, l.PRGBanks, l.CHRBanks, l.Mapper)
}

// mapper number is split over the high nibbles of header bytes 6 and 7.
// bytes 12 to 15 are zero in a clean header. older dumping tools wrote their
// name from byte 7 onwards ("DiskDude!") so byte 7 is only used when the end
// of the header is clean
func mapperNumber(header []byte) int {
	m := int(header[6] >> 4)
	if bytes.Equal(header[12:16], []byte{0, 0, 0, 0}) {
		m |= int(header[7] & 0xf0)
	}
	return m
}

// Validate checks that data matches the layout. The returned error uses the
// StructuralError pattern.
func (l Layout) Validate(data []byte) error {
	if len(data) != l.Size() {
		return curated.Errorf(StructuralError, fmt.Sprintf("image length is %d bytes, expected %d", len(data), l.Size()))
	}
	if !bytes.Equal(data[:4], l.Magic[:]) {
		return curated.Errorf(StructuralError, fmt.Sprintf("bad signature % 02x", data[:4]))
	}
	if int(data[4]) != l.PRGBanks {
		return curated.Errorf(StructuralError, fmt.Sprintf("%d PRG banks, expected %d", data[4], l.PRGBanks))
	}
	if int(data[5]) != l.CHRBanks {
		return curated.Errorf(StructuralError, fmt.Sprintf("%d CHR banks, expected %d", data[5], l.CHRBanks))
	}
	if m := mapperNumber(data); m != l.Mapper {
		return curated.Errorf(StructuralError, fmt.Sprintf("mapper %d, expected %d", m, l.Mapper))
	}
	return nil
}

// Validate checks data against the NROM256 layout.
func Validate(data []byte) error {
	return NROM256.Validate(data)
}
