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
	"fmt"
)

// Region is a named range of the image.
type Region struct {
	Name   string
	Offset int
	Size   int
}

func (r Region) String() string {
	return fmt.Sprintf("%s [%#05x, %#05x)", r.Name, r.Offset, r.Offset+r.Size)
}

// Contains returns true if the offset is inside the region.
func (r Region) Contains(offset int) bool {
	return offset >= r.Offset && offset < r.Offset+r.Size
}

// the CPU address at which PRG data begins.
const PRGOrigin = 0x8000

// Image is a read-only view of a validated image.
type Image struct {
	layout Layout
	data   []byte
}

// NewImage validates data against the NROM256 layout and returns an Image
// that refers to it. The data is not copied but the Image never writes to it.
func NewImage(data []byte) (*Image, error) {
	if err := NROM256.Validate(data); err != nil {
		return nil, err
	}
	return &Image{layout: NROM256, data: data}, nil
}

// Layout returns the layout the image was validated against.
func (img *Image) Layout() Layout {
	return img.layout
}

// Len returns the length of the image in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// Regions returns the named regions of the image, in file order.
func (img *Image) Regions() []Region {
	prg := img.layout.PRGBanks * PRGBankSize
	chr := img.layout.CHRBanks * CHRBankSize
	return []Region{
		{Name: "header", Offset: 0, Size: HeaderSize},
		{Name: "prg", Offset: HeaderSize, Size: prg},
		{Name: "chr", Offset: HeaderSize + prg, Size: chr},
	}
}

// Region returns the region containing the offset.
func (img *Image) Region(offset int) (Region, bool) {
	for _, r := range img.Regions() {
		if r.Contains(offset) {
			return r, true
		}
	}
	return Region{}, false
}

func (img *Image) slice(name string) []byte {
	for _, r := range img.Regions() {
		if r.Name == name {
			return img.data[r.Offset : r.Offset+r.Size : r.Offset+r.Size]
		}
	}
	return nil
}

// Header returns the header bytes. The returned slice must not be modified.
func (img *Image) Header() []byte {
	return img.slice("header")
}

// PRG returns the program data. The returned slice must not be modified.
func (img *Image) PRG() []byte {
	return img.slice("prg")
}

// CHR returns the character data. The returned slice must not be modified.
func (img *Image) CHR() []byte {
	return img.slice("chr")
}

// Read returns a copy of n bytes at offset. The returned slice is shorter
// than n if the range extends past the end of the image.
func (img *Image) Read(offset int, n int) []byte {
	if offset < 0 || offset >= len(img.data) || n <= 0 {
		return nil
	}
	end := min(offset+n, len(img.data))
	return append([]byte{}, img.data[offset:end]...)
}

// Copy returns a newly allocated copy of the image data.
func (img *Image) Copy() []byte {
	return append(make([]byte, 0, len(img.data)), img.data...)
}

// CPUToFile converts a CPU address in the PRG range to a file offset.
func CPUToFile(addr uint16) (int, error) {
	if addr < PRGOrigin {
		return 0, fmt.Errorf("address %#04x is not in PRG space", addr)
	}
	return int(addr) - PRGOrigin + HeaderSize, nil
}

// FileToCPU converts a file offset in the PRG region to a CPU address.
func FileToCPU(offset int) (uint16, error) {
	if offset < HeaderSize || offset >= HeaderSize+NROM256.PRGBanks*PRGBankSize {
		return 0, fmt.Errorf("offset %#05x is not in the PRG region", offset)
	}
	return uint16(offset - HeaderSize + PRGOrigin), nil
}
