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

package memory

import (
	"fmt"
	"strings"
)

const (
	ramSize      = 0x0800
	ramMask      = ramSize - 1
	ramMirrorTop = 0x1fff
)

// RAM is the 2KiB of internal memory.
type RAM struct {
	memory []uint8
}

func newRAM() *RAM {
	return &RAM{memory: make([]uint8, ramSize)}
}

// Label implements the Area interface.
func (ram *RAM) Label() string {
	return "RAM"
}

// Origin implements the Area interface.
func (ram *RAM) Origin() uint16 {
	return 0x0000
}

// Memtop implements the Area interface.
func (ram *RAM) Memtop() uint16 {
	return ramMask
}

// Peek implements the Area interface.
func (ram *RAM) Peek(address uint16) (uint8, error) {
	return ram.memory[address&ramMask], nil
}

// Poke implements the Area interface.
func (ram *RAM) Poke(address uint16, value uint8) error {
	ram.memory[address&ramMask] = value
	return nil
}

// Dump returns a hex dump of the page containing the address.
func (ram *RAM) Dump(page uint8) string {
	base := (uint16(page) << 8) & ramMask

	s := strings.Builder{}
	s.WriteString("       -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")
	s.WriteString("     ---- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --\n")
	for y := range uint16(16) {
		s.WriteString(fmt.Sprintf("%03X- | ", (base+y*16)>>4))
		for x := range uint16(16) {
			s.WriteString(fmt.Sprintf(" %02x", ram.memory[base+y*16+x]))
		}
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}
