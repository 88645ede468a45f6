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

	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/hardware/memory/cpubus"
)

// AccessError is the curated pattern for invalid memory accesses.
const AccessError = "memory: %v"

// Area defines the meta-operations for all memory areas. Peek and Poke are
// access outside of the normal operation of the machine. Poke can write to
// read-only areas.
type Area interface {
	Label() string
	Origin() uint16
	Memtop() uint16
	Peek(address uint16) (uint8, error)
	Poke(address uint16, value uint8) error
}

// Memory is the CPU's view of RAM and PRG.
type Memory struct {
	RAM *RAM
	PRG *PRG
}

// compile time check that Memory satisfies the cpubus interface
var _ cpubus.Memory = (*Memory)(nil)

// NewMemory is the preferred method of initialisation for Memory. The prg
// argument must be exactly 32KiB and is copied.
func NewMemory(prg []byte) (*Memory, error) {
	p, err := newPRG(prg)
	if err != nil {
		return nil, err
	}
	return &Memory{
		RAM: newRAM(),
		PRG: p,
	}, nil
}

// area returns the area and normalised address for a CPU address.
func (mem *Memory) area(address uint16) (Area, uint16, error) {
	switch {
	case address <= ramMirrorTop:
		return mem.RAM, address & ramMask, nil
	case address >= prgOrigin:
		return mem.PRG, address, nil
	}
	return nil, address, curated.Errorf(AccessError, fmt.Sprintf("no device at $%04x", address))
}

// Read implements the cpubus.Memory interface.
func (mem *Memory) Read(address uint16) (uint8, error) {
	ar, a, err := mem.area(address)
	if err != nil {
		return 0, err
	}
	return ar.Peek(a)
}

// Write implements the cpubus.Memory interface.
func (mem *Memory) Write(address uint16, data uint8) error {
	ar, a, err := mem.area(address)
	if err != nil {
		return err
	}
	if ar == Area(mem.PRG) {
		return curated.Errorf(AccessError, fmt.Sprintf("write of $%02x to read-only $%04x", data, address))
	}
	return ar.Poke(a, data)
}

// Peek returns the value at the address without side effects.
func (mem *Memory) Peek(address uint16) (uint8, error) {
	return mem.Read(address)
}

// Poke sets the value at the address. Unlike Write(), Poke can change PRG.
func (mem *Memory) Poke(address uint16, value uint8) error {
	ar, a, err := mem.area(address)
	if err != nil {
		return err
	}
	return ar.Poke(a, value)
}
