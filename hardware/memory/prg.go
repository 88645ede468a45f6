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
)

const (
	prgOrigin = 0x8000
	prgSize   = 0x8000
)

// PRG is the cartridge program data.
type PRG struct {
	data []uint8
}

func newPRG(prg []byte) (*PRG, error) {
	if len(prg) != prgSize {
		return nil, curated.Errorf(AccessError, fmt.Sprintf("PRG must be %d bytes not %d", prgSize, len(prg)))
	}
	return &PRG{data: append([]uint8{}, prg...)}, nil
}

// Label implements the Area interface.
func (prg *PRG) Label() string {
	return "PRG"
}

// Origin implements the Area interface.
func (prg *PRG) Origin() uint16 {
	return prgOrigin
}

// Memtop implements the Area interface.
func (prg *PRG) Memtop() uint16 {
	return 0xffff
}

// Peek implements the Area interface.
func (prg *PRG) Peek(address uint16) (uint8, error) {
	return prg.data[address-prgOrigin], nil
}

// Poke implements the Area interface.
func (prg *PRG) Poke(address uint16, value uint8) error {
	prg.data[address-prgOrigin] = value
	return nil
}
