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

package recovery

import (
	"github.com/jetsetilly/nopits/hardware/cpu/instructions"
)

var definitions = instructions.GetDefinitions()

// References returns the address of every instruction in prg that names the
// RAM address directly, in either its absolute or zero page form. prg is
// mapped at origin.
//
// Every offset is treated as a possible instruction so data that happens to
// look like an instruction is reported too. The result errs on the side of
// finding a reference. Indirect accesses through a pointer can't be found
// this way.
func References(prg []byte, origin uint16, addr uint16) []uint16 {
	var refs []uint16
	for i := range prg {
		defn := definitions[prg[i]]
		if defn == nil || i+defn.Bytes > len(prg) {
			continue
		}

		var operand uint16
		switch defn.AddressingMode {
		case instructions.Absolute, instructions.AbsoluteIndexedX, instructions.AbsoluteIndexedY:
			operand = uint16(prg[i+1]) | uint16(prg[i+2])<<8
		case instructions.ZeroPage, instructions.ZeroPageIndexedX, instructions.ZeroPageIndexedY:
			operand = uint16(prg[i+1])
		default:
			continue
		}

		// JMP and JSR name code, not RAM
		if defn.Effect == instructions.Flow || defn.Effect == instructions.Subroutine {
			continue
		}

		if operand == addr {
			refs = append(refs, origin+uint16(i))
		}
	}
	return refs
}
