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

package assembler

import (
	"fmt"
	"strings"
)

// Instruction is one assembled instruction, or a block of data.
type Instruction struct {
	Address uint16
	Bytes   []byte
	Text    string

	// labels defined at this address
	Labels []string
}

// Program is the result of assembly.
type Program struct {
	Origin       uint16
	Code         []byte
	Labels       map[string]uint16
	Instructions []Instruction
}

// Label returns the address of the label.
func (prog Program) Label(name string) (uint16, bool) {
	a, ok := prog.Labels[name]
	return a, ok
}

// End returns the address one past the last byte of the program.
func (prog Program) End() int {
	return int(prog.Origin) + len(prog.Code)
}

// Listing returns the program in a conventional assembler listing format.
func (prog Program) Listing() string {
	var s strings.Builder
	for _, ins := range prog.Instructions {
		for _, l := range ins.Labels {
			s.WriteString(fmt.Sprintf("%s:\n", l))
		}
		if len(ins.Bytes) == 0 {
			continue
		}
		hex := fmt.Sprintf("% 02X", ins.Bytes)
		if len(hex) > 8 {
			hex = fmt.Sprintf("%s..", hex[:8])
		}
		s.WriteString(fmt.Sprintf("$%04X  %-10s  %s\n", ins.Address, hex, ins.Text))
	}
	return s.String()
}
