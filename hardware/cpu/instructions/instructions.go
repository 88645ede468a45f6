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

// Package instructions defines the documented 6502 instruction set. Each
// opcode has a Definition giving its operator, size, cycle count, addressing
// mode and effect category.
//
// GetDefinitions() returns a table indexed by opcode. Lookup() finds the
// opcode for an operator and addressing mode, which is what an assembler
// needs.
package instructions

import (
	"fmt"
	"strings"
)

// Operator identifies the operation of an instruction, independent of
// addressing mode.
type Operator int

func (op Operator) String() string {
	if s, ok := operatorNames[op]; ok {
		return s
	}
	return "???"
}

// OperatorFromMnemonic returns the Operator for the mnemonic. Case is
// ignored.
func OperatorFromMnemonic(mnemonic string) (Operator, bool) {
	mnemonic = strings.ToUpper(mnemonic)
	for op, s := range operatorNames {
		if s == mnemonic {
			return op, true
		}
	}
	return 0, false
}

// Definition defines each instruction in the instruction set; one per instruction.
type Definition struct {
	OpCode         uint8
	Operator       Operator
	Bytes          int
	Cycles         int
	AddressingMode AddressingMode
	PageSensitive  bool
	Effect         Category
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles) [mode=%s pagesens=%t effect=%s]",
		defn.OpCode, defn.Operator, defn.Bytes, defn.Cycles, defn.AddressingMode, defn.PageSensitive, defn.Effect)
}

// IsBranch returns true if instruction is a branch instruction.
func (defn Definition) IsBranch() bool {
	return defn.AddressingMode == Relative && defn.Effect == Flow
}

// GetDefinitions returns the instruction table indexed by opcode. Entries
// for undocumented opcodes are nil.
func GetDefinitions() []*Definition {
	table := make([]*Definition, 256)
	for i := range definitions {
		table[definitions[i].OpCode] = &definitions[i]
	}
	return table
}

// Lookup returns the definition for the operator and addressing mode.
func Lookup(op Operator, mode AddressingMode) (Definition, bool) {
	for _, d := range definitions {
		if d.Operator == op && d.AddressingMode == mode {
			return d, true
		}
	}
	return Definition{}, false
}
