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

// Package assembler is a small two-pass 6502 assembler for generating the
// routines installed by the patcher.
//
// Instructions are added with methods on the Assembler type. Labels can be
// used as branch and jump targets before they are defined. Errors in the
// source, such as an unknown mnemonic, are held until Assemble() is called so
// that routines can be written as a straight sequence of calls:
//
//	asm := assembler.New()
//	asm.Equate("exit", 0xb1ba)
//	asm.Address("DEC", 0x015f)
//	asm.Branch("BPL", "exit")
//	...
//	prog, err := asm.Assemble(0xb179)
//
// The Address() method chooses zero page addressing if the address is in the
// zero page and the instruction has a zero page form.
package assembler
