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

// Package cpu emulates the 6502 microprocessor, as found in the 2A03 of the
// NES. Like all 8-bit processors of the era, the 6502 executes instructions
// according to the single byte value read from an address pointed to by the
// program counter. This single byte is the opcode and is looked up in the
// instruction table. The instruction definition for that opcode is then used
// to move execution of the program forward.
//
// The emulation is instruction accurate rather than cycle accurate. The
// number of cycles used by each instruction is counted, including page
// crossing penalties and taken branches, but memory is accessed only as the
// instruction requires and not on every cycle.
//
// The 2A03 does not implement decimal mode. ADC and SBC are always binary.
//
// The Call() function runs a subroutine to completion. It is how the
// installed routines of a patched image are exercised outside of a real
// machine.
package cpu
