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

// Package registers implements the three types of registers found in the 6502:
// the 8-bit general purpose registers, the program counter and the status
// register.
//
// The Register type implements the arithmetic and logical operations of the
// CPU. The operations return the carry and overflow states but it is up to
// the CPU to transfer those to the status register. For example:
//
//	a.Load(10)
//	carry, overflow := a.Subtract(11, true)
//	sr.Zero = a.IsZero()
//	sr.Carry = carry
//
// The 2A03 variant of the 6502 does not implement decimal mode so the
// DecimalMode flag is stored but has no effect on arithmetic.
package registers
