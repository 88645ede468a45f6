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

// Package memory implements the memory seen by the CPU of an NROM cartridge
// machine: 2KiB of internal RAM, mirrored up to $1FFF, and 32KiB of PRG data
// at $8000. The PRG is read-only. Writing to it is an error, which catches
// code that strays outside its own variables.
//
// The region between $2000 and $7FFF, which holds the PPU and APU registers
// in a real machine, is not implemented. Accessing it is an error.
package memory
