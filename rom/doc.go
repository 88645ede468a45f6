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

// Package rom is the model of the binary image being patched: an iNES file
// with a 16 byte header, PRG banks of 16KiB and CHR banks of 8KiB.
//
// Only one layout is supported, NROM256. Validate() checks that a byte
// buffer matches the layout and NewImage() wraps a validated buffer in a
// read-only Image. Nothing in the package mutates the buffer it is given.
//
// CPU addresses in the range $8000 to $FFFF map to PRG data. The
// CPUToFile() and FileToCPU() functions convert between CPU addresses and
// offsets into the file.
package rom
