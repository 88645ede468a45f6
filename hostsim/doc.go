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

// Package hostsim is a reference model of the host's vertical movement. It
// is used to drive a recovery controller through many frames and to check
// that every intervention results in a bounded arc.
//
// The Host type integrates position, velocity and the sub-unit accumulator
// once per frame with the gravity selected by the movement state and the
// level variant. The Variants list covers the gravity tables seen in the
// game.
//
// Two controllers can be driven by the harness. The recovery.Controller is
// the Go implementation. The Machine type runs the 6502 routine installed
// in a patched image and reads the results back from memory. Comparing the
// two shows that the installed routine behaves as the Go implementation.
package hostsim
