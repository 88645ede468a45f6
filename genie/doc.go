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

// Package genie decodes and encodes NES Game Genie codes.
//
// A code is a string of six or eight letters taken from the alphabet
// APZLGITYEOXUKSVN. Each letter carries four bits. The bits are interleaved
// to give a CPU address in the range $8000 to $FFFF, a replacement value and,
// for eight letter codes, a compare value. An eight letter code only takes
// effect if the byte at the address equals the compare value.
//
// The high bit of the third letter is the length flag. It is clear for six
// letter codes and set for eight letter codes in every code produced by the
// Encode() function. Codes found in the wild do not always follow this rule so
// Decode() accepts either state and records it in the Code, which means that
// Encode(Decode(s)) always reproduces s.
package genie
