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

package genie

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/nopits/curated"
)

// the high bit of the third letter.
const lengthFlag = 0x08

// Decode a six or eight letter code. Letters may be in either case and
// surrounding whitespace is ignored. Errors use the FormatError pattern.
func Decode(code string) (Code, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	if len(code) != 6 && len(code) != 8 {
		return Code{}, curated.Errorf(FormatError, fmt.Sprintf("%q has %d letters, expected 6 or 8", code, len(code)))
	}

	var n [8]uint16
	for i, r := range code {
		idx := strings.IndexRune(Alphabet, r)
		if idx < 0 {
			return Code{}, curated.Errorf(FormatError, fmt.Sprintf("%q contains %q which is not a code letter", code, r))
		}
		n[i] = uint16(idx)
	}

	c := Code{
		Address: 0x8000 |
			((n[3] & 7) << 12) |
			((n[5] & 7) << 8) | ((n[4] & 8) << 8) |
			((n[2] & 7) << 4) | ((n[1] & 8) << 4) |
			(n[4] & 7) | (n[3] & 8),
		LengthFlag: n[2]&lengthFlag == lengthFlag,
	}

	value := ((n[1] & 7) << 4) | ((n[0] & 8) << 4) | (n[0] & 7)

	if len(code) == 6 {
		value |= n[5] & 8
	} else {
		value |= n[7] & 8
		c.HasCompare = true
		c.Compare = uint8(((n[7] & 7) << 4) | ((n[6] & 8) << 4) | (n[6] & 7) | (n[5] & 8))
	}
	c.Value = uint8(value)

	return c, nil
}

// Encode returns the letters for the code.
func Encode(c Code) string {
	a := c.Address
	v := uint16(c.Value)
	cm := uint16(c.Compare)

	var n [8]uint16
	n[0] = (v & 7) | ((v >> 4) & 8)
	n[1] = ((v >> 4) & 7) | ((a >> 4) & 8)
	n[2] = (a >> 4) & 7
	if c.LengthFlag {
		n[2] |= lengthFlag
	}
	n[3] = ((a >> 12) & 7) | (a & 8)
	n[4] = (a & 7) | ((a >> 8) & 8)
	n[5] = (a >> 8) & 7

	l := 6
	if c.HasCompare {
		l = 8
		n[5] |= cm & 8
		n[6] = (cm & 7) | ((cm >> 4) & 8)
		n[7] = ((cm >> 4) & 7) | (v & 8)
	} else {
		n[5] |= v & 8
	}

	var s strings.Builder
	for i := range l {
		s.WriteByte(Alphabet[n[i]])
	}
	return s.String()
}
