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
)

// FormatError is the curated pattern for malformed codes.
const FormatError = "genie: format: %v"

// Alphabet is the sixteen letters of the code alphabet, in nibble order.
const Alphabet = "APZLGITYEOXUKSVN"

// Code is a decoded Game Genie code.
type Code struct {
	Address uint16
	Value   uint8

	// Compare is only meaningful if HasCompare is true
	Compare    uint8
	HasCompare bool

	// the state of the length flag in the third letter. see package
	// documentation
	LengthFlag bool
}

// NewCode returns a six letter code.
func NewCode(address uint16, value uint8) Code {
	return Code{Address: address | 0x8000, Value: value}
}

// NewCompareCode returns an eight letter code.
func NewCompareCode(address uint16, value uint8, compare uint8) Code {
	return Code{Address: address | 0x8000, Value: value, Compare: compare, HasCompare: true, LengthFlag: true}
}

// Canonical returns true if the length flag agrees with the length of the
// code.
func (c Code) Canonical() bool {
	return c.LengthFlag == c.HasCompare
}

// Len returns the number of letters in the encoded form of the code.
func (c Code) Len() int {
	if c.HasCompare {
		return 8
	}
	return 6
}

// String returns the code in the conventional address?compare:value form.
func (c Code) String() string {
	if c.HasCompare {
		return fmt.Sprintf("%04X?%02X:%02X", c.Address, c.Compare, c.Value)
	}
	return fmt.Sprintf("%04X:%02X", c.Address, c.Value)
}
