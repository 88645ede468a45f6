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

package hostsim

import (
	"fmt"
	"strings"
)

// Variant is a level or area type with its own gravity.
type Variant struct {
	Name string

	// gravity while ascending with the jump button held
	AscendGravity uint8

	// gravity in all other airborne states
	DescendGravity uint8

	// terminal downward velocity
	MaxFall int8
}

func (v Variant) String() string {
	return fmt.Sprintf("%s (%#02x/%#02x)", v.Name, v.AscendGravity, v.DescendGravity)
}

// Variants is the closed set of gravity variants.
var Variants = []Variant{
	{Name: "overworld", AscendGravity: 0x20, DescendGravity: 0x70, MaxFall: 4},
	{Name: "underground", AscendGravity: 0x1e, DescendGravity: 0x60, MaxFall: 4},
	{Name: "castle", AscendGravity: 0x70, DescendGravity: 0x70, MaxFall: 4},
	{Name: "athletic", AscendGravity: 0x28, DescendGravity: 0x90, MaxFall: 4},
	{Name: "alternate", AscendGravity: 0x04, DescendGravity: 0x70, MaxFall: 4},
}

// FindVariant returns the variant with the name. Case insensitive.
func FindVariant(name string) (Variant, bool) {
	for _, v := range Variants {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Variant{}, false
}
