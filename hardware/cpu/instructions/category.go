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

package instructions

// Category groups instructions by what they do to memory or control flow.
// The interpreter uses it to decide whether an operand must be read before
// the operator runs.
type Category int

// List of valid Category values.
const (
	Read Category = iota
	Write
	Modify
	Flow
	Subroutine
	Interrupt
)

var categoryNames = [...]string{"read", "write", "modify", "flow", "subroutine", "interrupt"}

func (e Category) String() string {
	if e < 0 || int(e) >= len(categoryNames) {
		return "unknown category"
	}
	return categoryNames[e]
}
