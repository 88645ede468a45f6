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

package regression

import (
	"fmt"
	"strings"
)

// Kind specifies which implementation of the controller a regression entry
// drives.
type Kind int

// List of valid Kind values. Use String() and ParseKind() to convert to and
// from string representations.
const (
	KindUndefined Kind = iota
	KindController
	KindRoutine
)

func (k Kind) String() string {
	switch k {
	case KindController:
		return "controller"
	case KindRoutine:
		return "routine"
	default:
		return "undefined"
	}
}

// ParseKind converts string to Kind representation.
func ParseKind(kind string) (Kind, error) {
	switch strings.ToLower(kind) {
	case "controller":
		return KindController, nil
	case "routine":
		return KindRoutine, nil
	}
	return KindUndefined, fmt.Errorf("invalid controller kind (%s)", kind)
}
