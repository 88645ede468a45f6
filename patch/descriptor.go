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

package patch

// Mode says how the edits of a Descriptor are produced.
type Mode int

// List of valid Mode values.
const (
	RawBytes Mode = iota
	Mnemonic
	Routine
)

func (m Mode) String() string {
	switch m {
	case RawBytes:
		return "raw"
	case Mnemonic:
		return "mnemonic"
	case Routine:
		return "routine"
	}
	return "unknown"
}

// Generator produces the edits for a Routine mode descriptor.
type Generator interface {
	Generate() ([]Edit, error)
}

// Locator is implemented by a Generator whose edits depend on the content of
// the image, for example a routine placed in whatever unused space the image
// has. Apply() calls Locate() with the image being patched and uses the
// edits of the returned Generator in place of those resolved by NewCatalog().
type Locator interface {
	Locate(data []byte) (Generator, error)
}

// Descriptor is one entry in the catalog. Which of Edits, Code or Generator is
// used depends on Mode.
type Descriptor struct {
	Name  string
	Notes string
	Mode  Mode

	// RawBytes mode
	Edits []Edit

	// Mnemonic mode. a six or eight letter Game Genie code
	Code string

	// Routine mode
	Generator Generator
}
