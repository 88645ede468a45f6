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

import (
	"fmt"

	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/genie"
	"github.com/jetsetilly/nopits/rom"
)

// CatalogError is the curated pattern for descriptors that cannot be
// resolved into edits.
const CatalogError = "patch: catalog: %v"

// Entry is a descriptor along with its resolved edits.
type Entry struct {
	Descriptor
	Resolved []Edit
}

// Catalog is an ordered list of resolved descriptors. It cannot be changed
// once created.
type Catalog struct {
	entries []Entry
}

// NewCatalog resolves the edits of every descriptor. Game Genie codes are
// decoded and generators are run. An error is returned if any descriptor
// fails to resolve, if any edit lies outside the image, or if the payloads
// of any two edits overlap.
func NewCatalog(descs ...Descriptor) (*Catalog, error) {
	cat := &Catalog{}

	for _, d := range descs {
		edits, err := resolve(d)
		if err != nil {
			return nil, curated.Errorf(CatalogError, fmt.Errorf("%s: %w", d.Name, err))
		}
		if len(edits) == 0 {
			return nil, curated.Errorf(CatalogError, fmt.Sprintf("%s: no edits", d.Name))
		}

		for _, e := range edits {
			if err := checkEdit(e); err != nil {
				return nil, curated.Errorf(CatalogError, fmt.Errorf("%s: %w", d.Name, err))
			}
		}

		for _, o := range cat.entries {
			for _, e := range edits {
				for _, oe := range o.Resolved {
					if e.overlaps(oe) {
						return nil, curated.Errorf(CatalogError, fmt.Sprintf("%s: edit %s overlaps %s edit %s", d.Name, e, o.Name, oe))
					}
				}
			}
		}

		cat.entries = append(cat.entries, Entry{Descriptor: d, Resolved: edits})
	}

	return cat, nil
}

func checkEdit(e Edit) error {
	if e.Offset < rom.HeaderSize || e.Skip < 0 || e.end() > rom.NROM256.Size() {
		return fmt.Errorf("edit %s is outside the PRG or CHR data", e)
	}
	if len(e.Payload) == 0 {
		return fmt.Errorf("edit %s has no payload", e)
	}
	return nil
}

func resolve(d Descriptor) ([]Edit, error) {
	switch d.Mode {
	case RawBytes:
		return d.Edits, nil

	case Mnemonic:
		c, err := genie.Decode(d.Code)
		if err != nil {
			return nil, err
		}
		return []Edit{FromCode(c)}, nil

	case Routine:
		if d.Generator == nil {
			return nil, fmt.Errorf("routine has no generator")
		}
		return d.Generator.Generate()
	}

	return nil, fmt.Errorf("unknown mode %d", d.Mode)
}

// FromCode returns the edit for a decoded Game Genie code. The compare value
// of an eight letter code becomes the expected context.
func FromCode(c genie.Code) Edit {
	// the address is always in PRG space so the error can be ignored
	o, _ := rom.CPUToFile(c.Address)
	e := Edit{
		Offset:  o,
		Payload: []byte{c.Value},
	}
	if c.HasCompare {
		e.Expect = []byte{c.Compare}
	}
	return e
}

// Len returns the number of entries in the catalog.
func (cat *Catalog) Len() int {
	return len(cat.entries)
}

// Entries returns a copy of the entries in catalog order.
func (cat *Catalog) Entries() []Entry {
	return append([]Entry{}, cat.entries...)
}
