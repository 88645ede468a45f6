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
	"github.com/jetsetilly/nopits/logger"
	"github.com/jetsetilly/nopits/rom"
)

// LocateError is the curated pattern for a routine that cannot be placed in
// the image being patched.
const LocateError = "patch: locate: %v"

// Apply the catalog to a copy of data. The structure of data is validated
// first and a structural error means that no output is produced. Otherwise
// the returned slice is always a new buffer, even if nothing was applied.
//
// Applying a catalog to its own output produces identical bytes and reports
// every previously applied descriptor as AlreadyApplied.
func Apply(data []byte, cat *Catalog) ([]byte, Report, error) {
	img, err := rom.NewImage(data)
	if err != nil {
		return nil, Report{}, err
	}

	out := img.Copy()

	var rep Report
	for i, e := range cat.entries {
		var o Outcome
		if e, err = cat.locate(i, data); err != nil {
			o = Outcome{Name: e.Name, Mode: e.Mode, Status: Skipped, Err: err}
		} else {
			o = apply(out, e)
		}
		rep.Outcomes = append(rep.Outcomes, o)
		logger.Log(logger.Allow, "patch", o.String())
	}

	return out, rep, nil
}

// locate returns the entry with its edits resolved against the original
// image, if the generator of the entry is a Locator. The edits are checked
// against the edits of every other entry in the same way as NewCatalog().
func (cat *Catalog) locate(idx int, data []byte) (Entry, error) {
	e := cat.entries[idx]
	if e.Mode != Routine {
		return e, nil
	}
	loc, ok := e.Generator.(Locator)
	if !ok {
		return e, nil
	}

	g, err := loc.Locate(data)
	if err != nil {
		return e, curated.Errorf(LocateError, err)
	}
	edits, err := g.Generate()
	if err != nil {
		return e, curated.Errorf(LocateError, err)
	}

	for _, ed := range edits {
		if err := checkEdit(ed); err != nil {
			return e, curated.Errorf(LocateError, err)
		}
		for j, o := range cat.entries {
			if j == idx {
				continue
			}
			for _, oe := range o.Resolved {
				if ed.overlaps(oe) {
					return e, curated.Errorf(LocateError, fmt.Sprintf("edit %s overlaps %s edit %s", ed, o.Name, oe))
				}
			}
		}
	}

	e.Generator = g
	e.Resolved = edits
	return e, nil
}

func apply(out []byte, e Entry) Outcome {
	o := Outcome{Name: e.Name, Mode: e.Mode}

	var pending []Edit
	for _, ed := range e.Resolved {
		if ed.alreadyApplied(out) {
			continue
		}
		if !ed.contextMatches(out) {
			o.Status = Skipped
			o.Err = mismatch(out, ed)
			return o
		}
		pending = append(pending, ed)
	}

	if len(pending) == 0 {
		o.Status = AlreadyApplied
		return o
	}

	for _, ed := range pending {
		ed.write(out)
	}
	o.Status = Applied

	return o
}

func mismatch(out []byte, ed Edit) error {
	actual := out[ed.Offset : ed.Offset+len(ed.Expect)]
	at := fmt.Sprintf("%#05x", ed.Offset)
	if a, err := rom.FileToCPU(ed.Offset); err == nil {
		at = fmt.Sprintf("%s ($%04X)", at, a)
	}
	return curated.Errorf(ContextMismatch, fmt.Sprintf("at %s expected [% 02x] found [% 02x]", at, ed.Expect, actual))
}
