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
	"strings"
)

// ContextMismatch is the curated pattern for edits whose context does not
// match the image. It is not fatal. The descriptor is skipped.
const ContextMismatch = "patch: context mismatch: %v"

// Status is the result of applying one descriptor.
type Status int

// List of valid Status values.
const (
	Applied Status = iota
	AlreadyApplied
	Skipped
)

func (s Status) String() string {
	switch s {
	case Applied:
		return "applied"
	case AlreadyApplied:
		return "already applied"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// Outcome records what happened to one descriptor.
type Outcome struct {
	Name   string
	Mode   Mode
	Status Status

	// the reason a descriptor was skipped. nil otherwise
	Err error
}

func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", o.Name, o.Status, o.Err)
	}
	return fmt.Sprintf("%s: %s", o.Name, o.Status)
}

// Report is the list of outcomes in catalog order.
type Report struct {
	Outcomes []Outcome
}

func (r Report) count(s Status) int {
	var n int
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Applied returns the number of descriptors applied by this run.
func (r Report) Applied() int {
	return r.count(Applied)
}

// AlreadyApplied returns the number of descriptors found already applied.
func (r Report) AlreadyApplied() int {
	return r.count(AlreadyApplied)
}

// Skipped returns the number of descriptors skipped because of a context
// mismatch.
func (r Report) Skipped() int {
	return r.count(Skipped)
}

// Warnings returns the reasons for every skipped descriptor.
func (r Report) Warnings() []error {
	var w []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			w = append(w, o.Err)
		}
	}
	return w
}

// Summary returns a single line with the counts of each status.
func (r Report) Summary() string {
	return fmt.Sprintf("%d applied, %d already applied, %d skipped", r.Applied(), r.AlreadyApplied(), r.Skipped())
}

func (r Report) String() string {
	var s strings.Builder
	for _, o := range r.Outcomes {
		s.WriteString(o.String())
		s.WriteString("\n")
	}
	s.WriteString(r.Summary())
	return s.String()
}
