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
	"bytes"
	"fmt"
)

// Edit is a single context-checked change to an image. The bytes at Offset
// must equal Expect before the Payload is written at Offset+Skip.
type Edit struct {
	Offset  int
	Expect  []byte
	Skip    int
	Payload []byte
}

func (e Edit) String() string {
	return fmt.Sprintf("%#05x+%d [% 02x]", e.Offset, e.Skip, e.Payload)
}

// PayloadOffset returns the offset at which the payload is written.
func (e Edit) PayloadOffset() int {
	return e.Offset + e.Skip
}

// end returns the offset one past the furthest byte the edit looks at.
func (e Edit) end() int {
	return max(e.Offset+len(e.Expect), e.PayloadOffset()+len(e.Payload))
}

// patched returns what the context should look like after the payload has
// been written.
func (e Edit) patched() []byte {
	c := append([]byte{}, e.Expect...)
	for i, b := range e.Payload {
		j := e.Skip + i
		if j >= 0 && j < len(c) {
			c[j] = b
		}
	}
	return c
}

// contextMatches returns true if data holds the expected context.
func (e Edit) contextMatches(data []byte) bool {
	return bytes.Equal(data[e.Offset:e.Offset+len(e.Expect)], e.Expect)
}

// alreadyApplied returns true if data holds the payload and the part of the
// context the payload does not cover.
func (e Edit) alreadyApplied(data []byte) bool {
	p := e.PayloadOffset()
	if !bytes.Equal(data[p:p+len(e.Payload)], e.Payload) {
		return false
	}
	return bytes.Equal(data[e.Offset:e.Offset+len(e.Expect)], e.patched())
}

// write the payload into data.
func (e Edit) write(data []byte) {
	copy(data[e.PayloadOffset():], e.Payload)
}

// overlaps returns true if the payload ranges of the two edits intersect.
func (e Edit) overlaps(o Edit) bool {
	a0, a1 := e.PayloadOffset(), e.PayloadOffset()+len(e.Payload)
	b0, b1 := o.PayloadOffset(), o.PayloadOffset()+len(o.Payload)
	return a0 < b1 && b0 < a1
}
