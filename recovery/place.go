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

package recovery

import (
	"bytes"
	"fmt"

	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/rom"
)

// PlaceError is the curated pattern for images that the routine cannot be
// installed in.
const PlaceError = "recovery: place: %v"

// the interrupt vectors at the end of PRG space
const vectorsSize = 6

// Place returns a copy of the routine with the home address chosen for the
// image. If the routine is already installed the home is the target of the
// head's jump. Otherwise the tail goes at the end of the last run of unused
// space before the interrupt vectors.
//
// An error is returned if there is no suitable unused space or if the host
// code in the image names the private cell.
func (r Routine) Place(data []byte) (Routine, error) {
	img, err := rom.NewImage(data)
	if err != nil {
		return r, curated.Errorf(PlaceError, err)
	}
	prg := img.PRG()

	tail, err := r.Tail()
	if err != nil {
		return r, curated.Errorf(PlaceError, err)
	}

	if home, ok := r.installed(prg); ok {
		r.Host.Home = home
	} else {
		home, ok := r.unused(prg, len(tail.Code))
		if !ok {
			return r, curated.Errorf(PlaceError,
				fmt.Sprintf("no run of %d unused bytes ($%02x) for the %d byte tail", max(r.Host.FreeRun, len(tail.Code)), r.Host.Free, len(tail.Code)))
		}
		r.Host.Home = home
	}

	for _, a := range References(prg, rom.PRGOrigin, r.Host.Private) {
		if r.owns(a, len(tail.Code)) {
			continue
		}
		return r, curated.Errorf(PlaceError, fmt.Sprintf("the private cell $%04x is used by the host at $%04x", r.Host.Private, a))
	}

	return r, nil
}

// installed returns the home address if the head is already in place. The
// head is compared with the image apart from the operand of the jump to the
// tail.
func (r Routine) installed(prg []byte) (uint16, bool) {
	head, err := r.Head()
	if err != nil {
		return 0, false
	}

	at := int(r.Host.Entry) - rom.PRGOrigin
	if at < 0 || at+len(head.Code) > len(prg) {
		return 0, false
	}
	got := prg[at : at+len(head.Code)]

	jmp, ok := head.Label(LabelAct)
	if !ok {
		return 0, false
	}

	// the jump is the last instruction after the act label
	var operand int
	for _, ins := range head.Instructions {
		if ins.Address >= jmp && len(ins.Bytes) == 3 && ins.Bytes[0] == 0x4c {
			operand = int(ins.Address-r.Host.Entry) + 1
		}
	}
	if operand == 0 {
		return 0, false
	}

	if !bytes.Equal(got[:operand], head.Code[:operand]) || !bytes.Equal(got[operand+2:], head.Code[operand+2:]) {
		return 0, false
	}

	home := uint16(got[operand]) | uint16(got[operand+1])<<8
	if int(home) < rom.PRGOrigin {
		return 0, false
	}
	return home, true
}

// unused returns the address at which size bytes end the last run of unused
// space in prg.
func (r Routine) unused(prg []byte, size int) (uint16, bool) {
	need := max(r.Host.FreeRun, size)

	end := len(prg) - vectorsSize
	for end > 0 {
		for end > 0 && prg[end-1] != r.Host.Free {
			end--
		}
		start := end
		for start > 0 && prg[start-1] == r.Host.Free {
			start--
		}
		if end-start >= need {
			return uint16(rom.PRGOrigin + end - size), true
		}
		end = start
	}

	return 0, false
}

// owns is true if the address is in one of the two parts of the routine.
func (r Routine) owns(a uint16, tailSize int) bool {
	in := func(start uint16, size int) bool {
		return int(a) >= int(start) && int(a) < int(start)+size
	}
	return in(r.Host.Entry, r.Host.EntrySize) || in(r.Host.Home, tailSize)
}
