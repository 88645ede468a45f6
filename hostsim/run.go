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

	"github.com/jetsetilly/nopits/digest"
	"github.com/jetsetilly/nopits/recovery"
)

// Controller is run once per frame after the host has integrated movement.
// It is satisfied by recovery.Controller and by Machine.
type Controller interface {
	Step(*recovery.Snapshot) recovery.Action
	Private() recovery.PrivateState
}

// a controller that can fail. Machine is the only implementation
type faulty interface {
	Err() error
}

// Frame is the state of the host and the controller at the end of a frame.
type Frame struct {
	N        int
	Snapshot recovery.Snapshot
	Action   recovery.Action
	Private  recovery.PrivateState
}

func (f Frame) String() string {
	return fmt.Sprintf("%04d %-10s %-12s %s", f.N, f.Action, f.Private, f.Snapshot)
}

// record for the digest
func (f Frame) bytes() []byte {
	s := f.Snapshot
	var flags byte
	if s.Invulnerable {
		flags |= 0x01
	}
	if s.AreaOverride {
		flags |= 0x02
	}
	return []byte{
		s.Position, byte(s.Band), byte(s.Velocity), s.Accumulator,
		byte(s.HorizontalVelocity), byte(s.Movement), flags,
		byte(f.Action), f.Private.Cell(),
	}
}

// Trace is the list of frames of a run.
type Trace struct {
	Frames []Frame
}

// Count returns the number of frames in which the action was taken.
func (tr Trace) Count(act recovery.Action) int {
	var n int
	for _, f := range tr.Frames {
		if f.Action == act {
			n++
		}
	}
	return n
}

// Top returns the smallest combined position in the trace.
func (tr Trace) Top() int {
	top := bottom
	for _, f := range tr.Frames {
		top = min(top, f.Snapshot.Combined())
	}
	return top
}

// Digest returns a hash of every frame in the trace. Two traces with the
// same digest are identical.
func (tr Trace) Digest() string {
	dig := digest.NewFrames()
	for _, f := range tr.Frames {
		dig.Add(f.bytes())
	}
	return dig.Hash()
}

func (tr Trace) String() string {
	var s strings.Builder
	for _, f := range tr.Frames {
		s.WriteString(f.String())
		s.WriteString("\n")
	}
	return s.String()
}

// Run the host and controller for the number of frames. The observe
// function is called at the end of every frame if it is not nil and stops
// the run early if it returns false.
func Run(host *Host, ctrl Controller, frames int, observe func(Frame) bool) (Trace, error) {
	var tr Trace

	for n := range frames {
		host.Integrate()
		act := ctrl.Step(&host.Snapshot)

		if f, ok := ctrl.(faulty); ok && f.Err() != nil {
			return tr, f.Err()
		}

		f := Frame{
			N:        n,
			Snapshot: host.Snapshot,
			Action:   act,
			Private:  ctrl.Private(),
		}
		tr.Frames = append(tr.Frames, f)

		if observe != nil && !observe(f) {
			break
		}
	}

	return tr, nil
}
