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

	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/logger"
	"github.com/jetsetilly/nopits/recovery"
)

// ArcError is the curated pattern for an intervention that does not produce
// a bounded arc.
const ArcError = "hostsim: arc: %v"

// the number of frames after which an arc is considered unbounded
const arcLimit = 600

// the top of the visible screen as a combined position
const screenTop = int(recovery.PlayArea) << 8

// Arc describes the movement after an intervention from the boundary
// condition.
type Arc struct {
	Variant Variant

	// the frame at which the player is first above the threshold
	Clear int

	// the frame at which the velocity is no longer upward
	Apex int

	// the frame at which the player falls back to the threshold
	Return int

	// height of the apex above the threshold
	Height int

	Trace Trace
}

func (a Arc) String() string {
	return fmt.Sprintf("%-12s clear=%d apex=%d return=%d height=%d", a.Variant.Name, a.Clear, a.Apex, a.Return, a.Height)
}

// Boundary returns a host in the boundary condition for the tuning: the
// player at the threshold falling with the smallest downward velocity.
func Boundary(variant Variant, tuning recovery.Tuning, inputHeld bool) *Host {
	host := NewHost(variant)
	host.InputHeld = inputHeld
	host.Band = recovery.PlayArea
	host.Position = tuning.Threshold
	host.Velocity = 1
	host.Movement = recovery.Descending
	return host
}

// Measure the arc produced by the controller from the boundary condition.
// An error is returned if the controller does not boost, if the player leaves
// the play area through the top of the screen or if the player does not come
// back down.
func Measure(variant Variant, tuning recovery.Tuning, ctrl Controller, inputHeld bool) (Arc, error) {
	arc := Arc{Variant: variant}

	host := Boundary(variant, tuning, inputHeld)
	threshold := host.Combined()

	if act := ctrl.Step(&host.Snapshot); act != recovery.Boost {
		return arc, curated.Errorf(ArcError, fmt.Sprintf("%s: controller did not boost (%s)", variant.Name, act))
	}

	tr, err := Run(host, ctrl, arcLimit, func(f Frame) bool {
		if host.OutOfBounds {
			return false
		}
		pos := f.Snapshot.Combined()
		if arc.Clear == 0 && pos < threshold {
			arc.Clear = f.N + 1
		}
		if arc.Apex == 0 && f.Snapshot.Velocity >= 0 {
			arc.Apex = f.N + 1
			arc.Height = threshold - pos
		}
		if arc.Apex > 0 && pos >= threshold {
			arc.Return = f.N + 1
			return false
		}
		return true
	})
	arc.Trace = tr
	if err != nil {
		return arc, curated.Errorf(ArcError, err)
	}

	if top := tr.Top(); host.OutOfBounds || top < screenTop {
		return arc, curated.Errorf(ArcError, fmt.Sprintf("%s: player left the top of the screen (%#03x) after %d frames", variant.Name, max(top, 0), len(tr.Frames)))
	}
	if arc.Return == 0 {
		return arc, curated.Errorf(ArcError, fmt.Sprintf("%s: player did not return within %d frames", variant.Name, arcLimit))
	}

	logger.Logf(logger.Allow, "hostsim", "%s", arc)

	return arc, nil
}

// RecommendCountdown measures the arc in every variant with the Go
// controller and returns the worst case apex frame plus the margin. The
// countdown should be at least this value.
func RecommendCountdown(variants []Variant, tuning recovery.Tuning, margin int) (uint8, []Arc, error) {
	var worst int
	var arcs []Arc

	for _, v := range variants {
		for _, held := range []bool{false, true} {
			arc, err := Measure(v, tuning, recovery.NewController(tuning), held)
			if err != nil {
				return 0, arcs, err
			}
			if !held {
				arcs = append(arcs, arc)
			}
			worst = max(worst, arc.Apex)
		}
	}

	n := worst + margin
	if n > 0xff {
		return 0, arcs, curated.Errorf(ArcError, fmt.Sprintf("countdown of %d frames is too long", n))
	}
	return uint8(n), arcs, nil
}
