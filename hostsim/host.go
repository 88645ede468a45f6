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
	"github.com/jetsetilly/nopits/recovery"
)

// the largest combined position
const bottom = 0xffff

// Host is the state of the host for the purposes of vertical movement.
type Host struct {
	recovery.Snapshot

	// the fractional part of the position
	SubPosition uint8

	// the jump button is held
	InputHeld bool

	Variant Variant

	// combined position of the floor. zero means there is no floor, which
	// is the case when the player is over a pit
	Floor int

	// the player went above the top of the topmost band
	OutOfBounds bool
}

// NewHost is the preferred method of initialisation for the Host type.
func NewHost(variant Variant) *Host {
	return &Host{Variant: variant}
}

func (h *Host) gravity() uint8 {
	if h.Movement == recovery.Ascending && h.InputHeld && h.Velocity < 0 {
		return h.Variant.AscendGravity
	}
	return h.Variant.DescendGravity
}

// SetCombined sets the band and position from a combined position.
func (h *Host) SetCombined(pos int) {
	h.Band = recovery.Band(pos >> 8)
	h.Position = uint8(pos)
}

// Integrate advances the host by one frame.
func (h *Host) Integrate() {
	sub := int(h.SubPosition) + int(h.Accumulator)
	h.SubPosition = uint8(sub)

	pos := h.Combined() + int(h.Velocity) + sub>>8
	if pos < 0 {
		h.OutOfBounds = true
		pos = 0
	}
	pos = min(pos, bottom)
	h.SetCombined(pos)

	if !h.Movement.Airborne() {
		return
	}

	acc := int(h.Accumulator) + int(h.gravity())
	h.Accumulator = uint8(acc)
	if acc > 0xff && h.Velocity < 127 {
		h.Velocity++
	}

	mf := h.Variant.MaxFall
	if h.Velocity > mf || (h.Velocity == mf && h.Accumulator >= 0x80) {
		h.Velocity = mf
		h.Accumulator = 0
	}

	if h.Movement == recovery.Ascending && h.Velocity >= 0 {
		h.Movement = recovery.Descending
	}

	if h.Floor > 0 && h.Velocity >= 0 && pos >= h.Floor {
		h.SetCombined(h.Floor)
		h.Velocity = 0
		h.Accumulator = 0
		h.Movement = recovery.Grounded
	}
}
