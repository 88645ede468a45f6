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

import "fmt"

// Band is how far the player has moved outside the nominal screen. Values
// of BelowPlayArea and above are all treated as a deep fall.
type Band uint8

// List of valid Band values.
const (
	AbovePlayArea Band = iota
	PlayArea
	BelowPlayArea
)

func (b Band) String() string {
	switch b {
	case AbovePlayArea:
		return "above"
	case PlayArea:
		return "play"
	}
	return fmt.Sprintf("below(%d)", b-PlayArea)
}

// MovementState is the host's movement category. The host also uses it to
// select gravity so the controller never writes it.
type MovementState uint8

// List of valid MovementState values.
const (
	Grounded MovementState = iota
	Ascending
	Descending
	Climbing
)

func (m MovementState) String() string {
	switch m {
	case Grounded:
		return "grounded"
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	case Climbing:
		return "climbing"
	}
	return fmt.Sprintf("movement(%d)", uint8(m))
}

// Airborne is true if the player is jumping or falling.
func (m MovementState) Airborne() bool {
	return m == Ascending || m == Descending
}

// Snapshot is the host state visible to the controller during one frame.
// The host owns every field. The controller may rewrite the position and
// velocity fields but never Movement.
type Snapshot struct {
	// position within the current band and the band itself
	Position uint8
	Band     Band

	// negative is upward
	Velocity int8

	// fractional part of the vertical movement
	Accumulator uint8

	HorizontalVelocity int8

	Movement MovementState

	// the post-damage grace window. the host disables collision while this
	// is true
	Invulnerable bool

	// a bonus area with its own exit when the player falls through the floor
	AreaOverride bool
}

func (s Snapshot) String() string {
	return fmt.Sprintf("pos=%s:%02x vel=%d acc=%02x hvel=%d %s invuln=%v override=%v",
		s.Band, s.Position, s.Velocity, s.Accumulator, s.HorizontalVelocity,
		s.Movement, s.Invulnerable, s.AreaOverride)
}

// Combined returns the vertical position over all bands.
func (s Snapshot) Combined() int {
	return int(s.Band)<<8 | int(s.Position)
}
