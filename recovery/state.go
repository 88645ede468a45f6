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

// State of the controller.
type State int

// List of valid State values.
const (
	Idle State = iota
	Boosted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Boosted:
		return "boosted"
	}
	return "unknown state"
}

// Action is the result of one controller step.
type Action int

// List of valid Action values.
const (
	// the player is not falling into a hazard
	None Action = iota

	// upward velocity was applied and retriggering is suppressed
	Boost

	// the player is invulnerable. all motion was stopped
	Freeze

	// control was given to the host's bonus area exit
	HandOff

	// the controller is boosted and the countdown was decremented
	Suppressed

	// the countdown reached zero and the controller is idle again
	Released
)

func (a Action) String() string {
	switch a {
	case None:
		return "none"
	case Boost:
		return "boost"
	case Freeze:
		return "freeze"
	case HandOff:
		return "handoff"
	case Suppressed:
		return "suppressed"
	case Released:
		return "released"
	}
	return "unknown action"
}

// the transitions allowed from each state. an action that is missing for a
// state can never be the result of a step in that state
var transitions = map[State]map[Action]State{
	Idle: {
		None:    Idle,
		Boost:   Boosted,
		Freeze:  Idle,
		HandOff: Idle,
	},
	Boosted: {
		Suppressed: Boosted,
		Released:   Idle,
	},
}

// Transition returns the state that follows the action in state from. The
// boolean is false if the action is not possible in that state.
func Transition(from State, a Action) (State, bool) {
	to, ok := transitions[from][a]
	return to, ok
}

// PrivateState is the controller's own persistent data. The zero value is
// Idle.
type PrivateState struct {
	State State

	// frames remaining before the controller can trigger again. only
	// meaningful when State is Boosted
	Countdown uint8
}

func (p PrivateState) String() string {
	if p.State == Boosted {
		return fmt.Sprintf("%s(%d)", p.State, p.Countdown)
	}
	return p.State.String()
}

// MaxCountdown is the longest countdown the private cell can hold. The cell
// is decremented every frame and the controller is boosted while the result
// is not negative.
const MaxCountdown = 0x80

// Cell returns the private state as it is stored in the host's memory. The
// cell holds the countdown and zero means idle.
func (p PrivateState) Cell() uint8 {
	if p.State == Boosted && p.Countdown <= MaxCountdown {
		return p.Countdown
	}
	return 0
}

// FromCell is the inverse of Cell. Values above MaxCountdown are idle.
func FromCell(v uint8) PrivateState {
	if v == 0 || v > MaxCountdown {
		return PrivateState{}
	}
	return PrivateState{State: Boosted, Countdown: v}
}
