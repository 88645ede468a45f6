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

// Controller is the reference implementation of the recovery algorithm.
type Controller struct {
	tuning  Tuning
	private PrivateState
}

// NewController is the preferred method of initialisation for the
// Controller type. The tuning should have been validated.
func NewController(tuning Tuning) *Controller {
	return &Controller{tuning: tuning}
}

// Tuning returns the tuning the controller was created with.
func (c *Controller) Tuning() Tuning {
	return c.tuning
}

// Private returns a copy of the controller's private state.
func (c *Controller) Private() PrivateState {
	return c.private
}

// Restore the private state. Used to start a controller part way through a
// sequence of frames.
func (c *Controller) Restore(p PrivateState) {
	c.private = FromCell(p.Cell())
}

// Step runs the controller for one frame. The snapshot is modified in place
// and the action taken is returned. The snapshot is not retained.
func (c *Controller) Step(s *Snapshot) Action {
	act := c.step(s)
	next, ok := Transition(c.private.State, act)
	if !ok {
		panic("recovery: impossible transition from " + c.private.State.String() + " with " + act.String())
	}
	c.private.State = next
	return act
}

func (c *Controller) step(s *Snapshot) Action {
	if c.private.State == Boosted {
		c.private.Countdown--
		if c.private.Countdown == 0 {
			return Released
		}
		return Suppressed
	}

	deep := s.Band >= BelowPlayArea
	falling := s.Band == PlayArea &&
		s.Position >= c.tuning.Threshold &&
		s.Movement.Airborne() &&
		s.Velocity > 0

	if !deep && !falling {
		return None
	}

	// the bonus area's own exit is responsible for the player
	if s.AreaOverride {
		return HandOff
	}

	if deep {
		s.Band = PlayArea
		s.Position = c.tuning.Reentry
	}

	s.Accumulator = 0

	// collision is disabled while invulnerable. hold the player still until
	// the grace window ends
	if s.Invulnerable {
		s.Velocity = 0
		s.HorizontalVelocity = 0
		return Freeze
	}

	s.Velocity = c.tuning.BoostVelocity()
	c.private.Countdown = c.tuning.Countdown
	return Boost
}
