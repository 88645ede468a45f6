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

package recovery_test

import (
	"math/rand/v2"
	"testing"

	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/recovery"
	"github.com/jetsetilly/nopits/test"
)

// the player just past the threshold and falling
func falling(tuning recovery.Tuning) recovery.Snapshot {
	return recovery.Snapshot{
		Position:           tuning.Threshold + 2,
		Band:               recovery.PlayArea,
		Velocity:           2,
		Accumulator:        0x55,
		HorizontalVelocity: 0x18,
		Movement:           recovery.Descending,
	}
}

func TestScenarioBoost(t *testing.T) {
	tuning := recovery.DefaultTuning()
	ctrl := recovery.NewController(tuning)
	s := falling(tuning)

	test.ExpectEquality(t, ctrl.Step(&s), recovery.Boost)
	test.ExpectEquality(t, s.Velocity, -int8(tuning.Boost))
	test.ExpectEquality(t, s.Velocity, int8(-12))
	test.ExpectEquality(t, s.Accumulator, 0)
	test.ExpectEquality(t, s.Movement, recovery.Descending)
	test.ExpectEquality(t, s.Position, tuning.Threshold+2)
	test.ExpectEquality(t, s.HorizontalVelocity, 0x18)
	test.ExpectEquality(t, ctrl.Private(), recovery.PrivateState{State: recovery.Boosted, Countdown: tuning.Countdown})
}

func TestScenarioOverride(t *testing.T) {
	tuning := recovery.DefaultTuning()
	ctrl := recovery.NewController(tuning)
	s := falling(tuning)
	s.AreaOverride = true
	before := s

	test.ExpectEquality(t, ctrl.Step(&s), recovery.HandOff)
	test.ExpectEquality(t, s, before)
	test.ExpectEquality(t, ctrl.Private(), recovery.PrivateState{})

	// a deep fall in a bonus area is also handed off without repositioning
	s.Band = recovery.BelowPlayArea
	s.Position = 0x10
	before = s
	test.ExpectEquality(t, ctrl.Step(&s), recovery.HandOff)
	test.ExpectEquality(t, s, before)
}

func TestScenarioDeepFall(t *testing.T) {
	tuning := recovery.DefaultTuning()
	ctrl := recovery.NewController(tuning)
	s := recovery.Snapshot{
		Position:    0x20,
		Band:        recovery.BelowPlayArea,
		Velocity:    4,
		Accumulator: 0x80,
		Movement:    recovery.Grounded,
	}

	test.ExpectEquality(t, ctrl.Step(&s), recovery.Boost)
	test.ExpectEquality(t, s.Band, recovery.PlayArea)
	test.ExpectEquality(t, s.Position, tuning.Reentry)
	test.ExpectEquality(t, s.Velocity, tuning.BoostVelocity())
	test.ExpectEquality(t, s.Accumulator, 0)
	test.ExpectEquality(t, s.Movement, recovery.Grounded)
	test.ExpectEquality(t, ctrl.Private().State, recovery.Boosted)

	// further below the play area is still a deep fall
	ctrl = recovery.NewController(tuning)
	s.Band = recovery.Band(5)
	test.ExpectEquality(t, ctrl.Step(&s), recovery.Boost)
	test.ExpectEquality(t, s.Band, recovery.PlayArea)
}

func TestScenarioSuppressed(t *testing.T) {
	tuning := recovery.DefaultTuning()
	ctrl := recovery.NewController(tuning)
	ctrl.Restore(recovery.PrivateState{State: recovery.Boosted, Countdown: 3})

	s := falling(tuning)
	before := s
	test.ExpectEquality(t, ctrl.Step(&s), recovery.Suppressed)
	test.ExpectEquality(t, s, before)
	test.ExpectEquality(t, ctrl.Private(), recovery.PrivateState{State: recovery.Boosted, Countdown: 2})

	test.ExpectEquality(t, ctrl.Step(&s), recovery.Suppressed)
	test.ExpectEquality(t, ctrl.Step(&s), recovery.Released)
	test.ExpectEquality(t, ctrl.Private(), recovery.PrivateState{})

	// idle again so the next frame triggers
	test.ExpectEquality(t, ctrl.Step(&s), recovery.Boost)
}

func TestFreeze(t *testing.T) {
	tuning := recovery.DefaultTuning()
	ctrl := recovery.NewController(tuning)
	s := falling(tuning)
	s.Invulnerable = true

	test.ExpectEquality(t, ctrl.Step(&s), recovery.Freeze)
	test.ExpectEquality(t, s.Velocity, 0)
	test.ExpectEquality(t, s.HorizontalVelocity, 0)
	test.ExpectEquality(t, s.Accumulator, 0)
	test.ExpectEquality(t, s.Movement, recovery.Descending)
	test.ExpectEquality(t, ctrl.Private(), recovery.PrivateState{})

	// deep fall while invulnerable is repositioned and then frozen
	s = recovery.Snapshot{Band: recovery.BelowPlayArea, Velocity: 3, HorizontalVelocity: -8, Invulnerable: true}
	test.ExpectEquality(t, ctrl.Step(&s), recovery.Freeze)
	test.ExpectEquality(t, s.Band, recovery.PlayArea)
	test.ExpectEquality(t, s.Position, tuning.Reentry)
	test.ExpectEquality(t, s.Velocity, 0)
	test.ExpectEquality(t, s.HorizontalVelocity, 0)
}

func TestNoTrigger(t *testing.T) {
	tuning := recovery.DefaultTuning()

	for _, tc := range []struct {
		name   string
		modify func(*recovery.Snapshot)
	}{
		{"short of threshold", func(s *recovery.Snapshot) { s.Position = tuning.Threshold - 1 }},
		{"above play area", func(s *recovery.Snapshot) { s.Band = recovery.AbovePlayArea }},
		{"grounded", func(s *recovery.Snapshot) { s.Movement = recovery.Grounded }},
		{"climbing", func(s *recovery.Snapshot) { s.Movement = recovery.Climbing }},
		{"rising", func(s *recovery.Snapshot) { s.Velocity = -3 }},
		{"stationary", func(s *recovery.Snapshot) { s.Velocity = 0 }},
	} {
		ctrl := recovery.NewController(tuning)
		s := falling(tuning)
		tc.modify(&s)
		before := s
		test.ExpectEquality(t, ctrl.Step(&s), recovery.None, tc.name)
		test.ExpectEquality(t, s, before, tc.name)
	}

	// ascending through the threshold while moving down is still a candidate
	ctrl := recovery.NewController(tuning)
	s := falling(tuning)
	s.Movement = recovery.Ascending
	test.ExpectEquality(t, ctrl.Step(&s), recovery.Boost)
}

func TestTransitions(t *testing.T) {
	for _, tc := range []struct {
		from recovery.State
		act  recovery.Action
		to   recovery.State
		ok   bool
	}{
		{recovery.Idle, recovery.None, recovery.Idle, true},
		{recovery.Idle, recovery.Boost, recovery.Boosted, true},
		{recovery.Idle, recovery.Freeze, recovery.Idle, true},
		{recovery.Idle, recovery.HandOff, recovery.Idle, true},
		{recovery.Idle, recovery.Suppressed, recovery.Idle, false},
		{recovery.Idle, recovery.Released, recovery.Idle, false},
		{recovery.Boosted, recovery.Suppressed, recovery.Boosted, true},
		{recovery.Boosted, recovery.Released, recovery.Idle, true},
		{recovery.Boosted, recovery.Boost, recovery.Idle, false},
		{recovery.Boosted, recovery.Freeze, recovery.Idle, false},
		{recovery.Boosted, recovery.None, recovery.Idle, false},
	} {
		to, ok := recovery.Transition(tc.from, tc.act)
		test.ExpectEquality(t, ok, tc.ok, tc.from, tc.act)
		if ok {
			test.ExpectEquality(t, to, tc.to, tc.from, tc.act)
		}
	}
}

// random frames never produce a second boost while the controller is boosted
func TestNoDoubleTrigger(t *testing.T) {
	tuning := recovery.DefaultTuning()
	rnd := rand.New(rand.NewPCG(2600, 1))

	for run := range 50 {
		ctrl := recovery.NewController(tuning)
		var lastBoost = -1

		for frame := range 500 {
			s := recovery.Snapshot{
				Position:     uint8(rnd.IntN(256)),
				Band:         recovery.Band(rnd.IntN(4)),
				Velocity:     int8(rnd.IntN(256) - 128),
				Accumulator:  uint8(rnd.IntN(256)),
				Movement:     recovery.MovementState(rnd.IntN(4)),
				Invulnerable: rnd.IntN(8) == 0,
				AreaOverride: rnd.IntN(16) == 0,
			}

			// bias towards frames that would trigger
			if rnd.IntN(2) == 0 {
				s.Band = recovery.PlayArea
				s.Position = tuning.Threshold + uint8(rnd.IntN(0x40))
				s.Velocity = int8(1 + rnd.IntN(4))
				s.Movement = recovery.Descending
			}

			wasBoosted := ctrl.Private().State == recovery.Boosted
			act := ctrl.Step(&s)

			if wasBoosted {
				if act != recovery.Suppressed && act != recovery.Released {
					t.Fatalf("run %d frame %d: %s while boosted", run, frame, act)
				}
			}

			if act == recovery.Boost {
				if lastBoost >= 0 && frame-lastBoost < int(tuning.Countdown)+1 {
					t.Fatalf("run %d frame %d: boost %d frames after previous boost", run, frame, frame-lastBoost)
				}
				lastBoost = frame
			}
		}
	}
}

func TestRestore(t *testing.T) {
	ctrl := recovery.NewController(recovery.DefaultTuning())
	ctrl.Restore(recovery.PrivateState{State: recovery.Boosted})
	test.ExpectEquality(t, ctrl.Private(), recovery.PrivateState{})

	ctrl.Restore(recovery.FromCell(7))
	test.ExpectEquality(t, ctrl.Private(), recovery.PrivateState{State: recovery.Boosted, Countdown: 7})
	test.ExpectEquality(t, ctrl.Private().Cell(), 7)
	test.ExpectEquality(t, recovery.FromCell(0), recovery.PrivateState{})
	test.ExpectEquality(t, recovery.PrivateState{Countdown: 9}.Cell(), 0)

	// the cell is boosted while decrementing it leaves a positive value
	test.ExpectEquality(t, recovery.FromCell(recovery.MaxCountdown).State, recovery.Boosted)
	test.ExpectEquality(t, recovery.FromCell(recovery.MaxCountdown+1), recovery.PrivateState{})
	ctrl.Restore(recovery.PrivateState{State: recovery.Boosted, Countdown: 200})
	test.ExpectEquality(t, ctrl.Private(), recovery.PrivateState{})
}

func TestTuning(t *testing.T) {
	tuning := recovery.DefaultTuning()
	test.ExpectSuccess(t, tuning.Validate())
	test.ExpectEquality(t, uint8(tuning.BoostVelocity()), 0xf4)

	bad := tuning
	bad.Boost = 0
	test.ExpectEquality(t, curated.Is(bad.Validate(), recovery.TuningError), true)

	bad = tuning
	bad.Boost = 200
	test.ExpectFailure(t, bad.Validate())

	bad = tuning
	bad.Countdown = 0
	test.ExpectFailure(t, bad.Validate())

	bad = tuning
	bad.Countdown = recovery.MaxCountdown + 1
	test.ExpectFailure(t, bad.Validate())

	bad = tuning
	bad.Threshold = 0
	test.ExpectFailure(t, bad.Validate())
}

func TestStrings(t *testing.T) {
	test.ExpectEquality(t, recovery.Band(3).String(), "below(2)")
	test.ExpectEquality(t, recovery.PlayArea.String(), "play")
	test.ExpectEquality(t, recovery.Descending.String(), "descending")
	test.ExpectEquality(t, recovery.PrivateState{State: recovery.Boosted, Countdown: 4}.String(), "boosted(4)")
	test.ExpectEquality(t, recovery.HandOff.String(), "handoff")

	s := recovery.Snapshot{Position: 0xc2, Band: recovery.PlayArea}
	test.ExpectEquality(t, s.Combined(), 0x1c2)
}
