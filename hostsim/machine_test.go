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

package hostsim_test

import (
	"math/rand/v2"
	"testing"

	"github.com/jetsetilly/nopits/catalog"
	"github.com/jetsetilly/nopits/catalog/catalogtest"
	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/hostsim"
	"github.com/jetsetilly/nopits/patch"
	"github.com/jetsetilly/nopits/recovery"
	"github.com/jetsetilly/nopits/test"
)

func patchedImage(t *testing.T, tuning recovery.Tuning) []byte {
	t.Helper()
	cat, err := catalog.Default(tuning)
	test.DemandSuccess(t, err)
	out, rep, err := patch.Apply(catalogtest.Image(), cat)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, rep.Skipped(), 0)
	return out
}

func newMachine(t *testing.T, tuning recovery.Tuning) *hostsim.Machine {
	t.Helper()
	m, err := hostsim.NewMachine(patchedImage(t, tuning), recovery.NewRoutine(tuning, recovery.SMB))
	test.DemandSuccess(t, err)
	return m
}

func TestMachineNotInstalled(t *testing.T) {
	_, err := hostsim.NewMachine(catalogtest.Image(), recovery.NewRoutine(recovery.DefaultTuning(), recovery.SMB))
	test.ExpectEquality(t, curated.Is(err, hostsim.MachineError), true)

	// installed with different tuning
	tuning := recovery.DefaultTuning()
	tuning.Countdown = 30
	_, err = hostsim.NewMachine(patchedImage(t, recovery.DefaultTuning()), recovery.NewRoutine(tuning, recovery.SMB))
	test.ExpectFailure(t, err)
}

func TestMachineScenarios(t *testing.T) {
	tuning := recovery.DefaultTuning()
	m := newMachine(t, tuning)

	s := recovery.Snapshot{
		Position: tuning.Threshold + 2,
		Band:     recovery.PlayArea,
		Velocity: 2,
		Movement: recovery.Descending,
	}

	// bonus area
	s.AreaOverride = true
	before := s
	test.ExpectEquality(t, m.Step(&s), recovery.HandOff)
	test.ExpectEquality(t, s, before)
	test.ExpectEquality(t, m.Last.Trap, recovery.SMB.HandOff)

	// invulnerable
	s.AreaOverride = false
	s.Invulnerable = true
	s.HorizontalVelocity = 9
	test.ExpectEquality(t, m.Step(&s), recovery.Freeze)
	test.ExpectEquality(t, s.Velocity, 0)
	test.ExpectEquality(t, s.HorizontalVelocity, 0)
	test.ExpectEquality(t, m.Private(), recovery.PrivateState{})

	// boost
	s.Invulnerable = false
	s.Velocity = 2
	s.Accumulator = 0x40
	test.ExpectEquality(t, m.Step(&s), recovery.Boost)
	test.ExpectEquality(t, s.Velocity, tuning.BoostVelocity())
	test.ExpectEquality(t, s.Accumulator, 0)
	test.ExpectEquality(t, s.Movement, recovery.Descending)
	test.ExpectEquality(t, m.Private(), recovery.PrivateState{State: recovery.Boosted, Countdown: tuning.Countdown})

	// suppressed
	m.Restore(recovery.PrivateState{State: recovery.Boosted, Countdown: 3})
	s.Velocity = 2
	test.ExpectEquality(t, m.Step(&s), recovery.Suppressed)
	test.ExpectEquality(t, m.Private().Countdown, 2)
	test.ExpectEquality(t, s.Velocity, 2)

	// deep fall
	m.Restore(recovery.PrivateState{})
	s = recovery.Snapshot{Band: recovery.BelowPlayArea, Position: 0x30, Velocity: 4}
	test.ExpectEquality(t, m.Step(&s), recovery.Boost)
	test.ExpectEquality(t, s.Band, recovery.PlayArea)
	test.ExpectEquality(t, s.Position, tuning.Reentry)

	test.ExpectSuccess(t, m.Err())
}

// the host keeps its own values in RAM around the private cell. the player's
// sprite offset ($06e4) is loaded with 4 before the first frame and must
// survive a boost
func TestMachineHostRAM(t *testing.T) {
	tuning := recovery.DefaultTuning()
	m := newMachine(t, tuning)

	const sprDataOffset = 0x06e4
	test.DemandSuccess(t, m.Memory().Poke(sprDataOffset, 0x04))

	s := recovery.Snapshot{
		Position: tuning.Threshold + 2,
		Band:     recovery.PlayArea,
		Velocity: 2,
		Movement: recovery.Descending,
	}
	test.ExpectEquality(t, m.Step(&s), recovery.Boost)
	test.ExpectEquality(t, s.Velocity, tuning.BoostVelocity())

	for range tuning.Countdown - 1 {
		test.ExpectEquality(t, m.Step(&s), recovery.Suppressed)
	}
	test.ExpectEquality(t, m.Step(&s), recovery.Released)

	v, err := m.Memory().Peek(sprDataOffset)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, 0x04)

	// a value left in the private cell that is not a countdown is idle
	test.DemandSuccess(t, m.Memory().Poke(recovery.SMB.Private, 0xd0))
	s.Velocity = 2
	test.ExpectEquality(t, m.Step(&s), recovery.Boost)

	test.ExpectSuccess(t, m.Err())
}

// the installed routine and the Go controller agree on every frame
func TestDifferential(t *testing.T) {
	tuning := recovery.DefaultTuning()
	tuning.Countdown = 5
	m := newMachine(t, tuning)
	ctrl := recovery.NewController(tuning)

	rnd := rand.New(rand.NewPCG(1986, 9))

	for frame := range 5000 {
		s := recovery.Snapshot{
			Position:           uint8(rnd.IntN(256)),
			Band:               recovery.Band(rnd.IntN(4)),
			Velocity:           int8(rnd.IntN(256) - 128),
			Accumulator:        uint8(rnd.IntN(256)),
			HorizontalVelocity: int8(rnd.IntN(256) - 128),
			Movement:           recovery.MovementState(rnd.IntN(5)),
			Invulnerable:       rnd.IntN(4) == 0,
			AreaOverride:       rnd.IntN(8) == 0,
		}
		if rnd.IntN(2) == 0 {
			s.Band = recovery.PlayArea
			s.Position = tuning.Threshold - 4 + uint8(rnd.IntN(8))
			s.Velocity = int8(rnd.IntN(4) - 1)
		}

		gs := s
		ms := s
		ga := ctrl.Step(&gs)
		ma := m.Step(&ms)

		if ga != ma || gs != ms || ctrl.Private() != m.Private() {
			t.Fatalf("frame %d: %s\n  go:      %s %s %s\n  machine: %s %s %s", frame, s,
				ga, ctrl.Private(), gs, ma, m.Private(), ms)
		}
	}

	test.ExpectSuccess(t, m.Err())
}

// whole runs in every variant produce identical traces
func TestTraceDigest(t *testing.T) {
	tuning := recovery.DefaultTuning()

	for _, v := range hostsim.Variants {
		run := func(ctrl hostsim.Controller) hostsim.Trace {
			host := hostsim.NewHost(v)
			host.SetCombined(0x140)
			host.Movement = recovery.Descending
			host.HorizontalVelocity = 0x10
			tr, err := hostsim.Run(host, ctrl, 400, nil)
			test.DemandSuccess(t, err)
			return tr
		}

		gt := run(recovery.NewController(tuning))
		mt := run(newMachine(t, tuning))
		test.ExpectEquality(t, len(mt.Frames), 400, v.Name)
		test.ExpectEquality(t, mt.Digest(), gt.Digest(), v.Name)
		test.ExpectInequality(t, gt.Count(recovery.Boost), 0, v.Name)
	}
}
