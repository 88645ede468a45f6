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
	"strings"
	"testing"

	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/hardware/cpu"
	"github.com/jetsetilly/nopits/hardware/memory"
	"github.com/jetsetilly/nopits/recovery"
	"github.com/jetsetilly/nopits/test"
)

func TestHead(t *testing.T) {
	r := recovery.NewRoutine(recovery.DefaultTuning(), recovery.SMB)
	prog, err := r.Head()
	test.DemandSuccess(t, err)

	test.ExpectBytes(t, prog.Code, []byte{
		0xce, 0x5f, 0x01, // DEC private
		0x10, 0x3c,       // BPL exit
		0xee, 0x5f, 0x01, // INC private
		0xa5, 0xb5,       // idle: LDA band
		0xf0, 0x35,
		0xc9, 0x02,
		0xb0, 0x13, // BCS candidate
		0xa5, 0xce,
		0xc9, 0xd0,
		0x90, 0x2b,
		0xa4, 0x1d, // LDY movement
		0x88,
		0xc0, 0x02,
		0xb0, 0x24,
		0xa5, 0x9f,
		0xf0, 0x20,
		0x30, 0x1e,
		0xac, 0x43, 0x07, // candidate: LDY override
		0xd0, 0x1a,       // BNE CloudExit
		0x90, 0x08,       // BCC act
		0xa9, 0x01,
		0x85, 0xb5,
		0xa9, 0xd0,
		0x85, 0xce,
		0xa9, 0x00, // act
		0x8d, 0x33, 0x04,
		0xac, 0x9e, 0x07,
		0x4c, 0xe9, 0xff, // JMP tail
		0xea, 0xea, 0xea, 0xea,
	})

	test.ExpectEquality(t, len(prog.Code), recovery.SMB.EntrySize)
	test.ExpectEquality(t, prog.End(), int(recovery.SMB.Exit))

	a, ok := prog.Label(recovery.LabelCandidate)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, a, 0xb19c)
}

func TestTail(t *testing.T) {
	r := recovery.NewRoutine(recovery.DefaultTuning(), recovery.SMB)
	prog, err := r.Tail()
	test.DemandSuccess(t, err)

	test.ExpectBytes(t, prog.Code, []byte{
		0xd0, 0x0a, // BNE freeze
		0xa0, 0xf4, // boost
		0x84, 0x9f,
		0xa0, 0x30,
		0x8c, 0x5f, 0x01,
		0x60,
		0x85, 0x9f, // freeze
		0x85, 0x57,
		0x60,
	})

	// the tail fits before the interrupt vectors
	test.ExpectEquality(t, prog.End(), 0xfffa)

	a, ok := prog.Label(recovery.LabelBoost)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, a, 0xffeb)

	a, ok = prog.Label(recovery.LabelFreeze)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, a, 0xfff5)

	// the private cell is written only when boosting
	test.ExpectEquality(t, strings.Count(prog.Listing(), "$015f"), 1)
}

func TestHeadDoesNotFit(t *testing.T) {
	host := recovery.SMB
	host.EntrySize = 40
	_, err := recovery.NewRoutine(recovery.DefaultTuning(), host).Generate()
	test.ExpectEquality(t, curated.Is(err, recovery.RoutineError), true)

	// the head must end at the handler's exit
	host = recovery.SMB
	host.Exit++
	_, err = recovery.NewRoutine(recovery.DefaultTuning(), host).Head()
	test.ExpectEquality(t, curated.Is(err, recovery.RoutineError), true)
}

func TestGenerateInvalidTuning(t *testing.T) {
	tuning := recovery.DefaultTuning()
	tuning.Countdown = 0
	_, err := recovery.NewRoutine(tuning, recovery.SMB).Generate()
	test.ExpectEquality(t, curated.Has(err, recovery.TuningError), true)
}

func TestGenerate(t *testing.T) {
	edits, err := recovery.NewRoutine(recovery.DefaultTuning(), recovery.SMB).Generate()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(edits), 2)

	test.ExpectEquality(t, edits[0].Offset, 0x3189)
	test.ExpectBytes(t, edits[0].Expect, recovery.SMB.EntryContext)
	test.ExpectEquality(t, len(edits[0].Payload), 65)

	test.ExpectEquality(t, edits[1].Offset, 0x7ff9)
	test.ExpectEquality(t, len(edits[1].Expect), len(edits[1].Payload))
	for _, b := range edits[1].Expect {
		test.ExpectEquality(t, b, 0xff)
	}
}

// a minimal host. the routine is installed, ExitCtrl is an RTS and the hand
// off address is trapped
func installRoutine(t *testing.T, r recovery.Routine) (*memory.Memory, *cpu.CPU) {
	t.Helper()

	head, err := r.Head()
	test.DemandSuccess(t, err)
	tail, err := r.Tail()
	test.DemandSuccess(t, err)

	prg := make([]byte, 0x8000)
	copy(prg[r.Host.Entry-0x8000:], head.Code)
	copy(prg[r.Host.Home-0x8000:], tail.Code)
	prg[r.Host.Exit-0x8000] = 0x60

	mem, err := memory.NewMemory(prg)
	test.DemandSuccess(t, err)
	return mem, cpu.NewCPU(mem)
}

func TestRoutineExecution(t *testing.T) {
	tuning := recovery.DefaultTuning()
	host := recovery.SMB
	mem, mc := installRoutine(t, recovery.NewRoutine(tuning, host))

	poke := func(addr uint16, v uint8) {
		t.Helper()
		test.DemandSuccess(t, mem.Write(addr, v))
	}
	peek := func(addr uint16) uint8 {
		t.Helper()
		v, err := mem.Read(addr)
		test.DemandSuccess(t, err)
		return v
	}

	poke(host.Band, 1)
	poke(host.Position, tuning.Threshold+2)
	poke(host.Velocity, 2)
	poke(host.Accumulator, 0x55)
	poke(host.Movement, uint8(recovery.Descending))

	res, err := mc.Call(host.Entry, 100, host.HandOff)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Trapped, false)
	test.ExpectEquality(t, res.Reached(0xffeb), true)
	test.ExpectEquality(t, peek(host.Velocity), 0xf4)
	test.ExpectEquality(t, peek(host.Accumulator), 0)
	test.ExpectEquality(t, peek(host.Movement), uint8(recovery.Descending))
	test.ExpectEquality(t, peek(host.Private), tuning.Countdown)

	// suppressed on the next frame
	_, err = mc.Call(host.Entry, 100, host.HandOff)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, peek(host.Private), tuning.Countdown-1)

	// released when the countdown reaches zero and idle after that. the
	// cell is never left negative
	poke(host.Private, 1)
	poke(host.Velocity, 2)
	_, err = mc.Call(host.Entry, 100, host.HandOff)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, peek(host.Private), 0)
	test.ExpectEquality(t, peek(host.Velocity), 2)

	poke(host.Band, 1)
	poke(host.Position, 0x10)
	_, err = mc.Call(host.Entry, 100, host.HandOff)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, peek(host.Private), 0)

	// bonus area
	poke(host.Position, tuning.Threshold+2)
	poke(host.AreaOverride, 1)
	res, err = mc.Call(host.Entry, 100, host.HandOff)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Trapped, true)
	test.ExpectEquality(t, res.Trap, host.HandOff)
}

// a value above the longest countdown is treated as idle and left alone
func TestRoutineIdleCell(t *testing.T) {
	tuning := recovery.DefaultTuning()
	host := recovery.SMB
	mem, mc := installRoutine(t, recovery.NewRoutine(tuning, host))

	test.DemandSuccess(t, mem.Write(host.Private, 0xc0))
	test.DemandSuccess(t, mem.Write(host.Band, 1))
	test.DemandSuccess(t, mem.Write(host.Position, 0x20))

	_, err := mc.Call(host.Entry, 100, host.HandOff)
	test.DemandSuccess(t, err)
	v, err := mem.Read(host.Private)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, 0xc0)
	test.ExpectEquality(t, recovery.FromCell(v), recovery.PrivateState{})
}
