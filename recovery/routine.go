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

	"github.com/jetsetilly/nopits/assembler"
	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/logger"
	"github.com/jetsetilly/nopits/patch"
	"github.com/jetsetilly/nopits/rom"
)

// RoutineError is the curated pattern for errors generating the 6502
// routine.
const RoutineError = "recovery: routine: %v"

// Labels in the assembled routine.
const (
	LabelIdle      = "idle"
	LabelCandidate = "candidate"
	LabelAct       = "act"
	LabelTail      = "tail"
	LabelBoost     = "boost"
	LabelFreeze    = "freeze"

	// the host's own code
	LabelExit    = "exit"
	LabelHandOff = "handoff"
)

// Routine generates the 6502 form of the controller. It implements the
// patch.Generator and patch.Locator interfaces.
//
// The routine is in two parts. The head replaces the host's hazard handler
// and the tail is placed in unused PRG space.
type Routine struct {
	Tuning Tuning
	Host   HostMap
}

// NewRoutine is the preferred method of initialisation for the Routine type.
func NewRoutine(tuning Tuning, host HostMap) Routine {
	return Routine{Tuning: tuning, Host: host}
}

// Head assembles the part of the controller that replaces the hazard
// handler. It ends with a jump to the tail at the home address.
//
// The private cell holds the countdown. It is decremented every frame and a
// result that is still positive means the controller is boosted. Otherwise
// the cell is restored and the trigger is evaluated. The carry flag records
// whether the candidate is a deep fall (set) or a fall in the play area
// (clear) by the time the candidate label is reached.
func (r Routine) Head() (assembler.Program, error) {
	h := r.Host
	t := r.Tuning

	asm := assembler.New()
	asm.Equate(LabelExit, h.Exit)
	asm.Equate(LabelHandOff, h.HandOff)
	asm.Equate(LabelTail, h.Home)

	asm.Address("DEC", h.Private)
	asm.Branch("BPL", LabelExit)
	asm.Address("INC", h.Private)

	asm.Label(LabelIdle)
	asm.Address("LDA", h.Band)
	asm.Branch("BEQ", LabelExit)
	asm.Immediate("CMP", uint8(BelowPlayArea))
	asm.Branch("BCS", LabelCandidate)

	asm.Address("LDA", h.Position)
	asm.Immediate("CMP", t.Threshold)
	asm.Branch("BCC", LabelExit)

	// airborne is ascending or descending
	asm.Address("LDY", h.Movement)
	asm.Implied("DEY")
	asm.Immediate("CPY", uint8(Climbing-Ascending))
	asm.Branch("BCS", LabelExit)

	asm.Address("LDA", h.Velocity)
	asm.Branch("BEQ", LabelExit)
	asm.Branch("BMI", LabelExit)

	asm.Label(LabelCandidate)
	asm.Address("LDY", h.AreaOverride)
	asm.Branch("BNE", LabelHandOff)
	asm.Branch("BCC", LabelAct)
	asm.Immediate("LDA", uint8(PlayArea))
	asm.Address("STA", h.Band)
	asm.Immediate("LDA", t.Reentry)
	asm.Address("STA", h.Position)

	asm.Label(LabelAct)
	asm.Immediate("LDA", 0x00)
	asm.Address("STA", h.Accumulator)
	asm.Address("LDY", h.Invulnerable)
	asm.Jump("JMP", LabelTail)

	if n := h.EntrySize - asm.Size(); n > 0 {
		asm.Bytes(bytes.Repeat([]byte{0xea}, n)...)
	}

	prog, err := asm.Assemble(h.Entry)
	if err != nil {
		return assembler.Program{}, curated.Errorf(RoutineError, err)
	}
	if len(prog.Code) > h.EntrySize {
		return assembler.Program{}, curated.Errorf(RoutineError,
			fmt.Sprintf("head is %d bytes but the handler is only %d", len(prog.Code), h.EntrySize))
	}
	if prog.End() != int(h.Exit) {
		return assembler.Program{}, curated.Errorf(RoutineError,
			fmt.Sprintf("head ends at $%04x and not at the handler's exit $%04x", prog.End(), h.Exit))
	}
	return prog, nil
}

// Tail assembles the part of the controller placed at the home address. The
// zero flag on entry is the result of loading the invulnerability flag and
// the accumulator is zero.
func (r Routine) Tail() (assembler.Program, error) {
	h := r.Host
	t := r.Tuning

	asm := assembler.New()
	asm.Branch("BNE", LabelFreeze)

	asm.Label(LabelBoost)
	asm.Immediate("LDY", uint8(t.BoostVelocity()))
	asm.Address("STY", h.Velocity)
	asm.Immediate("LDY", t.Countdown)
	asm.Address("STY", h.Private)
	asm.Implied("RTS")

	asm.Label(LabelFreeze)
	asm.Address("STA", h.Velocity)
	asm.Address("STA", h.HorizontalVelocity)
	asm.Implied("RTS")

	prog, err := asm.Assemble(h.Home)
	if err != nil {
		return assembler.Program{}, curated.Errorf(RoutineError, err)
	}
	return prog, nil
}

// Generate implements the patch.Generator interface. The head and the tail
// are returned as two edits so that both contexts are verified before either
// is written.
func (r Routine) Generate() ([]patch.Edit, error) {
	if err := r.Tuning.Validate(); err != nil {
		return nil, curated.Errorf(RoutineError, err)
	}

	head, err := r.Head()
	if err != nil {
		return nil, err
	}
	tail, err := r.Tail()
	if err != nil {
		return nil, err
	}

	entry, err := rom.CPUToFile(r.Host.Entry)
	if err != nil {
		return nil, curated.Errorf(RoutineError, err)
	}
	home, err := rom.CPUToFile(r.Host.Home)
	if err != nil {
		return nil, curated.Errorf(RoutineError, err)
	}

	logger.Logf(logger.Allow, "recovery", "head is %d bytes at $%04x. tail is %d bytes at $%04x",
		len(head.Code), r.Host.Entry, len(tail.Code), r.Host.Home)

	return []patch.Edit{
		{
			Offset:  entry,
			Expect:  r.Host.EntryContext,
			Payload: head.Code,
		},
		{
			Offset:  home,
			Expect:  bytes.Repeat([]byte{r.Host.Free}, len(tail.Code)),
			Payload: tail.Code,
		},
	}, nil
}

// Locate implements the patch.Locator interface.
func (r Routine) Locate(data []byte) (patch.Generator, error) {
	return r.Place(data)
}
