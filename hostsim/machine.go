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
	"bytes"
	"fmt"

	"github.com/jetsetilly/nopits/assembler"
	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/hardware/cpu"
	"github.com/jetsetilly/nopits/hardware/memory"
	"github.com/jetsetilly/nopits/recovery"
	"github.com/jetsetilly/nopits/rom"
)

// MachineError is the curated pattern for errors running the installed
// routine.
const MachineError = "hostsim: machine: %v"

// the routine is short and has no loops
const instructionLimit = 100

// Machine runs the recovery routine installed in a patched image. It
// satisfies the Controller interface.
type Machine struct {
	host recovery.HostMap
	tail assembler.Program

	mem *memory.Memory
	mc  *cpu.CPU

	// the first error encountered by Step()
	err error

	// the result of the most recent call
	Last cpu.CallResult
}

// NewMachine is the preferred method of initialisation for the Machine type.
// An error is returned if the image does not contain the routine.
func NewMachine(image []byte, routine recovery.Routine) (*Machine, error) {
	img, err := rom.NewImage(image)
	if err != nil {
		return nil, curated.Errorf(MachineError, err)
	}

	routine, err = routine.Place(image)
	if err != nil {
		return nil, curated.Errorf(MachineError, err)
	}
	head, err := routine.Head()
	if err != nil {
		return nil, curated.Errorf(MachineError, err)
	}
	tail, err := routine.Tail()
	if err != nil {
		return nil, curated.Errorf(MachineError, err)
	}

	for _, p := range []assembler.Program{head, tail} {
		o, err := rom.CPUToFile(p.Origin)
		if err != nil {
			return nil, curated.Errorf(MachineError, err)
		}
		if !bytes.Equal(img.Read(o, len(p.Code)), p.Code) {
			return nil, curated.Errorf(MachineError, fmt.Sprintf("routine is not installed at $%04x", p.Origin))
		}
	}

	mem, err := memory.NewMemory(img.PRG())
	if err != nil {
		return nil, curated.Errorf(MachineError, err)
	}

	return &Machine{
		host: routine.Host,
		tail: tail,
		mem:  mem,
		mc:   cpu.NewCPU(mem),
	}, nil
}

// Err returns the first error encountered by Step().
func (m *Machine) Err() error {
	return m.err
}

// Memory returns the machine's memory.
func (m *Machine) Memory() *memory.Memory {
	return m.mem
}

func (m *Machine) write(address uint16, v uint8) {
	if m.err == nil {
		m.err = m.mem.Write(address, v)
	}
}

func (m *Machine) read(address uint16) uint8 {
	if m.err != nil {
		return 0
	}
	var v uint8
	v, m.err = m.mem.Read(address)
	return v
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Step implements the Controller interface. The snapshot is written to the
// host's memory, the routine is called through the host's hazard handler
// entry point and the snapshot is read back.
func (m *Machine) Step(s *recovery.Snapshot) recovery.Action {
	if m.err != nil {
		return recovery.None
	}

	h := m.host
	m.write(h.Position, s.Position)
	m.write(h.Band, uint8(s.Band))
	m.write(h.Velocity, uint8(s.Velocity))
	m.write(h.Accumulator, s.Accumulator)
	m.write(h.HorizontalVelocity, uint8(s.HorizontalVelocity))
	m.write(h.Movement, uint8(s.Movement))
	m.write(h.Invulnerable, flag(s.Invulnerable))
	m.write(h.AreaOverride, flag(s.AreaOverride))
	before := recovery.FromCell(m.read(h.Private))
	if m.err != nil {
		m.err = curated.Errorf(MachineError, m.err)
		return recovery.None
	}

	sp := m.mc.SP.Value()
	res, err := m.mc.Call(h.Entry, instructionLimit, h.HandOff)
	m.Last = res
	if err != nil {
		m.err = curated.Errorf(MachineError, err)
		return recovery.None
	}

	if res.Trapped {
		// the hand off routine is not part of the machine. it is reached
		// with JMP so the stack is as it was on entry
		m.mc.SP.Load(sp)
		return recovery.HandOff
	}

	s.Position = m.read(h.Position)
	s.Band = recovery.Band(m.read(h.Band))
	s.Velocity = int8(m.read(h.Velocity))
	s.Accumulator = m.read(h.Accumulator)
	s.HorizontalVelocity = int8(m.read(h.HorizontalVelocity))
	s.Movement = recovery.MovementState(m.read(h.Movement))
	after := m.read(h.Private)
	if m.err != nil {
		m.err = curated.Errorf(MachineError, m.err)
		return recovery.None
	}

	if before.State == recovery.Boosted {
		if recovery.FromCell(after).State == recovery.Idle {
			return recovery.Released
		}
		return recovery.Suppressed
	}

	boost, _ := m.tail.Label(recovery.LabelBoost)
	freeze, _ := m.tail.Label(recovery.LabelFreeze)
	switch {
	case res.Reached(boost):
		return recovery.Boost
	case res.Reached(freeze):
		return recovery.Freeze
	}
	return recovery.None
}

// Private implements the Controller interface.
func (m *Machine) Private() recovery.PrivateState {
	v, _ := m.mem.Peek(m.host.Private)
	return recovery.FromCell(v)
}

// Restore the private state cell.
func (m *Machine) Restore(p recovery.PrivateState) {
	if err := m.mem.Poke(m.host.Private, p.Cell()); err != nil && m.err == nil {
		m.err = curated.Errorf(MachineError, err)
	}
}
