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

package cpu

import (
	"fmt"

	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/hardware/cpu/instructions"
	"github.com/jetsetilly/nopits/hardware/cpu/registers"
	"github.com/jetsetilly/nopits/hardware/memory/cpubus"
)

// ExecutionError is the curated pattern for errors during instruction
// execution.
const ExecutionError = "cpu: %v"

// Result records the last instruction executed.
type Result struct {
	// the address of the opcode
	Address uint16

	Defn *instructions.Definition

	// the operand of the instruction. zero for implied instructions
	InstructionData uint16

	// number of cycles consumed, including page crossing and branch penalties
	Cycles int

	PageFault     bool
	BranchSuccess bool
}

func (r Result) String() string {
	if r.Defn == nil {
		return fmt.Sprintf("$%04x ???", r.Address)
	}
	switch r.Defn.Bytes {
	case 2:
		return fmt.Sprintf("$%04x %s $%02x", r.Address, r.Defn.Operator, r.InstructionData)
	case 3:
		return fmt.Sprintf("$%04x %s $%04x", r.Address, r.Defn.Operator, r.InstructionData)
	}
	return fmt.Sprintf("$%04x %s", r.Address, r.Defn.Operator)
}

// CPU implements the 6502. Register logic is implemented by the Register type
// in the registers sub-package.
type CPU struct {
	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.Register
	Status registers.StatusRegister

	mem          cpubus.Memory
	instructions []*instructions.Definition

	// the last instruction executed
	LastResult Result

	// total number of cycles executed since the last Reset()
	Cycles int

	// the cpu has encountered an undocumented opcode. requires a Reset()
	Killed bool
}

// NewCPU is the preferred method of initialisation for the CPU structure.
func NewCPU(mem cpubus.Memory) *CPU {
	mc := &CPU{
		mem:          mem,
		A:            registers.NewRegister(0, "A"),
		X:            registers.NewRegister(0, "X"),
		Y:            registers.NewRegister(0, "Y"),
		SP:           registers.NewRegister(0, "SP"),
		instructions: instructions.GetDefinitions(),
	}
	mc.Reset()
	return mc
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s=%s %s=%s %s=%s %s=%s",
		mc.PC.Label(), mc.PC, mc.A.Label(), mc.A,
		mc.X.Label(), mc.X, mc.Y.Label(), mc.Y,
		mc.SP.Label(), mc.SP, mc.Status.Label(), mc.Status)
}

// Reset reinitialises all registers. Does not load PC with RESET vector. Use
// cpu.LoadPCIndirect(cpubus.Reset) when appropriate.
func (mc *CPU) Reset() {
	mc.LastResult = Result{}
	mc.Killed = false
	mc.Cycles = 0
	mc.PC.Load(0)
	mc.A.Load(0)
	mc.X.Load(0)
	mc.Y.Load(0)
	mc.SP.Load(0xfd)
	mc.Status.Reset()
	mc.Status.InterruptDisable = true
}

// LoadPCIndirect loads the contents of indirectAddress into the PC.
func (mc *CPU) LoadPCIndirect(indirectAddress uint16) error {
	v, err := mc.read16Bit(indirectAddress)
	if err != nil {
		return err
	}
	mc.PC.Load(v)
	return nil
}

// LoadPC loads the contents of directAddress into the PC.
func (mc *CPU) LoadPC(directAddress uint16) {
	mc.PC.Load(directAddress)
}

func (mc *CPU) read8Bit(address uint16) (uint8, error) {
	v, err := mc.mem.Read(address)
	if err != nil {
		return 0, curated.Errorf(ExecutionError, err)
	}
	return v, nil
}

func (mc *CPU) write8Bit(address uint16, value uint8) error {
	if err := mc.mem.Write(address, value); err != nil {
		return curated.Errorf(ExecutionError, err)
	}
	return nil
}

func (mc *CPU) read16Bit(address uint16) (uint16, error) {
	lo, err := mc.read8Bit(address)
	if err != nil {
		return 0, err
	}
	hi, err := mc.read8Bit(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// read a 16 bit value from the zero page. the high byte wraps around to $00
func (mc *CPU) read16BitZeroPage(address uint8) (uint16, error) {
	lo, err := mc.read8Bit(uint16(address))
	if err != nil {
		return 0, err
	}
	hi, err := mc.read8Bit(uint16(address + 1))
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// read the byte at the PC and advance the PC.
func (mc *CPU) read8BitPC() (uint8, error) {
	v, err := mc.read8Bit(mc.PC.Address())
	if err != nil {
		return 0, err
	}
	mc.PC.Add(1)
	return v, nil
}

func (mc *CPU) read16BitPC() (uint16, error) {
	lo, err := mc.read8BitPC()
	if err != nil {
		return 0, err
	}
	hi, err := mc.read8BitPC()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (mc *CPU) push(v uint8) error {
	if err := mc.write8Bit(0x0100|mc.SP.Address(), v); err != nil {
		return err
	}
	mc.SP.Load(mc.SP.Value() - 1)
	return nil
}

func (mc *CPU) pull() (uint8, error) {
	mc.SP.Load(mc.SP.Value() + 1)
	return mc.read8Bit(0x0100 | mc.SP.Address())
}

func (mc *CPU) push16(v uint16) error {
	if err := mc.push(uint8(v >> 8)); err != nil {
		return err
	}
	return mc.push(uint8(v))
}

func (mc *CPU) pull16() (uint16, error) {
	lo, err := mc.pull()
	if err != nil {
		return 0, err
	}
	hi, err := mc.pull()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (mc *CPU) branch(flag bool, offset uint16) {
	mc.LastResult.BranchSuccess = flag
	if !flag {
		return
	}

	// sign extend the 8bit offset
	if offset&0x0080 == 0x0080 {
		offset |= 0xff00
	}

	mc.LastResult.Cycles++
	if mc.PC.Add(offset) {
		mc.LastResult.PageFault = true
		mc.LastResult.Cycles++
	}
}
