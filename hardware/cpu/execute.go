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
	"github.com/jetsetilly/nopits/hardware/memory/cpubus"
)

// ExecuteInstruction steps the CPU forward one instruction.
func (mc *CPU) ExecuteInstruction() error {
	if mc.Killed {
		return curated.Errorf(ExecutionError, "cpu is killed")
	}

	mc.LastResult = Result{Address: mc.PC.Address()}

	opcode, err := mc.read8BitPC()
	if err != nil {
		return err
	}

	defn := mc.instructions[opcode]
	if defn == nil {
		mc.Killed = true
		return curated.Errorf(ExecutionError, fmt.Sprintf("undocumented opcode $%02x at $%04x", opcode, mc.LastResult.Address))
	}
	mc.LastResult.Defn = defn
	mc.LastResult.Cycles = defn.Cycles

	// address is the actual address to use to access memory (after any
	// indexing has taken place)
	var address uint16

	// value is the immediate operand or the value read from memory
	var value uint8

	switch defn.AddressingMode {
	case instructions.Implied:

	case instructions.Immediate:
		value, err = mc.read8BitPC()
		mc.LastResult.InstructionData = uint16(value)

	case instructions.Relative:
		var v uint8
		v, err = mc.read8BitPC()
		address = uint16(v)
		mc.LastResult.InstructionData = address

	case instructions.Absolute:
		address, err = mc.read16BitPC()
		mc.LastResult.InstructionData = address

	case instructions.ZeroPage:
		var v uint8
		v, err = mc.read8BitPC()
		address = uint16(v)
		mc.LastResult.InstructionData = address

	case instructions.ZeroPageIndexedX, instructions.ZeroPageIndexedY:
		var v uint8
		v, err = mc.read8BitPC()
		mc.LastResult.InstructionData = uint16(v)
		if defn.AddressingMode == instructions.ZeroPageIndexedX {
			v += mc.X.Value()
		} else {
			v += mc.Y.Value()
		}
		address = uint16(v)

	case instructions.AbsoluteIndexedX, instructions.AbsoluteIndexedY:
		var base uint16
		base, err = mc.read16BitPC()
		mc.LastResult.InstructionData = base
		if defn.AddressingMode == instructions.AbsoluteIndexedX {
			address = base + mc.X.Address()
		} else {
			address = base + mc.Y.Address()
		}
		mc.pageFault(base, address)

	case instructions.Indirect:
		var ptr uint16
		ptr, err = mc.read16BitPC()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = ptr

		// indirect addressing JMP bug. the high byte is read from the start
		// of the same page if the pointer is at the end of a page
		var lo, hi uint8
		lo, err = mc.read8Bit(ptr)
		if err != nil {
			return err
		}
		hi, err = mc.read8Bit(ptr&0xff00 | uint16(uint8(ptr)+1))
		address = uint16(hi)<<8 | uint16(lo)

	case instructions.IndexedIndirect:
		var v uint8
		v, err = mc.read8BitPC()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint16(v)
		address, err = mc.read16BitZeroPage(v + mc.X.Value())

	case instructions.IndirectIndexed:
		var v uint8
		v, err = mc.read8BitPC()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint16(v)
		var base uint16
		base, err = mc.read16BitZeroPage(v)
		address = base + mc.Y.Address()
		mc.pageFault(base, address)
	}
	if err != nil {
		return err
	}

	// read value from memory for instructions that need it
	if defn.AddressingMode != instructions.Implied && defn.AddressingMode != instructions.Immediate &&
		defn.AddressingMode != instructions.Relative {
		if defn.Effect == instructions.Read || defn.Effect == instructions.Modify {
			value, err = mc.read8Bit(address)
			if err != nil {
				return err
			}
		}
	}

	if err := mc.execute(defn, address, value); err != nil {
		return err
	}

	mc.Cycles += mc.LastResult.Cycles

	return nil
}

// note page fault for page sensitive instructions.
func (mc *CPU) pageFault(base uint16, address uint16) {
	if base&0xff00 != address&0xff00 {
		mc.LastResult.PageFault = true
		if mc.LastResult.Defn.PageSensitive {
			mc.LastResult.Cycles++
		}
	}
}

func (mc *CPU) execute(defn *instructions.Definition, address uint16, value uint8) error {
	// modify instructions in implied mode operate on the accumulator
	accumulator := defn.AddressingMode == instructions.Implied

	// result of modify instructions to be written back
	var modified uint8
	var writeback bool

	switch defn.Operator {
	case instructions.Nop:

	case instructions.Clc:
		mc.Status.Carry = false
	case instructions.Cld:
		mc.Status.DecimalMode = false
	case instructions.Cli:
		mc.Status.InterruptDisable = false
	case instructions.Clv:
		mc.Status.Overflow = false
	case instructions.Sec:
		mc.Status.Carry = true
	case instructions.Sed:
		mc.Status.DecimalMode = true
	case instructions.Sei:
		mc.Status.InterruptDisable = true

	case instructions.Pha:
		return mc.push(mc.A.Value())
	case instructions.Php:
		return mc.push(mc.Status.Value() | 0x10)
	case instructions.Pla:
		v, err := mc.pull()
		if err != nil {
			return err
		}
		mc.A.Load(v)
		mc.Status.SetZN(v)
	case instructions.Plp:
		v, err := mc.pull()
		if err != nil {
			return err
		}
		mc.Status.FromValue(v)
		mc.Status.Break = false

	case instructions.Txa:
		mc.A.Load(mc.X.Value())
		mc.Status.SetZN(mc.A.Value())
	case instructions.Tax:
		mc.X.Load(mc.A.Value())
		mc.Status.SetZN(mc.X.Value())
	case instructions.Tay:
		mc.Y.Load(mc.A.Value())
		mc.Status.SetZN(mc.Y.Value())
	case instructions.Tya:
		mc.A.Load(mc.Y.Value())
		mc.Status.SetZN(mc.A.Value())
	case instructions.Tsx:
		mc.X.Load(mc.SP.Value())
		mc.Status.SetZN(mc.X.Value())
	case instructions.Txs:
		mc.SP.Load(mc.X.Value())

	case instructions.Ora:
		mc.A.ORA(value)
		mc.Status.SetZN(mc.A.Value())
	case instructions.Eor:
		mc.A.EOR(value)
		mc.Status.SetZN(mc.A.Value())
	case instructions.And:
		mc.A.AND(value)
		mc.Status.SetZN(mc.A.Value())

	case instructions.Lda:
		mc.A.Load(value)
		mc.Status.SetZN(value)
	case instructions.Ldx:
		mc.X.Load(value)
		mc.Status.SetZN(value)
	case instructions.Ldy:
		mc.Y.Load(value)
		mc.Status.SetZN(value)

	case instructions.Sta:
		return mc.write8Bit(address, mc.A.Value())
	case instructions.Stx:
		return mc.write8Bit(address, mc.X.Value())
	case instructions.Sty:
		return mc.write8Bit(address, mc.Y.Value())

	case instructions.Inx:
		mc.X.Load(mc.X.Value() + 1)
		mc.Status.SetZN(mc.X.Value())
	case instructions.Iny:
		mc.Y.Load(mc.Y.Value() + 1)
		mc.Status.SetZN(mc.Y.Value())
	case instructions.Dex:
		mc.X.Load(mc.X.Value() - 1)
		mc.Status.SetZN(mc.X.Value())
	case instructions.Dey:
		mc.Y.Load(mc.Y.Value() - 1)
		mc.Status.SetZN(mc.Y.Value())

	case instructions.Asl, instructions.Lsr, instructions.Rol, instructions.Ror:
		r := mc.A
		if !accumulator {
			r.Load(value)
		}
		var carry bool
		switch defn.Operator {
		case instructions.Asl:
			carry = r.ASL()
		case instructions.Lsr:
			carry = r.LSR()
		case instructions.Rol:
			carry = r.ROL(mc.Status.Carry)
		case instructions.Ror:
			carry = r.ROR(mc.Status.Carry)
		}
		mc.Status.Carry = carry
		mc.Status.SetZN(r.Value())
		if accumulator {
			mc.A = r
		} else {
			modified = r.Value()
			writeback = true
		}

	case instructions.Inc:
		modified = value + 1
		mc.Status.SetZN(modified)
		writeback = true
	case instructions.Dec:
		modified = value - 1
		mc.Status.SetZN(modified)
		writeback = true

	case instructions.Adc:
		mc.Status.Carry, mc.Status.Overflow = mc.A.Add(value, mc.Status.Carry)
		mc.Status.SetZN(mc.A.Value())
	case instructions.Sbc:
		mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(value, mc.Status.Carry)
		mc.Status.SetZN(mc.A.Value())

	case instructions.Cmp:
		mc.Status.Carry, mc.Status.Zero, mc.Status.Sign = mc.A.Compare(value)
	case instructions.Cpx:
		mc.Status.Carry, mc.Status.Zero, mc.Status.Sign = mc.X.Compare(value)
	case instructions.Cpy:
		mc.Status.Carry, mc.Status.Zero, mc.Status.Sign = mc.Y.Compare(value)

	case instructions.Bit:
		mc.Status.Zero = mc.A.Value()&value == 0
		mc.Status.Sign = value&0x80 == 0x80
		mc.Status.Overflow = value&0x40 == 0x40

	case instructions.Bpl:
		mc.branch(!mc.Status.Sign, address)
	case instructions.Bmi:
		mc.branch(mc.Status.Sign, address)
	case instructions.Bvc:
		mc.branch(!mc.Status.Overflow, address)
	case instructions.Bvs:
		mc.branch(mc.Status.Overflow, address)
	case instructions.Bcc:
		mc.branch(!mc.Status.Carry, address)
	case instructions.Bcs:
		mc.branch(mc.Status.Carry, address)
	case instructions.Bne:
		mc.branch(!mc.Status.Zero, address)
	case instructions.Beq:
		mc.branch(mc.Status.Zero, address)

	case instructions.Jmp:
		mc.PC.Load(address)

	case instructions.Jsr:
		// the address pushed is the last byte of the JSR instruction
		if err := mc.push16(mc.PC.Address() - 1); err != nil {
			return err
		}
		mc.PC.Load(address)

	case instructions.Rts:
		rtn, err := mc.pull16()
		if err != nil {
			return err
		}
		mc.PC.Load(rtn + 1)

	case instructions.Brk:
		// BRK skips the byte following the opcode
		if err := mc.push16(mc.PC.Address() + 1); err != nil {
			return err
		}
		if err := mc.push(mc.Status.Value() | 0x10); err != nil {
			return err
		}
		mc.Status.InterruptDisable = true
		return mc.LoadPCIndirect(cpubus.IRQ)

	case instructions.Rti:
		v, err := mc.pull()
		if err != nil {
			return err
		}
		mc.Status.FromValue(v)
		mc.Status.Break = false
		rtn, err := mc.pull16()
		if err != nil {
			return err
		}
		mc.PC.Load(rtn)

	default:
		return curated.Errorf(ExecutionError, fmt.Sprintf("unimplemented operator %s", defn.Operator))
	}

	if writeback {
		return mc.write8Bit(address, modified)
	}

	return nil
}
