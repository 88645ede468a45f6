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

package assembler

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/hardware/cpu/instructions"
)

// AssemblyError is the curated pattern for all assembler errors.
const AssemblyError = "assembler: %v"

type line struct {
	label string

	defn    instructions.Definition
	operand uint16

	// operand is the address of this label. used for branches and jumps
	target string

	// raw data. used instead of defn if not nil
	data []byte
}

func (l line) size() int {
	if l.label != "" {
		return 0
	}
	if l.data != nil {
		return len(l.data)
	}
	return l.defn.Bytes
}

// Assembler collects the source of a routine.
type Assembler struct {
	lines []line

	// labels at fixed addresses outside the routine
	equates map[string]uint16

	// the first error encountered while adding lines
	err error
}

// New is the preferred method of initialisation for the Assembler type.
func New() *Assembler {
	return &Assembler{}
}

func (asm *Assembler) fail(s string, a ...any) {
	if asm.err == nil {
		asm.err = curated.Errorf(AssemblyError, fmt.Sprintf(s, a...))
	}
}

func (asm *Assembler) add(mnemonic string, mode instructions.AddressingMode, operand uint16, target string) {
	op, ok := instructions.OperatorFromMnemonic(mnemonic)
	if !ok {
		asm.fail("unknown mnemonic %s", mnemonic)
		return
	}
	defn, ok := instructions.Lookup(op, mode)
	if !ok {
		asm.fail("%s does not support %s addressing", op, mode)
		return
	}
	asm.lines = append(asm.lines, line{defn: defn, operand: operand, target: target})
}

// Label defines a label at the current position.
func (asm *Assembler) Label(name string) {
	if name == "" {
		asm.fail("empty label")
		return
	}
	asm.lines = append(asm.lines, line{label: name})
}

// Equate defines a label at a fixed address. Used to branch or jump to the
// host's own code.
func (asm *Assembler) Equate(name string, address uint16) {
	if name == "" {
		asm.fail("empty label")
		return
	}
	if asm.equates == nil {
		asm.equates = make(map[string]uint16)
	}
	if _, ok := asm.equates[name]; ok {
		asm.fail("label %s defined more than once", name)
		return
	}
	asm.equates[name] = address
}

// Implied adds an instruction with no operand. Shift instructions in this form
// operate on the accumulator.
func (asm *Assembler) Implied(mnemonic string) {
	asm.add(mnemonic, instructions.Implied, 0, "")
}

// Immediate adds an instruction with an immediate operand.
func (asm *Assembler) Immediate(mnemonic string, value uint8) {
	asm.add(mnemonic, instructions.Immediate, uint16(value), "")
}

// Address adds an instruction that accesses memory at address. The zero
// page form is used where possible.
func (asm *Assembler) Address(mnemonic string, address uint16) {
	asm.indexed(mnemonic, address, instructions.Absolute)
}

// AddressX adds an instruction that accesses memory at address indexed by X.
func (asm *Assembler) AddressX(mnemonic string, address uint16) {
	asm.indexed(mnemonic, address, instructions.AbsoluteIndexedX)
}

// AddressY adds an instruction that accesses memory at address indexed by Y.
func (asm *Assembler) AddressY(mnemonic string, address uint16) {
	asm.indexed(mnemonic, address, instructions.AbsoluteIndexedY)
}

func (asm *Assembler) indexed(mnemonic string, address uint16, mode instructions.AddressingMode) {
	if address < 0x100 {
		if zp, ok := mode.ZeroPageEquivalent(); ok {
			if op, ok := instructions.OperatorFromMnemonic(mnemonic); ok {
				if _, ok := instructions.Lookup(op, zp); ok {
					mode = zp
				}
			}
		}
	}
	asm.add(mnemonic, mode, address, "")
}

// Branch adds a branch instruction to the label.
func (asm *Assembler) Branch(mnemonic string, label string) {
	asm.add(mnemonic, instructions.Relative, 0, label)
}

// Jump adds an instruction with an absolute address operand that is the
// address of the label. Used for JMP and JSR.
func (asm *Assembler) Jump(mnemonic string, label string) {
	asm.add(mnemonic, instructions.Absolute, 0, label)
}

// Bytes adds raw data.
func (asm *Assembler) Bytes(data ...byte) {
	if len(data) == 0 {
		return
	}
	asm.lines = append(asm.lines, line{data: append([]byte{}, data...)})
}

// Size returns the number of bytes the routine will assemble to.
func (asm *Assembler) Size() int {
	var n int
	for _, l := range asm.lines {
		n += l.size()
	}
	return n
}

// Assemble the routine at the origin.
func (asm *Assembler) Assemble(origin uint16) (Program, error) {
	if asm.err != nil {
		return Program{}, asm.err
	}

	if int(origin)+asm.Size() > 0x10000 {
		return Program{}, curated.Errorf(AssemblyError, fmt.Sprintf("%d bytes at $%04x runs past $ffff", asm.Size(), origin))
	}

	prog := Program{
		Origin: origin,
		Labels: make(map[string]uint16),
	}

	for name, a := range asm.equates {
		prog.Labels[name] = a
	}

	// first pass. label addresses
	pc := int(origin)
	for _, l := range asm.lines {
		if l.label != "" {
			if _, ok := prog.Labels[l.label]; ok {
				return Program{}, curated.Errorf(AssemblyError, fmt.Sprintf("label %s defined more than once", l.label))
			}
			prog.Labels[l.label] = uint16(pc)
		}
		pc += l.size()
	}

	// second pass. code
	pc = int(origin)
	var pending []string
	for _, l := range asm.lines {
		if l.label != "" {
			pending = append(pending, l.label)
			continue
		}

		ins := Instruction{Address: uint16(pc), Labels: pending}
		pending = nil

		if l.data != nil {
			ins.Bytes = l.data
			ins.Text = fmt.Sprintf(".byte %s", hexList(l.data))
		} else {
			operand := l.operand
			if l.target != "" {
				a, ok := prog.Labels[l.target]
				if !ok {
					return Program{}, curated.Errorf(AssemblyError, fmt.Sprintf("unknown label %s", l.target))
				}
				operand = a
				if l.defn.IsBranch() {
					d := int(a) - (pc + 2)
					if d < -128 || d > 127 {
						return Program{}, curated.Errorf(AssemblyError, fmt.Sprintf("branch to %s is out of range (%d)", l.target, d))
					}
					operand = uint16(uint8(int8(d)))
				}
			}

			ins.Bytes = []byte{l.defn.OpCode}
			switch l.defn.Bytes {
			case 2:
				ins.Bytes = append(ins.Bytes, uint8(operand))
			case 3:
				ins.Bytes = append(ins.Bytes, uint8(operand), uint8(operand>>8))
			}
			ins.Text = format(l.defn, operand, l.target)
		}

		prog.Code = append(prog.Code, ins.Bytes...)
		prog.Instructions = append(prog.Instructions, ins)
		pc += len(ins.Bytes)
	}

	// labels at the very end of the routine
	if len(pending) > 0 {
		prog.Instructions = append(prog.Instructions, Instruction{Address: uint16(pc), Labels: pending})
	}

	return prog, nil
}

func hexList(data []byte) string {
	s := make([]string, len(data))
	for i, b := range data {
		s[i] = fmt.Sprintf("$%02x", b)
	}
	return strings.Join(s, ",")
}

func format(defn instructions.Definition, operand uint16, target string) string {
	op := defn.Operator.String()
	if target != "" {
		return fmt.Sprintf("%s %s", op, target)
	}
	switch defn.AddressingMode {
	case instructions.Immediate:
		return fmt.Sprintf("%s #$%02x", op, operand)
	case instructions.ZeroPage:
		return fmt.Sprintf("%s $%02x", op, operand)
	case instructions.ZeroPageIndexedX:
		return fmt.Sprintf("%s $%02x,X", op, operand)
	case instructions.ZeroPageIndexedY:
		return fmt.Sprintf("%s $%02x,Y", op, operand)
	case instructions.Absolute:
		return fmt.Sprintf("%s $%04x", op, operand)
	case instructions.AbsoluteIndexedX:
		return fmt.Sprintf("%s $%04x,X", op, operand)
	case instructions.AbsoluteIndexedY:
		return fmt.Sprintf("%s $%04x,Y", op, operand)
	}
	return op
}
