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

package assembler_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/nopits/assembler"
	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/hardware/cpu"
	"github.com/jetsetilly/nopits/hardware/memory"
	"github.com/jetsetilly/nopits/test"
)

func TestAssemble(t *testing.T) {
	asm := assembler.New()
	asm.Label("start")
	asm.Address("LDA", 0x00b5)
	asm.Immediate("CMP", 0x02)
	asm.Branch("BCS", "deep")
	asm.Address("LDY", 0x06e4)
	asm.Implied("RTS")
	asm.Label("deep")
	asm.Address("JMP", 0xb1bb)

	test.ExpectEquality(t, asm.Size(), 13)

	prog, err := asm.Assemble(0xffa0)
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, prog.Code, []byte{
		0xa5, 0xb5,
		0xc9, 0x02,
		0xb0, 0x04,
		0xac, 0xe4, 0x06,
		0x60,
		0x4c, 0xbb, 0xb1,
	})

	a, ok := prog.Label("deep")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, a, 0xffaa)
	test.ExpectEquality(t, prog.End(), 0xffad)

	_, ok = prog.Label("nowhere")
	test.ExpectEquality(t, ok, false)
}

func TestBackwardBranchAndJump(t *testing.T) {
	asm := assembler.New()
	asm.Label("loop")
	asm.Implied("DEX")
	asm.Branch("BNE", "loop")
	asm.Jump("JMP", "loop")
	asm.Bytes(0xea, 0xea)

	prog, err := asm.Assemble(0x8000)
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, prog.Code, []byte{0xca, 0xd0, 0xfd, 0x4c, 0x00, 0x80, 0xea, 0xea})
}

func TestEquate(t *testing.T) {
	asm := assembler.New()
	asm.Equate("exit", 0xb1ba)
	asm.Address("LDA", 0x00b5)
	asm.Branch("BEQ", "exit")
	asm.Jump("JMP", "exit")

	prog, err := asm.Assemble(0xb179)
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, prog.Code, []byte{0xa5, 0xb5, 0xf0, 0x3d, 0x4c, 0xba, 0xb1})

	a, ok := prog.Label("exit")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, a, 0xb1ba)

	// out of range from the other end of memory
	_, err = asm.Assemble(0x8000)
	test.ExpectEquality(t, curated.Is(err, assembler.AssemblyError), true)

	// an equate and a label of the same name
	asm = assembler.New()
	asm.Equate("exit", 0xb1ba)
	asm.Label("exit")
	asm.Implied("RTS")
	_, err = asm.Assemble(0x8000)
	test.ExpectEquality(t, curated.Is(err, assembler.AssemblyError), true)
}

func TestZeroPageSelection(t *testing.T) {
	asm := assembler.New()
	asm.Address("STA", 0x009f)
	asm.Address("STA", 0x0433)
	asm.AddressX("LDA", 0x0010)
	asm.AddressY("LDX", 0x0010)

	// LDA has no zero page,Y form so the absolute form is used
	asm.AddressY("LDA", 0x0010)

	prog, err := asm.Assemble(0x8000)
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, prog.Code, []byte{
		0x85, 0x9f,
		0x8d, 0x33, 0x04,
		0xb5, 0x10,
		0xb6, 0x10,
		0xb9, 0x10, 0x00,
	})
}

func TestErrors(t *testing.T) {
	bad := func(f func(asm *assembler.Assembler)) {
		t.Helper()
		asm := assembler.New()
		f(asm)
		_, err := asm.Assemble(0x8000)
		test.ExpectFailure(t, err)
		test.ExpectEquality(t, curated.Is(err, assembler.AssemblyError), true)
	}

	bad(func(asm *assembler.Assembler) { asm.Implied("XYZ") })
	bad(func(asm *assembler.Assembler) { asm.Immediate("STA", 0x00) })
	bad(func(asm *assembler.Assembler) { asm.Branch("BNE", "missing") })
	bad(func(asm *assembler.Assembler) { asm.Label("") })
	bad(func(asm *assembler.Assembler) {
		asm.Label("a")
		asm.Implied("NOP")
		asm.Label("a")
	})
	bad(func(asm *assembler.Assembler) {
		asm.Branch("BEQ", "far")
		asm.Bytes(make([]byte, 128)...)
		asm.Label("far")
	})

	// too big for the end of memory
	asm := assembler.New()
	asm.Bytes(make([]byte, 16)...)
	_, err := asm.Assemble(0xfff8)
	test.ExpectFailure(t, err)
}

func TestBranchLimit(t *testing.T) {
	asm := assembler.New()
	asm.Branch("BEQ", "far")
	asm.Bytes(make([]byte, 127)...)
	asm.Label("far")
	_, err := asm.Assemble(0x8000)
	test.ExpectSuccess(t, err)
}

func TestListing(t *testing.T) {
	asm := assembler.New()
	asm.Label("home")
	asm.Address("DEC", 0x06e4)
	asm.Label("exit")
	asm.Implied("RTS")
	asm.Bytes(0x01, 0x02, 0x03, 0x04)
	asm.Label("end")

	prog, err := asm.Assemble(0xffa0)
	test.DemandSuccess(t, err)

	expected := "home:\n" +
		"$FFA0  CE E4 06    DEC $06e4\n" +
		"exit:\n" +
		"$FFA3  60          RTS\n" +
		"$FFA4  01 02 03..  .byte $01,$02,$03,$04\n" +
		"end:\n"
	test.ExpectEquality(t, prog.Listing(), expected)
}

// the assembled code runs on the CPU
func TestExecute(t *testing.T) {
	asm := assembler.New()
	asm.Address("LDA", 0x0010)
	asm.Branch("BEQ", "zero")
	asm.Immediate("LDA", 0xf4)
	asm.Address("STA", 0x009f)
	asm.Implied("RTS")
	asm.Label("zero")
	asm.Address("DEC", 0x0011)
	asm.Implied("RTS")

	prog, err := asm.Assemble(0x9000)
	test.DemandSuccess(t, err)

	prg := make([]byte, 0x8000)
	copy(prg[0x1000:], prog.Code)
	mem, err := memory.NewMemory(prg)
	test.DemandSuccess(t, err)
	mc := cpu.NewCPU(mem)

	_, err = mc.Call(0x9000, 20)
	test.DemandSuccess(t, err)
	v, _ := mem.Peek(0x0011)
	test.ExpectEquality(t, v, 0xff)

	test.DemandSuccess(t, mem.Write(0x0010, 1))
	res, err := mc.Call(0x9000, 20)
	test.DemandSuccess(t, err)
	v, _ = mem.Peek(0x009f)
	test.ExpectEquality(t, v, 0xf4)
	test.ExpectEquality(t, res.Reached(prog.Labels["zero"]), false)

	test.ExpectEquality(t, strings.Count(prog.Listing(), "\n"), 8)
}
