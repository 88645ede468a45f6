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

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/hardware/cpu"
	"github.com/jetsetilly/nopits/hardware/memory"
	"github.com/jetsetilly/nopits/test"
)

// place the program at the address and return a CPU ready to use.
func newCPU(t *testing.T, origin uint16, program ...uint8) (*cpu.CPU, *memory.Memory) {
	t.Helper()
	prg := make([]uint8, 0x8000)
	copy(prg[origin-0x8000:], program)
	mem, err := memory.NewMemory(prg)
	test.DemandSuccess(t, err)
	return cpu.NewCPU(mem), mem
}

func peek(t *testing.T, mem *memory.Memory, address uint16) uint8 {
	t.Helper()
	v, err := mem.Peek(address)
	test.DemandSuccess(t, err)
	return v
}

func TestArithmetic(t *testing.T) {
	mc, mem := newCPU(t, 0x8000,
		0xa9, 0x05,       // LDA #$05
		0x18,             // CLC
		0x69, 0x03,       // ADC #$03
		0x85, 0x10,       // STA $10
		0x38,             // SEC
		0xe9, 0x09,       // SBC #$09
		0x8d, 0x33, 0x04, // STA $0433
		0x60,             // RTS
	)

	res, err := mc.Call(0x8000, 100)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Trapped, false)
	test.ExpectEquality(t, res.Instructions, 8)
	test.ExpectEquality(t, peek(t, mem, 0x10), 0x08)
	test.ExpectEquality(t, peek(t, mem, 0x0433), 0xff)
	test.ExpectEquality(t, mc.Status.Carry, false)
	test.ExpectEquality(t, mc.Status.Sign, true)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
}

func TestLoopCycles(t *testing.T) {
	mc, _ := newCPU(t, 0x8000,
		0xa2, 0x05, // LDX #$05
		0xca,       // loop: DEX
		0xd0, 0xfd, // BNE loop
		0x60,       // RTS
	)

	res, err := mc.Call(0x8000, 100)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mc.X.Value(), 0x00)
	test.ExpectEquality(t, mc.Status.Zero, true)
	test.ExpectEquality(t, res.Instructions, 12)

	// LDX 2, five DEX 10, four taken BNE 12, one untaken BNE 2, RTS 6
	test.ExpectEquality(t, res.Cycles, 32)
}

func TestSubroutines(t *testing.T) {
	mc, _ := newCPU(t, 0x8000,
		0x20, 0x05, 0x80, // JSR sub
		0xc8,             // INY
		0x60,             // RTS
		0xa0, 0x01,       // sub: LDY #$01
		0x60,             // RTS
	)

	res, err := mc.Call(0x8000, 100)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mc.Y.Value(), 0x02)
	test.ExpectEquality(t, res.Reached(0x8005), true)
	test.ExpectEquality(t, res.Reached(0x8006), false)
	test.ExpectEquality(t, mc.SP.Value(), 0xfd)
}

func TestTrap(t *testing.T) {
	mc, _ := newCPU(t, 0x8000,
		0xa5, 0xb5,       // LDA $b5
		0xc9, 0x02,       // CMP #$02
		0xb0, 0x01,       // BCS trap
		0x60,             // RTS
		0x4c, 0x00, 0x90, // trap: JMP $9000
	)

	res, err := mc.Call(0x8000, 100, 0x9000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Trapped, false)

	mc2, mem2 := newCPU(t, 0x8000,
		0xa5, 0xb5,       // LDA $b5
		0xc9, 0x02,       // CMP #$02
		0xb0, 0x01,       // BCS trap
		0x60,             // RTS
		0x4c, 0x00, 0x90, // JMP $9000
	)
	test.DemandSuccess(t, mem2.Write(0xb5, 0x02))
	res, err = mc2.Call(0x8000, 100, 0x9000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Trapped, true)
	test.ExpectEquality(t, res.Trap, 0x9000)
	test.ExpectEquality(t, res.Reached(0x8007), true)
}

func TestLimit(t *testing.T) {
	mc, _ := newCPU(t, 0x8000,
		0x4c, 0x00, 0x80, // JMP $8000
	)
	_, err := mc.Call(0x8000, 50)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, cpu.ExecutionError), true)
}

func TestReadOnlyPRG(t *testing.T) {
	mc, _ := newCPU(t, 0x8000,
		0x8d, 0x79, 0xb1, // STA $b179
		0x60,
	)
	_, err := mc.Call(0x8000, 10)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Has(err, memory.AccessError), true)
}

func TestUndocumented(t *testing.T) {
	mc, _ := newCPU(t, 0x8000, 0x02)
	err := mc.ExecuteInstruction()
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, mc.Killed, true)
	test.ExpectFailure(t, mc.ExecuteInstruction())

	mc.Reset()
	test.ExpectEquality(t, mc.Killed, false)
}

func TestIndirectJumpBug(t *testing.T) {
	mc, mem := newCPU(t, 0x8000,
		0x6c, 0xff, 0x02, // JMP ($02ff)
	)
	test.DemandSuccess(t, mem.Write(0x02ff, 0x34))
	test.DemandSuccess(t, mem.Write(0x0300, 0x12))
	test.DemandSuccess(t, mem.Write(0x0200, 0x90))

	mc.LoadPC(0x8000)
	test.DemandSuccess(t, mc.ExecuteInstruction())
	test.ExpectEquality(t, mc.PC.Address(), 0x9034)
}

func TestBranchPageCross(t *testing.T) {
	mc, _ := newCPU(t, 0x80fc,
		0x38,       // SEC
		0xb0, 0x10, // BCS +$10
	)
	mc.LoadPC(0x80fc)
	test.DemandSuccess(t, mc.ExecuteInstruction())
	test.DemandSuccess(t, mc.ExecuteInstruction())
	test.ExpectEquality(t, mc.PC.Address(), 0x810f)
	test.ExpectEquality(t, mc.LastResult.BranchSuccess, true)
	test.ExpectEquality(t, mc.LastResult.PageFault, true)
	test.ExpectEquality(t, mc.LastResult.Cycles, 4)
	test.ExpectEquality(t, mc.LastResult.String(), "$80fd BCS $10")
}

func TestCompareAndBranch(t *testing.T) {
	// the sequence used by the recovery routine to test for a positive
	// velocity
	mc, mem := newCPU(t, 0x8000,
		0xa5, 0x9f, // LDA $9f
		0xf0, 0x04, // BEQ out
		0x30, 0x02, // BMI out
		0xe6, 0x10, // INC $10
		0x60,       // out: RTS
	)

	for _, v := range []struct {
		velocity uint8
		inc      uint8
	}{{0x00, 0}, {0x01, 1}, {0x7f, 1}, {0x80, 0}, {0xf4, 0}} {
		test.DemandSuccess(t, mem.Write(0x10, 0))
		test.DemandSuccess(t, mem.Write(0x9f, v.velocity))
		_, err := mc.Call(0x8000, 10)
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, peek(t, mem, 0x10), v.inc, v.velocity)
	}
}

func TestStackAndShifts(t *testing.T) {
	mc, mem := newCPU(t, 0x8000,
		0xa9, 0x81, // LDA #$81
		0x48,       // PHA
		0x4a,       // LSR A
		0x85, 0x20, // STA $20
		0x68,       // PLA
		0x06, 0x21, // ASL $21
		0x2a,       // ROL A
		0x60,
	)
	test.DemandSuccess(t, mem.Write(0x21, 0xc0))

	_, err := mc.Call(0x8000, 20)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, peek(t, mem, 0x20), 0x40)
	test.ExpectEquality(t, peek(t, mem, 0x21), 0x80)

	// ASL $21 set carry, ROL A rotates it in
	test.ExpectEquality(t, mc.A.Value(), 0x03)
	test.ExpectEquality(t, mc.Status.Carry, true)
}
