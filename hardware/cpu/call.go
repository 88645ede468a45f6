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
	"slices"

	"github.com/jetsetilly/nopits/curated"
)

// the return address pushed by Call(). RTS adds one to the pulled address so
// the subroutine returns to $0000, which is never executed.
const callSentinel = uint16(0x0000)

// CallResult summarises a call to a subroutine.
type CallResult struct {
	// Trapped is true if execution stopped because PC reached one of the trap
	// addresses. Trap is the address
	Trapped bool
	Trap    uint16

	// the address of every instruction executed, in order
	Visited []uint16

	Instructions int
	Cycles       int
}

// Reached returns true if the instruction at the address was executed.
func (r CallResult) Reached(address uint16) bool {
	return slices.Contains(r.Visited, address)
}

// Call runs the subroutine at address until it returns with RTS or until PC
// reaches one of the trap addresses. Execution is abandoned with an error if
// more than limit instructions are executed.
//
// The stack pointer is restored on return. On a trap the stack is left as it
// is because control has been transferred elsewhere.
func (mc *CPU) Call(address uint16, limit int, traps ...uint16) (CallResult, error) {
	var res CallResult

	sp := mc.SP.Value()
	ret := callSentinel
	if err := mc.push16(ret - 1); err != nil {
		return res, err
	}
	mc.PC.Load(address)

	startCycles := mc.Cycles
	for {
		pc := mc.PC.Address()

		if pc == callSentinel && mc.SP.Value() == sp {
			break // for loop
		}

		if slices.Contains(traps, pc) {
			res.Trapped = true
			res.Trap = pc
			break // for loop
		}

		if res.Instructions >= limit {
			return res, curated.Errorf(ExecutionError, fmt.Sprintf("subroutine at $%04x did not return within %d instructions", address, limit))
		}

		res.Visited = append(res.Visited, pc)
		if err := mc.ExecuteInstruction(); err != nil {
			return res, err
		}
		res.Instructions++
	}

	res.Cycles = mc.Cycles - startCycles
	return res, nil
}
