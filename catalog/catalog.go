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

package catalog

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/nopits/patch"
	"github.com/jetsetilly/nopits/recovery"
)

// Code is a Game Genie code baked into the catalog.
type Code struct {
	Code        string
	Description string
}

// Codes applied after the raw patches.
var Codes = []Code{
	{Code: "POAISA", Description: "Power up on enemies"},
	{Code: "OZTLLX", Description: "Always stay big (1/3)"},
	{Code: "AATLGZ", Description: "Always stay big (2/3)"},
	{Code: "SZLIVO", Description: "Always stay big (3/3)"},
}

// Names of the catalog entries.
const (
	PitRecovery    = "pit recovery"
	TimerFreeze    = "timer freeze"
	SpringboardMax = "springboard max"
	CastleMaze     = "castle maze"
)

// Descriptors returns the descriptors of the catalog in order. Any extra
// Game Genie codes are appended after the baked in codes.
func Descriptors(tuning recovery.Tuning, extra ...string) []patch.Descriptor {
	descs := []patch.Descriptor{
		{
			Name:      PitRecovery,
			Notes:     "falling into a pit launches the player upward with springboard velocity",
			Mode:      patch.Routine,
			Generator: recovery.NewRoutine(tuning, recovery.SMB),
		},
		{
			// RunGameTimer. LDA #$ff; STA DigitModifier+5; JSR DigitsMathRoutine
			Name:  TimerFreeze,
			Notes: "the timer digit decrement is removed",
			Mode:  patch.RawBytes,
			Edits: []patch.Edit{{
				Offset:  0x379d,
				Expect:  []byte{0xa9, 0xff, 0x8d, 0x39, 0x01, 0x20, 0x5f, 0x8f},
				Skip:    2,
				Payload: []byte{0xea, 0xea, 0xea},
			}},
		},
		{
			// ChkForLandJumpSpring. LDA #$70; STA VerticalForce; LDA #$f9; STA JumpspringForce
			Name:  SpringboardMax,
			Notes: "the springboard always gives the high bounce",
			Mode:  patch.RawBytes,
			Edits: []patch.Edit{{
				Offset:  0x5ed9,
				Expect:  []byte{0xa9, 0x70, 0x8d, 0x09, 0x07, 0xa9, 0xf9, 0x8d, 0xdb, 0x06},
				Skip:    6,
				Payload: []byte{0xf4},
			}},
		},
		{
			// ProcLoopCommand. the position check becomes a position set so
			// the player is always on the correct path through the maze
			Name:  CastleMaze,
			Notes: "castle mazes in 4-4, 7-4 and 8-4 are corrected automatically",
			Mode:  patch.RawBytes,
			Edits: []patch.Edit{{
				Offset: 0x40fb,
				Expect: []byte{
					0xa5, 0xce,       // LDA Player_Y_Position
					0xd9, 0x81, 0xc0, // CMP $c081,Y
					0xd0, 0x23,       // BNE WrongChk
					0xa5, 0x1d,       // LDA Player_State
					0xc9, 0x00,       // CMP #$00
					0xd0, 0x1d,       // BNE WrongChk
				},
				Payload: []byte{
					0xb9, 0x81, 0xc0, // LDA $c081,Y
					0x85, 0xce,       // STA Player_Y_Position
					0xa9, 0x00,       // LDA #$00
					0x85, 0x9f,       // STA Player_Y_Speed
					0x85, 0x1d,       // STA Player_State
					0xea, 0xea,
				},
			}},
		},
	}

	for _, c := range Codes {
		descs = append(descs, patch.Descriptor{
			Name:  c.Code,
			Notes: c.Description,
			Mode:  patch.Mnemonic,
			Code:  c.Code,
		})
	}

	for _, c := range extra {
		c = strings.ToUpper(strings.TrimSpace(c))
		descs = append(descs, patch.Descriptor{
			Name:  c,
			Notes: fmt.Sprintf("user code %s", c),
			Mode:  patch.Mnemonic,
			Code:  c,
		})
	}

	return descs
}

// Default returns the catalog with the tuning and any extra Game Genie
// codes.
func Default(tuning recovery.Tuning, extra ...string) (*patch.Catalog, error) {
	return patch.NewCatalog(Descriptors(tuning, extra...)...)
}
