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

// HostMap locates the snapshot fields and the controller's installation
// points in the host.
type HostMap struct {
	// zero page or absolute RAM addresses of the snapshot fields
	Position           uint16
	Band               uint16
	Velocity           uint16
	Accumulator        uint16
	HorizontalVelocity uint16
	Movement           uint16
	Invulnerable       uint16
	AreaOverride       uint16

	// the private state cell. the host must never read or write it
	Private uint16

	// the host's hazard handler. EntryContext is the expected start of the
	// handler and EntrySize the number of bytes replaced by the head of the
	// routine. Exit is the RTS that follows the handler
	Entry        uint16
	EntryContext []byte
	EntrySize    int
	Exit         uint16

	// the bonus area exit routine. reached with a branch from the head and
	// it returns with RTS
	HandOff uint16

	// the tail of the routine is placed in a run of unused PRG space. every
	// byte of the run holds Free and the run is at least FreeRun bytes long.
	// Home is where the tail goes when there is no image to search
	Home    uint16
	Free    uint8
	FreeRun int
}

// SMB is the host map for Super Mario Bros.
//
// The private cell is in the part of page one that the host's reset routine
// clears ($0100-$015f). The host's own variables in that page end at
// DigitModifier+5 ($0139) and the stack occupies $0160-$01ff.
var SMB = HostMap{
	Position:           0x00ce, // Player_Y_Position
	Band:               0x00b5, // Player_Y_HighPos
	Velocity:           0x009f, // Player_Y_Speed
	Accumulator:        0x0433, // Player_Y_MoveForce
	HorizontalVelocity: 0x0057, // Player_X_Speed
	Movement:           0x001d, // Player_State
	Invulnerable:       0x079e, // InjuryTimer
	AreaOverride:       0x0743, // CloudTypeOverride
	Private:            0x015f,

	// PlayerHole up to ExitCtrl
	Entry:        0xb179,
	EntryContext: []byte{0xa5, 0xb5, 0xc9, 0x02, 0x30, 0x3b, 0xa2, 0x01},
	EntrySize:    65,
	Exit:         0xb1ba,

	HandOff: 0xb1bb, // CloudExit

	// the end of the space before the interrupt vectors
	Home:    0xffe9,
	Free:    0xff,
	FreeRun: 24,
}
