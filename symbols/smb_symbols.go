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

package symbols

// RAMSymbols are the names for the work RAM addresses used by the patches.
var RAMSymbols = map[uint16]string{
	0x001d: "Player_State",
	0x0057: "Player_X_Speed",
	0x009f: "Player_Y_Speed",
	0x00b5: "Player_Y_HighPos",
	0x00ce: "Player_Y_Position",
	0x0134: "DigitModifier",
	0x015f: "RecoveryCountdown",
	0x0433: "Player_Y_MoveForce",
	0x06db: "JumpspringForce",
	0x06e4: "Player_SprDataOffset",
	0x0709: "VerticalForce",
	0x0743: "CloudTypeOverride",
	0x079e: "InjuryTimer",
}

// ROMSymbols are the names for the PRG addresses used by the patches.
var ROMSymbols = map[uint16]string{
	0x8f5f: "DigitsMathRoutine",
	0xb179: "PlayerHole",
	0xb1ba: "ExitCtrl",
	0xb1bb: "CloudExit",
	0xfffa: "NMI_Vector",
	0xfffc: "Reset_Vector",
	0xfffe: "IRQ_Vector",
}
