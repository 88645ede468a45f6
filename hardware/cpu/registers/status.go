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

package registers

// StatusRegister is the special purpose register that stores the flags of the CPU.
type StatusRegister struct {
	Sign             bool
	Overflow         bool
	Break            bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// Label returns the canonical name for the status register.
func (sr StatusRegister) Label() string {
	return "SR"
}

func (sr StatusRegister) String() string {
	flags := []struct {
		set  bool
		name byte
	}{
		{sr.Sign, 'S'}, {sr.Overflow, 'V'}, {false, '-'}, {sr.Break, 'B'},
		{sr.DecimalMode, 'D'}, {sr.InterruptDisable, 'I'}, {sr.Zero, 'Z'}, {sr.Carry, 'C'},
	}

	s := make([]byte, len(flags))
	for i, f := range flags {
		switch {
		case f.name == '-':
			s[i] = '-'
		case f.set:
			s[i] = f.name
		default:
			s[i] = f.name + ('a' - 'A')
		}
	}
	return string(s)
}

// SetZN sets the zero and sign flags according to the value.
func (sr *StatusRegister) SetZN(v uint8) {
	sr.Zero = v == 0
	sr.Sign = v&0x80 == 0x80
}

// Reset status flags to initial state.
func (sr *StatusRegister) Reset() {
	sr.FromValue(0)
}

// Value converts the StatusRegister struct into a value suitable for pushing
// onto the stack.
func (sr StatusRegister) Value() uint8 {
	// unused bit is always 1
	v := uint8(0x20)

	bits := []struct {
		set bool
		bit uint8
	}{
		{sr.Sign, 0x80}, {sr.Overflow, 0x40}, {sr.Break, 0x10}, {sr.DecimalMode, 0x08},
		{sr.InterruptDisable, 0x04}, {sr.Zero, 0x02}, {sr.Carry, 0x01},
	}
	for _, b := range bits {
		if b.set {
			v |= b.bit
		}
	}

	return v
}

// FromValue converts an 8 bit integer (taken from the stack, for example) to
// the StatusRegister struct receiver.
func (sr *StatusRegister) FromValue(v uint8) {
	sr.Sign = v&0x80 == 0x80
	sr.Overflow = v&0x40 == 0x40
	sr.Break = v&0x10 == 0x10
	sr.DecimalMode = v&0x08 == 0x08
	sr.InterruptDisable = v&0x04 == 0x04
	sr.Zero = v&0x02 == 0x02
	sr.Carry = v&0x01 == 0x01
}
