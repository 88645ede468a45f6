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

package genie_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/genie"
	"github.com/jetsetilly/nopits/test"
)

func TestDecodeKnown(t *testing.T) {
	cases := []struct {
		code    string
		address uint16
		value   uint8
		compare uint8
		has     bool
	}{
		{"POAISA", 0xd885, 0x11, 0, false},
		{"OZTLLX", 0xb263, 0xa9, 0, false},
		{"AATLGZ", 0xb264, 0x00, 0, false},
		{"SZLIVO", 0xd936, 0xad, 0, false},
		{"SXIOPO", 0x91d9, 0xad, 0, false},
		{"ZEXPYGLA", 0x94a7, 0x02, 0x03, true},
		{"AEKPTZGA", 0x92c6, 0x00, 0x04, true},
	}

	for _, c := range cases {
		g, err := genie.Decode(c.code)
		test.DemandSuccess(t, err, c.code)
		test.ExpectEquality(t, g.Address, c.address, c.code)
		test.ExpectEquality(t, g.Value, c.value, c.code)
		test.ExpectEquality(t, g.HasCompare, c.has, c.code)
		test.ExpectEquality(t, g.Compare, c.compare, c.code)
		test.ExpectEquality(t, g.Canonical(), true, c.code)
		test.ExpectEquality(t, g.Len(), len(c.code), c.code)
		test.ExpectEquality(t, genie.Encode(g), c.code, c.code)
	}
}

func TestDecodeCase(t *testing.T) {
	a, err := genie.Decode(" poaisa\n")
	test.ExpectSuccess(t, err)
	b, err := genie.Decode("POAISA")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, b)
}

func TestNonCanonical(t *testing.T) {
	// third letter has the length flag set on a six letter code
	g, err := genie.Decode("GOSSIP")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, g.Address, 0xd1dd)
	test.ExpectEquality(t, g.Value, 0x14)
	test.ExpectEquality(t, g.Canonical(), false)
	test.ExpectEquality(t, genie.Encode(g), "GOSSIP")
}

func TestDecodeErrors(t *testing.T) {
	for _, s := range []string{"", "POAIS", "POAISAP", "POAISAPZL", "POAISB", "ZEXPYG1A", "POAISé"} {
		_, err := genie.Decode(s)
		test.ExpectFailure(t, err, s)
		test.ExpectEquality(t, curated.Is(err, genie.FormatError), true, s)
	}
}

func TestNewCode(t *testing.T) {
	c := genie.NewCode(0xd885, 0x11)
	test.ExpectEquality(t, genie.Encode(c), "POAISA")
	test.ExpectEquality(t, c.String(), "D885:11")

	c = genie.NewCompareCode(0x94a7, 0x02, 0x03)
	test.ExpectEquality(t, genie.Encode(c), "ZEXPYGLA")
	test.ExpectEquality(t, c.String(), "94A7?03:02")

	// addresses are always in PRG space
	c = genie.NewCode(0x1234, 0x00)
	test.ExpectEquality(t, c.Address, 0x9234)
}

func TestRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewPCG(2600, 1985))

	var b strings.Builder
	for range 5000 {
		b.Reset()
		l := 6
		if rnd.IntN(2) == 1 {
			l = 8
		}
		for range l {
			b.WriteByte(genie.Alphabet[rnd.IntN(len(genie.Alphabet))])
		}
		s := b.String()

		g, err := genie.Decode(s)
		test.DemandSuccess(t, err, s)
		test.ExpectEquality(t, genie.Encode(g), s, s)
		test.ExpectEquality(t, g.Address >= 0x8000, true, s)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewPCG(6502, 0x2a03))

	for range 5000 {
		var c genie.Code
		if rnd.IntN(2) == 1 {
			c = genie.NewCompareCode(uint16(rnd.UintN(0x10000)), uint8(rnd.UintN(256)), uint8(rnd.UintN(256)))
		} else {
			c = genie.NewCode(uint16(rnd.UintN(0x10000)), uint8(rnd.UintN(256)))
		}

		d, err := genie.Decode(genie.Encode(c))
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, d, c)
	}
}
