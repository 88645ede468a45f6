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

package recovery_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/recovery"
	"github.com/jetsetilly/nopits/rom/romtest"
	"github.com/jetsetilly/nopits/test"
)

func TestReferences(t *testing.T) {
	prg := bytes.Repeat([]byte{0xea}, 0x100)
	copy(prg[0x10:], []byte{0xad, 0x5f, 0x01}) // LDA $015f
	copy(prg[0x20:], []byte{0x9d, 0x5f, 0x01}) // STA $015f,X
	copy(prg[0x30:], []byte{0x4c, 0x5f, 0x01}) // JMP $015f
	copy(prg[0x40:], []byte{0x20, 0x5f, 0x01}) // JSR $015f
	copy(prg[0x50:], []byte{0xa5, 0x5f})       // LDA $5f
	copy(prg[0xfe:], []byte{0xad, 0x5f})

	refs := recovery.References(prg, 0x8000, 0x015f)
	test.DemandEquality(t, len(refs), 2)
	test.ExpectEquality(t, refs[0], 0x8010)
	test.ExpectEquality(t, refs[1], 0x8020)

	refs = recovery.References(prg, 0x8000, 0x005f)
	test.DemandEquality(t, len(refs), 1)
	test.ExpectEquality(t, refs[0], 0x8050)

	test.ExpectEquality(t, len(recovery.References(prg, 0x8000, 0x06e4)), 0)
}

// an image of NOPs with unused space at the end of PRG
func placeImage() []byte {
	data := romtest.Blank(0xea)
	for a := uint16(0xff80); a < 0xfffa; a++ {
		romtest.Place(data, a, 0xff)
	}
	return data
}

func TestPlace(t *testing.T) {
	r := recovery.NewRoutine(recovery.DefaultTuning(), recovery.SMB)

	p, err := r.Place(placeImage())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Host.Home, 0xffe9)

	// a run that is too short is not used
	data := placeImage()
	romtest.Place(data, 0xff80, bytes.Repeat([]byte{0xea}, 0x68)...)
	_, err = r.Place(data)
	test.ExpectEquality(t, curated.Is(err, recovery.PlaceError), true)

	// a run away from the vectors
	data = romtest.Blank(0xea)
	for a := uint16(0xa000); a < 0xa020; a++ {
		romtest.Place(data, a, 0xff)
	}
	p, err = r.Place(data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Host.Home, 0xa00f)

	// host code naming the private cell
	data = placeImage()
	romtest.Place(data, 0x9000, 0xce, 0x5f, 0x01)
	_, err = r.Place(data)
	test.ExpectEquality(t, curated.Is(err, recovery.PlaceError), true)

	// not an image
	_, err = r.Place([]byte{0x4e, 0x45, 0x53})
	test.ExpectEquality(t, curated.Is(err, recovery.PlaceError), true)
}

// an installed routine is found through the head's jump even when there is no
// unused space left in the image
func TestPlaceInstalled(t *testing.T) {
	r := recovery.NewRoutine(recovery.DefaultTuning(), recovery.SMB)
	r.Host.Home = 0xc82f

	edits, err := r.Generate()
	test.DemandSuccess(t, err)

	data := romtest.Blank(0xea)
	for _, e := range edits {
		copy(data[e.PayloadOffset():], e.Payload)
	}

	p, err := recovery.NewRoutine(recovery.DefaultTuning(), recovery.SMB).Place(data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Host.Home, 0xc82f)

	// the head is installed with a different tuning
	tuning := recovery.DefaultTuning()
	tuning.Threshold = 0xc8
	_, err = recovery.NewRoutine(tuning, recovery.SMB).Place(data)
	test.ExpectEquality(t, curated.Is(err, recovery.PlaceError), true)
}
