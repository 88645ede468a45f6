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

package regression

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/nopits/catalog/catalogtest"
	"github.com/jetsetilly/nopits/database"
	"github.com/jetsetilly/nopits/hostsim"
	"github.com/jetsetilly/nopits/recovery"
	"github.com/jetsetilly/nopits/test"
)

func TestKind(t *testing.T) {
	for _, k := range []Kind{KindController, KindRoutine} {
		p, err := ParseKind(strings.ToUpper(k.String()))
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, p, k)
	}
	_, err := ParseKind("undefined")
	test.ExpectFailure(t, err)
}

func TestRegression(t *testing.T) {
	dir := t.TempDir()
	pth := filepath.Join(dir, DefaultFile)
	img := filepath.Join(dir, "smb.nes")
	test.DemandSuccess(t, os.WriteFile(img, catalogtest.Image(), 0600))

	var out bytes.Buffer

	// nothing to run
	_, err := RegressRunTests(pth, &out, false, false, nil)
	test.ExpectFailure(t, err)

	variant, _ := hostsim.FindVariant("athletic")
	tuning := recovery.DefaultTuning()

	ctrl := NewArcRegression(variant, tuning, KindController)
	ctrlKey, err := RegressAdd(pth, &out, ctrl)
	test.DemandSuccess(t, err)

	rtn := NewArcRegression(variant, tuning, KindRoutine)
	rtn.Image = img
	rtn.Notes = "installed routine"
	rtnKey, err := RegressAdd(pth, &out, rtn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(rtn.ImageHash), 40)

	// the routine and the controller agree frame by frame
	test.ExpectInequality(t, ctrl.digest, "")
	test.ExpectEquality(t, rtn.digest, ctrl.digest)

	out.Reset()
	res, err := RegressRunTests(pth, &out, false, false, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Succeed, 2)
	test.ExpectEquality(t, res.Passed(), true)

	// only the named entry. keys can be shortened
	res, err = RegressRunTests(pth, &out, false, false, []string{ctrlKey[:len(ctrlKey)-2]})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Succeed, 1)

	// a changed image is an error for the routine entry only
	test.DemandSuccess(t, os.WriteFile(img, append(catalogtest.Image()[:0x10], make([]byte, 0x9ff0)...), 0600))
	out.Reset()
	res, err = RegressRunTests(pth, &out, true, false, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Succeed, 1)
	test.ExpectEquality(t, res.Error, 1)
	test.ExpectEquality(t, res.Passed(), false)
	test.ExpectEquality(t, strings.Contains(out.String(), "ERROR"), true)

	// declined deletion leaves the entry in place
	out.Reset()
	test.DemandSuccess(t, RegressDelete(pth, &out, strings.NewReader("n\n"), rtnKey))
	test.DemandSuccess(t, RegressDelete(pth, &out, strings.NewReader("y\n"), rtnKey))
	test.ExpectEquality(t, strings.Contains(out.String(), "deleted"), true)

	out.Reset()
	test.DemandSuccess(t, RegressList(pth, &out))
	test.ExpectEquality(t, strings.Contains(out.String(), "Total: 1"), true, out.String())
}

func TestRegressionFailure(t *testing.T) {
	pth := filepath.Join(t.TempDir(), DefaultFile)
	variant, _ := hostsim.FindVariant("castle")

	var out bytes.Buffer
	reg := NewArcRegression(variant, recovery.DefaultTuning(), KindController)
	_, err := RegressAdd(pth, &out, reg)
	test.DemandSuccess(t, err)

	// rewrite the entry with a different digest
	db, err := database.StartSession(pth, database.ActivityModifying, initDBSession)
	test.DemandSuccess(t, err)
	k, ent, err := db.Get(db.SortedKeyList()[0])
	test.DemandSuccess(t, err)
	ent.(*ArcRegression).digest = "0000"
	test.DemandSuccess(t, db.Delete(k))
	_, err = db.Add(ent)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, db.EndSession(true))

	res, err := RegressRunTests(pth, &out, false, false, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Fail, 1)
}

func TestArcEntry(t *testing.T) {
	variant, _ := hostsim.FindVariant("underground")
	reg := NewArcRegression(variant, recovery.DefaultTuning(), KindController)
	reg.InputHeld = true
	reg.digest = "abcd"

	fields, err := reg.Serialise()
	test.DemandSuccess(t, err)
	ent, err := deserialiseArcEntry(fields)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, *ent.(*ArcRegression), *reg)

	fields[arcFieldVariant] = "nowhere"
	_, err = deserialiseArcEntry(fields)
	test.ExpectFailure(t, err)

	_, err = deserialiseArcEntry(fields[:3])
	test.ExpectFailure(t, err)

	reg.Frames = 0
	_, err = reg.regress(true, &bytes.Buffer{}, "")
	test.ExpectFailure(t, err)
}
