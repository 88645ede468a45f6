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

package cartridgeloader_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/nopits/cartridgeloader"
	"github.com/jetsetilly/nopits/test"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

var image = []byte("NES\x1a\x02\x01\x00\x00 not really an image")

func TestPlain(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "smb.nes")
	test.DemandSuccess(t, os.WriteFile(fn, image, 0600))

	cl := cartridgeloader.NewLoader(fn)
	test.ExpectEquality(t, cl.HasLoaded(), false)
	test.DemandSuccess(t, cl.Load())
	test.ExpectEquality(t, cl.HasLoaded(), true)
	test.ExpectBytes(t, cl.Data, image)
	test.ExpectEquality(t, len(cl.Hash), 40)
	test.ExpectEquality(t, cl.ShortName(), "smb")
	test.ExpectEquality(t, cl.OutputFilename(" - No Pits"), filepath.Join(dir, "smb - No Pits.nes"))
}

func TestHashMismatch(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "smb.nes")
	test.DemandSuccess(t, os.WriteFile(fn, image, 0600))

	cl := cartridgeloader.NewLoader(fn)
	cl.Hash = "0000"
	test.ExpectFailure(t, cl.Load())
	test.ExpectEquality(t, cl.HasLoaded(), false)
}

func TestMissing(t *testing.T) {
	cl := cartridgeloader.NewLoader(filepath.Join(t.TempDir(), "nothing.nes"))
	test.ExpectFailure(t, cl.Load())
}

func TestZip(t *testing.T) {
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	w, err := zw.Create("readme.txt")
	test.DemandSuccess(t, err)
	_, _ = w.Write([]byte("hello"))
	w, err = zw.Create("Super Mario Bros. (World).nes")
	test.DemandSuccess(t, err)
	_, _ = w.Write(image)
	test.DemandSuccess(t, zw.Close())

	dir := t.TempDir()
	fn := filepath.Join(dir, "smb.zip")
	test.DemandSuccess(t, os.WriteFile(fn, b.Bytes(), 0600))

	cl := cartridgeloader.NewLoader(fn)
	test.DemandSuccess(t, cl.Load())
	test.ExpectBytes(t, cl.Data, image)
	test.ExpectEquality(t, cl.ShortName(), "Super Mario Bros. (World)")
	test.ExpectEquality(t, cl.OutputFilename(" - No Pits"),
		filepath.Join(dir, "Super Mario Bros. (World) - No Pits.nes"))
}

func TestZipNoImage(t *testing.T) {
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	for _, n := range []string{"a.txt", "b.txt"} {
		w, err := zw.Create(n)
		test.DemandSuccess(t, err)
		_, _ = w.Write([]byte(n))
	}
	test.DemandSuccess(t, zw.Close())

	fn := filepath.Join(t.TempDir(), "docs.zip")
	test.DemandSuccess(t, os.WriteFile(fn, b.Bytes(), 0600))

	cl := cartridgeloader.NewLoader(fn)
	test.ExpectFailure(t, cl.Load())
}

func TestZstd(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	test.DemandSuccess(t, err)
	compressed := enc.EncodeAll(image, nil)
	test.DemandSuccess(t, enc.Close())

	dir := t.TempDir()
	fn := filepath.Join(dir, "smb.nes.zst")
	test.DemandSuccess(t, os.WriteFile(fn, compressed, 0600))

	cl := cartridgeloader.NewLoader(fn)
	test.DemandSuccess(t, cl.Load())
	test.ExpectBytes(t, cl.Data, image)
	test.ExpectEquality(t, cl.OutputFilename(" - No Pits"), filepath.Join(dir, "smb - No Pits.nes"))

	fn = filepath.Join(dir, "smb.zst")
	test.DemandSuccess(t, os.WriteFile(fn, compressed, 0600))
	cl = cartridgeloader.NewLoader(fn)
	test.DemandSuccess(t, cl.Load())
	test.ExpectEquality(t, cl.OutputFilename(" - No Pits"), filepath.Join(dir, "smb - No Pits.nes"))
}
