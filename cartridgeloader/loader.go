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

package cartridgeloader

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/nopits/curated"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Loader is used to specify the image to load.
type Loader struct {
	// filename of image to load
	Filename string

	// the name of the image inside the container. for plain images this is
	// the same as the Filename field
	Inner string

	// expected hash of the loaded image. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: filename,
		Inner:    filename,
	}
}

// ShortName returns a shortened version of the image filename. The name of
// the image inside any container is used in preference to the container name.
func (cl Loader) ShortName() string {
	n := filepath.Base(cl.Inner)
	return strings.TrimSuffix(n, filepath.Ext(n))
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// OutputFilename returns the name of the file the patched image should be
// written to. The suffix is inserted before the image's extension and the
// file is placed alongside the original file.
//
// For example, with suffix " - No Pits":
//
//	roms/smb.nes      ->  roms/smb - No Pits.nes
//	roms/smb.zip      ->  roms/smb - No Pits.nes   (if the archive holds smb.nes)
//	roms/smb.nes.zst  ->  roms/smb - No Pits.nes
func (cl Loader) OutputFilename(suffix string) string {
	dir := filepath.Dir(cl.Filename)
	inner := filepath.Base(cl.Inner)
	ext := filepath.Ext(inner)
	base := strings.TrimSuffix(inner, ext)
	return filepath.Join(dir, fmt.Sprintf("%s%s%s", base, suffix, ext))
}

// Load the image data. Subsequent calls to Load() do nothing.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	raw, err := os.ReadFile(cl.Filename)
	if err != nil {
		return curated.Errorf("cartridgeloader: %v", err)
	}

	switch strings.ToUpper(filepath.Ext(cl.Filename)) {
	case extZip:
		err = cl.unzip(raw)
	case extZstd:
		err = cl.unzstd(raw)
	default:
		cl.Inner = cl.Filename
		cl.Data = raw
	}
	if err != nil {
		return curated.Errorf("cartridgeloader: %v", err)
	}

	if len(cl.Data) == 0 {
		return curated.Errorf("cartridgeloader: %v", "no data")
	}

	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))
	if cl.Hash != "" && cl.Hash != hash {
		cl.Data = nil
		return curated.Errorf("cartridgeloader: %v", "unexpected hash value")
	}
	cl.Hash = hash

	return nil
}

// unzip takes the first file in the archive with a recognised image
// extension. an archive containing exactly one file is accepted whatever the
// extension of that file.
func (cl *Loader) unzip(raw []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return err
	}

	var files []*zip.File
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() {
			files = append(files, f)
		}
	}

	var selected *zip.File
	for _, f := range files {
		if isImageExtension(filepath.Ext(f.Name)) {
			selected = f
			break
		}
	}
	if selected == nil {
		if len(files) != 1 {
			return fmt.Errorf("no image found in archive")
		}
		selected = files[0]
	}

	r, err := selected.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	cl.Data, err = io.ReadAll(r)
	if err != nil {
		return err
	}
	cl.Inner = selected.Name

	return nil
}

func (cl *Loader) unzstd(raw []byte) error {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return err
	}
	defer dec.Close()

	cl.Data, err = dec.DecodeAll(raw, nil)
	if err != nil {
		return err
	}
	cl.Inner = strings.TrimSuffix(cl.Filename, filepath.Ext(cl.Filename))

	// a compressed stream with no inner extension is assumed to be an image
	if filepath.Ext(cl.Inner) == "" {
		cl.Inner = fmt.Sprintf("%s.nes", cl.Inner)
	}

	return nil
}
