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

package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"fmt"

	"github.com/zeebo/blake3"
)

// Image is the set of hashes for a binary image. MD5 is what people expect
// to see when comparing dumps. SHA1 matches the hash recorded by the
// cartridgeloader package.
type Image struct {
	MD5    string
	SHA1   string
	BLAKE3 string
}

// NewImage computes all hashes for the data.
func NewImage(data []byte) Image {
	b := blake3.Sum256(data)
	return Image{
		MD5:    fmt.Sprintf("%x", md5.Sum(data)),
		SHA1:   fmt.Sprintf("%x", sha1.Sum(data)),
		BLAKE3: fmt.Sprintf("%x", b),
	}
}

func (img Image) String() string {
	return fmt.Sprintf("md5 %s", img.MD5)
}
