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
	"fmt"

	"github.com/zeebo/blake3"
)

// Frames is a running hash of per-frame records. Used to fingerprint a
// simulation run.
type Frames struct {
	hasher *blake3.Hasher
	frames int
}

// NewFrames is the preferred method of initialisation for the Frames type.
func NewFrames() *Frames {
	return &Frames{hasher: blake3.New()}
}

// Add a record to the running hash.
func (dig *Frames) Add(record []byte) {
	_, _ = dig.hasher.Write(record)
	dig.frames++
}

// Frames returns the number of records added since the last reset.
func (dig *Frames) Frames() int {
	return dig.frames
}

// Hash implements digest.Digest interface
func (dig *Frames) Hash() string {
	return fmt.Sprintf("%x", dig.hasher.Sum(nil))
}

// ResetDigest implements digest.Digest interface
func (dig *Frames) ResetDigest() {
	dig.hasher.Reset()
	dig.frames = 0
}
