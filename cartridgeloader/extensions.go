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
	"strings"
)

// FileExtensions is the list of file extensions that are recognised as plain
// images.
var FileExtensions = [...]string{".NES", ".ROM", ".BIN"}

// container extensions.
const (
	extZip  = ".ZIP"
	extZstd = ".ZST"
)

// isImageExtension returns true if the extension is in the FileExtensions list.
func isImageExtension(ext string) bool {
	ext = strings.ToUpper(ext)
	for _, e := range FileExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
