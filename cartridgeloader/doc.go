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

// Package cartridgeloader is used to specify and load the binary image that
// is to be patched.
//
// The image can be a plain iNES file, a .zip archive containing one, or a
// zstd compressed stream (.zst extension). In every case the Data field
// holds the uncompressed image after a successful call to Load().
//
// The OutputFilename() function derives the filename of the patched image
// from the filename of the image inside any container.
package cartridgeloader
