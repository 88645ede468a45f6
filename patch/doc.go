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

// Package patch applies a catalog of context-checked edits to a binary image.
//
// A Descriptor names a patch and says how its edits are produced: as raw
// bytes, by decoding a Game Genie code or by running a Generator. A Catalog
// is an ordered, immutable list of descriptors whose edits have all been
// resolved. Resolution happens when the catalog is created so a malformed
// code is reported before any image is touched.
//
// Apply() validates the shape of the image, copies it and applies each
// descriptor in turn. A descriptor is applied only if the context of every
// one of its edits matches. Mismatches are not fatal. They are recorded in
// the Report and the descriptor's bytes are left untouched. The input buffer
// is never modified.
package patch
