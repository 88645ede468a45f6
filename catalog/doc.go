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

// Package catalog is the list of patches applied to Super Mario Bros. The
// pit recovery routine is the first entry. The remaining entries are small
// byte edits and Game Genie codes that make the game more accessible.
//
// The offsets of the raw edits are file offsets into the iNES image. Each
// raw edit declares the surrounding bytes it expects to find. A mismatch is
// reported as a warning by patch.Apply() and the other patches are still
// applied.
package catalog
