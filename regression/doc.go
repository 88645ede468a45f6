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

// Package regression records the frame by frame behaviour of the recovery
// controller and checks that it has not changed. Each entry in the regression
// database is the digest of a trace run from the boundary condition for a
// gravity variant.
//
// An entry can drive either the controller in the recovery package or the
// routine installed in a patched image running on the emulated CPU. The two
// kinds of entry should produce the same digest for the same tuning, so a
// pair of entries is a simple way of checking that the generated routine
// still agrees with the controller.
package regression
