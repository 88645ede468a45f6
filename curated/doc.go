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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error. The pattern is what identifies
// the error, not the formatted message:
//
//	e := curated.Errorf("rom: structure: %v", "bad magic")
//
//	if curated.Is(e, "rom: structure: %v") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	f := curated.Errorf("patch: %v", e)
//
//	if curated.Has(f, "rom: structure: %v") {
//		fmt.Println("true")
//	}
//
// Packages that produce curated errors export their patterns as constants.
// For example, the taxonomy used when patching an image is:
//
//	rom.StructuralError      fatal, nothing is written
//	patch.ContextMismatch    one patch is skipped, the rest continue
//	genie.FormatError        fatal to the catalog, checked before any write
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. For example, wrapping "patch: nothing applied"
// with the pattern "patch: %v" results in:
//
//	patch: nothing applied
//
// and not:
//
//	patch: patch: nothing applied
//
// For the purposes of this package we think of chains as being composed of
// parts separted by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan).
//
// Curated errors also cooperate with the standard errors package. Unwrap()
// returns any error values used to create the curated error, so errors.Is()
// and errors.As() work through curated wrapping.
package curated
