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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas, with flag.FlagSet you call Parse() with the array of strings as
// the only argument, with modalflag you first NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("PATCH", "DECODE", "SIM")
//	_, _ = md.Parse()
//
// Once the arguments have been parsed, non-flag arguments can be retrieved
// with the RemainingArgs() or GetArg() function.
//
// A mode is a special command line argument that when specified, puts the
// program into a different mode of operation. Each mode has its own set of
// flags. After a call to Parse(), Mode() returns the selected mode. If the
// first non-flag argument is not one of the sub-modes then the first sub-mode
// in the list is selected as the default. For simplicity, all sub-mode
// comparisons are case insensitive.
//
// Once the mode has been decided, NewMode() prepares for the flags of that
// mode and Parse() is called again:
//
//	switch md.Mode() {
//	case "PATCH":
//		md.NewMode()
//		dryrun := md.AddBool("dryrun", false, "do not write the patched image")
//		codes := md.AddStringList("code", "additional game genie code")
//		p, err := md.Parse()
//		...
//	}
//
// The Parse() function returns ParseHelp if help was requested with -help or
// -h. In that case the help message has already been written to the Output
// writer.
package modalflag
