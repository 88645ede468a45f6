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

// Package symbols names addresses in the host game. There are two tables:
// RAM for the work RAM below $0800 and ROM for the PRG address space.
//
// The Standard() table has the names of every address the patches and the
// recovery routine touch. ReadSymbolsFile() adds the symbols from a symbols
// file next to the image, if one exists. Standard names are always preferred
// to the names in a symbols file.
//
// The labels of an assembled program can be added with AddProgram().
package symbols
