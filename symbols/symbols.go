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

package symbols

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jetsetilly/nopits/assembler"
	"github.com/jetsetilly/nopits/curated"
)

// SymbolsError is the curated pattern for errors in this package.
const SymbolsError = "symbols: %v"

// the highest address of work RAM. symbols for addresses below this are put
// in the RAM table
const ramTop = 0x0800

// Symbols is the pair of symbol tables.
type Symbols struct {
	RAM *Table
	ROM *Table
}

// Standard returns the table of standard symbols.
func Standard() *Symbols {
	sym := &Symbols{
		RAM: newTable(),
		ROM: newTable(),
	}
	sym.standard()
	return sym
}

func (sym *Symbols) standard() {
	for a, s := range RAMSymbols {
		sym.RAM.add(a, s, true)
	}
	for a, s := range ROMSymbols {
		sym.ROM.add(a, s, true)
	}
}

func (sym *Symbols) table(addr uint16) *Table {
	if addr < ramTop {
		return sym.RAM
	}
	return sym.ROM
}

// AddProgram adds the labels of the assembled program to the ROM table.
// Existing symbols are preferred.
func (sym *Symbols) AddProgram(prog assembler.Program) {
	for l, a := range prog.Labels {
		sym.ROM.add(a, l, false)
	}
}

// SymbolsFilename returns the name of the symbols file for the image.
func SymbolsFilename(imageFilename string) string {
	ext := filepath.Ext(imageFilename)
	if ext == strings.ToUpper(ext) && ext != "" {
		return fmt.Sprintf("%s.SYM", strings.TrimSuffix(imageFilename, ext))
	}
	return fmt.Sprintf("%s.sym", strings.TrimSuffix(imageFilename, ext))
}

// ReadSymbolsFile returns the standard symbols and the symbols from the
// symbols file for the image. A missing symbols file is not an error. An
// empty filename returns the standard symbols.
//
// Each line of the file is a symbol and a hex address, optionally separated
// by an equals sign. The address may be prefixed with $ or 0x. Lines
// beginning with a semicolon are ignored.
//
//	Player_Y_Position = $ce
//	PlayerHole $b179
func ReadSymbolsFile(imageFilename string) (*Symbols, error) {
	sym := Standard()
	if imageFilename == "" {
		return sym, nil
	}

	f, err := os.Open(SymbolsFilename(imageFilename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sym, nil
		}
		return sym, curated.Errorf(SymbolsError, err)
	}
	defer f.Close()

	if err := sym.read(f); err != nil {
		return sym, curated.Errorf(SymbolsError, err)
	}

	return sym, nil
}

func (sym *Symbols) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		ln := strings.TrimSpace(scanner.Text())
		if ln == "" || strings.HasPrefix(ln, ";") {
			continue // for loop
		}

		p := strings.Fields(strings.Replace(ln, "=", " ", 1))
		if len(p) < 2 {
			continue // for loop
		}

		v := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(p[1]), "$"), "0x")
		addr, err := strconv.ParseUint(v, 16, 16)
		if err != nil {
			continue // for loop
		}

		sym.table(uint16(addr)).add(uint16(addr), p[0], false)
	}
	return scanner.Err()
}

// Search returns the address of the symbol. The search is case insensitive
// and the RAM table is searched first.
func (sym *Symbols) Search(symbol string) (string, uint16, bool) {
	symbol = strings.ToUpper(symbol)
	if s, a, ok := sym.RAM.search(symbol); ok {
		return s, a, true
	}
	return sym.ROM.search(symbol)
}

// ReverseSearch returns the symbol for the address.
func (sym *Symbols) ReverseSearch(addr uint16) (string, bool) {
	s, ok := sym.table(addr).entries[addr]
	return s, ok
}

// ListSymbols outputs every symbol in both tables.
func (sym *Symbols) ListSymbols(output io.Writer) {
	io.WriteString(output, "RAM Symbols\n-----------\n")
	io.WriteString(output, sym.RAM.String())
	io.WriteString(output, "\nROM Symbols\n-----------\n")
	io.WriteString(output, sym.ROM.String())
}
