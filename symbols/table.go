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
	"fmt"
	"sort"
	"strings"
)

// Table maps an address to a symbol. It also keeps track of the widest symbol
// in the table.
type Table struct {
	// indexed by address
	entries map[uint16]string

	// index of keys in entries. sortable through the sort.Interface
	idx []uint16

	// the longest symbol in the entries map
	maxWidth int
}

// newTable is the preferred method of initialisation for the Table type.
func newTable() *Table {
	return &Table{
		entries: make(map[uint16]string),
	}
}

func (t Table) String() string {
	s := strings.Builder{}
	for _, a := range t.idx {
		s.WriteString(fmt.Sprintf("$%04X -> %s\n", a, t.entries[a]))
	}
	return s.String()
}

// add the symbol. an existing symbol for the address is only replaced if
// prefer is true.
func (t *Table) add(addr uint16, symbol string, prefer bool) {
	if _, ok := t.entries[addr]; ok {
		if !prefer {
			return
		}
		t.entries[addr] = symbol
	} else {
		t.entries[addr] = symbol
		t.idx = append(t.idx, addr)
		sort.Sort(t)
	}

	t.maxWidth = 0
	for _, s := range t.entries {
		t.maxWidth = max(t.maxWidth, len(s))
	}
}

// search is case insensitive. symbol should be upper case.
func (t Table) search(symbol string) (string, uint16, bool) {
	for _, a := range t.idx {
		if strings.ToUpper(t.entries[a]) == symbol {
			return t.entries[a], a, true
		}
	}
	return "", 0, false
}

// Len implements the sort.Interface.
func (t Table) Len() int {
	return len(t.idx)
}

// Less implements the sort.Interface.
func (t Table) Less(i, j int) bool {
	return t.idx[i] < t.idx[j]
}

// Swap implements the sort.Interface.
func (t Table) Swap(i, j int) {
	t.idx[i], t.idx[j] = t.idx[j], t.idx[i]
}

// MaxWidth returns the length of the longest symbol in the table.
func (t Table) MaxWidth() int {
	return t.maxWidth
}
