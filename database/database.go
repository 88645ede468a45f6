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

package database

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/nopits/curated"
)

// arbitrary maximum number of entries.
const maxEntries = 1000

// NumEntries returns the number of entries in the database.
func (db Session) NumEntries() int {
	return len(db.entries)
}

// SortedKeyList returns the list of keys in the order the entries were
// added.
func (db Session) SortedKeyList() []string {
	return append([]string{}, db.keys...)
}

// Get returns the entry for the key or for the only key with that prefix.
func (db Session) Get(key string) (string, Entry, error) {
	key = strings.ToLower(key)
	if ent, ok := db.entries[key]; ok {
		return key, ent, nil
	}

	var found string
	for _, k := range db.keys {
		if strings.HasPrefix(k, key) {
			if found != "" {
				return "", nil, curated.Errorf(DatabaseError, fmt.Sprintf("key [%s] is ambiguous", key))
			}
			found = k
		}
	}
	if found == "" || key == "" {
		return "", nil, curated.Errorf(DatabaseError, fmt.Sprintf("key not available [%s]", key))
	}

	return found, db.entries[found], nil
}

// List the entries in key order.
func (db Session) List(output io.Writer) error {
	if db.NumEntries() == 0 {
		_, err := io.WriteString(output, "database is empty\n")
		return err
	}

	for _, k := range db.keys {
		if _, err := fmt.Fprintf(output, "%s %s\n", k, db.entries[k]); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(output, "Total: %d\n", db.NumEntries())
	return err
}
