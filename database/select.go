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

import "github.com/jetsetilly/nopits/curated"

// SelectAll entries in the database. onSelect can be nil.
//
// Returns the last entry selected and any errors from the onSelect function.
func (db Session) SelectAll(onSelect func(Entry) error) (Entry, error) {
	return db.SelectKeys(onSelect)
}

// SelectKeys matches entries with the specified keys. onSelect can be nil.
// If no keys are given all entries are selected.
//
// Returns the last entry selected and any errors from the onSelect function.
func (db Session) SelectKeys(onSelect func(Entry) error, keys ...string) (Entry, error) {
	var entry Entry

	if onSelect == nil {
		onSelect = func(_ Entry) error { return nil }
	}

	keyList := keys
	if len(keys) == 0 {
		keyList = db.keys
	}

	for _, k := range keyList {
		_, ent, err := db.Get(k)
		if err != nil {
			return entry, err
		}
		entry = ent
		if err := onSelect(entry); err != nil {
			return entry, err
		}
	}

	if entry == nil {
		return nil, curated.Errorf(DatabaseError, "select empty")
	}

	return entry, nil
}
