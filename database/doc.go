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

// Package database is a simple way of storing structured entries of
// arbitrary types. Entries are held in a bbolt file and keyed by a time
// ordered UUID so that the natural order of the keys is the order in which
// the entries were added.
//
// Use of a database requires starting a "session". We do this with the
// StartSession() function, coupled with an EndSession() once we're done. For
// example (error handling removed for clarity):
//
//	db, _ := database.StartSession(dbPath, database.ActivityCreating, initDBSession)
//	defer db.EndSession(true)
//
// The activity argument says what will happen during the session. The file
// is created by ActivityCreating if it does not already exist. Otherwise
// ActivityCreating is treated the same as ActivityModifying. If we don't want
// to modify the database at all then we can use ActivityReading.
//
// The initialisation function registers the entry types that may be found in
// the database:
//
//	func initDBSession(db *database.Session) error {
//		return db.RegisterEntryType("foo", deserialiseFoo)
//	}
//
// The deserialise function takes the fields of a stored entry and returns a
// new value that satisfies the Entry interface. Entries are deserialised by
// StartSession(). Any error from a deserialiser causes StartSession() to
// fail.
//
// Changes made during a session are held in memory and are written in a
// single transaction by EndSession(true).
package database
