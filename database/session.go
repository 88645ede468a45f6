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
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jetsetilly/nopits/curated"
	bolt "go.etcd.io/bbolt"
)

// DatabaseError is the curated pattern for all database errors.
const DatabaseError = "database: %v"

// Activity is the type of activity that will take place during a session.
type Activity int

// List of valid Activity values.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

var bucketEntries = []byte("entries")

// the stored record
type record struct {
	ID     string
	Fields SerialisedEntry
}

// Session is an open database.
type Session struct {
	db       *bolt.DB
	activity Activity

	entries map[string]Entry

	// sorted list of keys. used for displaying entries in the correct order
	keys []string

	// keys deleted during the session
	deleted []string

	entryTypes map[string]deserialiser
}

// StartSession starts/initialises a new DB session. The init function is
// called before any entries are read.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	if activity != ActivityCreating {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(DatabaseError, fmt.Sprintf("%s does not exist", path))
		}
	}

	bdb, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout:  time.Second,
		ReadOnly: activity == ActivityReading,
	})
	if err != nil {
		return nil, curated.Errorf(DatabaseError, err)
	}

	db := &Session{
		db:         bdb,
		activity:   activity,
		entries:    make(map[string]Entry),
		entryTypes: make(map[string]deserialiser),
	}

	if activity != ActivityReading {
		err = bdb.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(bucketEntries)
			return err
		})
		if err != nil {
			_ = bdb.Close()
			return nil, curated.Errorf(DatabaseError, err)
		}
	}

	if init != nil {
		if err := init(db); err != nil {
			_ = bdb.Close()
			return nil, err
		}
	}

	if err := db.read(); err != nil {
		_ = bdb.Close()
		return nil, err
	}

	return db, nil
}

func (db *Session) read() error {
	return db.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		if b == nil {
			return nil
		}

		// keys are version 7 UUIDs so the cursor visits entries in the
		// order they were added
		return b.ForEach(func(k, v []byte) error {
			key, err := uuid.FromBytes(k)
			if err != nil {
				return curated.Errorf(DatabaseError, fmt.Sprintf("invalid key [%x]", k))
			}

			var rec record
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&rec); err != nil {
				return curated.Errorf(DatabaseError, fmt.Sprintf("entry %s: %v", key, err))
			}

			des, ok := db.entryTypes[rec.ID]
			if !ok {
				return curated.Errorf(DatabaseError, fmt.Sprintf("unrecognised entry type [%s]", rec.ID))
			}

			ent, err := des(rec.Fields)
			if err != nil {
				return curated.Errorf(DatabaseError, fmt.Sprintf("entry %s: %v", key, err))
			}

			db.entries[key.String()] = ent
			db.keys = append(db.keys, key.String())
			return nil
		})
	})
}

// EndSession closes the database. Changes are written if commitChanges is
// true.
func (db *Session) EndSession(commitChanges bool) error {
	if db.db == nil {
		return nil
	}

	defer func() {
		_ = db.db.Close()
		db.db = nil
	}()

	if !commitChanges || db.activity == ActivityReading {
		return nil
	}

	err := db.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)

		for _, k := range db.deleted {
			key, err := uuid.Parse(k)
			if err != nil {
				return err
			}
			if err := b.Delete(key[:]); err != nil {
				return err
			}
		}

		for _, k := range db.keys {
			key, err := uuid.Parse(k)
			if err != nil {
				return err
			}
			if b.Get(key[:]) != nil {
				continue
			}

			ent := db.entries[k]
			fields, err := ent.Serialise()
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := gob.NewEncoder(&buf).Encode(record{ID: ent.ID(), Fields: fields}); err != nil {
				return err
			}
			if err := b.Put(key[:], buf.Bytes()); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	return nil
}

// Add an entry to the database. Returns the key of the new entry.
func (db *Session) Add(ent Entry) (string, error) {
	if db.activity == ActivityReading {
		return "", curated.Errorf(DatabaseError, "cannot add entries in a reading session")
	}
	if len(db.keys) >= maxEntries {
		return "", curated.Errorf(DatabaseError, fmt.Sprintf("maximum entries exceeded (max %d)", maxEntries))
	}

	key, err := uuid.NewV7()
	if err != nil {
		return "", curated.Errorf(DatabaseError, err)
	}

	k := key.String()
	db.entries[k] = ent
	db.keys = append(db.keys, k)
	return k, nil
}

// Delete deletes the entry with the specified key. The key can be shortened
// to any unique prefix.
func (db *Session) Delete(key string) error {
	if db.activity == ActivityReading {
		return curated.Errorf(DatabaseError, "cannot delete entries in a reading session")
	}

	k, ent, err := db.Get(key)
	if err != nil {
		return err
	}

	if err := ent.CleanUp(); err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	delete(db.entries, k)
	db.keys = slices.DeleteFunc(db.keys, func(s string) bool { return s == k })
	db.deleted = append(db.deleted, k)

	return nil
}
