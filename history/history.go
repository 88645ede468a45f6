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

// Package history records every patch run in a database. The record includes
// the digests of the input and output images so that a patched image can be
// traced back to the run that produced it.
package history

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jetsetilly/nopits/database"
	"github.com/jetsetilly/nopits/paths"
	"github.com/jetsetilly/nopits/patch"
)

// DefaultFile is the name of the history database in the resource path.
const DefaultFile = "history.db"

const runEntryID = "patch"

const (
	fieldTime int = iota
	fieldInput
	fieldInputMD5
	fieldOutput
	fieldOutputMD5
	fieldApplied
	fieldAlreadyApplied
	fieldSkipped
	fieldTuning
	fieldCodes
	numFields
)

// Run is the database entry for one patch run.
type Run struct {
	Time time.Time

	Input     string
	InputMD5  string
	Output    string
	OutputMD5 string

	Applied        int
	AlreadyApplied int
	Skipped        int

	Tuning string
	Codes  []string
}

// NewRun creates an entry from the report of a run.
func NewRun(input, inputMD5, output, outputMD5 string, rep patch.Report, tuning string, codes []string) *Run {
	return &Run{
		Time:           time.Now().UTC(),
		Input:          input,
		InputMD5:       inputMD5,
		Output:         output,
		OutputMD5:      outputMD5,
		Applied:        rep.Applied(),
		AlreadyApplied: rep.AlreadyApplied(),
		Skipped:        rep.Skipped(),
		Tuning:         tuning,
		Codes:          codes,
	}
}

// ID implements the database.Entry interface.
func (r *Run) ID() string {
	return runEntryID
}

// String implements the database.Entry interface.
func (r *Run) String() string {
	s := fmt.Sprintf("%s %s -> %s [%d/%d/%d]", r.Time.Format(time.DateTime), r.Input, r.Output,
		r.Applied, r.AlreadyApplied, r.Skipped)
	if len(r.Codes) > 0 {
		s = fmt.Sprintf("%s +%s", s, strings.Join(r.Codes, "+"))
	}
	return s
}

// Serialise implements the database.Entry interface.
func (r *Run) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		r.Time.Format(time.RFC3339),
		r.Input,
		r.InputMD5,
		r.Output,
		r.OutputMD5,
		strconv.Itoa(r.Applied),
		strconv.Itoa(r.AlreadyApplied),
		strconv.Itoa(r.Skipped),
		r.Tuning,
		strings.Join(r.Codes, " "),
	}, nil
}

// CleanUp implements the database.Entry interface. The output image is not
// deleted.
func (r *Run) CleanUp() error {
	return nil
}

func deserialiseRun(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numFields {
		return nil, fmt.Errorf("expected %d fields, got %d", numFields, len(fields))
	}

	r := &Run{
		Input:     fields[fieldInput],
		InputMD5:  fields[fieldInputMD5],
		Output:    fields[fieldOutput],
		OutputMD5: fields[fieldOutputMD5],
		Tuning:    fields[fieldTuning],
		Codes:     strings.Fields(fields[fieldCodes]),
	}

	var err error
	r.Time, err = time.Parse(time.RFC3339, fields[fieldTime])
	if err != nil {
		return nil, err
	}
	for _, f := range []struct {
		v   *int
		idx int
	}{
		{&r.Applied, fieldApplied},
		{&r.AlreadyApplied, fieldAlreadyApplied},
		{&r.Skipped, fieldSkipped},
	} {
		*f.v, err = strconv.Atoi(fields[f.idx])
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(runEntryID, deserialiseRun)
}

// Path returns the location of the history database.
func Path() (string, error) {
	return paths.ResourcePath("", DefaultFile)
}

// Add the run to the history database at path.
func Add(path string, r *Run) (string, error) {
	db, err := database.StartSession(path, database.ActivityCreating, initDBSession)
	if err != nil {
		return "", err
	}

	key, err := db.Add(r)
	if err != nil {
		_ = db.EndSession(false)
		return "", err
	}

	return key, db.EndSession(true)
}

// List the history database at path.
func List(path string, output io.Writer) error {
	db, err := database.StartSession(path, database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// Delete the run with the key from the database at path.
func Delete(path string, key string) error {
	db, err := database.StartSession(path, database.ActivityModifying, initDBSession)
	if err != nil {
		return err
	}

	if err := db.Delete(key); err != nil {
		_ = db.EndSession(false)
		return err
	}

	return db.EndSession(true)
}

// Find returns the runs that produced an image with the MD5 digest.
func Find(path string, md5 string) ([]*Run, error) {
	db, err := database.StartSession(path, database.ActivityReading, initDBSession)
	if err != nil {
		return nil, err
	}
	defer db.EndSession(false)

	if db.NumEntries() == 0 {
		return nil, nil
	}

	var runs []*Run
	_, err = db.SelectAll(func(ent database.Entry) error {
		if r, ok := ent.(*Run); ok && r.OutputMD5 == md5 {
			runs = append(runs, r)
		}
		return nil
	})
	return runs, err
}
