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

package regression

import (
	"errors"
	"fmt"
	"io"

	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/database"
	"github.com/jetsetilly/nopits/paths"
)

// RegressionError is the curated pattern for errors in this package.
const RegressionError = "regression: %v"

// DefaultFile is the name of the regression database in the resource path.
const DefaultFile = "regression.db"

// stops the selection early when failOnError is set
var errStop = errors.New("stopped on error")

// Regressor represents the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. a new regression
	// records the result rather than comparing against it.
	//
	// message is the string to be printed while the regression is running
	regress(newRegression bool, output io.Writer, message string) (bool, error)
}

// when starting a database session we need to register what entries we will
// find in the database
func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(arcEntryID, deserialiseArcEntry)
}

// Path returns the location of the regression database.
func Path() (string, error) {
	return paths.ResourcePath("", DefaultFile)
}

// RegressList displays all entries in the database.
func RegressList(path string, output io.Writer) error {
	db, err := database.StartSession(path, database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressDelete removes an entry from the database. The user is asked for
// confirmation by reading a line from confirmation.
func RegressDelete(path string, output io.Writer, confirmation io.Reader, key string) error {
	db, err := database.StartSession(path, database.ActivityModifying, initDBSession)
	if err != nil {
		return err
	}

	k, reg, err := db.Get(key)
	if err != nil {
		_ = db.EndSession(false)
		return err
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", reg)

	confirm := make([]byte, 32)
	n, err := confirmation.Read(confirm)
	if err != nil && err != io.EOF {
		_ = db.EndSession(false)
		return curated.Errorf(RegressionError, err)
	}

	if n == 0 || (confirm[0] != 'y' && confirm[0] != 'Y') {
		return db.EndSession(false)
	}

	if err := db.Delete(k); err != nil {
		_ = db.EndSession(false)
		return err
	}
	fmt.Fprintf(output, "deleted %s from regression database\n", k)

	return db.EndSession(true)
}

// RegressAdd runs the regressor for the first time and adds it to the
// database. Returns the key of the new entry.
func RegressAdd(path string, output io.Writer, reg Regressor) (string, error) {
	db, err := database.StartSession(path, database.ActivityCreating, initDBSession)
	if err != nil {
		return "", err
	}

	msg := fmt.Sprintf("adding: %s", reg)
	ok, err := reg.regress(true, output, msg)
	if err != nil {
		_ = db.EndSession(false)
		return "", curated.Errorf(RegressionError, err)
	}
	if !ok {
		_ = db.EndSession(false)
		return "", curated.Errorf(RegressionError, fmt.Sprintf("%s did not complete", reg))
	}

	key, err := db.Add(reg)
	if err != nil {
		_ = db.EndSession(false)
		return "", err
	}
	fmt.Fprintf(output, "\radded: %s\n", reg)

	return key, db.EndSession(true)
}

// Results of RegressRunTests.
type Results struct {
	Succeed int
	Fail    int
	Error   int
}

func (r Results) String() string {
	s := fmt.Sprintf("regression tests: %d succeed, %d fail", r.Succeed, r.Fail)
	if r.Error > 0 {
		s = fmt.Sprintf("%s [with %d errors]", s, r.Error)
	}
	return s
}

// Passed is true if every test succeeded.
func (r Results) Passed() bool {
	return r.Fail == 0 && r.Error == 0
}

// RegressRunTests runs the tests in the regression database. An empty list
// of keys means that every entry should be tested. Keys can be shortened to
// any unique prefix.
func RegressRunTests(path string, output io.Writer, verbose bool, failOnError bool, keys []string) (Results, error) {
	var res Results

	db, err := database.StartSession(path, database.ActivityReading, initDBSession)
	if err != nil {
		return res, err
	}
	defer db.EndSession(false)

	if db.NumEntries() == 0 {
		return res, nil
	}

	// expand shortened keys
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		fk, _, err := db.Get(k)
		if err != nil {
			return res, err
		}
		full = append(full, fk)
	}

	onSelect := func(ent database.Entry) error {
		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf(RegressionError, "database entry does not satisfy Regressor interface")
		}

		msg := fmt.Sprintf("running: %s", reg)
		ok, err := reg.regress(false, output, msg)

		switch {
		case err != nil:
			res.Error++
			fmt.Fprintf(output, "\r ERROR: %s\n", reg)
			if verbose {
				fmt.Fprintf(output, "%s\n", err)
			}
			if failOnError {
				return errStop
			}
		case !ok:
			res.Fail++
			fmt.Fprintf(output, "\rfailure: %s\n", reg)
		default:
			res.Succeed++
			fmt.Fprintf(output, "\rsucceed: %s\n", reg)
		}

		return nil
	}

	_, err = db.SelectKeys(onSelect, full...)
	if err != nil && err != errStop {
		return res, err
	}

	fmt.Fprintln(output, res)

	return res, nil
}
