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

package logger_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/jetsetilly/nopits/logger"
	"github.com/jetsetilly/nopits/test"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "rom", "image validated")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "rom: image validated\n")

	w.Reset()

	log.Log(logger.Allow, "catalog", "7 descriptors resolved")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "rom: image validated\ncatalog: 7 descriptors resolved\n")

	// tail longer than the log
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "rom: image validated\ncatalog: 7 descriptors resolved\n")

	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "catalog: 7 descriptors resolved\n")

	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeats(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "patch", "skipped")
	log.Log(logger.Allow, "patch", "skipped")
	log.Log(logger.Allow, "patch", "skipped")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "patch: skipped (repeat x3)\n")
}

func TestCap(t *testing.T) {
	log := logger.NewLogger(10)
	for i := range 25 {
		log.Logf(logger.Allow, "tag", "%d", i)
	}
	log.BorrowLog(func(e []logger.Entry) {
		test.ExpectEquality(t, len(e), 10)
		test.ExpectEquality(t, e[0].Detail, "15")
	})
}

type prohibitLogging struct {
	allow int
}

func (p prohibitLogging) AllowLogging() bool {
	return p.allow > 50
}

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	var p prohibitLogging

	for range 100 {
		p.allow = rand.IntN(100)
		log.Clear()
		w.Reset()
		log.Log(p, "tag", "detail")
		log.Write(w)
		if p.AllowLogging() {
			test.ExpectEquality(t, w.String(), "tag: detail\n")
		} else {
			test.ExpectEquality(t, w.String(), "")
		}
	}
}

func TestErrorLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	err := errors.New("test error")

	log.Log(logger.Allow, "tag", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: test error\n")

	log.Clear()
	w.Reset()

	log.Logf(logger.Allow, "tag", "wrapped: %v", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: wrapped: test error\n")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger(100)
	term := &strings.Builder{}
	file := &strings.Builder{}

	log.SetEcho(logger.NewEcho(term, file, slog.LevelInfo))
	log.Log(logger.Allow, "rom", "validated")

	test.ExpectSuccess(t, strings.Contains(term.String(), "msg=validated"))
	test.ExpectSuccess(t, strings.Contains(term.String(), "tag=rom"))

	var rec map[string]any
	test.DemandSuccess(t, json.Unmarshal([]byte(file.String()), &rec))
	test.ExpectEquality(t, rec["msg"], any("validated"))
	test.ExpectEquality(t, rec["tag"], any("rom"))

	// repeated entries are not echoed
	term.Reset()
	log.Log(logger.Allow, "rom", "validated")
	test.ExpectEquality(t, term.String(), "")

	// nil writers turn the echo off
	test.ExpectSuccess(t, logger.NewEcho(nil, nil, slog.LevelInfo) == nil)
}
