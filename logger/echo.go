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

package logger

import (
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
)

// NewEcho creates an slog.Handler suitable for SetEcho(). Entries are written
// as text to the terminal writer and as JSON to the file writer. Either writer
// can be nil. If both are nil then the function returns nil, which turns
// echoing off.
func NewEcho(terminal io.Writer, file io.Writer, level slog.Leveler) slog.Handler {
	var handlers []slog.Handler

	opts := &slog.HandlerOptions{Level: level}

	if terminal != nil {
		handlers = append(handlers, slog.NewTextHandler(terminal, opts))
	}
	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, opts))
	}

	if len(handlers) == 0 {
		return nil
	}

	return slogmulti.Fanout(handlers...)
}
