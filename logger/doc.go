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

// Package logger is the central log repository for nopits. Entries are
// tagged, repeated entries are collapsed, and the log is capped so that it
// never grows without limit.
//
// Logging is gated by the Permission interface. Packages that always want to
// log pass logger.Allow. Types that only want to log in some circumstances
// implement the interface themselves.
//
// The log can be echoed as it is written. The echo is a log/slog handler,
// usually the fan-out returned by NewEcho(), so that the same entries can be
// sent to the terminal and to a structured log file at the same time.
package logger
