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

// Package easyterm is a thin layer over the output terminal. It decides
// whether the output is a terminal capable of ANSI colouring and prints
// status lines using the pens from the ansi package.
package easyterm

import (
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/nopits/terminal/easyterm/ansi"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// IsTerminal returns true if the file is connected to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	var attr unix.Termios
	return termios.Tcgetattr(f.Fd(), &attr) == nil
}

// Printer writes status lines. Colour is only used if the output is a
// terminal.
type Printer struct {
	output io.Writer
	colour bool
}

// NewPrinter creates a new Printer for the output. Colouring is enabled when
// the output is an *os.File attached to a terminal and the NO_COLOR
// environment variable is unset.
func NewPrinter(output io.Writer) *Printer {
	p := &Printer{output: output}
	if f, ok := output.(*os.File); ok {
		_, nocolor := os.LookupEnv("NO_COLOR")
		p.colour = !nocolor && IsTerminal(f)
	}
	return p
}

func (p *Printer) print(pen string, s string, a ...any) {
	if p.colour && pen != "" {
		io.WriteString(p.output, pen)
		defer io.WriteString(p.output, ansi.NormalPen)
	}
	io.WriteString(p.output, fmt.Sprintf(s, a...))
}

// Printf prints without colour.
func (p *Printer) Printf(s string, a ...any) {
	p.print("", s, a...)
}

// Successf prints in the success pen.
func (p *Printer) Successf(s string, a ...any) {
	p.print(ansi.Pens["green"], s, a...)
}

// Warningf prints in the warning pen.
func (p *Printer) Warningf(s string, a ...any) {
	p.print(ansi.Pens["yellow"], s, a...)
}

// Errorf prints in the error pen.
func (p *Printer) Errorf(s string, a ...any) {
	p.print(ansi.Pens["red"], s, a...)
}
