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

package hostsim

import (
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/nopits/recovery"
)

// State is the combined state of the host and the controller at the end of a
// run.
type State struct {
	Host    *Host
	Private recovery.PrivateState
	Last    Frame
}

// Dump writes a graphviz description of the state to w.
func Dump(w io.Writer, host *Host, ctrl Controller, tr Trace) {
	st := &State{
		Host:    host,
		Private: ctrl.Private(),
	}
	if len(tr.Frames) > 0 {
		st.Last = tr.Frames[len(tr.Frames)-1]
	}
	memviz.Map(w, st)
}
