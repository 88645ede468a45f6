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

// Package recovery implements the pit recovery controller. The controller
// replaces the host's hazard handler and runs once per frame. It sees the
// host only through a Snapshot of a few externally owned state variables
// and keeps its own PrivateState in a memory cell the host never reads.
//
// When the player is falling into a hazard the controller applies a single
// upward boost, the same magnitude the host uses for its strongest launch.
// Further interventions are then suppressed for a fixed number of frames.
// The suppression is a countdown held in the private cell. It is never
// expressed through the host's movement state because the host selects its
// gravity rules from that value.
//
// The Controller type is the reference implementation in Go. The Routine
// type assembles the same algorithm into 6502 code so that it can be
// installed in the cartridge by the patch package:
//
//	cat, err := patch.NewCatalog(patch.Descriptor{
//		Name:      "pit recovery",
//		Mode:      patch.Routine,
//		Generator: recovery.NewRoutine(recovery.DefaultTuning(), recovery.SMB),
//	})
//
// The two implementations are compared frame by frame in the hostsim
// package.
package recovery
