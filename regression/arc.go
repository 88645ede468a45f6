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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/nopits/cartridgeloader"
	"github.com/jetsetilly/nopits/catalog"
	"github.com/jetsetilly/nopits/database"
	"github.com/jetsetilly/nopits/hostsim"
	"github.com/jetsetilly/nopits/patch"
	"github.com/jetsetilly/nopits/recovery"
)

const arcEntryID = "arc"

const (
	arcFieldVariant int = iota
	arcFieldHeld
	arcFieldThreshold
	arcFieldBoost
	arcFieldCountdown
	arcFieldReentry
	arcFieldKind
	arcFieldImage
	arcFieldImageHash
	arcFieldFrames
	arcFieldDigest
	arcFieldNotes
	numArcFields
)

// ArcRegression is the regression entry for a run from the boundary
// condition.
type ArcRegression struct {
	Variant   hostsim.Variant
	InputHeld bool
	Tuning    recovery.Tuning
	Kind      Kind

	// the unpatched image for KindRoutine entries. the hash is filled in
	// when the entry is added
	Image     string
	ImageHash string

	Frames int
	Notes  string

	digest string
}

// NewArcRegression is the preferred method of initialisation for the
// ArcRegression type.
func NewArcRegression(variant hostsim.Variant, tuning recovery.Tuning, kind Kind) *ArcRegression {
	return &ArcRegression{
		Variant: variant,
		Tuning:  tuning,
		Kind:    kind,
		Frames:  int(tuning.Countdown) * 2,
	}
}

// ID implements the database.Entry interface.
func (reg *ArcRegression) ID() string {
	return arcEntryID
}

// String implements the database.Entry interface.
func (reg *ArcRegression) String() string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("[%s] %s", reg.Kind, reg.Variant.Name))
	if reg.InputHeld {
		s.WriteString(" (held)")
	}
	s.WriteString(fmt.Sprintf(" frames=%d %s", reg.Frames, reg.Tuning))
	if reg.Kind == KindRoutine {
		s.WriteString(fmt.Sprintf(" %s", reg.Image))
	}
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" [%s]", reg.Notes))
	}
	return s.String()
}

// Serialise implements the database.Entry interface.
func (reg *ArcRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.Variant.Name,
		strconv.FormatBool(reg.InputHeld),
		strconv.Itoa(int(reg.Tuning.Threshold)),
		strconv.Itoa(int(reg.Tuning.Boost)),
		strconv.Itoa(int(reg.Tuning.Countdown)),
		strconv.Itoa(int(reg.Tuning.Reentry)),
		reg.Kind.String(),
		reg.Image,
		reg.ImageHash,
		strconv.Itoa(reg.Frames),
		reg.digest,
		reg.Notes,
	}, nil
}

// CleanUp implements the database.Entry interface. The image is not deleted.
func (reg *ArcRegression) CleanUp() error {
	return nil
}

func deserialiseArcEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numArcFields {
		return nil, fmt.Errorf("arc entry: expected %d fields, got %d", numArcFields, len(fields))
	}

	reg := &ArcRegression{
		Image:     fields[arcFieldImage],
		ImageHash: fields[arcFieldImageHash],
		Notes:     fields[arcFieldNotes],
		digest:    fields[arcFieldDigest],
	}

	var ok bool
	reg.Variant, ok = hostsim.FindVariant(fields[arcFieldVariant])
	if !ok {
		return nil, fmt.Errorf("arc entry: unknown variant (%s)", fields[arcFieldVariant])
	}

	var err error
	reg.InputHeld, err = strconv.ParseBool(fields[arcFieldHeld])
	if err != nil {
		return nil, fmt.Errorf("arc entry: invalid held field (%s)", fields[arcFieldHeld])
	}

	reg.Kind, err = ParseKind(fields[arcFieldKind])
	if err != nil {
		return nil, fmt.Errorf("arc entry: %w", err)
	}

	reg.Frames, err = strconv.Atoi(fields[arcFieldFrames])
	if err != nil {
		return nil, fmt.Errorf("arc entry: invalid frames field (%s)", fields[arcFieldFrames])
	}

	for _, f := range []struct {
		v   *uint8
		idx int
	}{
		{&reg.Tuning.Threshold, arcFieldThreshold},
		{&reg.Tuning.Boost, arcFieldBoost},
		{&reg.Tuning.Countdown, arcFieldCountdown},
		{&reg.Tuning.Reentry, arcFieldReentry},
	} {
		n, err := strconv.ParseUint(fields[f.idx], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("arc entry: invalid tuning field (%s)", fields[f.idx])
		}
		*f.v = uint8(n)
	}

	return reg, nil
}

// the controller driven by the entry. for routine entries the image is
// loaded and patched with the entry's tuning
func (reg *ArcRegression) controller() (hostsim.Controller, error) {
	switch reg.Kind {
	case KindController:
		if err := reg.Tuning.Validate(); err != nil {
			return nil, err
		}
		return recovery.NewController(reg.Tuning), nil

	case KindRoutine:
		cl := cartridgeloader.NewLoader(reg.Image)
		cl.Hash = reg.ImageHash
		if err := cl.Load(); err != nil {
			return nil, err
		}
		reg.ImageHash = cl.Hash

		cat, err := catalog.Default(reg.Tuning)
		if err != nil {
			return nil, err
		}
		patched, _, err := patch.Apply(cl.Data, cat)
		if err != nil {
			return nil, err
		}
		return hostsim.NewMachine(patched, recovery.NewRoutine(reg.Tuning, recovery.SMB))
	}

	return nil, fmt.Errorf("arc entry: %s", reg.Kind)
}

func (reg *ArcRegression) regress(newRegression bool, output io.Writer, msg string) (bool, error) {
	output.Write([]byte(msg))

	if reg.Frames <= 0 {
		return false, fmt.Errorf("arc entry: frames must be positive")
	}

	ctrl, err := reg.controller()
	if err != nil {
		return false, err
	}

	host := hostsim.Boundary(reg.Variant, reg.Tuning, reg.InputHeld)
	tr, err := hostsim.Run(host, ctrl, reg.Frames, nil)
	if err != nil {
		return false, err
	}

	if newRegression {
		reg.digest = tr.Digest()
		return true, nil
	}

	return tr.Digest() == reg.digest, nil
}
