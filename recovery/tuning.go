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

package recovery

import (
	"fmt"

	"github.com/jetsetilly/nopits/curated"
)

// TuningError is the curated pattern for invalid tuning values.
const TuningError = "recovery: tuning: %v"

// Tuning values for the controller.
type Tuning struct {
	// the position in the play area at which a falling player is considered
	// to be entering a hazard
	Threshold uint8

	// magnitude of the upward velocity applied on intervention
	Boost uint8

	// frames for which retriggering is suppressed after a boost
	Countdown uint8

	// position used when bringing the player back from a deep fall
	Reentry uint8
}

// DefaultTuning returns the tuning used for the shipped patch. A boost of 12
// is the host's springboard launch velocity ($f4).
func DefaultTuning() Tuning {
	return Tuning{
		Threshold: 0xd0,
		Boost:     12,
		Countdown: 48,
		Reentry:   0xd0,
	}
}

// Validate returns an error if the tuning cannot be used.
func (t Tuning) Validate() error {
	if t.Boost == 0 || t.Boost > 127 {
		return curated.Errorf(TuningError, fmt.Sprintf("boost of %d is not a valid upward velocity", t.Boost))
	}
	if t.Countdown == 0 {
		return curated.Errorf(TuningError, "countdown must be at least one frame")
	}
	if t.Countdown > MaxCountdown {
		return curated.Errorf(TuningError, fmt.Sprintf("countdown of %d is more than %d frames", t.Countdown, MaxCountdown))
	}
	if t.Threshold == 0 {
		return curated.Errorf(TuningError, "threshold must be below the top of the play area")
	}
	return nil
}

// BoostVelocity is the velocity value written on intervention.
func (t Tuning) BoostVelocity() int8 {
	return -int8(t.Boost)
}

func (t Tuning) String() string {
	return fmt.Sprintf("threshold=%#02x boost=%d countdown=%d reentry=%#02x",
		t.Threshold, t.Boost, t.Countdown, t.Reentry)
}
