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

package version_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/nopits/test"
	"github.com/jetsetilly/nopits/version"
)

func TestVersionString(t *testing.T) {
	s := version.String()
	test.ExpectEquality(t, strings.HasPrefix(s, version.ApplicationName), true)

	v, r, _ := version.Version()
	test.ExpectInequality(t, v, "")
	test.ExpectInequality(t, r, "")
}
