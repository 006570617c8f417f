/*
Copyright © 2026 the Grid authors.
This file is part of Grid.

Grid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Grid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Grid.  If not, see <http://www.gnu.org/licenses/>.
*/

package element

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestCovalentRadius(t *testing.T) {
	tests := []struct {
		number int
		want   float64 // Bohr
	}{
		{1, 0.31 * angstromToBohr},
		{6, 0.76 * angstromToBohr},
		{8, 0.66 * angstromToBohr},
		{54, 1.40 * angstromToBohr},
	}
	for _, test := range tests {
		r, err := CovalentRadius(test.number)
		if err != nil {
			t.Fatal(err)
		}
		if !scalar.EqualWithinAbs(r, test.want, 1e-14) {
			t.Errorf("radius of element %d: %g != %g", test.number, r, test.want)
		}
	}
}

func TestCovalentRadiusUnknown(t *testing.T) {
	for _, number := range []int{0, -1, 55, 200} {
		_, err := CovalentRadius(number)
		require.Error(t, err, "atomic number %d should be unknown", number)
	}
}

func TestCovalentRadii(t *testing.T) {
	radii, err := CovalentRadii([]int{1, 1, 8})
	if err != nil {
		t.Fatal(err)
	}
	if len(radii) != 3 {
		t.Fatalf("got %d radii, want 3", len(radii))
	}
	if radii[0] != radii[1] {
		t.Error("equal atomic numbers must give equal radii")
	}
	if radii[2] <= radii[0] {
		t.Error("oxygen must be larger than hydrogen")
	}

	_, err = CovalentRadii([]int{1, 999})
	require.Error(t, err)
}
