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

/*Package element provides per-element reference data keyed by atomic
number.*/
package element

import "fmt"

// angstromToBohr converts lengths from Ångström to Bohr.
const angstromToBohr = 1.8897259886

// covalentRadii holds single-bond covalent radii in Ångström
// (Cordero et al., Dalton Trans. 2008), indexed by atomic number.
// Index 0 is unused.
var covalentRadii = []float64{
	0,
	0.31, 0.28, // H, He
	1.28, 0.96, 0.84, 0.76, 0.71, 0.66, 0.57, 0.58, // Li - Ne
	1.66, 1.41, 1.21, 1.11, 1.07, 1.05, 1.02, 1.06, // Na - Ar
	2.03, 1.76, // K, Ca
	1.70, 1.60, 1.53, 1.39, 1.39, 1.32, 1.26, 1.24, 1.32, 1.22, // Sc - Zn
	1.22, 1.20, 1.19, 1.20, 1.20, 1.16, // Ga - Kr
	2.20, 1.95, // Rb, Sr
	1.90, 1.75, 1.64, 1.54, 1.47, 1.46, 1.42, 1.39, 1.45, 1.44, // Y - Cd
	1.42, 1.39, 1.39, 1.38, 1.39, 1.40, // In - Xe
}

// CovalentRadius returns the covalent radius in Bohr for the element
// with the given atomic number. Atomic numbers outside the tabulated
// range are an error.
func CovalentRadius(number int) (float64, error) {
	if number < 1 || number >= len(covalentRadii) {
		return 0, fmt.Errorf("element: no covalent radius for atomic number %d", number)
	}
	return covalentRadii[number] * angstromToBohr, nil
}

// CovalentRadii returns the covalent radii in Bohr for each of the
// given atomic numbers, in order.
func CovalentRadii(numbers []int) ([]float64, error) {
	radii := make([]float64, len(numbers))
	for i, n := range numbers {
		r, err := CovalentRadius(n)
		if err != nil {
			return nil, err
		}
		radii[i] = r
	}
	return radii, nil
}
