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

/*Package sphharm evaluates orthonormal spherical-harmonic basis
functions, in complex and real form, on arrays of angular coordinates.

Tables are three-dimensional arrays indexed (m-slot, degree l, point).
The m slots enumerate the nonnegative orders 0..l_max followed by the
negative orders -l_max..-1, so that slot -m counted from the end of
the axis addresses order -m, mirroring how the enumeration helper
Degrees lays out its order array.*/
package sphharm

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// Degrees returns the degree array l = [0, 1, ..., lmax] and the
// parallel order array m = [0, ..., lmax, -lmax, ..., -1] that
// enumerate the slots of a harmonic table.
func Degrees(lmax int) (l, m []int) {
	l = make([]int, lmax+1)
	m = make([]int, 2*lmax+1)
	for i := 0; i <= lmax; i++ {
		l[i] = i
		m[i] = i
	}
	for i := 0; i < lmax; i++ {
		m[lmax+1+i] = -lmax + i
	}
	return l, m
}

// slot maps an order m in [-lmax, lmax] to its table slot.
func slot(m, lmax int) int {
	if m >= 0 {
		return m
	}
	return 2*lmax + 1 + m
}

// legendre fills out[l][m], for m <= l <= lmax, with fully normalized
// associated Legendre values at u, including the Condon-Shortley
// phase, so that Y_l^m(theta, phi) = out[l][m] * exp(i*m*theta) with
// u = cos(phi). The fully normalized recurrence stays stable to high
// degree where the unnormalized one overflows.
func legendre(lmax int, u float64, out [][]float64) {
	s := math.Sqrt(math.Max(0, 1-u*u))
	out[0][0] = 1 / math.Sqrt(4*math.Pi)
	for m := 1; m <= lmax; m++ {
		out[m][m] = -math.Sqrt(float64(2*m+1)/float64(2*m)) * s * out[m-1][m-1]
	}
	for m := 0; m < lmax; m++ {
		out[m+1][m] = math.Sqrt(float64(2*m+3)) * u * out[m][m]
	}
	for m := 0; m <= lmax; m++ {
		for l := m + 2; l <= lmax; l++ {
			a := math.Sqrt(float64(4*l*l-1) / float64(l*l-m*m))
			b := math.Sqrt(float64((l-1)*(l-1)-m*m) / float64(4*(l-1)*(l-1)-1))
			out[l][m] = a * (u*out[l-1][m] - b*out[l-2][m])
		}
	}
}

func checkAngles(lmax int, theta, phi []float64) error {
	if lmax < 0 {
		return fmt.Errorf("sphharm: invalid negative maximum degree %d", lmax)
	}
	if len(theta) != len(phi) {
		return fmt.Errorf("sphharm: %d azimuthal angles paired with %d polar angles", len(theta), len(phi))
	}
	return nil
}

func newWorkspace(lmax int) [][]float64 {
	w := make([][]float64, lmax+1)
	for l := range w {
		w[l] = make([]float64, l+1)
	}
	return w
}

// Table holds complex spherical-harmonic values for every degree and
// order up to a maximum degree, at every input point. Entries with
// |m| > l are zero.
type Table struct {
	lmax int
	n    int
	re   *sparse.DenseArray
	im   *sparse.DenseArray
}

// New evaluates the complex orthonormal spherical harmonics up to
// degree lmax at the given angular coordinates. theta is the
// azimuthal angle and phi the polar angle from the z axis.
func New(lmax int, theta, phi []float64) (*Table, error) {
	if err := checkAngles(lmax, theta, phi); err != nil {
		return nil, err
	}
	t := &Table{
		lmax: lmax,
		n:    len(theta),
		re:   sparse.ZerosDense(2*lmax+1, lmax+1, len(theta)),
		im:   sparse.ZerosDense(2*lmax+1, lmax+1, len(theta)),
	}
	work := newWorkspace(lmax)
	for p := range theta {
		legendre(lmax, math.Cos(phi[p]), work)
		for m := 0; m <= lmax; m++ {
			cm, sm := math.Cos(float64(m)*theta[p]), math.Sin(float64(m)*theta[p])
			sign := 1.0
			if m%2 == 1 {
				sign = -1
			}
			for l := m; l <= lmax; l++ {
				v := work[l][m]
				t.re.Set(v*cm, m, l, p)
				t.im.Set(v*sm, m, l, p)
				if m > 0 {
					// Y_l^{-m} = (-1)^m * conj(Y_l^m)
					t.re.Set(sign*v*cm, slot(-m, lmax), l, p)
					t.im.Set(-sign*v*sm, slot(-m, lmax), l, p)
				}
			}
		}
	}
	return t, nil
}

// LMax is the maximum harmonic degree in the table.
func (t *Table) LMax() int { return t.lmax }

// NumPoints is the number of angular coordinates the table was
// evaluated at.
func (t *Table) NumPoints() int { return t.n }

// At returns Y_l^m at point p. m may be negative.
func (t *Table) At(m, l, p int) complex128 {
	s := slot(m, t.lmax)
	return complex(t.re.Get(s, l, p), t.im.Get(s, l, p))
}

// RealTable holds real spherical-harmonic values for every degree and
// order up to a maximum degree, at every input point. The real basis
// spans the same space as the complex one and satisfies the same
// orthonormality under an angular quadrature measure.
type RealTable struct {
	lmax int
	n    int
	vals *sparse.DenseArray
}

// NewReal evaluates the real orthonormal spherical harmonics up to
// degree lmax at the given angular coordinates.
func NewReal(lmax int, theta, phi []float64) (*RealTable, error) {
	if err := checkAngles(lmax, theta, phi); err != nil {
		return nil, err
	}
	t := &RealTable{
		lmax: lmax,
		n:    len(theta),
		vals: sparse.ZerosDense(2*lmax+1, lmax+1, len(theta)),
	}
	work := newWorkspace(lmax)
	sqrt2 := math.Sqrt2
	for p := range theta {
		legendre(lmax, math.Cos(phi[p]), work)
		for l := 0; l <= lmax; l++ {
			t.vals.Set(work[l][0], 0, l, p)
		}
		for m := 1; m <= lmax; m++ {
			cm, sm := math.Cos(float64(m)*theta[p]), math.Sin(float64(m)*theta[p])
			sign := 1.0
			if m%2 == 1 {
				sign = -1
			}
			for l := m; l <= lmax; l++ {
				v := sign * sqrt2 * work[l][m]
				t.vals.Set(v*cm, m, l, p)
				t.vals.Set(v*sm, slot(-m, lmax), l, p)
			}
		}
	}
	return t, nil
}

// LMax is the maximum harmonic degree in the table.
func (t *RealTable) LMax() int { return t.lmax }

// NumPoints is the number of angular coordinates the table was
// evaluated at.
func (t *RealTable) NumPoints() int { return t.n }

// At returns the real harmonic of degree l and order m at point p.
// m may be negative.
func (t *RealTable) At(m, l, p int) float64 {
	return t.vals.Get(slot(m, t.lmax), l, p)
}

// Values returns the per-point values of the (l, m) basis function as
// a slice sharing the table's storage. The slice must not be modified.
func (t *RealTable) Values(m, l int) []float64 {
	base := (slot(m, t.lmax)*(t.lmax+1) + l) * t.n
	return t.vals.Elements[base : base+t.n]
}
