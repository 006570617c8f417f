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

/*Package interpolate reconstructs continuous scalar fields from
values sampled on atom-centered grids.

A sampled field is projected, shell by shell, onto an orthonormal
real spherical-harmonic basis; the per-shell coefficients are then
fitted with one cubic spline per basis function across the radial
nodes, giving a reconstruction that is continuous in value and first
radial derivative everywhere around the atom.*/
package interpolate

import (
	"fmt"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/thomaspigeon/grid/radial"
	"github.com/thomaspigeon/grid/sphharm"
)

// SplineSet holds the per-shell harmonic projection of one sampled
// field and one fitted radial spline per (l, m) coefficient. A new
// field requires a new projection and a new SplineSet.
type SplineSet struct {
	lmax    int
	orders  []int
	radii   []float64
	coeffs  *sparse.DenseArray
	splines [][]*interp.AkimaSpline
}

// SplineWithSphHarms projects a sampled field onto the real
// spherical-harmonic basis of table, one radial shell at a time, and
// fits a cubic spline per (l, m) coefficient across the radial nodes.
//
// values holds the sampled field at every grid point and weights the
// grid's full quadrature weights; indices is the grid's shell
// partition and rad the radial grid the shells were placed on. The
// radial weight and squared radius are divided back out of each
// shell's projection, so the stored coefficients are pure angular
// inner products.
func SplineWithSphHarms(table *sphharm.RealTable, values, weights []float64, indices []int, rad *radial.Grid) (*SplineSet, error) {
	n := table.NumPoints()
	if len(values) != n {
		return nil, fmt.Errorf("interpolate: %d field values for %d grid points", len(values), n)
	}
	if len(weights) != n {
		return nil, fmt.Errorf("interpolate: %d weights for %d grid points", len(weights), n)
	}
	shells := rad.Size()
	if len(indices) != shells+1 {
		return nil, fmt.Errorf("interpolate: %d shell boundaries for %d radial nodes, want %d", len(indices), shells, shells+1)
	}
	if indices[0] != 0 || indices[shells] != n {
		return nil, fmt.Errorf("interpolate: shell partition spans [%d, %d], want [0, %d]", indices[0], indices[shells], n)
	}
	if shells < 2 {
		return nil, fmt.Errorf("interpolate: need at least 2 radial shells to fit splines, got %d", shells)
	}

	lmax := table.LMax()
	_, orders := sphharm.Degrees(lmax)
	s := &SplineSet{
		lmax:   lmax,
		orders: orders,
		radii:  rad.Points(),
		coeffs: sparse.ZerosDense(shells, 2*lmax+1, lmax+1),
	}

	for i := 0; i < shells; i++ {
		if indices[i+1] < indices[i] {
			return nil, fmt.Errorf("interpolate: shell boundaries must be monotonic")
		}
		r := rad.Points()[i]
		vol := rad.Weights()[i] * r * r
		if vol == 0 {
			return nil, fmt.Errorf("interpolate: radial node %d has zero volume element", i)
		}
		for slot, m := range orders {
			for l := abs(m); l <= lmax; l++ {
				y := table.Values(m, l)
				c := 0.0
				for p := indices[i]; p < indices[i+1]; p++ {
					c += y[p] * values[p] * weights[p]
				}
				s.coeffs.Set(c/vol, i, slot, l)
			}
		}
	}

	// One smooth radial curve per basis function.
	s.splines = make([][]*interp.AkimaSpline, 2*lmax+1)
	ys := make([]float64, shells)
	for slot, m := range orders {
		s.splines[slot] = make([]*interp.AkimaSpline, lmax+1)
		for l := abs(m); l <= lmax; l++ {
			for i := 0; i < shells; i++ {
				ys[i] = s.coeffs.Get(i, slot, l)
			}
			sp := &interp.AkimaSpline{}
			if err := sp.Fit(s.radii, ys); err != nil {
				return nil, fmt.Errorf("interpolate: fitting spline for l=%d m=%d: %v", l, m, err)
			}
			s.splines[slot][l] = sp
		}
	}
	return s, nil
}

func abs(m int) int {
	if m < 0 {
		return -m
	}
	return m
}

// LMax is the maximum harmonic degree of the expansion.
func (s *SplineSet) LMax() int { return s.lmax }

// Shells is the number of radial shells the field was projected on.
func (s *SplineSet) Shells() int { return len(s.radii) }

// Radii returns the radial node of each shell.
func (s *SplineSet) Radii() []float64 { return s.radii }

// ShellCoeffs returns the projected coefficient array at one shell's
// node, indexed (m-slot, l), without any spline evaluation. The
// returned array is a copy.
func (s *SplineSet) ShellCoeffs(shell int) (*sparse.DenseArray, error) {
	if err := s.checkShell(shell); err != nil {
		return nil, err
	}
	out := sparse.ZerosDense(2*s.lmax+1, s.lmax+1)
	for slot := 0; slot < 2*s.lmax+1; slot++ {
		for l := 0; l <= s.lmax; l++ {
			out.Set(s.coeffs.Get(shell, slot, l), slot, l)
		}
	}
	return out, nil
}

func (s *SplineSet) checkShell(shell int) error {
	if shell < 0 {
		return fmt.Errorf("interpolate: invalid negative shell index %d", shell)
	}
	if shell >= len(s.radii) {
		return fmt.Errorf("interpolate: shell index %d out of range for %d shells", shell, len(s.radii))
	}
	return nil
}

func checkDeriv(deriv int) error {
	if deriv != 0 && deriv != 1 {
		return fmt.Errorf("interpolate: unsupported derivative order %d, only 0 and 1 are available", deriv)
	}
	return nil
}

// Coefficient evaluates the radial spline of the (l, m) expansion
// coefficient at radius r, returning its value (deriv = 0) or first
// derivative (deriv = 1).
func (s *SplineSet) Coefficient(l, m int, r float64, deriv int) (float64, error) {
	if err := checkDeriv(deriv); err != nil {
		return 0, err
	}
	if l < 0 || l > s.lmax {
		return 0, fmt.Errorf("interpolate: degree %d out of range for l_max %d", l, s.lmax)
	}
	if m < -l || m > l {
		return 0, fmt.Errorf("interpolate: order %d out of range for degree %d", m, l)
	}
	slot := m
	if m < 0 {
		slot = 2*s.lmax + 1 + m
	}
	return s.coeff(slot, l, r, deriv), nil
}

// coeff evaluates one coefficient spline at radius r.
func (s *SplineSet) coeff(slot, l int, r float64, deriv int) float64 {
	sp := s.splines[slot][l]
	if sp == nil {
		return 0
	}
	if deriv == 1 {
		return sp.PredictDerivative(r)
	}
	return sp.Predict(r)
}

// reconstruct sums coefficient * basis over all (l, m) at each angle.
func (s *SplineSet) reconstruct(theta, phi []float64, coeffAt func(slot, l int) float64) ([]float64, error) {
	table, err := sphharm.NewReal(s.lmax, theta, phi)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(theta))
	for slot, m := range s.orders {
		for l := abs(m); l <= s.lmax; l++ {
			floats.AddScaled(out, coeffAt(slot, l), table.Values(m, l))
		}
	}
	return out, nil
}

// Interpolate reconstructs the field (deriv = 0) or its derivative
// with respect to radius (deriv = 1) at radius r and the given
// angular coordinates, evaluating every coefficient spline at r.
func (s *SplineSet) Interpolate(r float64, theta, phi []float64, deriv int) ([]float64, error) {
	if err := checkDeriv(deriv); err != nil {
		return nil, err
	}
	return s.reconstruct(theta, phi, func(slot, l int) float64 {
		return s.coeff(slot, l, r, deriv)
	})
}

// InterpolateShell reconstructs the field (deriv = 0) or its radial
// derivative (deriv = 1) at a discrete shell's node. For deriv = 0
// the exact projected coefficients are used directly, with no spline
// evaluation.
func (s *SplineSet) InterpolateShell(shell int, theta, phi []float64, deriv int) ([]float64, error) {
	if err := checkDeriv(deriv); err != nil {
		return nil, err
	}
	if err := s.checkShell(shell); err != nil {
		return nil, err
	}
	if deriv == 1 {
		return s.reconstruct(theta, phi, func(slot, l int) float64 {
			return s.coeff(slot, l, s.radii[shell], 1)
		})
	}
	return s.reconstruct(theta, phi, func(slot, l int) float64 {
		return s.coeffs.Get(shell, slot, l)
	})
}
