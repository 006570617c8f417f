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

package sphharm

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thomaspigeon/grid"
	"github.com/thomaspigeon/grid/angular"
)

func TestDegrees(t *testing.T) {
	for lmax := 0; lmax < 20; lmax++ {
		l, m := Degrees(lmax)
		if len(l) != lmax+1 || len(m) != 2*lmax+1 {
			t.Fatalf("lmax %d: lengths %d, %d", lmax, len(l), len(m))
		}
		for i := 0; i <= lmax; i++ {
			if l[i] != i || m[i] != i {
				t.Fatalf("lmax %d slot %d: l=%d m=%d", lmax, i, l[i], m[i])
			}
		}
		for i := 0; i < lmax; i++ {
			if m[lmax+1+i] != -lmax+i {
				t.Fatalf("lmax %d slot %d: m=%d, want %d", lmax, lmax+1+i, m[lmax+1+i], -lmax+i)
			}
		}
	}
}

// quadratureAngles evaluates an angular quadrature exact to the given
// degree and returns its angles and weights.
func quadratureAngles(t *testing.T, degree int) (theta, phi, weights []float64) {
	t.Helper()
	ang, err := angular.New(degree)
	if err != nil {
		t.Fatal(err)
	}
	theta, phi = grid.SphericalAngles(ang.Points(), r3.Vec{})
	return theta, phi, ang.Weights()
}

func TestComplexOrthonormality(t *testing.T) {
	const lmax = 3
	theta, phi, weights := quadratureAngles(t, 2*lmax+1)
	tab, err := New(lmax, theta, phi)
	if err != nil {
		t.Fatal(err)
	}
	ls, ms := Degrees(lmax)
	for _, l1 := range ls {
		for _, m1 := range ms {
			if abs(m1) > l1 {
				continue
			}
			for _, l2 := range ls {
				for _, m2 := range ms {
					if abs(m2) > l2 {
						continue
					}
					var ip complex128
					for p := range weights {
						ip += complex(weights[p], 0) * cmplx.Conj(tab.At(m1, l1, p)) * tab.At(m2, l2, p)
					}
					want := 0.0
					if l1 == l2 && m1 == m2 {
						want = 1
					}
					if !scalar.EqualWithinAbs(real(ip), want, 1e-9) || !scalar.EqualWithinAbs(imag(ip), 0, 1e-9) {
						t.Errorf("<Y_%d^%d | Y_%d^%d> = %g, want %g", l1, m1, l2, m2, ip, want)
					}
				}
			}
		}
	}
}

func TestRealOrthonormality(t *testing.T) {
	const lmax = 3
	theta, phi, weights := quadratureAngles(t, 2*lmax+1)
	tab, err := NewReal(lmax, theta, phi)
	if err != nil {
		t.Fatal(err)
	}
	ls, ms := Degrees(lmax)
	for _, l1 := range ls {
		for _, m1 := range ms {
			if abs(m1) > l1 {
				continue
			}
			for _, l2 := range ls {
				for _, m2 := range ms {
					if abs(m2) > l2 {
						continue
					}
					ip := 0.0
					for p := range weights {
						ip += weights[p] * tab.At(m1, l1, p) * tab.At(m2, l2, p)
					}
					want := 0.0
					if l1 == l2 && m1 == m2 {
						want = 1
					}
					if !scalar.EqualWithinAbs(ip, want, 1e-9) {
						t.Errorf("<Y_%d,%d | Y_%d,%d> = %g, want %g", l1, m1, l2, m2, ip, want)
					}
				}
			}
		}
	}
}

func TestKnownValues(t *testing.T) {
	theta := []float64{0, 0.7, math.Pi / 3}
	phi := []float64{0, 1.1, math.Pi / 2}
	tab, err := NewReal(2, theta, phi)
	if err != nil {
		t.Fatal(err)
	}
	for p := range theta {
		// Y_00 is constant.
		if !scalar.EqualWithinAbs(tab.At(0, 0, p), 1/math.Sqrt(4*math.Pi), 1e-14) {
			t.Errorf("point %d: Y_00 = %g", p, tab.At(0, 0, p))
		}
		// Y_10 is proportional to cos(phi).
		want := math.Sqrt(3/(4*math.Pi)) * math.Cos(phi[p])
		if !scalar.EqualWithinAbs(tab.At(0, 1, p), want, 1e-14) {
			t.Errorf("point %d: Y_10 = %g, want %g", p, tab.At(0, 1, p), want)
		}
	}
}

func TestOrderAboveDegreeIsZero(t *testing.T) {
	theta := []float64{0.3, 1.7}
	phi := []float64{0.9, 2.1}
	ctab, err := New(3, theta, phi)
	require.NoError(t, err)
	rtab, err := NewReal(3, theta, phi)
	require.NoError(t, err)
	for _, m := range []int{2, 3, -2, -3} {
		for l := 0; l < abs(m); l++ {
			for p := range theta {
				if ctab.At(m, l, p) != 0 {
					t.Errorf("complex Y_%d^%d nonzero at point %d", l, m, p)
				}
				if rtab.At(m, l, p) != 0 {
					t.Errorf("real Y_%d,%d nonzero at point %d", l, m, p)
				}
			}
		}
	}
}

func TestBadArguments(t *testing.T) {
	_, err := New(-1, nil, nil)
	require.Error(t, err)
	_, err = NewReal(-1, nil, nil)
	require.Error(t, err)
	_, err = New(2, []float64{0, 1}, []float64{0})
	require.Error(t, err)
	_, err = NewReal(2, []float64{0}, []float64{0, 1})
	require.Error(t, err)
}

func TestValuesView(t *testing.T) {
	theta := []float64{0.2, 0.8, 1.9, 3.0}
	phi := []float64{1.2, 0.4, 2.5, 0.1}
	tab, err := NewReal(2, theta, phi)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []int{-2, -1, 0, 1, 2} {
		for l := abs(m); l <= 2; l++ {
			vals := tab.Values(m, l)
			if len(vals) != len(theta) {
				t.Fatalf("Values(%d, %d) length %d", m, l, len(vals))
			}
			for p := range vals {
				if vals[p] != tab.At(m, l, p) {
					t.Errorf("Values(%d, %d)[%d] = %g != At = %g", m, l, p, vals[p], tab.At(m, l, p))
				}
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
