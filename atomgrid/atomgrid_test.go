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

package atomgrid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thomaspigeon/grid/radial"
)

// unitShells returns radial nodes 1..n with unit weights.
func unitShells(t *testing.T, n int) *radial.Grid {
	t.Helper()
	points := make([]float64, n)
	weights := make([]float64, n)
	for i := range points {
		points[i] = float64(i + 1)
		weights[i] = 1
	}
	rad, err := radial.NewGrid(points, weights)
	if err != nil {
		t.Fatal(err)
	}
	return rad
}

func TestAssembly(t *testing.T) {
	rad := unitShells(t, 10)
	center := r3.Vec{X: 0.5, Y: -1, Z: 2}
	g, err := New(rad, 7, center)
	if err != nil {
		t.Fatal(err)
	}

	shellSize := g.Size() / 10
	if g.Size() != 10*shellSize {
		t.Fatalf("size %d is not a multiple of the shell count", g.Size())
	}
	if g.LMax() != 7 {
		t.Errorf("l_max: %d != 7", g.LMax())
	}
	if g.Center() != center {
		t.Errorf("center: %v != %v", g.Center(), center)
	}

	indices := g.Indices()
	if len(indices) != 11 || indices[0] != 0 || indices[10] != g.Size() {
		t.Fatalf("bad shell partition %v", indices)
	}
	for i := 0; i < 10; i++ {
		if indices[i+1]-indices[i] != shellSize {
			t.Fatalf("shell %d has %d points, want %d", i, indices[i+1]-indices[i], shellSize)
		}
		// every point of shell i sits on the sphere of radius i+1
		for p := indices[i]; p < indices[i+1]; p++ {
			r := r3.Norm(r3.Sub(g.Points()[p], center))
			if !scalar.EqualWithinAbs(r, float64(i+1), 1e-12) {
				t.Fatalf("point %d of shell %d has radius %g", p, i, r)
			}
		}
	}

	// total weight is 4*pi * sum_i w_i * r_i^2
	want := 0.0
	for i := 1; i <= 10; i++ {
		want += 4 * math.Pi * float64(i*i)
	}
	if !scalar.EqualWithinAbsOrRel(floats.Sum(g.Weights()), want, 1e-9, 1e-12) {
		t.Errorf("total weight: %g != %g", floats.Sum(g.Weights()), want)
	}
}

func TestShellGrid(t *testing.T) {
	rad := unitShells(t, 4)
	g, err := New(rad, 5, r3.Vec{})
	if err != nil {
		t.Fatal(err)
	}

	sh, err := g.ShellGrid(2, false)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(floats.Sum(sh.Weights()), 4*math.Pi, 1e-12) {
		t.Errorf("bare shell weights sum to %g, want 4*pi", floats.Sum(sh.Weights()))
	}

	shr, err := g.ShellGrid(2, true)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbsOrRel(floats.Sum(shr.Weights()), 9*4*math.Pi, 1e-10, 1e-12) {
		t.Errorf("scaled shell weights sum to %g, want 9*4*pi", floats.Sum(shr.Weights()))
	}

	_, err = g.ShellGrid(-1, false)
	require.Error(t, err)
	_, err = g.ShellGrid(4, false)
	require.Error(t, err)
}

func TestRotation(t *testing.T) {
	rad := unitShells(t, 6)
	plain, err := New(rad, 7, r3.Vec{})
	if err != nil {
		t.Fatal(err)
	}
	rot, err := New(rad, 7, r3.Vec{}, WithRotation(17))
	if err != nil {
		t.Fatal(err)
	}
	same, err := New(rad, 7, r3.Vec{}, WithRotation(17))
	if err != nil {
		t.Fatal(err)
	}

	// same seed, same grid
	for i := range rot.Points() {
		if rot.Points()[i] != same.Points()[i] {
			t.Fatal("rotation is not reproducible for equal seeds")
		}
	}

	// rotation moves points but preserves radii and weights
	moved := false
	for i := range rot.Points() {
		if rot.Points()[i] != plain.Points()[i] {
			moved = true
		}
		r0 := r3.Norm(plain.Points()[i])
		r1 := r3.Norm(rot.Points()[i])
		if !scalar.EqualWithinAbs(r0, r1, 1e-12) {
			t.Fatalf("rotation changed the radius of point %d", i)
		}
	}
	if !moved {
		t.Error("rotation left every point in place")
	}
	if !floats.EqualApprox(plain.Weights(), rot.Weights(), 1e-14) {
		t.Error("rotation changed quadrature weights")
	}

	// a radial integrand integrates identically on both grids
	f := func(g *Grid) []float64 {
		v := make([]float64, g.Size())
		for i, p := range g.Points() {
			v[i] = math.Exp(-r3.Norm(p))
		}
		return v
	}
	i0, err := plain.Integrate(f(plain))
	if err != nil {
		t.Fatal(err)
	}
	i1, err := rot.Integrate(f(rot))
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbsOrRel(i0, i1, 1e-10, 1e-12) {
		t.Errorf("rotated integral %g != %g", i1, i0)
	}
}

func TestNewShellsValidation(t *testing.T) {
	rad := unitShells(t, 3)
	_, err := NewShells(rad, []int{7, 7}, r3.Vec{})
	require.Error(t, err, "degree count mismatch must fail")

	_, err = NewShells(rad, []int{7, 5, -1}, r3.Vec{})
	require.Error(t, err, "negative degree must fail")
}

func TestMixedDegrees(t *testing.T) {
	rad := unitShells(t, 3)
	g, err := NewShells(rad, []int{3, 7, 3}, r3.Vec{})
	if err != nil {
		t.Fatal(err)
	}
	if g.LMax() != 7 {
		t.Errorf("l_max: %d != 7", g.LMax())
	}
	indices := g.Indices()
	if indices[1]-indices[0] != indices[3]-indices[2] {
		t.Error("equal-degree shells must have equal sizes")
	}
	if indices[2]-indices[1] <= indices[1]-indices[0] {
		t.Error("higher-degree shell must have more points")
	}
}
