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

/*Package atomgrid assembles quadrature grids centered on single atoms
by combining a radial node sequence with angular shells.*/
package atomgrid

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thomaspigeon/grid"
	"github.com/thomaspigeon/grid/angular"
	"github.com/thomaspigeon/grid/radial"
)

// Grid is the quadrature grid of a single atom: one angular shell per
// radial node, concatenated into flat point and weight arrays. It is
// immutable after construction.
type Grid struct {
	points  []r3.Vec
	weights []float64
	indices []int
	center  r3.Vec
	lmax    int
	rad     *radial.Grid
	shells  []*angular.Grid
	rot     *mat.Dense
}

var _ grid.AtomicGrid = &Grid{}

type config struct {
	rotate bool
	seed   uint64
}

// Option configures atomic grid construction.
type Option func(*config)

// WithRotation applies a random orthogonal rotation, drawn from the
// seeded source, to every angular shell. Rotating each atom's shells
// differently avoids systematic alignment of quadrature error across
// atoms in a molecular grid.
func WithRotation(seed uint64) Option {
	return func(c *config) {
		c.rotate = true
		c.seed = seed
	}
}

// New creates an atomic grid with the same angular degree on every
// radial shell.
func New(rad *radial.Grid, degree int, center r3.Vec, opts ...Option) (*Grid, error) {
	degrees := make([]int, rad.Size())
	for i := range degrees {
		degrees[i] = degree
	}
	return NewShells(rad, degrees, center, opts...)
}

// NewShells creates an atomic grid with one angular degree per radial
// shell. The weight of each point is the product of its angular
// weight, its shell's radial weight and the squared shell radius, so
// that integrating a field over the grid approximates the volume
// integral around the atom.
func NewShells(rad *radial.Grid, degrees []int, center r3.Vec, opts ...Option) (*Grid, error) {
	if len(degrees) != rad.Size() {
		return nil, fmt.Errorf("atomgrid: %d angular degrees for %d radial nodes", len(degrees), rad.Size())
	}
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	g := &Grid{
		center:  center,
		indices: make([]int, rad.Size()+1),
		rad:     rad,
		shells:  make([]*angular.Grid, rad.Size()),
	}
	if c.rotate {
		g.rot = randomRotation(rand.New(rand.NewSource(c.seed)))
	}

	cache := make(map[int]*angular.Grid)
	size := 0
	for i, deg := range degrees {
		ang, ok := cache[deg]
		if !ok {
			var err error
			ang, err = angular.New(deg)
			if err != nil {
				return nil, err
			}
			cache[deg] = ang
		}
		g.shells[i] = ang
		size += ang.Size()
		g.indices[i+1] = size
		if deg > g.lmax {
			g.lmax = deg
		}
	}

	g.points = make([]r3.Vec, 0, size)
	g.weights = make([]float64, 0, size)
	for i, ang := range g.shells {
		r := rad.Points()[i]
		wr := rad.Weights()[i] * r * r
		for p, u := range ang.Points() {
			g.points = append(g.points, r3.Add(center, r3.Scale(r, g.orient(u))))
			g.weights = append(g.weights, ang.Weights()[p]*wr)
		}
	}
	return g, nil
}

// orient applies the grid's rotation, if any, to a unit direction.
func (g *Grid) orient(u r3.Vec) r3.Vec {
	if g.rot == nil {
		return u
	}
	return r3.Vec{
		X: g.rot.At(0, 0)*u.X + g.rot.At(0, 1)*u.Y + g.rot.At(0, 2)*u.Z,
		Y: g.rot.At(1, 0)*u.X + g.rot.At(1, 1)*u.Y + g.rot.At(1, 2)*u.Z,
		Z: g.rot.At(2, 0)*u.X + g.rot.At(2, 1)*u.Y + g.rot.At(2, 2)*u.Z,
	}
}

// Size is the total number of quadrature points.
func (g *Grid) Size() int { return len(g.points) }

// Points returns the Cartesian coordinates of the quadrature points.
func (g *Grid) Points() []r3.Vec { return g.points }

// Weights returns the quadrature weight for each point.
func (g *Grid) Weights() []float64 { return g.weights }

// Center returns the atomic center.
func (g *Grid) Center() r3.Vec { return g.center }

// Indices returns the shell partition boundaries.
func (g *Grid) Indices() []int { return g.indices }

// LMax is the maximum spherical-harmonic degree the angular shells
// resolve.
func (g *Grid) LMax() int { return g.lmax }

// Radial returns the radial grid the shells were placed on.
func (g *Grid) Radial() *radial.Grid { return g.rad }

// Integrate computes the weighted sum of the elementwise product of
// the given fields over the grid.
func (g *Grid) Integrate(fields ...[]float64) (float64, error) {
	return grid.InnerProduct(g.weights, nil, fields...)
}

// Shell returns the sub-grid of the i'th radial shell with weights
// scaled by the squared shell radius.
func (g *Grid) Shell(i int) (grid.Grid, error) {
	return g.ShellGrid(i, true)
}

// ShellGrid returns the sub-grid of the i'th radial shell. The
// returned points lie on the sphere of that shell's radius about the
// atomic center in the grid's orientation. When rsq is true the
// angular weights are scaled by the squared shell radius; otherwise
// they are returned bare, which is the measure the spherical-harmonic
// projection uses.
func (g *Grid) ShellGrid(i int, rsq bool) (*grid.SimpleAtomicGrid, error) {
	if i < 0 {
		return nil, fmt.Errorf("atomgrid: invalid negative shell index %d", i)
	}
	if i >= len(g.shells) {
		return nil, fmt.Errorf("atomgrid: shell index %d out of range for %d shells", i, len(g.shells))
	}
	ang := g.shells[i]
	r := g.rad.Points()[i]
	points := make([]r3.Vec, ang.Size())
	weights := make([]float64, ang.Size())
	for p, u := range ang.Points() {
		points[p] = r3.Add(g.center, r3.Scale(r, g.orient(u)))
		weights[p] = ang.Weights()[p]
		if rsq {
			weights[p] *= r * r
		}
	}
	return grid.NewSimpleAtomicGrid(points, weights, g.center)
}

// randomRotation draws a uniformly distributed rotation matrix by
// orthonormalizing a Gaussian matrix.
func randomRotation(rng *rand.Rand) *mat.Dense {
	data := make([]float64, 9)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	var qr mat.QR
	qr.Factorize(mat.NewDense(3, 3, data))
	q := mat.NewDense(3, 3, nil)
	qr.QTo(q)
	if mat.Det(q) < 0 {
		// Reflections would flip the grid's handedness.
		for i := 0; i < 3; i++ {
			q.Set(i, 0, -q.At(i, 0))
		}
	}
	return q
}
