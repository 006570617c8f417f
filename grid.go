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

/*Package grid defines interfaces and base types for numerical
integration grids over three-dimensional space.*/
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Grid describes a set of quadrature points and weights for
// approximating integrals over three-dimensional space.
type Grid interface {
	// Size is the total number of quadrature points in this Grid.
	Size() int

	// Points returns the Cartesian coordinates of the quadrature points.
	Points() []r3.Vec

	// Weights returns the quadrature weight associated with each point.
	Weights() []float64

	// Integrate computes the weighted sum of the elementwise product
	// of the given field arrays over this Grid. Each field must hold
	// one value per quadrature point.
	Integrate(fields ...[]float64) (float64, error)
}

// CenteredGrid describes a grid whose points are arranged about
// a single center.
type CenteredGrid interface {
	Grid

	// Center returns the point the grid is centered on.
	Center() r3.Vec
}

// AtomicGrid describes the quadrature grid belonging to one atom:
// a sequence of radial shells, each carrying an angular sub-grid.
type AtomicGrid interface {
	CenteredGrid

	// Indices returns the shell partition boundaries. Boundary i and
	// i+1 delimit the points of shell i, so the slice has one more
	// entry than there are shells, starts at 0, and ends at Size().
	Indices() []int

	// LMax is the maximum spherical-harmonic degree the angular
	// sub-grids resolve.
	LMax() int

	// Shell returns the sub-grid of the i'th radial shell, with
	// angular weights scaled by the squared shell radius.
	Shell(i int) (Grid, error)
}

// SimpleGrid is a basic Grid implementation holding explicit point
// and weight arrays. It is immutable after construction.
type SimpleGrid struct {
	points  []r3.Vec
	weights []float64
}

// NewSimpleGrid creates a grid from matching point and weight arrays.
func NewSimpleGrid(points []r3.Vec, weights []float64) (*SimpleGrid, error) {
	if len(points) != len(weights) {
		return nil, fmt.Errorf("grid: %d points paired with %d weights", len(points), len(weights))
	}
	return &SimpleGrid{points: points, weights: weights}, nil
}

// Size is the total number of quadrature points.
func (g *SimpleGrid) Size() int { return len(g.points) }

// Points returns the Cartesian coordinates of the quadrature points.
func (g *SimpleGrid) Points() []r3.Vec { return g.points }

// Weights returns the quadrature weight for each point.
func (g *SimpleGrid) Weights() []float64 { return g.weights }

// Integrate computes the weighted sum of the elementwise product of
// the given fields over the grid. At least one field is required and
// every field must hold one value per grid point.
func (g *SimpleGrid) Integrate(fields ...[]float64) (float64, error) {
	return InnerProduct(g.weights, nil, fields...)
}

// InnerProduct computes sum_p weights[p] * aim[p] * prod_k fields[k][p],
// the generalized inner product underlying every grid integral.
// aim may be nil, in which case it is treated as all ones.
func InnerProduct(weights, aim []float64, fields ...[]float64) (float64, error) {
	if len(fields) < 1 {
		return 0, fmt.Errorf("grid: no field given to integrate")
	}
	prod := make([]float64, len(weights))
	copy(prod, weights)
	if aim != nil {
		floats.Mul(prod, aim)
	}
	for i, f := range fields {
		if f == nil {
			return 0, fmt.Errorf("grid: integrand %d is nil", i)
		}
		if len(f) != len(weights) {
			return 0, fmt.Errorf("grid: integrand %d has %d values for %d grid points", i, len(f), len(weights))
		}
		floats.Mul(prod, f)
	}
	return floats.Sum(prod), nil
}

// SimpleAtomicGrid is a lightweight view of the points, weights and
// center of a single atom's portion of a larger grid.
type SimpleAtomicGrid struct {
	SimpleGrid
	center r3.Vec
}

// NewSimpleAtomicGrid creates an atom-centered grid view.
func NewSimpleAtomicGrid(points []r3.Vec, weights []float64, center r3.Vec) (*SimpleAtomicGrid, error) {
	g, err := NewSimpleGrid(points, weights)
	if err != nil {
		return nil, err
	}
	return &SimpleAtomicGrid{SimpleGrid: *g, center: center}, nil
}

// Center returns the point the grid is centered on.
func (g *SimpleAtomicGrid) Center() r3.Vec { return g.center }

// SphericalAngles converts the given points to spherical angles about
// center. theta is the azimuthal angle measured in the x-y plane from
// the x axis, and phi is the polar angle measured from the z axis.
// A point coincident with the center is assigned phi = 0.
func SphericalAngles(points []r3.Vec, center r3.Vec) (theta, phi []float64) {
	theta = make([]float64, len(points))
	phi = make([]float64, len(points))
	for i, p := range points {
		d := r3.Sub(p, center)
		r := r3.Norm(d)
		theta[i] = math.Atan2(d.Y, d.X)
		if r > 0 {
			phi[i] = math.Acos(d.Z / r)
		}
	}
	return theta, phi
}
