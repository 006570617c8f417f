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

/*Package radial generates one-dimensional radial node sequences and
coordinate transforms for building atom-centered grids.*/
package radial

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotIncreasing indicates radial nodes that are not strictly increasing.
var ErrNotIncreasing = errors.New("radial: points must be strictly increasing")

// Grid is an ordered sequence of one-dimensional quadrature nodes and
// weights. It is immutable after construction.
type Grid struct {
	points  []float64
	weights []float64
}

// NewGrid creates a radial grid from strictly increasing nodes and
// matching weights.
func NewGrid(points, weights []float64) (*Grid, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("radial: empty grid")
	}
	if len(points) != len(weights) {
		return nil, fmt.Errorf("radial: %d points paired with %d weights", len(points), len(weights))
	}
	for i := 1; i < len(points); i++ {
		if points[i] <= points[i-1] {
			return nil, ErrNotIncreasing
		}
	}
	return &Grid{points: points, weights: weights}, nil
}

// Uniform creates an n-point grid with nodes 0, 1, ..., n-1 and unit
// weights, the reference grid most transforms start from.
func Uniform(n int) (*Grid, error) {
	if n < 1 {
		return nil, fmt.Errorf("radial: invalid grid size %d", n)
	}
	points := make([]float64, n)
	weights := make([]float64, n)
	for i := range points {
		points[i] = float64(i)
		weights[i] = 1
	}
	return &Grid{points: points, weights: weights}, nil
}

// Size is the number of nodes.
func (g *Grid) Size() int { return len(g.points) }

// Points returns the node coordinates.
func (g *Grid) Points() []float64 { return g.points }

// Weights returns the quadrature weight for each node.
func (g *Grid) Weights() []float64 { return g.weights }

// Transform maps a one-dimensional reference coordinate x onto a
// physical radius.
type Transform interface {
	// Radius returns the physical radius at reference coordinate x.
	Radius(x float64) float64

	// Deriv returns the derivative of the radius with respect to x,
	// used to rescale quadrature weights.
	Deriv(x float64) float64
}

// Identity leaves the reference coordinate unchanged.
type Identity struct{}

// Radius returns x.
func (Identity) Radius(x float64) float64 { return x }

// Deriv returns 1.
func (Identity) Deriv(x float64) float64 { return 1 }

// Exponential maps the reference coordinates 0..Size-1 onto radii
// growing exponentially from Rmin to Rmax, concentrating nodes near
// the nucleus where fields vary fastest.
type Exponential struct {
	Rmin, Rmax float64
	Size       int
}

// NewExponential creates an exponential transform for a grid of the
// given size.
func NewExponential(rmin, rmax float64, size int) (*Exponential, error) {
	if rmin <= 0 || rmax <= rmin {
		return nil, fmt.Errorf("radial: invalid exponential range [%g, %g]", rmin, rmax)
	}
	if size < 2 {
		return nil, fmt.Errorf("radial: exponential transform needs at least 2 nodes, got %d", size)
	}
	return &Exponential{Rmin: rmin, Rmax: rmax, Size: size}, nil
}

func (t *Exponential) alpha() float64 {
	return math.Log(t.Rmax/t.Rmin) / float64(t.Size-1)
}

// Radius returns Rmin * exp(alpha*x).
func (t *Exponential) Radius(x float64) float64 {
	return t.Rmin * math.Exp(t.alpha()*x)
}

// Deriv returns alpha * Radius(x).
func (t *Exponential) Deriv(x float64) float64 {
	return t.alpha() * t.Radius(x)
}

// Apply maps the nodes of g through the transform and rescales the
// weights by the transform derivative, producing a new grid. g is not
// modified.
func Apply(t Transform, g *Grid) (*Grid, error) {
	points := make([]float64, g.Size())
	weights := make([]float64, g.Size())
	for i, x := range g.points {
		points[i] = t.Radius(x)
		weights[i] = g.weights[i] * t.Deriv(x)
	}
	return NewGrid(points, weights)
}
