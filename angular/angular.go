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

/*Package angular generates quadrature grids on the unit sphere that
are exact for spherical polynomials up to a requested degree.*/
package angular

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/spatial/r3"
)

// Grid holds quadrature points on the unit sphere together with
// weights that sum to the full solid angle 4π. Integrals of spherical
// polynomials of degree at most Degree are reproduced exactly.
type Grid struct {
	points  []r3.Vec
	weights []float64
	degree  int
}

// New creates a spherical quadrature exact to the given polynomial
// degree, built as the product of a Gauss-Legendre rule in the cosine
// of the polar angle and an equally spaced rule in the azimuthal angle.
func New(degree int) (*Grid, error) {
	if degree < 0 {
		return nil, fmt.Errorf("angular: invalid negative degree %d", degree)
	}
	// A Gauss rule with n nodes integrates polynomials of degree
	// 2n-1 in cos(phi); the azimuthal rule with nt nodes integrates
	// trigonometric polynomials of degree nt-1.
	nu := degree/2 + 1
	nt := degree + 1
	u := make([]float64, nu)
	wu := make([]float64, nu)
	quad.Legendre{}.FixedLocations(u, wu, -1, 1)

	g := &Grid{
		points:  make([]r3.Vec, 0, nu*nt),
		weights: make([]float64, 0, nu*nt),
		degree:  degree,
	}
	wt := 2 * math.Pi / float64(nt)
	for j := 0; j < nt; j++ {
		theta := 2 * math.Pi * float64(j) / float64(nt)
		ct, st := math.Cos(theta), math.Sin(theta)
		for i := 0; i < nu; i++ {
			sp := math.Sqrt(1 - u[i]*u[i])
			g.points = append(g.points, r3.Vec{X: sp * ct, Y: sp * st, Z: u[i]})
			g.weights = append(g.weights, wu[i]*wt)
		}
	}
	return g, nil
}

// Size is the number of quadrature points.
func (g *Grid) Size() int { return len(g.points) }

// Points returns the quadrature points on the unit sphere.
func (g *Grid) Points() []r3.Vec { return g.points }

// Weights returns the quadrature weights. They sum to 4π.
func (g *Grid) Weights() []float64 { return g.weights }

// Degree is the highest polynomial degree integrated exactly.
func (g *Grid) Degree() int { return g.degree }
