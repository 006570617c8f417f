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

/*Package molgrid assembles per-atom quadrature grids into a single
molecular integration grid with atoms-in-molecule weights.*/
package molgrid

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thomaspigeon/grid"
	"github.com/thomaspigeon/grid/atomgrid"
	"github.com/thomaspigeon/grid/becke"
	"github.com/thomaspigeon/grid/element"
	"github.com/thomaspigeon/grid/radial"
)

// ErrNotStored indicates a request for an original atomic grid on a
// molecular grid built without retaining them.
var ErrNotStored = errors.New("molgrid: atomic grids were not stored during construction")

// AimWeighter computes the atoms-in-molecule weight of every point of
// a molecular grid. Exactly two implementations exist: Becke, which
// runs the partition-of-unity scheme, and Precomputed, which supplies
// the weights directly.
type AimWeighter interface {
	Weights(g *Grid, radii []float64) ([]float64, error)
}

// Becke computes aim weights with the Becke partition scheme, in
// memory-bounded chunks.
type Becke struct {
	// ChunkSize bounds the number of points processed per chunk.
	// Zero selects a heuristic based on grid size and atom count.
	ChunkSize int

	// Order is the smoothing order of the switching polynomial.
	// Zero selects the default order of 3.
	Order int
}

// Weights runs the Becke partitioning over the assembled grid.
func (b Becke) Weights(g *Grid, radii []float64) ([]float64, error) {
	var opts []becke.Option
	if b.Order > 0 {
		opts = append(opts, becke.WithOrder(b.Order))
	}
	p, err := becke.New(g.centers, radii, opts...)
	if err != nil {
		return nil, err
	}
	return p.ChunkedWeights(g.points, g.indices, b.ChunkSize)
}

// Precomputed supplies aim weights as-is. Its length must equal the
// total point count of the grid.
type Precomputed []float64

// Weights validates the array length and returns a copy.
func (p Precomputed) Weights(g *Grid, _ []float64) ([]float64, error) {
	if len(p) != g.Size() {
		return nil, fmt.Errorf("molgrid: aim weights size %d does not match grid size %d", len(p), g.Size())
	}
	out := make([]float64, len(p))
	copy(out, p)
	return out, nil
}

// Grid is a molecular integration grid: the concatenated points and
// weights of one atomic grid per atom, plus one aim weight per point.
// It is immutable after construction.
type Grid struct {
	points  []r3.Vec
	weights []float64
	aim     []float64
	centers []r3.Vec
	indices []int
	atomic  []grid.AtomicGrid
}

var _ grid.Grid = &Grid{}

// New assembles a molecular grid from one atomic grid and one atomic
// number per atom. aim selects how atoms-in-molecule weights are
// obtained and must not be nil. When store is true the original
// atomic grids are retained for later per-atom introspection;
// otherwise only the flattened arrays survive.
func New(grids []grid.AtomicGrid, numbers []int, aim AimWeighter, store bool) (*Grid, error) {
	if len(grids) == 0 {
		return nil, fmt.Errorf("molgrid: no atomic grids given")
	}
	if len(numbers) != len(grids) {
		return nil, fmt.Errorf("molgrid: %d atomic numbers for %d atomic grids", len(numbers), len(grids))
	}
	if aim == nil {
		return nil, fmt.Errorf("molgrid: nil aim weighter; use Becke or Precomputed")
	}
	radii, err := element.CovalentRadii(numbers)
	if err != nil {
		return nil, err
	}

	g := &Grid{
		centers: make([]r3.Vec, len(grids)),
		indices: make([]int, len(grids)+1),
	}
	size := 0
	for i, ag := range grids {
		g.centers[i] = ag.Center()
		size += ag.Size()
		g.indices[i+1] = size
	}
	g.points = make([]r3.Vec, 0, size)
	g.weights = make([]float64, 0, size)
	for _, ag := range grids {
		g.points = append(g.points, ag.Points()...)
		g.weights = append(g.weights, ag.Weights()...)
	}

	g.aim, err = aim.Weights(g, radii)
	if err != nil {
		return nil, err
	}
	if store {
		g.atomic = grids
	}
	log.WithFields(log.Fields{
		"atoms":  len(grids),
		"points": size,
		"stored": store,
	}).Debug("molgrid: assembled molecular grid")
	return g, nil
}

type config struct {
	rotate bool
	seed   uint64
}

// Option configures the FromRadial convenience constructor.
type Option func(*config)

// WithRotation rotates each atom's angular shells by a random
// orthogonal matrix drawn from the seeded source, so quadrature
// errors do not align systematically across atoms. Atom i uses
// seed+i.
func WithRotation(seed uint64) Option {
	return func(c *config) {
		c.rotate = true
		c.seed = seed
	}
}

// FromRadial builds one atomic grid per atom from a shared radial
// grid and a fixed angular degree, then assembles the molecular grid.
func FromRadial(centers []r3.Vec, numbers []int, rad *radial.Grid, degree int, aim AimWeighter, store bool, opts ...Option) (*Grid, error) {
	if len(centers) != len(numbers) {
		return nil, fmt.Errorf("molgrid: %d centers for %d atomic numbers", len(centers), len(numbers))
	}
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	grids := make([]grid.AtomicGrid, len(centers))
	for i, center := range centers {
		var aopts []atomgrid.Option
		if c.rotate {
			aopts = append(aopts, atomgrid.WithRotation(c.seed+uint64(i)))
		}
		ag, err := atomgrid.New(rad, degree, center, aopts...)
		if err != nil {
			return nil, err
		}
		grids[i] = ag
	}
	return New(grids, numbers, aim, store)
}

// Size is the total number of quadrature points.
func (g *Grid) Size() int { return len(g.points) }

// Points returns the Cartesian coordinates of all quadrature points.
func (g *Grid) Points() []r3.Vec { return g.points }

// Weights returns the quadrature weight of every point, without aim
// weighting.
func (g *Grid) Weights() []float64 { return g.weights }

// AimWeights returns the atoms-in-molecule weight of every point.
func (g *Grid) AimWeights() []float64 { return g.aim }

// Centers returns the atomic centers.
func (g *Grid) Centers() []r3.Vec { return g.centers }

// Indices returns the atom partition boundaries of the flattened
// point array.
func (g *Grid) Indices() []int { return g.indices }

// NumAtoms is the number of atoms in the grid.
func (g *Grid) NumAtoms() int { return len(g.centers) }

// Integrate computes the integral of the product of the given fields
// over all space: sum_p weight[p] * aim[p] * prod_k fields[k][p].
// At least one field is required, and every field must hold one value
// per grid point.
func (g *Grid) Integrate(fields ...[]float64) (float64, error) {
	return grid.InnerProduct(g.weights, g.aim, fields...)
}

func (g *Grid) checkAtom(index int) error {
	if index < 0 {
		return fmt.Errorf("molgrid: invalid negative index %d", index)
	}
	if index >= len(g.centers) {
		return fmt.Errorf("molgrid: atom index %d out of range for %d atoms", index, len(g.centers))
	}
	return nil
}

// AtomicGrid returns the stored atomic grid of one atom. It fails
// with ErrNotStored on grids built without retention, regardless of
// the index.
func (g *Grid) AtomicGrid(index int) (grid.AtomicGrid, error) {
	if g.atomic == nil {
		return nil, ErrNotStored
	}
	if err := g.checkAtom(index); err != nil {
		return nil, err
	}
	return g.atomic[index], nil
}

// AtomAimWeights returns the aim-weight sub-array of one atom's
// points. The returned slice shares the grid's storage and must not
// be modified.
func (g *Grid) AtomAimWeights(index int) ([]float64, error) {
	if err := g.checkAtom(index); err != nil {
		return nil, err
	}
	return g.aim[g.indices[index]:g.indices[index+1]], nil
}

// SimpleAtomicGrid returns a lightweight view of one atom's points,
// weights and center. When withAim is true the returned weights are
// the local quadrature weights multiplied by the atom's aim weights,
// making the view directly usable for per-atom integrals.
func (g *Grid) SimpleAtomicGrid(index int, withAim bool) (*grid.SimpleAtomicGrid, error) {
	if err := g.checkAtom(index); err != nil {
		return nil, err
	}
	s, f := g.indices[index], g.indices[index+1]
	weights := make([]float64, f-s)
	copy(weights, g.weights[s:f])
	if withAim {
		for i := range weights {
			weights[i] *= g.aim[s+i]
		}
	}
	return grid.NewSimpleAtomicGrid(g.points[s:f], weights, g.centers[index])
}

// At returns a view of one atom's grid with the aim weights folded
// into the quadrature weights, so the per-atom integrals of the views
// sum to the whole-grid integral. It works whether or not the original
// atomic grids were stored.
func (g *Grid) At(index int) (grid.CenteredGrid, error) {
	return g.SimpleAtomicGrid(index, true)
}
