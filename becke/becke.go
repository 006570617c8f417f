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

/*Package becke computes atoms-in-molecule partition weights with the
switching-function scheme of Becke (J. Chem. Phys. 88, 2547, 1988).

Every spatial point receives one weight per atom; the weights are
nonnegative and sum to one at each point, so per-atom integrals add up
to the whole-space integral without double counting.*/
package becke

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// alphaCutoff bounds the covalent-radius size adjustment. Larger
// values push the cell boundary so far that the switching function
// can leave [0, 1].
const alphaCutoff = 0.45

// coincidentTol is the distance below which a point is treated as
// sitting on an atomic center.
const coincidentTol = 1e-12

// Partitioner computes Becke partition weights for a fixed set of
// atomic centers and covalent radii. It is immutable after
// construction and safe for concurrent use.
type Partitioner struct {
	centers []r3.Vec
	radii   []float64
	order   int
	dist    *mat.Dense
	alpha   *mat.Dense
}

type config struct {
	order int
}

// Option configures a Partitioner.
type Option func(*config)

// WithOrder sets how many times the smoothing polynomial
// f(mu) = 1.5*mu - 0.5*mu³ is applied to the cell boundary. Higher
// orders sharpen the transition between atomic cells. The default is 3.
func WithOrder(order int) Option {
	return func(c *config) { c.order = order }
}

// New creates a Partitioner for atoms at the given centers with the
// given covalent radii.
func New(centers []r3.Vec, radii []float64, opts ...Option) (*Partitioner, error) {
	if len(centers) == 0 {
		return nil, fmt.Errorf("becke: no atomic centers given")
	}
	if len(centers) != len(radii) {
		return nil, fmt.Errorf("becke: %d centers paired with %d radii", len(centers), len(radii))
	}
	c := config{order: 3}
	for _, opt := range opts {
		opt(&c)
	}
	if c.order < 1 {
		return nil, fmt.Errorf("becke: invalid smoothing order %d", c.order)
	}

	n := len(centers)
	b := &Partitioner{
		centers: centers,
		radii:   radii,
		order:   c.order,
		dist:    mat.NewDense(n, n, nil),
		alpha:   mat.NewDense(n, n, nil),
	}
	for i := 0; i < n; i++ {
		if radii[i] <= 0 {
			return nil, fmt.Errorf("becke: nonpositive covalent radius %g for atom %d", radii[i], i)
		}
		for j := i + 1; j < n; j++ {
			d := r3.Norm(r3.Sub(centers[i], centers[j]))
			if d < coincidentTol {
				return nil, fmt.Errorf("becke: atoms %d and %d have coincident centers", i, j)
			}
			b.dist.Set(i, j, d)
			b.dist.Set(j, i, d)

			// Bragg-Slater size adjustment: shift the cell boundary
			// toward the atom with the smaller covalent radius.
			u := (radii[i] - radii[j]) / (radii[i] + radii[j])
			a := u / (u*u - 1)
			a = math.Max(-alphaCutoff, math.Min(alphaCutoff, a))
			b.alpha.Set(i, j, a)
			b.alpha.Set(j, i, -a)
		}
	}
	return b, nil
}

// NumAtoms is the number of atomic centers being partitioned.
func (b *Partitioner) NumAtoms() int { return len(b.centers) }

// switching converts the elliptical coordinate mu of an atom pair to
// the pair's cell-switching value in [0, 1].
func (b *Partitioner) switching(mu, alpha float64) float64 {
	nu := mu + alpha*(1-mu*mu)
	for k := 0; k < b.order; k++ {
		nu = 1.5*nu - 0.5*nu*nu*nu
	}
	return 0.5 * (1 - nu)
}

// cells fills cells[i] with the unnormalized cell function of atom i
// at the given point, using d as a distance scratch buffer. A point on
// an atomic center receives that atom's cell alone; the pairwise
// formula is indeterminate there.
func (b *Partitioner) cells(point r3.Vec, d, cells []float64) {
	n := len(b.centers)
	for i := 0; i < n; i++ {
		d[i] = r3.Norm(r3.Sub(point, b.centers[i]))
	}
	for i := 0; i < n; i++ {
		if d[i] < coincidentTol {
			for j := 0; j < n; j++ {
				cells[j] = 0
			}
			cells[i] = 1
			return
		}
	}
	for i := 0; i < n; i++ {
		p := 1.0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			mu := (d[i] - d[j]) / b.dist.At(i, j)
			p *= b.switching(mu, b.alpha.At(i, j))
		}
		cells[i] = p
	}
}

// pointWeight returns the normalized weight of the given atom at point.
func (b *Partitioner) pointWeight(point r3.Vec, atom int, d, cells []float64) float64 {
	b.cells(point, d, cells)
	sum := 0.0
	for _, c := range cells {
		sum += c
	}
	if sum == 0 {
		// All cell products underflowed; fall back to the nearest atom.
		nearest := 0
		for i := 1; i < len(d); i++ {
			if d[i] < d[nearest] {
				nearest = i
			}
		}
		if nearest == atom {
			return 1
		}
		return 0
	}
	return cells[atom] / sum
}

// AtomWeights returns the partition weight of one atom at every given
// point. Summed over all atoms the weights equal one at each point.
func (b *Partitioner) AtomWeights(points []r3.Vec, atom int) ([]float64, error) {
	if atom < 0 || atom >= len(b.centers) {
		return nil, fmt.Errorf("becke: atom index %d out of range for %d atoms", atom, len(b.centers))
	}
	out := make([]float64, len(points))
	d := make([]float64, len(b.centers))
	cells := make([]float64, len(b.centers))
	for p, point := range points {
		out[p] = b.pointWeight(point, atom, d, cells)
	}
	return out, nil
}

// owners expands the contiguous atom partition described by indices
// into a per-point owning-atom array. indices must have one more entry
// than there are atoms, start at 0, end at len(points), and be
// monotonic.
func (b *Partitioner) owners(points []r3.Vec, indices []int) ([]int, error) {
	n := len(b.centers)
	if len(indices) != n+1 {
		return nil, fmt.Errorf("becke: %d partition boundaries for %d atoms, want %d", len(indices), n, n+1)
	}
	if indices[0] != 0 || indices[n] != len(points) {
		return nil, fmt.Errorf("becke: partition spans [%d, %d], want [0, %d]", indices[0], indices[n], len(points))
	}
	for i := 0; i < n; i++ {
		if indices[i+1] < indices[i] {
			return nil, fmt.Errorf("becke: partition boundaries must be monotonic")
		}
	}
	owners := make([]int, len(points))
	for i := 0; i < n; i++ {
		for p := indices[i]; p < indices[i+1]; p++ {
			owners[p] = i
		}
	}
	return owners, nil
}

// Weights returns, for every point, the partition weight of the atom
// that owns it according to the contiguous partition indices. This is
// the reference single-pass implementation; ChunkedWeights produces
// the same values.
func (b *Partitioner) Weights(points []r3.Vec, indices []int) ([]float64, error) {
	owners, err := b.owners(points, indices)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(points))
	d := make([]float64, len(b.centers))
	cells := make([]float64, len(b.centers))
	for p, point := range points {
		out[p] = b.pointWeight(point, owners[p], d, cells)
	}
	return out, nil
}

// DefaultChunkSize returns the number of points per chunk that keeps
// the working set of the pairwise computation roughly constant as the
// atom count grows. The formula is a tuning choice, not a contract.
func DefaultChunkSize(npoints, natoms int) int {
	c := 10 * npoints / (natoms * natoms)
	if c < 1 {
		c = 1
	}
	if c > npoints && npoints > 0 {
		c = npoints
	}
	return c
}

// ChunkedWeights computes the same owner weights as Weights, but
// processes points in chunks of at most chunkSize spread across
// worker goroutines. Results are written back in original point
// order. A chunkSize of zero or less selects DefaultChunkSize.
func (b *Partitioner) ChunkedWeights(points []r3.Vec, indices []int, chunkSize int) ([]float64, error) {
	owners, err := b.owners(points, indices)
	if err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize(len(points), len(b.centers))
	}
	log.WithFields(log.Fields{
		"points": len(points),
		"atoms":  len(b.centers),
		"chunk":  chunkSize,
	}).Debug("becke: partitioning points among atoms")

	out := make([]float64, len(points))
	nprocs := runtime.GOMAXPROCS(0)
	chunks := make(chan [2]int, nprocs*2)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for w := 0; w < nprocs; w++ {
		go func() {
			defer wg.Done()
			d := make([]float64, len(b.centers))
			cells := make([]float64, len(b.centers))
			for c := range chunks {
				for p := c[0]; p < c[1]; p++ {
					out[p] = b.pointWeight(points[p], owners[p], d, cells)
				}
			}
		}()
	}
	for begin := 0; begin < len(points); begin += chunkSize {
		end := begin + chunkSize
		if end > len(points) {
			end = len(points)
		}
		chunks <- [2]int{begin, end}
	}
	close(chunks)
	wg.Wait()
	return out, nil
}
