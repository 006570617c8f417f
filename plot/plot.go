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

/*Package plot renders radial profiles of reconstructed fields.*/
package plot

import (
	"fmt"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/thomaspigeon/grid/interpolate"
)

// XYs implements the gonum.org/v1/plot/plotter.XYer interface.
type XYs []XY

// XY is an x and y value.
type XY struct{ X, Y float64 }

// Len returns the number of X,Y pairs.
func (xys XYs) Len() int {
	return len(xys)
}

// XY return the x and y values at index i, where i < Len()
func (xys XYs) XY(i int) (float64, float64) {
	return xys[i].X, xys[i].Y
}

// CoefficientProfile samples the radial spline of one (l, m)
// expansion coefficient at n evenly spaced radii across the spline
// set's radial range.
func CoefficientProfile(s *interpolate.SplineSet, l, m, n int) (XYs, error) {
	if n < 2 {
		return nil, fmt.Errorf("plot: need at least 2 samples, got %d", n)
	}
	radii := s.Radii()
	rmin, rmax := radii[0], radii[len(radii)-1]
	xys := make(XYs, n)
	for i := 0; i < n; i++ {
		r := rmin + (rmax-rmin)*float64(i)/float64(n-1)
		c, err := s.Coefficient(l, m, r, 0)
		if err != nil {
			return nil, err
		}
		xys[i] = XY{X: r, Y: c}
	}
	return xys, nil
}

// SaveProfile renders an x-y profile as a line chart and writes it to
// path; the image format follows the file extension.
func SaveProfile(xys XYs, title, xlabel, ylabel, path string) error {
	p := gplot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("plot: building line for %q: %v", title, err)
	}
	p.Add(line)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
