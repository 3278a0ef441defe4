/*
Copyright © 2019 the hgfish authors.
This file is part of hgfish.

hgfish is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

hgfish is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with hgfish.  If not, see <http://www.gnu.org/licenses/>.
*/

package hgfish

import (
	"fmt"

	"github.com/ctessum/sparse"
)

// Quantity specifies how a field behaves when grid cells are split or merged.
type Quantity int

const (
	// Extensive quantities, such as total catch, are divided among
	// sub-cells and summed when cells are merged.
	Extensive Quantity = iota

	// Intensive quantities, such as concentrations, are copied into
	// sub-cells and averaged when cells are merged.
	Intensive

	// Categorical quantities, such as region indices, are copied into
	// sub-cells and subsampled when cells are merged.
	Categorical
)

func (q Quantity) String() string {
	switch q {
	case Extensive:
		return "extensive"
	case Intensive:
		return "intensive"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
}

// downIndex returns the source index for index k of an axis that has been
// refined by a factor of two. Source cell i fills fine cells 2i-1 and 2i, so
// fine cell 0 is the upper half of source cell 0 and the last fine cell
// wraps around to its lower half.
func downIndex(k, n int) int { return wrap((k+1)/2, n) }

// RegridDown returns a copy of g at twice the resolution along both axes.
// Extensive values are divided by four so that the total is conserved;
// other values are copied into each sub-cell.
func RegridDown(g *GridRaster, q Quantity) (*GridRaster, error) {
	dlat, dlon, err := g.Spacing()
	if err != nil {
		return nil, fmt.Errorf("hgfish: regridding down: %v", err)
	}
	ny, nx := g.Ny(), g.Nx()
	a := 1.
	if q == Extensive {
		a = 4
	}
	o := &GridRaster{
		Data: sparse.ZerosDense(ny*2, nx*2),
		Lats: centers(g.Lats[0], dlat/2, ny*2),
		Lons: centers(g.Lons[0], dlon/2, nx*2),
	}
	for j := 0; j < ny*2; j++ {
		jj := downIndex(j, ny)
		for i := 0; i < nx*2; i++ {
			o.Set(g.Get(jj, downIndex(i, nx))/a, j, i)
		}
	}
	return o, nil
}

// lon25Index returns the source column for intermediate column k after each
// source column has been replicated five times. Each source column is
// centered on its replicas, so the first two replicas of column 0 wrap
// around to the end of the row.
func lon25Index(k, n int) int { return wrap((k+2)/5, n) }

// RegridLon25To2 rescales the longitude axis of g by 5:4, for example from
// 0.25° to 0.2° spacing. Every column is first replicated five times
// (divided by five for extensive quantities), then groups of four
// replicas are merged into each output column: summed for extensive
// quantities, averaged for intensive quantities, and subsampled for
// categorical ones. The number of columns in g must be a multiple of 4.
func RegridLon25To2(g *GridRaster, q Quantity) (*GridRaster, error) {
	_, dlon, err := g.Spacing()
	if err != nil {
		return nil, fmt.Errorf("hgfish: regridding longitude: %v", err)
	}
	ny, nx := g.Ny(), g.Nx()
	if nx%4 != 0 {
		return nil, fmt.Errorf("hgfish: regridding longitude: number of columns (%d) must be a multiple of 4", nx)
	}
	a := 1.
	if q == Extensive {
		a = 5
	}
	nFine := nx * 5
	nOut := nFine / 4
	o := &GridRaster{
		Data: sparse.ZerosDense(ny, nOut),
		Lats: append([]float64(nil), g.Lats...),
		Lons: make([]float64, nOut),
	}
	// Output column i merges replicas 4i-3 through 4i, and replica k is
	// centered at Lons[0]+k*dlon/5.
	for i := range o.Lons {
		o.Lons[i] = g.Lons[0] + (4*float64(i)-1.5)*dlon/5
	}
	fine := make([]float64, nFine)
	for j := 0; j < ny; j++ {
		for k := range fine {
			fine[k] = g.Get(j, lon25Index(k, nx)) / a
		}
		for i := 0; i < nOut; i++ {
			first := 4*i - 3
			var v float64
			switch {
			case q > Intensive:
				v = fine[wrap(first, nFine)]
			default:
				for t := 0; t < 4; t++ {
					v += fine[wrap(first+t, nFine)]
				}
				if q == Intensive {
					v /= 4
				}
			}
			o.Set(v, j, i)
		}
	}
	return o, nil
}
