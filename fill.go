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
	"math"

	"github.com/ctessum/sparse"
)

// FillInZeros returns a copy of a region mask where every cell with a value
// below threshold has been filled from its neighbors. Cells are visited in
// row-major order and filled cells are visible to later ones. With a the
// left neighbor and b the neighbor above, the cell takes a if a == b, b if b
// is positive, and a otherwise. Neighbors of the first row and column wrap
// around to the last row and column.
func FillInZeros(mask *sparse.DenseArray, threshold float64) *sparse.DenseArray {
	o := mask.Copy()
	ny, nx := o.Shape[0], o.Shape[1]
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			if !(o.Get(j, i) < threshold) {
				continue
			}
			a := o.Get(j, wrap(i-1, nx))
			b := o.Get(wrap(j-1, ny), i)
			switch {
			case a == b:
				o.Set(a, j, i)
			case b > 0:
				o.Set(b, j, i)
			default:
				o.Set(a, j, i)
			}
		}
	}
	return o
}

// FillNearest returns a copy of g where each NaN cell that is not on the
// border of the grid is replaced by the mean of the non-NaN values in the
// surrounding 3×3 block. Border cells are never filled.
func FillNearest(g *GridRaster) *GridRaster {
	o := g.Copy()
	ny, nx := g.Ny(), g.Nx()
	for j := 1; j < ny-1; j++ {
		for i := 1; i < nx-1; i++ {
			if !math.IsNaN(g.Get(j, i)) {
				continue
			}
			block := make([]float64, 0, 9)
			for jj := j - 1; jj <= j+1; jj++ {
				for ii := i - 1; ii <= i+1; ii++ {
					block = append(block, g.Get(jj, ii))
				}
			}
			o.Set(nanMean(block), j, i)
		}
	}
	return o
}
