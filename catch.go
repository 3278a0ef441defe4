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
	"strings"

	"github.com/ctessum/sparse"
)

// CatchRecord is one row of a gridded fishery catch table.
type CatchRecord struct {
	// CellID identifies the grid cell the catch was reported in.
	CellID float64

	// Category is the catch category, e.g. "albacore" or "High".
	Category string

	// Partition is the spatial partition, e.g. an EEZ or reporting region code.
	Partition string

	// Catch is the non-negative catch mass.
	Catch float64
}

// CatchGridOptions configures how catch records are placed on a grid.
// The zero value uses a global 0.5° grid of 360 rows and 720 columns.
type CatchGridOptions struct {
	// CellIDGrid, if not nil, holds the identifier of every grid cell.
	// Records are placed in all cells whose identifier matches exactly.
	CellIDGrid *sparse.DenseArray

	// CellX and CellY are the number of columns and rows of the grid
	// when CellIDGrid is nil. Zero means 720 and 360.
	CellX, CellY int

	// Lats and Lons are the cell centers of the output raster. If nil,
	// a global grid matching the grid shape is used.
	Lats, Lons []float64
}

func (o *CatchGridOptions) shape() (ny, nx int) {
	if o.CellIDGrid != nil {
		return o.CellIDGrid.Shape[0], o.CellIDGrid.Shape[1]
	}
	ny, nx = o.CellY, o.CellX
	if ny == 0 {
		ny = 360
	}
	if nx == 0 {
		nx = 720
	}
	return ny, nx
}

func (o *CatchGridOptions) raster() (*GridRaster, error) {
	ny, nx := o.shape()
	lats, lons := o.Lats, o.Lons
	if lats == nil || lons == nil {
		lats, lons = GlobalGrid(ny, nx)
	}
	if len(lats) != ny || len(lons) != nx {
		return nil, fmt.Errorf("hgfish: catch grid has %d rows and %d columns but %d lats and %d lons were given",
			ny, nx, len(lats), len(lons))
	}
	return NewGridRaster(lats, lons), nil
}

// sameCategory returns whether a catch table label refers to category c,
// which must be canonical.
func sameCategory(label, c string) bool {
	if label == c {
		return true
	}
	l := strings.ToLower(strings.TrimSpace(label))
	if s, ok := synonyms[l]; ok {
		return s == c
	}
	return l == strings.ToLower(c)
}

// GridSpeciesCatch returns a raster of the total catch of the given category
// in the given partition. Unless opts.CellIDGrid is set, record cell
// identifiers are taken as row-major indices into the grid, offset by one.
// The result is rotated one column to the west to correct for the half-cell
// longitude offset of the cell identifier convention. A partition with no
// catch of the category gives an all-zero raster.
func GridSpeciesCatch(category string, records []CatchRecord, partition string, opts *CatchGridOptions) (*GridRaster, error) {
	if opts == nil {
		opts = new(CatchGridOptions)
	}
	c, err := CanonicalName(category)
	if err != nil {
		c = category
	}
	g, err := opts.raster()
	if err != nil {
		return nil, err
	}
	ny, nx := g.Ny(), g.Nx()

	var idCells map[float64][]int
	if opts.CellIDGrid != nil {
		idCells = make(map[float64][]int)
		for i, id := range opts.CellIDGrid.Elements {
			idCells[id] = append(idCells[id], i)
		}
	}

	for _, r := range records {
		if r.Partition != partition || !sameCategory(r.Category, c) {
			continue
		}
		if r.Catch < 0 {
			return nil, fmt.Errorf("hgfish: negative catch %g in cell %g", r.Catch, r.CellID)
		}
		if idCells != nil {
			for _, i := range idCells[r.CellID] {
				g.Data.Elements[i] = r.Catch
			}
			continue
		}
		i := int(r.CellID) + 1
		if i < 0 || i >= ny*nx {
			return nil, fmt.Errorf("hgfish: catch cell id %g is outside of the %d×%d grid", r.CellID, ny, nx)
		}
		g.Data.Elements[i] = r.Catch
	}
	return ShiftLon(g, 1), nil
}

// ShiftLon returns a copy of g with its data rotated n columns to the west,
// so that column i of the result holds column (i+n) mod nx of g. The cell
// centers are unchanged.
func ShiftLon(g *GridRaster, n int) *GridRaster {
	o := NewGridRaster(g.Lats, g.Lons)
	ny, nx := g.Ny(), g.Nx()
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			o.Set(g.Get(j, wrap(i+n, nx)), j, i)
		}
	}
	return o
}
