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

// Package hgfish estimates spatially resolved mercury concentrations in fish
// tissue from gridded seawater mercury, gridded fishery catch and empirical
// tissue mercury statistics.
package hgfish

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// Version gives the version number.
const Version = "0.3.0"

// GridRaster is a two dimensional field on a regular latitude-longitude grid.
// Data has shape [len(Lats), len(Lons)] and NaN marks cells with no data.
// Lats and Lons hold cell centers in degrees and must be increasing and
// evenly spaced.
type GridRaster struct {
	Data       *sparse.DenseArray
	Lats, Lons []float64
}

// NewGridRaster returns an all-zero raster with the given cell centers.
func NewGridRaster(lats, lons []float64) *GridRaster {
	return &GridRaster{
		Data: sparse.ZerosDense(len(lats), len(lons)),
		Lats: append([]float64(nil), lats...),
		Lons: append([]float64(nil), lons...),
	}
}

// RasterFromData wraps data in a raster after checking that its shape matches
// the given centers.
func RasterFromData(data *sparse.DenseArray, lats, lons []float64) (*GridRaster, error) {
	if len(data.Shape) != 2 || data.Shape[0] != len(lats) || data.Shape[1] != len(lons) {
		return nil, fmt.Errorf("hgfish: raster data shape %v does not match %d lats and %d lons",
			data.Shape, len(lats), len(lons))
	}
	return &GridRaster{
		Data: data,
		Lats: append([]float64(nil), lats...),
		Lons: append([]float64(nil), lons...),
	}, nil
}

// GlobalGrid returns the cell centers of a global grid with ny rows and nx
// columns, starting at (-90, -180).
func GlobalGrid(ny, nx int) (lats, lons []float64) {
	return centers(-90, 180/float64(ny), ny), centers(-180, 360/float64(nx), nx)
}

// centers returns n cell centers of width d starting at edge x0.
func centers(x0, d float64, n int) []float64 {
	o := make([]float64, n)
	for i := range o {
		o[i] = x0 + d/2 + d*float64(i)
	}
	return o
}

// Ny returns the number of rows.
func (g *GridRaster) Ny() int { return g.Data.Shape[0] }

// Nx returns the number of columns.
func (g *GridRaster) Nx() int { return g.Data.Shape[1] }

// Get returns the value at row j, column i.
func (g *GridRaster) Get(j, i int) float64 { return g.Data.Elements[j*g.Nx()+i] }

// Set sets the value at row j, column i.
func (g *GridRaster) Set(v float64, j, i int) { g.Data.Elements[j*g.Nx()+i] = v }

// Copy returns a deep copy of g.
func (g *GridRaster) Copy() *GridRaster {
	return &GridRaster{
		Data: g.Data.Copy(),
		Lats: append([]float64(nil), g.Lats...),
		Lons: append([]float64(nil), g.Lons...),
	}
}

// SameShape returns whether g and o have the same number of rows and columns.
func (g *GridRaster) SameShape(o *GridRaster) bool {
	return g.Ny() == o.Ny() && g.Nx() == o.Nx()
}

// Spacing returns the latitude and longitude cell size, inferred from the
// first two centers along each axis.
func (g *GridRaster) Spacing() (dlat, dlon float64, err error) {
	if len(g.Lats) < 2 || len(g.Lons) < 2 {
		return math.NaN(), math.NaN(), fmt.Errorf("hgfish: need at least 2 lats and 2 lons to determine grid spacing; have %d and %d",
			len(g.Lats), len(g.Lons))
	}
	return g.Lats[1] - g.Lats[0], g.Lons[1] - g.Lons[0], nil
}

// Areas returns the area of each grid cell in m².
func (g *GridRaster) Areas() (*sparse.DenseArray, error) {
	return GridboxAreas(g.Lats, g.Lons)
}

// Sum returns the sum of all non-NaN values.
func (g *GridRaster) Sum() float64 { return nanSum(g.Data.Elements) }

// Validate checks the raster invariants: matching shape and increasing,
// evenly spaced centers.
func (g *GridRaster) Validate() error {
	if g.Data == nil || len(g.Data.Shape) != 2 {
		return fmt.Errorf("hgfish: raster must be two dimensional")
	}
	if g.Ny() != len(g.Lats) || g.Nx() != len(g.Lons) {
		return fmt.Errorf("hgfish: raster shape %v does not match %d lats and %d lons",
			g.Data.Shape, len(g.Lats), len(g.Lons))
	}
	for name, c := range map[string][]float64{"latitude": g.Lats, "longitude": g.Lons} {
		if len(c) < 2 {
			continue
		}
		d := c[1] - c[0]
		if !(d > 0) {
			return fmt.Errorf("hgfish: %s centers must be increasing", name)
		}
		for i := 2; i < len(c); i++ {
			if math.Abs(c[i]-c[i-1]-d) > 1e-6*d {
				return fmt.Errorf("hgfish: %s centers are not evenly spaced at index %d", name, i)
			}
		}
	}
	return nil
}

// wrap returns i modulo n in the range [0, n).
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
