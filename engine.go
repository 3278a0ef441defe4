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
	"math"
	"strings"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// mehgFraction is the fraction of total Hg in fish tissue that is assumed
// to be methylmercury, applied to the empirical bounds of named species.
const mehgFraction = 0.95

// Estimate holds the tissue Hg estimate for one species on a grid, in
// mg/kg wet weight. Low <= Mid <= High wherever all three are finite.
// Cells without catch carry no meaningful estimate.
type Estimate struct {
	Species        string
	Mid, Low, High *GridRaster
}

func checkShape(name string, a, b *sparse.DenseArray) error {
	if len(a.Shape) != len(b.Shape) {
		return &ShapeMismatchError{Species: name, Want: a.Shape, Got: b.Shape}
	}
	for i := range a.Shape {
		if a.Shape[i] != b.Shape[i] {
			return &ShapeMismatchError{Species: name, Want: a.Shape, Got: b.Shape}
		}
	}
	return nil
}

// CatchWeightedMean returns sum(x*catch)/sum(catch), ignoring NaN values in
// each sum separately.
func CatchWeightedMean(x, catch *sparse.DenseArray) (float64, error) {
	if err := checkShape("", x, catch); err != nil {
		return math.NaN(), err
	}
	prod := make([]float64, len(x.Elements))
	floats.MulTo(prod, x.Elements, catch.Elements)
	return nanSum(prod) / nanSum(catch.Elements), nil
}

// CalcScaling returns hg divided by its catch-weighted mean, so that the
// catch-weighted mean of the result is 1.
func CalcScaling(hg, catch *sparse.DenseArray) (*sparse.DenseArray, error) {
	cwm, err := CatchWeightedMean(hg, catch)
	if err != nil {
		return nil, err
	}
	if cwm == 0 || math.IsNaN(cwm) || math.IsInf(cwm, 0) {
		return nil, &DegenerateInputError{}
	}
	return hg.ScaleCopy(1 / cwm), nil
}

// CatchLimits returns the minimum and maximum of hg over the cells where
// both catch and hg are positive. It returns a *DegenerateInputError if
// there are no such cells.
func CatchLimits(hg, catch *sparse.DenseArray) (lo, hi float64, err error) {
	if err := checkShape("", hg, catch); err != nil {
		return math.NaN(), math.NaN(), err
	}
	var where []float64
	for i, h := range hg.Elements {
		if catch.Elements[i] > 0 && h > 0 {
			where = append(where, h)
		}
	}
	if len(where) == 0 {
		return math.NaN(), math.NaN(), &DegenerateInputError{}
	}
	return floats.Min(where), floats.Max(where), nil
}

// rasterFor returns the raster in m for the canonical category name c,
// trying the short name and case variants as well.
func rasterFor(m map[string]*GridRaster, c string) (*GridRaster, bool) {
	if r, ok := m[c]; ok {
		return r, true
	}
	if r, ok := m[ShortName(c)]; ok {
		return r, true
	}
	for k, r := range m {
		if strings.EqualFold(k, c) {
			return r, true
		}
	}
	return nil, false
}

// MapHgForFish maps tissue Hg for one species from the seawater Hg raster
// and the catch raster stored for it in seawater and catch. The seawater
// pattern is stretched so that its maximum over fished cells spans the
// empirical range, normalized to a catch-weighted mean of 1 and multiplied
// by the empirical mean. For named species the empirical range is reduced to
// its methylmercury fraction. NaN values in the inputs propagate to the
// output.
func MapHgForFish(species string, seawater, catch map[string]*GridRaster, stats *StatsTable) (*Estimate, error) {
	name, err := stats.resolve(species)
	if err != nil {
		return nil, err
	}
	s := stats.entries[name]
	fmin, fmax := s.Min, s.Max
	if !IsTier(name) {
		fmin, fmax = fmin*mehgFraction, fmax*mehgFraction
	}

	sw, ok := rasterFor(seawater, name)
	if !ok {
		return nil, fmt.Errorf("hgfish: no seawater Hg raster for %s", name)
	}
	c, ok := rasterFor(catch, name)
	if !ok {
		return nil, fmt.Errorf("hgfish: no catch raster for %s", name)
	}
	if err := checkShape(name, sw.Data, c.Data); err != nil {
		return nil, err
	}

	_, mmax, err := CatchLimits(sw.Data, c.Data)
	if err != nil {
		return nil, &DegenerateInputError{Species: name}
	}

	// The spatial maximum alone sets the stretch; the spatial minimum
	// is not subtracted.
	prescaled := sparse.ZerosDense(sw.Data.Shape...)
	for i, v := range sw.Data.Elements {
		prescaled.Elements[i] = v*(fmax-fmin)/mmax + fmin
	}

	scaling, err := CalcScaling(prescaled, c.Data)
	if err != nil {
		return nil, &DegenerateInputError{Species: name}
	}

	scaleLow, scaleHigh, err := stats.Scales(name)
	if err != nil {
		return nil, err
	}
	mid := scaling.ScaleCopy(s.Mean)
	return &Estimate{
		Species: name,
		Mid:     &GridRaster{Data: mid, Lats: sw.Lats, Lons: sw.Lons},
		Low:     &GridRaster{Data: mid.ScaleCopy(scaleLow), Lats: sw.Lats, Lons: sw.Lons},
		High:    &GridRaster{Data: mid.ScaleCopy(scaleHigh), Lats: sw.Lats, Lons: sw.Lons},
	}, nil
}

// Summary holds catch-weighted statistics of an estimate over the cells
// with positive catch.
type Summary struct {
	Species string

	// Mean is the catch-weighted mean of the mid estimate.
	Mean float64

	// Min and Max are the extremes of the low and high estimates.
	Min, Max float64

	// Cells is the number of cells with catch and a finite estimate.
	Cells int

	// TotalCatch is the catch summed over those cells.
	TotalCatch float64
}

// Summarize returns catch-weighted statistics of e.
func Summarize(e *Estimate, catch *GridRaster) (*Summary, error) {
	if err := checkShape(e.Species, e.Mid.Data, catch.Data); err != nil {
		return nil, err
	}
	var mid, low, high, w []float64
	for i, m := range e.Mid.Data.Elements {
		c := catch.Data.Elements[i]
		if c > 0 && !math.IsNaN(m) {
			mid = append(mid, m)
			low = append(low, e.Low.Data.Elements[i])
			high = append(high, e.High.Data.Elements[i])
			w = append(w, c)
		}
	}
	if len(mid) == 0 {
		return nil, &DegenerateInputError{Species: e.Species}
	}
	return &Summary{
		Species:    e.Species,
		Mean:       stat.Mean(mid, w),
		Min:        floats.Min(low),
		Max:        floats.Max(high),
		Cells:      len(mid),
		TotalCatch: floats.Sum(w),
	}, nil
}
