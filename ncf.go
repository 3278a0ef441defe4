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
	"os"
	"sort"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// fillThreshold is the magnitude above which seawater values are treated as
// fill values.
const fillThreshold = 1e20

// readNCFVar reads variable v out of f as float64 values, along with its
// dimension lengths.
func readNCFVar(f *cdf.File, v string) ([]float64, []int, error) {
	dims := f.Header.Lengths(v)
	if len(dims) == 0 {
		return nil, nil, fmt.Errorf("hgfish: read netcdf: variable %s not in file", v)
	}
	r := f.Reader(v, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, nil, fmt.Errorf("hgfish: read netcdf variable %s: %v", v, err)
	}
	var o []float64
	switch t := buf.(type) {
	case []float32:
		o = make([]float64, len(t))
		for i, val := range t {
			o[i] = float64(val)
		}
	case []float64:
		o = t
	case []int32:
		o = make([]float64, len(t))
		for i, val := range t {
			o[i] = float64(val)
		}
	default:
		return nil, nil, fmt.Errorf("hgfish: read netcdf variable %s: unsupported type %T", v, buf)
	}
	return o, dims, nil
}

// readCoordinate reads the first of names that is present in f.
func readCoordinate(f *cdf.File, names ...string) ([]float64, error) {
	for _, n := range names {
		if len(f.Header.Lengths(n)) == 1 {
			c, _, err := readNCFVar(f, n)
			return c, err
		}
	}
	return nil, fmt.Errorf("hgfish: read netcdf: no coordinate variable named any of %v", names)
}

// ReadSeawaterNCF reads a seawater Hg field from variable v of a netCDF
// file. The file must contain one dimensional "lat" and "lon" (or
// "latitude" and "longitude") coordinate variables. Leading dimensions of
// length 1 are dropped, and values with magnitude at or above 1e20 are
// read as NaN. Rows are reordered if latitudes are decreasing.
func ReadSeawaterNCF(r cdf.ReaderWriterAt, v string) (*GridRaster, error) {
	f, err := cdf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("hgfish: opening seawater netcdf: %v", err)
	}
	lats, err := readCoordinate(f, "lat", "latitude")
	if err != nil {
		return nil, err
	}
	lons, err := readCoordinate(f, "lon", "longitude")
	if err != nil {
		return nil, err
	}
	vals, dims, err := readNCFVar(f, v)
	if err != nil {
		return nil, err
	}
	for len(dims) > 2 && dims[0] == 1 {
		dims = dims[1:]
	}
	if len(dims) != 2 || dims[0] != len(lats) || dims[1] != len(lons) {
		return nil, fmt.Errorf("hgfish: seawater variable %s has shape %v but there are %d lats and %d lons",
			v, dims, len(lats), len(lons))
	}
	data := sparse.ZerosDense(dims...)
	for i, val := range vals {
		if math.Abs(val) >= fillThreshold {
			val = math.NaN()
		}
		data.Elements[i] = val
	}
	if len(lats) > 1 && lats[1] < lats[0] {
		flipRows(data, lats)
	}
	return RasterFromData(data, lats, lons)
}

// flipRows reverses the row order of data and lats in place.
func flipRows(data *sparse.DenseArray, lats []float64) {
	ny, nx := data.Shape[0], data.Shape[1]
	for j := 0; j < ny/2; j++ {
		k := ny - 1 - j
		lats[j], lats[k] = lats[k], lats[j]
		for i := 0; i < nx; i++ {
			a, b := j*nx+i, k*nx+i
			data.Elements[a], data.Elements[b] = data.Elements[b], data.Elements[a]
		}
	}
}

// SeawaterVariable returns the name of the seawater variable for category
// by replacing "[DEPTH]" in template with the category's depth range and
// "[SPECIES]" with its short name.
func SeawaterVariable(template, category string) (string, error) {
	c, err := CanonicalName(category)
	if err != nil {
		return "", err
	}
	d, _ := DepthRange(c)
	return strings.NewReplacer("[DEPTH]", d, "[SPECIES]", ShortName(c)).Replace(template), nil
}

// OpenSeawater reads the seawater fields for the given categories from
// the netCDF file at path.
func OpenSeawater(path, template string, categories []string) (map[string]*GridRaster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hgfish: opening seawater file: %v", err)
	}
	defer f.Close()
	o := make(map[string]*GridRaster, len(categories))
	cache := make(map[string]*GridRaster)
	for _, c := range categories {
		v, err := SeawaterVariable(template, c)
		if err != nil {
			return nil, err
		}
		if g, ok := cache[v]; ok {
			o[c] = g
			continue
		}
		g, err := ReadSeawaterNCF(f, v)
		if err != nil {
			return nil, err
		}
		cache[v] = g
		o[c] = g
	}
	return o, nil
}

// WriteEstimateNCF writes estimates to w in netCDF format, with one
// variable per species and bound named like "High_mid". All estimates
// must share the grid of the first one. NaN values are written as the
// 1e20 fill value.
func WriteEstimateNCF(w *os.File, estimates ...*Estimate) error {
	if len(estimates) == 0 {
		return fmt.Errorf("hgfish: no estimates to write")
	}
	estimates = append([]*Estimate(nil), estimates...)
	sort.Slice(estimates, func(i, j int) bool { return estimates[i].Species < estimates[j].Species })
	g := estimates[0].Mid
	h := cdf.NewHeader([]string{"lat", "lon"}, []int{g.Ny(), g.Nx()})
	h.AddAttribute("", "comment", "Fish tissue methylmercury estimates")
	h.AddAttribute("", "version", Version)
	h.AddVariable("lat", []string{"lat"}, []float64{0})
	h.AddAttribute("lat", "units", "degrees_north")
	h.AddVariable("lon", []string{"lon"}, []float64{0})
	h.AddAttribute("lon", "units", "degrees_east")
	vars := make(map[string]*sparse.DenseArray)
	var names []string
	for _, e := range estimates {
		for _, b := range []struct {
			suffix string
			r      *GridRaster
		}{{"mid", e.Mid}, {"low", e.Low}, {"high", e.High}} {
			if !b.r.SameShape(g) {
				return &ShapeMismatchError{Species: e.Species, Want: g.Data.Shape, Got: b.r.Data.Shape}
			}
			name := fieldName(e.Species) + "_" + b.suffix
			h.AddVariable(name, []string{"lat", "lon"}, []float32{0})
			h.AddAttribute(name, "units", "mg/kg")
			h.AddAttribute(name, "_FillValue", []float32{fillThreshold})
			vars[name] = b.r.Data
			names = append(names, name)
		}
	}
	h.Define()
	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("hgfish: creating estimate netcdf: %v", err)
	}
	if err := writeNCF(f, "lat", g.Lats); err != nil {
		return err
	}
	if err := writeNCF(f, "lon", g.Lons); err != nil {
		return err
	}
	for _, n := range names {
		if err := writeNCF(f, n, vars[n]); err != nil {
			return err
		}
	}
	return cdf.UpdateNumRecs(w)
}

// writeNCF writes data to variable v of f. Array data is written as
// float32 with NaN replaced by the fill value.
func writeNCF(f *cdf.File, v string, data interface{}) error {
	var buf interface{}
	switch t := data.(type) {
	case []float64:
		buf = t
	case *sparse.DenseArray:
		d32 := make([]float32, len(t.Elements))
		for i, e := range t.Elements {
			if math.IsNaN(e) {
				d32[i] = fillThreshold
			} else {
				d32[i] = float32(e)
			}
		}
		buf = d32
	}
	end := f.Header.Lengths(v)
	start := make([]int, len(end))
	if _, err := f.Writer(v, start, end).Write(buf); err != nil {
		return fmt.Errorf("hgfish: writing netcdf variable %s: %v", v, err)
	}
	return nil
}
