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
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// writeTestSeawater writes a seawater file with a leading depth dimension,
// decreasing latitudes and one fill value.
func writeTestSeawater(t *testing.T, path string) {
	h := cdf.NewHeader([]string{"depth", "lat", "lon"}, []int{1, 2, 3})
	h.AddVariable("lat", []string{"lat"}, []float64{0})
	h.AddVariable("lon", []string{"lon"}, []float64{0})
	h.AddVariable("MeHg_0-1000m", []string{"depth", "lat", "lon"}, []float32{0})
	h.Define()
	ff, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	f, err := cdf.Create(ff, h)
	if err != nil {
		t.Fatal(err)
	}
	data := sparse.ZerosDense(1, 2, 3)
	copy(data.Elements, []float64{4, 5, 6, 1, math.NaN(), 3})
	for v, d := range map[string]interface{}{
		"lat":          []float64{1.5, 0.5},
		"lon":          []float64{0.5, 1.5, 2.5},
		"MeHg_0-1000m": data,
	} {
		if err := writeNCF(f, v, d); err != nil {
			t.Fatal(err)
		}
	}
}

func TestReadSeawaterNCF(t *testing.T) {
	dir, err := ioutil.TempDir("", "hgfish")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "seawater.nc")
	writeTestSeawater(t, path)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := ReadSeawaterNCF(f, "MeHg_0-1000m")
	if err != nil {
		t.Fatal(err)
	}
	if g.Ny() != 2 || g.Nx() != 3 {
		t.Fatalf("shape: want [2 3] but have %v", g.Data.Shape)
	}
	if g.Lats[0] != 0.5 || g.Lats[1] != 1.5 {
		t.Errorf("lats should be increasing but are %v", g.Lats)
	}
	want := []float64{1, math.NaN(), 3, 4, 5, 6}
	for i, w := range want {
		have := g.Data.Elements[i]
		if math.IsNaN(w) != math.IsNaN(have) || (!math.IsNaN(w) && have != w) {
			t.Errorf("element %d: want %g but have %g", i, w, have)
		}
	}
	if err := g.Validate(); err != nil {
		t.Error(err)
	}
	if _, err := ReadSeawaterNCF(f, "MeHg_0-50m"); err == nil {
		t.Error("expected an error for a missing variable")
	}

	t.Run("open", func(t *testing.T) {
		sw, err := OpenSeawater(path, "MeHg_[DEPTH]", []string{"High", "Medium"})
		if err != nil {
			t.Fatal(err)
		}
		if sw["High"] != sw["Medium"] {
			t.Error("categories with the same depth range should share a raster")
		}
	})
}

func TestSeawaterVariable(t *testing.T) {
	v, err := SeawaterVariable("MeHg_[DEPTH]_[SPECIES]", "Albacore tuna")
	if err != nil {
		t.Fatal(err)
	}
	if v != "MeHg_0-600m_albacore" {
		t.Errorf("want MeHg_0-600m_albacore but have %s", v)
	}
	if _, err := SeawaterVariable("MeHg_[DEPTH]", "Cod"); err == nil {
		t.Error("expected an error for an unknown category")
	}
}

func TestWriteEstimateNCF(t *testing.T) {
	sw, catch := highInputs(t)
	sw.Set(math.NaN(), 0, 1)
	e, err := MapHgForFish("High",
		map[string]*GridRaster{"High": sw},
		map[string]*GridRaster{"High": catch}, DefaultStatsTable())
	if err != nil {
		t.Fatal(err)
	}

	dir, err := ioutil.TempDir("", "hgfish")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	w, err := os.Create(filepath.Join(dir, "out.nc"))
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteEstimateNCF(w, e); err != nil {
		t.Fatal(err)
	}

	f, err := cdf.Open(w)
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]*GridRaster{"High_mid": e.Mid, "High_low": e.Low, "High_high": e.High} {
		have, dims, err := readNCFVar(f, name)
		if err != nil {
			t.Fatal(err)
		}
		if len(dims) != 2 || dims[0] != 2 || dims[1] != 2 {
			t.Errorf("%s: want shape [2 2] but have %v", name, dims)
		}
		for i, v := range want.Data.Elements {
			if math.IsNaN(v) {
				if have[i] < fillThreshold {
					t.Errorf("%s %d: want fill value but have %g", name, i, have[i])
				}
				continue
			}
			if different(have[i], v, 1e-6) {
				t.Errorf("%s %d: want %g but have %g", name, i, v, have[i])
			}
		}
	}
	lats, _, err := readNCFVar(f, "lat")
	if err != nil {
		t.Fatal(err)
	}
	if lats[0] != sw.Lats[0] || lats[1] != sw.Lats[1] {
		t.Errorf("lats: want %v but have %v", sw.Lats, lats)
	}
	w.Close()

	if err := WriteEstimateNCF(w); err == nil {
		t.Error("expected an error with no estimates")
	}
}
