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
	"strings"
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
)

func TestNewOutputter(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		o, err := NewOutputter("out.shp", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(o.order) != len(DefaultOutputVariables) {
			t.Errorf("want %d variables but have %d", len(DefaultOutputVariables), len(o.order))
		}
	})
	t.Run("order", func(t *testing.T) {
		o, err := NewOutputter("out.shp", map[string]string{
			"A": "B * 2",
			"B": "C + 1",
			"C": "mid",
		}, nil)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"C", "B", "A"}
		for i, w := range want {
			if o.order[i] != w {
				t.Errorf("order: want %v but have %v", want, o.order)
				break
			}
		}
	})
	for name, vars := range map[string]map[string]string{
		"long name":  {"MuchTooLongName": "mid"},
		"bad char":   {"Mid-Hg": "mid"},
		"undefined":  {"X": "mercury"},
		"cycle":      {"A": "B", "B": "A"},
		"bad syntax": {"A": "mid *"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := NewOutputter("out.shp", vars, nil); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestResults(t *testing.T) {
	sw, catch := highInputs(t)
	e, err := MapHgForFish("High",
		map[string]*GridRaster{"High": sw},
		map[string]*GridRaster{"High": catch}, DefaultStatsTable())
	if err != nil {
		t.Fatal(err)
	}
	double := func(args ...interface{}) (interface{}, error) { return args[0].(float64) * 2, nil }
	o, err := NewOutputter("out.shp", map[string]string{
		"Mid":    "mid",
		"Range":  "high - low",
		"MeHg":   "mehg(Mid)",
		"Twice":  "double(Mid)",
		"Load":   "mid * catch",
		"Area":   "area / 1000000",
		"LogMid": "log(mid)",
		"Sw":     "seawater",
	}, map[string]govaluate.ExpressionFunction{"double": double})
	if err != nil {
		t.Fatal(err)
	}
	r, err := o.Results(e, catch, sw)
	if err != nil {
		t.Fatal(err)
	}
	area, err := e.Mid.Areas()
	if err != nil {
		t.Fatal(err)
	}
	for i, m := range e.Mid.Data.Elements {
		checks := map[string]float64{
			"Mid":    m,
			"Range":  e.High.Data.Elements[i] - e.Low.Data.Elements[i],
			"MeHg":   m * 0.95,
			"Twice":  2 * m,
			"Load":   m * catch.Data.Elements[i],
			"LogMid": math.Log(m),
			"Sw":     sw.Data.Elements[i],
			"Area":   area.Elements[i] / 1e6,
		}
		for k, want := range checks {
			if math.Abs(r[k][i]-want) > 1e-12*math.Max(1, math.Abs(want)) {
				t.Errorf("%s %d: want %g but have %g", k, i, want, r[k][i])
			}
		}
	}

	t.Run("no inputs", func(t *testing.T) {
		r, err := o.Results(e, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !math.IsNaN(r["Sw"][0]) {
			t.Errorf("missing seawater should be NaN but is %g", r["Sw"][0])
		}
	})
}

func TestWriteShapefile(t *testing.T) {
	sw, catch := highInputs(t)
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
	fileName := filepath.Join(dir, "out.shp")

	o, err := NewOutputter(fileName, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.WriteShapefile(e, catch, sw, true); err != nil {
		t.Fatal(err)
	}

	type outData struct {
		Mid, Low, High, Catch float64
	}
	dec, err := shp.NewDecoder(fileName)
	if err != nil {
		t.Fatal(err)
	}
	var recs []outData
	for {
		var rec outData
		if more := dec.DecodeRow(&rec); !more {
			break
		}
		recs = append(recs, rec)
	}
	if err := dec.Error(); err != nil {
		t.Fatal(err)
	}
	dec.Close()

	// Only the two cells with catch are written.
	want := []outData{
		{Mid: e.Mid.Get(0, 0), Low: e.Low.Get(0, 0), High: e.High.Get(0, 0), Catch: 10},
		{Mid: e.Mid.Get(1, 1), Low: e.Low.Get(1, 1), High: e.High.Get(1, 1), Catch: 20},
	}
	if len(recs) != len(want) {
		t.Fatalf("want %d records but have %d", len(want), len(recs))
	}
	for i, w := range want {
		h := recs[i]
		if different(h.Mid, w.Mid, 1e-6) || different(h.Low, w.Low, 1e-6) ||
			different(h.High, w.High, 1e-6) || h.Catch != w.Catch {
			t.Errorf("record %d: want %+v but have %+v", i, w, h)
		}
	}

	dec, err = shp.NewDecoder(fileName)
	if err != nil {
		t.Fatal(err)
	}
	g, _, _ := dec.DecodeRowFields()
	dec.Close()
	b := g.Bounds()
	wantB := &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 1, Y: 1}}
	if b.Min != wantB.Min || b.Max != wantB.Max {
		t.Errorf("first cell bounds: want %v but have %v", wantB, b)
	}

	prj, err := ioutil.ReadFile(filepath.Join(dir, "out.prj"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(prj), "WGS_1984") {
		t.Errorf("unexpected projection %s", prj)
	}
}
