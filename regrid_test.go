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
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestRegridDown(t *testing.T) {
	g := testRaster([]float64{1, 2, 3}, []float64{4, 5, 6})

	t.Run("extensive", func(t *testing.T) {
		o, err := RegridDown(g, Extensive)
		if err != nil {
			t.Fatal(err)
		}
		if o.Ny() != 4 || o.Nx() != 6 {
			t.Fatalf("shape: want [4 6] but have %v", o.Data.Shape)
		}
		if different(o.Sum(), g.Sum(), 1e-12) {
			t.Errorf("total: want %g but have %g", g.Sum(), o.Sum())
		}
	})

	for _, q := range []Quantity{Intensive, Categorical} {
		t.Run(q.String(), func(t *testing.T) {
			o, err := RegridDown(g, q)
			if err != nil {
				t.Fatal(err)
			}
			if different(o.Sum(), 4*g.Sum(), 1e-12) {
				t.Errorf("total: want %g but have %g", 4*g.Sum(), o.Sum())
			}
			count := make(map[float64]int)
			for _, v := range o.Data.Elements {
				count[v]++
			}
			for _, v := range g.Data.Elements {
				if count[v] != 4 {
					t.Errorf("value %g: want 4 copies but have %d", v, count[v])
				}
			}
			for j := 0; j < o.Ny(); j++ {
				for i := 0; i < o.Nx(); i++ {
					want := g.Get(downIndex(j, 2), downIndex(i, 3))
					if o.Get(j, i) != want {
						t.Errorf("(%d, %d): want %g but have %g", j, i, want, o.Get(j, i))
					}
				}
			}
		})
	}

	t.Run("centers", func(t *testing.T) {
		o, _ := RegridDown(g, Intensive)
		want := []float64{0.75, 1.25, 1.75, 2.25}
		if !floats.EqualApprox(o.Lats, want, 1e-12) {
			t.Errorf("lats: want %v but have %v", want, o.Lats)
		}
		if err := o.Validate(); err != nil {
			t.Error(err)
		}
	})

	t.Run("inside source cell", func(t *testing.T) {
		g := testRaster([]float64{10, 11, 12}, []float64{20, 21, 22}, []float64{30, 31, 32})
		g.Lats = []float64{0.5, 1.5, 2.5}
		o, _ := RegridDown(g, Intensive)
		span := float64(g.Ny())
		for j, lat := range o.Lats {
			src := downIndex(j, g.Ny())
			d := lat - g.Lats[src]
			d -= span * math.Round(d/span)
			if math.Abs(d) > 0.5 {
				t.Errorf("fine row %d at %g holds row %d centered at %g", j, lat, src, g.Lats[src])
			}
			if o.Get(j, 0) != g.Get(src, 0) {
				t.Errorf("fine row %d: want %g but have %g", j, g.Get(src, 0), o.Get(j, 0))
			}
		}
	})

	t.Run("wraparound", func(t *testing.T) {
		o, _ := RegridDown(g, Intensive)
		if o.Get(3, 5) != g.Get(0, 0) {
			t.Errorf("last cell: want %g but have %g", g.Get(0, 0), o.Get(3, 5))
		}
	})
}

func TestRegridLon25To2(t *testing.T) {
	g := testRaster([]float64{1, 2, 3, 4}, []float64{1, 2, 3, 4})
	g.Lons = []float64{0.125, 0.375, 0.625, 0.875}

	t.Run("extensive", func(t *testing.T) {
		o, err := RegridLon25To2(g, Extensive)
		if err != nil {
			t.Fatal(err)
		}
		if o.Nx() != 5 || o.Ny() != 2 {
			t.Fatalf("shape: want [2 5] but have %v", o.Data.Shape)
		}
		if different(o.Sum(), g.Sum(), 1e-12) {
			t.Errorf("total: want %g but have %g", g.Sum(), o.Sum())
		}
		wantLons := []float64{0.05, 0.25, 0.45, 0.65, 0.85}
		if !floats.EqualApprox(o.Lons, wantLons, 1e-12) {
			t.Errorf("lons: want %v but have %v", wantLons, o.Lons)
		}
		for i, lon := range o.Lons {
			var mean float64
			for k := 4*i - 3; k <= 4*i; k++ {
				mean += g.Lons[0] + float64(k)*0.25/5
			}
			if different(lon, mean/4, 1e-12) {
				t.Errorf("column %d: center %g is not the mean of its replicas %g", i, lon, mean/4)
			}
		}
	})

	t.Run("intensive", func(t *testing.T) {
		o, err := RegridLon25To2(g, Intensive)
		if err != nil {
			t.Fatal(err)
		}
		haveMean := o.Sum() / float64(len(o.Data.Elements))
		wantMean := g.Sum() / float64(len(g.Data.Elements))
		if different(haveMean, wantMean, 1e-12) {
			t.Errorf("mean: want %g but have %g", wantMean, haveMean)
		}
		c := testRaster([]float64{7, 7, 7, 7}, []float64{7, 7, 7, 7})
		c.Lons = g.Lons
		c.Lats = g.Lats
		oc, _ := RegridLon25To2(c, Intensive)
		for _, v := range oc.Data.Elements {
			if math.Abs(v-7) > 1e-12 {
				t.Errorf("constant field: want 7 but have %g", v)
			}
		}
	})

	t.Run("categorical", func(t *testing.T) {
		o, err := RegridLon25To2(g, Categorical)
		if err != nil {
			t.Fatal(err)
		}
		want := []float64{4, 1, 2, 3, 4}
		for i, w := range want {
			if o.Get(0, i) != w {
				t.Errorf("column %d: want %g but have %g", i, w, o.Get(0, i))
			}
		}
	})

	t.Run("width", func(t *testing.T) {
		b := testRaster([]float64{1, 2, 3}, []float64{1, 2, 3})
		if _, err := RegridLon25To2(b, Intensive); err == nil {
			t.Error("expected an error for a width that is not a multiple of 4")
		}
	})
}
