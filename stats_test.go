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
	"errors"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	st := DefaultStatsTable()
	s, err := st.Lookup("High")
	if err != nil {
		t.Fatal(err)
	}
	if s.Mean != 0.259 || s.Min != 0.24 || s.Max != 0.49 {
		t.Errorf("High: have %+v", s)
	}
	s, err = st.Lookup("albacore")
	if err != nil {
		t.Fatal(err)
	}
	if s.Mean != 0.3 {
		t.Errorf("albacore mean: want 0.3 but have %g", s.Mean)
	}
	if len(st.Names()) != len(Categories) {
		t.Errorf("want %d entries but have %d", len(Categories), len(st.Names()))
	}

	_, err = st.Lookup("Bluefin tuna")
	var mse *MissingStatisticsError
	if !errors.As(err, &mse) {
		t.Fatalf("want *MissingStatisticsError but have %v", err)
	}
	if mse.Species != "Bluefin tuna" {
		t.Errorf("species: want Bluefin tuna but have %s", mse.Species)
	}
}

func TestScales(t *testing.T) {
	st := DefaultStatsTable()
	lo, hi, err := st.Scales("High")
	if err != nil {
		t.Fatal(err)
	}
	if different(lo, 0.117/0.259, 1e-12) || different(hi, 0.573/0.259, 1e-12) {
		t.Errorf("High: want %g, %g but have %g, %g", 0.117/0.259, 0.573/0.259, lo, hi)
	}
	for _, name := range []string{"Salmon", "Blue marlin", "Shark_low"} {
		lo, hi, err := st.Scales(name)
		if err != nil {
			t.Fatal(err)
		}
		if lo != 1 || hi != 1 {
			t.Errorf("%s: want 1, 1 but have %g, %g", name, lo, hi)
		}
	}
	if _, _, err := st.Scales("Cod"); err == nil {
		t.Error("expected an error for a missing species")
	}
}

func TestLoadStatsTable(t *testing.T) {
	const f = `
[Species.salmon]
Mean = 0.05
Min = 0.01
Max = 0.2

[Species."Atlantic cod"]
Mean = 0.11
Min = 0.02
Max = 0.4
`
	st, err := LoadStatsTable(strings.NewReader(f))
	if err != nil {
		t.Fatal(err)
	}
	s, err := st.Lookup("Salmon")
	if err != nil {
		t.Fatal(err)
	}
	if s.Mean != 0.05 {
		t.Errorf("Salmon mean: want 0.05 but have %g", s.Mean)
	}
	if s, err := st.Lookup("Atlantic cod"); err != nil || s.Max != 0.4 {
		t.Errorf("Atlantic cod: have %+v, %v", s, err)
	}
	if s, _ := st.Lookup("High"); s.Mean != 0.259 {
		t.Errorf("defaults should be kept; High mean is %g", s.Mean)
	}

	t.Run("negative", func(t *testing.T) {
		_, err := LoadStatsTable(strings.NewReader("[Species.Salmon]\nMean = -1\n"))
		if err == nil {
			t.Error("expected an error for negative statistics")
		}
	})
	t.Run("tier override keeps scales", func(t *testing.T) {
		st, err := LoadStatsTable(strings.NewReader("[Species.High]\nMean = 0.3\nMin = 0.24\nMax = 0.49\n"))
		if err != nil {
			t.Fatal(err)
		}
		s, _ := st.Lookup("High")
		if s.Mean != 0.3 || s.Min != 0.24 {
			t.Errorf("High: have %+v", s)
		}
		lo, hi, err := st.Scales("High")
		if err != nil {
			t.Fatal(err)
		}
		wantLo, wantHi, _ := DefaultStatsTable().Scales("High")
		if lo != wantLo || hi != wantHi {
			t.Errorf("scales: want %g, %g but have %g, %g", wantLo, wantHi, lo, hi)
		}
	})
	t.Run("partial override", func(t *testing.T) {
		st, err := LoadStatsTable(strings.NewReader("[Species.Pollock]\nMax = 0.2\n"))
		if err != nil {
			t.Fatal(err)
		}
		s, _ := st.Lookup("Pollock")
		if s.Mean != 0.048 || s.Min != 0.005 || s.Max != 0.2 {
			t.Errorf("Pollock: have %+v", s)
		}
	})
	for name, in := range map[string]string{
		"scale low above 1":  "[Species.Salmon]\nScaleLow = 1.5\n",
		"scale high below 1": "[Species.Salmon]\nScaleHigh = 0.5\n",
		"min above max":      "[Species.Salmon]\nMin = 0.5\nMax = 0.1\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadStatsTable(strings.NewReader(in)); err == nil {
				t.Error("expected an error")
			}
		})
	}
	t.Run("syntax", func(t *testing.T) {
		if _, err := LoadStatsTable(strings.NewReader("[Species")); err == nil {
			t.Error("expected a parse error")
		}
	})
}
