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
	"io"
	"sort"

	"github.com/BurntSushi/toml"
)

// SpeciesStats holds empirical tissue Hg statistics for one species or
// category, in mg/kg wet weight.
type SpeciesStats struct {
	Mean, Min, Max float64

	// ScaleLow and ScaleHigh compress or expand the reported range
	// around the best estimate. Zero means no scaling (1.0).
	ScaleLow, ScaleHigh float64
}

// StatsTable is a read-only table of SpeciesStats keyed by canonical
// category name. It must not be modified after it has been handed to an
// Engine.
type StatsTable struct {
	entries map[string]SpeciesStats
}

// DefaultStatsTable returns the empirical statistics for the 16 catch
// categories. The tier scale factors are the ratios of the lower and upper
// regression bounds of a separate calibration study to the tier mean.
func DefaultStatsTable() *StatsTable {
	return &StatsTable{entries: map[string]SpeciesStats{
		"Very low":       {Mean: 0.016, Min: 0.0145, Max: 0.021, ScaleLow: 0.011 / 0.016, ScaleHigh: 0.023 / 0.016},
		"Low":            {Mean: 0.055, Min: 0.021, Max: 0.084, ScaleLow: 0.031 / 0.055, ScaleHigh: 0.097 / 0.055},
		"Medium":         {Mean: 0.145, Min: 0.085, Max: 0.24, ScaleLow: 0.071 / 0.145, ScaleHigh: 0.297 / 0.145},
		"High":           {Mean: 0.259, Min: 0.24, Max: 0.49, ScaleLow: 0.117 / 0.259, ScaleHigh: 0.573 / 0.259},
		"Yellowfin tuna": {Mean: 0.26, Min: 0.03, Max: 0.65},
		"Bigeye tuna":    {Mean: 0.55, Min: 0.11, Max: 1.15},
		"Albacore tuna":  {Mean: 0.3, Min: 0.03, Max: 0.5},
		"Skipjack tuna":  {Mean: 0.19, Min: 0.06, Max: 0.45},
		"Other tunas":    {Mean: 0.21, Min: 0.057, Max: 3.03},
		"Blue marlin":    {Mean: 2.34, Min: 0.19, Max: 10.52},
		"Billfish":       {Mean: 0.85, Min: 0.14, Max: 3.31},
		"King mackerel":  {Mean: 1.05, Min: 0.11, Max: 1.51},
		"Pollock":        {Mean: 0.048, Min: 0.005, Max: 0.14},
		"Salmon":         {Mean: 0.046, Min: 0.005, Max: 0.19},
		"Shark_high":     {Mean: 0.77, Min: 0.08, Max: 8.25},
		"Shark_low":      {Mean: 0.17, Min: 0.05, Max: 2.07},
	}}
}

// NewStatsTable creates a table from the given entries.
func NewStatsTable(entries map[string]SpeciesStats) *StatsTable {
	t := &StatsTable{entries: make(map[string]SpeciesStats, len(entries))}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// statsFile is the layout of a statistics TOML file, e.g.
//
//	[Species."Yellowfin tuna"]
//	Mean = 0.26
//	Min = 0.03
//	Max = 0.65
type statsFile struct {
	Species map[string]SpeciesStats
}

// LoadStatsTable reads statistics in TOML format from r. Entries in r are
// merged onto the matching entries of the default table: fields that are
// not given keep their default values, so overriding the mean of a tier
// keeps its range scale factors. ScaleLow must not be greater than 1 and
// ScaleHigh must not be less than 1.
func LoadStatsTable(r io.Reader) (*StatsTable, error) {
	var f statsFile
	md, err := toml.DecodeReader(r, &f)
	if err != nil {
		return nil, fmt.Errorf("hgfish: reading statistics table: %v", err)
	}
	t := DefaultStatsTable()
	for key, in := range f.Species {
		name := key
		if c, err := CanonicalName(key); err == nil {
			name = c
		}
		s := t.entries[name]
		if md.IsDefined("Species", key, "Mean") {
			s.Mean = in.Mean
		}
		if md.IsDefined("Species", key, "Min") {
			s.Min = in.Min
		}
		if md.IsDefined("Species", key, "Max") {
			s.Max = in.Max
		}
		if md.IsDefined("Species", key, "ScaleLow") {
			s.ScaleLow = in.ScaleLow
		}
		if md.IsDefined("Species", key, "ScaleHigh") {
			s.ScaleHigh = in.ScaleHigh
		}
		if err := s.check(); err != nil {
			return nil, fmt.Errorf("hgfish: statistics for %s: %v", key, err)
		}
		t.entries[name] = s
	}
	return t, nil
}

// check returns an error if s could give a low bound above the best
// estimate or a high bound below it.
func (s SpeciesStats) check() error {
	switch {
	case s.Mean < 0 || s.Min < 0 || s.Max < 0:
		return fmt.Errorf("values must not be negative")
	case s.Min > s.Max:
		return fmt.Errorf("Min (%g) is greater than Max (%g)", s.Min, s.Max)
	case s.ScaleLow < 0 || s.ScaleLow > 1:
		return fmt.Errorf("ScaleLow (%g) must be between 0 and 1", s.ScaleLow)
	case s.ScaleHigh != 0 && s.ScaleHigh < 1:
		return fmt.Errorf("ScaleHigh (%g) must not be less than 1", s.ScaleHigh)
	}
	return nil
}

// Names returns the names in the table, sorted.
func (t *StatsTable) Names() []string {
	o := make([]string, 0, len(t.entries))
	for k := range t.entries {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

// resolve returns the table key for name.
func (t *StatsTable) resolve(name string) (string, error) {
	if _, ok := t.entries[name]; ok {
		return name, nil
	}
	if c, err := CanonicalName(name); err == nil {
		if _, ok := t.entries[c]; ok {
			return c, nil
		}
	}
	return "", &MissingStatisticsError{Species: name, Suggestions: suggest(name, t.Names())}
}

// Lookup returns the statistics for the given species or category.
func (t *StatsTable) Lookup(name string) (SpeciesStats, error) {
	k, err := t.resolve(name)
	if err != nil {
		return SpeciesStats{}, err
	}
	return t.entries[k], nil
}

// Scales returns the low and high range scale factors for name, which are
// 1 for everything except the exposure tiers.
func (t *StatsTable) Scales(name string) (low, high float64, err error) {
	s, err := t.Lookup(name)
	if err != nil {
		return 1, 1, err
	}
	low, high = s.ScaleLow, s.ScaleHigh
	if low == 0 {
		low = 1
	}
	if high == 0 {
		high = 1
	}
	return low, high, nil
}
