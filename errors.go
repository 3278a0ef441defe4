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
	"sort"
	"strings"
)

// DegenerateInputError is returned when no grid cell has both positive catch
// and positive seawater mercury, so a species and partition combination
// cannot be mapped.
type DegenerateInputError struct {
	Species string
}

func (e *DegenerateInputError) Error() string {
	if e.Species == "" {
		return "hgfish: no overlap between catch and seawater Hg"
	}
	return fmt.Sprintf("hgfish: no overlap between catch and seawater Hg for %s", e.Species)
}

// ShapeMismatchError is returned when two rasters that must share a grid
// do not.
type ShapeMismatchError struct {
	Species   string
	Want, Got []int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("hgfish: %s: seawater raster shape %v does not match catch raster shape %v",
		e.Species, e.Want, e.Got)
}

// MissingStatisticsError is returned when a species or category has no entry
// in the statistics table. Suggestions holds known names that are spelled
// similarly.
type MissingStatisticsError struct {
	Species     string
	Suggestions []string
}

func (e *MissingStatisticsError) Error() string {
	msg := fmt.Sprintf("hgfish: no Hg statistics for species %q", e.Species)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf("; did you mean %s?", strings.Join(quote(e.Suggestions), " or "))
	}
	return msg
}

// EstimateError is returned by Engine.EstimateAll when the estimates for
// one or more species fail. Errs holds the error for each of them.
type EstimateError struct {
	Partition string
	Errs      map[string]error
}

// Species returns the species whose estimates failed, sorted.
func (e *EstimateError) Species() []string {
	o := make([]string, 0, len(e.Errs))
	for s := range e.Errs {
		o = append(o, s)
	}
	sort.Strings(o)
	return o
}

func (e *EstimateError) Error() string {
	species := e.Species()
	msgs := make([]string, len(species))
	for i, s := range species {
		msgs[i] = fmt.Sprintf("%s: %v", s, e.Errs[s])
	}
	return fmt.Sprintf("hgfish: estimating partition %s: %s", e.Partition, strings.Join(msgs, "; "))
}

// Unwrap returns the error of the first failed species in sorted order.
func (e *EstimateError) Unwrap() error {
	species := e.Species()
	if len(species) == 0 {
		return nil
	}
	return e.Errs[species[0]]
}

func quote(s []string) []string {
	o := make([]string, len(s))
	for i, v := range s {
		o[i] = fmt.Sprintf("%q", v)
	}
	return o
}
