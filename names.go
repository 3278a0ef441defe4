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
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Categories are the catch categories, in their canonical order. The first
// four are the broad exposure tiers.
var Categories = []string{
	"Very low", "Low", "Medium", "High",
	"Albacore tuna", "Bigeye tuna", "Skipjack tuna", "Yellowfin tuna",
	"Other tunas", "Blue marlin", "Billfish", "King mackerel",
	"Pollock", "Salmon", "Shark_high", "Shark_low",
}

// Tiers are the broad, non-species-specific exposure categories.
var Tiers = []string{"Very low", "Low", "Medium", "High"}

// depthRanges give the depth range of seawater that each category is
// exposed to, used to select the matching seawater Hg field.
var depthRanges = map[string]string{
	"Very low": "0-50m", "Low": "0-200m", "Medium": "0-1000m", "High": "0-1000m",
	"Albacore tuna": "0-600m", "Bigeye tuna": "0-1500m", "Skipjack tuna": "0-250m",
	"Yellowfin tuna": "0-250m", "Other tunas": "0-200m", "Blue marlin": "0-1000m",
	"Billfish": "0-3000m", "King mackerel": "0-140m", "Pollock": "0-1300m",
	"Salmon": "0-250m", "Shark_high": "0-1000m", "Shark_low": "0-200m",
}

// synonyms maps the short names used in catch tables to canonical
// category names.
var synonyms = map[string]string{
	"very low": "Very low", "low": "Low", "medium": "Medium", "high": "High",
	"albacore": "Albacore tuna", "bigeye": "Bigeye tuna", "skipjack": "Skipjack tuna",
	"yellowfin": "Yellowfin tuna", "other tunas": "Other tunas", "blue marlin": "Blue marlin",
	"billfish": "Billfish", "king mackerel": "King mackerel", "pollock": "Pollock",
	"salmon": "Salmon", "shark_high": "Shark_high", "shark_low": "Shark_low",
}

// IsTier returns whether name is one of the broad exposure tiers.
func IsTier(name string) bool {
	for _, t := range Tiers {
		if t == name {
			return true
		}
	}
	return false
}

// DepthRange returns the seawater depth range associated with a category,
// for example "0-200m".
func DepthRange(category string) (string, error) {
	c, err := CanonicalName(category)
	if err != nil {
		return "", err
	}
	return depthRanges[c], nil
}

// ShortName returns the short name used for a category in catch tables,
// for example "albacore" for "Albacore tuna".
func ShortName(category string) string {
	for k, v := range synonyms {
		if v == category {
			return k
		}
	}
	return strings.ToLower(category)
}

// CanonicalName resolves a category name, short name or any case variant
// of either to the canonical category name.
func CanonicalName(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if c, ok := synonyms[n]; ok {
		return c, nil
	}
	for _, c := range Categories {
		if strings.ToLower(c) == n {
			return c, nil
		}
	}
	return "", &MissingStatisticsError{Species: name, Suggestions: suggest(name, Categories)}
}

// suggest returns the candidates within a small edit distance of name,
// closest first.
func suggest(name string, candidates []string) []string {
	type scored struct {
		val  string
		dist int
	}
	n := strings.ToLower(name)
	limit := len(n)/3 + 1
	var results []scored
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(n, strings.ToLower(c))
		if d <= limit {
			results = append(results, scored{val: c, dist: d})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].dist == results[j].dist {
			return results[i].val < results[j].val
		}
		return results[i].dist < results[j].dist
	})
	var o []string
	for _, r := range results {
		o = append(o, r.val)
		if len(o) == 3 {
			break
		}
	}
	return o
}
