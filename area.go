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

	"github.com/ctessum/sparse"
)

// metersPerDegree is the length of one degree of arc at the equator.
const metersPerDegree = 111321.0

// GridboxAreas returns the area in m² of every cell of the grid with the given
// latitude and longitude centers, using an equirectangular approximation:
// the area of an equatorial cell scaled by the cosine of the cell latitude.
// The grid spacing is taken from the first two centers of each axis.
func GridboxAreas(lats, lons []float64) (*sparse.DenseArray, error) {
	if len(lats) < 2 || len(lons) < 2 {
		return nil, fmt.Errorf("hgfish: gridbox areas need at least 2 lats and 2 lons; have %d and %d",
			len(lats), len(lons))
	}
	dx := (lons[1] - lons[0]) * metersPerDegree
	dy := (lats[1] - lats[0]) * metersPerDegree
	areaAtEq := dx * dy

	o := sparse.ZerosDense(len(lats), len(lons))
	for j, lat := range lats {
		a := areaAtEq * math.Cos(lat*math.Pi/180)
		for i := range lons {
			o.Set(a, j, i)
		}
	}
	return o, nil
}
