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

	"gonum.org/v1/gonum/floats"
)

// finite returns the non-NaN values of x.
func finite(x []float64) []float64 {
	o := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			o = append(o, v)
		}
	}
	return o
}

// nanSum returns the sum of the non-NaN values of x, or 0 if there are none.
func nanSum(x []float64) float64 { return floats.Sum(finite(x)) }

// nanMean returns the mean of the non-NaN values of x, or NaN if there are
// none.
func nanMean(x []float64) float64 {
	f := finite(x)
	if len(f) == 0 {
		return math.NaN()
	}
	return floats.Sum(f) / float64(len(f))
}
