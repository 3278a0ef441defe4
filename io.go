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
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
)

// wgs84 is the projection definition written alongside output shapefiles.
const wgs84 = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["Degree",0.017453292519943295]]`

// CellVariables are the per-cell variables that output expressions can use.
var CellVariables = []string{"mid", "low", "high", "catch", "seawater", "area", "lat", "lon"}

// DefaultOutputVariables are written when no output variables are given.
var DefaultOutputVariables = map[string]string{
	"Mid":   "mid",
	"Low":   "low",
	"High":  "high",
	"Catch": "catch",
}

// Outputter computes output variables from estimates and writes them to
// a shapefile.
type Outputter struct {
	fileName        string
	outputVariables map[string]string
	outputFunctions map[string]govaluate.ExpressionFunction
	expressions     map[string]*govaluate.EvaluableExpression

	// order holds the output variable names so that each one comes after
	// the output variables it refers to.
	order []string
}

// NewOutputter initializes a new Outputter. outputVariables maps output
// names to expressions of the cell variables, of other output variables,
// and of functions. Default functions include:
//
// 'exp(x)' and 'log(x)', the exponential and natural logarithm.
//
// 'min(a, b)' and 'max(a, b)'.
//
// 'mehg(x)', the methylmercury part of a total Hg concentration.
func NewOutputter(fileName string, outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	funcs := map[string]govaluate.ExpressionFunction{
		"exp":  unaryFunc("exp", math.Exp),
		"log":  unaryFunc("log", math.Log),
		"mehg": unaryFunc("mehg", func(x float64) float64 { return x * mehgFraction }),
		"min":  binaryFunc("min", math.Min),
		"max":  binaryFunc("max", math.Max),
	}
	for k, v := range outputFunctions {
		funcs[k] = v
	}
	if len(outputVariables) == 0 {
		outputVariables = DefaultOutputVariables
	}
	o := &Outputter{
		fileName:        fileName,
		outputVariables: make(map[string]string, len(outputVariables)),
		outputFunctions: funcs,
		expressions:     make(map[string]*govaluate.EvaluableExpression, len(outputVariables)),
	}
	for k, v := range outputVariables {
		o.outputVariables[k] = v
	}
	if err := checkOutputNames(o.outputVariables); err != nil {
		return nil, err
	}
	for k, v := range o.outputVariables {
		e, err := govaluate.NewEvaluableExpressionWithFunctions(v, funcs)
		if err != nil {
			return nil, fmt.Errorf("hgfish: output variable %s: %v", k, err)
		}
		o.expressions[k] = e
	}
	if err := o.sortVariables(); err != nil {
		return nil, err
	}
	return o, nil
}

func unaryFunc(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("hgfish: got %d arguments for function '%s', but needs 1", len(args), name)
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("hgfish: function '%s' needs a number", name)
		}
		return f(x), nil
	}
}

func binaryFunc(name string, f func(a, b float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("hgfish: got %d arguments for function '%s', but needs 2", len(args), name)
		}
		a, ok1 := args[0].(float64)
		b, ok2 := args[1].(float64)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("hgfish: function '%s' needs numbers", name)
		}
		return f(a, b), nil
	}
}

// sortVariables orders the output variables by their dependencies and
// checks that every variable they use is defined.
func (o *Outputter) sortVariables() error {
	cellVars := make(map[string]bool)
	for _, v := range CellVariables {
		cellVars[v] = true
	}
	names := make([]string, 0, len(o.outputVariables))
	for k := range o.outputVariables {
		names = append(names, k)
	}
	sort.Strings(names)

	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int)
	var visit func(string) error
	visit = func(n string) error {
		switch state[n] {
		case visiting:
			return fmt.Errorf("hgfish: output variable '%s' refers to itself", n)
		case done:
			return nil
		}
		state[n] = visiting
		for _, v := range removeDuplicates(o.expressions[n].Vars()) {
			if _, ok := o.expressions[v]; ok && v != n {
				if err := visit(v); err != nil {
					return err
				}
			} else if !cellVars[v] {
				return fmt.Errorf("hgfish: undefined variable name '%s'", v)
			}
		}
		state[n] = done
		o.order = append(o.order, n)
		return nil
	}
	for _, n := range names {
		if err := visit(n); err != nil {
			return err
		}
	}
	return nil
}

// removeDuplicates removes all duplicated strings from a slice, returning a
// slice that contains only unique strings.
func removeDuplicates(s []string) []string {
	result := make([]string, 0, len(s))
	seen := make(map[string]bool)
	for _, val := range s {
		if !seen[val] {
			result = append(result, val)
			seen[val] = true
		}
	}
	return result
}

var validFieldName = regexp.MustCompile(`^[A-Za-z]\w*$`)

// checkOutputNames checks (1) if any output variable names exceed 10
// characters and (2) if any output variable names include characters that
// are unsupported in shapefile field names.
func checkOutputNames(o map[string]string) error {
	for key := range o {
		long := len(key) > 10
		bad := !validFieldName.MatchString(key)
		if long && bad {
			return fmt.Errorf("hgfish: output variable name '%s' exceeds 10 characters and includes unsupported character(s)", key)
		} else if long {
			return fmt.Errorf("hgfish: output variable name '%s' exceeds 10 characters", key)
		} else if bad {
			return fmt.Errorf("hgfish: output variable name '%s' includes unsupported characters", key)
		}
	}
	return nil
}

// fieldName turns a species name into a name usable as a file variable.
func fieldName(s string) string {
	return strings.Replace(strings.TrimSpace(s), " ", "_", -1)
}

// Results evaluates the output variables in each grid cell. catch and
// seawater may be nil, in which case their cell variables are NaN.
func (o *Outputter) Results(e *Estimate, catch, seawater *GridRaster) (map[string][]float64, error) {
	g := e.Mid
	for _, r := range []*GridRaster{e.Low, e.High, catch, seawater} {
		if r != nil && !r.SameShape(g) {
			return nil, &ShapeMismatchError{Species: e.Species, Want: g.Data.Shape, Got: r.Data.Shape}
		}
	}
	area, err := g.Areas()
	if err != nil {
		return nil, err
	}
	n := len(g.Data.Elements)
	results := make(map[string][]float64, len(o.order))
	for _, k := range o.order {
		results[k] = make([]float64, n)
	}
	at := func(r *GridRaster, i int) float64 {
		if r == nil {
			return math.NaN()
		}
		return r.Data.Elements[i]
	}
	params := make(map[string]interface{}, len(CellVariables)+len(o.order))
	for i := 0; i < n; i++ {
		params["mid"] = e.Mid.Data.Elements[i]
		params["low"] = e.Low.Data.Elements[i]
		params["high"] = e.High.Data.Elements[i]
		params["catch"] = at(catch, i)
		params["seawater"] = at(seawater, i)
		params["area"] = area.Elements[i]
		params["lat"] = g.Lats[i/g.Nx()]
		params["lon"] = g.Lons[i%g.Nx()]
		for _, k := range o.order {
			v, err := o.expressions[k].Evaluate(params)
			if err != nil {
				return nil, fmt.Errorf("hgfish: evaluating output variable %s: %v", k, err)
			}
			f, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("hgfish: output variable %s is not a number", k)
			}
			results[k][i] = f
			params[k] = f
		}
	}
	return results, nil
}

// cellPolygon returns the outline of cell (j, i) of g.
func cellPolygon(g *GridRaster, dlat, dlon float64, j, i int) geom.Polygon {
	x0, x1 := g.Lons[i]-dlon/2, g.Lons[i]+dlon/2
	y0, y1 := g.Lats[j]-dlat/2, g.Lats[j]+dlat/2
	return geom.Polygon{{
		{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}, {X: x0, Y: y0},
	}}
}

// WriteShapefile evaluates the output variables for e and writes them to
// a shapefile with one polygon per grid cell. If skipEmpty is true, cells
// without catch are left out.
func (o *Outputter) WriteShapefile(e *Estimate, catch, seawater *GridRaster, skipEmpty bool) error {
	results, err := o.Results(e, catch, seawater)
	if err != nil {
		return err
	}
	g := e.Mid
	dlat, dlon, err := g.Spacing()
	if err != nil {
		return err
	}
	vars := make([]string, 0, len(results))
	for v := range results {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	fields := make([]goshp.Field, len(vars))
	for i, v := range vars {
		fields[i] = goshp.FloatField(v, 14, 8)
	}

	// remove extension and replace it with .shp
	fileBase := strings.TrimSuffix(o.fileName, filepath.Ext(o.fileName))
	shape, err := shp.NewEncoderFromFields(fileBase+".shp", goshp.POLYGON, fields...)
	if err != nil {
		return fmt.Errorf("hgfish: creating output shapefile: %v", err)
	}
	nx := g.Nx()
	for c := range g.Data.Elements {
		if skipEmpty && (catch == nil || !(catch.Data.Elements[c] > 0)) {
			continue
		}
		outFields := make([]interface{}, len(vars))
		for j, v := range vars {
			outFields[j] = results[v][c]
		}
		if err := shape.EncodeFields(cellPolygon(g, dlat, dlon, c/nx, c%nx), outFields...); err != nil {
			shape.Close()
			return fmt.Errorf("hgfish: writing output shapefile: %v", err)
		}
	}
	shape.Close()

	f, err := os.Create(fileBase + ".prj")
	if err != nil {
		return fmt.Errorf("hgfish: creating output prj file: %v", err)
	}
	fmt.Fprint(f, wgs84)
	return f.Close()
}
