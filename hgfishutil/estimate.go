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

package hgfishutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/hgfish"
)

// loadStats returns the default statistics table, with the entries in
// statsFile replacing the defaults if it is not empty.
func loadStats(statsFile string) (*hgfish.StatsTable, error) {
	if statsFile == "" {
		return hgfish.DefaultStatsTable(), nil
	}
	f, err := os.Open(statsFile)
	if err != nil {
		return nil, fmt.Errorf("hgfish: opening StatsFile: %v", err)
	}
	defer f.Close()
	return hgfish.LoadStatsTable(f)
}

// readCatch reads the catch table in CSV or Excel format, depending on
// its file extension.
func readCatch(c *EstimateConfig) ([]hgfish.CatchRecord, error) {
	if strings.EqualFold(filepath.Ext(c.CatchFile), ".xlsx") {
		return hgfish.ReadCatchXLSX(c.CatchFile, c.CatchSheet, c.CatchColumns)
	}
	f, err := os.Open(c.CatchFile)
	if err != nil {
		return nil, fmt.Errorf("hgfish: opening CatchFile: %v", err)
	}
	defer f.Close()
	return hgfish.ReadCatchCSV(f, c.CatchColumns)
}

// prepareSeawater regrids and fills the seawater fields. Fields shared by
// several categories are only processed once.
func prepareSeawater(sw map[string]*hgfish.GridRaster, regrid string, fill bool) (map[string]*hgfish.GridRaster, error) {
	done := make(map[*hgfish.GridRaster]*hgfish.GridRaster)
	o := make(map[string]*hgfish.GridRaster, len(sw))
	for k, g := range sw {
		if p, ok := done[g]; ok {
			o[k] = p
			continue
		}
		p := g
		var err error
		switch regrid {
		case "down":
			p, err = hgfish.RegridDown(p, hgfish.Intensive)
		case "lon25":
			p, err = hgfish.RegridLon25To2(p, hgfish.Intensive)
		}
		if err != nil {
			return nil, fmt.Errorf("hgfish: regridding seawater for %s: %v", k, err)
		}
		if fill {
			p = hgfish.FillNearest(p)
		}
		done[g] = p
		o[k] = p
	}
	return o, nil
}

// Estimate runs the estimate command: it reads the inputs specified by c,
// estimates tissue Hg for each species and writes the results to
// c.OutputFile. It returns a summary of each estimate, sorted by species.
func Estimate(ctx context.Context, c *EstimateConfig, log logrus.FieldLogger) ([]*hgfish.Summary, error) {
	st, err := loadStats(c.StatsFile)
	if err != nil {
		return nil, err
	}
	species := append([]string(nil), c.Species...)
	if len(species) == 0 {
		species = st.Names()
	}
	for i, s := range species {
		if _, err := st.Lookup(s); err != nil {
			return nil, err
		}
		if n, err := hgfish.CanonicalName(s); err == nil {
			species[i] = n
		}
	}

	log.WithField("file", c.CatchFile).Info("reading catch")
	catch, err := readCatch(c)
	if err != nil {
		return nil, err
	}
	log.WithField("file", c.SeawaterFile).Info("reading seawater Hg")
	sw, err := hgfish.OpenSeawater(c.SeawaterFile, c.SeawaterVariable, species)
	if err != nil {
		return nil, err
	}
	if sw, err = prepareSeawater(sw, c.SeawaterRegrid, c.FillSeawater); err != nil {
		return nil, err
	}

	grid := hgfish.CatchGridOptions{CellX: c.CellX, CellY: c.CellY}
	if g := sw[species[0]]; g.Ny() == c.CellY && g.Nx() == c.CellX {
		grid.Lats, grid.Lons = g.Lats, g.Lons
	}

	e := hgfish.NewEngine(st, sw, catch, grid)
	e.Log = log
	log.WithFields(logrus.Fields{
		"species":   len(species),
		"partition": c.Partition,
	}).Info("estimating tissue Hg")
	ests, err := e.EstimateAll(ctx, species, c.Partition)
	var ee *hgfish.EstimateError
	switch {
	case err == nil:
	case len(c.Species) == 0 && errors.As(err, &ee) && len(ests) > 0:
		// Not every category is caught in every partition.
		for _, s := range ee.Species() {
			log.WithError(ee.Errs[s]).WithField("species", s).Warn("skipping species")
		}
	default:
		return nil, err
	}

	names := make([]string, 0, len(ests))
	for n := range ests {
		names = append(names, n)
	}
	sort.Strings(names)

	summaries := make([]*hgfish.Summary, len(names))
	catchRasters := make(map[string]*hgfish.GridRaster, len(names))
	for i, n := range names {
		cr, err := e.CatchRaster(n, c.Partition)
		if err != nil {
			return nil, err
		}
		catchRasters[n] = cr
		if summaries[i], err = hgfish.Summarize(ests[n], cr); err != nil {
			return nil, err
		}
	}

	if err := writeOutput(c, names, ests, catchRasters, sw); err != nil {
		return nil, err
	}
	log.WithField("file", c.OutputFile).Info("wrote output")
	return summaries, nil
}

// writeOutput writes the estimates to a netCDF file or to one shapefile
// per species.
func writeOutput(c *EstimateConfig, names []string, ests map[string]*hgfish.Estimate, catch, sw map[string]*hgfish.GridRaster) error {
	if strings.EqualFold(filepath.Ext(c.OutputFile), ".nc") {
		f, err := os.Create(c.OutputFile)
		if err != nil {
			return fmt.Errorf("hgfish: creating output file: %v", err)
		}
		e := make([]*hgfish.Estimate, len(names))
		for i, n := range names {
			e[i] = ests[n]
		}
		if err := hgfish.WriteEstimateNCF(f, e...); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	base := strings.TrimSuffix(c.OutputFile, filepath.Ext(c.OutputFile))
	for _, n := range names {
		file := base + "_" + strings.Replace(n, " ", "_", -1) + ".shp"
		o, err := hgfish.NewOutputter(file, c.OutputVariables, nil)
		if err != nil {
			return err
		}
		if err := o.WriteShapefile(ests[n], catch[n], sw[n], true); err != nil {
			return err
		}
	}
	return nil
}
