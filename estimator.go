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
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/ctessum/requestcache"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/hgfish/internal/hash"
)

// Engine estimates tissue Hg for species and partitions from a fixed set of
// inputs. Results are cached, and Engine is safe for concurrent use as long
// as its fields are not changed after the first estimate.
type Engine struct {
	// Stats holds the empirical tissue Hg statistics.
	Stats *StatsTable

	// Seawater holds a seawater Hg raster for each category.
	Seawater map[string]*GridRaster

	// Catch holds the catch records for all categories and partitions.
	Catch []CatchRecord

	// Grid specifies how catch records are gridded.
	Grid CatchGridOptions

	// CacheSize is the number of estimates to keep in memory.
	// Zero means 100.
	CacheSize int

	Log logrus.FieldLogger

	cache     *requestcache.Cache
	cacheOnce sync.Once
}

// NewEngine creates an engine with a default logger.
func NewEngine(stats *StatsTable, seawater map[string]*GridRaster, catch []CatchRecord, grid CatchGridOptions) *Engine {
	return &Engine{
		Stats:    stats,
		Seawater: seawater,
		Catch:    catch,
		Grid:     grid,
		Log:      logrus.StandardLogger(),
	}
}

type estimateRequest struct {
	Species, Partition string
}

// CatchRaster returns the gridded catch of a species in a partition.
func (e *Engine) CatchRaster(species, partition string) (*GridRaster, error) {
	return GridSpeciesCatch(species, e.Catch, partition, &e.Grid)
}

// Estimate returns the tissue Hg estimate for a species in a partition.
// Users that want to modify the result should copy it first, because it may
// be shared with later callers.
func (e *Engine) Estimate(ctx context.Context, species, partition string) (*Estimate, error) {
	e.cacheOnce.Do(func() {
		n := e.CacheSize
		if n == 0 {
			n = 100
		}
		e.cache = requestcache.NewCache(func(ctx context.Context, request interface{}) (interface{}, error) {
			return e.estimate(request.(estimateRequest))
		}, runtime.GOMAXPROCS(-1), requestcache.Deduplicate(), requestcache.Memory(n))
	})
	name, err := e.Stats.resolve(species)
	if err != nil {
		return nil, err
	}
	r := estimateRequest{Species: name, Partition: partition}
	req := e.cache.NewRequest(ctx, r, hash.Hash(r))
	result, err := req.Result()
	if err != nil {
		return nil, err
	}
	return result.(*Estimate), nil
}

func (e *Engine) estimate(r estimateRequest) (*Estimate, error) {
	log := e.logger().WithFields(logrus.Fields{
		"species":   r.Species,
		"partition": r.Partition,
	})
	sw, ok := rasterFor(e.Seawater, r.Species)
	if !ok {
		return nil, fmt.Errorf("hgfish: no seawater Hg raster for %s", r.Species)
	}
	c, err := e.CatchRaster(r.Species, r.Partition)
	if err != nil {
		return nil, err
	}
	log.WithField("catch", c.Sum()).Debug("gridded catch")

	est, err := MapHgForFish(r.Species,
		map[string]*GridRaster{r.Species: sw},
		map[string]*GridRaster{r.Species: c},
		e.Stats)
	if err != nil {
		return nil, err
	}

	s, _ := e.Stats.Lookup(r.Species)
	cwm, err := CatchWeightedMean(est.Mid.Data, c.Data)
	if err != nil {
		return nil, err
	}
	if math.Abs(cwm/s.Mean-1) > 1e-6 {
		log.WithField("ratio", cwm/s.Mean).Warn("catch-weighted mean does not match empirical mean")
	} else {
		log.WithField("mean", cwm).Debug("estimated tissue Hg")
	}
	return est, nil
}

// EstimateAll estimates tissue Hg for each of the given species in a
// partition, in parallel. The successful estimates are returned even if
// some species fail, in which case the error is an *EstimateError.
func (e *Engine) EstimateAll(ctx context.Context, species []string, partition string) (map[string]*Estimate, error) {
	type result struct {
		species string
		est     *Estimate
		err     error
	}
	results := make(chan result, len(species))
	var wg sync.WaitGroup
	for _, s := range species {
		wg.Add(1)
		go func(s string) {
			defer wg.Done()
			est, err := e.Estimate(ctx, s, partition)
			results <- result{species: s, est: est, err: err}
		}(s)
	}
	wg.Wait()
	close(results)

	o := make(map[string]*Estimate, len(species))
	errs := make(map[string]error)
	for r := range results {
		if r.err != nil {
			errs[r.species] = r.err
			continue
		}
		o[r.est.Species] = r.est
	}
	if len(errs) > 0 {
		return o, &EstimateError{Partition: partition, Errs: errs}
	}
	return o, nil
}

func (e *Engine) logger() logrus.FieldLogger {
	if e.Log == nil {
		return logrus.StandardLogger()
	}
	return e.Log
}
