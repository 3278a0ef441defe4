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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/hgfish"
	"github.com/spf13/cast"
)

// EstimateConfig holds the settings of the estimate command.
type EstimateConfig struct {
	CatchFile, CatchSheet string
	CatchColumns          hgfish.CatchColumns

	// Partition is the partition code as it appears in the catch table.
	Partition string

	Species []string

	SeawaterFile, SeawaterVariable string
	SeawaterRegrid                 string
	FillSeawater                   bool

	StatsFile string

	OutputFile      string
	OutputVariables map[string]string

	CellX, CellY int
}

// EstimateConfigFromViper creates a new estimate configuration from the
// values in cfg and checks them.
func EstimateConfigFromViper(cfg *viper.Viper) (*EstimateConfig, error) {
	c := &EstimateConfig{
		CatchFile:        os.ExpandEnv(cfg.GetString("CatchFile")),
		CatchSheet:       cfg.GetString("CatchSheet"),
		CatchColumns:     hgfish.DefaultCatchColumns,
		Species:          expandStringSlice(cfg.GetStringSlice("Species")),
		SeawaterFile:     os.ExpandEnv(cfg.GetString("SeawaterFile")),
		SeawaterVariable: cfg.GetString("SeawaterVariable"),
		SeawaterRegrid:   strings.ToLower(cfg.GetString("SeawaterRegrid")),
		FillSeawater:     cfg.GetBool("FillSeawater"),
		StatsFile:        os.ExpandEnv(cfg.GetString("StatsFile")),
		CellX:            cfg.GetInt("CellX"),
		CellY:            cfg.GetInt("CellY"),
	}
	var err error
	if c.Partition, err = checkPartition(cfg.GetString("Partition")); err != nil {
		return nil, err
	}
	if c.OutputFile, err = checkOutputFile(cfg.GetString("OutputFile")); err != nil {
		return nil, err
	}
	cols, err := GetStringMapString("CatchColumns", cfg)
	if err != nil {
		return nil, err
	}
	if c.CatchColumns, err = catchColumns(cols); err != nil {
		return nil, err
	}
	vars, err := GetStringMapString("OutputVariables", cfg)
	if err != nil {
		return nil, err
	}
	c.OutputVariables = checkOutputVars(vars)
	if err := checkRegrid(c.SeawaterRegrid); err != nil {
		return nil, err
	}
	if c.CellX <= 0 || c.CellY <= 0 {
		return nil, fmt.Errorf("hgfish: CellX and CellY must be positive but are %d and %d", c.CellX, c.CellY)
	}
	return c, nil
}

// checkPartition makes sure a partition is specified, converting EEZ
// names to their codes.
func checkPartition(p string) (string, error) {
	p = strings.TrimSpace(os.ExpandEnv(p))
	if p == "" {
		return "", fmt.Errorf(`hgfish: you need to specify a partition (for example: Partition="36")`)
	}
	if f, err := strconv.ParseFloat(p, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	code, err := hgfish.DefaultReference().PartitionCode(p)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(code), nil
}

// checkRegrid makes sure the seawater regridding option is valid.
func checkRegrid(r string) error {
	switch r {
	case "none", "down", "lon25":
		return nil
	default:
		return fmt.Errorf("hgfish: the SeawaterRegrid variable needs to be set to none, down, or lon25, but is currently set to `%s`", r)
	}
}

// catchColumns applies the column name overrides in m to the default
// catch table columns.
func catchColumns(m map[string]string) (hgfish.CatchColumns, error) {
	c := hgfish.DefaultCatchColumns
	for k, v := range m {
		switch strings.ToLower(k) {
		case "cellid":
			c.CellID = v
		case "category":
			c.Category = v
		case "partition":
			c.Partition = v
		case "catch":
			c.Catch = v
		default:
			return c, fmt.Errorf("hgfish: invalid CatchColumns key %q", k)
		}
	}
	return c, nil
}

// checkOutputVars removes end lines and expands environment
// variables in the output variables.
func checkOutputVars(vars map[string]string) map[string]string {
	o := make(map[string]string, len(vars))
	for k, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		o[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return o
}

// expandStringSlice expands the environment variables in a slice of strings.
func expandStringSlice(s []string) []string {
	for i := 0; i < len(s); i++ {
		s[i] = os.ExpandEnv(s[i])
	}
	return s
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expand any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`hgfish: you need to specify an output file configuration variable (for example: OutputFile="output.nc")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("hgfish: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapString(v), nil
	case string:
		o := make(map[string]string)
		if strings.TrimSpace(v) == "" {
			return o, nil
		}
		if err := json.NewDecoder(bytes.NewBufferString(v)).Decode(&o); err != nil {
			return nil, fmt.Errorf("hgfish: parsing %s as JSON: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("hgfish: invalid type for %s: %#v", varName, i)
	}
}
