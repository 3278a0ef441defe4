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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/hgfish"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to hgfish.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel sets the logging verbosity: one of debug, info,
              warn or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "CatchFile",
			usage: `
              CatchFile is the path to the gridded catch table, in CSV
              or Excel (.xlsx) format. It needs columns for the cell
              identifier, the Hg category, the partition and the catch.`,
			shorthand:  "c",
			defaultVal: "${HGFISH_DATA}/catch.csv",
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags()},
		},
		{
			name: "CatchSheet",
			usage: `
              CatchSheet is the sheet of CatchFile to read if it is an
              Excel file. The default is the first sheet.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags()},
		},
		{
			name: "CatchColumns",
			usage: `
              CatchColumns overrides the header names of the catch table.
              Keys are CellID, Category, Partition and Catch. When given as
              a command-line argument, it needs to be in JSON format,
              for example '{"Partition":"EEZ"}'.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags()},
		},
		{
			name: "Partition",
			usage: `
              Partition is the spatial partition to estimate for, either a
              partition code as it appears in the catch table or an EEZ
              name, which is converted to its code.`,
			shorthand:  "p",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags()},
		},
		{
			name: "Species",
			usage: `
              Species lists the species and categories to estimate. The
              default is all categories in the statistics table.`,
			shorthand:  "s",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags(), statsCmd.Flags()},
		},
		{
			name: "SeawaterFile",
			usage: `
              SeawaterFile is the path to the netCDF file holding the
              seawater Hg fields.`,
			defaultVal: "${HGFISH_DATA}/seawater.nc",
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags()},
		},
		{
			name: "SeawaterVariable",
			usage: `
              SeawaterVariable is the template for seawater variable names.
              [DEPTH] is replaced by the depth range of each category (for
              example 0-200m) and [SPECIES] by its short name.`,
			defaultVal: "MeHg_[DEPTH]",
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags()},
		},
		{
			name: "SeawaterRegrid",
			usage: `
              SeawaterRegrid converts the seawater fields to the catch grid.
              Options are none, down (halve the cell size) and lon25
              (2.5° to 2° longitude spacing).`,
			defaultVal: "none",
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags()},
		},
		{
			name: "FillSeawater",
			usage: `
              FillSeawater specifies whether to fill missing seawater values
              with the mean of their neighbors.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags()},
		},
		{
			name: "StatsFile",
			usage: `
              StatsFile is an optional TOML file of tissue Hg statistics
              that replace the built-in values.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags(), statsCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the output file. Files ending in .nc
              are written in netCDF format; otherwise one shapefile is
              written for each species.`,
			shorthand:  "o",
			defaultVal: "hgfish_output.nc",
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies the shapefile output variables as
              names and expressions of mid, low, high, catch, seawater,
              area, lat and lon. When given as a command-line argument, it
              needs to be in JSON format, for example '{"Mid":"mid"}'.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags()},
		},
		{
			name: "CellX",
			usage: `
              CellX is the number of columns of the catch grid.`,
			defaultVal: 720,
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags()},
		},
		{
			name: "CellY",
			usage: `
              CellY is the number of rows of the catch grid.`,
			defaultVal: 360,
			flagsets:   []*pflag.FlagSet{estimateCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("HGFISH")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case []string:
				set.StringSliceP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				json.NewEncoder(b).Encode(v)
				set.StringP(option.name, option.shorthand, b.String(), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(estimateCmd)
	Root.AddCommand(statsCmd)
	Root.AddCommand(partitionCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("hgfish: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("hgfish: invalid LogLevel: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "hgfish",
	Short: "Spatially resolved estimates of mercury in marine fish.",
	Long: `hgfish estimates methylmercury concentrations in the tissue of marine fish
on a global grid, from modeled seawater mercury, gridded fishery catch and
measured tissue concentrations. Use the subcommands specified below to access
the model functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'HGFISH_var' where 'var' is the
name of the variable to be set. Many configuration variables are additionally
allowed to contain environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
	SilenceUsage:      true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of hgfish.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("hgfish v%s\n", hgfish.Version)
	},
	DisableAutoGenTag: true,
}

// estimateCmd estimates tissue Hg and writes the results.
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate tissue Hg for a partition.",
	Long: `estimate maps tissue Hg for the configured species in one spatial
partition and writes the mid, low and high estimates to OutputFile.
A catch-weighted summary of each species is printed when it finishes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := EstimateConfigFromViper(Cfg)
		if err != nil {
			return err
		}
		summaries, err := Estimate(context.Background(), c, logrus.StandardLogger())
		if err != nil {
			return err
		}
		return printSummaries(cmd, summaries)
	},
	DisableAutoGenTag: true,
}

// statsCmd prints the tissue Hg statistics table.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the tissue Hg statistics.",
	Long: `stats prints the empirical tissue Hg statistics used for each species,
including any replacements from StatsFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStats(os.ExpandEnv(Cfg.GetString("StatsFile")))
		if err != nil {
			return err
		}
		names := expandStringSlice(Cfg.GetStringSlice("Species"))
		if len(names) == 0 {
			names = st.Names()
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "Species\tDepth\tMean\tMin\tMax\tScaleLow\tScaleHigh")
		for _, n := range names {
			s, err := st.Lookup(n)
			if err != nil {
				return err
			}
			lo, hi, _ := st.Scales(n)
			d, err := hgfish.DepthRange(n)
			if err != nil {
				d = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%.3f\t%.3f\n", n, d, s.Mean, s.Min, s.Max, lo, hi)
		}
		return w.Flush()
	},
	DisableAutoGenTag: true,
}

// partitionCmd looks up EEZ partitions.
var partitionCmd = &cobra.Command{
	Use:   "partition [EEZ name...]",
	Short: "Look up EEZ partition codes.",
	Long: `partition prints the partition code and FAO country name of each of
the given EEZs. With no arguments it lists all known EEZs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := hgfish.DefaultReference()
		if len(args) == 0 {
			args = ref.EEZNames()
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "EEZ\tCode\tFAO name")
		for _, a := range args {
			code, err := ref.PartitionCode(a)
			if err != nil {
				return err
			}
			fao, err := ref.FAOName(a)
			if err != nil {
				fao = "-"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", a, code, fao)
		}
		return w.Flush()
	},
	DisableAutoGenTag: true,
}

func printSummaries(cmd *cobra.Command, s []*hgfish.Summary) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "Species\tMean\tMin\tMax\tCells\tCatch")
	for _, v := range s {
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.4g\t%d\t%.4g\n", v.Species, v.Mean, v.Min, v.Max, v.Cells, v.TotalCatch)
	}
	return w.Flush()
}
