// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command razor2liquid converts Razor templates to Liquid templates.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/open2b/razor2liquid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configFile is the configuration file read if the --config flag is not
// given.
const configFile = "razor2liquid.yaml"

var (
	configPath string
	outPath    string
	ext        string
	verbose    bool
	helpers    bool
)

// options are the conversion options, set before a command runs.
var options *razor2liquid.Options

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD93D"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6BCB77"))
)

var rootCmd = &cobra.Command{
	Use:   "razor2liquid",
	Short: "Convert Razor templates to Liquid templates",
	Long: `razor2liquid converts Razor templates, HTML with embedded C#, to Liquid
templates.

Constructs that can not be converted are replaced by a comment with their
source. The names with a special meaning, as Translate and GetFormattedPrice,
can be changed with a configuration file, by default razor2liquid.yaml in the
current directory.
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default "+configFile+")")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "output file or directory")
	rootCmd.PersistentFlags().StringVar(&ext, "ext", "", "extension of the converted files (default .liquid)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each converted file")
	rootCmd.PersistentFlags().BoolVar(&helpers, "helpers", false, "convert the helpers to partial templates")

	rootCmd.AddCommand(ConvertCmd, HelpersCmd, WatchCmd, ReplCmd, DumpCmd, ReportCmd)
}

func main() {
	os.Exit(run())
}

// run executes the command line and returns the exit status.
func run() int {
	err := rootCmd.Execute()
	razor2liquid.Logger().Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		return 1
	}
	return 0
}

// setup reads the configuration, applies the flags and sets the logger.
func setup(cmd *cobra.Command, args []string) error {
	config, err := readConfig()
	if err != nil {
		return err
	}
	options = config.Options()
	if cmd.Flags().Changed("ext") {
		options.Ext = ext
	}
	if cmd.Flags().Changed("helpers") {
		options.Helpers = helpers
	}
	if options.Ext == "" {
		options.Ext = ".liquid"
	}
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	razor2liquid.SetLogger(logger)
	return nil
}

// readConfig reads the configuration file. If the --config flag is not given
// and the default file does not exist, it returns the default configuration.
func readConfig() (*razor2liquid.Config, error) {
	name := configPath
	if name == "" {
		name = configFile
	}
	f, err := os.Open(name)
	if err != nil {
		if configPath == "" && errors.Is(err, fs.ErrNotExist) {
			return &razor2liquid.Config{Version: "v1", Symbols: razor2liquid.DefaultSymbols()}, nil
		}
		return nil, err
	}
	defer f.Close()
	config, err := razor2liquid.LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return config, nil
}

// newLogger returns a development logger if verbose is true, otherwise a
// production logger that logs only warnings and errors.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return config.Build()
}

// printErrors prints the parse errors of the template name on stderr.
func printErrors(name string, errs []*razor2liquid.ParseError) {
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, warningStyle.Render(name+":"+e.Error()))
	}
}
