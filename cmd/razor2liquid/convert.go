// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/open2b/razor2liquid"
	"github.com/spf13/cobra"
	"golang.org/x/tools/txtar"
)

// ConvertCmd converts a template, or all the templates of a directory.
var ConvertCmd = &cobra.Command{
	Use:   "convert <file|dir>",
	Short: "Convert a template or the templates of a directory",
	Long: `Convert converts a Razor template and writes the Liquid template to the
file given with --out, or to the standard output.

If a directory is given, every .cshtml file in the directory and in its
subdirectories is converted and written, with the same relative path, in the
directory given with --out or in the same directory.

With --helpers, the helpers are also written as partial templates.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if info.IsDir() {
			return convertDir(args[0], outPath)
		}
		if options.Helpers && outPath == "" {
			return errors.New("--helpers requires --out with a single template")
		}
		return convertFile(cmd.OutOrStdout(), args[0], outPath)
	},
}

// HelpersCmd prints the helpers of a template.
var HelpersCmd = &cobra.Command{
	Use:   "helpers <file>",
	Short: "Print the helpers of a template as a txtar archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		hs := razor2liquid.Helpers(src, options)
		names := make([]string, 0, len(hs))
		for name := range hs {
			names = append(names, name)
		}
		sort.Strings(names)
		ar := &txtar.Archive{}
		for _, name := range names {
			ar.Files = append(ar.Files, txtar.File{Name: name + razor2liquid.TemplateExt, Data: []byte(hs[name])})
		}
		_, err = cmd.OutOrStdout().Write(txtar.Format(ar))
		return err
	},
}

// convertFile converts the template name and writes it to out. If out is
// empty, it writes to w.
func convertFile(w io.Writer, name, out string) error {
	src, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	res, err := razor2liquid.Convert(src, options)
	if err != nil {
		var cerr *razor2liquid.ConversionError
		if errors.As(err, &cerr) {
			cerr.Path = name
		}
		return err
	}
	printErrors(name, res.Errors)
	if out == "" {
		_, err = io.WriteString(w, res.Liquid)
		return err
	}
	err = os.WriteFile(out, []byte(res.Liquid), 0666)
	if err != nil {
		return err
	}
	if !options.Helpers {
		return nil
	}
	results, err := razor2liquid.ConvertHelpers(src, options)
	if err != nil {
		return err
	}
	for helper, h := range results {
		printErrors(name+" (helper "+helper+")", h.Errors)
		err = os.WriteFile(filepath.Join(filepath.Dir(out), helper+options.Ext), []byte(h.Liquid), 0666)
		if err != nil {
			return err
		}
	}
	return nil
}

// convertDir converts the templates of the directory dir and writes them in
// the directory out. If out is empty, it writes them in dir.
func convertDir(dir, out string) error {
	if out == "" {
		out = dir
	}
	report, err := razor2liquid.ConvertFS(os.DirFS(dir), ".", dirWriter(out), options)
	if err != nil {
		return err
	}
	for _, f := range report.Files {
		printErrors(filepath.Join(dir, f.Path), f.Errors)
		if f.Err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(f.Err.Error()))
		}
	}
	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d of %d templates not converted", n, len(report.Files))
	}
	return nil
}

// dirWriter returns a function that writes files in the directory dir,
// creating the intermediate directories.
func dirWriter(dir string) razor2liquid.WriteFunc {
	return func(name string, data []byte) error {
		p := filepath.Join(dir, filepath.FromSlash(name))
		err := os.MkdirAll(filepath.Dir(p), 0777)
		if err != nil {
			return err
		}
		return os.WriteFile(p, data, 0666)
	}
}
