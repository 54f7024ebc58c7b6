// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/open2b/razor2liquid"
	"github.com/spf13/cobra"
)

var htmlReport bool

// ReportCmd converts the templates of a directory and prints a report.
var ReportCmd = &cobra.Command{
	Use:   "report <dir>",
	Short: "Print a conversion report of a directory",
	Long: `Report converts the templates of a directory and prints a report in
Markdown, or in HTML with --html. The converted templates are written only if
--out is given.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		write := func(string, []byte) error { return nil }
		if outPath != "" {
			write = dirWriter(outPath)
		}
		report, err := razor2liquid.ConvertFS(os.DirFS(args[0]), ".", write, options)
		if err != nil {
			return err
		}
		out := report.Markdown()
		if htmlReport {
			out, err = report.HTML()
			if err != nil {
				return err
			}
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	ReportCmd.Flags().BoolVar(&htmlReport, "html", false, "print the report in HTML")
}
