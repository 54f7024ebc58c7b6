// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/open2b/razor2liquid/ast/astutil"
	"github.com/open2b/razor2liquid/internal/csharp"
	"github.com/open2b/razor2liquid/internal/razor"
	"github.com/spf13/cobra"
)

// DumpCmd prints the spans of a template and the trees of its code spans.
var DumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print the spans and the code trees of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		spans, errs := razor.Classify(src)
		for _, span := range spans {
			fmt.Fprintln(w, span)
			if span.Kind != razor.Code {
				continue
			}
			unit, err := csharp.ParseFragment(span.Content)
			if err != nil {
				fmt.Fprintln(w, warningStyle.Render(err.Error()))
				continue
			}
			err = astutil.Dump(w, unit)
			if err != nil {
				return err
			}
		}
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, warningStyle.Render(args[0]+":"+e.Error()))
		}
		return nil
	},
}
