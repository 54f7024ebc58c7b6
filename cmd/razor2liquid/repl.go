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
	"strings"

	"github.com/open2b/razor2liquid"
	"github.com/open2b/razor2liquid/internal/razor"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".razor2liquid_history"
	promptMain  = "razor> "
	promptCont  = "...... "
)

// ReplCmd reads Razor snippets from the terminal and prints their conversion.
var ReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Convert Razor snippets interactively",
	Long: `Repl reads Razor snippets and prints their conversion. A snippet with an
unterminated code block or statement continues on the next line. Type :quit
or press Ctrl+D to exit.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repl(cmd.OutOrStdout())
		return nil
	},
}

func repl(w io.Writer) {
	fmt.Fprintln(w, titleStyle.Render("razor2liquid")+" type :quit to exit")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := readSnippet(ln)
		if !ok {
			fmt.Fprintln(w)
			return
		}
		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit":
			return
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		res, err := razor2liquid.Convert([]byte(src), options)
		if err != nil {
			fmt.Fprintln(w, errorStyle.Render(err.Error()))
			continue
		}
		for _, e := range res.Errors {
			fmt.Fprintln(w, warningStyle.Render(e.Error()))
		}
		fmt.Fprintln(w, res.Liquid)
	}
}

// readSnippet reads a snippet, reading other lines while the snippet has an
// unterminated construct. It returns false at the end of the input.
func readSnippet(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Aborted with Ctrl+C.
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !unterminated(b.String()) {
			return b.String(), true
		}
	}
}

// unterminated reports whether src ends inside a code block, a statement or
// an explicit expression.
func unterminated(src string) bool {
	_, errs := razor.Classify([]byte(src))
	for _, e := range errs {
		if strings.HasPrefix(e.Msg, "unterminated") {
			return true
		}
	}
	return false
}
