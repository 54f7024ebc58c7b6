// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package razor2liquid

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Report is the report of a folder conversion.
type Report struct {
	Files []FileReport
}

// FileReport is the report of the conversion of a template.
type FileReport struct {
	Path        string        // path of the template
	Layout      string        // declared layout
	Errors      []*ParseError // parse errors
	Diagnostics int           // number of diagnostic comments
	Helpers     []string      // names of the written helpers
	Err         error         // error that aborted the conversion
}

// Failed returns the number of templates whose conversion has been aborted.
func (r *Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Markdown returns the report in Markdown format.
func (r *Report) Markdown() []byte {
	var b bytes.Buffer
	b.WriteString("# Conversion report\n\n")
	if len(r.Files) == 0 {
		b.WriteString("No templates found.\n")
		return b.Bytes()
	}
	b.WriteString("| Template | Layout | Errors | Diagnostics | Helpers |\n")
	b.WriteString("|---|---|---:|---:|---|\n")
	for _, f := range r.Files {
		errs := fmt.Sprint(len(f.Errors))
		if f.Err != nil {
			errs = "failed"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s |\n", escapeCell(f.Path), escapeCell(f.Layout),
			errs, f.Diagnostics, escapeCell(strings.Join(f.Helpers, ", ")))
	}
	first := true
	for _, f := range r.Files {
		if f.Err == nil && len(f.Errors) == 0 {
			continue
		}
		if first {
			b.WriteString("\n## Errors\n")
			first = false
		}
		fmt.Fprintf(&b, "\n### %s\n\n", f.Path)
		if f.Err != nil {
			fmt.Fprintf(&b, "- `%s`\n", f.Err)
		}
		for _, e := range f.Errors {
			fmt.Fprintf(&b, "- `%s`\n", e)
		}
	}
	return b.Bytes()
}

// HTML returns the report in HTML format.
func (r *Report) HTML() ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var b bytes.Buffer
	err := md.Convert(r.Markdown(), &b)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// escapeCell escapes s to be used in a table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
