// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"strings"

	"github.com/open2b/razor2liquid/internal/razor"
)

// Helpers extracts the helper blocks of a template. It returns the Razor
// source of their bodies keyed by the helper name without the prefix, as
// "Boleto" for the helper "ShowBoleto". A body can be converted on its own.
func Helpers(spans []razor.Span, symbols *Symbols) map[string]string {
	if symbols == nil {
		symbols = DefaultSymbols()
	}
	x := &extraction{symbols: symbols, helpers: map[string]string{}}
	for _, s := range spans {
		x.span(s)
	}
	return x.helpers
}

// extraction is the state of a helper extraction.
type extraction struct {
	symbols *Symbols
	helpers map[string]string

	inHelper bool     // in a helper block
	opened   bool     // reports whether the helper body has been opened
	braces   int      // brace depth
	name     string   // name of the current helper
	prefix   string   // transition to prepend to the next code span
	lines    []string // body fragments
}

func (x *extraction) span(s razor.Span) {
	switch s.Kind {
	case razor.Transition:
		if x.inHelper && x.braces > 0 && s.Content != "@" {
			x.lines = append(x.lines, s.Content)
			return
		}
		x.prefix = s.Content
	case razor.MetaCode:
		if !x.inHelper && strings.Contains(s.Content, x.symbols.HelperMarker) {
			x.inHelper = true
			x.prefix = ""
		}
	case razor.Code:
		if !x.inHelper {
			return
		}
		if x.braces > 0 {
			if strings.TrimSpace(s.Content) != "" {
				x.lines = append(x.lines, x.prefix+s.Content)
			}
		} else if p := x.symbols.HelperPrefix; strings.HasPrefix(s.Content, p) {
			if i := strings.IndexByte(s.Content, '('); i > len(p) {
				x.name = s.Content[len(p):i]
			}
		}
		x.prefix = ""
		x.count(s.Content)
	case razor.Markup:
		if !x.inHelper {
			return
		}
		if x.braces > 0 {
			x.lines = append(x.lines, s.Content)
		}
		x.count(s.Content)
	}
}

// count updates the brace depth with the braces in s and ends the helper
// when the depth returns to zero.
func (x *extraction) count(s string) {
	open := strings.Count(s, "{")
	if open > 0 {
		x.opened = true
	}
	x.braces += open - strings.Count(s, "}")
	if !x.opened || x.braces > 0 {
		return
	}
	// The last fragment holds the closing brace of the helper.
	if n := len(x.lines); n > 0 {
		last := x.lines[n-1]
		if i := strings.LastIndexByte(last, '}'); i >= 0 {
			last = last[:i]
		}
		if strings.TrimSpace(last) == "" {
			x.lines = x.lines[:n-1]
		} else {
			x.lines[n-1] = last
		}
	}
	if x.name != "" {
		x.helpers[x.name] = trimLeadingBlankLine(strings.Join(x.lines, ""))
	}
	*x = extraction{symbols: x.symbols, helpers: x.helpers}
}

// trimLeadingBlankLine removes the first line of s if it is blank.
func trimLeadingBlankLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i < 0 || strings.TrimSpace(s[:i]) != "" {
		return s
	}
	return s[i+1:]
}
