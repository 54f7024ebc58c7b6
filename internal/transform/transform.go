// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform converts the spans of a classified Razor template to a
// Liquid template.
package transform

import (
	"errors"
	"strings"

	"github.com/open2b/razor2liquid/ast"
	"github.com/open2b/razor2liquid/internal/razor"
)

// CodeParser is implemented by the parsers of the code spans.
type CodeParser interface {
	ParseFragment(src string) (*ast.Unit, error)
}

// ParserFunc is an adapter to use a function as a CodeParser.
type ParserFunc func(src string) (*ast.Unit, error)

// ParseFragment calls f(src).
func (f ParserFunc) ParseFragment(src string) (*ast.Unit, error) {
	return f(src)
}

// PositionError is implemented by the errors returned by a CodeParser that
// have a position in the fragment.
type PositionError interface {
	error
	Position() ast.Position
	Message() string
}

// Options are the options of a conversion.
type Options struct {

	// Parser parses the code spans. It is required.
	Parser CodeParser

	// Symbols is the symbol table. If nil, DefaultSymbols is used.
	Symbols *Symbols

	// Trace, if not nil, is called for each span before it is converted.
	Trace func(span razor.Span)
}

// Result is the result of a conversion.
type Result struct {
	Liquid string        // the Liquid template
	Layout string        // the declared layout, without extension
	Errors []*ParseError // non-fatal errors in order of occurrence
}

// Convert converts the spans of a template. The non-fatal errors are
// returned in the result, a fatal error is returned as a *ConversionError.
func Convert(spans []razor.Span, options Options) (result *Result, err error) {

	symbols := options.Symbols
	if symbols == nil {
		symbols = DefaultSymbols()
	}
	c := newConversion(options.Parser, symbols)

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*ConversionError); ok {
				result = nil
				err = e
			} else {
				panic(r)
			}
		}
	}()

	for _, span := range spans {
		if options.Trace != nil {
			options.Trace(span)
		}
		c.span(span)
	}

	if n := len(c.blocks); n > 0 {
		c.errorf(nil, "unclosed %s block", c.blocks[n-1])
		c.drain()
	}

	return &Result{Liquid: string(c.out), Layout: c.layout, Errors: c.errors}, nil
}

// span converts a span.
func (c *conversion) span(s razor.Span) {
	c.spanPos = s.Pos
	c.fragment = ""
	switch s.Kind {
	case razor.Markup:
		if c.helper {
			return
		}
		text := s.Content
		if c.suppressPrefix {
			text = removeFirstLine(text)
			c.suppressPrefix = false
		}
		c.write(text)
	case razor.Code:
		if c.helper {
			c.skipHelper(s.Content)
			return
		}
		c.code(s.Content)
	case razor.MetaCode:
		if !c.helper && strings.Contains(s.Content, c.symbols.HelperMarker) {
			c.drain()
			c.trimTrailingSpaces()
			c.helper = true
			c.helperBraces = 0
			c.helperOpened = false
		}
	case razor.Comment, razor.Transition:
	}
}

// code converts a code span.
func (c *conversion) code(src string) {
	c.fragment = src
	unit, err := c.parser.ParseFragment(src)
	if err != nil {
		var pos *ast.Position
		msg := err.Error()
		var perr PositionError
		if errors.As(err, &perr) {
			p := perr.Position()
			pos = &p
			msg = perr.Message()
		}
		c.errorf(pos, "%s", msg)
		c.comment("Unparsed", "ParseFragment", strings.TrimSpace(src))
		return
	}
	if len(unit.Nodes) == 1 {
		if m, ok := unit.Nodes[0].(*ast.IncompleteMember); ok {
			c.incompleteMember(m)
			return
		}
	}
	c.nodes(unit.Nodes)
}

// skipHelper skips a code span of a helper block. The helper ends when its
// braces are balanced, and the line that follows it is removed.
func (c *conversion) skipHelper(src string) {
	open := strings.Count(src, "{")
	if open > 0 {
		c.helperOpened = true
	}
	c.helperBraces += open - strings.Count(src, "}")
	if c.helperOpened && c.helperBraces <= 0 {
		c.helper = false
		c.suppressPrefix = true
	}
}

// removeFirstLine removes the first line of s, including its newline. It
// returns an empty string if s has only one line.
func removeFirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return ""
}
