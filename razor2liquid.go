// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package razor2liquid

import (
	"fmt"
	"sort"

	"github.com/open2b/razor2liquid/internal/csharp"
	"github.com/open2b/razor2liquid/internal/razor"
	"github.com/open2b/razor2liquid/internal/transform"
)

// Result is the result of the conversion of a template.
type Result = transform.Result

// Symbols is the table of the names with a special meaning in a template.
type Symbols = transform.Symbols

// Span is a classified span of a template.
type Span = razor.Span

// Options are the options of a conversion.
type Options struct {

	// Symbols is the symbol table. If nil, the default table is used.
	Symbols *Symbols

	// Trace, if not nil, is called with every span of the template before it
	// is converted.
	Trace func(span Span)

	// Ext is the extension of the converted files written by ConvertFS. If
	// empty, it is ".liquid".
	Ext string

	// Helpers reports whether ConvertFS also writes the helpers as partial
	// templates.
	Helpers bool
}

// DefaultSymbols returns a new default symbol table.
func DefaultSymbols() *Symbols {
	return transform.DefaultSymbols()
}

var parser = transform.ParserFunc(csharp.ParseFragment)

// Convert converts the Razor template src to a Liquid template.
//
// Syntax errors and constructs that can not be converted do not stop the
// conversion: syntax errors are returned in the Errors field of the result,
// and an unconvertible construct is replaced by a comment with its source.
// If the template uses a construct that can not be converted safely, Convert
// returns a *ConversionError error.
func Convert(src []byte, options *Options) (*Result, error) {
	spans, errs := razor.Classify(src)
	opts := transform.Options{Parser: parser}
	if options != nil {
		opts.Symbols = options.Symbols
		opts.Trace = options.Trace
	}
	res, err := transform.Convert(spans, opts)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		merged := make([]*ParseError, 0, len(errs)+len(res.Errors))
		for _, e := range errs {
			merged = append(merged, &ParseError{Pos: e.Pos, Message: e.Msg})
		}
		merged = append(merged, res.Errors...)
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].Pos.Start < merged[j].Pos.Start
		})
		res.Errors = merged
	}
	return res, nil
}

// Helpers returns the helpers declared in the Razor template src. The
// returned map maps the helper names, without the "Show" prefix, to the
// Razor source of their bodies.
func Helpers(src []byte, options *Options) map[string]string {
	spans, _ := razor.Classify(src)
	var symbols *Symbols
	if options != nil {
		symbols = options.Symbols
	}
	return transform.Helpers(spans, symbols)
}

// ConvertHelpers converts the helpers declared in the Razor template src.
// Each helper body is converted as a template.
func ConvertHelpers(src []byte, options *Options) (map[string]*Result, error) {
	helpers := Helpers(src, options)
	names := make([]string, 0, len(helpers))
	for name := range helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	results := make(map[string]*Result, len(helpers))
	for _, name := range names {
		res, err := Convert([]byte(helpers[name]), options)
		if err != nil {
			return nil, fmt.Errorf("helper %s: %w", name, err)
		}
		results[name] = res
	}
	return results, nil
}
