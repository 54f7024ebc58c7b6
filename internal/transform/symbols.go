// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"strings"
)

// Symbols is the table of the names that have a special meaning in a
// template. The zero value has no known names; use DefaultSymbols to get the
// default table.
type Symbols struct {

	// Layout is the property that, assigned with a string, declares the
	// layout of the template.
	Layout string `yaml:"layout"`

	// Model is the keyword that declares the type of the template model.
	Model string `yaml:"model"`

	// Culture is the function that returns a culture, as
	// "System.Globalization.CultureInfo.GetCultureInfo". A call can also
	// omit a leading part of the qualified name.
	Culture string `yaml:"culture"`

	// HelperMarker is the keyword that declares a helper.
	HelperMarker string `yaml:"helper_marker"`

	// HelperPrefix is the prefix of the helper names. A helper is extracted
	// with its name without the prefix.
	HelperPrefix string `yaml:"helper_prefix"`

	// Translate are the functions that translate a key.
	Translate []string `yaml:"translate"`

	// TranslateRaw are the functions that translate a key without escaping.
	TranslateRaw []string `yaml:"translate_raw"`

	// Raw are the functions that print their argument without escaping.
	Raw []string `yaml:"raw"`

	// Filters maps the formatting functions to the Liquid filters, as
	// "GetFormattedPrice" to "format_price".
	Filters map[string]string `yaml:"filters"`

	// RenderBody are the functions that render the body in a layout.
	RenderBody []string `yaml:"render_body"`

	// Partials maps the functions that show a partial to the partial names,
	// as "ShowBoleto" to "Boleto".
	Partials map[string]string `yaml:"partials"`

	// Equals is the method that compares two values.
	Equals string `yaml:"equals"`

	// ToString is the method that converts a value to string.
	ToString string `yaml:"to_string"`

	// IsNullOrEmpty are the functions that report whether a string is null
	// or empty.
	IsNullOrEmpty []string `yaml:"is_null_or_empty"`
}

// DefaultSymbols returns a new default symbol table.
func DefaultSymbols() *Symbols {
	return &Symbols{
		Layout:       "Layout",
		Model:        "model",
		Culture:      "System.Globalization.CultureInfo.GetCultureInfo",
		HelperMarker: "helper",
		HelperPrefix: "Show",
		Translate:    []string{"Translate", "TranslateFormat"},
		TranslateRaw: []string{"TranslateRaw"},
		Raw:          []string{"Raw"},
		Filters: map[string]string{
			"GetFormattedPrice": "format_price",
			"FormatCurrency":    "currency",
		},
		RenderBody: []string{"RenderBody"},
		Partials: map[string]string{
			"ShowBoleto":       "Boleto",
			"ShowWireTransfer": "WireTransfer",
		},
		Equals:        "Equals",
		ToString:      "ToString",
		IsNullOrEmpty: []string{"string.IsNullOrEmpty", "String.IsNullOrEmpty"},
	}
}

// isCulture reports whether fn, the function of a call, is the culture
// function.
func (s *Symbols) isCulture(fn string) bool {
	return fn == s.Culture || strings.HasSuffix(s.Culture, "."+fn)
}

// contains reports whether names contains name.
func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
