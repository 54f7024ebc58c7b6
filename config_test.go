// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package razor2liquid

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	src := `version: v1.2
ext: .html
helpers: true
symbols:
  filters:
    FormatDate: date
  partials:
    ShowFooter: Footer
`
	config, err := LoadConfig(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	options := config.Options()
	if options.Ext != ".html" || !options.Helpers {
		t.Fatalf("unexpected options %+v", options)
	}
	wantFilters := map[string]string{
		"GetFormattedPrice": "format_price",
		"FormatCurrency":    "currency",
		"FormatDate":        "date",
	}
	if diff := cmp.Diff(wantFilters, options.Symbols.Filters); diff != "" {
		t.Fatalf("filters (-want, +got):\n%s", diff)
	}
	if _, ok := options.Symbols.Partials["ShowBoleto"]; !ok {
		t.Fatal("default partial ShowBoleto has been lost")
	}
	if options.Symbols.Layout != "Layout" {
		t.Fatalf("unexpected layout symbol %q", options.Symbols.Layout)
	}
}

func TestLoadConfigVersion(t *testing.T) {
	for _, version := range []string{"v1", `"1"`, "1.0.3", "v1.4"} {
		_, err := LoadConfig(strings.NewReader("version: " + version + "\n"))
		if err != nil {
			t.Errorf("version %s: unexpected error: %s", version, err)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		src string
		err string
	}{
		{"", "razor2liquid: invalid configuration: missing version"},
		{"ext: .liquid\n", "razor2liquid: invalid configuration: missing version"},
		{"version: v2\n", "razor2liquid: invalid configuration: unsupported version v2"},
		{"version: next\n", `razor2liquid: invalid configuration: invalid version "next"`},
		{"version: v1\next: liquid\n", `razor2liquid: invalid configuration: extension "liquid" does not start with a dot`},
		{"version: v1\nlayout: a\n", ""},
	}
	for _, test := range tests {
		_, err := LoadConfig(strings.NewReader(test.src))
		if err == nil {
			t.Errorf("source %q: expecting error, got none", test.src)
			continue
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("source %q: error %q does not wrap ErrInvalidConfig", test.src, err)
		}
		if test.err != "" && err.Error() != test.err {
			t.Errorf("source %q: unexpected error %q, expecting %q", test.src, err, test.err)
		}
	}
}
