// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package razor2liquid

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// TestConvertFiles converts the templates in testdata/convert. Each archive
// contains a "template.cshtml" file, the expected "template.liquid" file, the
// optional "errors" file with the expected errors, one per line, and a
// "helpers/<name>.liquid" file for each expected helper.
func TestConvertFiles(t *testing.T) {
	files, err := filepath.Glob("testdata/convert/*.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test files")
	}
	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			var src []byte
			var wantLiquid, wantErrors string
			wantHelpers := map[string]string{}
			for _, f := range ar.Files {
				switch {
				case f.Name == "template.cshtml":
					src = f.Data
				case f.Name == "template.liquid":
					wantLiquid = string(f.Data)
				case f.Name == "errors":
					wantErrors = string(f.Data)
				case strings.HasPrefix(f.Name, "helpers/"):
					name := strings.TrimSuffix(strings.TrimPrefix(f.Name, "helpers/"), ".liquid")
					wantHelpers[name] = string(f.Data)
				default:
					t.Fatalf("unexpected file %q in archive", f.Name)
				}
			}
			res, err := Convert(src, nil)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if diff := cmp.Diff(wantLiquid, res.Liquid); diff != "" {
				t.Fatalf("(-want, +got):\n%s", diff)
			}
			var gotErrors strings.Builder
			for _, e := range res.Errors {
				gotErrors.WriteString(e.Error())
				gotErrors.WriteByte('\n')
			}
			if diff := cmp.Diff(wantErrors, gotErrors.String()); diff != "" {
				t.Fatalf("errors (-want, +got):\n%s", diff)
			}
			helpers, err := ConvertHelpers(src, nil)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			gotHelpers := map[string]string{}
			for name, h := range helpers {
				gotHelpers[name] = h.Liquid
			}
			if diff := cmp.Diff(wantHelpers, gotHelpers); diff != "" {
				t.Fatalf("helpers (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestConvertLayout(t *testing.T) {
	res, err := Convert([]byte("@{ Layout = \"Main.cshtml\"; }\n<p>a</p>"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Layout != "Main" {
		t.Fatalf("unexpected layout %q, expecting %q", res.Layout, "Main")
	}
}

func TestConvertClassifierErrors(t *testing.T) {
	res, err := Convert([]byte("<p>@{ var a = 1;</p>"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Errors) == 0 {
		t.Fatal("expecting errors, got none")
	}
	for i := 1; i < len(res.Errors); i++ {
		if res.Errors[i].Pos.Start < res.Errors[i-1].Pos.Start {
			t.Fatalf("errors are not sorted by position: %v", res.Errors)
		}
	}
}

func TestConvertConversionError(t *testing.T) {
	_, err := Convert([]byte("@Model.Items[2]"), nil)
	if err == nil {
		t.Fatal("expecting error, got none")
	}
	cerr, ok := err.(*ConversionError)
	if !ok {
		t.Fatalf("unexpected error type %T, expecting *ConversionError", err)
	}
	want := "1:14: conversion error: unsupported index 2, only index 0 can be converted"
	if got := cerr.Error(); got != want {
		t.Fatalf("unexpected error %q, expecting %q", got, want)
	}
}

func TestConvertOptions(t *testing.T) {
	symbols := DefaultSymbols()
	symbols.Filters["FormatDate"] = "date"
	var kinds []string
	options := &Options{
		Symbols: symbols,
		Trace: func(span Span) {
			kinds = append(kinds, span.Kind.String())
		},
	}
	res, err := Convert([]byte("<p>@FormatDate(d)</p>"), options)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<p>{{ d | date }}</p>"; res.Liquid != want {
		t.Fatalf("unexpected %q, expecting %q", res.Liquid, want)
	}
	if diff := cmp.Diff([]string{"Markup", "Transition", "Code", "Markup"}, kinds); diff != "" {
		t.Fatalf("(-want, +got):\n%s", diff)
	}
}

func TestHelpers(t *testing.T) {
	src := []byte("<p>a</p>\n@helper ShowFooter() {\n<footer/>\n}\n")
	got := Helpers(src, nil)
	want := map[string]string{"Footer": "<footer/>\n"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want, +got):\n%s", diff)
	}
}

func TestConvertHelpersError(t *testing.T) {
	src := []byte("@helper ShowItem() {\n@Model.Items[1]\n}\n")
	_, err := ConvertHelpers(src, nil)
	if err == nil {
		t.Fatal("expecting error, got none")
	}
	if !strings.HasPrefix(err.Error(), "helper Item: ") {
		t.Fatalf("unexpected error %q", err)
	}
}

func TestConvertDeterministic(t *testing.T) {
	src := []byte("@{ var culture = System.Globalization.CultureInfo.GetCultureInfo(\"it-IT\"); }\n" +
		"@if (a) {\n<p>@TranslateFormat(\"K\", culture, b)</p>\n}\n<p>@Foo(1)</p>\n")
	first, err := Convert(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Convert(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first.Liquid, second.Liquid); diff != "" {
		t.Fatalf("(-first, +second):\n%s", diff)
	}
}
