// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package razor2liquid

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var templateFS = fstest.MapFS{
	"views/Mail.cshtml": {Data: []byte("@{ Layout = \"MailLayout.cshtml\"; }\n<p>@ShowBoleto(p)</p>\n" +
		"@helper ShowBoleto(Payment p) {\n<hr />\n}\n")},
	"views/readme.txt":        {Data: []byte("not a template")},
	"views/shared/Bad.cshtml": {Data: []byte("@Model.Items[2]")},
	"views/shared/Foot.cshtml": {Data: []byte("<footer>@Translate(\"Footer\")</footer>\n" +
		"<p>@Html.Raw(a)</p>\n")},
}

func TestConvertFS(t *testing.T) {
	written := map[string]string{}
	write := func(name string, data []byte) error {
		written[name] = string(data)
		return nil
	}
	report, err := ConvertFS(templateFS, "views", write, &Options{Helpers: true})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := map[string]string{
		"Mail.liquid":        "{% layout 'MailLayout' %}\n<p>{% partial 'Boleto', p %}</p>\n",
		"Boleto.liquid":      "<hr />\n",
		"shared/Foot.liquid": "<footer>{{ \"Footer\" | translate }}</footer>\n<p>\n{% comment %}\n---Expression: InvocationExpression ---- From: TransformInvocation\nHtml.Raw(a)\n{% endcomment %}\n</p>\n",
	}
	if diff := cmp.Diff(want, written); diff != "" {
		t.Fatalf("(-want, +got):\n%s", diff)
	}
	if n := len(report.Files); n != 3 {
		t.Fatalf("unexpected %d files in the report, expecting 3", n)
	}
	mail := report.Files[0]
	if mail.Path != "Mail.cshtml" || mail.Layout != "MailLayout" || mail.Err != nil {
		t.Fatalf("unexpected report %+v", mail)
	}
	if diff := cmp.Diff([]string{"Boleto"}, mail.Helpers); diff != "" {
		t.Fatalf("helpers (-want, +got):\n%s", diff)
	}
	bad := report.Files[1]
	var cerr *ConversionError
	if !errors.As(bad.Err, &cerr) {
		t.Fatalf("unexpected error %v, expecting a *ConversionError", bad.Err)
	}
	wantErr := "shared/Bad.cshtml:1:14: conversion error: unsupported index 2, only index 0 can be converted"
	if got := bad.Err.Error(); got != wantErr {
		t.Fatalf("unexpected error %q, expecting %q", got, wantErr)
	}
	if foot := report.Files[2]; foot.Diagnostics != 1 {
		t.Fatalf("unexpected %d diagnostics, expecting 1", foot.Diagnostics)
	}
	if n := report.Failed(); n != 1 {
		t.Fatalf("unexpected %d failed templates, expecting 1", n)
	}
}

func TestConvertFSExt(t *testing.T) {
	fsys := fstest.MapFS{"a.cshtml": {Data: []byte("<p>a</p>")}}
	var names []string
	write := func(name string, data []byte) error {
		names = append(names, name)
		return nil
	}
	_, err := ConvertFS(fsys, ".", write, &Options{Ext: ".html"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if diff := cmp.Diff([]string{"a.html"}, names); diff != "" {
		t.Fatalf("(-want, +got):\n%s", diff)
	}
}

func TestConvertFSWriteError(t *testing.T) {
	errWrite := errors.New("disk full")
	write := func(name string, data []byte) error {
		return errWrite
	}
	_, err := ConvertFS(templateFS, "views", write, nil)
	if !errors.Is(err, errWrite) {
		t.Fatalf("unexpected error %v, expecting %v", err, errWrite)
	}
}

func TestConvertFSLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)
	write := func(name string, data []byte) error { return nil }
	_, err := ConvertFS(templateFS, "views", write, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n := logs.FilterMessage("converted").Len(); n != 2 {
		t.Fatalf("unexpected %d converted entries, expecting 2", n)
	}
	failed := logs.FilterMessage("conversion failed").All()
	if len(failed) != 1 {
		t.Fatalf("unexpected %d failed entries, expecting 1", len(failed))
	}
	if file := failed[0].ContextMap()["file"]; file != "shared/Bad.cshtml" {
		t.Fatalf("unexpected file %v, expecting %q", file, "shared/Bad.cshtml")
	}
}
