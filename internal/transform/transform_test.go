// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/open2b/razor2liquid/ast"
	"github.com/open2b/razor2liquid/internal/csharp"
	"github.com/open2b/razor2liquid/internal/razor"
)

var parser = ParserFunc(csharp.ParseFragment)

// convert classifies and converts src.
func convert(t *testing.T, src string) (*Result, error) {
	t.Helper()
	spans, errs := razor.Classify([]byte(src))
	if len(errs) > 0 {
		t.Fatalf("unexpected classification error: %s", errs[0])
	}
	return Convert(spans, Options{Parser: parser})
}

var convertTests = []struct {
	name     string
	src      string
	expected string
}{
	{"markup", "<p>hello</p>", "<p>hello</p>"},
	{"member", "<p>@Model.Title</p>", "<p>{{ Model.Title }}</p>"},
	{"identifier", "<li>@i</li>", "<li>{{ i }}</li>"},
	{"model", "@model Foo\n<p>x</p>", "<p>x</p>"},
	{"using", "@using System.Linq\n<p>x</p>", "<p>x</p>"},
	{"comment", "a@* c *@b", "ab"},
	{"first element", "@Model.Array[0]", "{{ Model.Array | first }}"},
	{"member of first element", "<p>@Model.Items[0].Name</p>", "<p>{{ Model.Items[0].Name }}</p>"},
	{"assign member of first element", "@{ var m = Model.Items[0].Name; }", "{% assign m = Model.Items[0].Name %}"},
	{"raw literal", `@Raw("<a href=\"x\">")`, `<a href="x">`},
	{"raw filter", "@Raw(GetFormattedPrice(course.TotalPrice, course.Discount))",
		"{{ course.TotalPrice | format_price: course.Discount | raw }}"},
	{"filter", "@FormatCurrency(Model.Total)", "{{ Model.Total | currency }}"},
	{"partial", "<b>@ShowWireTransfer(ding.Dong, blub)</b>", "<b>{% partial 'WireTransfer', ding.Dong, blub %}</b>"},
	{"render body", "<body>@RenderBody()</body>", "<body>{% renderbody %}</body>"},
	{"to string", "@Model.Total.ToString()", "{{ Model.Total }}"},
	{"translate", `@Translate("Key")`, `{{ "Key" | translate }}`},
	{"translate member", "@TranslateRaw(Keys.Welcome)", `{{ "Keys.Welcome" | translate | raw }}`},
	{"translate format", `@TranslateFormat("Key", Model.Name, "x")`, `{{ "Key" | translate: Model.Name, "x" }}`},
	{"append", `<img src="@(Model.Url + "blank.gif")">`, `<img src="{{ Model.Url | append: "blank.gif" }}">`},
	{"ternary", `@(ok ? "a" : "b")`, `{{ ok | tenary: "a", "b" }}`},
	{"negative", "@(-x)", "{{ -x }}"},
	{"declaration", "@{ var a = true; }", "{% assign a = true %}"},
	{"declaration without initializer", "@{ string s; }", `{% assign s = "" %}`},
	{"declarations", "@{ var a = 1, b = c; }", "{% assign a = 1 %}{% assign b = c %}"},
	{"cast", "@{ var p = (Payment)Model.Cart.Payment; }", "{% assign p = Model.Cart.Payment %}"},
	{"assignment", "<p>@{ x = a; }</p>", "<p>\n{% assign x = a %}</p>"},
	{"assignment at line start", "<p>\n@{ x = a; }", "<p>\n{% assign x = a %}"},
	{"layout", "@{ Layout = \"MailLayout.Htm.cshtml\"; }\n<html>", "{% layout 'MailLayout.Htm' %}\n<html>"},
	{"if", "@{ var a = true; }\n@if (a) {\n  <hello>@a</hello>\n}\n",
		"{% assign a = true %}\n{% if a %}\n  <hello>{{ a }}</hello>\n{% endif %}\n"},
	{"if else", "@if (a) {\n<b>x</b>\n} else {\n<i>y</i>\n}",
		"{% if a %}\n<b>x</b>\n{% else %}\n<i>y</i>\n{% endif %}"},
	{"else if", "@if (a) {\n<b>x</b>\n} else if (b == 1) {\n<i>y</i>\n}",
		"{% if a %}\n<b>x</b>\n{% elsif b == 1 %}\n<i>y</i>\n{% endif %}"},
	{"nested if", "@if (a) {\n  if (b) {\n<b>x</b>\n  }\n}",
		"{% if a %}\n  {% if b %}\n<b>x</b>\n  {% endif %}\n{% endif %}"},
	{"closed if", "@{ if (a) { x = 1; } }", "{% if a %}\n{% assign x = 1 %}\n{% endif %}"},
	{"foreach", "@foreach (var i in xs) {\n<li>@i</li>\n<li>x</li>\n}",
		"{% for i in xs %}\n<li>{{ i }}</li>\n<li>x</li>\n{% endfor %}"},
	{"not member", "@if (!Model.Done) {\n<b>x</b>\n}", "{% if Model.Done == false %}\n<b>x</b>\n{% endif %}"},
	{"unless", "@if (!(a && b)) {\n<b>x</b>\n}", "{% unless a and b %}\n<b>x</b>\n{% endunless %}"},
	{"not null or empty", "@if (!string.IsNullOrEmpty(Model.Name)) {\n<b>x</b>\n}",
		"{% if Model.Name | is_null_or_empty == false %}\n<b>x</b>\n{% endif %}"},
	{"not equals", "@if (!a.Equals(b)) {\n<b>x</b>\n}", "{% if a != b %}\n<b>x</b>\n{% endif %}"},
	{"equals", "@if (a.Equals(b) || c) {\n<b>x</b>\n}", "{% if a == b or c %}\n<b>x</b>\n{% endif %}"},
	{"culture", "@{ var culture = System.Globalization.CultureInfo.GetCultureInfo(\"zh-Hans\"); }\n<p>@TranslateFormat(\"Key\", culture, Model.Name)</p>",
		"{% culture 'zh-Hans' %}\n<p>{{ \"Key\" | translate: Model.Name }}</p>"},
	{"unsupported call", "<p>@Foo(1)</p>",
		"<p>\n{% comment %}\n---Expression: InvocationExpression ---- From: TransformInvocation\nFoo(1)\n{% endcomment %}\n</p>"},
	{"negated unsupported call", "@(!Foo(x))",
		"\n{% comment %}\n---Expression: PrefixUnaryExpression ---- From: TransformInvocation\n!Foo(x)\n{% endcomment %}\n"},
	{"deferred comment", "@{ var x = a > b ? 1 : 2; }",
		"{% assign x = TODO_COMMENT %}\n{% comment %}\n---Expression: ConditionalExpression ---- From: TransformExpression\na > b ? 1 : 2\n{% endcomment %}\n"},
	{"increment", "@{ i++; }",
		"\n{% comment %}\n---Expression: PostfixUnaryExpression ---- From: TransformStatement\ni++\n{% endcomment %}\n"},
	{"helper", "<body>\n    @ShowBoleto(payment)\n</body>\n@helper ShowBoleto(Payment payment) {\n<hr />\n}\n",
		"<body>\n    {% partial 'Boleto', payment %}\n</body>\n"},
}

func TestConvert(t *testing.T) {
	for _, test := range convertTests {
		t.Run(test.name, func(t *testing.T) {
			res, err := convert(t, test.src)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if len(res.Errors) > 0 {
				t.Fatalf("unexpected error: %s", res.Errors[0])
			}
			if diff := cmp.Diff(test.expected, res.Liquid); diff != "" {
				t.Fatalf("(-want, +got):\n%s", diff)
			}
		})
	}
}

func TestConvertLayout(t *testing.T) {
	res, err := convert(t, "<html>@{ Layout = \"Mail.cshtml\"; }</html>")
	if err != nil {
		t.Fatal(err)
	}
	if res.Layout != "Mail" {
		t.Fatalf("unexpected layout %q, expecting %q", res.Layout, "Mail")
	}
	if expected := "{% layout 'Mail' %}<html></html>"; res.Liquid != expected {
		t.Fatalf("unexpected %q, expecting %q", res.Liquid, expected)
	}
}

var convertErrorTests = []struct {
	name   string
	src    string
	liquid string
	errors []string
}{
	{"syntax error", "<p>@(a +)</p>",
		"<p>\n{% comment %}\n---Expression: Unparsed ---- From: ParseFragment\na +\n{% endcomment %}\n</p>",
		[]string{"1:9: syntax error: unexpected EOF, expecting expression"}},
	{"if without body", "@if (!course.IsBundleItem)",
		"{% if course.IsBundleItem == false %}\n{% endif %}", []string{"1:2: unclosed if block"}},
	{"invalid culture", "@{ var c = System.Globalization.CultureInfo.GetCultureInfo(\"not a culture\"); }",
		"{% culture 'not a culture' %}", []string{`1:12: invalid culture "not a culture"`}},
}

func TestConvertErrors(t *testing.T) {
	for _, test := range convertErrorTests {
		t.Run(test.name, func(t *testing.T) {
			res, err := convert(t, test.src)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if diff := cmp.Diff(test.liquid, res.Liquid); diff != "" {
				t.Fatalf("(-want, +got):\n%s", diff)
			}
			var errs []string
			for _, e := range res.Errors {
				errs = append(errs, e.Error())
			}
			if diff := cmp.Diff(test.errors, errs); diff != "" {
				t.Fatalf("(-want, +got):\n%s", diff)
			}
		})
	}
}

func TestConvertBlockErrors(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 1}
	spans := []razor.Span{{Kind: razor.Code, Content: "if (a) {", Pos: pos}}
	res, err := Convert(spans, Options{Parser: parser})
	if err != nil {
		t.Fatal(err)
	}
	if expected := "{% if a %}\n{% endif %}"; res.Liquid != expected {
		t.Fatalf("unexpected %q, expecting %q", res.Liquid, expected)
	}
	if len(res.Errors) != 1 || res.Errors[0].Message != "unclosed if block" {
		t.Fatalf("unexpected errors %v, expecting unclosed if block", res.Errors)
	}
	spans = []razor.Span{{Kind: razor.Code, Content: "}", Pos: pos}}
	res, err = Convert(spans, Options{Parser: parser})
	if err != nil {
		t.Fatal(err)
	}
	if res.Liquid != "" {
		t.Fatalf("unexpected %q, expecting empty output", res.Liquid)
	}
	if len(res.Errors) != 1 || res.Errors[0].Error() != "1:1: unexpected }" {
		t.Fatalf("unexpected errors %v, expecting 1:1: unexpected }", res.Errors)
	}
}

var conversionErrorTests = []struct {
	name string
	src  string
	err  string
}{
	{"index", "@Model.Array[1]", "1:14: conversion error: unsupported index 1, only index 0 can be converted"},
	{"index in member access", "@Model.Array[1].Name", "1:14: conversion error: unsupported index 1, only index 0 can be converted"},
	{"second culture", "@{ var a = System.Globalization.CultureInfo.GetCultureInfo(\"it\"); var b = System.Globalization.CultureInfo.GetCultureInfo(\"en\"); }",
		"1:71: conversion error: culture already bound to a"},
	{"modifier", "@{ public }", "1:4: conversion error: missing identifier after public"},
}

func TestConversionErrors(t *testing.T) {
	for _, test := range conversionErrorTests {
		t.Run(test.name, func(t *testing.T) {
			res, err := convert(t, test.src)
			if err == nil {
				t.Fatalf("expecting error %q, got no error", test.err)
			}
			if res != nil {
				t.Fatalf("unexpected result with error")
			}
			var cerr *ConversionError
			if !errors.As(err, &cerr) {
				t.Fatalf("unexpected error type %T, expecting *ConversionError", err)
			}
			if err.Error() != test.err {
				t.Fatalf("unexpected error %q, expecting %q", err, test.err)
			}
		})
	}
}

func TestConvertTrace(t *testing.T) {
	spans, _ := razor.Classify([]byte("<p>@Model.Title</p>"))
	var kinds []string
	_, err := Convert(spans, Options{Parser: parser, Trace: func(span razor.Span) {
		kinds = append(kinds, span.Kind.String())
	}})
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"Markup", "Transition", "Code", "Markup"}
	if diff := cmp.Diff(expected, kinds); diff != "" {
		t.Fatalf("(-want, +got):\n%s", diff)
	}
}

func TestConvertSymbols(t *testing.T) {
	symbols := DefaultSymbols()
	symbols.Filters["FormatDate"] = "date"
	symbols.Partials = map[string]string{"ShowFooter": "Footer"}
	spans, _ := razor.Classify([]byte("@FormatDate(d, \"%Y\") @ShowFooter()"))
	res, err := Convert(spans, Options{Parser: parser, Symbols: symbols})
	if err != nil {
		t.Fatal(err)
	}
	expected := `{{ d | date: "%Y" }} {% partial 'Footer' %}`
	if diff := cmp.Diff(expected, res.Liquid); diff != "" {
		t.Fatalf("(-want, +got):\n%s", diff)
	}
}

func TestRemoveFirstLine(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"abc":          "",
		"\n":           "",
		" Foo\n<p>":    "<p>",
		"a\r\nb\nc":    "b\nc",
		"\n\n<b>x</b>": "\n<b>x</b>",
	}
	for s, expected := range tests {
		if got := removeFirstLine(s); got != expected {
			t.Errorf("source %q: unexpected %q, expecting %q", s, got, expected)
		}
	}
}

func TestDiagnosticSource(t *testing.T) {
	res, err := convert(t, "@{ var x = Foo(a,\n  b); }")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Liquid, "\nFoo(a,\n  b)\n") {
		t.Fatalf("unexpected %q, expecting the source of the call", res.Liquid)
	}
}

func TestDiagnosticSourceFallback(t *testing.T) {
	pos := func(start, end int) *ast.Position {
		return &ast.Position{Line: 1, Column: start + 1, Start: start, End: end}
	}
	call := func(p *ast.Position) *ast.Invocation {
		return ast.NewInvocation(p, ast.NewIdentifier(pos(0, 2), "Foo"),
			[]ast.Expression{ast.NewIdentifier(pos(5, 5), "b")})
	}
	c := &conversion{fragment: "Foo( b )"}
	tests := []struct {
		name     string
		node     ast.Node
		expected string
	}{
		{"in range", call(pos(0, 7)), "Foo( b )"},
		{"end out of range", call(pos(0, 20)), "Foo(b)"},
		{"start after end", call(pos(5, 2)), "Foo(b)"},
		{"no position", call(nil), "Foo(b)"},
	}
	for _, test := range tests {
		if got := c.source(test.node); got != test.expected {
			t.Errorf("%s: unexpected %q, expecting %q", test.name, got, test.expected)
		}
	}
}
