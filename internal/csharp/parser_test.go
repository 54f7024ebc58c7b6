// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csharp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/open2b/razor2liquid/ast"
)

var parseFragmentTests = []struct {
	src   string
	str   string
	kinds []ast.Kind
}{
	{"", "", nil},
	{"// comment", "", nil},
	{"Model.Title", "Model.Title", []ast.Kind{ast.KindIncompleteMember}},
	{"model", "model", []ast.Kind{ast.KindIncompleteMember}},
	{"public", "public", []ast.Kind{ast.KindIncompleteMember}},
	{"using System.Linq", "using System.Linq", []ast.Kind{ast.KindDirective}},
	{"using System.Linq;\n", "using System.Linq", []ast.Kind{ast.KindDirective}},
	{"inherits Foo.Bar", "inherits Foo.Bar", []ast.Kind{ast.KindDirective}},
	{"var a = 1;", "var a = 1;", []ast.Kind{ast.KindLocalDeclaration}},
	{"var a = 1", "var a = 1;", []ast.Kind{ast.KindLocalDeclaration}},
	{"var a = 1, b;", "var a = 1, b;", []ast.Kind{ast.KindLocalDeclaration}},
	{"string s;", "string s;", []ast.Kind{ast.KindLocalDeclaration}},
	{"a.b c;", "a.b c;", []ast.Kind{ast.KindLocalDeclaration}},
	{"x = y + 1;", "x = y + 1;", []ast.Kind{ast.KindExpressionStatement}},
	{"x += 1; y -= 2;", "x += 1; y -= 2;", []ast.Kind{ast.KindExpressionStatement, ast.KindExpressionStatement}},
	{`Translate("a", b)`, `Translate("a", b);`, []ast.Kind{ast.KindExpressionStatement}},
	{"items[0].Name", "items[0].Name;", []ast.Kind{ast.KindExpressionStatement}},
	{"i++;", "i++;", []ast.Kind{ast.KindExpressionStatement}},
	{"a ? b : c", "a ? b : c;", []ast.Kind{ast.KindExpressionStatement}},
	{"!(a && b)", "!(a && b);", []ast.Kind{ast.KindExpressionStatement}},
	{"-x", "-x;", []ast.Kind{ast.KindExpressionStatement}},
	{"price = 10.5m;", "price = 10.5m;", []ast.Kind{ast.KindExpressionStatement}},
	{`x = @"C:\dir";`, `x = @"C:\dir";`, []ast.Kind{ast.KindExpressionStatement}},
	{"var p = (Payment)Model.Cart.Payment;", "var p = (Payment)Model.Cart.Payment;", []ast.Kind{ast.KindLocalDeclaration}},
	{"var t = (a) + b;", "var t = (a) + b;", []ast.Kind{ast.KindLocalDeclaration}},
	{"if (a) {", "if (a) {", []ast.Kind{ast.KindIf}},
	{"if (a) { b(); } else { c(); }", "if (a) { b(); } else { c(); }", []ast.Kind{ast.KindIf}},
	{"if (a) { b = 1;", "if (a) { b = 1;", []ast.Kind{ast.KindIf}},
	{"}", "}", []ast.Kind{ast.KindBlockEnd}},
	{"}\n}", "} }", []ast.Kind{ast.KindBlockEnd, ast.KindBlockEnd}},
	{"} else {", "} else {", []ast.Kind{ast.KindBlockEnd, ast.KindElseClause}},
	{"} else if (x == 1) {", "} else if (x == 1) {", []ast.Kind{ast.KindBlockEnd, ast.KindElseClause}},
	{"foreach (var item in Model.Items) {", "foreach (var item in Model.Items) {", []ast.Kind{ast.KindForEach}},
	{"{ ; }", "{ ; }", []ast.Kind{ast.KindBlock}},
}

func TestParseFragment(t *testing.T) {
	for _, test := range parseFragmentTests {
		t.Run(test.src, func(t *testing.T) {
			unit, err := ParseFragment(test.src)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got := unit.String(); got != test.str {
				t.Fatalf("unexpected %q, expecting %q", got, test.str)
			}
			var kinds []ast.Kind
			for _, node := range unit.Nodes {
				kinds = append(kinds, node.Kind())
			}
			if diff := cmp.Diff(test.kinds, kinds); diff != "" {
				t.Fatalf("(-want, +got):\n%s", diff)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	unit, err := ParseFragment("a || b && c == d + e * f")
	if err != nil {
		t.Fatal(err)
	}
	expr := unit.Nodes[0].(*ast.ExpressionStatement).Expr
	var ops []ast.OperatorType
	for {
		b, ok := expr.(*ast.Binary)
		if !ok {
			break
		}
		ops = append(ops, b.Op)
		expr = b.Expr2
	}
	want := []ast.OperatorType{ast.OperatorOr, ast.OperatorAnd, ast.OperatorEqual,
		ast.OperatorAddition, ast.OperatorMultiplication}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("(-want, +got):\n%s", diff)
	}
}

func TestParsePositions(t *testing.T) {
	src := "if (Model.IsNew) {"
	unit, err := ParseFragment(src)
	if err != nil {
		t.Fatal(err)
	}
	node := unit.Nodes[0].(*ast.If)
	cond := node.Condition.Pos()
	if got := src[cond.Start : cond.End+1]; got != "Model.IsNew" {
		t.Fatalf("unexpected condition source %q", got)
	}
	if cond.Line != 1 || cond.Column != 5 {
		t.Fatalf("unexpected condition position %s, expecting 1:5", cond)
	}
	then := node.Then.(*ast.Block)
	if !then.Open {
		t.Fatal("expecting an open block")
	}
}

func TestParseOpenElse(t *testing.T) {
	unit, err := ParseFragment("} else if (a) {")
	if err != nil {
		t.Fatal(err)
	}
	els := unit.Nodes[1].(*ast.ElseClause)
	inner, ok := els.Statement.(*ast.If)
	if !ok {
		t.Fatalf("unexpected else statement %T, expecting *ast.If", els.Statement)
	}
	if block := inner.Then.(*ast.Block); !block.Open {
		t.Fatal("expecting an open block")
	}
}

var parseFragmentErrorTests = []struct {
	src string
	err string
}{
	{"if a", "1:4: syntax error: unexpected name a, expecting ("},
	{"else {", "1:1: syntax error: unexpected else, expecting }"},
	{"x; else {", "1:4: syntax error: unexpected else"},
	{"for (;;) {", "1:1: syntax error: unexpected keyword for"},
	{"a +", "1:4: syntax error: unexpected EOF, expecting expression"},
	{`"abc`, "1:1: syntax error: string not terminated"},
	{"f(a b)", "1:5: syntax error: unexpected name b, expecting , or )"},
	{"a #", "1:3: syntax error: unexpected '#'"},
	{"a = b c", "1:7: syntax error: unexpected name c at end of statement"},
}

func TestParseFragmentErrors(t *testing.T) {
	for _, test := range parseFragmentErrorTests {
		t.Run(test.src, func(t *testing.T) {
			_, err := ParseFragment(test.src)
			if err == nil {
				t.Fatalf("expecting error %q, got no error", test.err)
			}
			if err.Error() != test.err {
				t.Fatalf("unexpected error %q, expecting %q", err, test.err)
			}
		})
	}
}
