// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csharp

import (
	"testing"
)

var typeTests = map[string][]tokenTyp{
	``:                  {},
	`a`:                 {tokenIdentifier},
	`a.b`:               {tokenIdentifier, tokenPeriod, tokenIdentifier},
	`_x1`:               {tokenIdentifier},
	`città`:             {tokenIdentifier},
	`public`:            {tokenModifier},
	`new`:               {tokenKeyword},
	`if else foreach`:   {tokenIf, tokenElse, tokenForEach},
	`true false null`:   {tokenTrue, tokenFalse, tokenNull},
	`"a\"b"`:            {tokenInterpretedString},
	`@"a""b"`:           {tokenVerbatimString},
	`'a'`:               {tokenChar},
	`'\''`:              {tokenChar},
	`12 3.5 10m .5`:     {tokenNumber, tokenNumber, tokenNumber, tokenNumber},
	`a=b==c!=d`:         {tokenIdentifier, tokenSimpleAssignment, tokenIdentifier, tokenEqual, tokenIdentifier, tokenNotEqual, tokenIdentifier},
	`+= -= ++ --`:       {tokenAdditionAssignment, tokenSubtractionAssignment, tokenIncrement, tokenDecrement},
	`< <= > >=`:         {tokenLess, tokenLessOrEqual, tokenGreater, tokenGreaterOrEqual},
	`&& || & | ^ !`:     {tokenAndAnd, tokenOrOr, tokenAnd, tokenOr, tokenXor, tokenNot},
	`a ?? b ? c : d`:    {tokenIdentifier, tokenCoalesce, tokenIdentifier, tokenQuestion, tokenIdentifier, tokenColon, tokenIdentifier},
	`x => y`:            {tokenIdentifier, tokenArrow, tokenIdentifier},
	`a // comment`:      {tokenIdentifier},
	"a /* b\n c */ d":   {tokenIdentifier, tokenIdentifier},
	`f(a, b[0]);`:       {tokenIdentifier, tokenLeftParenthesis, tokenIdentifier, tokenComma, tokenIdentifier, tokenLeftBracket, tokenNumber, tokenRightBracket, tokenRightParenthesis, tokenSemicolon},
	`{ }`:               {tokenLeftBrace, tokenRightBrace},
	`a * b / c % d - e`: {tokenIdentifier, tokenMultiplication, tokenIdentifier, tokenDivision, tokenIdentifier, tokenModulo, tokenIdentifier, tokenSubtraction, tokenIdentifier},
}

func TestLexerTypes(t *testing.T) {
	for src, typs := range typeTests {
		tokens, err := scan(src)
		if err != nil {
			t.Errorf("source: %q, unexpected error: %s", src, err)
			continue
		}
		tokens = tokens[:len(tokens)-1]
		if len(tokens) != len(typs) {
			t.Errorf("source: %q, unexpected %d tokens, expecting %d", src, len(tokens), len(typs))
			continue
		}
		for i, tok := range tokens {
			if tok.typ != typs[i] {
				t.Errorf("source: %q, unexpected %s, expecting %s", src, tok.typ, typs[i])
				break
			}
		}
	}
}

func TestLexerPositions(t *testing.T) {
	tokens, err := scan("a\n  bc")
	if err != nil {
		t.Fatal(err)
	}
	pos := tokens[1].pos
	if pos.Line != 2 || pos.Column != 3 || pos.Start != 4 || pos.End != 5 {
		t.Fatalf("unexpected position %d:%d %d-%d, expecting 2:3 4-5", pos.Line, pos.Column, pos.Start, pos.End)
	}
	if eof := tokens[2]; eof.typ != tokenEOF || eof.pos.Start != 6 {
		t.Fatalf("unexpected last token %s at %d, expecting EOF at 6", eof, eof.pos.Start)
	}
}

func TestTokenString(t *testing.T) {
	tests := map[tokenTyp]string{
		tokenInterpretedString: "string",
		tokenVerbatimString:    "verbatim string",
		tokenEOF:               "EOF",
		tokenTyp(-1):           "unknown token",
	}
	for typ, expected := range tests {
		if got := typ.String(); got != expected {
			t.Errorf("unexpected %q, expecting %q", got, expected)
		}
	}
}
