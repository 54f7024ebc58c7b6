// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csharp

import (
	"fmt"

	"github.com/open2b/razor2liquid/ast"
)

// Token type.
type tokenTyp int

const (
	tokenIdentifier            tokenTyp = iota // customerName
	tokenModifier                              // public, static, ...
	tokenKeyword                               // for, while, new, ...
	tokenIf                                    // if
	tokenElse                                  // else
	tokenForEach                               // foreach
	tokenIn                                    // in
	tokenUsing                                 // using
	tokenTrue                                  // true
	tokenFalse                                 // false
	tokenNull                                  // null
	tokenInterpretedString                     // "abc"
	tokenVerbatimString                        // @"abc"
	tokenChar                                  // 'a'
	tokenNumber                                // 12.5m
	tokenPeriod                                // .
	tokenComma                                 // ,
	tokenSemicolon                             // ;
	tokenColon                                 // :
	tokenQuestion                              // ?
	tokenLeftParenthesis                       // (
	tokenRightParenthesis                      // )
	tokenLeftBracket                           // [
	tokenRightBracket                          // ]
	tokenLeftBrace                             // {
	tokenRightBrace                            // }
	tokenSimpleAssignment                      // =
	tokenAdditionAssignment                    // +=
	tokenSubtractionAssignment                 // -=
	tokenEqual                                 // ==
	tokenNotEqual                              // !=
	tokenNot                                   // !
	tokenLess                                  // <
	tokenLessOrEqual                           // <=
	tokenGreater                               // >
	tokenGreaterOrEqual                        // >=
	tokenAndAnd                                // &&
	tokenOrOr                                  // ||
	tokenAnd                                   // &
	tokenOr                                    // |
	tokenXor                                   // ^
	tokenAddition                              // +
	tokenSubtraction                           // -
	tokenMultiplication                        // *
	tokenDivision                              // /
	tokenModulo                                // %
	tokenCoalesce                              // ??
	tokenIncrement                             // ++
	tokenDecrement                             // --
	tokenArrow                                 // =>
	tokenEOF                                   // eof
)

var tokenString = map[tokenTyp]string{
	tokenIdentifier:            "identifier",
	tokenModifier:              "modifier",
	tokenKeyword:               "keyword",
	tokenIf:                    "if",
	tokenElse:                  "else",
	tokenForEach:               "foreach",
	tokenIn:                    "in",
	tokenUsing:                 "using",
	tokenTrue:                  "true",
	tokenFalse:                 "false",
	tokenNull:                  "null",
	tokenInterpretedString:     "string",
	tokenVerbatimString:        "verbatim string",
	tokenChar:                  "char",
	tokenNumber:                "number",
	tokenPeriod:                ".",
	tokenComma:                 ",",
	tokenSemicolon:             ";",
	tokenColon:                 ":",
	tokenQuestion:              "?",
	tokenLeftParenthesis:       "(",
	tokenRightParenthesis:      ")",
	tokenLeftBracket:           "[",
	tokenRightBracket:          "]",
	tokenLeftBrace:             "{",
	tokenRightBrace:            "}",
	tokenSimpleAssignment:      "=",
	tokenAdditionAssignment:    "+=",
	tokenSubtractionAssignment: "-=",
	tokenEqual:                 "==",
	tokenNotEqual:              "!=",
	tokenNot:                   "!",
	tokenLess:                  "<",
	tokenLessOrEqual:           "<=",
	tokenGreater:               ">",
	tokenGreaterOrEqual:        ">=",
	tokenAndAnd:                "&&",
	tokenOrOr:                  "||",
	tokenAnd:                   "&",
	tokenOr:                    "|",
	tokenXor:                   "^",
	tokenAddition:              "+",
	tokenSubtraction:           "-",
	tokenMultiplication:        "*",
	tokenDivision:              "/",
	tokenModulo:                "%",
	tokenCoalesce:              "??",
	tokenIncrement:             "++",
	tokenDecrement:             "--",
	tokenArrow:                 "=>",
	tokenEOF:                   "EOF",
}

func (tt tokenTyp) String() string {
	if s, ok := tokenString[tt]; ok {
		return s
	}
	return "unknown token"
}

// token is a token of a code fragment.
type token struct {
	typ tokenTyp      // type
	pos *ast.Position // position in the fragment
	txt string        // token text
}

// String returns the string that represents the token in error messages.
func (tok token) String() string {
	switch tok.typ {
	case tokenIdentifier:
		return "name " + tok.txt
	case tokenModifier, tokenKeyword:
		return "keyword " + tok.txt
	case tokenInterpretedString, tokenVerbatimString, tokenChar, tokenNumber:
		return fmt.Sprintf("literal %s", tok.txt)
	}
	return tok.typ.String()
}

// keywords maps the keywords to their token types.
var keywords = map[string]tokenTyp{
	"if":        tokenIf,
	"else":      tokenElse,
	"foreach":   tokenForEach,
	"in":        tokenIn,
	"using":     tokenUsing,
	"true":      tokenTrue,
	"false":     tokenFalse,
	"null":      tokenNull,
	"public":    tokenModifier,
	"private":   tokenModifier,
	"protected": tokenModifier,
	"internal":  tokenModifier,
	"static":    tokenModifier,
	"readonly":  tokenModifier,
	"const":     tokenModifier,
	"virtual":   tokenModifier,
	"override":  tokenModifier,
	"abstract":  tokenModifier,
	"sealed":    tokenModifier,
	"async":     tokenModifier,
	"as":        tokenKeyword,
	"break":     tokenKeyword,
	"case":      tokenKeyword,
	"catch":     tokenKeyword,
	"continue":  tokenKeyword,
	"default":   tokenKeyword,
	"do":        tokenKeyword,
	"finally":   tokenKeyword,
	"for":       tokenKeyword,
	"is":        tokenKeyword,
	"lock":      tokenKeyword,
	"new":       tokenKeyword,
	"return":    tokenKeyword,
	"switch":    tokenKeyword,
	"throw":     tokenKeyword,
	"try":       tokenKeyword,
	"typeof":    tokenKeyword,
	"while":     tokenKeyword,
}
