// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csharp

import (
	"unicode"
	"unicode/utf8"

	"github.com/open2b/razor2liquid/ast"
)

// lexer maintains the scanner status.
type lexer struct {
	text   string  // fragment source
	p      int     // index of the next byte to read
	line   int     // current line
	column int     // current column
	tokens []token // scanned tokens
}

// scan scans the fragment src and returns its tokens. The last token has
// type tokenEOF.
func scan(src string) ([]token, error) {
	l := &lexer{text: src, line: 1, column: 1}
	if err := l.scan(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

// errorf returns a syntax error at the current position.
func (l *lexer) errorf(format string, a ...interface{}) *SyntaxError {
	pos := ast.Position{Line: l.line, Column: l.column, Start: l.p, End: l.p}
	return syntaxError(&pos, format, a...)
}

// emit emits a token of type typ and length length at the current position
// and advances after it. The token must not contain new lines.
func (l *lexer) emit(typ tokenTyp, length int) {
	pos := &ast.Position{Line: l.line, Column: l.column, Start: l.p, End: l.p + length - 1}
	txt := l.text[l.p : l.p+length]
	l.tokens = append(l.tokens, token{typ: typ, pos: pos, txt: txt})
	l.column += utf8.RuneCountInString(txt)
	l.p += length
}

// emitMultiline is like emit but the token can contain new lines.
func (l *lexer) emitMultiline(typ tokenTyp, length int) {
	pos := &ast.Position{Line: l.line, Column: l.column, Start: l.p, End: l.p + length - 1}
	txt := l.text[l.p : l.p+length]
	l.tokens = append(l.tokens, token{typ: typ, pos: pos, txt: txt})
	l.skip(length)
}

// skip advances of length bytes updating the line and column.
func (l *lexer) skip(length int) {
	for _, c := range l.text[l.p : l.p+length] {
		if c == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.p += length
}

func (l *lexer) scan() error {

	for l.p < len(l.text) {

		c := l.text[l.p]
		var next byte
		if l.p+1 < len(l.text) {
			next = l.text[l.p+1]
		}

		switch c {
		case ' ', '\t', '\r', '\n':
			l.skip(1)
		case '/':
			switch next {
			case '/':
				n := 2
				for l.p+n < len(l.text) && l.text[l.p+n] != '\n' {
					n++
				}
				l.skip(n)
			case '*':
				n := 2
				for {
					if l.p+n+1 >= len(l.text) {
						return l.errorf("comment not terminated")
					}
					if l.text[l.p+n] == '*' && l.text[l.p+n+1] == '/' {
						break
					}
					n++
				}
				l.skip(n + 2)
			default:
				l.emit(tokenDivision, 1)
			}
		case '"':
			if err := l.lexString(); err != nil {
				return err
			}
		case '@':
			if next != '"' {
				return l.errorf("unexpected @")
			}
			if err := l.lexVerbatimString(); err != nil {
				return err
			}
		case '\'':
			if err := l.lexChar(); err != nil {
				return err
			}
		case '.':
			if isDecDigit(next) {
				l.lexNumber()
			} else {
				l.emit(tokenPeriod, 1)
			}
		case ',':
			l.emit(tokenComma, 1)
		case ';':
			l.emit(tokenSemicolon, 1)
		case ':':
			l.emit(tokenColon, 1)
		case '?':
			if next == '?' {
				l.emit(tokenCoalesce, 2)
			} else {
				l.emit(tokenQuestion, 1)
			}
		case '(':
			l.emit(tokenLeftParenthesis, 1)
		case ')':
			l.emit(tokenRightParenthesis, 1)
		case '[':
			l.emit(tokenLeftBracket, 1)
		case ']':
			l.emit(tokenRightBracket, 1)
		case '{':
			l.emit(tokenLeftBrace, 1)
		case '}':
			l.emit(tokenRightBrace, 1)
		case '=':
			switch next {
			case '=':
				l.emit(tokenEqual, 2)
			case '>':
				l.emit(tokenArrow, 2)
			default:
				l.emit(tokenSimpleAssignment, 1)
			}
		case '!':
			if next == '=' {
				l.emit(tokenNotEqual, 2)
			} else {
				l.emit(tokenNot, 1)
			}
		case '<':
			if next == '=' {
				l.emit(tokenLessOrEqual, 2)
			} else {
				l.emit(tokenLess, 1)
			}
		case '>':
			if next == '=' {
				l.emit(tokenGreaterOrEqual, 2)
			} else {
				l.emit(tokenGreater, 1)
			}
		case '&':
			if next == '&' {
				l.emit(tokenAndAnd, 2)
			} else {
				l.emit(tokenAnd, 1)
			}
		case '|':
			if next == '|' {
				l.emit(tokenOrOr, 2)
			} else {
				l.emit(tokenOr, 1)
			}
		case '^':
			l.emit(tokenXor, 1)
		case '+':
			switch next {
			case '+':
				l.emit(tokenIncrement, 2)
			case '=':
				l.emit(tokenAdditionAssignment, 2)
			default:
				l.emit(tokenAddition, 1)
			}
		case '-':
			switch next {
			case '-':
				l.emit(tokenDecrement, 2)
			case '=':
				l.emit(tokenSubtractionAssignment, 2)
			default:
				l.emit(tokenSubtraction, 1)
			}
		case '*':
			l.emit(tokenMultiplication, 1)
		case '%':
			l.emit(tokenModulo, 1)
		default:
			if isDecDigit(c) {
				l.lexNumber()
				continue
			}
			if c == '_' || isAlpha(c) || c >= utf8.RuneSelf {
				if err := l.lexIdentifierOrKeyword(); err != nil {
					return err
				}
				continue
			}
			return l.errorf("unexpected %q", c)
		}

	}

	pos := &ast.Position{Line: l.line, Column: l.column, Start: l.p, End: l.p}
	l.tokens = append(l.tokens, token{typ: tokenEOF, pos: pos})

	return nil
}

// lexIdentifierOrKeyword reads an identifier or a keyword.
func (l *lexer) lexIdentifierOrKeyword() error {
	n := 0
	for l.p+n < len(l.text) {
		r, size := utf8.DecodeRuneInString(l.text[l.p+n:])
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			n += size
			continue
		}
		if n == 0 {
			return l.errorf("invalid character %q", r)
		}
		break
	}
	typ, ok := keywords[l.text[l.p:l.p+n]]
	if !ok {
		typ = tokenIdentifier
	}
	l.emit(typ, n)
	return nil
}

// lexNumber reads a number, as 18, 12.95 or 10m.
func (l *lexer) lexNumber() {
	n := 0
	dot := false
	for l.p+n < len(l.text) {
		c := l.text[l.p+n]
		if isDecDigit(c) {
			n++
			continue
		}
		if c == '.' && !dot && l.p+n+1 < len(l.text) && isDecDigit(l.text[l.p+n+1]) {
			dot = true
			n++
			continue
		}
		break
	}
	// Suffix.
	if l.p+n < len(l.text) {
		switch l.text[l.p+n] {
		case 'm', 'M', 'f', 'F', 'd', 'D', 'l', 'L', 'u', 'U':
			n++
		}
	}
	l.emit(tokenNumber, n)
}

// lexString reads a string "...".
func (l *lexer) lexString() error {
	for n := 1; l.p+n < len(l.text); n++ {
		switch l.text[l.p+n] {
		case '\\':
			n++
		case '"':
			l.emit(tokenInterpretedString, n+1)
			return nil
		case '\n':
			return l.errorf("newline in string")
		}
	}
	return l.errorf("string not terminated")
}

// lexVerbatimString reads a verbatim string @"...".
func (l *lexer) lexVerbatimString() error {
	for n := 2; l.p+n < len(l.text); n++ {
		if l.text[l.p+n] == '"' {
			if l.p+n+1 < len(l.text) && l.text[l.p+n+1] == '"' {
				n++
				continue
			}
			l.emitMultiline(tokenVerbatimString, n+1)
			return nil
		}
	}
	return l.errorf("string not terminated")
}

// lexChar reads a char literal 'a'.
func (l *lexer) lexChar() error {
	for n := 1; l.p+n < len(l.text); n++ {
		switch l.text[l.p+n] {
		case '\\':
			n++
		case '\'':
			if n == 1 {
				return l.errorf("empty character literal")
			}
			l.emit(tokenChar, n+1)
			return nil
		case '\n':
			return l.errorf("newline in character literal")
		}
	}
	return l.errorf("character literal not terminated")
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDecDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
