// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package razor

import (
	"bytes"
	"unicode/utf8"

	"github.com/open2b/razor2liquid/ast"
)

// markupMode indicates where a run of markup ends.
type markupMode int

const (
	markupDocument markupMode = iota // ends at the end of the document.
	markupElement                    // ends at the end of the line of an element.
	markupLine                       // ends at the end of the line, as after "@:".
	markupText                       // ends at "</text>".
)

// statementKeywords are the keywords that start a code statement when they
// follow a transition.
var statementKeywords = map[string]bool{
	"if":      true,
	"foreach": true,
	"for":     true,
	"while":   true,
	"switch":  true,
	"lock":    true,
}

// voidElements are the HTML elements that have no end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// lexer maintains the classifier status.
type lexer struct {
	text   []byte   // template source
	start  int      // index of the first byte of the current span
	p      int      // scan index
	line   int      // line of start
	column int      // column of start
	spans  []Span   // classified spans
	errors []*Error // syntax errors
}

// Classify classifies the template src in spans. The concatenation of the
// contents of the returned spans is src, except for the escaped "@@"
// sequences that are reduced to "@". Syntax errors do not stop the
// classification and are returned with the spans.
func Classify(src []byte) ([]Span, []*Error) {
	lex := &lexer{text: src, line: 1, column: 1}
	lex.lexMarkup(markupDocument)
	return lex.spans, lex.errors
}

// emit emits a span of the given kind with the text from the current start
// to end, and moves the start to end. It does nothing if the text is empty.
func (l *lexer) emit(kind SpanKind, end int) {
	if end <= l.start {
		return
	}
	pos := ast.Position{Line: l.line, Column: l.column, Start: l.start, End: end - 1}
	l.spans = append(l.spans, Span{Kind: kind, Content: string(l.text[l.start:end]), Pos: pos})
	l.advance(end)
}

// advance moves the start to end without emitting the text in between.
func (l *lexer) advance(end int) {
	for _, c := range string(l.text[l.start:end]) {
		if c == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.start = end
	if l.p < end {
		l.p = end
	}
}

// position returns the position of the byte at index i.
func (l *lexer) position(i int) ast.Position {
	line, column := 1, 1
	for _, c := range string(l.text[:i]) {
		if c == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return ast.Position{Line: line, Column: column, Start: i, End: i}
}

// errorf records a syntax error at the byte with index i.
func (l *lexer) errorf(i int, msg string) {
	l.errors = append(l.errors, &Error{Pos: l.position(i), Msg: msg})
}

// lexMarkup lexes markup until the end given by mode. Transitions found in
// the markup are lexed as they are met.
func (l *lexer) lexMarkup(mode markupMode) {
	depth := 0        // depth of the elements
	inTag := false    // scanning a tag
	closing := false  // the tag is an end tag
	tagName := ""     // name of the tag
	quote := byte(0)  // quote of the attribute value being scanned
	complete := false // an element has been completed
	for l.p < len(l.text) {
		c := l.text[l.p]
		if c == '@' && l.lexTransition() {
			continue
		}
		switch mode {
		case markupElement:
			if c == '\n' && complete && depth <= 0 && !inTag {
				l.p++
				l.emit(Markup, l.p)
				return
			}
		case markupLine:
			if c == '\n' {
				l.p++
				l.emit(Markup, l.p)
				return
			}
		case markupText:
			if bytes.HasPrefix(l.text[l.p:], []byte("</text>")) {
				l.emit(Markup, l.p)
				l.emit(Transition, l.p+len("</text>"))
				return
			}
		}
		if mode != markupElement {
			l.p++
			continue
		}
		switch {
		case inTag && quote != 0:
			if c == quote {
				quote = 0
			}
		case inTag:
			switch c {
			case '"', '\'':
				quote = c
			case '>':
				inTag = false
				switch {
				case closing:
					depth--
				case l.text[l.p-1] == '/' || voidElements[tagName]:
				default:
					depth++
				}
				if depth <= 0 {
					complete = true
				}
			}
		case c == '<' && bytes.HasPrefix(l.text[l.p:], []byte("<!--")):
			if end := bytes.Index(l.text[l.p:], []byte("-->")); end > 0 {
				l.p += end + 2
			} else {
				l.p = len(l.text) - 1
			}
			if depth <= 0 {
				complete = true
			}
		case c == '<' && l.p+1 < len(l.text) && (isLetter(l.text[l.p+1]) || l.text[l.p+1] == '/'):
			closing = l.text[l.p+1] == '/'
			i := l.p + 1
			if closing {
				i++
			}
			j := i
			for j < len(l.text) && (isLetter(l.text[j]) || isDecDigit(l.text[j]) || l.text[j] == '-' || l.text[j] == ':') {
				j++
			}
			tagName = string(bytes.ToLower(l.text[i:j]))
			inTag = true
			l.p = j
			continue
		}
		l.p++
	}
	l.emit(Markup, l.p)
	if mode == markupText {
		l.errorf(l.start, "unterminated <text> element")
	}
}

// lexTransition lexes a transition at the current scan index. It returns
// false if the '@' character is not a transition and must be kept in the
// markup.
func (l *lexer) lexTransition() bool {
	at := l.p
	if at+1 >= len(l.text) {
		return false
	}
	switch next := l.text[at+1]; {
	case next == '@':
		// An escaped '@' is kept once in the markup.
		l.emit(Markup, at+1)
		l.advance(at + 2)
	case next == '*':
		l.emit(Markup, at)
		l.lexComment()
	case next == '(':
		l.emit(Markup, at)
		l.lexExplicitExpression()
	case next == '{':
		l.emit(Markup, at)
		l.lexCodeBlock()
	case isIdentStart(next):
		if at > 0 && (isLetter(l.text[at-1]) || isDecDigit(l.text[at-1])) {
			// An email address.
			return false
		}
		l.emit(Markup, at)
		l.emit(Transition, at+1)
		word := string(l.text[at+1 : l.scanIdent(at+1)])
		switch {
		case statementKeywords[word]:
			l.lexStatement(word)
		case word == "using":
			if j := l.skipSpaces(at + 1 + len(word)); j < len(l.text) && l.text[j] == '(' {
				l.lexStatement(word)
			} else {
				l.lexDirective()
			}
		case word == "inherits":
			l.lexDirective()
		case word == "helper":
			l.lexHelper()
		default:
			l.lexImplicitExpression()
		}
	default:
		return false
	}
	return true
}

// lexComment lexes a comment "@* ... *@" starting at the current scan index.
func (l *lexer) lexComment() {
	end := bytes.Index(l.text[l.p+2:], []byte("*@"))
	if end == -1 {
		l.errorf(l.p, "unterminated comment")
		l.emit(Comment, len(l.text))
		return
	}
	l.emit(Comment, l.p+2+end+2)
}

// lexExplicitExpression lexes an explicit expression "@( ... )" starting at
// the current scan index.
func (l *lexer) lexExplicitExpression() {
	at := l.p
	l.emit(Transition, at+1)
	l.emit(MetaCode, at+2)
	end, ok := l.skipBalanced(at+1, '(', ')')
	if !ok {
		l.errorf(at, "unterminated explicit expression")
		l.emit(Code, len(l.text))
		return
	}
	l.emit(Code, end-1)
	l.emit(MetaCode, end)
}

// lexCodeBlock lexes a code block "@{ ... }" starting at the current scan
// index.
func (l *lexer) lexCodeBlock() {
	at := l.p
	l.emit(Transition, at+1)
	l.emit(MetaCode, at+2)
	if !l.lexCodeBody(true) {
		l.errorf(at, "unterminated code block")
	}
}

// lexImplicitExpression lexes an implicit expression as "Model.Items[0].Name"
// starting at the current scan index.
func (l *lexer) lexImplicitExpression() {
	i := l.scanIdent(l.p)
	for i < len(l.text) {
		switch c := l.text[i]; {
		case c == '.' && i+1 < len(l.text) && isIdentStart(l.text[i+1]):
			i = l.scanIdent(i + 1)
			continue
		case c == '(':
			end, ok := l.skipBalanced(i, '(', ')')
			if !ok {
				l.errorf(i, "unterminated argument list")
			}
			i = end
			continue
		case c == '[':
			end, ok := l.skipBalanced(i, '[', ']')
			if !ok {
				l.errorf(i, "unterminated index")
			}
			i = end
			continue
		}
		break
	}
	l.emit(Code, i)
}

// lexDirective lexes a directive line as "using System.Linq" starting at the
// current scan index. The line terminator is part of the directive.
func (l *lexer) lexDirective() {
	end := bytes.IndexByte(l.text[l.p:], '\n')
	if end == -1 {
		l.emit(Code, len(l.text))
		return
	}
	l.emit(Code, l.p+end+1)
}

// lexHelper lexes a helper declaration as
// "helper ShowBoleto(Payment payment) { ... }" starting at the current scan
// index.
func (l *lexer) lexHelper() {
	at := l.p
	i := l.scanIdent(at)
	for i < len(l.text) && (l.text[i] == ' ' || l.text[i] == '\t') {
		i++
	}
	l.emit(MetaCode, i)
	i = l.scanIdent(i)
	if i == l.start {
		l.errorf(at, "missing helper name")
		return
	}
	i = l.skipSpaces(i)
	if i < len(l.text) && l.text[i] == '(' {
		var ok bool
		if i, ok = l.skipBalanced(i, '(', ')'); !ok {
			l.errorf(at, "unterminated helper parameters")
			l.emit(Code, len(l.text))
			return
		}
	}
	i = l.skipSpaces(i)
	if i >= len(l.text) || l.text[i] != '{' {
		l.errorf(at, "expected { after helper declaration")
		l.emit(Code, i)
		return
	}
	l.p = i + 1
	if !l.lexCodeBody(false) {
		l.errorf(at, "unterminated helper")
		return
	}
	l.emit(Code, l.p)
}

// lexStatement lexes a code statement as "if (a) { ... } else { ... }"
// starting at the current scan index, that is the first byte of the keyword.
func (l *lexer) lexStatement(keyword string) {
	at := l.p
	l.p += len(keyword)
	for {
		if !l.lexHeader(keyword) {
			return
		}
		if !l.lexCodeBody(false) {
			l.errorf(at, "unterminated "+keyword+" statement")
			return
		}
		if keyword != "if" {
			break
		}
		// Continue with an else clause.
		j := l.skipSpaces(l.p)
		if !hasWord(l.text[j:], "else") {
			break
		}
		l.p = j + len("else")
		if k := l.skipSpaces(l.p); hasWord(l.text[k:], "if") {
			l.p = k + len("if")
		}
	}
	l.emit(Code, l.p)
}

// lexHeader lexes the header of a statement, that is an optional condition
// in parenthesis, up to and including the opening brace of the body. If the
// brace is missing, it emits the header and returns false.
func (l *lexer) lexHeader(keyword string) bool {
	i := l.skipSpaces(l.p)
	if i < len(l.text) && l.text[i] == '(' {
		end, ok := l.skipBalanced(i, '(', ')')
		if !ok {
			l.errorf(i, "unterminated "+keyword+" condition")
			l.emit(Code, len(l.text))
			return false
		}
		l.p = end
		i = l.skipSpaces(end)
	}
	if i >= len(l.text) || l.text[i] != '{' {
		// A header that ends the document is a statement whose body follows
		// in the including template.
		if i < len(l.text) {
			l.errorf(l.p, "expected { after "+keyword)
		}
		l.emit(Code, l.p)
		return false
	}
	l.p = i + 1
	return true
}

// lexCodeBody lexes the body of a code block or of a statement, from the
// current scan index, that is after the opening brace, up to the matching
// closing brace. If meta is true, the closing brace is emitted as a meta
// code span, otherwise it is left to the caller as part of the code. It
// returns false if the document ends before the closing brace.
func (l *lexer) lexCodeBody(meta bool) bool {
	depth := 1
	parens := 0
	for l.p < len(l.text) {
		c := l.text[l.p]
		switch c {
		case '"', '\'':
			l.p = l.skipString(l.p)
			continue
		case '/':
			if l.p+1 < len(l.text) {
				switch l.text[l.p+1] {
				case '/':
					if end := bytes.IndexByte(l.text[l.p:], '\n'); end > 0 {
						l.p += end
					} else {
						l.p = len(l.text)
					}
					continue
				case '*':
					if end := bytes.Index(l.text[l.p+2:], []byte("*/")); end >= 0 {
						l.p += end + 4
					} else {
						l.p = len(l.text)
					}
					continue
				}
			}
		case '(':
			parens++
		case ')':
			parens--
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				if meta {
					l.emit(Code, l.p)
					l.emit(MetaCode, l.p+1)
				} else {
					l.p++
				}
				return true
			}
		case '<':
			if parens <= 0 && l.isMarkupStart() {
				l.emit(Code, l.trimSpaceLeft(l.p))
				if bytes.HasPrefix(l.text[l.p:], []byte("<text>")) {
					l.emit(Markup, l.p)
					l.emit(Transition, l.p+len("<text>"))
					l.lexMarkup(markupText)
				} else {
					l.lexMarkup(markupElement)
				}
				continue
			}
		case '@':
			if l.lexCodeTransition() {
				continue
			}
		}
		l.p++
	}
	l.emit(Code, l.p)
	return false
}

// lexCodeTransition lexes a transition found in code at the current scan
// index. It returns false if the '@' is part of the code, as in a verbatim
// string.
func (l *lexer) lexCodeTransition() bool {
	at := l.p
	if at+1 >= len(l.text) {
		return false
	}
	switch next := l.text[at+1]; {
	case next == ':':
		l.emit(Code, l.trimSpaceLeft(at))
		l.emit(Markup, at)
		l.emit(Transition, at+1)
		l.emit(MetaCode, at+2)
		l.lexMarkup(markupLine)
	case next == '*':
		l.emit(Code, at)
		l.lexComment()
	case next == '(':
		l.emit(Code, at)
		l.lexExplicitExpression()
	case isIdentStart(next):
		l.emit(Code, at)
		l.emit(Transition, at+1)
		word := string(l.text[at+1 : l.scanIdent(at+1)])
		if statementKeywords[word] {
			// The statement is part of the enclosing code.
			return true
		}
		l.lexImplicitExpression()
	default:
		return false
	}
	return true
}

// isMarkupStart reports whether the '<' at the current scan index starts a
// tag in code, that is it is followed by a letter, '/' or '!' and it is at
// the start of a statement or of the current code span.
func (l *lexer) isMarkupStart() bool {
	if l.p+1 >= len(l.text) {
		return false
	}
	if next := l.text[l.p+1]; !isLetter(next) && next != '/' && next != '!' {
		return false
	}
	for i := l.p - 1; i >= l.start; i-- {
		switch l.text[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case ';', '{', '}', ':':
			return true
		}
		return false
	}
	return true
}

// trimSpaceLeft returns the index of the first of the white space characters
// that precede the byte with index i, but not before the current start.
func (l *lexer) trimSpaceLeft(i int) int {
	for i > l.start && isSpace(l.text[i-1]) {
		i--
	}
	return i
}

// skipSpaces returns the index of the first non white space byte starting
// from index i.
func (l *lexer) skipSpaces(i int) int {
	for i < len(l.text) && isSpace(l.text[i]) {
		i++
	}
	return i
}

// scanIdent returns the index of the byte after the identifier that starts
// at index i. If there is no identifier, it returns i.
func (l *lexer) scanIdent(i int) int {
	for i < len(l.text) {
		c, size := utf8.DecodeRune(l.text[i:])
		if c == '_' || isLetterRune(c) || (c >= '0' && c <= '9') {
			i += size
			continue
		}
		break
	}
	return i
}

// skipBalanced returns the index of the byte after the close character that
// matches the open character at index i. Strings are skipped. It returns
// false if the close character is missing.
func (l *lexer) skipBalanced(i int, open, close byte) (int, bool) {
	depth := 0
	for i < len(l.text) {
		switch c := l.text[i]; c {
		case '"', '\'':
			i = l.skipString(i)
			continue
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
		i++
	}
	return i, false
}

// skipString returns the index of the byte after the string or char literal
// that starts at index i. A string preceded by '@' is a verbatim string.
func (l *lexer) skipString(i int) int {
	quote := l.text[i]
	verbatim := quote == '"' && i > 0 && l.text[i-1] == '@'
	for i++; i < len(l.text); i++ {
		switch c := l.text[i]; {
		case c == '\\' && !verbatim:
			i++
		case c == quote:
			if verbatim && i+1 < len(l.text) && l.text[i+1] == '"' {
				i++
				continue
			}
			return i + 1
		case c == '\n' && !verbatim:
			return i
		}
	}
	return i
}

// hasWord reports whether s starts with the word w.
func hasWord(s []byte, w string) bool {
	if !bytes.HasPrefix(s, []byte(w)) {
		return false
	}
	if len(s) == len(w) {
		return true
	}
	c := s[len(w)]
	return !isLetter(c) && !isDecDigit(c) && c != '_'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isLetterRune(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c >= utf8.RuneSelf && c != utf8.RuneError
}

func isDecDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || isLetter(c)
}
