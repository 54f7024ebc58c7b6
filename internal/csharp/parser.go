// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package csharp implements a parser for the subset of C# used in the code
// spans of Razor templates.
//
// A code span is often an incomplete piece of code, as "if (a) {" or
// "} else {". The parser accepts these fragments and represents the braces
// that are not closed, or not opened, in the fragment with open blocks and
// block ends.
package csharp

import (
	"fmt"

	"github.com/open2b/razor2liquid/ast"
)

// SyntaxError records a parsing error with the position where the error
// occurred.
type SyntaxError struct {
	Pos ast.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Pos, e.Msg)
}

// Position returns the position of the error in the fragment.
func (e *SyntaxError) Position() ast.Position {
	return e.Pos
}

// Message returns the message of the error without the position.
func (e *SyntaxError) Message() string {
	return "syntax error: " + e.Msg
}

// syntaxError returns a SyntaxError error with position pos.
func syntaxError(pos *ast.Position, format string, a ...interface{}) *SyntaxError {
	return &SyntaxError{*pos, fmt.Sprintf(format, a...)}
}

// parsing is a parsing state.
type parsing struct {
	src    string  // fragment source
	tokens []token // tokens of the fragment
	i      int     // index of the next token
}

// next returns the next token. It panics if called after EOF.
func (p *parsing) next() token {
	if p.i == len(p.tokens) {
		panic("next called after EOF")
	}
	tok := p.tokens[p.i]
	p.i++
	return tok
}

// peek returns the token that follows the last read token without
// consuming it.
func (p *parsing) peek(n int) token {
	if i := p.i + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

// ParseFragment parses the code fragment src and returns its tree.
//
// A fragment with only a name, as "Model.Title", is parsed as an incomplete
// member, as it is a fragment with only a modifier keyword, as "public". A
// closing brace without a matching opening brace is parsed as a block end,
// and an else clause after it as an else clause node. A missing final
// semicolon is tolerated.
func ParseFragment(src string) (unit *ast.Unit, err error) {

	tokens, err := scan(src)
	if err != nil {
		return nil, err
	}

	p := &parsing{src: src, tokens: tokens}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*SyntaxError); ok {
				unit = nil
				err = e
			} else {
				panic(r)
			}
		}
	}()

	pos := &ast.Position{Line: 1, Column: 1, Start: 0, End: len(src) - 1}
	unit = ast.NewUnit(pos, p.parseUnit())

	return unit, nil
}

// parseUnit parses the nodes of a fragment.
func (p *parsing) parseUnit() []ast.Node {

	tok := p.next()
	if tok.typ == tokenEOF {
		return nil
	}

	// Fragment with only a modifier.
	if tok.typ == tokenModifier && p.peek(0).typ == tokenEOF {
		return []ast.Node{ast.NewIncompleteMember(tok.pos, nil, tok.txt)}
	}

	// Directive.
	if tok.typ == tokenUsing && p.peek(0).typ != tokenLeftParenthesis ||
		tok.typ == tokenIdentifier && tok.txt == "inherits" && p.peek(0).typ == tokenIdentifier {
		return []ast.Node{p.parseDirective(tok)}
	}

	// Fragment with only a name.
	if tok.typ == tokenIdentifier && p.isNameOnly() {
		name, _ := p.parseExpr(tok)
		return []ast.Node{ast.NewIncompleteMember(name.Pos(), name, "")}
	}

	var nodes []ast.Node
	for tok.typ != tokenEOF {
		var node ast.Node
		switch tok.typ {
		case tokenRightBrace:
			node = ast.NewBlockEnd(tok.pos)
			tok = p.next()
		case tokenElse:
			if len(nodes) == 0 {
				panic(syntaxError(tok.pos, "unexpected else, expecting }"))
			}
			if _, ok := nodes[len(nodes)-1].(*ast.BlockEnd); !ok {
				panic(syntaxError(tok.pos, "unexpected else"))
			}
			node, tok = p.parseElse(tok)
		default:
			node, tok = p.parseStatement(tok)
		}
		nodes = append(nodes, node)
	}

	return nodes
}

// isNameOnly reports whether the tokens, starting from the last read token,
// are only a name as "a" or "a.b.c" followed by EOF.
func (p *parsing) isNameOnly() bool {
	i := p.i - 1
	for {
		if p.tokens[i].typ != tokenIdentifier {
			return false
		}
		i++
		switch p.tokens[i].typ {
		case tokenEOF:
			return true
		case tokenPeriod:
			i++
		default:
			return false
		}
	}
}

// parseDirective parses a directive as "using System.Linq". tok is the
// directive keyword.
func (p *parsing) parseDirective(tok token) *ast.Directive {
	pos := tok.pos
	first := p.next()
	last := first
	for t := first; t.typ != tokenSemicolon && t.typ != tokenEOF; t = p.next() {
		last = t
	}
	if first.typ == tokenSemicolon || first.typ == tokenEOF {
		panic(syntaxError(first.pos, "unexpected %s, expecting name", first))
	}
	value := p.src[first.pos.Start : last.pos.End+1]
	if p.tokens[p.i-1].typ == tokenSemicolon {
		if tok := p.next(); tok.typ != tokenEOF {
			panic(syntaxError(tok.pos, "unexpected %s after directive", tok))
		}
	}
	return ast.NewDirective(pos.WithEnd(last.pos.End), tok.txt, value)
}

// parseStatement parses a statement and returns it with the next token.
func (p *parsing) parseStatement(tok token) (ast.Statement, token) {

	switch tok.typ {
	case tokenLeftBrace:
		return p.parseBlock(tok)
	case tokenSemicolon:
		return ast.NewEmpty(tok.pos), p.next()
	case tokenIf:
		return p.parseIf(tok)
	case tokenForEach:
		return p.parseForEach(tok)
	case tokenKeyword, tokenModifier, tokenElse, tokenUsing, tokenIn:
		panic(syntaxError(tok.pos, "unexpected %s", tok))
	case tokenEOF:
		panic(syntaxError(tok.pos, "unexpected EOF, expecting statement"))
	}

	first := tok
	expr, tok := p.parseExpr(tok)
	if expr == nil {
		panic(syntaxError(tok.pos, "unexpected %s", tok))
	}

	// Local declaration.
	if tok.typ == tokenIdentifier && isTypeName(expr) {
		return p.parseLocalDeclaration(expr, tok)
	}

	pos := &ast.Position{Line: first.pos.Line, Column: first.pos.Column, Start: first.pos.Start, End: expr.Pos().End}
	tok = p.parseStatementEnd(pos, tok)

	return ast.NewExpressionStatement(pos, expr), tok
}

// parseStatementEnd parses the end of a simple statement, that is a
// semicolon, and returns the token after it. The semicolon can be missing
// at the end of the fragment or of the block. The end of pos is set to the
// semicolon if present.
func (p *parsing) parseStatementEnd(pos *ast.Position, tok token) token {
	switch tok.typ {
	case tokenSemicolon:
		pos.End = tok.pos.End
		return p.next()
	case tokenEOF, tokenRightBrace:
		return tok
	}
	panic(syntaxError(tok.pos, "unexpected %s at end of statement", tok))
}

// parseBlock parses a block. tok is the opening brace. If the closing brace
// is missing, the returned block is open.
func (p *parsing) parseBlock(tok token) (*ast.Block, token) {
	pos := tok.pos
	var nodes []ast.Statement
	tok = p.next()
	for {
		switch tok.typ {
		case tokenRightBrace:
			return ast.NewBlock(pos.WithEnd(tok.pos.End), nodes, false), p.next()
		case tokenEOF:
			return ast.NewBlock(pos.WithEnd(tok.pos.End-1), nodes, true), tok
		}
		var node ast.Statement
		node, tok = p.parseStatement(tok)
		nodes = append(nodes, node)
	}
}

// parseBody parses the body of an if or foreach statement. If the fragment
// ends before the body, the body is an open empty block.
func (p *parsing) parseBody(tok token) (ast.Statement, token) {
	if tok.typ == tokenEOF {
		return ast.NewBlock(tok.pos.WithEnd(tok.pos.End-1), nil, true), tok
	}
	return p.parseStatement(tok)
}

// parseIf parses an if statement. tok is the if keyword.
func (p *parsing) parseIf(tok token) (*ast.If, token) {
	pos := tok.pos
	tok = p.next()
	if tok.typ != tokenLeftParenthesis {
		panic(syntaxError(tok.pos, "unexpected %s, expecting (", tok))
	}
	cond, tok := p.parseExpr(p.next())
	if cond == nil {
		panic(syntaxError(tok.pos, "unexpected %s, expecting expression", tok))
	}
	if tok.typ != tokenRightParenthesis {
		panic(syntaxError(tok.pos, "unexpected %s, expecting )", tok))
	}
	then, tok := p.parseBody(p.next())
	node := ast.NewIf(pos.WithEnd(then.Pos().End), cond, then, nil)
	if tok.typ == tokenElse {
		node.Else, tok = p.parseElse(tok)
		node.Position.End = node.Else.Pos().End
	}
	return node, tok
}

// parseElse parses an else clause. tok is the else keyword.
func (p *parsing) parseElse(tok token) (*ast.ElseClause, token) {
	pos := tok.pos
	var stmt ast.Statement
	tok = p.next()
	if tok.typ == tokenIf {
		stmt, tok = p.parseIf(tok)
	} else {
		stmt, tok = p.parseBody(tok)
	}
	return ast.NewElseClause(pos.WithEnd(stmt.Pos().End), stmt), tok
}

// parseForEach parses a foreach statement. tok is the foreach keyword.
func (p *parsing) parseForEach(tok token) (*ast.ForEach, token) {
	pos := tok.pos
	tok = p.next()
	if tok.typ != tokenLeftParenthesis {
		panic(syntaxError(tok.pos, "unexpected %s, expecting (", tok))
	}
	typ, tok := p.parseExpr(p.next())
	if typ == nil || !isTypeName(typ) {
		panic(syntaxError(tok.pos, "unexpected %s, expecting type", tok))
	}
	if tok.typ != tokenIdentifier {
		panic(syntaxError(tok.pos, "unexpected %s, expecting name", tok))
	}
	ident := ast.NewIdentifier(tok.pos, tok.txt)
	tok = p.next()
	if tok.typ != tokenIn {
		panic(syntaxError(tok.pos, "unexpected %s, expecting in", tok))
	}
	expr, tok := p.parseExpr(p.next())
	if expr == nil {
		panic(syntaxError(tok.pos, "unexpected %s, expecting expression", tok))
	}
	if tok.typ != tokenRightParenthesis {
		panic(syntaxError(tok.pos, "unexpected %s, expecting )", tok))
	}
	body, tok := p.parseBody(p.next())
	return ast.NewForEach(pos.WithEnd(body.Pos().End), typ, ident, expr, body), tok
}

// parseLocalDeclaration parses a local declaration as "var a = 1, b;". typ
// is the type of the declared variables and tok is the name of the first
// variable.
func (p *parsing) parseLocalDeclaration(typ ast.Expression, tok token) (*ast.LocalDeclaration, token) {
	var variables []*ast.VariableDeclarator
	for {
		ident := ast.NewIdentifier(tok.pos, tok.txt)
		declPos := tok.pos.WithEnd(tok.pos.End)
		tok = p.next()
		var init *ast.EqualsValueClause
		if tok.typ == tokenSimpleAssignment {
			initPos := tok.pos
			var value ast.Expression
			value, tok = p.parseExpr(p.next())
			if value == nil {
				panic(syntaxError(tok.pos, "unexpected %s, expecting expression", tok))
			}
			init = ast.NewEqualsValueClause(initPos.WithEnd(value.Pos().End), value)
			declPos.End = value.Pos().End
		}
		variables = append(variables, ast.NewVariableDeclarator(declPos, ident, init))
		if tok.typ != tokenComma {
			break
		}
		tok = p.next()
		if tok.typ != tokenIdentifier {
			panic(syntaxError(tok.pos, "unexpected %s, expecting name", tok))
		}
	}
	last := variables[len(variables)-1].Pos().End
	declaration := ast.NewVariableDeclaration(typ.Pos().WithEnd(last), typ, variables)
	pos := typ.Pos().WithEnd(last)
	tok = p.parseStatementEnd(pos, tok)
	return ast.NewLocalDeclaration(pos, declaration), tok
}

// isTypeName reports whether expr can be a type name, that is an identifier
// or a qualified name as "System.Globalization.CultureInfo".
func isTypeName(expr ast.Expression) bool {
	if expr.Parenthesis() > 0 {
		return false
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		return true
	case *ast.MemberAccess:
		return isTypeName(e.Expr)
	}
	return false
}
