// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csharp

import (
	"github.com/open2b/razor2liquid/ast"
)

// binaryOperators maps the tokens of the binary operators to the operators.
var binaryOperators = map[tokenTyp]ast.OperatorType{
	tokenEqual:          ast.OperatorEqual,
	tokenNotEqual:       ast.OperatorNotEqual,
	tokenLess:           ast.OperatorLess,
	tokenLessOrEqual:    ast.OperatorLessEqual,
	tokenGreater:        ast.OperatorGreater,
	tokenGreaterOrEqual: ast.OperatorGreaterEqual,
	tokenAndAnd:         ast.OperatorAnd,
	tokenOrOr:           ast.OperatorOr,
	tokenAnd:            ast.OperatorBitAnd,
	tokenOr:             ast.OperatorBitOr,
	tokenXor:            ast.OperatorXor,
	tokenAddition:       ast.OperatorAddition,
	tokenSubtraction:    ast.OperatorSubtraction,
	tokenMultiplication: ast.OperatorMultiplication,
	tokenDivision:       ast.OperatorDivision,
	tokenModulo:         ast.OperatorModulo,
	tokenCoalesce:       ast.OperatorCoalesce,
}

// prefixOperators maps the tokens of the prefix operators to the operators.
var prefixOperators = map[tokenTyp]ast.OperatorType{
	tokenNot:         ast.OperatorNot,
	tokenAddition:    ast.OperatorAddition,
	tokenSubtraction: ast.OperatorSubtraction,
	tokenIncrement:   ast.OperatorIncrement,
	tokenDecrement:   ast.OperatorDecrement,
}

// parseExpr parses an expression and returns its tree and the last read
// token that does not belong to the expression. It returns a nil expression
// if tok can not start an expression. It panics on error.
func (p *parsing) parseExpr(tok token) (ast.Expression, token) {

	expr, tok := p.parseConditional(tok)
	if expr == nil {
		return nil, tok
	}

	var typ ast.AssignmentType
	switch tok.typ {
	case tokenSimpleAssignment:
		typ = ast.AssignmentSimple
	case tokenAdditionAssignment:
		typ = ast.AssignmentAddition
	case tokenSubtractionAssignment:
		typ = ast.AssignmentSubtraction
	default:
		return expr, tok
	}

	rhs, tok := p.parseExpr(p.next())
	if rhs == nil {
		panic(syntaxError(tok.pos, "unexpected %s, expecting expression", tok))
	}

	return ast.NewAssignment(expr.Pos().WithEnd(rhs.Pos().End), typ, expr, rhs), tok
}

// parseConditional parses a conditional expression as "c ? a : b" or a
// binary expression.
func (p *parsing) parseConditional(tok token) (ast.Expression, token) {

	cond, tok := p.parseBinary(tok, 0)
	if cond == nil || tok.typ != tokenQuestion {
		return cond, tok
	}

	then, tok := p.parseExpr(p.next())
	if then == nil {
		panic(syntaxError(tok.pos, "unexpected %s, expecting expression", tok))
	}
	if tok.typ != tokenColon {
		panic(syntaxError(tok.pos, "unexpected %s, expecting :", tok))
	}
	els, tok := p.parseExpr(p.next())
	if els == nil {
		panic(syntaxError(tok.pos, "unexpected %s, expecting expression", tok))
	}

	return ast.NewConditional(cond.Pos().WithEnd(els.Pos().End), cond, then, els), tok
}

// parseBinary parses a binary expression whose operators have a precedence
// not less than minPrecedence.
func (p *parsing) parseBinary(tok token, minPrecedence int) (ast.Expression, token) {

	left, tok := p.parseUnary(tok)
	if left == nil {
		return nil, tok
	}

	for {
		op, ok := binaryOperators[tok.typ]
		if !ok {
			return left, tok
		}
		precedence := (&ast.Binary{Op: op}).Precedence()
		if precedence < minPrecedence {
			return left, tok
		}
		var right ast.Expression
		right, tok = p.parseBinary(p.next(), precedence+1)
		if right == nil {
			panic(syntaxError(tok.pos, "unexpected %s, expecting expression", tok))
		}
		left = ast.NewBinary(left.Pos().WithEnd(right.Pos().End), op, left, right)
	}

}

// parseUnary parses a prefix unary expression, a cast expression or a
// primary expression.
func (p *parsing) parseUnary(tok token) (ast.Expression, token) {

	if op, ok := prefixOperators[tok.typ]; ok {
		pos := tok.pos
		expr, tok := p.parseUnary(p.next())
		if expr == nil {
			panic(syntaxError(tok.pos, "unexpected %s, expecting expression", tok))
		}
		return ast.NewPrefixUnary(pos.WithEnd(expr.Pos().End), op, expr), tok
	}

	if tok.typ == tokenLeftParenthesis && p.isCast() {
		pos := tok.pos
		typ, tok := p.parsePrimary(p.next())
		if tok.typ != tokenRightParenthesis {
			panic(syntaxError(tok.pos, "unexpected %s, expecting )", tok))
		}
		expr, tok := p.parseUnary(p.next())
		if expr == nil {
			panic(syntaxError(tok.pos, "unexpected %s, expecting expression", tok))
		}
		return ast.NewCast(pos.WithEnd(expr.Pos().End), typ, expr), tok
	}

	return p.parsePrimary(tok)
}

// isCast reports whether the tokens after the last read token, that is a
// left parenthesis, are the type of a cast expression as in "(Payment)x".
func (p *parsing) isCast() bool {
	i := p.i
	for {
		if p.tokens[i].typ != tokenIdentifier {
			return false
		}
		i++
		if p.tokens[i].typ != tokenPeriod {
			break
		}
		i++
	}
	if p.tokens[i].typ != tokenRightParenthesis {
		return false
	}
	switch p.tokens[i+1].typ {
	case tokenIdentifier, tokenInterpretedString, tokenVerbatimString, tokenChar, tokenNumber,
		tokenTrue, tokenFalse, tokenNull, tokenLeftParenthesis, tokenNot:
		return true
	}
	return false
}

// parsePrimary parses an identifier, a literal or a parenthesized expression
// followed by member accesses, invocations, element accesses and postfix
// operators.
func (p *parsing) parsePrimary(tok token) (ast.Expression, token) {

	var operand ast.Expression

	switch tok.typ {
	case tokenIdentifier:
		operand = ast.NewIdentifier(tok.pos, tok.txt)
	case tokenInterpretedString, tokenVerbatimString:
		operand = ast.NewLiteral(tok.pos, ast.StringLiteral, tok.txt)
	case tokenChar:
		operand = ast.NewLiteral(tok.pos, ast.CharLiteral, tok.txt)
	case tokenNumber:
		operand = ast.NewLiteral(tok.pos, ast.NumericLiteral, tok.txt)
	case tokenTrue, tokenFalse:
		operand = ast.NewLiteral(tok.pos, ast.BooleanLiteral, tok.txt)
	case tokenNull:
		operand = ast.NewLiteral(tok.pos, ast.NullLiteral, tok.txt)
	case tokenLeftParenthesis:
		pos := tok.pos
		var expr ast.Expression
		expr, tok = p.parseExpr(p.next())
		if expr == nil {
			panic(syntaxError(tok.pos, "unexpected %s, expecting expression", tok))
		}
		if tok.typ != tokenRightParenthesis {
			panic(syntaxError(tok.pos, "unexpected %s, expecting )", tok))
		}
		expr.SetParenthesis(expr.Parenthesis() + 1)
		*expr.Pos() = ast.Position{Line: pos.Line, Column: pos.Column, Start: pos.Start, End: tok.pos.End}
		operand = expr
	default:
		return nil, tok
	}

	tok = p.next()

	for {
		switch tok.typ {
		case tokenPeriod:
			tok = p.next()
			if tok.typ != tokenIdentifier {
				panic(syntaxError(tok.pos, "unexpected %s, expecting name", tok))
			}
			name := ast.NewIdentifier(tok.pos, tok.txt)
			operand = ast.NewMemberAccess(operand.Pos().WithEnd(tok.pos.End), operand, name)
			tok = p.next()
		case tokenLeftParenthesis:
			args, end := p.parseArguments(tokenRightParenthesis)
			operand = ast.NewInvocation(operand.Pos().WithEnd(end.pos.End), operand, args)
			tok = p.next()
		case tokenLeftBracket:
			pos := tok.pos
			args, end := p.parseArguments(tokenRightBracket)
			if args == nil {
				panic(syntaxError(end.pos, "unexpected ], expecting expression"))
			}
			list := ast.NewBracketedArgumentList(pos.WithEnd(end.pos.End), args)
			operand = ast.NewElementAccess(operand.Pos().WithEnd(end.pos.End), operand, list)
			tok = p.next()
		case tokenIncrement, tokenDecrement:
			op := ast.OperatorIncrement
			if tok.typ == tokenDecrement {
				op = ast.OperatorDecrement
			}
			operand = ast.NewPostfixUnary(operand.Pos().WithEnd(tok.pos.End), op, operand)
			tok = p.next()
		default:
			return operand, tok
		}
	}

}

// parseArguments parses a comma separated list of arguments up to the token
// close, and returns the arguments and the close token.
func (p *parsing) parseArguments(close tokenTyp) ([]ast.Expression, token) {
	tok := p.next()
	if tok.typ == close {
		return nil, tok
	}
	var args []ast.Expression
	for {
		var arg ast.Expression
		arg, tok = p.parseExpr(tok)
		if arg == nil {
			panic(syntaxError(tok.pos, "unexpected %s, expecting expression", tok))
		}
		args = append(args, arg)
		switch tok.typ {
		case tokenComma:
			tok = p.next()
		case close:
			return args, tok
		default:
			panic(syntaxError(tok.pos, "unexpected %s, expecting , or %s", tok, close))
		}
	}
}
