// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"path"
	"strings"

	"github.com/open2b/razor2liquid/ast"

	"golang.org/x/text/language"
)

// nodes renders the nodes of a code span. A block end followed by an else
// clause continues the if statement opened in a previous span.
func (c *conversion) nodes(nodes []ast.Node) {
	for i := 0; i < len(nodes); i++ {
		switch n := nodes[i].(type) {
		case *ast.BlockEnd:
			if i+1 < len(nodes) {
				if els, ok := nodes[i+1].(*ast.ElseClause); ok {
					c.continueIf(n, els)
					i++
					continue
				}
			}
			c.closeBlock(n.Pos())
		case *ast.ElseClause:
			c.continueIf(nil, n)
		case *ast.IncompleteMember:
			c.incompleteMember(n)
		case ast.Statement:
			c.statement(n)
		default:
			c.diagnose(n, "TransformStatement")
		}
		if c.interpolations != 0 || c.tags != 0 {
			c.fatalf(nodes[i].Pos(), "unbalanced groups after statement")
		}
	}
}

// statement renders a statement.
func (c *conversion) statement(stmt ast.Statement) {

	switch s := stmt.(type) {

	case *ast.LocalDeclaration:
		c.declaration(s.Declaration)

	case *ast.ExpressionStatement:
		switch e := s.Expr.(type) {
		case *ast.Assignment:
			c.assignment(e)
		case *ast.PostfixUnary:
			c.diagnose(e, "TransformStatement")
		default:
			c.expression(e)
		}

	case *ast.If:
		c.ifStatement(s)

	case *ast.ForEach:
		c.startBlockTag(len(c.blocks))
		c.openTag()
		c.write("for " + s.Ident.Name + " in ")
		c.modeExpression(s.Expr)
		c.closeTag()
		c.pushBlock("for")
		if !c.body(s.Body) {
			c.closeBlock(s.Pos())
		}

	case *ast.Block:
		for _, n := range s.Nodes {
			c.statement(n)
		}

	case *ast.Empty, *ast.Directive:

	case *ast.BlockEnd:
		c.closeBlock(s.Pos())

	case *ast.ElseClause:
		c.continueIf(nil, s)

	default:
		c.diagnose(stmt, "TransformStatement")

	}

}

// body renders the body of an if or foreach statement and reports whether
// it is open, that is it continues in the following spans.
func (c *conversion) body(stmt ast.Statement) bool {
	c.statement(stmt)
	block, ok := stmt.(*ast.Block)
	return ok && block.Open
}

// ifStatement renders an if statement. A negated condition that is not a
// simple operand is rendered as an unless statement.
func (c *conversion) ifStatement(s *ast.If) {
	keyword := "if"
	cond := s.Condition
	if not, ok := cond.(*ast.PrefixUnary); ok && not.Op == ast.OperatorNot && !isName(not.Expr) {
		keyword = "unless"
		cond = not.Expr
	}
	c.blockTag(len(c.blocks), keyword, cond)
	c.pushBlock(keyword)
	open := c.body(s.Then)
	if !open && s.Else != nil {
		open = c.elseChain(s.Else)
	}
	if !open {
		c.closeBlock(s.Pos())
	}
}

// continueIf renders an else clause that continues an if statement opened in
// a previous span. end is the closing brace that precedes it, if any.
func (c *conversion) continueIf(end *ast.BlockEnd, els *ast.ElseClause) {
	if !c.inIf() {
		c.errorf(els.Pos(), "else without if")
		if end != nil {
			c.closeBlock(end.Pos())
		}
		return
	}
	if !c.elseChain(els) {
		c.closeBlock(els.Pos())
	}
}

// inIf reports whether the innermost open block is an if or an unless
// statement.
func (c *conversion) inIf() bool {
	if len(c.blocks) == 0 {
		return false
	}
	keyword := c.blocks[len(c.blocks)-1]
	return keyword == "if" || keyword == "unless"
}

// elseChain renders a chain of else clauses of the innermost open if
// statement and reports whether the last body is open.
func (c *conversion) elseChain(els *ast.ElseClause) bool {
	level := len(c.blocks) - 1
	for els != nil {
		if s, ok := els.Statement.(*ast.If); ok {
			c.blockTag(level, "elsif", s.Condition)
			if c.body(s.Then) {
				return true
			}
			els = s.Else
			continue
		}
		c.blockTag(level, "else", nil)
		return c.body(els.Statement)
	}
	return false
}

// blockTag writes the tag of a block statement at the given nesting level.
// cond is the condition, if any.
func (c *conversion) blockTag(level int, keyword string, cond ast.Expression) {
	c.startBlockTag(level)
	c.openTag()
	c.write(keyword)
	if cond != nil {
		c.write(" ")
		c.modeExpression(cond)
	}
	c.closeTag()
}

// declaration renders a local variable declaration, one tag for each
// declared variable.
func (c *conversion) declaration(d *ast.VariableDeclaration) {
	for _, v := range d.Variables {
		c.openTag()
		if v.Initializer == nil {
			c.write("assign " + v.Ident.Name + ` = ""`)
		} else if call, ok := v.Initializer.Value.(*ast.Invocation); ok && c.symbols.isCulture(call.Func.String()) {
			c.bindCulture(v.Ident, call)
		} else {
			c.write("assign " + v.Ident.Name + " = ")
			c.modeExpression(v.Initializer.Value)
		}
		c.closeTag()
	}
}

// bindCulture binds ident to the culture returned by call.
func (c *conversion) bindCulture(ident *ast.Identifier, call *ast.Invocation) {
	if c.culture != "" {
		c.fatalf(ident.Pos(), "culture already bound to %s", c.culture)
	}
	c.culture = ident.Name
	var name string
	if len(call.Args) > 0 {
		name = strings.ReplaceAll(c.source(call.Args[0]), `"`, "")
	}
	c.write("culture '" + name + "'")
	if _, err := language.Parse(name); err != nil {
		c.errorf(call.Pos(), "invalid culture %q", name)
	}
}

// assignment renders an assignment statement. An assignment to the layout
// property declares the layout of the template.
func (c *conversion) assignment(a *ast.Assignment) {
	if a.Type != ast.AssignmentSimple {
		c.diagnose(a, "TransformStatement")
		return
	}
	if id, ok := a.Lhs.(*ast.Identifier); ok && id.Name == c.symbols.Layout {
		if lit, ok := a.Rhs.(*ast.Literal); ok && lit.Type == ast.StringLiteral {
			name := lit.Unquoted()
			c.insertLayout(strings.TrimSuffix(name, path.Ext(name)))
			return
		}
	}
	c.startLine()
	c.openTag()
	c.write("assign ")
	c.modeExpression(a.Lhs)
	c.write(" = ")
	c.modeExpression(a.Rhs)
	c.closeTag()
}

// incompleteMember renders a fragment that is only a name. The model
// declaration removes the rest of its line.
func (c *conversion) incompleteMember(m *ast.IncompleteMember) {
	if m.Name == nil {
		c.fatalf(m.Pos(), "missing identifier after %s", m.Modifier)
	}
	if id, ok := m.Name.(*ast.Identifier); ok && id.Name == c.symbols.Model {
		c.suppressPrefix = true
		return
	}
	c.expression(m.Name)
}

// isName reports whether expr is an identifier, a member access or a call.
func isName(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Identifier, *ast.MemberAccess, *ast.Invocation:
		return true
	}
	return false
}
