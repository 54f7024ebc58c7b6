// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"strconv"
	"strings"

	"github.com/open2b/razor2liquid/ast"
)

// expression renders an expression.
func (c *conversion) expression(expr ast.Expression) {

	switch e := expr.(type) {

	case *ast.Literal:
		c.write(e.Value)

	case *ast.Identifier, *ast.MemberAccess:
		path, ok := c.path(expr)
		if !ok {
			c.diagnose(expr, "TransformExpression")
			return
		}
		c.openInterpolation()
		c.write(path)
		c.closeInterpolation()

	case *ast.Binary:
		c.openInterpolation()
		c.expression(e.Expr1)
		switch e.Op {
		case ast.OperatorAddition:
			c.write(" | append: ")
		case ast.OperatorOr:
			c.write(" or ")
		case ast.OperatorAnd:
			c.write(" and ")
		default:
			c.write(" " + e.Op.String() + " ")
		}
		c.expression(e.Expr2)
		c.closeInterpolation()

	case *ast.ElementAccess:
		if !c.firstIndex(e) {
			c.diagnose(expr, "TransformExpression")
			return
		}
		c.openInterpolation()
		c.expression(e.Expr)
		c.write(" | first")
		c.closeInterpolation()

	case *ast.Cast:
		c.openInterpolation()
		c.modeExpression(e.Expr)
		c.closeInterpolation()

	case *ast.PrefixUnary:
		c.prefixUnary(e)

	case *ast.Conditional:
		cond, ok := e.Condition.(*ast.Identifier)
		if !ok || cond.Parenthesis() > 0 {
			c.diagnose(expr, "TransformExpression")
			return
		}
		c.openInterpolation()
		c.write(cond.Name + " | tenary: ")
		c.expression(e.Then)
		c.write(", ")
		c.expression(e.Else)
		c.closeInterpolation()

	case *ast.Invocation:
		c.invocation(e)

	default:
		c.diagnose(expr, "TransformExpression")

	}

}

// prefixUnary renders a prefix unary expression.
func (c *conversion) prefixUnary(e *ast.PrefixUnary) {
	switch e.Op {
	case ast.OperatorNot, ast.OperatorAddition:
		if inv, ok := e.Expr.(*ast.Invocation); ok && len(inv.Args) > 0 && e.Op == ast.OperatorNot {
			negation := c.negation
			c.negation = e
			c.invocation(inv)
			c.negation = negation
			return
		}
		if !isOperand(e.Expr) {
			c.diagnose(e, "TransformExpression")
			return
		}
		c.openInterpolation()
		c.expression(e.Expr)
		if c.expressionMode {
			if e.Op == ast.OperatorNot {
				c.write(" == false")
			} else {
				c.write(" == true")
			}
		}
		c.closeInterpolation()
	case ast.OperatorSubtraction:
		c.openInterpolation()
		c.write("-")
		c.expression(e.Expr)
		c.closeInterpolation()
	default:
		c.diagnose(e, "TransformExpression")
	}
}

// invocation renders a call.
func (c *conversion) invocation(e *ast.Invocation) {

	// The negation applies only to this call, not to its arguments.
	negation := c.negation
	negated := negation != nil
	c.negation = nil
	defer func() { c.negation = negation }()

	sym := c.symbols
	name := e.Name()
	member, isMember := e.Func.(*ast.MemberAccess)

	if _, ok := e.Func.(*ast.Identifier); ok {
		switch {
		case contains(sym.Translate, name):
			c.translate(e, false)
			return
		case contains(sym.TranslateRaw, name):
			c.translate(e, true)
			return
		case contains(sym.Raw, name):
			c.raw(e)
			return
		case contains(sym.RenderBody, name) && len(e.Args) == 0:
			c.openTag()
			c.write("renderbody")
			c.closeTag()
			return
		}
		if filter, ok := sym.Filters[name]; ok && len(e.Args) > 0 {
			c.filter(filter, e.Args)
			return
		}
		if partial, ok := sym.Partials[name]; ok {
			c.partial(partial, e.Args)
			return
		}
	}

	if contains(sym.IsNullOrEmpty, e.Func.String()) && len(e.Args) == 1 {
		c.openInterpolation()
		c.expression(e.Args[0])
		c.write(" | is_null_or_empty")
		if negated {
			c.write(" == false")
		}
		c.closeInterpolation()
		return
	}

	if isMember {
		switch {
		case name == sym.Equals && len(e.Args) == 1:
			c.openInterpolation()
			c.expression(member.Expr)
			if negated {
				c.write(" != ")
			} else {
				c.write(" == ")
			}
			c.expression(e.Args[0])
			c.closeInterpolation()
			return
		case name == sym.ToString && len(e.Args) == 0:
			c.expression(member.Expr)
			return
		}
	}

	if negated {
		c.diagnose(negation, "TransformInvocation")
		return
	}
	c.diagnose(e, "TransformInvocation")
}

// translate renders a call to a translation function. The first argument is
// the key, the other arguments, except the culture, are the arguments of the
// translate filter.
func (c *conversion) translate(e *ast.Invocation, raw bool) {
	if len(e.Args) == 0 {
		c.diagnose(e, "TransformInvocation")
		return
	}
	c.openInterpolation()
	key := c.source(e.Args[0])
	if lit, ok := e.Args[0].(*ast.Literal); ok && lit.Type == ast.StringLiteral {
		key = lit.Unquoted()
	}
	c.write(`"` + key + `" | translate`)
	var args []ast.Expression
	for _, arg := range e.Args[1:] {
		if c.culture != "" && c.source(arg) == c.culture {
			continue
		}
		args = append(args, arg)
	}
	if len(args) > 0 {
		c.write(": ")
		c.arguments(args)
	}
	if raw {
		c.write(" | raw")
	}
	c.closeInterpolation()
}

// raw renders a call to a raw function. A string literal argument is
// written as is.
func (c *conversion) raw(e *ast.Invocation) {
	if len(e.Args) != 1 {
		c.diagnose(e, "TransformInvocation")
		return
	}
	if lit, ok := e.Args[0].(*ast.Literal); ok && lit.Type == ast.StringLiteral {
		c.write(stringValue(lit))
		return
	}
	c.openInterpolation()
	c.expression(e.Args[0])
	c.write(" | raw")
	c.closeInterpolation()
}

// filter renders a call to a formatting function as a filter applied to the
// first argument.
func (c *conversion) filter(name string, args []ast.Expression) {
	c.openInterpolation()
	c.expression(args[0])
	c.write(" | " + name)
	if len(args) > 1 {
		c.write(": ")
		c.arguments(args[1:])
	}
	c.closeInterpolation()
}

// partial renders a call to a partial function.
func (c *conversion) partial(name string, args []ast.Expression) {
	c.openTag()
	c.write("partial '" + name + "'")
	for _, arg := range args {
		c.write(", ")
		c.modeExpression(arg)
	}
	c.closeTag()
}

// arguments renders a comma separated list of arguments.
func (c *conversion) arguments(args []ast.Expression) {
	for i, arg := range args {
		if i > 0 {
			c.write(", ")
		}
		c.modeExpression(arg)
	}
}

// path returns the path of expr, an identifier or a chain of member
// accesses as "Model.Items[0].Name". An element access in the chain must
// have the index zero. It returns false if expr is not such a chain.
func (c *conversion) path(expr ast.Expression) (string, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name, true
	case *ast.MemberAccess:
		path, ok := c.path(e.Expr)
		if !ok {
			return "", false
		}
		return path + "." + e.Name.Name, true
	case *ast.ElementAccess:
		if !c.firstIndex(e) {
			return "", false
		}
		path, ok := c.path(e.Expr)
		if !ok {
			return "", false
		}
		return path + "[0]", true
	}
	return "", false
}

// firstIndex reports whether e has the single numeric index zero. It returns
// false if the index is not a numeric literal and raises a conversion error
// if it is a number other than zero.
func (c *conversion) firstIndex(e *ast.ElementAccess) bool {
	var index *ast.Literal
	if args := e.Args.Args; len(args) == 1 {
		index, _ = args[0].(*ast.Literal)
	}
	if index == nil || index.Type != ast.NumericLiteral {
		return false
	}
	if n, err := strconv.Atoi(index.Value); err != nil || n != 0 {
		c.fatalf(index.Pos(), "unsupported index %s, only index 0 can be converted", index.Value)
	}
	return true
}

// isOperand reports whether expr is an identifier, a member access or a call
// without arguments.
func isOperand(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Identifier, *ast.MemberAccess:
		return true
	case *ast.Invocation:
		return len(e.Args) == 0
	}
	return false
}

// stringValue returns the value of a string literal.
func stringValue(lit *ast.Literal) string {
	if strings.HasPrefix(lit.Value, "@") {
		return strings.ReplaceAll(lit.Unquoted(), `""`, `"`)
	}
	if s, err := strconv.Unquote(lit.Value); err == nil {
		return s
	}
	return lit.Unquoted()
}
