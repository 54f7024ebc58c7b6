// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package astutil

import (
	"fmt"

	"github.com/open2b/razor2liquid/ast"
)

// Visitor's visit method is invoked for every node encountered by Walk.
type Visitor interface {
	Visit(node ast.Node) (w Visitor)
}

// Walk visits a tree in depth. Initially it calls v.Visit(node), where node
// must not be nil. If the value w returned by v.Visit(node) is different from
// nil, Walk is called recursively using w as the Visitor on all children
// other than nil of the tree. Finally, call w.Visit(nil).
func Walk(v Visitor, node ast.Node) {

	if v == nil {
		panic("v can't be nil")
	}

	if node == nil {
		panic("node can't be nil")
	}

	v = v.Visit(node)

	if v == nil {
		return
	}

	switch n := node.(type) {

	case *ast.Unit:
		for _, child := range n.Nodes {
			Walk(v, child)
		}

	case *ast.IncompleteMember:
		if n.Name != nil {
			Walk(v, n.Name)
		}

	case *ast.Block:
		for _, child := range n.Nodes {
			Walk(v, child)
		}

	case *ast.ElseClause:
		Walk(v, n.Statement)

	case *ast.ExpressionStatement:
		Walk(v, n.Expr)

	case *ast.LocalDeclaration:
		Walk(v, n.Declaration)

	case *ast.VariableDeclaration:
		Walk(v, n.Type)
		for _, child := range n.Variables {
			Walk(v, child)
		}

	case *ast.VariableDeclarator:
		Walk(v, n.Ident)
		if n.Initializer != nil {
			Walk(v, n.Initializer)
		}

	case *ast.EqualsValueClause:
		Walk(v, n.Value)

	case *ast.If:
		Walk(v, n.Condition)
		Walk(v, n.Then)
		if n.Else != nil {
			Walk(v, n.Else)
		}

	case *ast.ForEach:
		Walk(v, n.Type)
		Walk(v, n.Ident)
		Walk(v, n.Expr)
		Walk(v, n.Body)

	case *ast.Assignment:
		Walk(v, n.Lhs)
		Walk(v, n.Rhs)

	case *ast.Binary:
		Walk(v, n.Expr1)
		Walk(v, n.Expr2)

	case *ast.Invocation:
		Walk(v, n.Func)
		for _, arg := range n.Args {
			Walk(v, arg)
		}

	case *ast.MemberAccess:
		Walk(v, n.Expr)
		Walk(v, n.Name)

	case *ast.ElementAccess:
		Walk(v, n.Expr)
		Walk(v, n.Args)

	case *ast.BracketedArgumentList:
		for _, arg := range n.Args {
			Walk(v, arg)
		}

	case *ast.Cast:
		Walk(v, n.Type)
		Walk(v, n.Expr)

	case *ast.Conditional:
		Walk(v, n.Condition)
		Walk(v, n.Then)
		Walk(v, n.Else)

	case *ast.PrefixUnary:
		Walk(v, n.Expr)

	case *ast.PostfixUnary:
		Walk(v, n.Expr)

	case *ast.Directive, *ast.BlockEnd, *ast.Empty, *ast.Literal, *ast.Identifier:
		// Leaves.

	default:
		panic(fmt.Sprintf("unsupported node type %T", node))

	}

	v.Visit(nil)
}
