// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ast declares the types used to define the trees of the code
// fragments embedded in a Razor template.
//
// For example, the code span of the template fragment:
//
//	@{ var total = Model.Price + 1; }
//
// is represented with the tree:
//
//	ast.NewUnit(&ast.Position{Line: 1, Column: 1, Start: 0, End: 30}, []ast.Node{
//		ast.NewLocalDeclaration(
//			&ast.Position{Line: 1, Column: 2, Start: 1, End: 30},
//			ast.NewVariableDeclaration(
//				&ast.Position{Line: 1, Column: 2, Start: 1, End: 29},
//				ast.NewIdentifier(&ast.Position{Line: 1, Column: 2, Start: 1, End: 3}, "var"),
//				[]*ast.VariableDeclarator{
//					ast.NewVariableDeclarator(
//						&ast.Position{Line: 1, Column: 6, Start: 5, End: 29},
//						ast.NewIdentifier(&ast.Position{Line: 1, Column: 6, Start: 5, End: 9}, "total"),
//						ast.NewEqualsValueClause(
//							&ast.Position{Line: 1, Column: 12, Start: 11, End: 29},
//							ast.NewBinary(...),
//						),
//					),
//				},
//			),
//		),
//	})
//
// Every node reports its Kind, so a consumer can dispatch with an exhaustive
// switch on the concrete type and use the kind name in diagnostics.
package ast

import (
	"strconv"
	"strings"
)

// Kind identifies the kind of a node.
type Kind int

const (
	KindUnit Kind = iota
	KindIncompleteMember
	KindDirective
	KindBlock
	KindBlockEnd
	KindElseClause
	KindEmptyStatement
	KindExpressionStatement
	KindLocalDeclaration
	KindVariableDeclaration
	KindVariableDeclarator
	KindEqualsValueClause
	KindIf
	KindForEach
	KindAssignment
	KindBinary
	KindLiteral
	KindInvocation
	KindIdentifier
	KindMemberAccess
	KindElementAccess
	KindBracketedArgumentList
	KindCast
	KindConditional
	KindPrefixUnary
	KindPostfixUnary
)

var kindString = [...]string{
	KindUnit:                  "CompilationUnit",
	KindIncompleteMember:      "IncompleteMember",
	KindDirective:             "Directive",
	KindBlock:                 "Block",
	KindBlockEnd:              "BlockEnd",
	KindElseClause:            "ElseClause",
	KindEmptyStatement:        "EmptyStatement",
	KindExpressionStatement:   "ExpressionStatement",
	KindLocalDeclaration:      "LocalDeclarationStatement",
	KindVariableDeclaration:   "VariableDeclaration",
	KindVariableDeclarator:    "VariableDeclarator",
	KindEqualsValueClause:     "EqualsValueClause",
	KindIf:                    "IfStatement",
	KindForEach:               "ForEachStatement",
	KindAssignment:            "AssignmentExpression",
	KindBinary:                "BinaryExpression",
	KindLiteral:               "LiteralExpression",
	KindInvocation:            "InvocationExpression",
	KindIdentifier:            "IdentifierName",
	KindMemberAccess:          "MemberAccessExpression",
	KindElementAccess:         "ElementAccessExpression",
	KindBracketedArgumentList: "BracketedArgumentList",
	KindCast:                  "CastExpression",
	KindConditional:           "ConditionalExpression",
	KindPrefixUnary:           "PrefixUnaryExpression",
	KindPostfixUnary:          "PostfixUnaryExpression",
}

// String returns the name of the kind, for example "IfStatement".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindString) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindString[k]
}

// OperatorType represents an operator type in a unary and binary expression.
type OperatorType int

const (
	OperatorEqual          OperatorType = iota // ==
	OperatorNotEqual                           // !=
	OperatorLess                               // <
	OperatorLessEqual                          // <=
	OperatorGreater                            // >
	OperatorGreaterEqual                       // >=
	OperatorNot                                // !
	OperatorAnd                                // &&
	OperatorOr                                 // ||
	OperatorBitAnd                             // &
	OperatorBitOr                              // |
	OperatorXor                                // ^
	OperatorAddition                           // +
	OperatorSubtraction                        // -
	OperatorMultiplication                     // *
	OperatorDivision                           // /
	OperatorModulo                             // %
	OperatorCoalesce                           // ??
	OperatorIncrement                          // ++
	OperatorDecrement                          // --
)

// String returns the string representation of the operator type.
func (op OperatorType) String() string {
	return []string{"==", "!=", "<", "<=", ">", ">=", "!", "&&", "||", "&", "|",
		"^", "+", "-", "*", "/", "%", "??", "++", "--"}[op]
}

// AssignmentType represents a type of assignment.
type AssignmentType int

const (
	AssignmentSimple      AssignmentType = iota // =
	AssignmentAddition                          // +=
	AssignmentSubtraction                       // -=
)

// String returns the string representation of the assignment type.
func (typ AssignmentType) String() string {
	return []string{"=", "+=", "-="}[typ]
}

// LiteralType represents the type of a literal.
type LiteralType int

const (
	StringLiteral LiteralType = iota
	CharLiteral
	NumericLiteral
	BooleanLiteral
	NullLiteral
)

// Node is a node of the tree.
type Node interface {
	Pos() *Position // position in the fragment source
	Kind() Kind     // kind of the node
	String() string // string representation
}

// Statement is a node that can appear as a statement.
type Statement interface {
	Node
	statement()
}

// Position is a position of a node in the source.
type Position struct {
	Line   int // line starting from 1
	Column int // column in characters starting from 1
	Start  int // index of the first byte
	End    int // index of the last byte
}

// Pos returns the position p.
func (p *Position) Pos() *Position {
	return p
}

// String returns the line and column separated by a colon, for example "37:18".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// WithEnd returns a copy of the position but with the given end index.
func (p *Position) WithEnd(end int) *Position {
	pp := *p
	pp.End = end
	return &pp
}

// Expression node represents an expression.
type Expression interface {
	Parenthesis() int
	SetParenthesis(int)
	Node
}

// expression represents an expression.
type expression struct {
	parenthesis int
}

// Parenthesis returns the number of parenthesis around the expression.
func (e *expression) Parenthesis() int {
	return e.parenthesis
}

// SetParenthesis sets the number of parenthesis around the expression.
func (e *expression) SetParenthesis(n int) {
	e.parenthesis = n
}

// parenthesize wraps s in the parenthesis of expr.
func parenthesize(expr Expression, s string) string {
	n := expr.Parenthesis()
	if n == 0 {
		return s
	}
	return strings.Repeat("(", n) + s + strings.Repeat(")", n)
}

// Unit node represents a parsed code fragment. Nodes contains statements,
// incomplete members, directives, block ends and else clauses.
type Unit struct {
	*Position
	Nodes []Node
}

// NewUnit returns a new Unit node.
func NewUnit(pos *Position, nodes []Node) *Unit {
	return &Unit{pos, nodes}
}

func (n *Unit) Kind() Kind { return KindUnit }

// String returns the string representation of n.
func (n *Unit) String() string {
	s := make([]string, len(n.Nodes))
	for i, node := range n.Nodes {
		s[i] = node.String()
	}
	return strings.Join(s, " ")
}

// IncompleteMember node represents a fragment that is only a name, as the
// implicit expression "Model.Title", or only a modifier. Name is nil in the
// latter case.
type IncompleteMember struct {
	*Position
	Name     Expression // identifier or member access, may be nil.
	Modifier string     // modifier keyword when Name is nil.
}

// NewIncompleteMember returns a new IncompleteMember node.
func NewIncompleteMember(pos *Position, name Expression, modifier string) *IncompleteMember {
	return &IncompleteMember{pos, name, modifier}
}

func (n *IncompleteMember) Kind() Kind { return KindIncompleteMember }

// String returns the string representation of n.
func (n *IncompleteMember) String() string {
	if n.Name == nil {
		return n.Modifier
	}
	return n.Name.String()
}

// Directive node represents a directive as "using System.Linq".
type Directive struct {
	*Position
	Keyword string // "using" or "inherits".
	Value   string // directive argument.
}

// NewDirective returns a new Directive node.
func NewDirective(pos *Position, keyword, value string) *Directive {
	return &Directive{pos, keyword, value}
}

func (n *Directive) Kind() Kind { return KindDirective }
func (n *Directive) statement() {}

// String returns the string representation of n.
func (n *Directive) String() string {
	return n.Keyword + " " + n.Value
}

// Block node represents a block. A block is open if its closing brace is not
// in the fragment, that is its content continues in the following spans.
type Block struct {
	*Position
	Nodes []Statement
	Open  bool
}

// NewBlock returns a new Block node.
func NewBlock(pos *Position, nodes []Statement, open bool) *Block {
	return &Block{pos, nodes, open}
}

func (n *Block) Kind() Kind { return KindBlock }
func (n *Block) statement() {}

// String returns the string representation of n.
func (n *Block) String() string {
	var b strings.Builder
	b.WriteString("{")
	for _, node := range n.Nodes {
		b.WriteString(" ")
		b.WriteString(node.String())
	}
	if !n.Open {
		b.WriteString(" }")
	}
	return b.String()
}

// BlockEnd node represents a closing brace of a block opened in a previous
// fragment.
type BlockEnd struct {
	*Position
}

// NewBlockEnd returns a new BlockEnd node.
func NewBlockEnd(pos *Position) *BlockEnd {
	return &BlockEnd{pos}
}

func (n *BlockEnd) Kind() Kind      { return KindBlockEnd }
func (n *BlockEnd) statement()      {}
func (n *BlockEnd) String() string { return "}" }

// ElseClause node represents an else clause. Statement is an *If for an
// "else if" clause.
type ElseClause struct {
	*Position
	Statement Statement
}

// NewElseClause returns a new ElseClause node.
func NewElseClause(pos *Position, stmt Statement) *ElseClause {
	return &ElseClause{pos, stmt}
}

func (n *ElseClause) Kind() Kind { return KindElseClause }
func (n *ElseClause) statement() {}

// String returns the string representation of n.
func (n *ElseClause) String() string {
	return "else " + n.Statement.String()
}

// Empty node represents an empty statement.
type Empty struct {
	*Position
}

// NewEmpty returns a new Empty node.
func NewEmpty(pos *Position) *Empty {
	return &Empty{pos}
}

func (n *Empty) Kind() Kind      { return KindEmptyStatement }
func (n *Empty) statement()      {}
func (n *Empty) String() string { return ";" }

// ExpressionStatement node represents an expression used as statement.
type ExpressionStatement struct {
	*Position
	Expr Expression
}

// NewExpressionStatement returns a new ExpressionStatement node.
func NewExpressionStatement(pos *Position, expr Expression) *ExpressionStatement {
	return &ExpressionStatement{pos, expr}
}

func (n *ExpressionStatement) Kind() Kind { return KindExpressionStatement }
func (n *ExpressionStatement) statement() {}

// String returns the string representation of n.
func (n *ExpressionStatement) String() string {
	return n.Expr.String() + ";"
}

// LocalDeclaration node represents a local variable declaration statement.
type LocalDeclaration struct {
	*Position
	Declaration *VariableDeclaration
}

// NewLocalDeclaration returns a new LocalDeclaration node.
func NewLocalDeclaration(pos *Position, decl *VariableDeclaration) *LocalDeclaration {
	return &LocalDeclaration{pos, decl}
}

func (n *LocalDeclaration) Kind() Kind { return KindLocalDeclaration }
func (n *LocalDeclaration) statement() {}

// String returns the string representation of n.
func (n *LocalDeclaration) String() string {
	return n.Declaration.String() + ";"
}

// VariableDeclaration node represents the declaration of one or more
// variables of the same type.
type VariableDeclaration struct {
	*Position
	Type      Expression // "var" or a type name.
	Variables []*VariableDeclarator
}

// NewVariableDeclaration returns a new VariableDeclaration node.
func NewVariableDeclaration(pos *Position, typ Expression, variables []*VariableDeclarator) *VariableDeclaration {
	return &VariableDeclaration{pos, typ, variables}
}

func (n *VariableDeclaration) Kind() Kind { return KindVariableDeclaration }

// String returns the string representation of n.
func (n *VariableDeclaration) String() string {
	s := make([]string, len(n.Variables))
	for i, v := range n.Variables {
		s[i] = v.String()
	}
	return n.Type.String() + " " + strings.Join(s, ", ")
}

// VariableDeclarator node represents a declared variable with its optional
// initializer.
type VariableDeclarator struct {
	*Position
	Ident       *Identifier
	Initializer *EqualsValueClause // nil if there is no initializer.
}

// NewVariableDeclarator returns a new VariableDeclarator node.
func NewVariableDeclarator(pos *Position, ident *Identifier, init *EqualsValueClause) *VariableDeclarator {
	return &VariableDeclarator{pos, ident, init}
}

func (n *VariableDeclarator) Kind() Kind { return KindVariableDeclarator }

// String returns the string representation of n.
func (n *VariableDeclarator) String() string {
	if n.Initializer == nil {
		return n.Ident.String()
	}
	return n.Ident.String() + " " + n.Initializer.String()
}

// EqualsValueClause node represents the "= value" part of a declarator.
type EqualsValueClause struct {
	*Position
	Value Expression
}

// NewEqualsValueClause returns a new EqualsValueClause node.
func NewEqualsValueClause(pos *Position, value Expression) *EqualsValueClause {
	return &EqualsValueClause{pos, value}
}

func (n *EqualsValueClause) Kind() Kind { return KindEqualsValueClause }

// String returns the string representation of n.
func (n *EqualsValueClause) String() string {
	return "= " + n.Value.String()
}

// If node represents an "if" statement.
type If struct {
	*Position
	Condition Expression
	Then      Statement
	Else      *ElseClause // nil if there is no else clause.
}

// NewIf returns a new If node.
func NewIf(pos *Position, cond Expression, then Statement, els *ElseClause) *If {
	return &If{pos, cond, then, els}
}

func (n *If) Kind() Kind { return KindIf }
func (n *If) statement() {}

// String returns the string representation of n.
func (n *If) String() string {
	s := "if (" + n.Condition.String() + ") " + n.Then.String()
	if n.Else != nil {
		s += " " + n.Else.String()
	}
	return s
}

// ForEach node represents a "foreach" statement.
type ForEach struct {
	*Position
	Type  Expression  // "var" or a type name.
	Ident *Identifier // iteration variable.
	Expr  Expression  // iterated collection.
	Body  Statement
}

// NewForEach returns a new ForEach node.
func NewForEach(pos *Position, typ Expression, ident *Identifier, expr Expression, body Statement) *ForEach {
	return &ForEach{pos, typ, ident, expr, body}
}

func (n *ForEach) Kind() Kind { return KindForEach }
func (n *ForEach) statement() {}

// String returns the string representation of n.
func (n *ForEach) String() string {
	return "foreach (" + n.Type.String() + " " + n.Ident.String() + " in " + n.Expr.String() + ") " + n.Body.String()
}

// Assignment node represents an assignment expression.
type Assignment struct {
	expression
	*Position
	Type AssignmentType
	Lhs  Expression
	Rhs  Expression
}

// NewAssignment returns a new Assignment node.
func NewAssignment(pos *Position, typ AssignmentType, lhs, rhs Expression) *Assignment {
	return &Assignment{expression{}, pos, typ, lhs, rhs}
}

func (n *Assignment) Kind() Kind { return KindAssignment }

// String returns the string representation of n.
func (n *Assignment) String() string {
	return parenthesize(n, n.Lhs.String()+" "+n.Type.String()+" "+n.Rhs.String())
}

// Binary node represents a binary operator expression.
type Binary struct {
	expression
	*Position
	Op    OperatorType
	Expr1 Expression
	Expr2 Expression
}

// NewBinary returns a new Binary node.
func NewBinary(pos *Position, op OperatorType, expr1, expr2 Expression) *Binary {
	return &Binary{expression{}, pos, op, expr1, expr2}
}

func (n *Binary) Kind() Kind { return KindBinary }

// String returns the string representation of n.
func (n *Binary) String() string {
	return parenthesize(n, n.Expr1.String()+" "+n.Op.String()+" "+n.Expr2.String())
}

// Precedence returns a number that represents the precedence of the
// expression.
func (n *Binary) Precedence() int {
	switch n.Op {
	case OperatorMultiplication, OperatorDivision, OperatorModulo:
		return 9
	case OperatorAddition, OperatorSubtraction:
		return 8
	case OperatorLess, OperatorLessEqual, OperatorGreater, OperatorGreaterEqual:
		return 7
	case OperatorEqual, OperatorNotEqual:
		return 6
	case OperatorBitAnd:
		return 5
	case OperatorXor:
		return 4
	case OperatorBitOr:
		return 3
	case OperatorAnd:
		return 2
	case OperatorOr:
		return 1
	case OperatorCoalesce:
		return 0
	}
	panic("invalid operator type")
}

// Literal node represents a string, char, numeric, boolean or null literal.
// Value is the literal as written in the source, quotes included.
type Literal struct {
	expression
	*Position
	Type  LiteralType
	Value string
}

// NewLiteral returns a new Literal node.
func NewLiteral(pos *Position, typ LiteralType, value string) *Literal {
	return &Literal{expression{}, pos, typ, value}
}

func (n *Literal) Kind() Kind { return KindLiteral }

// String returns the string representation of n.
func (n *Literal) String() string {
	return parenthesize(n, n.Value)
}

// Unquoted returns the value of a string or char literal without its quotes
// and without the verbatim prefix. For other literals returns Value.
func (n *Literal) Unquoted() string {
	v := n.Value
	if n.Type != StringLiteral && n.Type != CharLiteral {
		return v
	}
	v = strings.TrimPrefix(v, "@")
	if len(v) >= 2 {
		v = v[1 : len(v)-1]
	}
	return v
}

// Invocation node represents a method or function call.
type Invocation struct {
	expression
	*Position
	Func Expression
	Args []Expression
}

// NewInvocation returns a new Invocation node.
func NewInvocation(pos *Position, fun Expression, args []Expression) *Invocation {
	return &Invocation{expression{}, pos, fun, args}
}

func (n *Invocation) Kind() Kind { return KindInvocation }

// String returns the string representation of n.
func (n *Invocation) String() string {
	s := make([]string, len(n.Args))
	for i, arg := range n.Args {
		s[i] = arg.String()
	}
	return parenthesize(n, n.Func.String()+"("+strings.Join(s, ", ")+")")
}

// Name returns the bare name of the invoked method, that is the identifier
// of the function or the name of the accessed member.
func (n *Invocation) Name() string {
	switch f := n.Func.(type) {
	case *Identifier:
		return f.Name
	case *MemberAccess:
		return f.Name.Name
	}
	return ""
}

// Identifier node represents an identifier expression.
type Identifier struct {
	expression
	*Position
	Name string
}

// NewIdentifier returns a new Identifier node.
func NewIdentifier(pos *Position, name string) *Identifier {
	return &Identifier{expression{}, pos, name}
}

func (n *Identifier) Kind() Kind { return KindIdentifier }

// String returns the string representation of n.
func (n *Identifier) String() string {
	return parenthesize(n, n.Name)
}

// MemberAccess node represents a member access expression as "a.b".
type MemberAccess struct {
	expression
	*Position
	Expr Expression
	Name *Identifier
}

// NewMemberAccess returns a new MemberAccess node.
func NewMemberAccess(pos *Position, expr Expression, name *Identifier) *MemberAccess {
	return &MemberAccess{expression{}, pos, expr, name}
}

func (n *MemberAccess) Kind() Kind { return KindMemberAccess }

// String returns the string representation of n.
func (n *MemberAccess) String() string {
	return parenthesize(n, n.Expr.String()+"."+n.Name.String())
}

// ElementAccess node represents an element access expression as "a[0]".
type ElementAccess struct {
	expression
	*Position
	Expr Expression
	Args *BracketedArgumentList
}

// NewElementAccess returns a new ElementAccess node.
func NewElementAccess(pos *Position, expr Expression, args *BracketedArgumentList) *ElementAccess {
	return &ElementAccess{expression{}, pos, expr, args}
}

func (n *ElementAccess) Kind() Kind { return KindElementAccess }

// String returns the string representation of n.
func (n *ElementAccess) String() string {
	return parenthesize(n, n.Expr.String()+n.Args.String())
}

// BracketedArgumentList node represents the arguments of an element access.
type BracketedArgumentList struct {
	*Position
	Args []Expression
}

// NewBracketedArgumentList returns a new BracketedArgumentList node.
func NewBracketedArgumentList(pos *Position, args []Expression) *BracketedArgumentList {
	return &BracketedArgumentList{pos, args}
}

func (n *BracketedArgumentList) Kind() Kind { return KindBracketedArgumentList }

// String returns the string representation of n.
func (n *BracketedArgumentList) String() string {
	s := make([]string, len(n.Args))
	for i, arg := range n.Args {
		s[i] = arg.String()
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// Cast node represents a cast expression as "(T)e".
type Cast struct {
	expression
	*Position
	Type Expression
	Expr Expression
}

// NewCast returns a new Cast node.
func NewCast(pos *Position, typ, expr Expression) *Cast {
	return &Cast{expression{}, pos, typ, expr}
}

func (n *Cast) Kind() Kind { return KindCast }

// String returns the string representation of n.
func (n *Cast) String() string {
	return parenthesize(n, "("+n.Type.String()+")"+n.Expr.String())
}

// Conditional node represents a conditional expression as "c ? a : b".
type Conditional struct {
	expression
	*Position
	Condition Expression
	Then      Expression
	Else      Expression
}

// NewConditional returns a new Conditional node.
func NewConditional(pos *Position, cond, then, els Expression) *Conditional {
	return &Conditional{expression{}, pos, cond, then, els}
}

func (n *Conditional) Kind() Kind { return KindConditional }

// String returns the string representation of n.
func (n *Conditional) String() string {
	return parenthesize(n, n.Condition.String()+" ? "+n.Then.String()+" : "+n.Else.String())
}

// PrefixUnary node represents a prefix unary operator expression.
type PrefixUnary struct {
	expression
	*Position
	Op   OperatorType
	Expr Expression
}

// NewPrefixUnary returns a new PrefixUnary node.
func NewPrefixUnary(pos *Position, op OperatorType, expr Expression) *PrefixUnary {
	return &PrefixUnary{expression{}, pos, op, expr}
}

func (n *PrefixUnary) Kind() Kind { return KindPrefixUnary }

// String returns the string representation of n.
func (n *PrefixUnary) String() string {
	return parenthesize(n, n.Op.String()+n.Expr.String())
}

// PostfixUnary node represents an increment or a decrement expression.
type PostfixUnary struct {
	expression
	*Position
	Op   OperatorType
	Expr Expression
}

// NewPostfixUnary returns a new PostfixUnary node.
func NewPostfixUnary(pos *Position, op OperatorType, expr Expression) *PostfixUnary {
	return &PostfixUnary{expression{}, pos, op, expr}
}

func (n *PostfixUnary) Kind() Kind { return KindPostfixUnary }

// String returns the string representation of n.
func (n *PostfixUnary) String() string {
	return parenthesize(n, n.Expr.String()+n.Op.String())
}
