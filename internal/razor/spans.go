// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package razor implements a classifier that splits a Razor template into
// markup, code, comment, transition and meta-code spans.
package razor

import (
	"fmt"

	"github.com/open2b/razor2liquid/ast"
)

// SpanKind is the kind of a span.
type SpanKind int

const (
	Markup SpanKind = iota
	Code
	Comment
	Transition
	MetaCode
)

// String returns the name of the kind.
func (k SpanKind) String() string {
	switch k {
	case Markup:
		return "Markup"
	case Code:
		return "Code"
	case Comment:
		return "Comment"
	case Transition:
		return "Transition"
	case MetaCode:
		return "MetaCode"
	}
	panic("invalid span kind")
}

// Span is a contiguous run of template source.
type Span struct {
	Kind    SpanKind
	Content string
	Pos     ast.Position
}

// String returns a representation of the span, for example
// `Code(2:3) "Model.Title"`.
func (s Span) String() string {
	return fmt.Sprintf("%s(%s) %q", s.Kind, s.Pos, s.Content)
}

// Error is a syntax error found classifying a template. It does not stop
// the classification.
type Error struct {
	Pos ast.Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}
