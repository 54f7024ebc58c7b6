// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/open2b/razor2liquid/ast"
)

// conversion is the state of a single template conversion. All the output
// goes through its methods, that keep the interpolation and tag groups
// balanced.
type conversion struct {
	symbols *Symbols
	parser  CodeParser

	out []byte // Liquid output

	interpolations int  // depth of the open interpolation groups
	wrapped        bool // reports whether "{{ " has been written
	tags           int  // depth of the open tag groups

	blocks         []string // keywords of the open blocks
	pendingComment []byte   // diagnostics to write when the groups close

	culture        string           // variable bound to the culture, if any
	suppressPrefix bool             // remove the first line of the next markup span
	expressionMode bool             // expressions are rendered without interpolation
	negation       *ast.PrefixUnary // logical negation of the next call
	layout         string           // declared layout

	errors []*ParseError

	fragment string       // source of the current code span
	spanPos  ast.Position // position of the current span in the template

	helper       bool // skipping a helper block
	helperBraces int  // brace depth of the skipped helper
	helperOpened bool // reports whether the helper block has been opened
}

func newConversion(parser CodeParser, symbols *Symbols) *conversion {
	return &conversion{symbols: symbols, parser: parser}
}

// write writes s to the output.
func (c *conversion) write(s string) {
	c.out = append(c.out, s...)
}

// openInterpolation opens an interpolation group. The "{{ " delimiter is
// written only by the outermost group and only if there is no open tag and
// the expression mode is off.
func (c *conversion) openInterpolation() {
	if c.interpolations == 0 && c.tags == 0 && !c.expressionMode {
		c.write("{{ ")
		c.wrapped = true
	}
	c.interpolations++
}

// closeInterpolation closes an interpolation group.
func (c *conversion) closeInterpolation() {
	c.interpolations--
	if c.interpolations < 0 {
		c.fatalf(nil, "interpolation depth is negative")
	}
	if c.interpolations == 0 {
		if c.wrapped {
			c.write(" }}")
			c.wrapped = false
		}
		c.flushComment()
	}
}

// openTag opens a tag group. The "{% " delimiter is written only by the
// outermost group.
func (c *conversion) openTag() {
	if c.tags == 0 {
		c.write("{% ")
	}
	c.tags++
}

// closeTag closes a tag group.
func (c *conversion) closeTag() {
	c.tags--
	if c.tags < 0 {
		c.fatalf(nil, "tag depth is negative")
	}
	if c.tags == 0 {
		c.write(" %}")
		c.flushComment()
	}
}

// diagnose writes a diagnostic comment for a node that can not be
// converted. origin is the name of the operation that has found it. If a
// group is open, a placeholder is written in place of the node and the
// comment is written after the group is closed.
func (c *conversion) diagnose(node ast.Node, origin string) {
	c.comment(node.Kind().String(), origin, c.source(node))
}

// comment writes, or defers, a diagnostic comment.
func (c *conversion) comment(kind, origin, src string) {
	block := "\n{% comment %}\n---Expression: " + kind + " ---- From: " + origin + "\n" + src + "\n{% endcomment %}\n"
	if c.interpolations > 0 || c.tags > 0 {
		c.write("TODO_COMMENT")
		c.pendingComment = append(c.pendingComment, block...)
		return
	}
	c.write(block)
}

// flushComment writes the deferred diagnostics, if there are no open groups.
func (c *conversion) flushComment() {
	if c.pendingComment == nil || c.interpolations > 0 || c.tags > 0 {
		return
	}
	c.out = append(c.out, c.pendingComment...)
	c.pendingComment = nil
}

// source returns the source of node in the current fragment.
func (c *conversion) source(node ast.Node) string {
	p := node.Pos()
	if p == nil || p.Start < 0 || p.Start > p.End || p.End >= len(c.fragment) {
		return node.String()
	}
	return c.fragment[p.Start : p.End+1]
}

// modeExpression renders expr in expression mode.
func (c *conversion) modeExpression(expr ast.Expression) {
	mode := c.expressionMode
	c.expressionMode = true
	c.expression(expr)
	c.expressionMode = mode
}

// atLineStart reports whether the output is empty or ends with a newline.
func (c *conversion) atLineStart() bool {
	return len(c.out) == 0 || c.out[len(c.out)-1] == '\n'
}

// startLine starts a new line if the output does not end with one.
func (c *conversion) startLine() {
	if !c.atLineStart() {
		c.write("\n")
	}
}

// startBlockTag prepares the output for the tag of a block statement at the
// given nesting level. A block tag that follows another tag starts on a new
// line and a block tag at the start of a line is indented.
func (c *conversion) startBlockTag(level int) {
	if bytes.HasSuffix(c.out, []byte("%}")) {
		c.write("\n")
	}
	if c.atLineStart() {
		c.write(strings.Repeat("  ", level))
	}
}

// pushBlock opens a block with the given keyword.
func (c *conversion) pushBlock(keyword string) {
	c.blocks = append(c.blocks, keyword)
}

// closeBlock closes the innermost open block writing its end tag. pos is
// the position of the closing brace.
func (c *conversion) closeBlock(pos *ast.Position) {
	if len(c.blocks) == 0 {
		c.errorf(pos, "unexpected }")
		return
	}
	keyword := c.blocks[len(c.blocks)-1]
	c.blocks = c.blocks[:len(c.blocks)-1]
	c.startBlockTag(len(c.blocks))
	c.openTag()
	c.write("end" + keyword)
	c.closeTag()
}

// drain closes all the open blocks.
func (c *conversion) drain() {
	for len(c.blocks) > 0 {
		c.closeBlock(nil)
	}
}

// trimTrailingSpaces removes the spaces and tabs at the end of the output.
func (c *conversion) trimTrailingSpaces() {
	c.out = bytes.TrimRight(c.out, " \t")
}

// insertLayout declares the layout of the template.
func (c *conversion) insertLayout(name string) {
	c.layout = name
	tag := "{% layout '" + name + "' %}"
	c.out = append([]byte(tag), c.out...)
}

// position returns the position in the template of pos, a position in the
// current code span. If pos is nil, it returns the position of the span.
func (c *conversion) position(pos *ast.Position) ast.Position {
	if pos == nil {
		return c.spanPos
	}
	p := ast.Position{
		Line:   c.spanPos.Line + pos.Line - 1,
		Column: pos.Column,
		Start:  c.spanPos.Start + pos.Start,
		End:    c.spanPos.Start + pos.End,
	}
	if pos.Line == 1 {
		p.Column = c.spanPos.Column + pos.Column - 1
	}
	return p
}

// errorf records a non-fatal error at the position pos of the current code
// span.
func (c *conversion) errorf(pos *ast.Position, format string, a ...interface{}) {
	c.errors = append(c.errors, &ParseError{Pos: c.position(pos), Message: fmt.Sprintf(format, a...)})
}

// fatalf aborts the conversion with a ConversionError at the position pos of
// the current code span.
func (c *conversion) fatalf(pos *ast.Position, format string, a ...interface{}) {
	panic(&ConversionError{Pos: c.position(pos), Err: fmt.Errorf(format, a...)})
}
