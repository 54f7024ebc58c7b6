// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package astutil implements methods to walk and dump a code fragment tree.
package astutil

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/open2b/razor2liquid/ast"
)

type dumper struct {
	output      io.Writer
	indentLevel int
}

type errVisitor struct {
	err error
}

func (e errVisitor) Error() string {
	return e.err.Error()
}

// Visit elaborates a node of a tree, writing on a Writer the representation
// of the same node correctly indented. The Visit method is called by the Walk
// function.
func (d *dumper) Visit(node ast.Node) Visitor {

	// Management of the v.Visit(nil) call made by Walk.
	if node == nil {
		d.indentLevel--
		return nil
	}

	d.indentLevel++

	var text string
	switch n := node.(type) {
	case *ast.Unit:
		text = strconv.Itoa(len(n.Nodes)) + " nodes"
	case *ast.Literal:
		text = n.Value
	case *ast.If:
		text = n.Condition.String()
	case *ast.ForEach:
		text = n.Ident.Name + " in " + n.Expr.String()
	case *ast.Block:
		text = strconv.Itoa(len(n.Nodes)) + " statements"
		if n.Open {
			text += ", open"
		}
	default:
		text = node.String()
	}
	if len(text) > 60 {
		text = string(truncate([]byte(text), 60)) + "..."
	}

	for i := 0; i < d.indentLevel; i++ {
		_, err := fmt.Fprint(d.output, "│    ")
		if err != nil {
			panic(errVisitor{err})
		}
	}

	pos := "-"
	if p := node.Pos(); p != nil {
		pos = p.String()
	}

	_, err := fmt.Fprintf(d.output, "%v (%v) %v\n", node.Kind(), pos, text)
	if err != nil {
		panic(errVisitor{err})
	}

	return d
}

// Dump writes the dump of the tree rooted at node on w.
func Dump(w io.Writer, node ast.Node) (err error) {

	defer func() {
		if r := recover(); r != nil {
			if t, ok := r.(errVisitor); ok {
				err = t.err
			} else {
				panic(r)
			}
		}
	}()

	if node == nil {
		return errors.New("can't dump a nil tree")
	}

	d := dumper{w, -1}
	Walk(&d, node)

	return nil
}

func truncate(b []byte, maxRunes int) []byte {
	if maxRunes < 0 {
		panic("razor2liquid/astutil: maxRunes can not be negative")
	}
	if len(b) > maxRunes {
		var n = 1
		for pos := range string(b) {
			if n > maxRunes {
				return b[:pos]
			}
			n++
		}
	}
	return b
}
