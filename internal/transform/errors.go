// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"fmt"

	"github.com/open2b/razor2liquid/ast"
)

// ParseError is a non-fatal error found converting a template. The
// conversion continues after a parse error.
type ParseError struct {
	Pos     ast.Position // position in the template
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ConversionError is a fatal error that aborts a conversion. It is returned
// when a template uses a construct that can not be converted safely, as an
// element access with an index other than zero, or when an invariant of the
// conversion is broken.
type ConversionError struct {
	Path string       // path of the template, if known
	Pos  ast.Position // position in the template
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: conversion error: %s", e.Pos, e.Err)
	}
	return fmt.Sprintf("%s:%s: conversion error: %s", e.Path, e.Pos, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
