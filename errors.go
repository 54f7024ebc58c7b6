// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package razor2liquid

import (
	"errors"

	"github.com/open2b/razor2liquid/ast"
	"github.com/open2b/razor2liquid/internal/transform"
)

// Position is a position in a template.
type Position = ast.Position

// ParseError represents a syntax error found converting a template. A parse
// error does not stop the conversion.
type ParseError = transform.ParseError

// ConversionError represents an error that aborts the conversion of a
// template.
type ConversionError = transform.ConversionError

// ErrInvalidConfig is returned by LoadConfig when the configuration is not
// valid.
var ErrInvalidConfig = errors.New("razor2liquid: invalid configuration")
