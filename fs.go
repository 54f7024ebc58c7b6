// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package razor2liquid

import (
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TemplateExt is the extension of the Razor templates.
const TemplateExt = ".cshtml"

// WriteFunc is called by ConvertFS to write a converted file. name is a slash
// separated path relative to the converted directory.
type WriteFunc func(name string, data []byte) error

// ConvertFS converts the Razor templates, that are the files with extension
// ".cshtml", in the directory dir of fsys and in its subdirectories. Each
// converted template is passed to write with the same path but with the
// extension of the options, ".liquid" by default. If options.Helpers is true,
// the helpers of a template are written as partial templates, named as the
// helper, in the same directory of the template.
//
// An error that aborts the conversion of a template does not stop the
// conversion of the other templates, it is reported in the returned report.
// ConvertFS returns an error only if a file can not be read or written.
func ConvertFS(fsys fs.FS, dir string, write WriteFunc, options *Options) (*Report, error) {

	if options == nil {
		options = &Options{}
	}
	ext := options.Ext
	if ext == "" {
		ext = ".liquid"
	}
	log := Logger()

	report := &Report{}

	err := fs.WalkDir(fsys, dir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(name) != TemplateExt {
			return nil
		}
		start := time.Now()
		rel := name
		if dir != "." {
			rel = strings.TrimPrefix(name, dir+"/")
		}
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		file := FileReport{Path: rel}
		res, err := Convert(src, options)
		if err != nil {
			var cerr *ConversionError
			if errors.As(err, &cerr) {
				cerr.Path = rel
			}
			file.Err = err
			report.Files = append(report.Files, file)
			log.Error("conversion failed", zap.String("file", rel), zap.Error(err))
			return nil
		}
		file.Layout = res.Layout
		file.Errors = res.Errors
		file.Diagnostics = countDiagnostics(res.Liquid)
		err = write(strings.TrimSuffix(rel, TemplateExt)+ext, []byte(res.Liquid))
		if err != nil {
			return err
		}
		if options.Helpers {
			helpers, err := ConvertHelpers(src, options)
			if err != nil {
				file.Err = err
				log.Error("helper conversion failed", zap.String("file", rel), zap.Error(err))
			}
			for name, h := range helpers {
				err = write(path.Join(path.Dir(rel), name+ext), []byte(h.Liquid))
				if err != nil {
					return err
				}
				file.Helpers = append(file.Helpers, name)
			}
			sort.Strings(file.Helpers)
		}
		report.Files = append(report.Files, file)
		log.Info("converted",
			zap.String("file", rel),
			zap.Int("errors", len(res.Errors)),
			zap.Int("diagnostics", file.Diagnostics),
			zap.Duration("elapsed", time.Since(start)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

// countDiagnostics returns the number of diagnostic comments in a converted
// template.
func countDiagnostics(liquid string) int {
	return strings.Count(liquid, "{% comment %}\n---Expression: ")
}
