// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/open2b/razor2liquid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// WatchCmd converts a template each time it changes.
var WatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Convert a template each time it is written",
	Long: `Watch converts a template and converts it again each time it is written.
The Liquid template is written to the file given with --out or to a file with
the same name of the template and the extension of the converted files.
Press Ctrl+C to stop.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		out := outPath
		if out == "" {
			out = strings.TrimSuffix(name, filepath.Ext(name)) + options.Ext
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, name, out)
	},
}

// watch converts the template name to out, and converts it again on each
// write until ctx is done.
func watch(ctx context.Context, name, out string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	err = watcher.Add(name)
	if err != nil {
		return err
	}
	log := razor2liquid.Logger()
	convert := func() {
		err := convertFile(nil, name, out)
		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
			return
		}
		log.Info("converted", zap.String("file", name), zap.String("out", out))
	}
	convert()
	fmt.Fprintf(os.Stderr, "Watching %s, press Ctrl+C to stop\n", name)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				convert()
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				// Editors that replace the file on save remove the watch.
				_ = watcher.Remove(name)
				if err := watcher.Add(name); err == nil {
					convert()
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch failed", zap.String("file", name), zap.Error(err))
		}
	}
}
