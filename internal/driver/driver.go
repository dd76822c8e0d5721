// Package driver runs the parser over files on disk: in bounded parallel
// batches, or continuously as the files change.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/parser"
)

// Options configures a batch or watch run.
type Options struct {
	// Jobs caps how many files are parsed at once. Zero or less uses
	// GOMAXPROCS.
	Jobs int
	// MaxDepth is passed to parser.WithMaxDepth.
	MaxDepth int
	Logger   *slog.Logger
}

func (o Options) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Result is the outcome of parsing one file. Exactly one of File and Err is
// set.
type Result struct {
	Path    string
	Source  string
	File    *ast.File
	Err     *parser.ParseError
	Elapsed time.Duration
}

// OK reports whether the file parsed.
func (r Result) OK() bool {
	return r.Err == nil
}

// ParseSource parses src as the contents of path.
func ParseSource(path, src string, opts Options) (Result, error) {
	began := time.Now()
	res := Result{Path: path, Source: src}

	file, err := parser.ParseFile(src, parser.WithFilename(path), parser.WithMaxDepth(opts.MaxDepth))
	res.Elapsed = time.Since(began)

	if err != nil {
		var perr *parser.ParseError
		if !errors.As(err, &perr) {
			return res, fmt.Errorf("parse %s: %w", path, err)
		}
		res.Err = perr
		opts.logger().Debug("parse failed", "path", path, "line", perr.Line, "column", perr.Column, "elapsed", res.Elapsed)
		return res, nil
	}

	res.File = file
	opts.logger().Debug("parsed", "path", path, "items", len(file.Items), "elapsed", res.Elapsed)
	return res, nil
}

// ParseFile reads and parses a single file.
func ParseFile(path string, opts Options) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseSource(path, string(data), opts)
}

// ParseFiles parses every path with at most opts.Jobs parses in flight.
// Results come back in the order of paths. Syntax and lexical errors are
// reported per result; an unreadable file or a cancelled context aborts the
// whole batch.
func ParseFiles(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := ParseFile(path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
	}
	opts.logger().Info("batch finished", "files", len(paths), "failed", failed, "jobs", opts.jobs())

	return results, nil
}
