package driver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch parses every path once, then again each time one of them is written
// or recreated, passing each result to fn. fn runs on the watching goroutine,
// one call at a time. Watch returns when ctx is done or the watcher fails.
//
// The containing directories are watched, not the files, so a save that
// renames a temporary file over the original is still seen.
func Watch(ctx context.Context, paths []string, opts Options, fn func(Result)) error {
	log := opts.logger()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	tracked := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		tracked[abs] = path

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	results, err := ParseFiles(ctx, paths, opts)
	if err != nil {
		return err
	}
	for _, res := range results {
		fn(res)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path, ok := tracked[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}

			log.Debug("change detected", "path", path, "op", ev.Op.String())

			res, err := ParseFile(path, opts)
			if err != nil {
				// The file may be mid-rename; the next event picks it up.
				log.Warn("reparse skipped", "path", path, "err", err)
				continue
			}
			fn(res)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", err)
		}
	}
}
