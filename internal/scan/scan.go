// Package scan discovers launchable files under directories, for turning an
// imported or dropped folder into deck buttons.
package scan

import (
	"context"
	"errors"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"golang.org/x/sync/errgroup"

	"github.com/justyntemme/quickdeck/internal/debug"
)

// Options controls a directory scan.
type Options struct {
	MaxDepth      int  // 1 = immediate children only
	IncludeHidden bool // Include dot-prefixed files and directories
	MaxResults    int  // Stop after this many files, 0 = no limit
}

// errLimit stops the walk once MaxResults is reached.
var errLimit = errors.New("scan limit reached")

// skipDirNames are directories never worth descending into during an import.
var skipDirNames = map[string]bool{
	"node_modules": true,
	"__pycache__":  true,
}

// Scan walks root up to the configured depth and returns the regular files
// found, sorted by path. Unreadable entries are skipped, not fatal.
func Scan(ctx context.Context, root string, opts Options) ([]string, error) {
	maxDepth := opts.MaxDepth
	if maxDepth < 1 {
		maxDepth = 1
	}
	debug.Log(debug.SCAN, "scan: starting root=%q maxDepth=%d", root, maxDepth)

	var files []string
	var mu sync.Mutex

	conf := &fastwalk.Config{
		Follow: true, // Follow symlinks to their targets; fastwalk breaks link cycles itself
	}

	err := fastwalk.Walk(conf, root, func(fullPath string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err != nil {
			// A broken root is fatal; anything deeper is skipped
			if fullPath == root {
				return err
			}
			debug.Log(debug.SCAN, "scan: error at %q: %v", fullPath, err)
			return nil
		}

		// Skip the root itself
		if fullPath == root {
			return nil
		}

		name := d.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if skipDirNames[name] {
				return fastwalk.SkipDir
			}
			// Check depth limit using fastwalk's depth tracking
			if fastwalk.DirEntryDepth(d) >= maxDepth {
				return fastwalk.SkipDir
			}
			return nil
		}

		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			debug.Log(debug.SCAN, "scan: skipping %q: stat error: %v", name, err)
			return nil
		}

		// Skip non-regular files (devices, sockets, symlinks to nowhere)
		if !info.Mode().IsRegular() {
			return nil
		}

		mu.Lock()
		files = append(files, fullPath)
		full := opts.MaxResults > 0 && len(files) >= opts.MaxResults
		mu.Unlock()

		if full {
			return errLimit
		}
		return nil
	})

	if err != nil && !errors.Is(err, errLimit) {
		debug.Log(debug.SCAN, "scan: walk error: %v", err)
		return nil, err
	}

	// fastwalk visits entries concurrently, so impose a stable order
	sort.Strings(files)
	if opts.MaxResults > 0 && len(files) > opts.MaxResults {
		files = files[:opts.MaxResults]
	}

	debug.Log(debug.SCAN, "scan: complete, %d files", len(files))
	return files, nil
}

// ScanAll scans several roots concurrently and concatenates the results in
// root order. The first error cancels the remaining scans.
func ScanAll(ctx context.Context, roots []string, opts Options) ([]string, error) {
	if len(roots) == 0 {
		return nil, nil
	}
	if len(roots) == 1 {
		return Scan(ctx, roots[0], opts)
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([][]string, len(roots))

	for i, root := range roots {
		g.Go(func() error {
			files, err := Scan(ctx, root, opts)
			if err != nil {
				return err
			}
			results[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []string
	for _, files := range results {
		out = append(out, files...)
	}
	if opts.MaxResults > 0 && len(out) > opts.MaxResults {
		out = out[:opts.MaxResults]
	}
	return out, nil
}
