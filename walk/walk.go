// Package walk implements the Fallback Walker: a platform-independent
// recursive directory walk used when MFT enumeration is disabled or
// unavailable, with per-entry metadata extracted through the
// MetadataExtractor contract.
package walk

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nexusfs/nexuscore"
)

// MetadataExtractor, given a path and its os.FileInfo, produces the
// remaining FileEntry fields (size, times, attributes) the directory
// listing itself doesn't carry.
type MetadataExtractor interface {
	Extract(path string, info os.FileInfo) (nexuscore.FileEntry, error)
}

// DefaultExtractor is the stat-based MetadataExtractor shipped so the
// Fallback Walker is runnable without a host-supplied implementation.
type DefaultExtractor struct{}

func (DefaultExtractor) Extract(path string, info os.FileInfo) (nexuscore.FileEntry, error) {
	name := info.Name()
	entry := nexuscore.FileEntry{
		Path:     path,
		Name:     name,
		Parent:   filepath.Dir(path),
		IsDir:    info.IsDir(),
		Size:     uint64(info.Size()),
		Modified: info.ModTime(),
		IsHidden: isHidden(name, path),
		IsSystem: false,
	}
	if !entry.IsDir {
		entry.Extension = extensionOf(name)
	}
	return entry, nil
}

func extensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == "." || ext == name {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Walker recursively walks a directory tree, handing subdirectories off to
// a bounded worker pool; result ordering is not guaranteed.
type Walker struct {
	Extractor MetadataExtractor
	Threads   int
	Log       *slog.Logger
}

func New(extractor MetadataExtractor, threads int, log *slog.Logger) *Walker {
	if extractor == nil {
		extractor = DefaultExtractor{}
	}
	if threads <= 0 {
		threads = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Walker{Extractor: extractor, Threads: threads, Log: log}
}

// Walk recursively walks root, never following symbolic links, and returns
// every visited FileEntry.
func (w *Walker) Walk(ctx context.Context, root string) ([]nexuscore.FileEntry, error) {
	var (
		mu      chan struct{} // semaphore
		results []nexuscore.FileEntry
		resMu   = make(chan struct{}, 1)
	)
	resMu <- struct{}{}
	mu = make(chan struct{}, w.Threads)

	g, ctx := errgroup.WithContext(ctx)

	var walkDir func(dir string)
	walkDir = func(dir string) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			w.Log.Debug("walk: cannot read directory", "path", dir, "error", err)
			return
		}
		for _, de := range entries {
			path := filepath.Join(dir, de.Name())

			if de.Type()&os.ModeSymlink != 0 {
				continue
			}

			info, err := de.Info()
			if err != nil {
				continue
			}

			entry, err := w.Extractor.Extract(path, info)
			if err == nil {
				<-resMu
				results = append(results, entry)
				resMu <- struct{}{}
			}

			if de.IsDir() {
				g.Go(func() error {
					mu <- struct{}{}
					defer func() { <-mu }()
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
					walkDir(path)
					return nil
				})
			}
		}
	}

	rootInfo, err := os.Lstat(root)
	if err != nil {
		return nil, nexuscore.WrapError(nexuscore.KindIO, "stat walk root "+root, err)
	}
	if rootEntry, err := w.Extractor.Extract(root, rootInfo); err == nil {
		results = append(results, rootEntry)
	}

	walkDir(root)
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func isHidden(name, path string) bool {
	return strings.HasPrefix(name, ".") || platformHidden(path)
}
