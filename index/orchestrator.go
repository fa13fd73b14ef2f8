// Package index implements the Indexer Orchestrator: it runs volume
// enumeration (MFT or fallback walk) in parallel across configured drives,
// applies the inclusion policy, merges accepted entries into the Shared
// Entry Map, and accumulates statistics.
package index

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nexusfs/nexuscore"
	"github.com/nexusfs/nexuscore/store"
	"github.com/nexusfs/nexuscore/volume"
	"github.com/nexusfs/nexuscore/walk"
)

// Orchestrator runs the configured drives' enumeration in parallel and
// merges accepted entries into a Shared Entry Map.
type Orchestrator struct {
	Config Config
	Store  *store.Map
	Log    *slog.Logger
	Walker *walk.Walker
}

func New(cfg Config, sharedMap *store.Map, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	if sharedMap == nil {
		sharedMap = store.New()
	}
	return &Orchestrator{
		Config: cfg,
		Store:  sharedMap,
		Log:    log,
		Walker: walk.New(nil, cfg.Threads, log),
	}
}

// IndexAll enumerates every configured drive, one task per drive bounded by
// Config.Threads, and returns the accepted entries plus run statistics.
// Per-drive failures are isolated: the drive is logged and skipped, and
// every configured drive still appears in stats.DrivesIndexed.
func (o *Orchestrator) IndexAll(ctx context.Context) ([]nexuscore.FileEntry, nexuscore.IndexStats) {
	start := time.Now()

	var (
		totalFiles, totalDirs, totalSize atomic.Uint64
		collected                        []nexuscore.FileEntry
		collectedCh                      = make(chan []nexuscore.FileEntry, len(o.Config.Drives))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInt(1, o.Config.Threads))

	for _, drive := range o.Config.Drives {
		drive := drive
		g.Go(func() error {
			entries, err := o.enumerateDrive(gctx, drive)
			if err != nil {
				o.Log.Debug("drive enumeration failed, skipping", "drive", drive, "error", err)
				collectedCh <- nil
				return nil
			}

			accepted := make([]nexuscore.FileEntry, 0, len(entries))
			for _, e := range entries {
				if !o.Config.include(e) {
					continue
				}
				accepted = append(accepted, e)
				if e.IsDir {
					totalDirs.Add(1)
				} else {
					totalFiles.Add(1)
					totalSize.Add(e.Size)
				}
			}
			o.Store.InsertAll(accepted)
			collectedCh <- accepted
			return nil
		})
	}

	_ = g.Wait()
	close(collectedCh)
	for batch := range collectedCh {
		collected = append(collected, batch...)
	}

	stats := nexuscore.IndexStats{
		TotalFiles:    totalFiles.Load(),
		TotalDirs:     totalDirs.Load(),
		TotalSize:     totalSize.Load(),
		IndexTimeMs:   time.Since(start).Milliseconds(),
		DrivesIndexed: append([]string(nil), o.Config.Drives...),
	}
	return collected, stats
}

// enumerateDrive runs the Volume Enumerator when UseMFT is set and the
// platform supports it, falling through to the Fallback Walker on failure
// or when MFT enumeration is disabled.
func (o *Orchestrator) enumerateDrive(ctx context.Context, drive string) ([]nexuscore.FileEntry, error) {
	if o.Config.UseMFT {
		entries, err := o.enumerateMFT(drive)
		if err == nil {
			return entries, nil
		}
		o.Log.Debug("MFT enumeration unavailable, falling back to directory walk", "drive", drive, "error", err)
	}
	return o.Walker.Walk(ctx, drive+`:\`)
}

func (o *Orchestrator) enumerateMFT(drive string) ([]nexuscore.FileEntry, error) {
	enumerator, err := volume.Open(drive, o.Log)
	if err != nil {
		return nil, err
	}
	defer enumerator.Close()

	if err := enumerator.Probe(); err != nil {
		return nil, err
	}
	return enumerator.Enumerate()
}

// IndexDirectory walks a single directory via the Fallback Walker only.
func (o *Orchestrator) IndexDirectory(ctx context.Context, path string) ([]nexuscore.FileEntry, error) {
	entries, err := o.Walker.Walk(ctx, path)
	if err != nil {
		return nil, err
	}
	accepted := make([]nexuscore.FileEntry, 0, len(entries))
	for _, e := range entries {
		if o.Config.include(e) {
			accepted = append(accepted, e)
		}
	}
	o.Store.InsertAll(accepted)
	return accepted, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
