package dataset

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ribeira/internal/core"
)

// SourcePaths names the four CSV files on disk.
type SourcePaths struct {
	Alerts       string
	Registry     string
	Conservation string
	Fire         string
}

// LoadSnapshot loads all four sources concurrently and decodes them into
// the immutable snapshot the rest of the system computes from. A source
// that fails to load yields its empty table; the snapshot is always usable.
func LoadSnapshot(ctx context.Context, loader *Loader, paths SourcePaths) *core.Snapshot {
	snap := &core.Snapshot{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, _ := loader.Load(paths.Alerts)
		snap.Alerts = DecodeAlerts(t)
		return nil
	})
	g.Go(func() error {
		t, _ := loader.Load(paths.Registry)
		snap.Registry = DecodeRegistry(t)
		return nil
	})
	g.Go(func() error {
		t, _ := loader.Load(paths.Conservation)
		snap.Conservation = DecodeConservation(t)
		return nil
	})
	g.Go(func() error {
		t, _ := loader.Load(paths.Fire)
		snap.Fire = DecodeFire(t)
		return nil
	})
	// Load errors are reported by the loader and degrade to empty tables,
	// so the group never returns one.
	_ = g.Wait()

	return snap
}
