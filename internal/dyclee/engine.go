package dyclee

import (
	"fmt"
	"sort"
)

// Engine is the streaming facade. It clocks samples through the
// distance stage, runs the density stage every TGlobal samples and
// archives a snapshot after each pass.
type Engine struct {
	cfg  Config
	ctx  *Context
	grid *GridIndex

	// pool owns every live microcluster; active and outlier partition
	// the pool by id after each density stage.
	pool    map[int64]*MicroCluster
	active  map[int64]struct{}
	outlier map[int64]struct{}

	snaps  *SnapshotManager
	finals []FinalCluster

	nextID       int64
	lastT        int64
	started      bool
	sinceDensity int64
}

// New builds an engine from a validated configuration.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	ctx := newContext(cfg)
	return &Engine{
		cfg:     cfg,
		ctx:     ctx,
		grid:    newGridIndex(ctx),
		pool:    make(map[int64]*MicroCluster),
		active:  make(map[int64]struct{}),
		outlier: make(map[int64]struct{}),
		snaps:   newSnapshotManager(cfg.SnapshotAlpha, cfg.SnapshotMaxOrder),
	}, nil
}

// Ingest advances the stream by one sample. Timestamps must be
// monotonically non-decreasing; a rejected call leaves the engine
// unchanged. Every TGlobal samples the density stage runs and a
// snapshot is captured.
func (e *Engine) Ingest(sample []float64, t int64) error {
	if _, err := e.ingest(sample, t); err != nil {
		return err
	}
	return nil
}

// ingest is Ingest plus the microcluster that absorbed the sample, for
// RunDataset's per-row label report.
func (e *Engine) ingest(sample []float64, t int64) (*MicroCluster, error) {
	if len(sample) != e.ctx.Dims() {
		return nil, fmt.Errorf("%w: got %d values, context has %d dimensions",
			ErrDimensionMismatch, len(sample), e.ctx.Dims())
	}
	if e.started && t < e.lastT {
		return nil, fmt.Errorf("%w: got t=%d after t=%d", ErrOutOfOrder, t, e.lastT)
	}
	e.started = true
	e.lastT = t

	mc := e.route(sample, t)
	e.evictStale(t)

	if e.cfg.TGlobal > 0 {
		e.sinceDensity++
		if e.sinceDensity == e.cfg.TGlobal {
			e.sinceDensity = 0
			e.runDensityStage(t)
		}
	}
	return mc, nil
}

// Finalize runs a closing density stage and returns the final label per
// live microcluster, keyed by microcluster id.
func (e *Engine) Finalize() map[int64]int64 {
	if len(e.pool) > 0 {
		e.runDensityStage(e.lastT)
	}
	labels := make(map[int64]int64, len(e.pool))
	for id, mc := range e.pool {
		labels[id] = mc.Label
	}
	return labels
}

// RunDataset ingests every row of X with timestamps 0..len(X)-1, runs
// the closing density stage and reports one label per row: the label
// held at stream end by the microcluster that absorbed the row,
// following merges, or Unclassed if that microcluster was evicted.
//
// An engine configured with TGlobal 0 uses len(X) as the period.
func (e *Engine) RunDataset(X [][]float64) ([]int64, error) {
	if e.cfg.TGlobal == 0 {
		e.cfg.TGlobal = int64(len(X))
	}
	absorbers := make([]*MicroCluster, len(X))
	for i, row := range X {
		mc, err := e.ingest(row, int64(i))
		if err != nil {
			return nil, err
		}
		absorbers[i] = mc
	}
	e.Finalize()

	labels := make([]int64, len(X))
	for i, mc := range absorbers {
		for mc.forward != nil {
			mc = mc.forward
		}
		if _, live := e.pool[mc.ID]; live {
			labels[i] = mc.Label
		} else {
			labels[i] = Unclassed
		}
	}
	return labels, nil
}

// runDensityStage executes a pass and archives the resulting snapshot.
// A pass over an empty population clears the final clusters and
// captures no snapshot.
func (e *Engine) runDensityStage(t int64) {
	if len(e.pool) == 0 {
		e.finals = nil
		return
	}
	e.densityStage()
	e.snaps.Capture(e.captureSnapshot(t))
}

// captureSnapshot deep-copies the population for the archive.
func (e *Engine) captureSnapshot(t int64) *Snapshot {
	snap := &Snapshot{
		Timestamp: t,
		Clusters:  append([]FinalCluster(nil), e.finals...),
	}
	for _, mc := range e.sortedLive() {
		snap.All = append(snap.All, mc.Copy())
		if _, ok := e.active[mc.ID]; ok && mc.Label != Unclassed {
			snap.Final = append(snap.Final, mc.Copy())
		}
	}
	return snap
}

// sortedLive returns the live microclusters ordered by id.
func (e *Engine) sortedLive() []*MicroCluster {
	mcs := make([]*MicroCluster, 0, len(e.pool))
	for _, mc := range e.pool {
		mcs = append(mcs, mc)
	}
	sort.Slice(mcs, func(i, j int) bool { return mcs[i].ID < mcs[j].ID })
	return mcs
}

func (e *Engine) sortedSet(set map[int64]struct{}) []*MicroCluster {
	mcs := make([]*MicroCluster, 0, len(set))
	for id := range set {
		mcs = append(mcs, e.pool[id])
	}
	sort.Slice(mcs, func(i, j int) bool { return mcs[i].ID < mcs[j].ID })
	return mcs
}

// Active returns the dense and semi-dense microclusters, ordered by id.
// The returned microclusters are live; callers must not mutate them.
func (e *Engine) Active() []*MicroCluster { return e.sortedSet(e.active) }

// Outliers returns the low-density microclusters, ordered by id.
// The returned microclusters are live; callers must not mutate them.
func (e *Engine) Outliers() []*MicroCluster { return e.sortedSet(e.outlier) }

// FinalClusters returns the summaries emitted by the most recent
// density stage.
func (e *Engine) FinalClusters() []FinalCluster {
	return append([]FinalCluster(nil), e.finals...)
}

// Snapshots returns the pyramidal snapshot archive.
func (e *Engine) Snapshots() *SnapshotManager { return e.snaps }

// HyperboxSides returns the per-dimension cell side lengths.
func (e *Engine) HyperboxSides() []float64 { return e.ctx.HyperboxSides() }

// Dims returns the dimensionality of the engine's context.
func (e *Engine) Dims() int { return e.ctx.Dims() }
