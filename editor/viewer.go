// SPDX-License-Identifier: MIT

package editor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/katalvlaran/tourcanvas/api"
	"github.com/katalvlaran/tourcanvas/core"
	"github.com/katalvlaran/tourcanvas/overlay"
	"github.com/katalvlaran/tourcanvas/tour"
)

// Viewer errors.
var (
	ErrBusy       = errors.New("editor: optimization already running")
	ErrNotLoaded  = errors.New("editor: no graph loaded")
	ErrUnknownRun = errors.New("editor: unknown run")
)

// PathSeparator joins path nodes in summaries.
const PathSeparator = " → "

// RunSummary describes one run for display.
type RunSummary struct {
	Run  api.Run
	Hops int
	Path string
	// Cycle reports whether the path visits every node exactly once and
	// returns to its start.
	Cycle bool
	// LocalCost is the path cost over the loaded document; HasLocalCost is
	// false when some hop has no stored edge.
	LocalCost    float64
	HasLocalCost bool
}

// Viewer is the state of one results screen. Methods are safe for
// concurrent use; Run may proceed while other methods are called.
type Viewer struct {
	store  RunStore
	log    *zap.Logger
	notify Notifier
	busy   atomic.Bool

	mu       sync.Mutex
	graphID  int64
	doc      *core.Document
	runs     []api.Run
	selected int64
	result   overlay.Result
}

// NewViewer returns a viewer with nothing loaded.
func NewViewer(store RunStore, opts ...Option) *Viewer {
	o := buildOptions(opts)

	return &Viewer{store: store, log: o.log, notify: o.notify}
}

func (v *Viewer) fail(msg string, err error) error {
	v.notify.Notify(msg, err)
	return err
}

// Load fetches graph id and its runs. On failure the previous state stays.
func (v *Viewer) Load(ctx context.Context, id int64) error {
	g, err := v.store.GetGraph(ctx, id)
	if err != nil {
		return v.fail("Failed to load graph", err)
	}
	doc, err := g.Document()
	if err != nil {
		return v.fail("Failed to load graph", err)
	}
	runs, err := v.store.ListRuns(ctx, id)
	if err != nil {
		return v.fail("Failed to load runs", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.graphID, v.doc = id, doc
	v.setRuns(runs)
	v.selected = 0
	v.result = overlay.Reset(doc)

	return nil
}

// setRuns stores runs newest first. Ties keep the higher ID first.
// The caller must hold v.mu.
func (v *Viewer) setRuns(runs []api.Run) {
	sorted := append([]api.Run(nil), runs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.CreatedAt.Equal(b.CreatedAt.Time) {
			return a.CreatedAt.After(b.CreatedAt.Time)
		}
		return a.ID > b.ID
	})
	v.runs = sorted
}

// Document returns the loaded document, or nil.
func (v *Viewer) Document() *core.Document {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc
}

// Runs returns the stored runs, newest first.
func (v *Viewer) Runs() []api.Run {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]api.Run(nil), v.runs...)
}

// Selected returns the selected run ID.
func (v *Viewer) Selected() (int64, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected, v.selected != 0
}

// Overlay returns the overlay of the selected run, or the reset overlay.
func (v *Viewer) Overlay() overlay.Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.result
}

// findRun returns the index of runID. The caller must hold v.mu.
func (v *Viewer) findRun(runID int64) int {
	for i, r := range v.runs {
		if r.ID == runID {
			return i
		}
	}
	return -1
}

// Select toggles runID: selecting the selected run deselects it.
func (v *Viewer) Select(runID int64) error {
	msg, err := v.toggle(runID)
	if err != nil {
		return v.fail(msg, err)
	}

	return nil
}

func (v *Viewer) toggle(runID int64) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.doc == nil {
		return "No graph loaded", ErrNotLoaded
	}
	i := v.findRun(runID)
	if i < 0 {
		return "Cannot select run", fmt.Errorf("%w: %d", ErrUnknownRun, runID)
	}
	if v.selected == runID {
		v.clearSelection()
		return "", nil
	}
	res, err := overlay.Compute(v.doc, v.runs[i].Path)
	if err != nil {
		return "Cannot show run", err
	}
	v.selected, v.result = runID, res

	return "", nil
}

// clearSelection drops the selection. The caller must hold v.mu.
func (v *Viewer) clearSelection() {
	v.selected = 0
	v.result = overlay.Reset(v.doc)
}

// Run submits an optimization of the loaded graph and refreshes the runs.
// A second call while one is in flight fails with ErrBusy. Graphs the
// service would reject are refused locally.
func (v *Viewer) Run(ctx context.Context, algo api.Algorithm) (*api.RunResult, error) {
	if !v.busy.CompareAndSwap(false, true) {
		return nil, v.fail("An optimization is already running", ErrBusy)
	}
	defer v.busy.Store(false)

	if err := algo.Validate(); err != nil {
		return nil, v.fail("Failed to run optimization", err)
	}
	v.mu.Lock()
	id, doc := v.graphID, v.doc
	v.mu.Unlock()
	if doc == nil {
		return nil, v.fail("No graph loaded", ErrNotLoaded)
	}
	if err := tour.CheckSolvable(doc); err != nil {
		return nil, v.fail("Graph cannot be optimized", err)
	}

	res, err := v.store.RunOptimization(ctx, id, algo)
	if err != nil {
		return nil, v.fail("Failed to run optimization", err)
	}
	runs, err := v.store.ListRuns(ctx, id)
	if err != nil {
		return res, v.fail("Failed to refresh runs", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.graphID == id {
		v.setRuns(runs)
		if v.selected != 0 && v.findRun(v.selected) < 0 {
			v.clearSelection()
		}
	}

	return res, nil
}

// Running reports whether Run is in flight.
func (v *Viewer) Running() bool { return v.busy.Load() }

// DeleteRun removes one run remotely, then locally.
func (v *Viewer) DeleteRun(ctx context.Context, runID int64) error {
	v.mu.Lock()
	id, loaded := v.graphID, v.doc != nil
	v.mu.Unlock()
	if !loaded {
		return v.fail("No graph loaded", ErrNotLoaded)
	}
	if err := v.store.DeleteRun(ctx, id, runID); err != nil {
		return v.fail("Failed to delete run", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if i := v.findRun(runID); i >= 0 {
		v.runs = append(v.runs[:i], v.runs[i+1:]...)
	}
	if v.selected == runID {
		v.clearSelection()
	}

	return nil
}

// DeleteAllRuns removes every run of the loaded graph.
func (v *Viewer) DeleteAllRuns(ctx context.Context) error {
	v.mu.Lock()
	id, loaded := v.graphID, v.doc != nil
	v.mu.Unlock()
	if !loaded {
		return v.fail("No graph loaded", ErrNotLoaded)
	}
	if err := v.store.DeleteAllRuns(ctx, id); err != nil {
		return v.fail("Failed to delete runs", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.runs = nil
	v.clearSelection()

	return nil
}

// Apply pushes the current overlay through a. Failures are logged only.
func (v *Viewer) Apply(a *overlay.Applier) {
	if err := a.Apply(v.Overlay()); err != nil {
		v.log.Warn("editor: overlay not fully applied", zap.Error(err))
	}
}

// Summary describes run runID.
func (v *Viewer) Summary(runID int64) (RunSummary, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.findRun(runID)
	if i < 0 {
		return RunSummary{}, fmt.Errorf("%w: %d", ErrUnknownRun, runID)
	}
	r := v.runs[i]
	s := RunSummary{Run: r, Path: strings.Join(r.Path, PathSeparator), Cycle: tour.IsCycle(v.doc, r.Path)}
	if len(r.Path) > 0 {
		s.Hops = len(r.Path) - 1
	}
	if c, err := tour.Cost(v.doc, r.Path); err == nil {
		s.LocalCost, s.HasLocalCost = c, true
	}

	return s, nil
}
