// SPDX-License-Identifier: MIT

package editor_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourcanvas/api"
	"github.com/katalvlaran/tourcanvas/editor"
	"github.com/katalvlaran/tourcanvas/internal/apitest"
	"github.com/katalvlaran/tourcanvas/overlay"
	"github.com/katalvlaran/tourcanvas/tour"
)

func seedTriangle(srv *apitest.Server) int64 {
	return srv.SeedGraph("triangle", api.GraphData{
		Nodes: []api.Node{{Label: "A"}, {Label: "B"}, {Label: "C"}},
		Edges: []api.Edge{
			{From: "A", To: "B", Weight: 1},
			{From: "B", To: "C", Weight: 2},
			{From: "C", To: "A", Weight: 3},
			{From: "A", To: "C", Weight: 4},
		},
	})
}

func TestViewer_LoadSortsRunsNewestFirst(t *testing.T) {
	srv, c := newClient(t)
	ctx := context.Background()
	id := seedTriangle(srv)
	older := srv.SeedRun(id, "greedy", []string{"A", "B", "C", "A"}, 6)
	newer := srv.SeedRun(id, "asadpour", []string{"A", "C", "B", "A"}, 9)

	v := editor.NewViewer(c)
	require.ErrorIs(t, v.Select(older), editor.ErrNotLoaded)
	require.NoError(t, v.Load(ctx, id))

	runs := v.Runs()
	require.Len(t, runs, 2)
	require.Equal(t, []int64{newer, older}, []int64{runs[0].ID, runs[1].ID})
	require.Empty(t, v.Overlay().Highlighted())
}

func TestViewer_SelectToggles(t *testing.T) {
	srv, c := newClient(t)
	ctx := context.Background()
	id := seedTriangle(srv)
	fwd := srv.SeedRun(id, "greedy", []string{"A", "B", "C", "A"}, 6)
	rev := srv.SeedRun(id, "greedy", []string{"A", "C", "B", "A"}, 0)

	v := editor.NewViewer(c)
	require.NoError(t, v.Load(ctx, id))

	require.NoError(t, v.Select(fwd))
	require.Equal(t, []string{"A-B", "B-C", "C-A"}, v.Overlay().Highlighted())

	require.NoError(t, v.Select(rev))
	got, ok := v.Selected()
	require.True(t, ok)
	require.Equal(t, rev, got)
	res := v.Overlay()
	require.Equal(t, []string{"A-C"}, res.Highlighted())
	require.Len(t, res.Synthetic, 2)

	require.NoError(t, v.Select(rev))
	_, ok = v.Selected()
	require.False(t, ok, "second click deselects")
	require.Equal(t, overlay.Reset(v.Document()), v.Overlay())

	require.ErrorIs(t, v.Select(404), editor.ErrUnknownRun)
}

func TestViewer_Summary(t *testing.T) {
	srv, c := newClient(t)
	ctx := context.Background()
	id := seedTriangle(srv)
	fwd := srv.SeedRun(id, "greedy", []string{"A", "B", "C", "A"}, 6)
	rev := srv.SeedRun(id, "greedy", []string{"A", "C", "B", "A"}, 0)

	v := editor.NewViewer(c)
	require.NoError(t, v.Load(ctx, id))

	s, err := v.Summary(fwd)
	require.NoError(t, err)
	require.Equal(t, 3, s.Hops)
	require.Equal(t, "A → B → C → A", s.Path)
	require.True(t, s.Cycle)
	require.True(t, s.HasLocalCost)
	require.Equal(t, 6.0, s.LocalCost)

	s, err = v.Summary(rev)
	require.NoError(t, err)
	require.False(t, s.HasLocalCost, "C->B is not stored")

	_, err = v.Summary(77)
	require.ErrorIs(t, err, editor.ErrUnknownRun)
}

func TestViewer_Run(t *testing.T) {
	srv, c := newClient(t)
	ctx := context.Background()
	id := seedTriangle(srv)

	v := editor.NewViewer(c)
	_, err := v.Run(ctx, api.Greedy)
	require.ErrorIs(t, err, editor.ErrNotLoaded)

	require.NoError(t, v.Load(ctx, id))
	res, err := v.Run(ctx, api.Greedy)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C", "A"}, res.Path)
	require.Len(t, v.Runs(), 1, "runs are re-fetched")
	require.False(t, v.Running())

	_, err = v.Run(ctx, api.Algorithm("exhaustive"))
	require.ErrorIs(t, err, api.ErrUnknownAlgorithm)
}

func TestViewer_RunRefusedLocally(t *testing.T) {
	srv, c := newClient(t)
	ctx := context.Background()
	id := srv.SeedGraph("line", api.GraphData{
		Nodes: []api.Node{{Label: "A"}, {Label: "B"}, {Label: "C"}},
		Edges: []api.Edge{{From: "A", To: "B", Weight: 1}, {From: "B", To: "C", Weight: 1}},
	})

	v := editor.NewViewer(c)
	require.NoError(t, v.Load(ctx, id))
	_, err := v.Run(ctx, api.Asadpour)
	require.ErrorIs(t, err, tour.ErrNotStronglyConnected)
	require.Zero(t, srv.Count(http.MethodGet, "/api/graphs/1/tsp"))
}

// blockingStore holds RunOptimization until release is closed.
type blockingStore struct {
	*api.Client
	entered chan struct{}
	release chan struct{}
}

func (b *blockingStore) RunOptimization(ctx context.Context, id int64, algo api.Algorithm) (*api.RunResult, error) {
	close(b.entered)
	<-b.release
	return b.Client.RunOptimization(ctx, id, algo)
}

func TestViewer_RunRejectsConcurrentSubmission(t *testing.T) {
	srv, c := newClient(t)
	ctx := context.Background()
	id := seedTriangle(srv)

	store := &blockingStore{Client: c, entered: make(chan struct{}), release: make(chan struct{})}
	v := editor.NewViewer(store)
	require.NoError(t, v.Load(ctx, id))

	done := make(chan error, 1)
	go func() {
		_, err := v.Run(ctx, api.Greedy)
		done <- err
	}()
	<-store.entered
	require.True(t, v.Running())

	_, err := v.Run(ctx, api.Greedy)
	require.ErrorIs(t, err, editor.ErrBusy)

	close(store.release)
	require.NoError(t, <-done)
	require.Equal(t, 1, srv.RunCount(id))
}

func TestViewer_DeleteRuns(t *testing.T) {
	srv, c := newClient(t)
	ctx := context.Background()
	id := seedTriangle(srv)
	r1 := srv.SeedRun(id, "greedy", []string{"A", "B", "C", "A"}, 6)
	srv.SeedRun(id, "greedy", []string{"A", "B", "C", "A"}, 6)

	v := editor.NewViewer(c)
	require.NoError(t, v.Load(ctx, id))
	require.NoError(t, v.Select(r1))

	srv.FailNext(http.MethodDelete, "/api/graphs/1/tsp/runs/1", http.StatusInternalServerError)
	require.Error(t, v.DeleteRun(ctx, r1))
	require.Len(t, v.Runs(), 2, "failure keeps local runs")

	require.NoError(t, v.DeleteRun(ctx, r1))
	require.Len(t, v.Runs(), 1)
	_, ok := v.Selected()
	require.False(t, ok)
	require.Empty(t, v.Overlay().Highlighted())

	require.NoError(t, v.DeleteAllRuns(ctx))
	require.Empty(t, v.Runs())
	require.Zero(t, srv.RunCount(id))
}

func TestViewer_ApplyLogsOnly(t *testing.T) {
	srv, c := newClient(t)
	ctx := context.Background()
	id := seedTriangle(srv)
	run := srv.SeedRun(id, "greedy", []string{"A", "C", "B", "A"}, 0)

	v := editor.NewViewer(c)
	require.NoError(t, v.Load(ctx, id))
	require.NoError(t, v.Select(run))

	r := &countingRenderer{}
	a := overlay.NewApplier(r)
	v.Apply(a)
	require.Equal(t, 4, r.styles)
	require.Equal(t, 2, r.puts)
	require.ElementsMatch(t, []string{"C-B", "B-A"}, a.Live())
}

type countingRenderer struct{ styles, puts, removes int }

func (r *countingRenderer) UpdateEdgeStyle(overlay.Style) error   { r.styles++; return nil }
func (r *countingRenderer) PutVisualEdge(overlay.VisualEdge) error { r.puts++; return nil }
func (r *countingRenderer) RemoveVisualEdge(string) error          { r.removes++; return nil }
