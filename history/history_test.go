// SPDX-License-Identifier: MIT

package history_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourcanvas/core"
	"github.com/katalvlaran/tourcanvas/history"
)

func TestUndo_Empty(t *testing.T) {
	d := core.NewDocument("t")
	_, err := d.AddNode("A")
	require.NoError(t, err)
	before := d.Snapshot()

	h := history.New()
	_, err = h.Undo(d)
	require.ErrorIs(t, err, history.ErrNothingToUndo)
	require.Equal(t, before, d.Snapshot())
}

func TestUndo_EachKind(t *testing.T) {
	d := core.NewDocument("t")
	h := history.New()

	a, _ := d.AddNode("A")
	h.Record(history.AddNode{Node: a})
	b, _ := d.AddNode("B")
	h.Record(history.AddNode{Node: b})
	ab, err := d.AddEdge("A", "B", 3)
	require.NoError(t, err)
	h.Record(history.AddEdge{Edge: ab})
	ba, err := d.AddEdge("B", "A", 1)
	require.NoError(t, err)
	h.Record(history.AddEdge{Edge: ba})

	afterEdges := d.Snapshot()

	removed, err := d.RemoveEdge("B", "A")
	require.NoError(t, err)
	h.Record(history.DeleteEdge{Edge: removed})

	n, incident, err := d.RemoveNode("A")
	require.NoError(t, err)
	h.Record(history.DeleteNode{Node: n, Edges: incident})
	require.Zero(t, d.EdgeCount())

	snap := d.Clear()
	h.Record(history.ClearGraph{Nodes: snap.Nodes, Edges: snap.Edges})
	require.Zero(t, d.NodeCount())

	kinds := []history.Kind{
		history.KindClearGraph, history.KindDeleteNode, history.KindDeleteEdge,
		history.KindAddEdge, history.KindAddEdge, history.KindAddNode, history.KindAddNode,
	}
	for i, want := range kinds {
		e, err := h.Undo(d)
		require.NoError(t, err, "step %d", i)
		require.Equal(t, want, e.Kind())
		if want == history.KindDeleteEdge {
			require.ElementsMatch(t, afterEdges.Edges, d.Edges())
			require.ElementsMatch(t, afterEdges.Nodes, d.Nodes())
		}
	}
	require.Zero(t, d.NodeCount())
	require.Zero(t, h.Len())
}

func TestUndo_InconsistentKeepsEntry(t *testing.T) {
	d := core.NewDocument("t")
	h := history.New()
	h.Record(history.AddEdge{Edge: core.Edge{ID: "A-B", From: "A", To: "B", Weight: 1}})

	_, err := h.Undo(d)
	require.ErrorIs(t, err, history.ErrInconsistent)
	require.Equal(t, 1, h.Len())

	top, ok := h.Peek()
	require.True(t, ok)
	require.Equal(t, history.KindAddEdge, top.Kind())
}

func TestUndo_AddNodeWithLiveEdgeIsInconsistent(t *testing.T) {
	d := core.NewDocument("t")
	h := history.New()
	a, _ := d.AddNode("A")
	h.Record(history.AddNode{Node: a})
	_, _ = d.AddNode("B")
	_, err := d.AddEdge("B", "A", 1) // deliberately not recorded

	require.NoError(t, err)
	_, err = h.Undo(d)
	require.ErrorIs(t, err, history.ErrInconsistent)
	require.True(t, d.HasEdge("B", "A"))
}

// TestUndo_RoundTrip checks that undoing every recorded entry in reverse
// order restores the initial node and edge sets, for random mutation scripts.
func TestUndo_RoundTrip(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			d := core.NewDocument("rt")
			for i := 0; i < 3; i++ {
				_, _ = d.AddNode(fmt.Sprintf("seed%d", i))
			}
			_, _ = d.AddEdge("seed0", "seed1", 1)
			initial := d.Snapshot()
			h := history.New()

			for step := 0; step < 60; step++ {
				mutate(rng, d, h)
			}
			for h.Len() > 0 {
				_, err := h.Undo(d)
				require.NoError(t, err)
			}

			require.ElementsMatch(t, initial.Nodes, d.Nodes())
			require.ElementsMatch(t, initial.Edges, d.Edges())
		})
	}
}

// mutate applies one random operation and records it when it succeeds.
func mutate(rng *rand.Rand, d *core.Document, h *history.History) {
	names := []string{"seed0", "seed1", "seed2", "n0", "n1", "n2", "n3"}
	pick := func() string { return names[rng.Intn(len(names))] }

	switch rng.Intn(5) {
	case 0:
		if n, err := d.AddNode(pick()); err == nil {
			h.Record(history.AddNode{Node: n})
		}
	case 1, 2:
		if e, err := d.AddEdge(pick(), pick(), float64(rng.Intn(10))); err == nil {
			h.Record(history.AddEdge{Edge: e})
		}
	case 3:
		if n, edges, err := d.RemoveNode(pick()); err == nil {
			h.Record(history.DeleteNode{Node: n, Edges: edges})
		}
	case 4:
		if e, err := d.RemoveEdge(pick(), pick()); err == nil {
			h.Record(history.DeleteEdge{Edge: e})
		} else if rng.Intn(8) == 0 {
			snap := d.Clear()
			h.Record(history.ClearGraph{Nodes: snap.Nodes, Edges: snap.Edges})
		}
	}
}
