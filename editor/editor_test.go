// SPDX-License-Identifier: MIT

package editor_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourcanvas/api"
	"github.com/katalvlaran/tourcanvas/connect"
	"github.com/katalvlaran/tourcanvas/core"
	"github.com/katalvlaran/tourcanvas/editor"
	"github.com/katalvlaran/tourcanvas/history"
	"github.com/katalvlaran/tourcanvas/importer"
	"github.com/katalvlaran/tourcanvas/internal/apitest"
)

// notices records every notification.
type notices struct {
	msgs []string
	errs []error
}

func (n *notices) Notify(msg string, err error) {
	n.msgs = append(n.msgs, msg)
	n.errs = append(n.errs, err)
}

func (n *notices) last() string {
	if len(n.msgs) == 0 {
		return ""
	}
	return n.msgs[len(n.msgs)-1]
}

func newClient(t *testing.T) (*apitest.Server, *api.Client) {
	t.Helper()
	srv := apitest.NewServer(t)
	c, err := api.New(srv.URL, api.WithToken(apitest.Token))
	require.NoError(t, err)
	return srv, c
}

// drawTriangle builds A->B(1), B->C(2), C->A(3) through the UI path.
func drawTriangle(t *testing.T, e *editor.Editor) {
	t.Helper()
	for _, id := range []string{"A", "B", "C"} {
		_, err := e.AddNode(id)
		require.NoError(t, err)
	}
	e.ToggleConnect()
	for i, pair := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}} {
		require.NoError(t, e.DrawEdge(pair[0], pair[1]))
		_, err := e.ProvideWeight([]string{"1", "2", "3"}[i])
		require.NoError(t, err)
	}
	e.Escape()
}

func TestEditor_AddAndDraw(t *testing.T) {
	n := &notices{}
	e := editor.New("demo", nil, editor.WithNotifier(n))

	drawTriangle(t, e)
	require.Equal(t, 3, e.Document().NodeCount())
	require.Equal(t, 3, e.Document().EdgeCount())
	require.Equal(t, 6, e.UndoDepth())
	require.Equal(t, connect.Idle, e.ConnectState())

	_, err := e.AddNode("A")
	require.ErrorIs(t, err, core.ErrDuplicateNode)
	_, err = e.AddNode("   ")
	require.ErrorIs(t, err, editor.ErrEmptyName)
	require.Equal(t, "Node name cannot be empty", n.last())

	e.ToggleConnect()
	require.ErrorIs(t, e.DrawEdge("A", "A"), core.ErrSelfLoop)
	require.ErrorIs(t, e.DrawEdge("A", "B"), core.ErrDuplicateEdge)
	require.NoError(t, e.DrawEdge("B", "A"))
	_, err = e.ProvideWeight("-2")
	require.ErrorIs(t, err, core.ErrInvalidWeight)
	require.Equal(t, connect.Active, e.ConnectState())
	require.NoError(t, e.DrawEdge("B", "A"))
	require.NoError(t, e.CancelWeight())
	require.ErrorIs(t, e.CancelWeight(), connect.ErrInvalidTransition)

	require.Equal(t, 6, e.UndoDepth(), "failed actions record nothing")
	require.Len(t, n.errs, 6)
}

func TestEditor_DeleteSelectedAndUndo(t *testing.T) {
	e := editor.New("demo", nil)
	drawTriangle(t, e)
	before := e.Document().Snapshot()

	require.ErrorIs(t, e.DeleteSelected(), editor.ErrNoSelection)
	require.ErrorIs(t, e.SelectNode("Z"), core.ErrUnknownNode)

	require.NoError(t, e.SelectNode("B"))
	require.NoError(t, e.DeleteSelected())
	require.True(t, e.Selection().Empty())
	require.Equal(t, 1, e.Document().EdgeCount())

	entry, err := e.Undo()
	require.NoError(t, err)
	require.Equal(t, history.KindDeleteNode, entry.Kind())
	require.Equal(t, 3, e.Document().EdgeCount(), "incident edges restored")
	require.ElementsMatch(t, before.Edges, e.Document().Edges())

	require.NoError(t, e.SelectEdge("C", "A"))
	sel, ok := e.Selection().Edge()
	require.True(t, ok)
	require.Equal(t, 3.0, sel.Weight)
	require.NoError(t, e.DeleteSelected())
	_, err = e.Undo()
	require.NoError(t, err)
	require.True(t, e.Document().HasEdge("C", "A"))
}

func TestEditor_UndoClearsStaleSelection(t *testing.T) {
	e := editor.New("demo", nil)
	_, err := e.AddNode("A")
	require.NoError(t, err)
	require.NoError(t, e.SelectNode("A"))

	_, err = e.Undo()
	require.NoError(t, err)
	require.True(t, e.Selection().Empty())

	_, err = e.Undo()
	require.ErrorIs(t, err, history.ErrNothingToUndo)
}

func TestEditor_ClearIsUndoable(t *testing.T) {
	n := &notices{}
	e := editor.New("demo", nil, editor.WithNotifier(n))
	require.ErrorIs(t, e.Clear(), editor.ErrEmptyGraph)
	require.Equal(t, "No graph to clear", n.last())

	drawTriangle(t, e)
	before := e.Document().Snapshot()
	require.NoError(t, e.Clear())
	require.Zero(t, e.Document().NodeCount())

	_, err := e.Undo()
	require.NoError(t, err)
	require.Equal(t, before, e.Document().Snapshot())
}

func TestEditor_ImportResetsHistory(t *testing.T) {
	n := &notices{}
	e := editor.New("demo", nil, editor.WithNotifier(n))
	drawTriangle(t, e)
	require.NoError(t, e.SelectNode("A"))

	csv := "From,To,Cost\nX,Y,2\nY,\n"
	rep, err := e.Import(importer.NewCSVSource(strings.NewReader(csv)))
	require.NoError(t, err)
	require.Equal(t, 1, rep.Edges)
	require.Zero(t, e.UndoDepth())
	require.True(t, e.Selection().Empty())
	require.Contains(t, n.last(), "skipped 1 rows")

	before := e.Document().Snapshot()
	_, err = e.Import(importer.NewCSVSource(strings.NewReader("garbage")))
	require.ErrorIs(t, err, importer.ErrMalformed)
	require.Equal(t, before, e.Document().Snapshot())
}

func TestEditor_SaveCreatesThenUpdates(t *testing.T) {
	srv, c := newClient(t)
	ctx := context.Background()
	n := &notices{}
	e := editor.New("Route", c, editor.WithNotifier(n))

	_, err := e.Save(ctx)
	require.ErrorIs(t, err, editor.ErrEmptyGraph)
	require.Equal(t, "Please create a graph first", n.last())
	require.Empty(t, srv.Requests())

	drawTriangle(t, e)
	id, err := e.Save(ctx)
	require.NoError(t, err)
	got, ok := e.Document().GraphID()
	require.True(t, ok)
	require.Equal(t, id, got)
	require.Equal(t, 1, srv.Count(http.MethodPost, "/api/graphs"))

	_, err = e.AddNode("D")
	require.NoError(t, err)
	again, err := e.Save(ctx)
	require.NoError(t, err)
	require.Equal(t, id, again)
	require.Equal(t, 1, srv.Count(http.MethodPut, "/api/graphs/1"))
	require.Equal(t, "Graph updated successfully", n.last())

	srv.FailNext(http.MethodPut, "/api/graphs/1", http.StatusInternalServerError)
	_, err = e.Save(ctx)
	require.Error(t, err)
	require.Equal(t, 7, e.UndoDepth(), "service failure leaves history alone")
}

func TestEditor_Load(t *testing.T) {
	srv, c := newClient(t)
	ctx := context.Background()

	id := srv.SeedGraph("stored", api.GraphData{
		Nodes: []api.Node{{Label: "P"}, {Label: "Q"}},
		Edges: []api.Edge{{From: "P", To: "Q", Weight: 5}},
	})

	e := editor.New("scratch", c)
	_, err := e.AddNode("keep")
	require.NoError(t, err)
	before := e.Document().Snapshot()

	require.ErrorIs(t, e.Load(ctx, 99), api.ErrNotFound)
	require.Equal(t, before, e.Document().Snapshot())
	require.Equal(t, "scratch", e.Document().Title())

	require.NoError(t, e.Load(ctx, id))
	require.Equal(t, "stored", e.Document().Title())
	require.Zero(t, e.UndoDepth())
	require.True(t, e.Document().HasEdge("P", "Q"))

	e.ToggleConnect()
	require.ErrorIs(t, e.DrawEdge("P", "Q"), core.ErrDuplicateEdge, "connect mode sees the loaded document")

	noStore := editor.New("x", nil)
	require.ErrorIs(t, noStore.Load(ctx, id), editor.ErrNoStore)
}
