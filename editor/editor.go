// SPDX-License-Identifier: MIT

// Package editor owns the state behind the two canvas screens.
//
// Editor is the build/edit screen: one document, its undo history, the
// connect-mode session and the current selection. Viewer is the results
// screen: a loaded graph, its stored optimization runs and the overlay of
// the selected run.
//
// Every failed user action is returned and also passed to the Notifier.
// Failed mutations never record history; service failures never modify
// in-memory state.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/tourcanvas/api"
	"github.com/katalvlaran/tourcanvas/connect"
	"github.com/katalvlaran/tourcanvas/core"
	"github.com/katalvlaran/tourcanvas/history"
	"github.com/katalvlaran/tourcanvas/importer"
)

// Sentinel errors.
var (
	ErrEmptyGraph  = errors.New("editor: graph has no nodes")
	ErrNoSelection = errors.New("editor: nothing selected")
	ErrNoStore     = errors.New("editor: no store configured")
	ErrEmptyName   = errors.New("editor: node name is empty")
)

// Option configures an Editor or a Viewer.
type Option func(*options)

type options struct {
	log    *zap.Logger
	notify Notifier
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.notify == nil {
		o.notify = LogNotifier{Logger: o.log}
	}

	return o
}

// WithLogger sets the logger. It also backs the default Notifier.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithNotifier sets where user-facing notices go.
func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notify = n }
}

// Editor is the state of one build/edit screen. It is not safe for
// concurrent use.
type Editor struct {
	doc   *core.Document
	hist  *history.History
	conn  *connect.Session
	sel   Selection
	store Store

	log    *zap.Logger
	notify Notifier
}

// edgeLookup resolves edges against whatever document the editor holds now.
type edgeLookup struct{ e *Editor }

func (l edgeLookup) HasEdge(from, to string) bool { return l.e.doc.HasEdge(from, to) }

// New returns an editor over an empty, unsaved document. store may be nil
// when Save and Load are not needed.
func New(title string, store Store, opts ...Option) *Editor {
	o := buildOptions(opts)
	e := &Editor{
		doc:    core.NewDocument(title),
		hist:   history.New(),
		store:  store,
		log:    o.log,
		notify: o.notify,
	}
	e.conn = connect.NewSession(edgeLookup{e}, e.commitEdge, connect.WithLogger(o.log))

	return e
}

// Document returns the live document. Callers must not mutate it directly.
func (e *Editor) Document() *core.Document { return e.doc }

// Selection returns the current selection.
func (e *Editor) Selection() Selection { return e.sel }

// UndoDepth returns how many entries can be undone.
func (e *Editor) UndoDepth() int { return e.hist.Len() }

// ConnectState returns the connect-mode state.
func (e *Editor) ConnectState() connect.State { return e.conn.State() }

// PendingEdge returns the drawn pair waiting for a weight.
func (e *Editor) PendingEdge() (from, to string, ok bool) { return e.conn.Pending() }

// SetTitle renames the document.
func (e *Editor) SetTitle(title string) { e.doc.SetTitle(strings.TrimSpace(title)) }

func (e *Editor) fail(msg string, err error) error {
	e.notify.Notify(msg, err)
	return err
}

// AddNode adds a node named name (trimmed) and records it.
func (e *Editor) AddNode(name string) (core.Node, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.Node{}, e.fail("Node name cannot be empty", ErrEmptyName)
	}
	n, err := e.doc.AddNode(name)
	if err != nil {
		return core.Node{}, e.fail("Could not add node", err)
	}
	e.hist.Record(history.AddNode{Node: n})

	return n, nil
}

// commitEdge is the connect session's committer.
func (e *Editor) commitEdge(from, to string, w float64) (core.Edge, error) {
	edge, err := e.doc.AddEdge(from, to, w)
	if err != nil {
		return core.Edge{}, err
	}
	e.hist.Record(history.AddEdge{Edge: edge})

	return edge, nil
}

// ToggleConnect arms or disarms connect mode.
func (e *Editor) ToggleConnect() connect.State { return e.conn.Toggle() }

// Escape leaves connect mode, dropping any pending pair.
func (e *Editor) Escape() { e.conn.Escape() }

// DrawEdge captures a from->to gesture in connect mode.
func (e *Editor) DrawEdge(from, to string) error {
	if err := e.conn.Draw(from, to); err != nil {
		return e.fail("Cannot draw edge", err)
	}

	return nil
}

// ProvideWeight answers the weight prompt with user text and commits the edge.
func (e *Editor) ProvideWeight(text string) (core.Edge, error) {
	edge, err := e.conn.ProvideWeightText(text)
	if err != nil {
		return core.Edge{}, e.fail("Edge not added", err)
	}

	return edge, nil
}

// CancelWeight dismisses the weight prompt.
func (e *Editor) CancelWeight() error {
	if err := e.conn.Cancel(); err != nil {
		return e.fail("Nothing to cancel", err)
	}

	return nil
}

// SelectNode selects node id.
func (e *Editor) SelectNode(id string) error {
	if !e.doc.HasNode(id) {
		return e.fail("Cannot select node", fmt.Errorf("%w: %q", core.ErrUnknownNode, id))
	}
	e.sel = Selection{kind: selectNode, node: id}

	return nil
}

// SelectEdge selects edge from->to.
func (e *Editor) SelectEdge(from, to string) error {
	edge, err := e.doc.Edge(from, to)
	if err != nil {
		return e.fail("Cannot select edge", err)
	}
	e.sel = Selection{kind: selectEdge, edge: edge}

	return nil
}

// ClearSelection selects nothing.
func (e *Editor) ClearSelection() { e.sel = Selection{} }

// DeleteSelected removes the selected node (with its incident edges) or edge
// and records the removal.
func (e *Editor) DeleteSelected() error {
	switch e.sel.kind {
	case selectNode:
		n, edges, err := e.doc.RemoveNode(e.sel.node)
		if err != nil {
			return e.fail("Could not delete node", err)
		}
		e.hist.Record(history.DeleteNode{Node: n, Edges: edges})
	case selectEdge:
		edge, err := e.doc.RemoveEdge(e.sel.edge.From, e.sel.edge.To)
		if err != nil {
			return e.fail("Could not delete edge", err)
		}
		e.hist.Record(history.DeleteEdge{Edge: edge})
	default:
		return e.fail("Nothing selected", ErrNoSelection)
	}
	e.sel = Selection{}

	return nil
}

// Clear removes every node and edge as one undoable step.
func (e *Editor) Clear() error {
	if e.doc.NodeCount() == 0 {
		return e.fail("No graph to clear", ErrEmptyGraph)
	}
	snap := e.doc.Clear()
	e.hist.Record(history.ClearGraph{Nodes: snap.Nodes, Edges: snap.Edges})
	e.sel = Selection{}
	e.dropPending()

	return nil
}

// Undo reverts the latest recorded mutation. A selection whose item the
// undo removed is cleared.
func (e *Editor) Undo() (history.Entry, error) {
	entry, err := e.hist.Undo(e.doc)
	if err != nil {
		if errors.Is(err, history.ErrNothingToUndo) {
			return nil, e.fail("No actions to undo", err)
		}
		return nil, e.fail("Undo failed", err)
	}
	if e.sel.stale(e.doc) {
		e.sel = Selection{}
	}
	e.dropPending()
	e.log.Debug("editor: undo", zap.String("kind", string(entry.Kind())))

	return entry, nil
}

// Import replaces the document with the rows of src. The import itself is
// not undoable and earlier history is discarded with the old contents.
// On a malformed source nothing changes.
func (e *Editor) Import(src importer.RowSource) (*importer.Report, error) {
	rep, err := importer.Import(src, e.doc, importer.WithLogger(e.log))
	if err != nil {
		return nil, e.fail("Import failed", err)
	}
	e.hist.Reset()
	e.sel = Selection{}
	e.dropPending()
	if n := len(rep.Skipped); n > 0 {
		e.notify.Notify(fmt.Sprintf("Imported %d nodes and %d edges, skipped %d rows", rep.Nodes, rep.Edges, n), nil)
	}

	return rep, nil
}

// dropPending cancels a weight prompt whose endpoints may be gone.
func (e *Editor) dropPending() {
	if from, to, ok := e.conn.Pending(); ok && !(e.doc.HasNode(from) && e.doc.HasNode(to)) {
		_ = e.conn.Cancel()
	}
}

// Save creates the graph remotely when it has no ID yet, otherwise updates
// it. It returns the graph ID.
func (e *Editor) Save(ctx context.Context) (int64, error) {
	if e.store == nil {
		return 0, e.fail("Failed to save graph", ErrNoStore)
	}
	if e.doc.NodeCount() == 0 {
		return 0, e.fail("Please create a graph first", ErrEmptyGraph)
	}

	if id, ok := e.doc.GraphID(); ok {
		if err := e.store.UpdateGraph(ctx, id, api.NewUpdateRequest(e.doc)); err != nil {
			return 0, e.fail("Failed to update graph", err)
		}
		e.notify.Notify("Graph updated successfully", nil)
		return id, nil
	}

	id, err := e.store.CreateGraph(ctx, api.NewCreateRequest(e.doc))
	if err != nil {
		return 0, e.fail("Failed to save graph", err)
	}
	e.doc.SetGraphID(id)
	e.notify.Notify("Graph saved successfully", nil)

	return id, nil
}

// Load replaces the editor state with stored graph id. History, selection
// and connect mode are reset. On failure nothing changes.
func (e *Editor) Load(ctx context.Context, id int64) error {
	if e.store == nil {
		return e.fail("Failed to load graph", ErrNoStore)
	}
	g, err := e.store.GetGraph(ctx, id)
	if err != nil {
		return e.fail("Failed to load graph", err)
	}
	doc, err := g.Document()
	if err != nil {
		return e.fail("Failed to load graph", err)
	}

	e.doc = doc
	e.hist.Reset()
	e.sel = Selection{}
	e.conn.Escape()
	e.log.Info("editor: graph loaded",
		zap.Int64("graph_id", id),
		zap.Int("nodes", doc.NodeCount()),
		zap.Int("edges", doc.EdgeCount()),
	)

	return nil
}
