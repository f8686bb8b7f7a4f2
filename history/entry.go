// SPDX-License-Identifier: MIT

// Package history records reversible descriptions of completed document
// mutations and replays their inverses for single-step undo.
//
// An Entry is pushed by the owning screen immediately after each successful
// mutation; Undo pops the most recent one and restores the document to the
// state it had before that mutation. There is no redo.
package history

import (
	"fmt"

	"github.com/katalvlaran/tourcanvas/core"
)

// Kind tags the mutation an Entry describes.
type Kind string

// Entry kinds.
const (
	KindAddNode    Kind = "addNode"
	KindAddEdge    Kind = "addEdge"
	KindDeleteNode Kind = "deleteNode"
	KindDeleteEdge Kind = "deleteEdge"
	KindClearGraph Kind = "clearGraph"
)

// Entry is one recorded mutation. The set of implementations is closed.
type Entry interface {
	// Kind returns the tag of the recorded mutation.
	Kind() Kind

	// revert applies the inverse mutation to d.
	revert(d *core.Document) error
}

// AddNode records a node insertion.
type AddNode struct {
	Node core.Node
}

// AddEdge records an edge insertion.
type AddEdge struct {
	Edge core.Edge
}

// DeleteNode records a node removal together with its incident edges.
type DeleteNode struct {
	Node  core.Node
	Edges []core.Edge
}

// DeleteEdge records an edge removal.
type DeleteEdge struct {
	Edge core.Edge
}

// ClearGraph records a full clear.
type ClearGraph struct {
	Nodes []core.Node
	Edges []core.Edge
}

func (AddNode) Kind() Kind    { return KindAddNode }
func (AddEdge) Kind() Kind    { return KindAddEdge }
func (DeleteNode) Kind() Kind { return KindDeleteNode }
func (DeleteEdge) Kind() Kind { return KindDeleteEdge }
func (ClearGraph) Kind() Kind { return KindClearGraph }

func (a AddNode) revert(d *core.Document) error {
	if !d.HasNode(a.Node.ID) {
		return fmt.Errorf("%w: node %q missing", ErrInconsistent, a.Node.ID)
	}
	// Edges drawn to the node after it was added are recorded later and must
	// already be undone.
	for _, e := range d.Edges() {
		if e.From == a.Node.ID || e.To == a.Node.ID {
			return fmt.Errorf("%w: node %q still has edge %s", ErrInconsistent, a.Node.ID, e.ID)
		}
	}
	_, _, err := d.RemoveNode(a.Node.ID)

	return err
}

func (a AddEdge) revert(d *core.Document) error {
	if _, err := d.RemoveEdge(a.Edge.From, a.Edge.To); err != nil {
		return fmt.Errorf("%w: %w", ErrInconsistent, err)
	}

	return nil
}

func (r DeleteNode) revert(d *core.Document) error {
	if d.HasNode(r.Node.ID) {
		return fmt.Errorf("%w: node %q already present", ErrInconsistent, r.Node.ID)
	}
	for _, e := range r.Edges {
		if e.From != r.Node.ID && !d.HasNode(e.From) || e.To != r.Node.ID && !d.HasNode(e.To) {
			return fmt.Errorf("%w: edge %s endpoint missing", ErrInconsistent, e.ID)
		}
	}
	d.Restore([]core.Node{r.Node}, r.Edges)

	return nil
}

func (r DeleteEdge) revert(d *core.Document) error {
	if !d.HasNode(r.Edge.From) || !d.HasNode(r.Edge.To) {
		return fmt.Errorf("%w: edge %s endpoint missing", ErrInconsistent, r.Edge.ID)
	}
	d.Restore(nil, []core.Edge{r.Edge})

	return nil
}

func (c ClearGraph) revert(d *core.Document) error {
	d.Restore(c.Nodes, c.Edges)

	return nil
}
