// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Node, Edge, Document, Snapshot, sentinel errors and the constructor.

package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for document operations.
var (
	// ErrDuplicateNode indicates the node ID is already present.
	ErrDuplicateNode = errors.New("core: duplicate node")

	// ErrEmptyNodeID indicates an empty or whitespace-only node ID.
	// It matches ErrDuplicateNode under errors.Is.
	ErrEmptyNodeID = fmt.Errorf("%w: node ID is empty", ErrDuplicateNode)

	// ErrUnknownNode indicates an operation referenced a missing node.
	ErrUnknownNode = errors.New("core: unknown node")

	// ErrDuplicateEdge indicates an edge with the same (from,to) exists.
	ErrDuplicateEdge = errors.New("core: duplicate edge")

	// ErrUnknownEdge indicates an operation referenced a missing edge.
	ErrUnknownEdge = errors.New("core: unknown edge")

	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = errors.New("core: self-loop not allowed")

	// ErrInvalidWeight indicates a weight that is negative, NaN or infinite.
	ErrInvalidWeight = errors.New("core: invalid weight")
)

// Node is a graph vertex. Its ID is also its display label.
type Node struct {
	// ID uniquely identifies the node within its Document.
	ID string

	// Label is the rendered text; always equal to ID.
	Label string
}

// Edge is a weighted directed connection between two distinct nodes.
type Edge struct {
	// ID is EdgeKey(From, To).
	ID string

	// From is the source node ID.
	From string

	// To is the destination node ID.
	To string

	// Weight is the non-negative traversal cost.
	Weight float64
}

// Label returns the text rendered on the edge.
func (e Edge) Label() string { return FormatWeight(e.Weight) }

// Snapshot is a detached copy of a document's node and edge sets,
// in insertion order.
type Snapshot struct {
	Nodes []Node
	Edges []Edge
}

// Document is the authoritative node/edge store of one canvas.
//
// nodeOrder and edgeOrder hold insertion order for enumeration; the maps are
// the source of truth for membership.
type Document struct {
	title string

	graphID    int64 // external persistence identifier
	hasGraphID bool

	nodes     map[string]Node // node ID → Node
	edges     map[string]Edge // EdgeKey → Edge
	nodeOrder []string
	edgeOrder []string
}

// NewDocument returns an empty, unsaved document with the given title.
// Complexity: O(1).
func NewDocument(title string) *Document {
	return &Document{
		title: title,
		nodes: make(map[string]Node),
		edges: make(map[string]Edge),
	}
}

// EdgeKey returns the deterministic edge ID for the ordered pair (from,to).
func EdgeKey(from, to string) string { return from + "-" + to }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// SetTitle replaces the document title.
func (d *Document) SetTitle(title string) { d.title = title }

// GraphID returns the external persistence identifier, if the document has
// been saved or loaded.
func (d *Document) GraphID() (int64, bool) { return d.graphID, d.hasGraphID }

// SetGraphID records the identifier assigned by the persistence service.
func (d *Document) SetGraphID(id int64) {
	d.graphID = id
	d.hasGraphID = true
}

// ClearGraphID marks the document as new and unsaved.
func (d *Document) ClearGraphID() {
	d.graphID = 0
	d.hasGraphID = false
}
