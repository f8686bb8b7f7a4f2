// SPDX-License-Identifier: MIT

// Package core provides the in-memory graph document edited on the canvas:
// a set of uniquely named nodes and a set of weighted directed edges between
// them.
//
// The Document D = (N, E) enforces:
//
//   - Node identity is its name: the ID doubles as the display label.
//   - Edge identity is its ordered endpoint pair: ID = "{from}-{to}".
//     (a,b) and (b,a) are distinct edges.
//   - No self-loops and no parallel edges: at most one edge per (from,to).
//   - Weights are finite and non-negative.
//   - Referential integrity: every edge endpoint is a stored node, after every
//     mutation including undo.
//
// Core Methods:
//
//	// Node lifecycle
//	AddNode(id string) (Node, error)                     // O(1)
//	RemoveNode(id string) (Node, []Edge, error)          // O(E)
//
//	// Edge lifecycle
//	AddEdge(from, to string, w float64) (Edge, error)    // O(1)
//	RemoveEdge(from, to string) (Edge, error)            // O(E) for order bookkeeping
//
//	// Whole-document operations
//	Clear() Snapshot                                     // O(1)
//	Restore(nodes []Node, edges []Edge)                  // verbatim re-insert (undo)
//	Replace(nodes []Node, edges []Edge)                  // full replace (import)
//	Snapshot() Snapshot / Clone() *Document              // O(V+E)
//
// Nodes() and Edges() enumerate in insertion order, which is what list
// renderings show. Correctness never depends on that order.
//
// Errors:
//
//	ErrDuplicateNode  - node ID already present.
//	ErrEmptyNodeID    - node ID is empty or whitespace (wraps ErrDuplicateNode).
//	ErrUnknownNode    - referenced node does not exist.
//	ErrDuplicateEdge  - (from,to) already present.
//	ErrUnknownEdge    - referenced edge does not exist.
//	ErrSelfLoop       - from == to.
//	ErrInvalidWeight  - weight is negative, NaN or infinite.
//
// A Document is owned by exactly one screen and is not safe for concurrent
// mutation. All operations are synchronous and perform no I/O.
package core
