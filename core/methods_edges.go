// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/Edge/Edges/EdgeCount.
// Determinism:
//   - Edges() returns edges in insertion order.
//   - Edge IDs are EdgeKey(from,to); no counters involved.

package core

import "fmt"

// AddEdge creates the directed edge from→to with the given weight.
//
// Steps:
//  1. Reject self-loops (ErrSelfLoop).
//  2. Reject an existing (from,to) pair (ErrDuplicateEdge).
//  3. Require both endpoints to exist (ErrUnknownNode).
//  4. Require a finite, non-negative weight (ErrInvalidWeight).
//  5. Store the edge.
//
// On error the document is unchanged.
// Complexity: O(1) amortized.
func (d *Document) AddEdge(from, to string, weight float64) (Edge, error) {
	if from == to {
		return Edge{}, fmt.Errorf("%w: %q", ErrSelfLoop, from)
	}
	key := EdgeKey(from, to)
	if _, exists := d.edges[key]; exists {
		return Edge{}, fmt.Errorf("%w: %s", ErrDuplicateEdge, key)
	}
	for _, id := range [2]string{from, to} {
		if _, ok := d.nodes[id]; !ok {
			return Edge{}, fmt.Errorf("%w: %q", ErrUnknownNode, id)
		}
	}
	if err := ValidateWeight(weight); err != nil {
		return Edge{}, err
	}

	e := Edge{ID: key, From: from, To: to, Weight: weight}
	d.putEdge(e)

	return e, nil
}

// RemoveEdge deletes the edge from→to and returns it.
//
// Errors:
//   - ErrUnknownEdge: no such edge. The reverse edge to→from does not count.
//
// Complexity: O(E) for order bookkeeping.
func (d *Document) RemoveEdge(from, to string) (Edge, error) {
	key := EdgeKey(from, to)
	e, ok := d.edges[key]
	if !ok {
		return Edge{}, fmt.Errorf("%w: %s", ErrUnknownEdge, key)
	}
	delete(d.edges, key)
	d.edgeOrder = removeKey(d.edgeOrder, key)

	return e, nil
}

// HasEdge reports whether the directed edge from→to exists.
// Complexity: O(1).
func (d *Document) HasEdge(from, to string) bool {
	_, ok := d.edges[EdgeKey(from, to)]

	return ok
}

// Edge returns the directed edge from→to.
func (d *Document) Edge(from, to string) (Edge, error) {
	key := EdgeKey(from, to)
	e, ok := d.edges[key]
	if !ok {
		return Edge{}, fmt.Errorf("%w: %s", ErrUnknownEdge, key)
	}

	return e, nil
}

// Edges returns all edges in insertion order.
// Complexity: O(E).
func (d *Document) Edges() []Edge {
	out := make([]Edge, 0, len(d.edgeOrder))
	for _, key := range d.edgeOrder {
		out = append(out, d.edges[key])
	}

	return out
}

// EdgeCount returns the number of edges.
func (d *Document) EdgeCount() int { return len(d.edges) }

// putEdge stores e, keeping insertion order stable when e already exists.
func (d *Document) putEdge(e Edge) {
	if _, exists := d.edges[e.ID]; !exists {
		d.edgeOrder = append(d.edgeOrder, e.ID)
	}
	d.edges[e.ID] = e
}
