// SPDX-License-Identifier: MIT
//
// File: methods_clone.go
// Role: Whole-document operations: Snapshot, Clone, Clear, Restore, Replace.
// Policy:
//   - Restore and Replace install data verbatim; they are the only mutators
//     that skip validation and exist for undo and bulk import respectively.

package core

// Snapshot returns a detached copy of the node and edge sets.
// Complexity: O(V + E).
func (d *Document) Snapshot() Snapshot {
	return Snapshot{Nodes: d.Nodes(), Edges: d.Edges()}
}

// Clone returns a deep copy: title, external ID, nodes, edges and order.
// Complexity: O(V + E).
func (d *Document) Clone() *Document {
	out := NewDocument(d.title)
	out.graphID, out.hasGraphID = d.graphID, d.hasGraphID
	out.Restore(d.Nodes(), d.Edges())

	return out
}

// Clear empties the node and edge sets and returns what was removed.
// Title and external ID are kept.
// Complexity: O(V + E) for the snapshot.
func (d *Document) Clear() Snapshot {
	snap := d.Snapshot()
	d.reset()

	return snap
}

// Restore re-inserts nodes, then edges, exactly as given.
//
// Contract:
//   - The data was valid when it was removed; no duplicate, self-loop or
//     weight checks are applied.
//   - An ID that is already present is overwritten in place.
//   - Callers must restore every node an edge refers to, which holds for
//     entries produced by RemoveNode, RemoveEdge and Clear.
//
// Complexity: O(len(nodes) + len(edges)).
func (d *Document) Restore(nodes []Node, edges []Edge) {
	for _, n := range nodes {
		d.putNode(n)
	}
	for _, e := range edges {
		d.putEdge(e)
	}
}

// Replace discards the current contents and installs nodes, then edges, in
// one batch. Title and external ID are kept.
func (d *Document) Replace(nodes []Node, edges []Edge) {
	d.reset()
	d.Restore(nodes, edges)
}

func (d *Document) reset() {
	d.nodes = make(map[string]Node)
	d.edges = make(map[string]Edge)
	d.nodeOrder = nil
	d.edgeOrder = nil
}
