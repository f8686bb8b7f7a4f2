// SPDX-License-Identifier: MIT
//
// File: methods_nodes.go
// Role: Node lifecycle & queries.
// Determinism:
//   - Nodes() returns nodes in insertion order.

package core

import (
	"fmt"
	"strings"
)

// AddNode inserts a node whose ID and label are id.
//
// Errors:
//   - ErrEmptyNodeID: id is empty or only whitespace.
//   - ErrDuplicateNode: a node with this ID exists.
//
// Complexity: O(1) amortized.
func (d *Document) AddNode(id string) (Node, error) {
	if strings.TrimSpace(id) == "" {
		return Node{}, ErrEmptyNodeID
	}
	if _, exists := d.nodes[id]; exists {
		return Node{}, fmt.Errorf("%w: %q", ErrDuplicateNode, id)
	}

	n := Node{ID: id, Label: id}
	d.putNode(n)

	return n, nil
}

// RemoveNode deletes a node and every edge where it is the source or the
// target. The removed node and edges (in insertion order) are returned so
// the caller can record them for undo.
//
// Errors:
//   - ErrUnknownNode: no node with this ID.
//
// Complexity: O(V + E).
func (d *Document) RemoveNode(id string) (Node, []Edge, error) {
	n, ok := d.nodes[id]
	if !ok {
		return Node{}, nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}

	var incident []Edge
	kept := d.edgeOrder[:0:0]
	for _, key := range d.edgeOrder {
		e := d.edges[key]
		if e.From == id || e.To == id {
			incident = append(incident, e)
			delete(d.edges, key)
			continue
		}
		kept = append(kept, key)
	}
	d.edgeOrder = kept

	delete(d.nodes, id)
	d.nodeOrder = removeKey(d.nodeOrder, id)

	return n, incident, nil
}

// HasNode reports whether a node with this ID exists.
func (d *Document) HasNode(id string) bool {
	_, ok := d.nodes[id]

	return ok
}

// Node returns the node with the given ID.
func (d *Document) Node(id string) (Node, error) {
	n, ok := d.nodes[id]
	if !ok {
		return Node{}, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}

	return n, nil
}

// Nodes returns all nodes in insertion order.
// Complexity: O(V).
func (d *Document) Nodes() []Node {
	out := make([]Node, 0, len(d.nodeOrder))
	for _, id := range d.nodeOrder {
		out = append(out, d.nodes[id])
	}

	return out
}

// NodeCount returns the number of nodes.
func (d *Document) NodeCount() int { return len(d.nodes) }

// putNode stores n, keeping insertion order stable when n already exists.
func (d *Document) putNode(n Node) {
	if _, exists := d.nodes[n.ID]; !exists {
		d.nodeOrder = append(d.nodeOrder, n.ID)
	}
	d.nodes[n.ID] = n
}

// removeKey returns keys without the first occurrence of key.
func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i:i], keys[i+1:]...)
		}
	}

	return keys
}
