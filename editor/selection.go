// SPDX-License-Identifier: MIT

package editor

import "github.com/katalvlaran/tourcanvas/core"

type selectionKind uint8

const (
	selectNone selectionKind = iota
	selectNode
	selectEdge
)

// Selection is nothing, one node, or one edge.
type Selection struct {
	kind selectionKind
	node string
	edge core.Edge
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool { return s.kind == selectNone }

// Node returns the selected node ID.
func (s Selection) Node() (string, bool) { return s.node, s.kind == selectNode }

// Edge returns the selected edge as it was when selected.
func (s Selection) Edge() (core.Edge, bool) { return s.edge, s.kind == selectEdge }

// stale reports whether the selected item is no longer in d.
func (s Selection) stale(d *core.Document) bool {
	switch s.kind {
	case selectNode:
		return !d.HasNode(s.node)
	case selectEdge:
		return !d.HasEdge(s.edge.From, s.edge.To)
	}
	return false
}
