// SPDX-License-Identifier: MIT

package api

import (
	"fmt"

	"github.com/katalvlaran/tourcanvas/core"
)

// NewCreateRequest renders d as a create body. Nodes carry labels only.
func NewCreateRequest(d *core.Document) CreateGraphRequest {
	nodes, edges := wireContents(d, false)

	return CreateGraphRequest{Name: d.Title(), Data: GraphData{Nodes: nodes, Edges: edges}}
}

// NewUpdateRequest renders d as an update body. Nodes carry id and label.
func NewUpdateRequest(d *core.Document) UpdateGraphRequest {
	nodes, edges := wireContents(d, true)

	return UpdateGraphRequest{Data: UpdateGraphData{Name: d.Title(), Nodes: nodes, Edges: edges}}
}

func wireContents(d *core.Document, withIDs bool) ([]Node, []Edge) {
	nodes := make([]Node, 0, d.NodeCount())
	for _, n := range d.Nodes() {
		wn := Node{Label: n.Label}
		if withIDs {
			wn.ID = n.ID
		}
		nodes = append(nodes, wn)
	}
	edges := make([]Edge, 0, d.EdgeCount())
	for _, e := range d.Edges() {
		edges = append(edges, Edge{From: e.From, To: e.To, Weight: e.Weight})
	}

	return nodes, edges
}

// Document rebuilds a stored graph as a fresh document with the graph's
// name as title and its ID attached.
//
// Node IDs are the stored labels. Any node or edge the document rejects
// (duplicate, self-loop, unknown endpoint, invalid weight) yields an error
// wrapping ErrBadPayload.
func (g *Graph) Document() (*core.Document, error) {
	d := core.NewDocument(g.Name)
	d.SetGraphID(g.ID)
	for i, n := range g.Graph.Nodes {
		if _, err := d.AddNode(n.Label); err != nil {
			return nil, fmt.Errorf("%w: node %d: %w", ErrBadPayload, i, err)
		}
	}
	for i, e := range g.Graph.Edges {
		if _, err := d.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, fmt.Errorf("%w: edge %d: %w", ErrBadPayload, i, err)
		}
	}

	return d, nil
}

// Summary condenses g for listings.
func (g *Graph) Summary() GraphSummary {
	return GraphSummary{
		ID:        g.ID,
		Name:      g.Name,
		Nodes:     len(g.Graph.Nodes),
		Edges:     len(g.Graph.Edges),
		UpdatedAt: g.UpdatedAt,
	}
}
