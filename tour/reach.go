// SPDX-License-Identifier: MIT

package tour

import (
	"fmt"

	"github.com/katalvlaran/tourcanvas/core"
)

// walker holds breadth-first state over a fixed adjacency.
type walker struct {
	adj     map[string][]string
	queue   []string
	visited map[string]bool
	order   []string
}

// adjacency lists successors per node in edge insertion order;
// reverse lists predecessors instead.
func adjacency(d *core.Document, reverse bool) map[string][]string {
	adj := make(map[string][]string, d.NodeCount())
	for _, e := range d.Edges() {
		if reverse {
			adj[e.To] = append(adj[e.To], e.From)
		} else {
			adj[e.From] = append(adj[e.From], e.To)
		}
	}

	return adj
}

func (w *walker) enqueue(id string) {
	w.visited[id] = true
	w.queue = append(w.queue, id)
}

func (w *walker) loop() {
	for len(w.queue) > 0 {
		id := w.queue[0]
		w.queue = w.queue[1:]
		w.order = append(w.order, id)
		for _, nbr := range w.adj[id] {
			if !w.visited[nbr] {
				w.enqueue(nbr)
			}
		}
	}
}

// Reachable returns the nodes reachable from start along directed edges,
// in BFS order and starting with start itself. With reverse set, edges are
// followed backwards, giving the nodes that can reach start.
//
// Returns core.ErrUnknownNode if start is not in d.
// Complexity: O(V + E).
func Reachable(d *core.Document, start string, reverse bool) ([]string, error) {
	if !d.HasNode(start) {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownNode, start)
	}
	w := &walker{
		adj:     adjacency(d, reverse),
		visited: make(map[string]bool, d.NodeCount()),
	}
	w.enqueue(start)
	w.loop()

	return w.order, nil
}

// StronglyConnected reports whether every node reaches every other node.
// An empty document is trivially connected.
//
// One forward and one backward BFS from any node suffice.
// Complexity: O(V + E).
func StronglyConnected(d *core.Document) bool {
	nodes := d.Nodes()
	if len(nodes) == 0 {
		return true
	}
	root := nodes[0].ID
	fwd, _ := Reachable(d, root, false)
	if len(fwd) != len(nodes) {
		return false
	}
	back, _ := Reachable(d, root, true)

	return len(back) == len(nodes)
}

// CheckSolvable applies the service's pre-checks for an optimization run.
//
// Errors:
//   - ErrTooFewNodes: fewer than MinNodes nodes.
//   - ErrNotStronglyConnected: some node is unreachable in either direction.
func CheckSolvable(d *core.Document) error {
	if n := d.NodeCount(); n < MinNodes {
		return fmt.Errorf("%w: %d < %d", ErrTooFewNodes, n, MinNodes)
	}
	if !StronglyConnected(d) {
		return ErrNotStronglyConnected
	}

	return nil
}
