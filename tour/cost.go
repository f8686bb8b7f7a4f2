// SPDX-License-Identifier: MIT

// Package tour evaluates optimization tours against a document locally:
// the cost of a path over stored edges, directed reachability, and the
// solvability pre-checks the optimization service applies before a run.
//
// Everything here is read-only over *core.Document.
package tour

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/tourcanvas/core"
)

// Sentinel errors.
var (
	// ErrMissingEdge is returned when a hop of the path has no stored forward edge.
	ErrMissingEdge = errors.New("tour: path hop has no edge")
	// ErrShortPath is returned for paths with fewer than two nodes.
	ErrShortPath = errors.New("tour: path needs at least two nodes")
	// ErrTooFewNodes is returned when the graph has fewer than MinNodes nodes.
	ErrTooFewNodes = errors.New("tour: graph has too few nodes")
	// ErrNotStronglyConnected is returned when some node cannot reach, or be
	// reached from, every other node.
	ErrNotStronglyConnected = errors.New("tour: graph is not strongly connected")
)

// MinNodes is the smallest graph the optimization service accepts.
const MinNodes = 3

// roundScale fixes cost precision at 1e-9.
const roundScale = 1e9

// Cost sums the weights of the stored edges path[i]->path[i+1].
//
// Errors:
//   - ErrShortPath: len(path) < 2.
//   - ErrMissingEdge: some hop is not a stored edge in that direction.
//
// Complexity: O(len(path)).
func Cost(d *core.Document, path []string) (float64, error) {
	if len(path) < 2 {
		return 0, ErrShortPath
	}

	var sum float64
	for i := 0; i+1 < len(path); i++ {
		e, err := d.Edge(path[i], path[i+1])
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrMissingEdge, core.EdgeKey(path[i], path[i+1]))
		}
		sum += e.Weight
	}

	return round1e9(sum), nil
}

// IsCycle reports whether path starts and ends on the same node and visits
// every other node of d exactly once.
func IsCycle(d *core.Document, path []string) bool {
	if len(path) < 2 || path[0] != path[len(path)-1] || len(path)-1 != d.NodeCount() {
		return false
	}
	seen := make(map[string]bool, len(path))
	for _, id := range path[:len(path)-1] {
		if seen[id] || !d.HasNode(id) {
			return false
		}
		seen[id] = true
	}

	return true
}

func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
