// SPDX-License-Identifier: MIT

// Package overlay projects an optimization tour onto the rendered edge set.
//
// Compute is a pure function of (document, path): it resets every stored
// edge to the default style, highlights the stored edges the path walks
// forward, and synthesizes a visual-only edge for every hop that has no
// forward counterpart (the path walks a stored edge backwards, or the hop
// is not in the document at all). Synthesized edges never enter the
// document.
package overlay

import (
	"errors"

	"github.com/katalvlaran/tourcanvas/core"
)

// ErrEmptyPath is returned when the path has no nodes.
var ErrEmptyPath = errors.New("overlay: empty path")

// Visual constants of the overlay.
const (
	DefaultColor   = "#333"
	DefaultWidth   = 2
	HighlightColor = "#ff0000"
	HighlightWidth = 4
	SyntheticFont  = 14
	ArrowTo        = "to"
)

// Style is a style override for one rendered edge.
type Style struct {
	EdgeID      string
	Color       string
	Width       int
	Highlighted bool
}

// VisualEdge is a render-only edge added for a path hop the document does
// not store in that direction.
type VisualEdge struct {
	ID       string
	From     string
	To       string
	Label    string
	Arrow    string
	Color    string
	Width    int
	FontSize int
}

// Result is the full overlay for one (document, path) pair.
//
// Styles holds one entry per document edge, in document order.
// Synthetic holds one entry per distinct hop without a forward edge, in path order.
type Result struct {
	Styles    []Style
	Synthetic []VisualEdge
}

// Compute derives the overlay of path over d. d is not modified.
//
// Errors:
//   - ErrEmptyPath: len(path) == 0.
//
// A single-node path highlights nothing. Complexity: O(E + len(path)).
func Compute(d *core.Document, path []string) (Result, error) {
	if len(path) == 0 {
		return Result{}, ErrEmptyPath
	}

	res := Reset(d)
	index := make(map[string]int, len(res.Styles))
	for i, s := range res.Styles {
		index[s.EdgeID] = i
	}

	synthesized := make(map[string]bool)
	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		key := core.EdgeKey(from, to)

		if at, ok := index[key]; ok {
			res.Styles[at] = Style{EdgeID: key, Color: HighlightColor, Width: HighlightWidth, Highlighted: true}
			continue
		}
		if synthesized[key] {
			continue
		}
		synthesized[key] = true

		var label string
		if rev, err := d.Edge(to, from); err == nil {
			label = rev.Label()
		}
		res.Synthetic = append(res.Synthetic, VisualEdge{
			ID:       key,
			From:     from,
			To:       to,
			Label:    label,
			Arrow:    ArrowTo,
			Color:    HighlightColor,
			Width:    HighlightWidth,
			FontSize: SyntheticFont,
		})
	}

	return res, nil
}

// Reset returns the overlay with no path: every edge in the default style.
func Reset(d *core.Document) Result {
	edges := d.Edges()
	res := Result{Styles: make([]Style, 0, len(edges))}
	for _, e := range edges {
		res.Styles = append(res.Styles, Style{EdgeID: e.ID, Color: DefaultColor, Width: DefaultWidth})
	}

	return res
}

// Highlighted returns the IDs of highlighted stored edges, in document order.
func (r Result) Highlighted() []string {
	var out []string
	for _, s := range r.Styles {
		if s.Highlighted {
			out = append(out, s.EdgeID)
		}
	}

	return out
}
