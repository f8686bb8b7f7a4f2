// SPDX-License-Identifier: MIT

package shell

import (
	"fmt"
	"io"

	"github.com/katalvlaran/tourcanvas/overlay"
)

// textRenderer prints the highlighted part of an overlay. Default-styled
// edges are not printed.
type textRenderer struct {
	out io.Writer
}

func (r *textRenderer) UpdateEdgeStyle(s overlay.Style) error {
	if s.Highlighted {
		_, err := fmt.Fprintf(r.out, "  = %s\n", s.EdgeID)
		return err
	}
	return nil
}

func (r *textRenderer) PutVisualEdge(e overlay.VisualEdge) error {
	label := e.Label
	if label == "" {
		label = "?"
	}
	_, err := fmt.Fprintf(r.out, "  + %s (reverse, %s)\n", e.ID, label)
	return err
}

func (r *textRenderer) RemoveVisualEdge(string) error { return nil }
