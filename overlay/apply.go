// SPDX-License-Identifier: MIT

package overlay

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Renderer is the drawing surface an overlay is applied to.
type Renderer interface {
	UpdateEdgeStyle(s Style) error
	PutVisualEdge(e VisualEdge) error
	RemoveVisualEdge(id string) error
}

// Applier pushes results onto a Renderer and remembers the visual edges it
// added, so that the next Apply removes them first.
//
// An Applier is bound to one Renderer and is not safe for concurrent use.
type Applier struct {
	r    Renderer
	log  *zap.Logger
	live []string
}

// ApplierOption configures an Applier.
type ApplierOption func(*Applier)

// WithLogger logs every renderer failure to l.
func WithLogger(l *zap.Logger) ApplierOption {
	return func(a *Applier) { a.log = l }
}

// NewApplier binds an Applier to r.
func NewApplier(r Renderer, opts ...ApplierOption) *Applier {
	a := &Applier{r: r, log: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Apply removes the visual edges of the previous result, then restyles every
// stored edge and puts the new visual edges. It does not stop at the first
// renderer failure; all failures are joined into the returned error.
func (a *Applier) Apply(res Result) error {
	var errs []error

	for _, id := range a.live {
		if err := a.r.RemoveVisualEdge(id); err != nil {
			errs = append(errs, fmt.Errorf("overlay: remove %s: %w", id, err))
		}
	}
	a.live = a.live[:0]

	for _, s := range res.Styles {
		if err := a.r.UpdateEdgeStyle(s); err != nil {
			errs = append(errs, fmt.Errorf("overlay: style %s: %w", s.EdgeID, err))
		}
	}
	for _, ve := range res.Synthetic {
		if err := a.r.PutVisualEdge(ve); err != nil {
			errs = append(errs, fmt.Errorf("overlay: put %s: %w", ve.ID, err))
			continue
		}
		a.live = append(a.live, ve.ID)
	}

	err := errors.Join(errs...)
	if err != nil {
		a.log.Warn("overlay: apply incomplete", zap.Error(err))
	}

	return err
}

// Live returns the IDs of visual edges currently on the renderer.
func (a *Applier) Live() []string {
	return append([]string(nil), a.live...)
}
