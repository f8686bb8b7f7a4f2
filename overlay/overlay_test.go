// SPDX-License-Identifier: MIT

package overlay_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourcanvas/core"
	"github.com/katalvlaran/tourcanvas/overlay"
)

// newDoc builds A->B(3), B->C(4), A->C(5).
func newDoc(t *testing.T) *core.Document {
	t.Helper()
	d := core.NewDocument("overlay")
	for _, id := range []string{"A", "B", "C"} {
		_, err := d.AddNode(id)
		require.NoError(t, err)
	}
	for _, e := range []struct {
		from, to string
		w        float64
	}{{"A", "B", 3}, {"B", "C", 4}, {"A", "C", 5}} {
		_, err := d.AddEdge(e.from, e.to, e.w)
		require.NoError(t, err)
	}

	return d
}

func TestCompute_ReverseSegment(t *testing.T) {
	d := newDoc(t)
	before := d.Snapshot()

	res, err := overlay.Compute(d, []string{"A", "B", "C", "A"})
	require.NoError(t, err)

	require.Equal(t, []string{"A-B", "B-C"}, res.Highlighted())
	require.Len(t, res.Styles, 3)
	require.Equal(t, overlay.Style{EdgeID: "A-C", Color: overlay.DefaultColor, Width: overlay.DefaultWidth}, res.Styles[2])

	require.Equal(t, []overlay.VisualEdge{{
		ID:       "C-A",
		From:     "C",
		To:       "A",
		Label:    "5",
		Arrow:    overlay.ArrowTo,
		Color:    overlay.HighlightColor,
		Width:    overlay.HighlightWidth,
		FontSize: overlay.SyntheticFont,
	}}, res.Synthetic)

	require.Equal(t, before, d.Snapshot(), "document is never modified")
	require.Equal(t, 3, d.EdgeCount())
}

func TestCompute_Idempotent(t *testing.T) {
	d := newDoc(t)
	path := []string{"A", "C", "B", "A"}

	first, err := overlay.Compute(d, path)
	require.NoError(t, err)
	second, err := overlay.Compute(d, path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCompute_SegmentWithoutAnyEdge(t *testing.T) {
	d := newDoc(t)

	res, err := overlay.Compute(d, []string{"C", "B", "C", "B"})
	require.NoError(t, err)

	require.Equal(t, []string{"B-C"}, res.Highlighted())
	require.Len(t, res.Synthetic, 1, "repeated hop is synthesized once")
	require.Equal(t, "C-B", res.Synthetic[0].ID)
	require.Equal(t, "4", res.Synthetic[0].Label)

	res, err = overlay.Compute(d, []string{"C", "Z"})
	require.NoError(t, err)
	require.Len(t, res.Synthetic, 1)
	require.Empty(t, res.Synthetic[0].Label, "no edge in either direction")
}

func TestCompute_Degenerate(t *testing.T) {
	d := newDoc(t)

	_, err := overlay.Compute(d, nil)
	require.ErrorIs(t, err, overlay.ErrEmptyPath)

	res, err := overlay.Compute(d, []string{"A"})
	require.NoError(t, err)
	require.Empty(t, res.Highlighted())
	require.Empty(t, res.Synthetic)
	require.Equal(t, overlay.Reset(d), res)
}

// fakeRenderer records the state a renderer would display.
type fakeRenderer struct {
	styles  map[string]overlay.Style
	visuals map[string]overlay.VisualEdge
	failPut string
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{styles: map[string]overlay.Style{}, visuals: map[string]overlay.VisualEdge{}}
}

func (f *fakeRenderer) UpdateEdgeStyle(s overlay.Style) error {
	f.styles[s.EdgeID] = s
	return nil
}

func (f *fakeRenderer) PutVisualEdge(e overlay.VisualEdge) error {
	if e.ID == f.failPut {
		return errors.New("canvas detached")
	}
	if _, dup := f.visuals[e.ID]; dup {
		return errors.New("duplicate id " + e.ID)
	}
	f.visuals[e.ID] = e
	return nil
}

func (f *fakeRenderer) RemoveVisualEdge(id string) error {
	delete(f.visuals, id)
	return nil
}

func TestApplier_NoStaleVisualEdges(t *testing.T) {
	d := newDoc(t)
	r := newFakeRenderer()
	a := overlay.NewApplier(r)

	res, err := overlay.Compute(d, []string{"A", "B", "C", "A"})
	require.NoError(t, err)
	require.NoError(t, a.Apply(res))
	require.Contains(t, r.visuals, "C-A")
	require.True(t, r.styles["A-B"].Highlighted)

	// Same result again: removal happens before re-adding, so no duplicate.
	require.NoError(t, a.Apply(res))
	require.Len(t, r.visuals, 1)

	res, err = overlay.Compute(d, []string{"A", "C", "B", "A"})
	require.NoError(t, err)
	require.NoError(t, a.Apply(res))
	require.NotContains(t, r.visuals, "C-A")
	require.Contains(t, r.visuals, "C-B")
	require.Contains(t, r.visuals, "B-A")
	require.False(t, r.styles["A-B"].Highlighted)
	require.True(t, r.styles["A-C"].Highlighted)

	require.NoError(t, a.Apply(overlay.Reset(d)))
	require.Empty(t, r.visuals)
	require.Empty(t, a.Live())
}

func TestApplier_CollectsFailures(t *testing.T) {
	d := newDoc(t)
	r := newFakeRenderer()
	r.failPut = "C-A"
	a := overlay.NewApplier(r)

	res, err := overlay.Compute(d, []string{"A", "B", "C", "A"})
	require.NoError(t, err)

	err = a.Apply(res)
	require.ErrorContains(t, err, "canvas detached")
	require.Empty(t, a.Live())
	require.True(t, r.styles["B-C"].Highlighted, "styles are applied despite the failure")
}
