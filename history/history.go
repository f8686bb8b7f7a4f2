// SPDX-License-Identifier: MIT

package history

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tourcanvas/core"
)

var (
	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("history: nothing to undo")

	// ErrInconsistent indicates the document no longer matches the entry
	// being undone. The entry stays on the stack.
	ErrInconsistent = errors.New("history: entry does not match document")
)

// History is an append-only stack of entries, popped by Undo.
// The zero value is an empty history ready to use.
type History struct {
	entries []Entry
}

// New returns an empty history.
func New() *History { return &History{} }

// Record appends e. Call it right after the mutation e describes succeeded,
// never for a rejected one.
func (h *History) Record(e Entry) {
	h.entries = append(h.entries, e)
}

// Undo pops the most recent entry and applies its inverse to d.
//
// Errors:
//   - ErrNothingToUndo: the stack is empty; d is untouched.
//   - ErrInconsistent: the inverse does not apply to d; the entry is kept
//     and d is untouched.
func (h *History) Undo(d *core.Document) (Entry, error) {
	if len(h.entries) == 0 {
		return nil, ErrNothingToUndo
	}
	top := h.entries[len(h.entries)-1]
	if err := top.revert(d); err != nil {
		return nil, fmt.Errorf("history: undo %s: %w", top.Kind(), err)
	}
	h.entries[len(h.entries)-1] = nil
	h.entries = h.entries[:len(h.entries)-1]

	return top, nil
}

// Peek returns the entry Undo would revert next.
func (h *History) Peek() (Entry, bool) {
	if len(h.entries) == 0 {
		return nil, false
	}

	return h.entries[len(h.entries)-1], true
}

// Len returns the number of undoable entries.
func (h *History) Len() int { return len(h.entries) }

// Reset drops every entry.
func (h *History) Reset() { h.entries = nil }
