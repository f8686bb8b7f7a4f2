// SPDX-License-Identifier: MIT

// Package connect implements connect mode: the interaction state machine that
// turns a drawn (from,to) gesture plus a weight input into a committed edge.
//
// States and transitions:
//
//	Idle           --Toggle-->         Active
//	Active         --Toggle-->         Idle
//	Active         --Draw(from,to)-->  AwaitingWeight   (self-loop / duplicate: stay Active)
//	AwaitingWeight --ProvideWeight-->  Active           (invalid weight: no commit)
//	AwaitingWeight --Cancel-->         Active
//	any            --Escape-->         Idle
//
// Connect mode is sticky: a committed edge returns the session to Active so
// the next edge can be drawn without re-arming.
package connect

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/tourcanvas/core"
)

// ErrInvalidTransition is returned for an event the current state does not accept.
var ErrInvalidTransition = errors.New("connect: invalid transition")

// State is the session's position in the state machine.
type State int

const (
	Idle State = iota
	Active
	AwaitingWeight
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case AwaitingWeight:
		return "awaiting-weight"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// EdgeLookup is the read-only view of the document the draw guard needs.
type EdgeLookup interface {
	HasEdge(from, to string) bool
}

// Committer adds the edge to the document and records it in history as one
// step. It returns the stored edge.
type Committer func(from, to string, weight float64) (core.Edge, error)

// Option configures a Session.
type Option func(*Session)

// WithLogger routes transition logs to l.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Session is the connect-mode state machine of one editor.
type Session struct {
	lookup EdgeLookup
	commit Committer
	log    *zap.Logger

	state    State
	from, to string
}

// NewSession returns an Idle session guarding against lookup and committing
// through commit.
func NewSession(lookup EdgeLookup, commit Committer, opts ...Option) *Session {
	s := &Session{lookup: lookup, commit: commit, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Active reports whether connect mode is on (Active or AwaitingWeight).
func (s *Session) Active() bool { return s.state != Idle }

// Pending returns the drawn pair awaiting a weight.
func (s *Session) Pending() (from, to string, ok bool) {
	if s.state != AwaitingWeight {
		return "", "", false
	}

	return s.from, s.to, true
}

// Toggle switches connect mode on or off. Turning it off while a weight is
// pending discards the pending pair.
func (s *Session) Toggle() State {
	if s.state == Idle {
		s.enter(Active, "toggle-on")
	} else {
		s.enter(Idle, "toggle-off")
	}

	return s.state
}

// Escape aborts whatever is in progress and leaves connect mode.
func (s *Session) Escape() {
	s.enter(Idle, "escape")
}

// Draw captures a from→to gesture. Self-loops and existing edges are
// rejected before any weight is requested; the session stays Active.
func (s *Session) Draw(from, to string) error {
	if s.state != Active {
		return fmt.Errorf("%w: draw in %s", ErrInvalidTransition, s.state)
	}
	if from == to {
		s.log.Debug("connect: draw rejected", zap.String("from", from), zap.String("reason", "self-loop"))
		return fmt.Errorf("%w: %q", core.ErrSelfLoop, from)
	}
	if s.lookup.HasEdge(from, to) {
		s.log.Debug("connect: draw rejected", zap.String("edge", core.EdgeKey(from, to)), zap.String("reason", "duplicate"))
		return fmt.Errorf("%w: %s", core.ErrDuplicateEdge, core.EdgeKey(from, to))
	}
	s.from, s.to = from, to
	s.enter(AwaitingWeight, "draw")

	return nil
}

// ProvideWeight completes the pending edge. An invalid weight cancels the
// drawing; a valid one is committed. Either way the session returns to Active.
func (s *Session) ProvideWeight(w float64) (core.Edge, error) {
	if s.state != AwaitingWeight {
		return core.Edge{}, fmt.Errorf("%w: weight in %s", ErrInvalidTransition, s.state)
	}
	from, to := s.from, s.to
	s.from, s.to = "", ""

	if err := core.ValidateWeight(w); err != nil {
		s.enter(Active, "weight-rejected")
		return core.Edge{}, err
	}
	e, err := s.commit(from, to, w)
	s.enter(Active, "commit")
	if err != nil {
		return core.Edge{}, err
	}

	return e, nil
}

// ProvideWeightText parses prompt input and forwards it to ProvideWeight.
// Unparseable text is treated as an invalid weight.
func (s *Session) ProvideWeightText(text string) (core.Edge, error) {
	if s.state != AwaitingWeight {
		return core.Edge{}, fmt.Errorf("%w: weight in %s", ErrInvalidTransition, s.state)
	}
	w, err := core.ParseWeight(text)
	if err != nil {
		s.from, s.to = "", ""
		s.enter(Active, "weight-rejected")
		return core.Edge{}, err
	}

	return s.ProvideWeight(w)
}

// Cancel dismisses the weight prompt without committing anything.
func (s *Session) Cancel() error {
	if s.state != AwaitingWeight {
		return fmt.Errorf("%w: cancel in %s", ErrInvalidTransition, s.state)
	}
	s.from, s.to = "", ""
	s.enter(Active, "cancel")

	return nil
}

func (s *Session) enter(next State, event string) {
	if next != AwaitingWeight {
		s.from, s.to = "", ""
	}
	s.log.Debug("connect: transition",
		zap.Stringer("from", s.state),
		zap.Stringer("to", next),
		zap.String("event", event),
	)
	s.state = next
}
