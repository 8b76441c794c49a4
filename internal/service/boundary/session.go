package boundary

import (
	"errors"
	"fmt"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// State is the phase of a capture session.
type State string

const (
	StateIdle       State = "IDLE"
	StateCollecting State = "COLLECTING"
	StateReady      State = "READY"
	StateSubmitted  State = "SUBMITTED"
)

func (s State) String() string { return string(s) }

var (
	// ErrSubmitted is returned for any edit after the session was consumed by a create.
	ErrSubmitted = errors.New("capture session already submitted")
	// ErrNotReady is returned by Submit before the boundary was confirmed.
	ErrNotReady = errors.New("boundary not confirmed")
)

// Session drives one boundary capture:
//
//	IDLE → COLLECTING → READY → SUBMITTED
//
// Clear and Reset go back to IDLE and discard all points. Undo in READY that
// leaves fewer than 3 points returns to COLLECTING.
type Session struct {
	points Collector
	state  State
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{state: StateIdle}
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Points returns a copy of the captured points.
func (s *Session) Points() []domain.GeoPoint { return s.points.Snapshot() }

// Len returns the number of captured points.
func (s *Session) Len() int { return s.points.Len() }

// CanConfirm reports whether the confirm control is enabled.
func (s *Session) CanConfirm() bool {
	return s.state != StateSubmitted && s.points.Len() >= domain.MinBoundaryVertices
}

// Add records a pick.
func (s *Session) Add(p domain.GeoPoint) error {
	if s.state == StateSubmitted {
		return ErrSubmitted
	}
	s.points.Add(p)
	if s.state == StateIdle {
		s.state = StateCollecting
	}
	return nil
}

// Undo drops the last pick. No-op on an empty session.
func (s *Session) Undo() error {
	if s.state == StateSubmitted {
		return ErrSubmitted
	}
	s.points.RemoveLast()
	switch {
	case s.points.Len() == 0:
		s.state = StateIdle
	case s.points.Len() < domain.MinBoundaryVertices:
		s.state = StateCollecting
	}
	return nil
}

// Clear discards all picks.
func (s *Session) Clear() error {
	if s.state == StateSubmitted {
		return ErrSubmitted
	}
	s.points.Clear()
	s.state = StateIdle
	return nil
}

// Confirm builds the boundary and moves to READY. The session stays in its
// current state when fewer than 3 points were captured.
func (s *Session) Confirm() (domain.Boundary, error) {
	if s.state == StateSubmitted {
		return domain.Boundary{}, ErrSubmitted
	}
	b, err := Build(s.points.Snapshot())
	if err != nil {
		return domain.Boundary{}, err
	}
	s.state = StateReady
	return b, nil
}

// Submit hands the confirmed boundary to create. The session is consumed only
// when create succeeds; on failure points and state are kept for a resubmit.
func (s *Session) Submit(create func(domain.Boundary) error) error {
	switch s.state {
	case StateSubmitted:
		return ErrSubmitted
	case StateReady:
	default:
		return fmt.Errorf("submit in state %s: %w", s.state, ErrNotReady)
	}

	b, err := Build(s.points.Snapshot())
	if err != nil {
		return err
	}
	if err := create(b); err != nil {
		return err
	}
	s.state = StateSubmitted
	return nil
}

// Reset abandons the capture (e.g. the dialog was closed) and returns to IDLE,
// whatever the current state.
func (s *Session) Reset() {
	s.points.Clear()
	s.state = StateIdle
}
