// Package service wraps the canfilter mutation engine in a facade the api
// and tui packages both call through: one Session per bound HAL, with the
// locking and history tracking those host-side consumers need but the
// engine itself does not.
package service

import (
	"log"
	"sync"
	"time"

	"github.com/lpc17xx/canfilter/canfilter"
	"github.com/lpc17xx/canfilter/hal"
)

// Snapshot is a point-in-time, non-hardware-visible copy of the table's
// observable state, used purely for diffing and display.
type Snapshot struct {
	Counts     canfilter.Counts
	Addresses  canfilter.Addresses
	Mode       hal.Mode
	Words      []uint32
}

// Mutation records one completed (or failed) mutation call for history
// and TUI display.
type Mutation struct {
	Op     string
	Args   string
	Before Snapshot
	After  Snapshot
	Err    error
	At     time.Time
}

// Session owns one canfilter.Engine bound to one hal.Fake, and serializes
// access to it for callers that may run the API's HTTP handler goroutine
// and the TUI/broadcaster goroutine concurrently. The engine itself stays
// single-threaded cooperative; this lock is a host-side concession only.
type Session struct {
	ID string

	mu     sync.RWMutex
	engine *canfilter.Engine
	fake   *hal.Fake
	log    *log.Logger

	history []Mutation
}

// NewSession creates a Session around a fresh fake HAL whose filter has
// been reset (empty table, mode bypass).
func NewSession(id string, logger *log.Logger) *Session {
	f := hal.NewFake()
	engine := canfilter.New(f)
	engine.ResetFilter()
	return &Session{
		ID:     id,
		engine: engine,
		fake:   f,
		log:    logger,
	}
}

func (s *Session) snapshotLocked() Snapshot {
	addrs := s.engine.Addresses()
	n := int(addrs.ENDofTable / 4)
	return Snapshot{
		Counts:    s.engine.Counts(),
		Addresses: addrs,
		Mode:      s.engine.Mode(),
		Words:     s.fake.Snapshot(n),
	}
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// LastMutation reports the most recently recorded mutation, if any.
func (s *Session) LastMutation() (Mutation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.history) == 0 {
		return Mutation{}, false
	}
	return s.history[len(s.history)-1], true
}

// History returns every recorded mutation, oldest first.
func (s *Session) History() []Mutation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Mutation, len(s.history))
	copy(out, s.history)
	return out
}

// record runs fn under the write lock, capturing before/after snapshots
// and the resulting error into history, and returns fn's error.
func (s *Session) record(op, args string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.snapshotLocked()
	err := fn()
	after := s.snapshotLocked()

	s.history = append(s.history, Mutation{
		Op:     op,
		Args:   args,
		Before: before,
		After:  after,
		Err:    err,
		At:     time.Now(),
	})

	if s.log != nil {
		if err != nil {
			s.log.Printf("session %s: %s(%s) failed: %v", s.ID, op, args, err)
		} else {
			s.log.Printf("session %s: %s(%s) ok", s.ID, op, args)
		}
	}

	return err
}
