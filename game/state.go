package game

import "sync"

// State holds the run flags shared between the input layer and the
// simulation loop.
type State struct {
	mu     sync.RWMutex
	paused bool
	closed bool
}

// NewState creates a running state.
func NewState() *State {
	return &State{}
}

// Paused reports whether simulation steps are suspended.
func (s *State) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// SetPaused suspends or resumes simulation steps.
func (s *State) SetPaused(paused bool) {
	s.mu.Lock()
	s.paused = paused
	s.mu.Unlock()
}

// TogglePause flips the pause flag and returns the new value.
func (s *State) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return s.paused
}

// Close marks the run as finished.
func (s *State) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Closed reports whether Close was called.
func (s *State) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
