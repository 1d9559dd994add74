// Package navigation owns the per-session navigation state: the active room,
// the visited set, scroll progress, pointer position and the coarse UI mode.
//
// A State is an explicit container. Each session (a browser connection, a
// preview run) builds its own and passes it to whatever reads it.
package navigation

import (
	"sync"

	"github.com/atelierfolio/atelier/internal/scene/room"
	"github.com/atelierfolio/atelier/internal/scene/vmath"
)

// Mode is the coarse UI mode.
type Mode string

const (
	// ModeHero shows the landing hero.
	ModeHero Mode = "hero"
	// ModeEnvironment shows the explorable room environment.
	ModeEnvironment Mode = "environment"
	// ModeRoom shows a room's content overlay.
	ModeRoom Mode = "room"
)

// Pointer is the normalized pointer position, each axis in [-1, 1].
type Pointer struct {
	X, Y float64
}

// Snapshot is an immutable copy of State.
type Snapshot struct {
	ActiveRoom     room.ID
	Visited        []room.ID
	ScrollProgress float64
	Pointer        Pointer
	Mode           Mode
	// Revision increases on every accepted mutation.
	Revision uint64
}

// HasVisited reports whether id is in the visited set.
func (s Snapshot) HasVisited(id room.ID) bool {
	for _, v := range s.Visited {
		if v == id {
			return true
		}
	}
	return false
}

// State is safe for concurrent use.
type State struct {
	mu       sync.RWMutex
	active   room.ID
	visited  map[room.ID]struct{}
	scroll   float64
	pointer  Pointer
	mode     Mode
	revision uint64
}

// New returns a state at the entry room in hero mode with nothing visited.
func New() *State {
	return &State{
		active:  room.Entry,
		visited: make(map[room.ID]struct{}),
		mode:    ModeHero,
	}
}

// SelectRoom makes id active and records it as visited. Unknown ids are
// ignored and reported with false so the active room always stays a
// registry key.
func (s *State) SelectRoom(id room.ID) bool {
	if !id.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = id
	s.visited[id] = struct{}{}
	s.mode = ModeRoom
	s.revision++
	return true
}

// SetScrollProgress stores p clamped into [0, 1].
func (s *State) SetScrollProgress(p float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll = vmath.Clamp01(p)
	s.revision++
}

// SetPointer stores the pointer clamped into [-1, 1] on both axes.
func (s *State) SetPointer(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointer = Pointer{X: vmath.Clamp(x, -1, 1), Y: vmath.Clamp(y, -1, 1)}
	s.revision++
}

// Enter moves from the hero into the environment. Other modes are left
// unchanged.
func (s *State) Enter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeHero {
		s.mode = ModeEnvironment
		s.revision++
	}
}

// Close dismisses a room overlay back to the environment.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeRoom {
		s.mode = ModeEnvironment
		s.revision++
	}
}

// Escape steps the mode back once: room to environment, environment to
// hero. The active room is kept.
func (s *State) Escape() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.mode {
	case ModeRoom:
		s.mode = ModeEnvironment
	case ModeEnvironment:
		s.mode = ModeHero
	default:
		return
	}
	s.revision++
}

// Reset returns to the entry room and the hero. Visited history is kept for
// the rest of the session.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = room.Entry
	s.mode = ModeHero
	s.revision++
}

// Home is Reset under the name the navigation UI uses.
func (s *State) Home() {
	s.Reset()
}

// ActiveRoom returns the current room.
func (s *State) ActiveRoom() room.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Snapshot copies the current state. Visited rooms are listed in registry
// order.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	visited := make([]room.ID, 0, len(s.visited))
	for _, id := range room.All() {
		if _, ok := s.visited[id]; ok {
			visited = append(visited, id)
		}
	}
	return Snapshot{
		ActiveRoom:     s.active,
		Visited:        visited,
		ScrollProgress: s.scroll,
		Pointer:        s.pointer,
		Mode:           s.mode,
		Revision:       s.revision,
	}
}
