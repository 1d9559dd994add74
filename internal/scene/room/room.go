// Package room is the static registry of explorable rooms: their mood
// profiles, spatial placement, display metadata and link structure.
//
// The room set is closed. Every lookup in this package is a switch over ID so
// adding a room without a profile, placement or metadata entry is caught by
// the registry tests rather than by a silent map miss at runtime.
package room

import "strings"

// ID identifies one room of the environment.
type ID string

const (
	Hero        ID = "hero"
	Statement   ID = "statement"
	Portals     ID = "portals"
	Journey     ID = "journey"
	Garden      ID = "garden"
	Practices   ID = "practices"
	Connections ID = "connections"
	Process     ID = "process"
	Cases       ID = "cases"
	Rooms       ID = "rooms"
	Footer      ID = "footer"
)

// Entry is the room a fresh session starts in and returns to on home.
const Entry = Hero

// All returns every room id in registry order.
func All() []ID {
	return []ID{Hero, Statement, Portals, Journey, Garden, Practices, Connections, Process, Cases, Rooms, Footer}
}

// Valid reports whether id names a registered room.
func (id ID) Valid() bool {
	switch id {
	case Hero, Statement, Portals, Journey, Garden, Practices, Connections, Process, Cases, Rooms, Footer:
		return true
	default:
		return false
	}
}

func (id ID) String() string {
	return string(id)
}

// Resolve maps free-form link text to a room id. It strips '#' and
// whitespace, ignores case and accepts the portfolio aliases.
func Resolve(link string) (ID, bool) {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case '#', ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(link)))

	switch normalized {
	case "portfolio", "work", "projects":
		return Cases, true
	}
	id := ID(normalized)
	if !id.Valid() {
		return "", false
	}
	return id, true
}
