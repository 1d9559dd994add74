package room

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/atelierfolio/atelier/internal/scene/vmath"
)

// Placement is where a room sits in the explorable environment.
type Placement struct {
	ID       ID
	Position vmath.Vec3
	Color    colorful.Color
}

// PlacementFor returns the layout of id. Rooms that are not part of the
// explorable environment (hero, rooms, footer) report ok=false.
func PlacementFor(id ID) (Placement, bool) {
	var pos vmath.Vec3
	switch id {
	case Statement:
		pos = vmath.Vec3{X: -3, Y: 0, Z: 3}
	case Portals:
		pos = vmath.Vec3{X: 3, Y: 0, Z: 3}
	case Journey:
		pos = vmath.Vec3{X: -3, Y: 0, Z: -3}
	case Garden:
		pos = vmath.Vec3{X: 3, Y: 0, Z: -3}
	case Practices:
		pos = vmath.Vec3{X: -5, Y: -2, Z: 0}
	case Connections:
		pos = vmath.Vec3{X: 5, Y: -2, Z: 0}
	case Process:
		pos = vmath.Vec3{X: 0, Y: 2, Z: -5}
	case Cases:
		pos = vmath.Vec3{X: -7, Y: -2, Z: -5}
	default:
		return Placement{}, false
	}
	return Placement{ID: id, Position: pos, Color: ProfileFor(id).Color}, true
}

// Placements returns the layout of every explorable room in navigation order.
func Placements() []Placement {
	order := Order()
	out := make([]Placement, 0, len(order))
	for _, id := range order {
		if p, ok := PlacementFor(id); ok {
			out = append(out, p)
		}
	}
	return out
}
