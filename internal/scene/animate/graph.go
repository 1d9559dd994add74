package animate

import (
	"math"
	"math/rand"
	"slices"

	"github.com/atelierfolio/atelier/internal/scene/vmath"
)

// GraphNodeCount is the number of nodes in the connection graph.
const GraphNodeCount = 12

// Node is one vertex of the connection graph.
type Node struct {
	Home     vmath.Vec3
	Edges    []int
	Scale    float64
	Phase    float64
	Position vmath.Vec3
	// Size is Scale modulated by the pulse.
	Size float64
}

// ConnectionGraph is a small ring of pulsing, linked nodes.
type ConnectionGraph struct {
	Nodes      []Node
	GroupScale float64
	GroupY     float64
	GroupRot   vmath.Vec3
}

// NewConnectionGraph places GraphNodeCount nodes on a ring of radius 3 to 5
// and links each to 2..4 distinct other nodes.
func NewConnectionGraph(seed int64) *ConnectionGraph {
	rng := rand.New(rand.NewSource(seed))
	g := &ConnectionGraph{Nodes: make([]Node, GraphNodeCount), GroupScale: 1}
	for i := range g.Nodes {
		angle := float64(i) / GraphNodeCount * math.Pi * 2
		radius := 3 + rng.Float64()*2
		home := vmath.Vec3{
			X: math.Cos(angle) * radius,
			Y: (rng.Float64() - 0.5) * 4,
			Z: math.Sin(angle) * radius,
		}
		g.Nodes[i] = Node{
			Home:     home,
			Scale:    0.1 + rng.Float64()*0.15,
			Phase:    rng.Float64() * math.Pi * 2,
			Position: home,
		}
	}
	for i := range g.Nodes {
		want := 2 + rng.Intn(3)
		for len(g.Nodes[i].Edges) < want {
			target := rng.Intn(GraphNodeCount)
			if target == i || slices.Contains(g.Nodes[i].Edges, target) {
				continue
			}
			g.Nodes[i].Edges = append(g.Nodes[i].Edges, target)
		}
	}
	return g
}

// Segments returns the edge endpoints as x,y,z pairs using node homes.
func (g *ConnectionGraph) Segments() []float64 {
	var out []float64
	for _, n := range g.Nodes {
		for _, e := range n.Edges {
			t := g.Nodes[e].Home
			out = append(out, n.Home.X, n.Home.Y, n.Home.Z, t.X, t.Y, t.Z)
		}
	}
	return out
}

// Tick pulses and wobbles every node and turns the group with time and
// pointer. Scroll grows and lowers the group.
func (g *ConnectionGraph) Tick(fr Frame) {
	t := fr.Elapsed
	g.GroupRot = vmath.Vec3{
		X: math.Sin(t*0.2)*0.1 + fr.Pointer.Y*0.2,
		Y: t*0.05 + fr.Pointer.X*0.3,
	}
	g.GroupScale = 1 + fr.Scroll*0.5
	g.GroupY = -fr.Scroll * 3
	for i := range g.Nodes {
		n := &g.Nodes[i]
		n.Size = n.Scale * (1 + math.Sin(t*2+n.Phase)*0.2)
		n.Position = vmath.Vec3{
			X: n.Home.X + math.Sin(t+n.Phase)*0.1,
			Y: n.Home.Y + math.Cos(t*0.8+n.Phase)*0.1,
			Z: n.Home.Z + math.Sin(t*0.6+n.Phase)*0.1,
		}
	}
}
