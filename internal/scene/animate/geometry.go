package animate

import (
	"math"
	"math/rand"

	"github.com/atelierfolio/atelier/internal/scene/vmath"
)

// ShapeKind is the mesh a floating shape uses.
type ShapeKind string

const (
	ShapeBox         ShapeKind = "box"
	ShapeOctahedron  ShapeKind = "octahedron"
	ShapeTetrahedron ShapeKind = "tetrahedron"
	ShapeTorus       ShapeKind = "torus"
)

var shapeKinds = []ShapeKind{ShapeBox, ShapeOctahedron, ShapeTetrahedron, ShapeTorus}

// FloatingShapeCount is the number of shapes orbiting the scene.
const FloatingShapeCount = 8

// Shape is one floating mesh. Home, Speed and Phase are fixed at seed time;
// Position and Rotation are rewritten every tick.
type Shape struct {
	Kind     ShapeKind
	Home     vmath.Vec3
	Scale    float64
	Speed    float64
	Phase    float64
	Position vmath.Vec3
	Rotation vmath.Vec3
}

// FloatingGeometry bobs a ring of shapes around the scene.
type FloatingGeometry struct {
	Shapes    []Shape
	GroupY    float64
	GroupRotY float64
}

// NewFloatingGeometry lays FloatingShapeCount shapes on a ring of radius
// 8 to 12.
func NewFloatingGeometry(seed int64) *FloatingGeometry {
	rng := rand.New(rand.NewSource(seed))
	g := &FloatingGeometry{Shapes: make([]Shape, FloatingShapeCount)}
	for i := range g.Shapes {
		angle := float64(i)/FloatingShapeCount*math.Pi*2 + rng.Float64()*0.5
		radius := 8 + rng.Float64()*4
		home := vmath.Vec3{
			X: math.Cos(angle) * radius,
			Y: (rng.Float64() - 0.5) * 8,
			Z: math.Sin(angle) * radius,
		}
		g.Shapes[i] = Shape{
			Kind:     shapeKinds[rng.Intn(len(shapeKinds))],
			Home:     home,
			Scale:    0.3 + rng.Float64()*0.5,
			Speed:    0.2 + rng.Float64()*0.3,
			Phase:    rng.Float64() * math.Pi * 2,
			Position: home,
			Rotation: vmath.Vec3{
				X: rng.Float64() * math.Pi,
				Y: rng.Float64() * math.Pi,
				Z: rng.Float64() * math.Pi,
			},
		}
	}
	return g
}

// Tick bobs each shape around its home, nudges it toward the pointer and
// sinks the whole group with scroll.
func (g *FloatingGeometry) Tick(fr Frame) {
	g.GroupRotY = fr.Elapsed * 0.02
	g.GroupY = -fr.Scroll * 5
	pointer := vmath.Vec3{X: fr.Pointer.X * 0.05, Y: fr.Pointer.Y * 0.03}
	for i := range g.Shapes {
		s := &g.Shapes[i]
		s.Rotation.X += s.Speed * 0.01
		s.Rotation.Y += s.Speed * 0.015
		s.Position = vmath.Add(vmath.Vec3{
			X: s.Home.X,
			Y: s.Home.Y + math.Sin(fr.Elapsed*s.Speed+s.Phase)*0.5,
			Z: s.Home.Z,
		}, pointer)
	}
}
