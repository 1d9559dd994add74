package animate

import (
	"math/rand"

	"github.com/chewxy/math32"
)

const (
	// DefaultParticleSpread is the radius particles are seeded within.
	DefaultParticleSpread = 15
	// BaseParticleCount is the particle budget at intensity 1.
	BaseParticleCount = 3000
)

// ParticleField drifts a point cloud around its seeded origin. Positions is
// laid out as x,y,z triples ready for a vertex buffer.
type ParticleField struct {
	origin     []float32
	velocity   []float32
	Positions  []float32
	RotationX  float32
	RotationY  float32
	capacity   int
	activeSize int
}

// NewParticleField seeds count particles uniformly inside a sphere of radius
// spread. The same seed always yields the same field.
func NewParticleField(count int, spread float32, seed int64) *ParticleField {
	if count < 0 {
		count = 0
	}
	rng := rand.New(rand.NewSource(seed))
	f := &ParticleField{
		origin:     make([]float32, count*3),
		velocity:   make([]float32, count*3),
		Positions:  make([]float32, count*3),
		capacity:   count,
		activeSize: count,
	}
	for i := 0; i < count; i++ {
		i3 := i * 3
		radius := rng.Float32() * spread
		theta := rng.Float32() * math32.Pi * 2
		phi := math32.Acos(2*rng.Float32() - 1)
		f.origin[i3] = radius * math32.Sin(phi) * math32.Cos(theta)
		f.origin[i3+1] = radius * math32.Sin(phi) * math32.Sin(theta)
		f.origin[i3+2] = radius * math32.Cos(phi)
	}
	for i := range f.velocity {
		f.velocity[i] = (rng.Float32() - 0.5) * 0.002
	}
	copy(f.Positions, f.origin)
	return f
}

// Tick moves every particle: a slow sine drift around its origin, a shift
// toward the pointer and a sink proportional to scroll. The mood's particle
// intensity decides how many particles are drawn.
func (f *ParticleField) Tick(fr Frame) {
	t := float32(fr.Elapsed)
	pointerX := float32(fr.Pointer.X) * 2
	pointerY := float32(fr.Pointer.Y) * 2
	sink := float32(fr.Scroll) * 5

	for i := 0; i < f.capacity; i++ {
		i3 := i * 3
		ox, oy, oz := f.origin[i3], f.origin[i3+1], f.origin[i3+2]
		f.Positions[i3] = ox + math32.Sin(t*0.3+ox*0.5)*0.3 + pointerX*0.5 + f.velocity[i3]*t
		f.Positions[i3+1] = oy + math32.Cos(t*0.2+oy*0.5)*0.3 + pointerY*0.5 - sink
		f.Positions[i3+2] = oz + math32.Sin(t*0.4+oz*0.5)*0.3
	}
	f.RotationY = t * 0.02
	f.RotationX = math32.Sin(t*0.1) * 0.1

	f.activeSize = min(fr.Mood.ParticleCount(BaseParticleCount), f.capacity)
}

// Active is the number of particles to draw this frame.
func (f *ParticleField) Active() int {
	return f.activeSize
}

// Capacity is the number of allocated particles.
func (f *ParticleField) Capacity() int {
	return f.capacity
}

// Origin returns the seeded position of particle i.
func (f *ParticleField) Origin(i int) (x, y, z float32) {
	i3 := i * 3
	return f.origin[i3], f.origin[i3+1], f.origin[i3+2]
}
