package animate

import (
	"github.com/atelierfolio/atelier/internal/scene/room"
	"github.com/atelierfolio/atelier/internal/scene/vmath"
)

const (
	// DefaultMaxDistance is where a source fades to silence.
	DefaultMaxDistance = 30
	// DefaultMaxPan is the horizontal offset that pans fully left or right.
	DefaultMaxPan = 15
	// DefaultMasterVolume matches the browser mixer's starting level.
	DefaultMasterVolume = 0.5
)

// Falloff attenuates base by the squared linear falloff of distance. It is
// base at distance 0, even with a non-positive maxDistance, and exactly 0
// from maxDistance on.
func Falloff(distance, maxDistance, base float64) float64 {
	if distance <= 0 {
		return base
	}
	if maxDistance <= 0 || distance >= maxDistance {
		return 0
	}
	f := 1 - distance/maxDistance
	return base * f * f
}

// Pan maps a horizontal offset to a stereo position in [-1, 1].
func Pan(dx, maxPan float64) float64 {
	if maxPan <= 0 {
		return 0
	}
	return vmath.Clamp(dx/maxPan, -1, 1)
}

// AudioSource is a positioned ambient sound.
type AudioSource struct {
	ID         string
	Position   vmath.Vec3
	BaseVolume float64
	// Volume and Pan are the mixer outputs for the current frame.
	Volume float64
	Pan    float64
}

// SpatialMixer places ambient sources around the listener. It stays silent
// until enabled; a rejected autoplay simply never enables it.
type SpatialMixer struct {
	Sources      []AudioSource
	Listener     vmath.Vec3
	MasterVolume float64
	MaxDistance  float64
	MaxPan       float64
	enabled      bool
}

// NewSpatialMixer builds a mixer with one ambient source at the origin and
// one per placed room.
func NewSpatialMixer() *SpatialMixer {
	m := &SpatialMixer{
		MasterVolume: DefaultMasterVolume,
		MaxDistance:  DefaultMaxDistance,
		MaxPan:       DefaultMaxPan,
	}
	m.Sources = append(m.Sources, AudioSource{ID: "ambient-main", BaseVolume: 0.2})
	for _, p := range room.Placements() {
		m.Sources = append(m.Sources, AudioSource{ID: "ambient-" + p.ID.String(), Position: p.Position, BaseVolume: 0.15})
	}
	return m
}

// SetEnabled turns output on or off.
func (m *SpatialMixer) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Enabled reports whether the mixer produces sound.
func (m *SpatialMixer) Enabled() bool {
	return m.enabled
}

// SetMasterVolume stores v clamped to [0, 1].
func (m *SpatialMixer) SetMasterVolume(v float64) {
	m.MasterVolume = vmath.Clamp01(v)
}

// ListenerFor is the listener path through the scene: the pointer sways it
// sideways and scroll carries it down and forward.
func ListenerFor(fr Frame) vmath.Vec3 {
	return vmath.Vec3{
		X: fr.Pointer.X * 5,
		Y: fr.Pointer.Y*3 + fr.Scroll*10,
		Z: fr.Scroll * -40,
	}
}

// Tick moves the listener and recomputes every source's volume and pan.
func (m *SpatialMixer) Tick(fr Frame) {
	m.Listener = ListenerFor(fr)
	for i := range m.Sources {
		s := &m.Sources[i]
		if !m.enabled {
			s.Volume, s.Pan = 0, 0
			continue
		}
		s.Volume = Falloff(vmath.Distance(s.Position, m.Listener), m.MaxDistance, s.BaseVolume) * m.MasterVolume
		s.Pan = Pan(s.Position.X-m.Listener.X, m.MaxPan)
	}
}
