// Package mood turns navigation state into the per-frame rendering
// parameters every animator reads.
package mood

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/atelierfolio/atelier/internal/scene/room"
	"github.com/atelierfolio/atelier/internal/scene/vmath"
)

// DefaultSmoothing is the fraction of the remaining distance covered per tick.
const DefaultSmoothing = 0.05

// Source selects which navigation field drives the mood.
type Source string

const (
	// SourceRoom targets the active room's profile.
	SourceRoom Source = "room"
	// SourceScroll blends room profiles by scroll progress.
	SourceScroll Source = "scroll"
)

// ParseSource maps a wire value to a Source.
func ParseSource(v string) (Source, bool) {
	switch Source(v) {
	case SourceRoom, SourceScroll:
		return Source(v), true
	default:
		return "", false
	}
}

// Params is the rendering parameter bundle for one frame.
type Params struct {
	Color             colorful.Color
	LightIntensity    float64
	ParticleIntensity float64
	SoundFreq         float64
	CameraTarget      vmath.Vec3
}

// ParticleCount scales base by the particle intensity.
func (p Params) ParticleCount(base int) int {
	if base <= 0 || p.ParticleIntensity <= 0 {
		return 0
	}
	return int(math.Floor(float64(base) * p.ParticleIntensity))
}

// FromProfile builds the parameters a room settles into.
func FromProfile(p room.Profile) Params {
	var target vmath.Vec3
	if placement, ok := room.PlacementFor(p.ID); ok {
		target = placement.Position
	}
	return Params{
		Color:             p.Color,
		LightIntensity:    p.LightIntensity,
		ParticleIntensity: p.ParticleIntensity,
		SoundFreq:         p.SoundFreq,
		CameraTarget:      target,
	}
}

// lerp moves every numeric field of a toward b by t.
func lerp(a, b Params, t float64) Params {
	return Params{
		Color: colorful.Color{
			R: vmath.Lerp(a.Color.R, b.Color.R, t),
			G: vmath.Lerp(a.Color.G, b.Color.G, t),
			B: vmath.Lerp(a.Color.B, b.Color.B, t),
		},
		LightIntensity:    vmath.Lerp(a.LightIntensity, b.LightIntensity, t),
		ParticleIntensity: vmath.Lerp(a.ParticleIntensity, b.ParticleIntensity, t),
		SoundFreq:         vmath.Lerp(a.SoundFreq, b.SoundFreq, t),
		CameraTarget:      vmath.LerpVec3(a.CameraTarget, b.CameraTarget, t),
	}
}

// ScrollTarget blends the profiles of room.Order by progress. Keyframes are
// evenly spaced over [0, 1]; the camera follows the scroll path.
func ScrollTarget(progress float64) Params {
	progress = vmath.Clamp01(progress)
	order := room.Order()
	pos := progress * float64(len(order)-1)
	i := int(math.Floor(pos))

	var blended Params
	if i >= len(order)-1 {
		blended = FromProfile(room.ProfileFor(order[len(order)-1]))
	} else {
		frac := pos - float64(i)
		blended = lerp(FromProfile(room.ProfileFor(order[i])), FromProfile(room.ProfileFor(order[i+1])), frac)
	}
	blended.CameraTarget = vmath.Vec3{X: 0, Y: progress * 10, Z: -40 * progress}
	return blended
}
