package animate

import (
	"math"
	"math/rand"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/atelierfolio/atelier/internal/scene/navigation"
	"github.com/atelierfolio/atelier/internal/scene/vmath"
)

const (
	// InteractionHistory is how many pointer samples steer the palette.
	InteractionHistory = 100
	// EvolutionStep is how far one Evolve call advances the evolution factor.
	EvolutionStep = 0.001
	// MaxEvolution caps the evolution factor.
	MaxEvolution = 1.0

	walkStep     = 0.01
	flowSpeedMin = 0.1
	flowSpeedMax = 2.0
)

// paramRange is the span a generated parameter is drawn from and, for the
// walked parameters, held within.
type paramRange struct{ min, max float64 }

func (r paramRange) draw(rng *rand.Rand) float64 { return r.min + rng.Float64()*(r.max-r.min) }

func (r paramRange) clamp(v float64) float64 { return vmath.Clamp(v, r.min, r.max) }

var (
	noiseScaleRange         = paramRange{0.5, 2.0}
	flowSpeedRange          = paramRange{0.3, 1.0}
	particleDensityRange    = paramRange{0.7, 1.3}
	geometryComplexityRange = paramRange{0.5, 1.0}
	connectionDensityRange  = paramRange{0.4, 1.0}
	pulseRateRange          = paramRange{0.5, 1.5}
	spiralIntensityRange    = paramRange{0.3, 1.0}
	waveAmplitudeRange      = paramRange{0.5, 1.0}
)

// GenerativeParams is the per-session parameter set behind the generative
// background. ColorShift is a hue offset in degrees.
type GenerativeParams struct {
	Seed               int64   `json:"seed"`
	ColorShift         float64 `json:"colorShift"`
	NoiseScale         float64 `json:"noiseScale"`
	FlowSpeed          float64 `json:"flowSpeed"`
	ParticleDensity    float64 `json:"particleDensity"`
	GeometryComplexity float64 `json:"geometryComplexity"`
	ConnectionDensity  float64 `json:"connectionDensity"`
	PulseRate          float64 `json:"pulseRate"`
	SpiralIntensity    float64 `json:"spiralIntensity"`
	WaveAmplitude      float64 `json:"waveAmplitude"`
}

// Interaction is one pointer sample in screen space, both axes in [0, 1].
type Interaction struct {
	X, Y float64
}

// Generative holds one session's generative parameters. Pointer samples
// drift the palette and flow, and every frame walks the pulse, spiral and
// wave parameters a little. Methods are safe for concurrent use.
type Generative struct {
	mu        sync.Mutex
	rng       *rand.Rand
	params    GenerativeParams
	history   []Interaction
	next      int
	evolution float64
}

// NewGenerative derives a parameter set from seed.
func NewGenerative(seed int64) *Generative {
	rng := rand.New(rand.NewSource(seed))
	return &Generative{
		rng: rng,
		params: GenerativeParams{
			Seed:               seed,
			ColorShift:         rng.Float64() * 360,
			NoiseScale:         noiseScaleRange.draw(rng),
			FlowSpeed:          flowSpeedRange.draw(rng),
			ParticleDensity:    particleDensityRange.draw(rng),
			GeometryComplexity: geometryComplexityRange.draw(rng),
			ConnectionDensity:  connectionDensityRange.draw(rng),
			PulseRate:          pulseRateRange.draw(rng),
			SpiralIntensity:    spiralIntensityRange.draw(rng),
			WaveAmplitude:      waveAmplitudeRange.draw(rng),
		},
		history: make([]Interaction, 0, InteractionHistory),
	}
}

// AddInteraction records a pointer sample, keeping the last
// InteractionHistory, and shifts the hue by the mean x and the flow speed by
// the mean y. Coordinates are clamped to [0, 1].
func (g *Generative) AddInteraction(x, y float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sample := Interaction{X: vmath.Clamp(x, 0, 1), Y: vmath.Clamp(y, 0, 1)}
	if len(g.history) < InteractionHistory {
		g.history = append(g.history, sample)
	} else {
		g.history[g.next] = sample
		g.next = (g.next + 1) % InteractionHistory
	}

	var sumX, sumY float64
	for _, s := range g.history {
		sumX += s.X
		sumY += s.Y
	}
	n := float64(len(g.history))
	g.params.ColorShift = wrapHue(g.params.ColorShift + (sumX/n-0.5)*2)
	g.params.FlowSpeed = vmath.Clamp(g.params.FlowSpeed+(sumY/n-0.5)*0.1, flowSpeedMin, flowSpeedMax)
}

// AddPointer records a normalized scene pointer (both axes in [-1, 1]).
func (g *Generative) AddPointer(p navigation.Pointer) {
	g.AddInteraction((p.X+1)/2, (1-p.Y)/2)
}

// Evolve advances the evolution factor by EvolutionStep up to MaxEvolution
// and takes one bounded random step on the walked parameters.
func (g *Generative) Evolve() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.evolution = math.Min(g.evolution+EvolutionStep, MaxEvolution)
	g.params.PulseRate = pulseRateRange.clamp(g.params.PulseRate + (g.rng.Float64()-0.5)*walkStep)
	g.params.SpiralIntensity = spiralIntensityRange.clamp(g.params.SpiralIntensity + (g.rng.Float64()-0.5)*walkStep)
	g.params.WaveAmplitude = waveAmplitudeRange.clamp(g.params.WaveAmplitude + (g.rng.Float64()-0.5)*walkStep)
}

// Tick evolves once per frame.
func (g *Generative) Tick(Frame) {
	g.Evolve()
}

// Params returns a copy of the current parameters.
func (g *Generative) Params() GenerativeParams {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.params
}

// Evolution reports the evolution factor in [0, MaxEvolution].
func (g *Generative) Evolution() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.evolution
}

// Interactions returns the recorded samples, oldest first.
func (g *Generative) Interactions() []Interaction {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Interaction, 0, len(g.history))
	if len(g.history) == InteractionHistory {
		out = append(out, g.history[g.next:]...)
		return append(out, g.history[:g.next]...)
	}
	return append(out, g.history...)
}

// PersonalizedColor is baseHue rotated by the session's hue shift, as a
// pale, low-saturation tint.
func (g *Generative) PersonalizedColor(baseHue float64) colorful.Color {
	g.mu.Lock()
	shift := g.params.ColorShift
	g.mu.Unlock()
	return colorful.Hsl(wrapHue(baseHue+shift), 0.1, 0.9)
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
