package mood

import (
	"math"
	"sync"

	"github.com/atelierfolio/atelier/internal/scene/navigation"
	"github.com/atelierfolio/atelier/internal/scene/room"
	"github.com/atelierfolio/atelier/internal/scene/vmath"
)

// Driver eases the current parameters toward the navigation target once per
// tick. It keeps no queue: each tick reads the latest snapshot only.
type Driver struct {
	mu        sync.Mutex
	source    Source
	smoothing float64
	current   Params
}

// Option configures a Driver.
type Option func(*Driver)

// WithSmoothing overrides the per-tick smoothing factor. Values outside
// (0, 1] are ignored.
func WithSmoothing(k float64) Option {
	return func(d *Driver) {
		if k > 0 && k <= 1 {
			d.smoothing = k
		}
	}
}

// WithSource picks the driving navigation field.
func WithSource(source Source) Option {
	return func(d *Driver) {
		if _, ok := ParseSource(string(source)); ok {
			d.source = source
		}
	}
}

// NewDriver starts settled on the entry room profile.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		source:    SourceRoom,
		smoothing: DefaultSmoothing,
		current:   FromProfile(room.ProfileFor(room.Entry)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Source returns the active source.
func (d *Driver) Source() Source {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.source
}

// SetSource switches the driving field. The current parameters are kept so
// the switch eases like any other target change.
func (d *Driver) SetSource(source Source) bool {
	if _, ok := ParseSource(string(source)); !ok {
		return false
	}
	d.mu.Lock()
	d.source = source
	d.mu.Unlock()
	return true
}

// Target is the un-smoothed parameter set for snap.
func (d *Driver) Target(snap navigation.Snapshot) Params {
	d.mu.Lock()
	source := d.source
	d.mu.Unlock()
	return targetFor(source, snap)
}

func targetFor(source Source, snap navigation.Snapshot) Params {
	if source == SourceScroll {
		return ScrollTarget(snap.ScrollProgress)
	}
	return FromProfile(room.ProfileFor(snap.ActiveRoom))
}

// Tick advances the current parameters one step toward the target of snap
// and returns them.
func (d *Driver) Tick(snap navigation.Snapshot) Params {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = lerp(d.current, targetFor(d.source, snap), d.smoothing)
	return d.current
}

// Current returns the last computed parameters.
func (d *Driver) Current() Params {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Settled reports whether every field of the current parameters is within
// eps of the target for snap.
func (d *Driver) Settled(snap navigation.Snapshot, eps float64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return within(d.current, targetFor(d.source, snap), eps)
}

func within(a, b Params, eps float64) bool {
	near := func(x, y float64) bool { return math.Abs(x-y) <= eps }
	return near(a.Color.R, b.Color.R) &&
		near(a.Color.G, b.Color.G) &&
		near(a.Color.B, b.Color.B) &&
		near(a.LightIntensity, b.LightIntensity) &&
		near(a.ParticleIntensity, b.ParticleIntensity) &&
		near(a.SoundFreq, b.SoundFreq) &&
		vmath.Distance(a.CameraTarget, b.CameraTarget) <= eps
}
