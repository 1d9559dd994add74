package animate

import (
	"math"
	"testing"

	"github.com/atelierfolio/atelier/internal/scene/mood"
	"github.com/atelierfolio/atelier/internal/scene/navigation"
	"github.com/atelierfolio/atelier/internal/scene/room"
	"github.com/atelierfolio/atelier/internal/scene/vmath"
)

func frameFor(id room.ID, elapsed, scroll float64) Frame {
	return Frame{
		Elapsed: elapsed,
		DT:      1.0 / 60,
		Mood:    mood.FromProfile(room.ProfileFor(id)),
		Scroll:  scroll,
	}
}

func TestFalloff(t *testing.T) {
	if got := Falloff(30, 30, 0.8); got != 0 {
		t.Fatalf("Falloff at max = %v, want 0", got)
	}
	if got := Falloff(45, 30, 0.8); got != 0 {
		t.Fatalf("Falloff past max = %v, want 0", got)
	}
	if got := Falloff(0, 30, 0.8); got != 0.8 {
		t.Fatalf("Falloff at 0 = %v, want 0.8", got)
	}
	if got := Falloff(15, 30, 1); got != 0.25 {
		t.Fatalf("Falloff at half = %v, want 0.25", got)
	}
	if got := Falloff(0, 0, 0.6); got != 0.6 {
		t.Fatalf("Falloff at 0 with no range = %v, want 0.6", got)
	}
	if got := Falloff(1, 0, 0.6); got != 0 {
		t.Fatalf("Falloff with no range = %v, want 0", got)
	}
}

func TestPan(t *testing.T) {
	tests := []struct {
		dx   float64
		want float64
	}{
		{dx: 0, want: 0},
		{dx: 7.5, want: 0.5},
		{dx: 40, want: 1},
		{dx: -40, want: -1},
	}
	for _, tc := range tests {
		if got := Pan(tc.dx, DefaultMaxPan); got != tc.want {
			t.Fatalf("Pan(%v) = %v, want %v", tc.dx, got, tc.want)
		}
	}
}

func TestSpatialMixerSilentUntilEnabled(t *testing.T) {
	m := NewSpatialMixer()
	m.Tick(frameFor(room.Hero, 1, 0))
	for _, s := range m.Sources {
		if s.Volume != 0 {
			t.Fatalf("source %s volume = %v while disabled", s.ID, s.Volume)
		}
	}

	m.SetEnabled(true)
	m.Tick(frameFor(room.Hero, 1, 0))
	main := m.Sources[0]
	if main.ID != "ambient-main" {
		t.Fatalf("first source = %q, want ambient-main", main.ID)
	}
	want := 0.2 * DefaultMasterVolume
	if math.Abs(main.Volume-want) > 1e-12 {
		t.Fatalf("ambient-main volume = %v, want %v", main.Volume, want)
	}
	if got := len(m.Sources); got != 1+len(room.Order()) {
		t.Fatalf("sources = %d, want %d", got, 1+len(room.Order()))
	}
}

func TestListenerFollowsScroll(t *testing.T) {
	got := ListenerFor(Frame{Scroll: 1, Pointer: navigation.Pointer{X: 1, Y: -1}})
	want := vmath.Vec3{X: 5, Y: 7, Z: -40}
	if got != want {
		t.Fatalf("listener = %+v, want %+v", got, want)
	}
}

func TestParticleFieldDeterministic(t *testing.T) {
	a := NewParticleField(64, DefaultParticleSpread, 7)
	b := NewParticleField(64, DefaultParticleSpread, 7)
	for i := 0; i < 64; i++ {
		ax, ay, az := a.Origin(i)
		bx, by, bz := b.Origin(i)
		if ax != bx || ay != by || az != bz {
			t.Fatalf("particle %d differs between identical seeds", i)
		}
		if d := math.Sqrt(float64(ax*ax + ay*ay + az*az)); d > DefaultParticleSpread+1e-3 {
			t.Fatalf("particle %d at distance %v outside spread", i, d)
		}
	}
}

func TestParticleFieldActiveFollowsMood(t *testing.T) {
	f := NewParticleField(BaseParticleCount, DefaultParticleSpread, 1)
	f.Tick(frameFor(room.Process, 0, 0))
	if got, want := f.Active(), 1500; got != want {
		t.Fatalf("active = %d, want %d", got, want)
	}

	small := NewParticleField(100, DefaultParticleSpread, 1)
	small.Tick(frameFor(room.Garden, 0, 0))
	if got := small.Active(); got != 100 {
		t.Fatalf("active = %d, want capped at capacity 100", got)
	}
}

func TestParticleFieldScrollSinks(t *testing.T) {
	f := NewParticleField(16, DefaultParticleSpread, 3)
	f.Tick(frameFor(room.Hero, 2, 0))
	before := f.Positions[1]
	f.Tick(frameFor(room.Hero, 2, 1))
	if diff := before - f.Positions[1]; math.Abs(float64(diff)-5) > 1e-4 {
		t.Fatalf("scroll sink = %v, want 5", diff)
	}
}

func TestFloatingGeometryBobsWithinBounds(t *testing.T) {
	g := NewFloatingGeometry(11)
	if len(g.Shapes) != FloatingShapeCount {
		t.Fatalf("shapes = %d, want %d", len(g.Shapes), FloatingShapeCount)
	}
	for step := range 120 {
		g.Tick(frameFor(room.Hero, float64(step)/10, 0.5))
		for i, s := range g.Shapes {
			if math.Abs(s.Position.Y-s.Home.Y) > 0.5+1e-9 {
				t.Fatalf("shape %d bobbed %v from home", i, s.Position.Y-s.Home.Y)
			}
			r := math.Hypot(s.Home.X, s.Home.Z)
			if r < 8-1e-9 || r > 12+1e-9 {
				t.Fatalf("shape %d ring radius = %v, want [8,12]", i, r)
			}
		}
	}
	if g.GroupY != -2.5 {
		t.Fatalf("group y = %v, want -2.5", g.GroupY)
	}
}

func TestConnectionGraphEdges(t *testing.T) {
	g := NewConnectionGraph(5)
	if len(g.Nodes) != GraphNodeCount {
		t.Fatalf("nodes = %d, want %d", len(g.Nodes), GraphNodeCount)
	}
	for i, n := range g.Nodes {
		if len(n.Edges) < 2 || len(n.Edges) > 4 {
			t.Fatalf("node %d has %d edges, want 2..4", i, len(n.Edges))
		}
		seen := map[int]bool{}
		for _, e := range n.Edges {
			if e == i {
				t.Fatalf("node %d links to itself", i)
			}
			if seen[e] {
				t.Fatalf("node %d links to %d twice", i, e)
			}
			seen[e] = true
		}
	}
	g.Tick(frameFor(room.Hero, 1, 1))
	if g.GroupScale != 1.5 {
		t.Fatalf("group scale = %v, want 1.5", g.GroupScale)
	}
	for i, n := range g.Nodes {
		if n.Size < n.Scale*0.8-1e-9 || n.Size > n.Scale*1.2+1e-9 {
			t.Fatalf("node %d size %v outside pulse range", i, n.Size)
		}
	}
	if got := len(g.Segments()) % 6; got != 0 {
		t.Fatalf("segments not in pairs of points")
	}
}

type countingAnimator struct{ ticks int }

func (c *countingAnimator) Tick(Frame) { c.ticks++ }

func TestPipelineSkipsNil(t *testing.T) {
	c := &countingAnimator{}
	p := NewPipeline(c, nil, NewConnectionGraph(1))
	if p.Len() != 2 {
		t.Fatalf("pipeline len = %d, want 2", p.Len())
	}
	p.Tick(frameFor(room.Hero, 0, 0))
	p.Tick(frameFor(room.Hero, 0, 0))
	if c.ticks != 2 {
		t.Fatalf("ticks = %d, want 2", c.ticks)
	}
}

func TestQualityFor(t *testing.T) {
	tests := []struct {
		name       string
		capability Capability
		want       Tier
		n          int
	}{
		{name: "mobile", capability: Capability{Mobile: true, MemoryGB: 8}, want: TierLow, n: 1000},
		{name: "low memory", capability: Capability{MemoryGB: 4}, want: TierLow, n: 1000},
		{name: "high memory", capability: Capability{MemoryGB: 16}, want: TierHigh, n: 5000},
		{name: "gpu", capability: Capability{HighEndGPU: true}, want: TierHigh, n: 5000},
		{name: "unknown", capability: Capability{}, want: TierMedium, n: 3000},
		{name: "slow network", capability: Capability{Connection: "2g"}, want: TierLow, n: 1000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := QualityFor(tc.capability)
			if q.Tier != tc.want || q.ParticleCount != tc.n {
				t.Fatalf("QualityFor = %+v, want tier %q with %d particles", q, tc.want, tc.n)
			}
		})
	}
}
