// Package preview renders the scene in a terminal. It drives the same
// navigation state, mood driver and animators as the site and draws the
// particle field and floating shapes as tinted glyphs.
package preview

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/atelierfolio/atelier/internal/scene/animate"
	"github.com/atelierfolio/atelier/internal/scene/mood"
	"github.com/atelierfolio/atelier/internal/scene/navigation"
	"github.com/atelierfolio/atelier/internal/scene/room"
)

const (
	// scrollStep is how far one j/k press or wheel notch moves scroll
	// progress.
	scrollStep = 0.05
	// chromeRows is the room strip plus the status line.
	chromeRows = 2

	defaultSeed = 42
	defaultTick = 50 * time.Millisecond
)

// Options configures a Program.
type Options struct {
	Tick time.Duration
	Seed int64
	// Particles caps the particle field capacity.
	Particles int
}

// Program is one preview session bound to a screen.
type Program struct {
	screen     tcell.Screen
	tick       time.Duration
	nav        *navigation.State
	driver     *mood.Driver
	particles  *animate.ParticleField
	shapes     *animate.FloatingGeometry
	generative *animate.Generative
	pipeline   *animate.Pipeline

	// cursor indexes room.Order and marks the room Enter selects.
	cursor  int
	elapsed float64
	params  mood.Params
}

// New builds a program on screen. The screen must already be initialized.
func New(screen tcell.Screen, opts Options) *Program {
	if opts.Tick <= 0 {
		opts.Tick = defaultTick
	}
	if opts.Seed == 0 {
		opts.Seed = defaultSeed
	}
	if opts.Particles <= 0 {
		opts.Particles = animate.BaseParticleCount
	}
	particles := animate.NewParticleField(opts.Particles, animate.DefaultParticleSpread, opts.Seed)
	shapes := animate.NewFloatingGeometry(opts.Seed)
	generative := animate.NewGenerative(opts.Seed)
	driver := mood.NewDriver()
	return &Program{
		screen:     screen,
		tick:       opts.Tick,
		nav:        navigation.New(),
		driver:     driver,
		particles:  particles,
		shapes:     shapes,
		generative: generative,
		pipeline:   animate.NewPipeline(particles, shapes, generative),
		params:     driver.Current(),
	}
}

// Run polls input and redraws every tick until ctx ends or the user quits.
func (p *Program) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	last := time.Now()
	p.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !p.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			p.advance(now.Sub(last).Seconds())
			last = now
			p.draw()
		}
	}
}

// handleEvent applies one input event and reports whether the program
// should keep running.
func (p *Program) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return p.handleKey(ev)
	case *tcell.EventMouse:
		p.handleMouse(ev)
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

func (p *Program) handleKey(ev *tcell.EventKey) bool {
	order := room.Order()
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyRight, tcell.KeyDown:
		p.cursor = (p.cursor + 1) % len(order)
		p.followCursor()
	case tcell.KeyLeft, tcell.KeyUp:
		p.cursor = (p.cursor - 1 + len(order)) % len(order)
		p.followCursor()
	case tcell.KeyEnter:
		if p.nav.Snapshot().Mode == navigation.ModeHero {
			p.nav.Enter()
		} else {
			p.nav.SelectRoom(order[p.cursor])
		}
	case tcell.KeyEscape:
		p.nav.Escape()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'h':
			p.nav.Home()
			p.cursor = 0
		case 's':
			p.toggleSource()
		case 'j':
			p.scroll(scrollStep)
		case 'k':
			p.scroll(-scrollStep)
		}
	}
	return true
}

// followCursor selects the highlighted room once the visitor has left the
// hero.
func (p *Program) followCursor() {
	if p.nav.Snapshot().Mode == navigation.ModeHero {
		return
	}
	p.nav.SelectRoom(room.Order()[p.cursor])
}

func (p *Program) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelDown != 0:
		p.scroll(scrollStep)
	case buttons&tcell.WheelUp != 0:
		p.scroll(-scrollStep)
	default:
		w, h := p.screen.Size()
		x, y := ev.Position()
		if w > 1 && h > 1 {
			p.nav.SetPointer(float64(x)/float64(w-1)*2-1, 1-float64(y)/float64(h-1)*2)
			p.generative.AddPointer(p.nav.Snapshot().Pointer)
		}
	}
}

func (p *Program) scroll(delta float64) {
	p.nav.SetScrollProgress(p.nav.Snapshot().ScrollProgress + delta)
}

func (p *Program) toggleSource() {
	if p.driver.Source() == mood.SourceRoom {
		p.driver.SetSource(mood.SourceScroll)
		return
	}
	p.driver.SetSource(mood.SourceRoom)
}

// advance eases the mood one step and ticks every animator with dt seconds.
func (p *Program) advance(dt float64) {
	snap := p.nav.Snapshot()
	p.params = p.driver.Tick(snap)
	p.elapsed += dt
	p.pipeline.Tick(animate.Frame{
		Elapsed: p.elapsed,
		DT:      dt,
		Mood:    p.params,
		Pointer: snap.Pointer,
		Scroll:  snap.ScrollProgress,
	})
}

func (p *Program) draw() {
	p.screen.Clear()
	w, h := p.screen.Size()
	sceneRows := h - chromeRows
	if w <= 0 || sceneRows <= 0 {
		p.screen.Show()
		return
	}

	view := viewport{width: w, height: sceneRows, spread: animate.DefaultParticleSpread}
	rotY := float64(p.particles.RotationY)
	for i := 0; i < p.particles.Active(); i++ {
		i3 := i * 3
		x := float64(p.particles.Positions[i3])
		y := float64(p.particles.Positions[i3+1])
		z := float64(p.particles.Positions[i3+2])
		col, row, depth, ok := view.project(x, y, z, rotY)
		if !ok {
			continue
		}
		p.screen.SetContent(col, row, particleGlyph(depth), nil, p.tint(depth))
	}

	hue, _, _ := p.params.Color.Clamped().Hsl()
	shapeStyle := colorStyle(p.generative.PersonalizedColor(hue), 1).Bold(true)
	for _, shape := range p.shapes.Shapes {
		col, row, _, ok := view.project(shape.Position.X, shape.Position.Y+p.shapes.GroupY, shape.Position.Z, p.shapes.GroupRotY)
		if !ok {
			continue
		}
		p.screen.SetContent(col, row, shapeGlyph(shape.Kind), nil, shapeStyle)
	}

	snap := p.nav.Snapshot()
	p.drawRoomStrip(snap, sceneRows, w)
	p.drawText(0, sceneRows+1, w, statusLine(snap, p.driver.Source(), p.params, p.generative.Evolution()), tcell.StyleDefault.Reverse(true))
	p.screen.Show()
}

// tint scales the mood color by depth and light intensity.
func (p *Program) tint(depth float64) tcell.Style {
	return colorStyle(p.params.Color, math.Min(1, depth*(0.4+p.params.LightIntensity)))
}

// colorStyle is a foreground style of c scaled by k.
func colorStyle(c colorful.Color, k float64) tcell.Style {
	c = c.Clamped()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(channel(c.R*k), channel(c.G*k), channel(c.B*k)))
}

func channel(v float64) int32 {
	return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func (p *Program) drawRoomStrip(snap navigation.Snapshot, row, width int) {
	col := 0
	for i, id := range room.Order() {
		label := " " + room.MetadataFor(id).Label + " "
		style := tcell.StyleDefault
		if snap.HasVisited(id) {
			style = style.Bold(true)
		}
		if i == p.cursor {
			style = style.Underline(true)
		}
		if id == snap.ActiveRoom && snap.Mode == navigation.ModeRoom {
			style = style.Reverse(true)
		}
		col = p.drawText(col, row, width, label, style)
		if col >= width {
			return
		}
	}
}

// drawText writes s from col and returns the column after it.
func (p *Program) drawText(col, row, width int, s string, style tcell.Style) int {
	for _, r := range s {
		if col >= width {
			break
		}
		p.screen.SetContent(col, row, r, nil, style)
		col++
	}
	return col
}

func statusLine(snap navigation.Snapshot, source mood.Source, params mood.Params, evolution float64) string {
	return fmt.Sprintf("mode=%s room=%s visited=%d/%d source=%s scroll=%.2f light=%.2f particles=%.2f color=%s evolution=%.3f",
		snap.Mode, snap.ActiveRoom, len(snap.Visited), len(room.All()), source,
		snap.ScrollProgress, params.LightIntensity, params.ParticleIntensity, params.Color.Clamped().Hex(), evolution)
}

func particleGlyph(depth float64) rune {
	switch {
	case depth > 0.75:
		return '*'
	case depth > 0.4:
		return '+'
	default:
		return '.'
	}
}

func shapeGlyph(kind animate.ShapeKind) rune {
	switch kind {
	case animate.ShapeBox:
		return '#'
	case animate.ShapeOctahedron:
		return '<'
	case animate.ShapeTetrahedron:
		return '^'
	default:
		return 'o'
	}
}
