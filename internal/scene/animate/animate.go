// Package animate holds the procedural animators that run once per frame.
//
// Every animator reads the same Frame and writes only into buffers it owns,
// so they can run in any order and are testable without a render context.
package animate

import (
	"github.com/atelierfolio/atelier/internal/scene/mood"
	"github.com/atelierfolio/atelier/internal/scene/navigation"
)

// Frame is the input shared by all animators for one tick.
type Frame struct {
	// Elapsed is seconds since the scene started.
	Elapsed float64
	// DT is seconds since the previous frame.
	DT      float64
	Mood    mood.Params
	Pointer navigation.Pointer
	Scroll  float64
}

// Animator advances its own pre-allocated outputs for one frame.
type Animator interface {
	Tick(Frame)
}

// Pipeline ticks a fixed list of animators.
type Pipeline struct {
	animators []Animator
}

// NewPipeline keeps the non-nil animators.
func NewPipeline(animators ...Animator) *Pipeline {
	p := &Pipeline{animators: make([]Animator, 0, len(animators))}
	for _, a := range animators {
		if a != nil {
			p.animators = append(p.animators, a)
		}
	}
	return p
}

// Tick runs every animator against f.
func (p *Pipeline) Tick(f Frame) {
	for _, a := range p.animators {
		a.Tick(f)
	}
}

// Len reports how many animators the pipeline runs.
func (p *Pipeline) Len() int {
	return len(p.animators)
}
