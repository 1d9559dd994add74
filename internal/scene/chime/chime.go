// Package chime synthesizes the short tone each room plays on entry and
// encodes it as WAV for browsers that fetch sounds instead of generating
// them.
package chime

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"

	"github.com/atelierfolio/atelier/internal/scene/animate"
	"github.com/atelierfolio/atelier/internal/scene/room"
	"github.com/atelierfolio/atelier/internal/scene/vmath"
)

const (
	// SampleRate is the rate chimes are rendered at.
	SampleRate = beep.SampleRate(22050)
	// Duration is the length of one chime.
	Duration = 600 * time.Millisecond
	// DecayTime is the exponential decay constant of the envelope.
	DecayTime = 150 * time.Millisecond

	overtoneGain    = 0.25
	fundamentalGain = 0.75
)

// Tone describes one chime render.
type Tone struct {
	Room room.ID
	// Listener, when set, attenuates and pans the chime as heard from this
	// position relative to the room's placement.
	Listener *vmath.Vec3
	// Volume scales the final output. Zero means full volume.
	Volume float64
}

// Gain is the output gain and stereo pan applied to a tone.
type Gain struct {
	Volume float64
	Pan    float64
}

// GainFor resolves volume and pan. Rooms outside the explorable layout are
// heard from the origin.
func GainFor(tone Tone) Gain {
	volume := tone.Volume
	if volume <= 0 {
		volume = 1
	}
	if tone.Listener == nil {
		return Gain{Volume: volume}
	}
	var source vmath.Vec3
	if p, ok := room.PlacementFor(tone.Room); ok {
		source = p.Position
	}
	distance := vmath.Distance(*tone.Listener, source)
	return Gain{
		Volume: animate.Falloff(distance, animate.DefaultMaxDistance, volume),
		Pan:    animate.Pan(source.X-tone.Listener.X, animate.DefaultMaxPan),
	}
}

// decay multiplies a stream by exp(-t/tau).
type decay struct {
	streamer beep.Streamer
	position int
	tau      float64
}

func newDecay(s beep.Streamer, tau time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, tau: float64(rate.N(tau))}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := math.Exp(-float64(d.position) / d.tau)
		samples[i][0] *= g
		samples[i][1] *= g
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales linearly; math.Log2(0) is -Inf so zero becomes silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Streamer builds the chime for tone: the room's tone plus an octave
// overtone, decaying exponentially.
func Streamer(tone Tone) (beep.Streamer, error) {
	if !tone.Room.Valid() {
		return nil, fmt.Errorf("unknown room %q", tone.Room)
	}
	freq := room.ProfileFor(tone.Room).SoundFreq

	fundamental, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("fundamental tone: %w", err)
	}
	overtone, err := generators.SineTone(SampleRate, freq*2)
	if err != nil {
		return nil, fmt.Errorf("overtone: %w", err)
	}

	mixed := beep.Mix(
		newVolume(fundamental, fundamentalGain),
		newVolume(overtone, overtoneGain),
	)
	shaped := newDecay(beep.Take(SampleRate.N(Duration), mixed), DecayTime, SampleRate)

	gain := GainFor(tone)
	return &effects.Pan{Streamer: newVolume(shaped, gain.Volume), Pan: gain.Pan}, nil
}

// Format is the WAV format chimes are encoded with.
var Format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// EncodeWAV renders tone into w.
func EncodeWAV(w io.WriteSeeker, tone Tone) error {
	s, err := Streamer(tone)
	if err != nil {
		return err
	}
	if err := wav.Encode(w, s, Format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}

// Render returns the WAV bytes for tone.
func Render(tone Tone) ([]byte, error) {
	buf := &Buffer{}
	if err := EncodeWAV(buf, tone); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Buffer is an in-memory io.WriteSeeker. The WAV encoder seeks back to patch
// chunk sizes once the stream length is known.
type Buffer struct {
	data []byte
	pos  int
}

// Write writes p at the current position, growing the buffer as needed.
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.data) {
		if end > cap(b.data) {
			grown := make([]byte, end, 2*end)
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:end]
		}
	}
	copy(b.data[b.pos:end], p)
	b.pos = end
	return len(p), nil
}

// Seek moves the write position.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = int64(b.pos) + offset
	case io.SeekEnd:
		next = int64(len(b.data)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if next < 0 {
		return 0, errors.New("negative position")
	}
	b.pos = int(next)
	return next, nil
}

// Bytes returns the written contents.
func (b *Buffer) Bytes() []byte {
	return b.data
}
