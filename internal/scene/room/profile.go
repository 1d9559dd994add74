package room

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Profile is the mood a room pushes onto the scene.
type Profile struct {
	ID                ID
	Label             string
	Color             colorful.Color
	LightIntensity    float64
	ParticleIntensity float64
	// SoundFreq is the chime pitch in Hz played on arrival.
	SoundFreq float64
}

var (
	colorCharcoal = mustHex("#1A1A1A")
	colorSignal   = mustHex("#4A9EFF")
	colorPortals  = mustHex("#2ECC71")
	colorJourney  = mustHex("#E74C3C")
	colorGarden   = mustHex("#9B59B6")
	colorPractice = mustHex("#F39C12")
	colorConnect  = mustHex("#1ABC9C")
	colorProcess  = mustHex("#E8E8E8")
	colorCases    = mustHex("#95A5A6")
	colorRooms    = mustHex("#3498DB")
)

// ProfileFor returns the mood profile of id. Unknown ids get the entry
// profile.
func ProfileFor(id ID) Profile {
	switch id {
	case Hero:
		return Profile{ID: Hero, Label: "Entry", Color: colorCharcoal, LightIntensity: 1.0, ParticleIntensity: 1.0, SoundFreq: 440}
	case Statement:
		return Profile{ID: Statement, Label: "Signal", Color: colorSignal, LightIntensity: 0.9, ParticleIntensity: 0.8, SoundFreq: 460}
	case Portals:
		return Profile{ID: Portals, Label: "Portals", Color: colorPortals, LightIntensity: 0.7, ParticleIntensity: 0.6, SoundFreq: 480}
	case Journey:
		return Profile{ID: Journey, Label: "Journey", Color: colorJourney, LightIntensity: 0.8, ParticleIntensity: 0.9, SoundFreq: 500}
	case Garden:
		return Profile{ID: Garden, Label: "Garden", Color: colorGarden, LightIntensity: 1.0, ParticleIntensity: 1.0, SoundFreq: 520}
	case Practices:
		return Profile{ID: Practices, Label: "Practices", Color: colorPractice, LightIntensity: 0.85, ParticleIntensity: 0.7, SoundFreq: 540}
	case Connections:
		return Profile{ID: Connections, Label: "Connections", Color: colorConnect, LightIntensity: 0.9, ParticleIntensity: 0.8, SoundFreq: 560}
	case Process:
		return Profile{ID: Process, Label: "Process", Color: colorProcess, LightIntensity: 1.1, ParticleIntensity: 0.5, SoundFreq: 580}
	case Cases:
		return Profile{ID: Cases, Label: "Cases", Color: colorCases, LightIntensity: 0.8, ParticleIntensity: 0.7, SoundFreq: 600}
	case Rooms:
		return Profile{ID: Rooms, Label: "Rooms", Color: colorRooms, LightIntensity: 0.9, ParticleIntensity: 0.9, SoundFreq: 620}
	case Footer:
		return Profile{ID: Footer, Label: "Close", Color: colorCharcoal, LightIntensity: 0.6, ParticleIntensity: 0.5, SoundFreq: 640}
	default:
		return ProfileFor(Entry)
	}
}

// mustHex parses a palette literal; a bad literal is a programming error.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("room palette %q: %v", s, err))
	}
	return c
}
