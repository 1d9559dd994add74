package room

// Description is the registry view of one room as served to clients.
type Description struct {
	ID                ID            `json:"id"`
	Label             string        `json:"label"`
	Description       string        `json:"description"`
	Emoji             string        `json:"emoji"`
	DisplayType       DisplayType   `json:"displayType"`
	ContentSource     ContentSource `json:"contentSource"`
	NotionPageKey     string        `json:"notionPageKey,omitempty"`
	Color             string        `json:"color"`
	LightIntensity    float64       `json:"lightIntensity"`
	ParticleIntensity float64       `json:"particleIntensity"`
	SoundFreq         float64       `json:"soundFreq"`
	// Position is nil for rooms outside the explorable layout.
	Position *[3]float64 `json:"position,omitempty"`
	Trail    []ID        `json:"trail"`
	Related  []ID        `json:"related"`
	Next     ID          `json:"next,omitempty"`
	Previous ID          `json:"previous,omitempty"`
}

// Describe collects everything the registry knows about id.
func Describe(id ID) (Description, bool) {
	if !id.Valid() {
		return Description{}, false
	}
	meta := MetadataFor(id)
	profile := ProfileFor(id)
	d := Description{
		ID:                id,
		Label:             meta.Label,
		Description:       meta.Description,
		Emoji:             meta.Emoji,
		DisplayType:       meta.DisplayType,
		ContentSource:     meta.ContentSource,
		NotionPageKey:     meta.NotionPageKey,
		Color:             profile.Color.Hex(),
		LightIntensity:    profile.LightIntensity,
		ParticleIntensity: profile.ParticleIntensity,
		SoundFreq:         profile.SoundFreq,
		Trail:             Trail(id),
		Related:           Related(id),
	}
	if d.Related == nil {
		d.Related = []ID{}
	}
	if p, ok := PlacementFor(id); ok {
		d.Position = &[3]float64{p.Position.X, p.Position.Y, p.Position.Z}
	}
	if next, ok := Next(id); ok {
		d.Next = next
	}
	if prev, ok := Previous(id); ok {
		d.Previous = prev
	}
	return d, true
}

// DescribeAll describes every room in registry order.
func DescribeAll() []Description {
	all := All()
	out := make([]Description, 0, len(all))
	for _, id := range all {
		d, _ := Describe(id)
		out = append(out, d)
	}
	return out
}
