package animate

// Capability is what is known about the client device.
type Capability struct {
	Mobile     bool
	LowPower   bool
	HighEndGPU bool
	// MemoryGB is the reported device memory; 0 means unknown.
	MemoryGB float64
	// Connection is the effective connection type (4g, 3g, 2g, slow-2g).
	Connection string
}

// Tier names a quality level.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Quality is the render budget for a device.
type Quality struct {
	Tier           Tier    `json:"tier"`
	ParticleCount  int     `json:"particleCount"`
	ParticleSize   float64 `json:"particleSize"`
	PostProcessing Tier    `json:"postProcessing"`
	ShadowMapSize  int     `json:"shadowMapSize"`
	TextureQuality Tier    `json:"textureQuality"`
}

// Normalize fills derived flags: unknown memory counts as 8GB, 4GB or less
// is low power and 16GB or more counts as a high-end device.
func (c Capability) Normalize() Capability {
	if c.MemoryGB <= 0 {
		c.MemoryGB = 8
	}
	if c.MemoryGB <= 4 {
		c.LowPower = true
	}
	if c.MemoryGB >= 16 {
		c.HighEndGPU = true
	}
	if c.Connection == "" {
		c.Connection = "4g"
	}
	return c
}

// QualityFor picks the render budget for c.
func QualityFor(c Capability) Quality {
	c = c.Normalize()
	switch {
	case c.Mobile || c.LowPower || c.Connection == "2g" || c.Connection == "slow-2g":
		return Quality{Tier: TierLow, ParticleCount: 1000, ParticleSize: 0.012, PostProcessing: TierLow, ShadowMapSize: 512, TextureQuality: TierLow}
	case c.HighEndGPU:
		return Quality{Tier: TierHigh, ParticleCount: 5000, ParticleSize: 0.015, PostProcessing: TierHigh, ShadowMapSize: 2048, TextureQuality: TierHigh}
	default:
		return Quality{Tier: TierMedium, ParticleCount: BaseParticleCount, ParticleSize: 0.015, PostProcessing: TierMedium, ShadowMapSize: 1024, TextureQuality: TierMedium}
	}
}
