package generator

import (
	"fmt"
	"math"
)

// Config holds the tunable thresholds of the generation engine.
// None of the values are load-bearing contracts; they shape the qualitative
// behaviour (reject near-duplicates, rescue low-contrast palettes).
type Config struct {
	// SimilarityThreshold is the Oklab distance below which two chromatic
	// colours count as too similar.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	// NeutralChroma is the Oklab chroma below which a colour is treated as
	// achromatic and compared on lightness only.
	NeutralChroma float64 `yaml:"neutral_chroma"`
	// NeutralLightnessGap is the minimum Oklab lightness gap between two
	// achromatic colours.
	NeutralLightnessGap float64 `yaml:"neutral_lightness_gap"`

	// MinLightness and MaxLightness bound every generated colour (HSL percent).
	MinLightness float64 `yaml:"min_lightness"`
	MaxLightness float64 `yaml:"max_lightness"`

	// HueExclusion is the zone (degrees) around recent base hues that a new
	// random base hue avoids; HueAttempts bounds the resampling.
	HueExclusion float64 `yaml:"hue_exclusion"`
	HueAttempts  int     `yaml:"hue_attempts"`

	// MemoryNudge is the lightness step (HSL percent) used to move a colour
	// off a hex value that was emitted recently.
	MemoryNudge float64 `yaml:"memory_nudge"`

	// StrictShuffleChance is the probability that an order-preserving harmony
	// mode is shuffled anyway.
	StrictShuffleChance float64 `yaml:"strict_shuffle_chance"`

	// WashedOutRatio, DullRatio and FlatRange drive the contrast pass.
	WashedOutRatio float64 `yaml:"washed_out_ratio"`
	DullRatio      float64 `yaml:"dull_ratio"`
	FlatRange      float64 `yaml:"flat_range"`

	// SignatureRetries bounds regeneration when a palette repeats a recent signature.
	SignatureRetries int `yaml:"signature_retries"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.055,
		NeutralChroma:       0.03,
		NeutralLightnessGap: 0.06,
		MinLightness:        5,
		MaxLightness:        98,
		HueExclusion:        30,
		HueAttempts:         10,
		MemoryNudge:         3,
		StrictShuffleChance: 0.3,
		WashedOutRatio:      0.7,
		DullRatio:           0.8,
		FlatRange:           0.2,
		SignatureRetries:    1,
	}
}

// Validate validates the engine configuration.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"similarity threshold":  c.SimilarityThreshold,
		"neutral chroma":        c.NeutralChroma,
		"neutral lightness gap": c.NeutralLightnessGap,
		"min lightness":         c.MinLightness,
		"max lightness":         c.MaxLightness,
		"hue exclusion":         c.HueExclusion,
		"memory nudge":          c.MemoryNudge,
		"strict shuffle chance": c.StrictShuffleChance,
		"washed out ratio":      c.WashedOutRatio,
		"dull ratio":            c.DullRatio,
		"flat range":            c.FlatRange,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number, got %g", name, v)
		}
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be within [0,1], got %g", c.SimilarityThreshold)
	}
	if c.NeutralChroma < 0 {
		return fmt.Errorf("neutral chroma must not be negative, got %g", c.NeutralChroma)
	}
	if c.NeutralLightnessGap < 0 || c.NeutralLightnessGap > 1 {
		return fmt.Errorf("neutral lightness gap must be within [0,1], got %g", c.NeutralLightnessGap)
	}
	if c.MinLightness < 0 || c.MaxLightness > 100 || c.MinLightness >= c.MaxLightness {
		return fmt.Errorf("lightness bounds must satisfy 0 <= min < max <= 100, got [%g,%g]", c.MinLightness, c.MaxLightness)
	}
	if c.HueExclusion < 0 || c.HueExclusion >= 180 {
		return fmt.Errorf("hue exclusion must be within [0,180), got %g", c.HueExclusion)
	}
	if c.HueAttempts < 1 {
		return fmt.Errorf("hue attempts must be at least 1, got %d", c.HueAttempts)
	}
	if c.MemoryNudge < 0 {
		return fmt.Errorf("memory nudge must not be negative, got %g", c.MemoryNudge)
	}
	if c.StrictShuffleChance < 0 || c.StrictShuffleChance > 1 {
		return fmt.Errorf("strict shuffle chance must be within [0,1], got %g", c.StrictShuffleChance)
	}
	for name, v := range map[string]float64{
		"washed out ratio": c.WashedOutRatio,
		"dull ratio":       c.DullRatio,
		"flat range":       c.FlatRange,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be within [0,1], got %g", name, v)
		}
	}
	if c.SignatureRetries < 0 {
		return fmt.Errorf("signature retries must not be negative, got %d", c.SignatureRetries)
	}
	return nil
}
