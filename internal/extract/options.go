package extract

import (
	"fmt"
	"math"
)

// Options tunes the extraction pipeline. Distances are Euclidean in Oklab.
type Options struct {
	// AlphaThreshold excludes pixels whose alpha is below it.
	AlphaThreshold uint8 `yaml:"alpha_threshold"`
	// BucketSize is the per-channel quantization step.
	BucketSize int `yaml:"bucket_size"`
	// MergeThreshold is the distance below which a bin joins an existing cluster.
	MergeThreshold float64 `yaml:"merge_threshold"`
	// OutputThreshold is the minimum distance between two returned colours.
	OutputThreshold float64 `yaml:"output_threshold"`
	// ChromaWeight is k in the colourfulness multiplier 1 + k*chroma.
	ChromaWeight float64 `yaml:"chroma_weight"`
	// DarkCutoff and LightCutoff are Oklab lightness bounds outside which a
	// cluster's score is multiplied by ExtremePenalty.
	DarkCutoff     float64 `yaml:"dark_cutoff"`
	LightCutoff    float64 `yaml:"light_cutoff"`
	ExtremePenalty float64 `yaml:"extreme_penalty"`
	// MaxOutputs caps the candidate list when the caller passes no limit.
	MaxOutputs int `yaml:"max_outputs"`
	// MaxDimension bounds the longest side when extracting from an image.Image.
	MaxDimension int `yaml:"max_dimension"`
}

// DefaultOptions returns the default pipeline options.
func DefaultOptions() Options {
	return Options{
		AlphaThreshold:  128,
		BucketSize:      16,
		MergeThreshold:  0.05,
		OutputThreshold: 0.1,
		ChromaWeight:    5,
		DarkCutoff:      0.2,
		LightCutoff:     0.93,
		ExtremePenalty:  0.7,
		MaxOutputs:      20,
		MaxDimension:    150,
	}
}

// Validate validates the options.
func (o Options) Validate() error {
	for name, v := range map[string]float64{
		"merge threshold":  o.MergeThreshold,
		"output threshold": o.OutputThreshold,
		"chroma weight":    o.ChromaWeight,
		"dark cutoff":      o.DarkCutoff,
		"light cutoff":     o.LightCutoff,
		"extreme penalty":  o.ExtremePenalty,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number, got %g", name, v)
		}
	}
	if o.BucketSize < 1 || o.BucketSize > 128 {
		return fmt.Errorf("bucket size must be within [1,128], got %d", o.BucketSize)
	}
	if o.MergeThreshold < 0 {
		return fmt.Errorf("merge threshold must not be negative, got %g", o.MergeThreshold)
	}
	if o.OutputThreshold < o.MergeThreshold {
		return fmt.Errorf("output threshold (%g) must not be below merge threshold (%g)", o.OutputThreshold, o.MergeThreshold)
	}
	if o.ChromaWeight < 0 {
		return fmt.Errorf("chroma weight must not be negative, got %g", o.ChromaWeight)
	}
	if o.DarkCutoff < 0 || o.LightCutoff > 1 || o.DarkCutoff >= o.LightCutoff {
		return fmt.Errorf("lightness cutoffs must satisfy 0 <= dark < light <= 1, got [%g,%g]", o.DarkCutoff, o.LightCutoff)
	}
	if o.ExtremePenalty <= 0 || o.ExtremePenalty > 1 {
		return fmt.Errorf("extreme penalty must be within (0,1], got %g", o.ExtremePenalty)
	}
	if o.MaxOutputs < 1 {
		return fmt.Errorf("max outputs must be at least 1, got %d", o.MaxOutputs)
	}
	if o.MaxDimension < 1 {
		return fmt.Errorf("max dimension must be at least 1, got %d", o.MaxDimension)
	}
	return nil
}
