package generator

import "math/rand/v2"

// Vibe is a named saturation/lightness envelope that biases a strategy
// toward a mood. Weight is its relative selection probability.
type Vibe struct {
	Name     string
	SatMin   float64
	SatMax   float64
	LightMin float64
	LightMax float64
	Weight   float64
}

// vibes is skewed toward vivid and bright to avoid washed-out output.
var vibes = []Vibe{
	{Name: "vivid", SatMin: 75, SatMax: 100, LightMin: 45, LightMax: 60, Weight: 0.30},
	{Name: "bright", SatMin: 65, SatMax: 90, LightMin: 55, LightMax: 70, Weight: 0.25},
	{Name: "deep", SatMin: 60, SatMax: 90, LightMin: 25, LightMax: 40, Weight: 0.15},
	{Name: "dynamic", SatMin: 50, SatMax: 100, LightMin: 30, LightMax: 70, Weight: 0.15},
	{Name: "pastel", SatMin: 40, SatMax: 70, LightMin: 75, LightMax: 88, Weight: 0.08},
	{Name: "muted", SatMin: 20, SatMax: 45, LightMin: 35, LightMax: 65, Weight: 0.07},
}

// Vibes returns the vibe table.
func Vibes() []Vibe {
	out := make([]Vibe, len(vibes))
	copy(out, vibes)
	return out
}

// pickVibe draws a vibe according to the weight table.
func pickVibe(rng *rand.Rand) Vibe {
	total := 0.0
	for _, v := range vibes {
		total += v.Weight
	}
	target := rng.Float64() * total
	cumulative := 0.0
	for _, v := range vibes {
		cumulative += v.Weight
		if target < cumulative {
			return v
		}
	}
	return vibes[0]
}

// Sat draws a saturation inside the vibe's envelope.
func (v Vibe) Sat(rng *rand.Rand) float64 {
	return v.SatMin + rng.Float64()*(v.SatMax-v.SatMin)
}

// Light draws a lightness inside the vibe's envelope.
func (v Vibe) Light(rng *rand.Rand) float64 {
	return v.LightMin + rng.Float64()*(v.LightMax-v.LightMin)
}
