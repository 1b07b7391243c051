package generator

import (
	"math"

	"github.com/jmylchreest/pigment/internal/colour"
)

func init() {
	registerMode(ModeMonochromatic, Strategy{
		Name:   "monochromatic",
		Traits: Traits{Ordering: OrderStrict, SkipContrast: true, LockHue: true},
		Run:    monochromatic,
	})
	registerMode(ModeAnalogous, Strategy{
		Name:   "analogous",
		Traits: Traits{Ordering: OrderStrict},
		Run:    analogous,
	})
	registerMode(ModeComplementary, Strategy{
		Name: "complementary",
		Run:  complementary,
	})
	registerMode(ModeSplitComplementary, Strategy{
		Name: "split-complementary",
		Run:  splitComplementary,
	})
	registerMode(ModeTriadic, Strategy{
		Name: "triadic",
		Run:  triadic,
	})
	registerMode(ModeTetradic, Strategy{
		Name: "tetradic",
		Run:  tetradic,
	})
	registerMode(ModeCompound, Strategy{
		Name: "compound",
		Run:  compound,
	})
	registerMode(ModeShades, Strategy{
		Name:   "shades",
		Traits: Traits{Ordering: OrderPreserve, SkipContrast: true, LockHue: true},
		Run:    shades,
	})
}

// monochromatic spreads lightness evenly over one hue, dark to light, with
// the base colour occupying the slot nearest its own lightness.
func monochromatic(b *builder, base Base) {
	n := b.count
	if n == 1 {
		b.safeAdd(base.Hue, base.Sat, base.Light)
		return
	}

	const lo, hi = 15.0, 90.0
	baseSlot := int(math.Round((colour.Clamp(base.Light, lo, hi) - lo) / (hi - lo) * float64(n-1)))
	satSwing := []float64{0, -8, 6}

	for i := 0; i < n; i++ {
		if i == baseSlot {
			b.safeAdd(base.Hue, base.Sat, base.Light)
			continue
		}
		l := colour.Lerp(lo, hi, progress(i, n))
		b.safeAdd(base.Hue+b.jitter(3), base.Sat+satSwing[i%len(satSwing)], l)
	}
}

// analogous walks a narrow arc centred on the base hue, lightness rising
// across the arc.
func analogous(b *builder, base Base) {
	n := b.count
	spread := math.Min(20+float64(n)*10, 100)
	start := base.Hue - spread/2
	mid := n / 2

	for i := 0; i < n; i++ {
		if i == mid {
			b.safeAdd(base.Hue, base.Sat, base.Light)
			continue
		}
		t := progress(i, n)
		h := start + spread*t + b.jitter(3)
		l := colour.Lerp(base.Vibe.LightMin-10, base.Vibe.LightMax+10, t) + b.jitter(4)
		b.safeAdd(h, base.Vibe.Sat(b.rng), l)
	}
}

// Later laps of the angular and compound recipes keep at least lapSatFloor
// saturation and fold their lightness steps into [lapLightMin, lapLightMax).
const (
	lapSatFloor = 25.0
	lapLightMin = 15.0
	lapLightMax = 90.0
)

// angular emits the base followed by fixed hue offsets, cycling through them
// and stepping lightness (and easing saturation) on each further lap.
func angular(b *builder, base Base, offsets []float64) {
	for i := 0; i < b.count; i++ {
		lap := i / len(offsets)
		h := base.Hue + offsets[i%len(offsets)]
		s, l := base.Sat, base.Light
		if lap > 0 {
			h += b.jitter(4)
			s = max(base.Sat-float64(lap)*8, lapSatFloor)
			l = wrapLight(base.Light+stepOffset(lap, 16), lapLightMin, lapLightMax)
		}
		b.safeAdd(h, s, l)
	}
}

// complementary alternates the base hue and its opposite (180°).
func complementary(b *builder, base Base) {
	angular(b, base, []float64{0, 180})
}

// splitComplementary pairs the base with the two neighbours of its complement.
func splitComplementary(b *builder, base Base) {
	angular(b, base, []float64{0, 150, 210})
}

// triadic uses three hues 120° apart.
func triadic(b *builder, base Base) {
	angular(b, base, []float64{0, 120, 240})
}

// tetradic uses the square rule: four hues 90° apart.
func tetradic(b *builder, base Base) {
	angular(b, base, []float64{0, 90, 180, 270})
}

// compoundRecipe is a hue offset with saturation/lightness adjustments.
type compoundRecipe struct {
	dh, ds, dl float64
}

// compound mixes an analogous neighbour with the complement and its neighbour,
// then adds tinted and shaded variants.
func compound(b *builder, base Base) {
	recipe := []compoundRecipe{
		{0, 0, 0},
		{30, -10, 10},
		{180, 0, -5},
		{150, -15, 15},
		{0, -25, -25},
		{180, -30, 25},
	}
	for i := 0; i < b.count; i++ {
		r := recipe[i%len(recipe)]
		lap := i / len(recipe)
		h := base.Hue + r.dh + float64(lap)*b.jitter(10)
		s, l := base.Sat+r.ds, base.Light+r.dl
		if lap > 0 {
			s = max(s, lapSatFloor)
			l = wrapLight(l+stepOffset(lap, 8), lapLightMin, lapLightMax)
		}
		b.safeAdd(h, s, l)
	}
}

// shades darkens the base hue step by step, gaining a little saturation.
func shades(b *builder, base Base) {
	n := b.count
	top := colour.Clamp(base.Light+10, 40, 88)
	const bottom = 10.0
	for i := 0; i < n; i++ {
		t := progress(i, n)
		if n == 1 {
			t = 0
		}
		l := colour.Lerp(top, bottom, t)
		s := base.Sat * (0.85 + 0.15*t)
		b.safeAdd(base.Hue, s, l)
	}
}
