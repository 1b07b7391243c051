package generator

import (
	"math"

	"github.com/jmylchreest/pigment/internal/colour"
)

func init() {
	registerRandom(Strategy{Name: "golden-angle", Run: goldenSteps})
	registerRandom(Strategy{Name: "analogous-walk", Traits: Traits{Ordering: OrderPreserve}, Run: analogousWalk})
	registerRandom(Strategy{Name: "triadic-scatter", Run: triadicScatter})
	registerRandom(Strategy{Name: "neutral-pop", Traits: Traits{SkipContrast: true}, Run: neutralPop})
	registerRandom(Strategy{Name: "light-dark-clash", Run: lightDarkClash})
	registerRandom(Strategy{Name: "cluster-split", Run: clusterSplit})
	registerRandom(Strategy{Name: "anchor-accent", Run: anchorAccent})
	registerRandom(Strategy{Name: "polychrome", Run: polychrome})
	registerRandom(Strategy{Name: "divergent", Traits: Traits{Ordering: OrderPreserve, SkipContrast: true}, Run: divergent})
	registerRandom(Strategy{Name: "complex-rhythm", Run: complexRhythm})
	registerRandom(Strategy{Name: "cinematic", Run: cinematic})
	registerRandom(Strategy{Name: "smooth-gradient", Traits: Traits{Ordering: OrderPreserve, SkipContrast: true}, Run: smoothGradient})
	registerRandom(Strategy{Name: "iridescent", Traits: Traits{Ordering: OrderPreserve, SkipContrast: true}, Run: iridescent})
	registerRandom(Strategy{Name: "neon", Run: neon})
	registerRandom(Strategy{Name: "duotone", Run: duotone})
}

// goldenSteps steps the hue by the golden angle, drawing saturation and
// lightness from the vibe.
func goldenSteps(b *builder, base Base) {
	for i := 0; i < b.count; i++ {
		h := base.Hue + float64(i)*goldenAngle
		b.safeAdd(h, base.Vibe.Sat(b.rng), base.Vibe.Light(b.rng))
	}
}

// analogousWalk drifts in one direction around the wheel in small uneven
// steps, lightness drifting the other way.
func analogousWalk(b *builder, base Base) {
	dir := 1.0
	if b.chance(0.5) {
		dir = -1
	}
	h := base.Hue
	l := base.Light
	lDir := 1.0
	if l > 55 {
		lDir = -1
	}
	for i := 0; i < b.count; i++ {
		b.safeAdd(h, base.Vibe.Sat(b.rng), l)
		h += dir * b.between(12, 25)
		l += lDir * b.between(4, 9)
		if l < 15 || l > 88 {
			lDir = -lDir
			l = colour.Clamp(l, 15, 88)
		}
	}
}

// triadicScatter rotates through three anchors 120° apart with heavy jitter.
func triadicScatter(b *builder, base Base) {
	for i := 0; i < b.count; i++ {
		h := base.Hue + float64(i%3)*120 + b.jitter(15)
		b.safeAdd(h, base.Vibe.Sat(b.rng), b.between(25, 80))
	}
}

// neutralPop lays out a greyscale background with one or two vivid accents.
func neutralPop(b *builder, base Base) {
	n := b.count
	pops := 1
	if n >= 6 {
		pops = 2
	}
	neutrals := max(n-pops, 0)
	tint := base.Hue + b.jitter(20)
	for i := 0; i < neutrals; i++ {
		l := colour.Lerp(12, 92, progress(i, neutrals)) + b.jitter(3)
		b.safeAdd(tint, b.between(3, 12), l)
	}
	for i := 0; !b.full(); i++ {
		h := base.Hue + float64(i)*180
		b.safeAdd(h, b.between(85, 100), b.between(48, 60))
	}
}

// lightDarkClash alternates very dark and very light colours on a
// complementary axis, ending on a vivid mid tone.
func lightDarkClash(b *builder, base Base) {
	n := b.count
	for i := 0; i < n; i++ {
		if i == n-1 && n > 2 {
			b.safeAdd(base.Hue+b.jitter(30), b.between(85, 100), b.between(45, 58))
			continue
		}
		h := base.Hue
		if i%2 == 1 {
			h += 180
		}
		var l float64
		if i%2 == 0 {
			l = b.between(8, 20)
		} else {
			l = b.between(85, 95)
		}
		b.safeAdd(h+b.jitter(12), b.between(35, 70), l)
	}
}

// clusterSplit builds two or three tight clusters around well-separated anchors.
func clusterSplit(b *builder, base Base) {
	k := 2
	if b.count >= 6 && b.chance(0.5) {
		k = 3
	}
	anchors := make([]float64, k)
	anchors[0] = base.Hue
	for i := 1; i < k; i++ {
		anchors[i] = anchors[i-1] + b.between(90, 360/float64(k)+30)
	}
	for i := 0; i < b.count; i++ {
		cluster := i % k
		depth := float64(i / k)
		l := base.Vibe.Light(b.rng) + stepOffset(int(depth), 14)
		b.safeAdd(anchors[cluster]+b.jitter(12), base.Vibe.Sat(b.rng), l)
	}
}

// anchorAccent keeps everything near the base hue except one opposing accent.
func anchorAccent(b *builder, base Base) {
	n := b.count
	accentSlot := b.intn(n)
	for i := 0; i < n; i++ {
		if i == accentSlot && n > 1 {
			b.safeAdd(base.Hue+b.between(150, 210), b.between(85, 100), b.between(48, 58))
			continue
		}
		l := colour.Lerp(20, 85, progress(i, n)) + b.jitter(5)
		b.safeAdd(base.Hue+b.jitter(20), b.between(30, 75), l)
	}
}

// polychrome spaces hues evenly around the whole wheel.
func polychrome(b *builder, base Base) {
	n := b.count
	step := 360 / float64(max(n, 1))
	for i := 0; i < n; i++ {
		h := base.Hue + float64(i)*step + b.jitter(step/6)
		b.safeAdd(h, base.Vibe.Sat(b.rng), base.Vibe.Light(b.rng))
	}
}

// divergent runs from one hue, through a pale neutral centre, to a second
// hue roughly opposite, like a diverging scale.
func divergent(b *builder, base Base) {
	n := b.count
	far := base.Hue + b.between(140, 220)
	for i := 0; i < n; i++ {
		t := progress(i, n)
		// distance from the centre: 1 at the ends, 0 in the middle
		d := math.Abs(t-0.5) * 2
		h := base.Hue
		if t > 0.5 {
			h = far
		}
		s := colour.Lerp(8, 85, d)
		l := colour.Lerp(90, 30, d)
		b.safeAdd(h, s, l)
	}
}

// complexRhythm mixes golden-angle and prime-degree hue steps with a
// repeating lightness pattern.
func complexRhythm(b *builder, base Base) {
	steps := []float64{goldenAngle, 47, 223, 113}
	rhythm := []float64{0, 15, -10, 25, -20}
	h := base.Hue
	for i := 0; i < b.count; i++ {
		l := base.Light + rhythm[i%len(rhythm)]
		b.safeAdd(h, base.Vibe.Sat(b.rng), l)
		h += steps[i%len(steps)]
	}
}

// cinematic pairs warm highlights with cool shadows (teal and orange).
func cinematic(b *builder, base Base) {
	warm := 20 + b.between(0, 25)
	cool := 180 + b.between(0, 30)
	for i := 0; i < b.count; i++ {
		lap := i / 2
		if i%2 == 0 {
			b.safeAdd(warm+b.jitter(6), b.between(65, 90), b.between(55, 75)+stepOffset(lap, 8))
		} else {
			b.safeAdd(cool+b.jitter(6), b.between(45, 75), b.between(18, 38)+stepOffset(lap, 8))
		}
	}
}

// smoothGradient interpolates in OKLCh between the base and a second
// endpoint with a clearly different lightness and hue.
func smoothGradient(b *builder, base Base) {
	start := colour.HSLToOKLab(colour.HSL{H: base.Hue, S: base.Sat, L: base.Light}).LCh()
	if start.C < 0.06 {
		start.C = 0.12
		start.H = base.Hue
	}

	end := colour.OKLCh{
		C: b.between(0.08, 0.18),
		H: start.H + b.between(90, 180)*sign(b),
	}
	if start.L > 0.55 {
		end.L = math.Max(start.L-0.4, 0.22)
	} else {
		end.L = math.Min(start.L+0.4, 0.92)
	}

	n := b.count
	for i := 0; i < n; i++ {
		t := progress(i, n)
		if n == 1 {
			t = 0
		}
		c := colour.OKLCh{
			L: colour.Lerp(start.L, end.L, t),
			C: colour.Lerp(start.C, end.C, t),
			H: colour.LerpHue(start.H, end.H, t),
		}
		hsl := colour.RGBToHSL(c.RGB())
		b.safeAdd(hsl.H, hsl.S, hsl.L)
	}
}

// iridescent sweeps a wide hue arc at low saturation with an oscillating
// lightness, like a film of oil.
func iridescent(b *builder, base Base) {
	n := b.count
	sweep := b.between(120, 220) * sign(b)
	for i := 0; i < n; i++ {
		t := progress(i, n)
		h := base.Hue + sweep*t
		l := 78 + 7*math.Sin(t*math.Pi*2)
		b.safeAdd(h, b.between(25, 40), l)
	}
}

// neon spreads fully saturated hues around the wheel.
func neon(b *builder, base Base) {
	n := b.count
	offset := b.between(0, goldenAngle)
	for i := 0; i < n; i++ {
		h := base.Hue + offset*float64(i%2) + float64(i)*goldenAngle
		b.safeAdd(h, 100, b.between(50, 60))
	}
}

// duotone alternates two hues, each stepping through lightness.
func duotone(b *builder, base Base) {
	second := base.Hue + b.between(60, 180)*sign(b)
	for i := 0; i < b.count; i++ {
		h := base.Hue
		if i%2 == 1 {
			h = second
		}
		l := colour.Lerp(25, 80, progress(i/2, (b.count+1)/2))
		b.safeAdd(h+b.jitter(4), base.Vibe.Sat(b.rng), l)
	}
}

// sign returns -1 or 1 with equal probability.
func sign(b *builder) float64 {
	if b.chance(0.5) {
		return -1
	}
	return 1
}
