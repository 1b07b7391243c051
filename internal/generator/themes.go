package generator

import (
	"github.com/jmylchreest/pigment/internal/colour"
)

func init() {
	registerMode(ModeCyberpunk, Strategy{Name: "cyberpunk", Run: cyberpunk})
	registerMode(ModeModernUI, Strategy{Name: "modern-ui", Run: modernUI})
	registerMode(ModeRetroFuture, Strategy{Name: "retro-future", Run: retroFuture})
	registerMode(ModeWarmEarth, Strategy{
		Name:   "warm-earth",
		Traits: Traits{Ordering: OrderStrict},
		Run:    warmEarth,
	})
	registerMode(ModeHyperWarm, Strategy{
		Name:   "hyper-warm",
		Traits: Traits{Ordering: OrderStrict},
		Run:    hyperWarm,
	})
}

// swatch is a hardcoded hue/saturation/lightness bracket used by themes.
type swatch struct {
	hueMin, hueMax     float64
	satMin, satMax     float64
	lightMin, lightMax float64
}

// draw samples a colour from the bracket, rotated by shift degrees and with
// lightness moved by dl.
func (s swatch) draw(b *builder, shift, dl float64) (h, sat, l float64) {
	return b.between(s.hueMin, s.hueMax) + shift,
		b.between(s.satMin, s.satMax),
		b.between(s.lightMin, s.lightMax) + dl
}

// emitSwatches cycles through the brackets, stepping lightness on each lap.
// A seeded base is emitted first and takes the first slot.
func emitSwatches(b *builder, base Base, set []swatch, shift float64) {
	if base.Seeded {
		b.safeAdd(base.Hue, base.Sat, base.Light)
	}
	for i := 0; !b.full(); i++ {
		lap := i / len(set)
		h, s, l := set[i%len(set)].draw(b, shift, stepOffset(lap, 10))
		b.safeAdd(h, s, l)
	}
}

var cyberpunkSet = []swatch{
	{300, 330, 90, 100, 55, 62}, // neon magenta
	{175, 195, 90, 100, 48, 56}, // electric cyan
	{250, 280, 40, 60, 6, 12},   // void
	{75, 95, 90, 100, 50, 58},   // acid
	{265, 285, 80, 95, 45, 55},  // violet
	{330, 345, 85, 100, 60, 68}, // hot pink
	{220, 235, 60, 75, 18, 26},  // night blue
}

// cyberpunk emits neon magenta/cyan/acid over a near-black violet void.
func cyberpunk(b *builder, base Base) {
	emitSwatches(b, base, cyberpunkSet, b.jitter(8))
}

// modernUI emits a brand hue, a near-white surface, a near-black ink, a
// complementary accent, then muted fills.
func modernUI(b *builder, base Base) {
	brandSat := colour.Clamp(base.Sat, 55, 85)
	brandLight := colour.Clamp(base.Light, 45, 58)
	if base.Seeded {
		brandSat, brandLight = base.Sat, base.Light
	}
	accent := base.Hue + 180

	b.safeAdd(base.Hue, brandSat, brandLight)
	b.safeAdd(base.Hue, b.between(10, 20), b.between(95, 97))
	b.safeAdd(base.Hue, b.between(15, 25), b.between(10, 14))
	b.safeAdd(accent, b.between(70, 90), b.between(50, 60))

	fills := []struct {
		hue                float64
		satMin, satMax     float64
		lightMin, lightMax float64
	}{
		{base.Hue, 15, 30, 78, 88},
		{accent, 15, 25, 30, 45},
		{base.Hue, 20, 35, 62, 72},
		{base.Hue + 30, 10, 20, 86, 92},
		{accent, 20, 30, 70, 80},
	}
	for i := 0; !b.full(); i++ {
		f := fills[i%len(fills)]
		lap := i / len(fills)
		b.safeAdd(f.hue+b.jitter(10), b.between(f.satMin, f.satMax), b.between(f.lightMin, f.lightMax)+stepOffset(lap, 6))
	}
}

var retroFutureSet = []swatch{
	{172, 184, 55, 70, 38, 48}, // teal
	{18, 26, 80, 92, 52, 60},   // orange
	{40, 48, 75, 88, 55, 62},   // mustard
	{38, 46, 40, 60, 86, 92},   // cream
	{345, 355, 55, 70, 25, 33}, // burgundy
	{200, 212, 35, 50, 55, 65}, // dusty blue
}

// retroFuture emits a mid-century teal/orange/mustard set, rotated slightly.
func retroFuture(b *builder, base Base) {
	emitSwatches(b, base, retroFutureSet, b.jitter(10))
}

var warmEarthSet = []swatch{
	{12, 20, 45, 60, 42, 52},  // terracotta
	{35, 42, 55, 70, 45, 55},  // ochre
	{20, 28, 50, 60, 28, 36},  // sienna
	{60, 75, 25, 40, 35, 45},  // olive
	{38, 45, 30, 45, 72, 82},  // sand
	{25, 30, 30, 45, 18, 25},  // clay
	{90, 110, 12, 22, 55, 65}, // sage
}

// warmEarth emits a rotated subset of earth tones. Rotating the starting
// swatch keeps consecutive palettes from always opening the same way.
func warmEarth(b *builder, base Base) {
	rotated := make([]swatch, len(warmEarthSet))
	start := b.intn(len(warmEarthSet))
	for i := range warmEarthSet {
		rotated[i] = warmEarthSet[(start+i)%len(warmEarthSet)]
	}
	emitSwatches(b, base, rotated, b.jitter(5))
}

// isWarm reports whether a hue sits in the red/orange/yellow arc.
func isWarm(h float64) bool {
	h = colour.NormalizeHue(h)
	return h <= 50 || h >= 335
}

// hyperWarm walks the warm arc at high saturation, lightness rising.
func hyperWarm(b *builder, base Base) {
	start := base.Hue
	if !isWarm(start) {
		start = b.between(-25, 50)
	}
	if start > 180 {
		start -= 360
	}

	// walk toward whichever end of the arc has more room
	dir := 1.0
	if start > 12 {
		dir = -1
	}
	n := b.count
	step := 75.0 / float64(max(n, 2))

	for i := 0; i < n; i++ {
		t := progress(i, n)
		h := start + dir*step*float64(i) + b.jitter(3)
		if !isWarm(h) {
			h = start + b.jitter(10)
		}
		l := colour.Lerp(32, 68, t) + b.jitter(3)
		s := b.between(80, 100)
		if i == 0 && base.Seeded {
			h, s, l = base.Hue, base.Sat, base.Light
		}
		b.safeAdd(h, s, l)
	}
}
