package generator

import (
	"math"
	"math/rand/v2"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/memory"
)

// goldenAngle is the hue step that never lands on a previous hue.
const goldenAngle = 137.50776

// Hue-locked retries stay inside these bounds: near the ends of the
// lightness axis, or at low saturation, 8-bit rounding loses the hue.
const (
	lockedLightMin = 12.0
	lockedLightMax = 90.0
	lockedSatMin   = 10.0
)

// builder accumulates one palette. Strategies call tryAdd/safeAdd until the
// palette reaches count entries.
type builder struct {
	cfg     Config
	mem     *memory.Memory
	rng     *rand.Rand
	logger  hclog.Logger
	count   int
	lockHue bool

	colors []colour.HSL
	labs   []colour.OKLab
	hexes  map[string]struct{}
}

func newBuilder(cfg Config, mem *memory.Memory, rng *rand.Rand, logger hclog.Logger, count int, traits Traits) *builder {
	return &builder{
		cfg:     cfg,
		mem:     mem,
		rng:     rng,
		logger:  logger,
		count:   count,
		lockHue: traits.LockHue,
		colors:  make([]colour.HSL, 0, count),
		labs:    make([]colour.OKLab, 0, count),
		hexes:   make(map[string]struct{}, count),
	}
}

// full reports whether the palette has reached its target size.
func (b *builder) full() bool {
	return len(b.colors) >= b.count
}

// len returns the number of accepted colours.
func (b *builder) len() int {
	return len(b.colors)
}

// normalize wraps the hue and clamps saturation and lightness into the
// generation envelope.
func (b *builder) normalize(h, s, l float64) colour.HSL {
	return colour.HSL{
		H: colour.NormalizeHue(h),
		S: colour.Clamp(s, 0, 100),
		L: colour.Clamp(l, b.cfg.MinLightness, b.cfg.MaxLightness),
	}
}

// clashes reports whether a candidate is too similar to an accepted colour.
func (b *builder) clashes(lab colour.OKLab) bool {
	for _, accepted := range b.labs {
		if similarLab(b.cfg, lab, accepted) {
			return true
		}
	}
	return false
}

// tryAdd accepts the candidate unless it is too similar to an accepted colour.
// A candidate whose hex was emitted recently is nudged in lightness first.
func (b *builder) tryAdd(h, s, l float64) bool {
	if b.full() {
		return false
	}

	c := b.normalize(h, s, l)
	lab := colour.HSLToOKLab(c)
	if b.clashes(lab) {
		b.logger.Trace("candidate rejected", "hsl", c.String())
		return false
	}

	if b.mem.HasHex(c.Hex()) {
		if nudged, ok := b.nudgeOffMemory(c); ok {
			b.logger.Trace("nudged off recent colour", "from", c.Hex(), "to", nudged.Hex())
			c = nudged
			lab = colour.HSLToOKLab(c)
		}
	}

	b.accept(c, lab)
	return true
}

// nudgeOffMemory searches small lightness offsets for a variant whose hex is
// not in memory and which still fits the palette.
func (b *builder) nudgeOffMemory(c colour.HSL) (colour.HSL, bool) {
	step := b.cfg.MemoryNudge
	if step <= 0 {
		return c, false
	}
	lo, hi, _ := b.retryBounds(c.S, c.L)
	for _, k := range []float64{1, -1, 2, -2} {
		candidate := b.normalize(c.H, c.S, colour.Clamp(c.L+k*step, lo, hi))
		hex := candidate.Hex()
		if b.mem.HasHex(hex) {
			continue
		}
		if _, dup := b.hexes[hex]; dup {
			continue
		}
		if b.clashes(colour.HSLToOKLab(candidate)) {
			continue
		}
		return candidate, true
	}
	return c, false
}

// accept appends the colour. Memory only learns the hexes of the palette
// that is finally returned.
func (b *builder) accept(c colour.HSL, lab colour.OKLab) {
	b.colors = append(b.colors, c)
	b.labs = append(b.labs, lab)
	b.hexes[c.Hex()] = struct{}{}
}

// retryBounds returns the lightness range and saturation floor that
// collision retries of a candidate at (s, l) may move within. The
// candidate's own values are always inside them.
func (b *builder) retryBounds(s, l float64) (lo, hi, sMin float64) {
	if !b.lockHue {
		return b.cfg.MinLightness, b.cfg.MaxLightness, 0
	}
	return min(l, lockedLightMin), max(l, lockedLightMax), min(s, lockedSatMin)
}

// safeAdd adds the candidate, retrying with lightness shifts and then hue
// shifts (saturation shifts when the hue is locked) before forcing it in.
// It always adds exactly one colour unless the palette is already full.
func (b *builder) safeAdd(h, s, l float64) {
	if b.full() {
		return
	}
	if b.tryAdd(h, s, l) {
		return
	}
	lo, hi, sMin := b.retryBounds(s, l)
	for _, dl := range []float64{10, -10, 20, -20} {
		if b.tryAdd(h, s, colour.Clamp(l+dl, lo, hi)) {
			return
		}
	}
	if b.lockHue {
		for _, ds := range []float64{-20, 15, -40} {
			if b.tryAdd(h, max(s+ds, sMin), l) {
				return
			}
		}
	} else {
		for _, dh := range []float64{25, -25, 50, -50} {
			if b.tryAdd(h+dh, s, l) {
				return
			}
		}
	}

	b.logger.Debug("forcing colour after collisions", "hsl", b.normalize(h, s, l).String())
	b.forceAdd(h, s, l)
}

// forceAdd accepts the candidate regardless of similarity, only moving it as
// far as needed to keep its hex unique within the palette.
func (b *builder) forceAdd(h, s, l float64) {
	const attempts = 400
	for i := 0; i < attempts; i++ {
		c := b.perturb(h, s, l, i)
		if _, dup := b.hexes[c.Hex()]; dup {
			continue
		}
		b.accept(c, colour.HSLToOKLab(c))
		return
	}
	c := b.normalize(h, s, l)
	b.accept(c, colour.HSLToOKLab(c))
}

// perturb returns the i-th variant in the forced-acceptance search: lightness
// steps of growing size, then saturation moving toward the middle of its
// range, then golden-angle hue hops.
func (b *builder) perturb(h, s, l float64, i int) colour.HSL {
	if i == 0 {
		return b.normalize(h, s, l)
	}
	lo, hi, sMin := b.retryBounds(s, l)
	l = colour.Clamp(l+stepOffset(i, 1), lo, hi)
	if i > 120 {
		d := float64(i-120) * 0.3
		if s < 50 {
			s += d
		} else {
			s = max(s-d, sMin)
		}
	}
	if i > 200 && !b.lockHue {
		h += float64(i-200) * goldenAngle
	}
	return b.normalize(h, s, l)
}

// fill tops the palette up with golden-angle steps from the base.
func (b *builder) fill(base Base) {
	for i := b.len(); !b.full(); i++ {
		b.safeAdd(base.Hue+float64(i)*goldenAngle, base.Vibe.Sat(b.rng), base.Vibe.Light(b.rng))
	}
}

// between draws uniformly from [lo, hi).
func (b *builder) between(lo, hi float64) float64 {
	return lo + b.rng.Float64()*(hi-lo)
}

// jitter draws uniformly from [-amount, amount).
func (b *builder) jitter(amount float64) float64 {
	return (b.rng.Float64()*2 - 1) * amount
}

// chance returns true with probability p.
func (b *builder) chance(p float64) bool {
	return b.rng.Float64() < p
}

// intn draws from [0, n).
func (b *builder) intn(n int) int {
	if n <= 1 {
		return 0
	}
	return b.rng.IntN(n)
}

// progress maps slot i of n onto [0,1]; a single slot sits at 0.5.
func progress(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}

// stepOffset yields 0, -step, +step, -2step, +2step, ... for p = 0, 1, 2, ...
func stepOffset(p int, step float64) float64 {
	if p == 0 {
		return 0
	}
	k := math.Ceil(float64(p) / 2)
	if p%2 == 1 {
		return -k * step
	}
	return k * step
}

// wrapLight folds l into [lo, hi) so repeated lightness steps cycle through
// the range instead of piling up at one end.
func wrapLight(l, lo, hi float64) float64 {
	span := hi - lo
	return lo + math.Mod(math.Mod(l-lo, span)+span, span)
}
