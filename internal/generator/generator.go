// Package generator synthesizes colour palettes from harmony rules, themed
// recipes and a catalog of randomized strategies.
package generator

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/memory"
)

// Generator produces palettes. It is safe for concurrent use; calls are
// serialized because they share one random source and one memory.
type Generator struct {
	mu     sync.Mutex
	cfg    Config
	mem    *memory.Memory
	rng    *rand.Rand
	logger hclog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithConfig sets the engine thresholds.
func WithConfig(cfg Config) Option {
	return func(g *Generator) {
		g.cfg = cfg
	}
}

// WithMemory injects the anti-repetition memory. Generators sharing one
// memory avoid repeating each other's output.
func WithMemory(mem *memory.Memory) Option {
	return func(g *Generator) {
		if mem != nil {
			g.mem = mem
		}
	}
}

// WithRand sets the random source.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithSeed makes the generator deterministic for a fresh memory.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger hclog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a generator with default thresholds, an empty memory and a
// time-seeded random source unless overridden.
func New(opts ...Option) *Generator {
	now := uint64(time.Now().UnixNano())
	g := &Generator{
		cfg:    DefaultConfig(),
		rng:    rand.New(rand.NewPCG(now, now>>17|1)),
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.mem == nil {
		g.mem = memory.NewDefault()
	}
	return g
}

// Memory returns the generator's anti-repetition memory.
func (g *Generator) Memory() *memory.Memory {
	return g.mem
}

// Config returns the generator's thresholds.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate returns exactly count colours for the mode. A non-empty seedHex
// anchors the palette on that colour and bypasses hue anti-repetition.
// Counts of zero or less return an empty palette; an unknown mode falls back
// to random.
func (g *Generator) Generate(mode Mode, count int, seedHex string) []colour.Record {
	if count <= 0 {
		return []colour.Record{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !mode.IsValid() {
		g.logger.Warn("unknown mode, falling back to random", "mode", mode)
		mode = ModeRandom
	}

	seed, seeded := g.parseSeed(seedHex)

	colors, name := g.generateOnce(mode, count, seed, seeded)
	sig := Signature(colors)

	if mode.ChecksSignature() && !seeded {
		for retry := 0; retry < g.cfg.SignatureRetries && g.mem.HasSignature(sig); retry++ {
			g.logger.Debug("palette repeats a recent signature, regenerating", "mode", mode, "strategy", name, "signature", sig)
			colors, name = g.generateOnce(mode, count, seed, seeded)
			sig = Signature(colors)
		}
	}
	g.mem.RegisterSignature(sig)

	records := make([]colour.Record, len(colors))
	for i, c := range colors {
		hex := c.Hex()
		g.mem.RegisterHex(hex)
		records[i] = colour.NewRecord(hex)
	}

	g.logger.Debug("generated palette", "mode", mode, "strategy", name, "count", len(records))
	return records
}

// parseSeed decodes a seed colour. Malformed seeds are ignored.
func (g *Generator) parseSeed(seedHex string) (colour.HSL, bool) {
	if seedHex == "" {
		return colour.HSL{}, false
	}
	rgb, err := colour.ParseHex(seedHex)
	if err != nil {
		g.logger.Warn("ignoring invalid seed colour", "seed", seedHex, "error", err)
		return colour.HSL{}, false
	}
	return colour.RGBToHSL(rgb), true
}

// generateOnce runs one full pipeline: strategy, top-up, contrast pass,
// ordering and uniqueness. It returns the colours and the strategy name.
func (g *Generator) generateOnce(mode Mode, count int, seed colour.HSL, seeded bool) ([]colour.HSL, string) {
	strategy := g.resolve(mode)
	base := g.pickBase(seed, seeded)

	b := newBuilder(g.cfg, g.mem, g.rng, g.logger, count, strategy.Traits)
	strategy.Run(b, base)
	b.fill(base)

	colors := b.colors
	if !strategy.Traits.SkipContrast && count >= 3 {
		var applied []string
		colors, applied = enforceContrast(g.cfg, g.rng, colors)
		if len(applied) > 0 {
			g.logger.Trace("contrast pass", "strategy", strategy.Name, "fixes", applied)
		}
	}

	colors = applyOrdering(g.rng, strategy.Traits.Ordering, g.cfg.StrictShuffleChance, colors)
	return finalize(colors, strategy.Traits.LockHue), strategy.Name
}

// resolve returns the strategy for a mode; random draws a sub-strategy uniformly.
func (g *Generator) resolve(mode Mode) Strategy {
	if mode != ModeRandom {
		if s, ok := StrategyFor(mode); ok {
			return s
		}
		g.logger.Warn("no strategy registered for mode, using random", "mode", mode)
	}
	s := randomStrategies[g.rng.IntN(len(randomStrategies))]
	g.logger.Trace("random strategy selected", "strategy", s.Name)
	return s
}

// pickBase chooses the anchor colour. A seed is used as is; otherwise the
// hue is resampled away from recent base hues and then recorded.
func (g *Generator) pickBase(seed colour.HSL, seeded bool) Base {
	vibe := pickVibe(g.rng)
	if seeded {
		return Base{Hue: seed.H, Sat: seed.S, Light: seed.L, Vibe: vibe, Seeded: true}
	}

	hue := g.rng.Float64() * 360
	for attempt := 1; attempt < g.cfg.HueAttempts && g.mem.HueRecentlyUsed(hue, g.cfg.HueExclusion); attempt++ {
		hue = g.rng.Float64() * 360
	}
	g.mem.RegisterHue(hue)

	return Base{Hue: hue, Sat: vibe.Sat(g.rng), Light: vibe.Light(g.rng), Vibe: vibe}
}

// finalize makes every hex unique after the post-processing passes.
func finalize(colors []colour.HSL, lockHue bool) []colour.HSL {
	out := make([]colour.HSL, len(colors))
	seen := make(map[string]struct{}, len(colors))
	for i, c := range colors {
		c = unusedVariant(c.Normalized(), seen, lockHue)
		out[i] = c
		seen[c.Hex()] = struct{}{}
	}
	return out
}

// cubeStride is odd, so stepping by it visits every 24-bit colour once.
const cubeStride = 0x010101

// unusedVariant returns c, or the nearest variant of c whose hex is not in
// seen. It only gives up once all 2^24 hexes are taken.
func unusedVariant(c colour.HSL, seen map[string]struct{}, lockHue bool) colour.HSL {
	for v := range variants(c, lockHue) {
		if _, dup := seen[v.Hex()]; !dup {
			return v
		}
	}

	rgb := c.RGB()
	start := int(rgb.R)<<16 | int(rgb.G)<<8 | int(rgb.B)
	for i := 1; i < 1<<24; i++ {
		n := (start + i*cubeStride) & (1<<24 - 1)
		v := colour.HexToHSL(fmt.Sprintf("#%06X", n))
		if _, dup := seen[v.Hex()]; !dup {
			return v
		}
	}
	return c
}

// variants yields c and then perturbations of it in widening order:
// half-percent lightness steps, then a saturation ladder that moves toward
// the middle first so grey colours pick up their hue, then golden-angle hue
// hops unless the hue is locked. Hue-locked variants keep to the lightness
// band where the hue survives 8-bit rounding.
func variants(c colour.HSL, lockHue bool) iter.Seq[colour.HSL] {
	return func(yield func(colour.HSL) bool) {
		lo, hi, sMin := 0.0, 100.0, 0.0
		if lockHue {
			lo, hi, sMin = min(c.L, lockedLightMin), max(c.L, lockedLightMax), min(c.S, lockedSatMin)
		}
		sweep := func(h, s, step float64) bool {
			for k := 0; k <= 2*int(100/step)+1; k++ {
				l := c.L + stepOffset(k, step)
				if l < lo || l > hi {
					continue
				}
				if !yield(colour.HSL{H: h, S: s, L: l}.Normalized()) {
					return false
				}
			}
			return true
		}

		if !sweep(c.H, c.S, 0.5) {
			return
		}
		for d := 4.0; d <= 100; d += 4 {
			up, down := c.S+d, c.S-d
			if c.S >= 50 {
				up, down = down, up
			}
			for _, s := range []float64{up, down} {
				if s < sMin || s > 100 {
					continue
				}
				if !sweep(c.H, s, 0.5) {
					return
				}
			}
		}
		if lockHue {
			return
		}
		s := max(c.S, 40)
		for j := 1; j < 360; j++ {
			if !sweep(c.H+float64(j)*goldenAngle, s, 2) {
				return
			}
		}
	}
}
