package generator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/memory"
)

func newTestGenerator(seed uint64) *Generator {
	return New(WithSeed(seed), WithMemory(memory.NewDefault()))
}

func hexesOf(records []colour.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Hex
	}
	return out
}

func TestGenerateReturnsExactCountOfUniqueColours(t *testing.T) {
	g := newTestGenerator(1)
	counts := []int{1, 2, 3, 5, 8, 12}

	for _, mode := range Modes() {
		for _, seed := range []string{"", "#2E86DE"} {
			for _, n := range counts {
				name := fmt.Sprintf("%s/n=%d/seed=%q", mode, n, seed)
				t.Run(name, func(t *testing.T) {
					got := g.Generate(mode, n, seed)
					if len(got) != n {
						t.Fatalf("Generate() returned %d colours, want %d", len(got), n)
					}
					seen := make(map[string]bool, n)
					for _, r := range got {
						if _, err := colour.ParseHex(r.Hex); err != nil {
							t.Errorf("malformed hex %q", r.Hex)
						}
						if seen[r.Hex] {
							t.Errorf("duplicate hex %s in %v", r.Hex, hexesOf(got))
						}
						seen[r.Hex] = true
					}
				})
			}
		}
	}
}

func TestGenerateNonPositiveCount(t *testing.T) {
	g := newTestGenerator(2)
	for _, n := range []int{0, -1, -50} {
		got := g.Generate(ModeTriadic, n, "")
		if got == nil || len(got) != 0 {
			t.Errorf("Generate(count=%d) = %v, want empty non-nil slice", n, got)
		}
	}
}

func TestGenerateMonochromaticStaysOnSeedHue(t *testing.T) {
	g := newTestGenerator(3)
	seed := colour.HexToHSL("#3366CC")

	got := g.Generate(ModeMonochromatic, 6, "#3366CC")
	if len(got) != 6 {
		t.Fatalf("got %d colours, want 6", len(got))
	}

	var lightness []float64
	for _, r := range got {
		c := r.Color()
		if d := colour.HueDistance(c.H, seed.H); d > 15 {
			t.Errorf("%s hue %.1f is %.1f° from seed hue %.1f", r.Hex, c.H, d, seed.H)
		}
		lightness = append(lightness, c.L)
	}
	sort.Float64s(lightness)
	for i := 1; i < len(lightness); i++ {
		if lightness[i]-lightness[i-1] < 2 {
			t.Errorf("lightness values not distinct: %v", lightness)
		}
	}
}

func TestGenerateMonochromaticSingleColourIsSeed(t *testing.T) {
	g := newTestGenerator(4)
	got := g.Generate(ModeMonochromatic, 1, "#3366CC")
	if len(got) != 1 || got[0].Hex != "#3366CC" {
		t.Errorf("Generate(monochromatic, 1, #3366CC) = %v", hexesOf(got))
	}
}

func TestGenerateComplementaryRed(t *testing.T) {
	g := newTestGenerator(5)
	got := g.Generate(ModeComplementary, 2, "#FF0000")
	if len(got) != 2 {
		t.Fatalf("got %d colours, want 2", len(got))
	}

	a, b := got[0].Color(), got[1].Color()
	if d := colour.HueDistance(a.H, b.H); math.Abs(d-180) > 10 {
		t.Errorf("hues %.1f and %.1f are %.1f° apart, want ~180", a.H, b.H, d)
	}
	hexes := hexesOf(got)
	sort.Strings(hexes)
	if hexes[0] != "#00FFFF" || hexes[1] != "#FF0000" {
		t.Errorf("complementary of red = %v, want red and cyan", hexes)
	}
}

func TestGenerateTriadicBlue(t *testing.T) {
	g := newTestGenerator(6)
	got := g.Generate(ModeTriadic, 3, "#0000FF")
	if len(got) != 3 {
		t.Fatalf("got %d colours, want 3", len(got))
	}

	for _, want := range []float64{240, 0, 120} {
		found := false
		for _, r := range got {
			if colour.HueDistance(r.Color().H, want) <= 10 {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no colour near hue %.0f in %v", want, hexesOf(got))
		}
	}
}

func TestGenerateShadesDarkenInOrder(t *testing.T) {
	g := newTestGenerator(7)
	got := g.Generate(ModeShades, 5, "#3366CC")

	prev := math.Inf(1)
	for _, r := range got {
		l := r.Color().L
		if l >= prev {
			t.Fatalf("shades not darkening: %v", hexesOf(got))
		}
		prev = l
	}
}

func TestGenerateRandomVariety(t *testing.T) {
	g := newTestGenerator(8)

	var prev string
	repeats := 0
	for i := 0; i < 40; i++ {
		sig := SignatureOf(g.Generate(ModeRandom, 5, ""))
		if sig == prev {
			repeats++
		}
		prev = sig
	}
	if repeats > 4 {
		t.Errorf("%d of 39 consecutive random palettes shared a signature", repeats)
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	run := func() [][]string {
		g := newTestGenerator(99)
		var out [][]string
		for _, mode := range Modes() {
			out = append(out, hexesOf(g.Generate(mode, 5, "")))
		}
		return out
	}

	a, b := run(), run()
	if fmt.Sprint(a) != fmt.Sprint(b) {
		t.Errorf("seeded generators diverged:\n%v\n%v", a, b)
	}
}

func TestGenerateFallbacks(t *testing.T) {
	g := New(WithSeed(10), WithLogger(hclog.NewNullLogger()))

	if got := g.Generate(Mode("bogus"), 4, ""); len(got) != 4 {
		t.Errorf("unknown mode returned %d colours, want 4", len(got))
	}
	if got := g.Generate(ModeTriadic, 3, "not-a-colour"); len(got) != 3 {
		t.Errorf("invalid seed returned %d colours, want 3", len(got))
	}
}

func TestGenerateRecordsMemory(t *testing.T) {
	mem := memory.NewDefault()
	g := New(WithSeed(11), WithMemory(mem))

	got := g.Generate(ModeTetradic, 4, "")
	for _, r := range got {
		if !mem.HasHex(r.Hex) {
			t.Errorf("%s not registered in memory", r.Hex)
		}
	}
	if !mem.HasSignature(SignatureOf(got)) {
		t.Error("palette signature not registered")
	}
	if len(mem.RecentHues()) == 0 {
		t.Error("unseeded run should register its base hue")
	}
	if g.Memory() != mem {
		t.Error("Memory() should return the injected memory")
	}
}

func TestGenerateConcurrent(t *testing.T) {
	g := newTestGenerator(12)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if got := g.Generate(ModeRandom, 6, ""); len(got) != 6 {
					t.Errorf("got %d colours, want 6", len(got))
				}
			}
		}()
	}
	wg.Wait()
}

func TestRandomStrategiesFillPalette(t *testing.T) {
	names := RandomStrategyNames()
	if len(names) != 15 {
		t.Fatalf("random mode has %d strategies, want 15: %v", len(names), names)
	}

	cfg := DefaultConfig()
	rng := rand.New(rand.NewPCG(13, 14))
	for _, name := range names {
		s, ok := RandomStrategy(name)
		if !ok {
			t.Fatalf("RandomStrategy(%q) not found", name)
		}
		for _, n := range []int{1, 4, 9} {
			t.Run(fmt.Sprintf("%s/%d", name, n), func(t *testing.T) {
				b := newBuilder(cfg, memory.NewDefault(), rng, hclog.NewNullLogger(), n, s.Traits)
				base := Base{Hue: 200, Sat: 70, Light: 50, Vibe: vibes[0]}
				s.Run(b, base)
				b.fill(base)
				if b.len() != n {
					t.Errorf("strategy produced %d colours, want %d", b.len(), n)
				}
			})
		}
	}
}

func TestEveryModeHasStrategy(t *testing.T) {
	for _, m := range Modes() {
		if m == ModeRandom {
			continue
		}
		if _, ok := StrategyFor(m); !ok {
			t.Errorf("no strategy registered for %s", m)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "random", want: ModeRandom},
		{in: "  Triadic ", want: ModeTriadic},
		{in: "split_complementary", want: ModeSplitComplementary},
		{in: "split", want: ModeSplitComplementary},
		{in: "modern ui", want: ModeModernUI},
		{in: "RetroFuture", want: ModeRetroFuture},
		{in: "hyper-warm", want: ModeHyperWarm},
		{in: "rainbow", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "similarity", mutate: func(c *Config) { c.SimilarityThreshold = 2 }},
		{name: "lightness bounds", mutate: func(c *Config) { c.MinLightness = 90; c.MaxLightness = 10 }},
		{name: "hue exclusion", mutate: func(c *Config) { c.HueExclusion = 180 }},
		{name: "hue attempts", mutate: func(c *Config) { c.HueAttempts = 0 }},
		{name: "dull ratio", mutate: func(c *Config) { c.DullRatio = 1.5 }},
		{name: "retries", mutate: func(c *Config) { c.SignatureRetries = -1 }},
		{name: "NaN similarity", mutate: func(c *Config) { c.SimilarityThreshold = math.NaN() }},
		{name: "NaN flat range", mutate: func(c *Config) { c.FlatRange = math.NaN() }},
		{name: "infinite nudge", mutate: func(c *Config) { c.MemoryNudge = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGenerateLargeCountsStayUnique(t *testing.T) {
	for _, mode := range Modes() {
		for _, seed := range []string{"", "#808080"} {
			for _, n := range []int{150, 600} {
				t.Run(fmt.Sprintf("%s/n=%d/seed=%q", mode, n, seed), func(t *testing.T) {
					if testing.Short() && n > 150 {
						t.Skip("long palette")
					}
					got := newTestGenerator(5).Generate(mode, n, seed)
					if len(got) != n {
						t.Fatalf("Generate() returned %d colours, want %d", len(got), n)
					}
					seen := make(map[string]bool, n)
					for _, r := range got {
						if seen[r.Hex] {
							t.Fatalf("duplicate hex %s after %d unique colours", r.Hex, len(seen))
						}
						seen[r.Hex] = true
					}
				})
			}
		}
	}
}

func TestGenerateMonochromaticRetriesKeepHue(t *testing.T) {
	for _, seed := range []string{"#D1AFA1", "#3366CC", "#2E8B57"} {
		for _, n := range []int{8, 10} {
			t.Run(fmt.Sprintf("%s/n=%d", seed, n), func(t *testing.T) {
				want := colour.HexToHSL(seed).H
				for _, r := range newTestGenerator(21).Generate(ModeMonochromatic, n, seed) {
					if d := colour.HueDistance(r.Color().H, want); d > 15 {
						t.Errorf("%s hue %.1f is %.1f° from seed hue %.1f", r.Hex, r.Color().H, d, want)
					}
				}
			})
		}
	}
}

func TestGenerateRegistersOnlyReturnedHexes(t *testing.T) {
	const n = 6
	first := newTestGenerator(7).Generate(ModeRandom, n, "")

	// A memory that already holds the first palette's signature makes the
	// same seeded generator throw that palette away and build another.
	mem := memory.NewDefault()
	mem.RegisterSignature(SignatureOf(first))
	got := New(WithSeed(7), WithMemory(mem)).Generate(ModeRandom, n, "")

	hexes, _, _ := mem.Stats()
	if hexes != n {
		t.Errorf("memory holds %d hexes, want the %d returned ones", hexes, n)
	}
	for _, r := range got {
		if !mem.HasHex(r.Hex) {
			t.Errorf("returned %s not registered", r.Hex)
		}
	}
}

func TestFinalizeResolvesHeavyDuplication(t *testing.T) {
	tests := []struct {
		name    string
		colour  colour.HSL
		lockHue bool
	}{
		{name: "grey", colour: colour.HSL{H: 0, S: 0, L: 50}},
		{name: "grey locked", colour: colour.HSL{H: 0, S: 0, L: 50}, lockHue: true},
		{name: "blue locked", colour: colour.HSL{H: 210, S: 60, L: 50}, lockHue: true},
		{name: "near white", colour: colour.HSL{H: 40, S: 90, L: 99}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]colour.HSL, 400)
			for i := range in {
				in[i] = tt.colour
			}
			out := finalize(in, tt.lockHue)
			seen := make(map[string]bool, len(out))
			for _, c := range out {
				hex := c.Hex()
				if seen[hex] {
					t.Fatalf("duplicate hex %s", hex)
				}
				seen[hex] = true
				if tt.lockHue && tt.colour.S > 0 {
					if d := colour.HueDistance(colour.HexToHSL(hex).H, tt.colour.H); d > 15 {
						t.Errorf("%s drifted %.1f° off the locked hue", hex, d)
					}
				}
			}
			if out[0] != tt.colour {
				t.Errorf("first colour changed to %v", out[0])
			}
		})
	}
}

func TestWrapLight(t *testing.T) {
	tests := []struct {
		l, want float64
	}{
		{50, 50},
		{15, 15},
		{90, 15},
		{100, 25},
		{2, 77},
		{-60, 15},
	}
	for _, tt := range tests {
		if got := wrapLight(tt.l, 15, 90); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("wrapLight(%g, 15, 90) = %g, want %g", tt.l, got, tt.want)
		}
	}
}
