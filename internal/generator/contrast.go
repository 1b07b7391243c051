package generator

import (
	"math/rand/v2"
	"slices"

	"github.com/jmylchreest/pigment/internal/colour"
)

// Thresholds on Oklab coordinates used to classify palette colours.
const (
	washedLightness = 0.78
	washedChroma    = 0.12
	dullChroma      = 0.045
)

// enforceContrast classifies the palette as washed out, dull or flat and, if
// so, rewrites one or two entries to correct it. The input is not modified.
// It returns the corrected palette and the names of the corrections applied.
func enforceContrast(cfg Config, rng *rand.Rand, in []colour.HSL) ([]colour.HSL, []string) {
	out := slices.Clone(in)
	n := len(out)
	if n < 3 {
		return out, nil
	}

	var applied []string
	labs := labsOf(out)

	washed, dull := 0, 0
	for _, lab := range labs {
		if lab.L >= washedLightness && lab.Chroma() < washedChroma {
			washed++
		}
		if lab.Chroma() < dullChroma {
			dull++
		}
	}

	switch {
	case float64(washed) >= cfg.WashedOutRatio*float64(n):
		lightest := extremeIndex(labs, true, -1)
		out[lightest] = darkAnchor(rng, out[lightest])
		applied = append(applied, "dark-anchor")
		if n >= 4 {
			next := extremeIndex(labs, true, lightest)
			out[next] = vividPop(rng, out[next].H)
			applied = append(applied, "vivid-pop")
		}
	case float64(dull) >= cfg.DullRatio*float64(n):
		idx := mostChromatic(labs)
		out[idx] = vividPop(rng, out[idx].H)
		applied = append(applied, "vivid-pop")
		if n >= 5 {
			other := (idx + 1 + rng.IntN(n-1)) % n
			out[other] = vividPop(rng, out[idx].H+150)
			applied = append(applied, "vivid-pop")
		}
	}

	labs = labsOf(out)
	darkest := extremeIndex(labs, false, -1)
	lightest := extremeIndex(labs, true, -1)
	if labs[lightest].L-labs[darkest].L < cfg.FlatRange {
		if darkest == lightest {
			lightest = (darkest + 1) % n
		}
		out[darkest].L = colour.Clamp(out[darkest].L-25, cfg.MinLightness+5, 100)
		out[lightest].L = colour.Clamp(out[lightest].L+25, 0, 92)
		applied = append(applied, "stretch")
	}

	return out, applied
}

func labsOf(colors []colour.HSL) []colour.OKLab {
	labs := make([]colour.OKLab, len(colors))
	for i, c := range colors {
		labs[i] = colour.HSLToOKLab(c)
	}
	return labs
}

// extremeIndex returns the index of the lightest (or darkest) colour,
// skipping index skip.
func extremeIndex(labs []colour.OKLab, lightest bool, skip int) int {
	best := -1
	for i, lab := range labs {
		if i == skip {
			continue
		}
		if best < 0 ||
			(lightest && lab.L > labs[best].L) ||
			(!lightest && lab.L < labs[best].L) {
			best = i
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

func mostChromatic(labs []colour.OKLab) int {
	best := 0
	for i, lab := range labs {
		if lab.Chroma() > labs[best].Chroma() {
			best = i
		}
	}
	return best
}

// darkAnchor turns a colour into a deep shade of its own hue.
func darkAnchor(rng *rand.Rand, c colour.HSL) colour.HSL {
	return colour.HSL{
		H: c.H,
		S: colour.Clamp(c.S, 40, 75),
		L: 10 + rng.Float64()*8,
	}
}

// vividPop returns a saturated mid-lightness colour of hue h.
func vividPop(rng *rand.Rand, h float64) colour.HSL {
	return colour.HSL{
		H: colour.NormalizeHue(h),
		S: 85 + rng.Float64()*15,
		L: 48 + rng.Float64()*10,
	}
}
