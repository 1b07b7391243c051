package generator

import (
	"math"

	"github.com/jmylchreest/pigment/internal/colour"
)

// TooSimilar reports whether two colours are too close to share a palette.
//
// Chromatic pairs are compared by Oklab distance, which already demands a
// larger lightness/saturation gap between near-identical hues than between
// distant ones. When both colours are near the neutral axis, hue carries no
// visual weight, so only lightness is compared.
func TooSimilar(cfg Config, a, b colour.HSL) bool {
	return similarLab(cfg, colour.HSLToOKLab(a), colour.HSLToOKLab(b))
}

func similarLab(cfg Config, a, b colour.OKLab) bool {
	if a.Chroma() < cfg.NeutralChroma && b.Chroma() < cfg.NeutralChroma {
		return math.Abs(a.L-b.L) < cfg.NeutralLightnessGap
	}
	return a.Distance(b) < cfg.SimilarityThreshold
}
