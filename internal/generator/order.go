package generator

import (
	"math/rand/v2"
	"slices"

	"github.com/jmylchreest/pigment/internal/colour"
)

// applyOrdering returns a reordered copy of colors according to the policy.
func applyOrdering(rng *rand.Rand, o Ordering, strictShuffleChance float64, colors []colour.HSL) []colour.HSL {
	out := slices.Clone(colors)
	switch o {
	case OrderPreserve:
	case OrderStrict:
		if rng.Float64() < strictShuffleChance {
			shuffle(rng, out)
		}
	default:
		shuffle(rng, out)
	}
	return out
}

// shuffle is a Fisher-Yates permutation.
func shuffle[T any](rng *rand.Rand, s []T) {
	rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
