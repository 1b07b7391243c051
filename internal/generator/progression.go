package generator

import (
	"sort"

	"github.com/jmylchreest/pigment/internal/colour"
)

// achromaticSaturation is the HSL saturation below which a colour sorts with the greys.
const achromaticSaturation = 10

// SortByVisualProgression reorders colours into a smooth visual sequence:
// greys first (dark to light), then chromatic colours by hue, rotated so the
// sequence starts just after the largest gap on the hue wheel. The input is
// not modified and the result is deterministic.
func SortByVisualProgression(records []colour.Record) []colour.Record {
	type entry struct {
		rec colour.Record
		hsl colour.HSL
	}

	var greys, chroma []entry
	for _, r := range records {
		e := entry{rec: r, hsl: colour.HexToHSL(r.Hex)}
		if e.hsl.S < achromaticSaturation {
			greys = append(greys, e)
		} else {
			chroma = append(chroma, e)
		}
	}

	sort.SliceStable(greys, func(i, j int) bool {
		return greys[i].hsl.L < greys[j].hsl.L
	})
	sort.SliceStable(chroma, func(i, j int) bool {
		return chroma[i].hsl.H < chroma[j].hsl.H
	})

	// Start after the widest hue gap so the wrap-around seam is least visible.
	start := 0
	if len(chroma) > 1 {
		widest := -1.0
		for i := range chroma {
			next := (i + 1) % len(chroma)
			gap := chroma[next].hsl.H - chroma[i].hsl.H
			if next == 0 {
				gap += 360
			}
			if gap > widest {
				widest = gap
				start = next
			}
		}
	}

	out := make([]colour.Record, 0, len(records))
	for _, e := range greys {
		out = append(out, e.rec)
	}
	for i := range chroma {
		out = append(out, chroma[(start+i)%len(chroma)].rec)
	}
	return out
}
