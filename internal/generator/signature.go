package generator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jmylchreest/pigment/internal/colour"
)

// neutralSaturation is the HSL saturation below which a colour's role is neutral.
const neutralSaturation = 12

// Role classifies one colour's job in a palette.
func Role(c colour.HSL) string {
	switch {
	case c.S < neutralSaturation && c.L < 30:
		return "neutral-dark"
	case c.S < neutralSaturation && c.L > 75:
		return "neutral-light"
	case c.S < neutralSaturation:
		return "neutral-mid"
	case c.S >= 70 && c.L >= 35 && c.L <= 65:
		return "vivid"
	case c.L < 30:
		return "dark"
	case c.L > 75:
		return "light"
	default:
		return "mid"
	}
}

// Signature is a coarse, order-independent fingerprint of a palette: per-colour
// hue/saturation/lightness buckets and roles, the neutral count and a contrast
// bucket. Palettes with the same signature look alike at a glance.
func Signature(colors []colour.HSL) string {
	if len(colors) == 0 {
		return ""
	}

	tokens := make([]string, len(colors))
	neutrals := 0
	minL, maxL := math.Inf(1), math.Inf(-1)
	for i, c := range colors {
		c = c.Normalized()
		role := Role(c)
		hue := "n"
		if strings.HasPrefix(role, "neutral") {
			neutrals++
		} else {
			hue = fmt.Sprintf("h%d", int(c.H/30))
		}
		tokens[i] = fmt.Sprintf("%s/%s/s%d/l%d", role, hue, int(math.Min(c.S, 99.9)/25), int(math.Min(c.L, 99.9)/20))

		okL := colour.HSLToOKLab(c).L
		minL = math.Min(minL, okL)
		maxL = math.Max(maxL, okL)
	}
	sort.Strings(tokens)

	contrast := int((maxL - minL) / 0.2)
	return fmt.Sprintf("n%d|c%d|%s", neutrals, contrast, strings.Join(tokens, ","))
}

// SignatureOf computes the signature of display records.
func SignatureOf(records []colour.Record) string {
	colors := make([]colour.HSL, len(records))
	for i, r := range records {
		colors[i] = r.Color()
	}
	return Signature(colors)
}
