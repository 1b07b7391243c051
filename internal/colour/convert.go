// Package colour provides colour conversion, perceptual distance and display records.
package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the canonical uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// HSL is the canonical generation space.
// H is in degrees [0,360), S and L are percentages [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Normalized returns the colour with hue wrapped into [0,360) and
// saturation/lightness clamped into [0,100].
func (c HSL) Normalized() HSL {
	return HSL{
		H: NormalizeHue(c.H),
		S: Clamp(c.S, 0, 100),
		L: Clamp(c.L, 0, 100),
	}
}

// String formats the colour as "hsl(h, s%, l%)" with integer components.
func (c HSL) String() string {
	n := c.Normalized()
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)",
		int(math.Round(n.H))%360, int(math.Round(n.S)), int(math.Round(n.L)))
}

// RGB converts the colour to 8-bit sRGB.
func (c HSL) RGB() RGB {
	return HSLToRGB(c.H, c.S, c.L)
}

// Hex converts the colour to its canonical hex string.
func (c HSL) Hex() string {
	return c.RGB().Hex()
}

// NormalizeHue wraps any angle (including negative ones) into [0,360).
func NormalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// ParseHex parses a 6-digit hex colour with or without a leading '#'.
// Unlike HexToRGB it reports malformed input.
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// HexToRGB parses a hex colour, case-insensitively. Malformed input yields black.
func HexToRGB(hex string) RGB {
	rgb, err := ParseHex(hex)
	if err != nil {
		return RGB{}
	}
	return rgb
}

// CanonicalHex returns the uppercase "#RRGGBB" form of hex, or "#000000" when malformed.
func CanonicalHex(hex string) string {
	return HexToRGB(hex).Hex()
}

// RGBToHex rounds and clamps each channel into [0,255] and formats it as "#RRGGBB".
func RGBToHex(r, g, b float64) string {
	return RGB{R: channel(r), G: channel(g), B: channel(b)}.Hex()
}

// channel rounds a float channel value into a byte.
func channel(v float64) uint8 {
	return uint8(Clamp(math.Round(v), 0, 255))
}

// RGBToHSL converts RGB to HSL with hue in degrees and saturation/lightness in percent.
func RGBToHSL(rgb RGB) HSL {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l := (maxVal + minVal) / 2.0

	// Achromatic.
	if delta == 0 {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	var s float64
	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	return HSL{H: NormalizeHue(h * 60), S: s * 100, L: l * 100}
}

// HSLToRGB converts HSL to RGB. Hue may be any angle; it is wrapped before use.
// Saturation and lightness are percentages and are clamped into [0,100].
func HSLToRGB(h, s, l float64) RGB {
	h = NormalizeHue(h)
	s = Clamp(s, 0, 100) / 100
	l = Clamp(l, 0, 100) / 100

	if s == 0 {
		v := channel(l * 255)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: channel(hueToRGB(p, q, h+120) * 255),
		G: channel(hueToRGB(p, q, h) * 255),
		B: channel(hueToRGB(p, q, h-120) * 255),
	}
}

// hueToRGB is a helper for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	t = NormalizeHue(t)

	if t < 60 {
		return p + (q-p)*t/60
	}
	if t < 180 {
		return q
	}
	if t < 240 {
		return p + (q-p)*(240-t)/60
	}
	return p
}

// HexToHSL decodes a hex colour straight to HSL. Malformed input yields black.
func HexToHSL(hex string) HSL {
	return RGBToHSL(HexToRGB(hex))
}

// CMYK is a subtractive colour with components in percent.
type CMYK struct {
	C float64 `json:"c"`
	M float64 `json:"m"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// String formats the colour as "c% m% y% k%" with integer percentages.
func (c CMYK) String() string {
	return fmt.Sprintf("%d%% %d%% %d%% %d%%",
		int(math.Round(c.C)), int(math.Round(c.M)), int(math.Round(c.Y)), int(math.Round(c.K)))
}

// RGBToCMYK converts RGB to CMYK. Pure black reports c/m/y as zero.
func RGBToCMYK(rgb RGB) CMYK {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	k := 1 - math.Max(r, math.Max(g, b))
	if k >= 1 {
		return CMYK{K: 100}
	}

	return CMYK{
		C: (1 - r - k) / (1 - k) * 100,
		M: (1 - g - k) / (1 - k) * 100,
		Y: (1 - b - k) / (1 - k) * 100,
		K: k * 100,
	}
}
