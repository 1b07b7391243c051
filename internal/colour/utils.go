package colour

import (
	"math"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	rf := gammaCorrect(float64(c.R) / 255.0)
	rg := gammaCorrect(float64(c.G) / 255.0)
	rb := gammaCorrect(float64(c.B) / 255.0)

	return 0.2126*rf + 0.7152*rg + 0.0722*rb
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// ReadableText returns black or white, whichever contrasts better with bg.
func ReadableText(bg RGB) RGB {
	black := RGB{}
	white := RGB{R: 255, G: 255, B: 255}
	if ContrastRatio(bg, black) >= ContrastRatio(bg, white) {
		return black
	}
	return white
}

// HueDistance calculates the angular distance between two hues on the color wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(NormalizeHue(h1) - NormalizeHue(h2))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpHue interpolates between two hues along the shortest arc.
func LerpHue(a, b, t float64) float64 {
	d := math.Mod(b-a+540, 360) - 180
	return NormalizeHue(a + d*t)
}
