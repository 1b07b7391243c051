package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// OKLab is a colour in the Oklab perceptual space.
// L is in [0,1]; A and B are roughly within [-0.4,0.4].
type OKLab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// OKLCh is the cylindrical form of OKLab. H is in degrees.
type OKLCh struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

// colorfulFromRGB converts to go-colorful's float representation.
func colorfulFromRGB(rgb RGB) colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

// ToOKLab converts 8-bit sRGB into Oklab.
func ToOKLab(rgb RGB) OKLab {
	r, g, b := colorfulFromRGB(rgb).LinearRgb()

	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	l = math.Cbrt(l)
	m = math.Cbrt(m)
	s = math.Cbrt(s)

	return OKLab{
		L: 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A: 1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B: 0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

// HSLToOKLab is a convenience for the generator's working space.
func HSLToOKLab(c HSL) OKLab {
	return ToOKLab(c.RGB())
}

// Distance is the Euclidean distance between two Oklab colours.
func (c OKLab) Distance(o OKLab) float64 {
	dl := c.L - o.L
	da := c.A - o.A
	db := c.B - o.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// Chroma is the distance from the neutral axis.
func (c OKLab) Chroma() float64 {
	return math.Hypot(c.A, c.B)
}

// LCh converts to cylindrical coordinates.
func (c OKLab) LCh() OKLCh {
	h := math.Atan2(c.B, c.A) * 180 / math.Pi
	return OKLCh{L: c.L, C: c.Chroma(), H: NormalizeHue(h)}
}

// Lab converts back to rectangular coordinates.
func (c OKLCh) Lab() OKLab {
	rad := c.H * math.Pi / 180
	return OKLab{L: c.L, A: c.C * math.Cos(rad), B: c.C * math.Sin(rad)}
}

// RGB converts an Oklab colour to 8-bit sRGB, clamping out-of-gamut values.
func (c OKLab) RGB() RGB {
	l := c.L + 0.3963377774*c.A + 0.2158037573*c.B
	m := c.L - 0.1055613458*c.A - 0.0638541728*c.B
	s := c.L - 0.0894841775*c.A - 1.2914855480*c.B

	l = l * l * l
	m = m * m * m
	s = s * s * s

	lin := colorful.LinearRgb(
		4.0767416621*l-3.3077115913*m+0.2309699292*s,
		-1.2684380046*l+2.6097574011*m-0.3413193965*s,
		-0.0041960863*l-0.7034186147*m+1.7076147010*s,
	)
	r, g, b := lin.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// RGB converts an OKLCh colour to 8-bit sRGB.
// Out-of-gamut colours have their chroma reduced until they fit.
func (c OKLCh) RGB() RGB {
	for i := 0; i < 24; i++ {
		if inGamut(c.Lab()) {
			break
		}
		c.C *= 0.9
	}
	return c.Lab().RGB()
}

// inGamut reports whether an Oklab colour maps inside the sRGB cube.
func inGamut(c OKLab) bool {
	l := c.L + 0.3963377774*c.A + 0.2158037573*c.B
	m := c.L - 0.1055613458*c.A - 0.0638541728*c.B
	s := c.L - 0.0894841775*c.A - 1.2914855480*c.B
	l, m, s = l*l*l, m*m*m, s*s*s
	return colorful.LinearRgb(
		4.0767416621*l-3.3077115913*m+0.2309699292*s,
		-1.2684380046*l+2.6097574011*m-0.3413193965*s,
		-0.0041960863*l-0.7034186147*m+1.7076147010*s,
	).IsValid()
}

// Distance returns the Oklab distance between two sRGB colours.
func Distance(a, b RGB) float64 {
	return ToOKLab(a).Distance(ToOKLab(b))
}

// DeltaE2000 returns the CIEDE2000 difference between two colours.
// Values below ~2.3 are generally indistinguishable.
func DeltaE2000(a, b RGB) float64 {
	return colorfulFromRGB(a).DistanceCIEDE2000(colorfulFromRGB(b)) * 100
}
