package generator

import (
	"fmt"
	"strings"
)

// Mode selects the generation strategy.
type Mode string

const (
	// ModeRandom picks one of the variety sub-strategies per call.
	ModeRandom Mode = "random"

	ModeMonochromatic      Mode = "monochromatic"
	ModeAnalogous          Mode = "analogous"
	ModeComplementary      Mode = "complementary"
	ModeSplitComplementary Mode = "split-complementary"
	ModeTriadic            Mode = "triadic"
	ModeTetradic           Mode = "tetradic"
	ModeCompound           Mode = "compound"
	ModeShades             Mode = "shades"

	ModeCyberpunk   Mode = "cyberpunk"
	ModeModernUI    Mode = "modern-ui"
	ModeRetroFuture Mode = "retro-future"
	ModeWarmEarth   Mode = "warm-earth"
	ModeHyperWarm   Mode = "hyper-warm"
)

// Modes returns every supported mode in display order.
func Modes() []Mode {
	return []Mode{
		ModeRandom,
		ModeMonochromatic,
		ModeAnalogous,
		ModeComplementary,
		ModeSplitComplementary,
		ModeTriadic,
		ModeTetradic,
		ModeCompound,
		ModeShades,
		ModeCyberpunk,
		ModeModernUI,
		ModeRetroFuture,
		ModeWarmEarth,
		ModeHyperWarm,
	}
}

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}

// Family groups modes for display: "meta", "harmony" or "theme".
func (m Mode) Family() string {
	switch m {
	case ModeRandom:
		return "meta"
	case ModeCyberpunk, ModeModernUI, ModeRetroFuture, ModeWarmEarth, ModeHyperWarm, ModeCompound, ModeShades:
		return "theme"
	default:
		return "harmony"
	}
}

// ChecksSignature reports whether unseeded runs of this mode are compared
// against recent palette signatures and regenerated on a repeat.
func (m Mode) ChecksSignature() bool {
	switch m {
	case ModeRandom, ModeWarmEarth, ModeHyperWarm:
		return true
	default:
		return false
	}
}

// IsValid reports whether m names a supported mode.
func (m Mode) IsValid() bool {
	for _, valid := range Modes() {
		if m == valid {
			return true
		}
	}
	return false
}

// ParseMode parses a mode name case-insensitively; underscores and spaces
// are accepted in place of hyphens.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", "-", " ", "-").Replace(name)
	switch name {
	case "modernui":
		name = string(ModeModernUI)
	case "retrofuture":
		name = string(ModeRetroFuture)
	case "split", "splitcomplementary":
		name = string(ModeSplitComplementary)
	}

	m := Mode(name)
	if !m.IsValid() {
		return "", fmt.Errorf("unknown mode: %q (valid modes: %s)", s, joinModes(Modes()))
	}
	return m, nil
}

func joinModes(modes []Mode) string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
