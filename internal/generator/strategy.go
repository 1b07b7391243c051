package generator

import (
	"fmt"
	"sort"
)

// Ordering is the policy applied to a finished palette before it is returned.
type Ordering int

const (
	// OrderShuffle applies a uniform random permutation.
	OrderShuffle Ordering = iota
	// OrderStrict keeps the generated order but shuffles with a fixed probability.
	OrderStrict
	// OrderPreserve never reorders; used by gradient-like strategies.
	OrderPreserve
)

// String returns the policy name.
func (o Ordering) String() string {
	switch o {
	case OrderShuffle:
		return "shuffle"
	case OrderStrict:
		return "strict"
	case OrderPreserve:
		return "preserve"
	default:
		return fmt.Sprintf("ordering(%d)", int(o))
	}
}

// Traits describe how the engine treats a strategy's output.
type Traits struct {
	Ordering Ordering
	// SkipContrast opts out of the contrast/vibrancy pass.
	SkipContrast bool
	// LockHue stops collision handling from shifting hues, so single-hue
	// strategies stay on their hue.
	LockHue bool
}

// Base is the anchor colour a strategy derives its palette from.
type Base struct {
	Hue    float64
	Sat    float64
	Light  float64
	Vibe   Vibe
	Seeded bool
}

// Strategy is one entry of the generation catalog.
type Strategy struct {
	Name   string
	Traits Traits
	Run    func(b *builder, base Base)
}

var (
	modeStrategies   = map[Mode]Strategy{}
	randomStrategies []Strategy
)

// registerMode binds a strategy to a mode. Called from init.
func registerMode(m Mode, s Strategy) {
	if _, exists := modeStrategies[m]; exists {
		panic(fmt.Sprintf("generator: strategy for mode %q registered twice", m))
	}
	modeStrategies[m] = s
}

// registerRandom adds a sub-strategy to the random mode's catalog. Called from init.
func registerRandom(s Strategy) {
	for _, existing := range randomStrategies {
		if existing.Name == s.Name {
			panic(fmt.Sprintf("generator: random strategy %q registered twice", s.Name))
		}
	}
	randomStrategies = append(randomStrategies, s)
}

// StrategyFor returns the strategy bound to a non-random mode.
func StrategyFor(m Mode) (Strategy, bool) {
	s, ok := modeStrategies[m]
	return s, ok
}

// RandomStrategy returns a random-mode sub-strategy by name.
func RandomStrategy(name string) (Strategy, bool) {
	for _, s := range randomStrategies {
		if s.Name == name {
			return s, true
		}
	}
	return Strategy{}, false
}

// RandomStrategyNames lists the random mode's sub-strategies, sorted.
func RandomStrategyNames() []string {
	names := make([]string, len(randomStrategies))
	for i, s := range randomStrategies {
		names[i] = s.Name
	}
	sort.Strings(names)
	return names
}
