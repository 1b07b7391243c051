// Package memory holds the bounded, in-process history the palette generator
// consults to avoid repeating itself across calls.
package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jmylchreest/pigment/internal/colour"
)

// Config sets the capacity of each history.
type Config struct {
	HexCapacity       int `yaml:"hex_capacity"`
	HueCapacity       int `yaml:"hue_capacity"`
	SignatureCapacity int `yaml:"signature_capacity"`
}

// DefaultConfig returns the default history capacities.
func DefaultConfig() Config {
	return Config{
		HexCapacity:       60,
		HueCapacity:       5,
		SignatureCapacity: 30,
	}
}

// Validate validates the memory configuration.
func (c Config) Validate() error {
	if c.HexCapacity < 0 {
		return fmt.Errorf("hex capacity must not be negative, got %d", c.HexCapacity)
	}
	if c.HueCapacity < 0 {
		return fmt.Errorf("hue capacity must not be negative, got %d", c.HueCapacity)
	}
	if c.SignatureCapacity < 0 {
		return fmt.Errorf("signature capacity must not be negative, got %d", c.SignatureCapacity)
	}
	return nil
}

// Memory is the anti-repetition state shared by generator calls.
// It is safe for concurrent use.
type Memory struct {
	mu sync.Mutex

	hexes  *ring[string]
	hexSet map[string]int
	hues   *ring[float64]
	sigs   *ring[string]
	sigSet map[string]int
	config Config
}

// New creates an empty memory with the given capacities.
func New(cfg Config) *Memory {
	return &Memory{
		hexes:  newRing[string](cfg.HexCapacity),
		hexSet: make(map[string]int),
		hues:   newRing[float64](cfg.HueCapacity),
		sigs:   newRing[string](cfg.SignatureCapacity),
		sigSet: make(map[string]int),
		config: cfg,
	}
}

// NewDefault creates an empty memory with default capacities.
func NewDefault() *Memory {
	return New(DefaultConfig())
}

// Config returns the capacities the memory was built with.
func (m *Memory) Config() Config {
	return m.config
}

// RegisterHex records an emitted hex value. Values already present are not re-added.
func (m *Memory) RegisterHex(hex string) {
	hex = strings.ToUpper(hex)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hexSet[hex] > 0 {
		return
	}
	pushCounted(m.hexes, m.hexSet, hex)
}

// HasHex reports whether hex was emitted recently.
func (m *Memory) HasHex(hex string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hexSet[strings.ToUpper(hex)] > 0
}

// RegisterHue records a base hue.
func (m *Memory) RegisterHue(h float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hues.push(colour.NormalizeHue(h))
}

// HueRecentlyUsed reports whether h lies within threshold degrees
// (circular distance) of any recorded base hue.
func (m *Memory) HueRecentlyUsed(h, threshold float64) bool {
	h = colour.NormalizeHue(h)

	m.mu.Lock()
	defer m.mu.Unlock()

	used := false
	m.hues.each(func(prev float64) bool {
		if colour.HueDistance(h, prev) < threshold {
			used = true
			return false
		}
		return true
	})
	return used
}

// RecentHues returns the recorded base hues, oldest first.
func (m *Memory) RecentHues() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hues.slice()
}

// RegisterSignature records a palette signature. Duplicates are kept so that
// a repeated signature stays "recent" for its full window.
func (m *Memory) RegisterSignature(sig string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pushCounted(m.sigs, m.sigSet, sig)
}

// HasSignature reports whether sig was recorded recently.
func (m *Memory) HasSignature(sig string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sigSet[sig] > 0
}

// Stats reports how many entries each history currently holds.
func (m *Memory) Stats() (hexes, hues, signatures int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hexes.len(), m.hues.len(), m.sigs.len()
}

// Reset empties every history.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hexes.reset()
	m.hues.reset()
	m.sigs.reset()
	clear(m.hexSet)
	clear(m.sigSet)
}

// pushCounted pushes v onto r and keeps the membership counts in set in step.
func pushCounted(r *ring[string], set map[string]int, v string) {
	if len(r.items) == 0 {
		return
	}
	set[v]++
	if evicted, ok := r.push(v); ok {
		set[evicted]--
		if set[evicted] <= 0 {
			delete(set, evicted)
		}
	}
}
