// Package config loads the engine, memory and extraction settings from
// defaults, a YAML file, a dotenv file and PIGMENT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/pigment/internal/extract"
	"github.com/jmylchreest/pigment/internal/generator"
	"github.com/jmylchreest/pigment/internal/memory"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PIGMENT_"

// Config aggregates all tunables.
type Config struct {
	Generator generator.Config `yaml:"generator"`
	Memory    memory.Config    `yaml:"memory"`
	Extract   extract.Options  `yaml:"extract"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Generator: generator.DefaultConfig(),
		Memory:    memory.DefaultConfig(),
		Extract:   extract.DefaultOptions(),
	}
}

// Validate validates every section.
func (c Config) Validate() error {
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	if err := c.Memory.Validate(); err != nil {
		return fmt.Errorf("memory: %w", err)
	}
	if err := c.Extract.Validate(); err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	return nil
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then the dotenv file at envFile (if non-empty), then
// the process environment. The result is validated.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if envFile != "" {
		// godotenv.Load never overrides variables already set in the process.
		if err := godotenv.Load(expandPath(envFile)); err != nil {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// mergeFile overlays the YAML file onto c. Keys absent from the file keep
// their current values.
func (c *Config) mergeFile(path string) error {
	path = expandPath(path)
	data, err := os.ReadFile(path) // #nosec G304 - User-specified config file, intended to be read
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" && ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file extension %q (want .yaml or .yml)", ext)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays PIGMENT_* variables onto c. Every malformed value is
// reported.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	var errs []error
	for _, b := range c.bindings() {
		raw, ok := lookup(EnvPrefix + b.name)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if err := b.set(strings.TrimSpace(raw)); err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, b.name, err))
		}
	}
	return errors.Join(errs...)
}

// EnvNames lists every recognised environment variable.
func EnvNames() []string {
	var c Config
	bs := c.bindings()
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = EnvPrefix + b.name
	}
	return names
}

type binding struct {
	name string
	set  func(string) error
}

func (c *Config) bindings() []binding {
	g, m, e := &c.Generator, &c.Memory, &c.Extract
	return []binding{
		floatVar("SIMILARITY_THRESHOLD", &g.SimilarityThreshold),
		floatVar("NEUTRAL_CHROMA", &g.NeutralChroma),
		floatVar("NEUTRAL_LIGHTNESS_GAP", &g.NeutralLightnessGap),
		floatVar("MIN_LIGHTNESS", &g.MinLightness),
		floatVar("MAX_LIGHTNESS", &g.MaxLightness),
		floatVar("HUE_EXCLUSION", &g.HueExclusion),
		intVar("HUE_ATTEMPTS", &g.HueAttempts),
		floatVar("MEMORY_NUDGE", &g.MemoryNudge),
		floatVar("STRICT_SHUFFLE_CHANCE", &g.StrictShuffleChance),
		floatVar("WASHED_OUT_RATIO", &g.WashedOutRatio),
		floatVar("DULL_RATIO", &g.DullRatio),
		floatVar("FLAT_RANGE", &g.FlatRange),
		intVar("SIGNATURE_RETRIES", &g.SignatureRetries),

		intVar("HEX_HISTORY", &m.HexCapacity),
		intVar("HUE_HISTORY", &m.HueCapacity),
		intVar("SIGNATURE_HISTORY", &m.SignatureCapacity),

		uint8Var("ALPHA_THRESHOLD", &e.AlphaThreshold),
		intVar("BUCKET_SIZE", &e.BucketSize),
		floatVar("MERGE_THRESHOLD", &e.MergeThreshold),
		floatVar("OUTPUT_THRESHOLD", &e.OutputThreshold),
		floatVar("CHROMA_WEIGHT", &e.ChromaWeight),
		floatVar("DARK_CUTOFF", &e.DarkCutoff),
		floatVar("LIGHT_CUTOFF", &e.LightCutoff),
		floatVar("EXTREME_PENALTY", &e.ExtremePenalty),
		intVar("MAX_OUTPUTS", &e.MaxOutputs),
		intVar("MAX_DIMENSION", &e.MaxDimension),
	}
}

func floatVar(name string, dst *float64) binding {
	return binding{name: name, set: func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid number %q", s)
		}
		*dst = v
		return nil
	}}
}

func intVar(name string, dst *int) binding {
	return binding{name: name, set: func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*dst = v
		return nil
	}}
}

func uint8Var(name string, dst *uint8) binding {
	return binding{name: name, set: func(s string) error {
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return fmt.Errorf("invalid value %q (want 0-255)", s)
		}
		*dst = uint8(v)
		return nil
	}}
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if expanded, err := homedir.Expand(path); err == nil {
		return expanded
	}
	return path
}
