package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() with no sources = %+v, want defaults", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "pigment.yaml", `
generator:
  similarity_threshold: 0.08
  hue_attempts: 4
memory:
  hex_capacity: 12
extract:
  bucket_size: 8
`)

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Generator.SimilarityThreshold != 0.08 || cfg.Generator.HueAttempts != 4 {
		t.Errorf("generator section not applied: %+v", cfg.Generator)
	}
	if cfg.Memory.HexCapacity != 12 {
		t.Errorf("HexCapacity = %d, want 12", cfg.Memory.HexCapacity)
	}
	if cfg.Extract.BucketSize != 8 {
		t.Errorf("BucketSize = %d, want 8", cfg.Extract.BucketSize)
	}
	if cfg.Memory.HueCapacity != Default().Memory.HueCapacity {
		t.Error("keys absent from the file should keep their defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.yaml"), wantErr: "failed to read config file"},
		{name: "bad extension", path: writeFile(t, "pigment.toml", "x = 1"), wantErr: "unsupported config file extension"},
		{name: "bad yaml", path: writeFile(t, "bad.yaml", "generator: [1, 2"), wantErr: "failed to parse YAML"},
		{name: "invalid values", path: writeFile(t, "invalid.yml", "extract:\n  bucket_size: 0\n"), wantErr: "extract: bucket size"},
		{name: "NaN threshold", path: writeFile(t, "nan.yaml", "generator:\n  similarity_threshold: .nan\n"), wantErr: "generator: similarity threshold must be a finite number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, "")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	// The process environment wins over the env file.
	t.Setenv("PIGMENT_HEX_HISTORY", "77")
	t.Cleanup(func() { _ = os.Unsetenv("PIGMENT_HUE_HISTORY") })

	path := writeFile(t, ".env", "PIGMENT_HUE_HISTORY=9\nPIGMENT_HEX_HISTORY=5\n")
	cfg, err := Load("", path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Memory.HueCapacity != 9 {
		t.Errorf("HueCapacity = %d, want 9 from env file", cfg.Memory.HueCapacity)
	}
	if cfg.Memory.HexCapacity != 77 {
		t.Errorf("HexCapacity = %d, want 77 from process env", cfg.Memory.HexCapacity)
	}

	if _, err := Load("", filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for missing env file")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PIGMENT_SIMILARITY_THRESHOLD": "0.07",
		"PIGMENT_SIGNATURE_RETRIES":    " 3 ",
		"PIGMENT_ALPHA_THRESHOLD":      "200",
		"PIGMENT_DULL_RATIO":           "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Generator.SimilarityThreshold != 0.07 {
		t.Errorf("SimilarityThreshold = %v, want 0.07", cfg.Generator.SimilarityThreshold)
	}
	if cfg.Generator.SignatureRetries != 3 {
		t.Errorf("SignatureRetries = %d, want 3", cfg.Generator.SignatureRetries)
	}
	if cfg.Extract.AlphaThreshold != 200 {
		t.Errorf("AlphaThreshold = %d, want 200", cfg.Extract.AlphaThreshold)
	}
	if cfg.Generator.DullRatio != Default().Generator.DullRatio {
		t.Error("empty variable should be ignored")
	}
}

func TestApplyEnvReportsEveryError(t *testing.T) {
	env := map[string]string{
		"PIGMENT_HUE_ATTEMPTS":    "many",
		"PIGMENT_ALPHA_THRESHOLD": "300",
		"PIGMENT_FLAT_RANGE":      "wide",
		"PIGMENT_DULL_RATIO":      "NaN",
		"PIGMENT_CHROMA_WEIGHT":   "+Inf",
	}
	cfg := Default()
	err := cfg.ApplyEnv(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, name := range []string{"PIGMENT_HUE_ATTEMPTS", "PIGMENT_ALPHA_THRESHOLD", "PIGMENT_FLAT_RANGE", "PIGMENT_DULL_RATIO", "PIGMENT_CHROMA_WEIGHT"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %s", err, name)
		}
	}
}

func TestEnvNames(t *testing.T) {
	names := EnvNames()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !strings.HasPrefix(n, EnvPrefix) {
			t.Errorf("%s lacks prefix %s", n, EnvPrefix)
		}
		if seen[n] {
			t.Errorf("duplicate variable %s", n)
		}
		seen[n] = true
	}
	if !seen["PIGMENT_MAX_DIMENSION"] || !seen["PIGMENT_HEX_HISTORY"] {
		t.Errorf("EnvNames() = %v", names)
	}
}
