// Package cli_test provides tests for the CLI package.
package cli_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/pigment/internal/cli"
	"github.com/jmylchreest/pigment/internal/colour"
)

// run executes the root command with args on a fresh command tree.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// lines splits output into non-empty lines.
func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

type paletteJSON struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Count  int             `json:"count"`
	Colors []colour.Record `json:"colors"`
}

// TestGenerateCommand tests the generate command across modes and formats.
func TestGenerateCommand(t *testing.T) {
	t.Run("DefaultHexOutput", func(t *testing.T) {
		out, _, err := run(t, "", "generate")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		got := lines(out)
		if len(got) != 5 {
			t.Fatalf("Expected 5 colours, got %d: %q", len(got), out)
		}
		for _, l := range got {
			if _, err := colour.ParseHex(l); err != nil {
				t.Errorf("Line %q is not a hex colour", l)
			}
		}
	})

	t.Run("EveryMode", func(t *testing.T) {
		for _, mode := range []string{"random", "monochromatic", "analogous", "complementary", "split-complementary",
			"triadic", "tetradic", "compound", "shades", "cyberpunk", "modern-ui", "retro-future", "warm-earth", "hyper-warm"} {
			out, _, err := run(t, "", "generate", "-m", mode, "-n", "7")
			if err != nil {
				t.Fatalf("generate -m %s failed: %v", mode, err)
			}
			if got := lines(out); len(got) != 7 {
				t.Errorf("Mode %s produced %d colours, want 7", mode, len(got))
			}
		}
	})

	t.Run("SeededComplementary", func(t *testing.T) {
		out, _, err := run(t, "", "generate", "--mode", "complementary", "--count", "2", "--seed", "ff0000")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		got := lines(out)
		if len(got) != 2 {
			t.Fatalf("Expected 2 colours, got %q", out)
		}
		if !strings.Contains(out, "#FF0000") || !strings.Contains(out, "#00FFFF") {
			t.Errorf("Expected red and cyan, got %q", out)
		}
	})

	t.Run("JSONWithRepeat", func(t *testing.T) {
		out, _, err := run(t, "", "generate", "-m", "triadic", "-n", "3", "-r", "2", "-f", "json", "--names")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		dec := json.NewDecoder(strings.NewReader(out))
		palettes := 0
		for {
			var p paletteJSON
			if err := dec.Decode(&p); err == io.EOF {
				break
			} else if err != nil {
				t.Fatalf("Invalid JSON output: %v\n%s", err, out)
			}
			palettes++
			if p.Source != "triadic" || p.Count != 3 || len(p.Colors) != 3 {
				t.Errorf("Unexpected palette: %+v", p)
			}
			for _, c := range p.Colors {
				if c.Name == "" {
					t.Errorf("Colour %s has no name", c.Hex)
				}
			}
		}
		if palettes != 2 {
			t.Errorf("Expected 2 palettes, got %d", palettes)
		}
	})

	t.Run("ReproducibleWithRandSeed", func(t *testing.T) {
		a, _, err := run(t, "", "generate", "--rand-seed", "42", "-n", "6")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		b, _, _ := run(t, "", "generate", "--rand-seed", "42", "-n", "6")
		if a != b {
			t.Errorf("Same seed gave different output:\n%s\n%s", a, b)
		}
	})

	t.Run("OtherFormats", func(t *testing.T) {
		for format, prefix := range map[string]string{"rgb": "rgb(", "hsl": "hsl(", "cmyk": ""} {
			out, _, err := run(t, "", "generate", "-n", "3", "-f", format)
			if err != nil {
				t.Fatalf("generate -f %s failed: %v", format, err)
			}
			for _, l := range lines(out) {
				if !strings.HasPrefix(l, prefix) {
					t.Errorf("Format %s line %q lacks prefix %q", format, l, prefix)
				}
				if format == "cmyk" && strings.Count(l, "%") != 4 {
					t.Errorf("CMYK line %q", l)
				}
			}
		}
	})

	t.Run("Errors", func(t *testing.T) {
		tests := []struct {
			args []string
			want string
		}{
			{args: []string{"generate", "-m", "rainbow"}, want: "unknown mode"},
			{args: []string{"generate", "-s", "#GGGGGG"}, want: "invalid seed"},
			{args: []string{"generate", "-n", "0"}, want: "count must be at least 1"},
			{args: []string{"generate", "-r", "0"}, want: "repeat must be at least 1"},
			{args: []string{"generate", "-f", "xml"}, want: "invalid format"},
			{args: []string{"generate", "-v", "-q"}, want: "none of the others can be"},
		}
		for _, tt := range tests {
			_, _, err := run(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("%v: error = %v, want containing %q", tt.args, err, tt.want)
			}
		}
	})

	t.Run("VerboseLogsToStderr", func(t *testing.T) {
		out, errOut, err := run(t, "", "generate", "-v", "-n", "3")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if strings.Contains(out, "[DEBUG]") {
			t.Error("Debug logs leaked into stdout")
		}
		if !strings.Contains(errOut, "[DEBUG]") {
			t.Errorf("Expected debug logs on stderr, got %q", errOut)
		}
	})

	t.Run("ConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pigment.yaml")
		if err := os.WriteFile(path, []byte("generator:\n  hue_attempts: 0\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, _, err := run(t, "", "--config", path, "generate")
		if err == nil || !strings.Contains(err.Error(), "hue attempts") {
			t.Errorf("Expected config validation error, got %v", err)
		}
	})
}

func writeTestPNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			c := color.RGBA{R: 255, A: 255}
			switch {
			case x >= 15:
				c = color.RGBA{B: 255, A: 255}
			case x >= 10:
				c = color.RGBA{G: 200, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "bands.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractCommand(t *testing.T) {
	path := writeTestPNG(t)

	t.Run("Palette", func(t *testing.T) {
		out, _, err := run(t, "", "extract", path)
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}
		got := lines(out)
		if len(got) != 3 {
			t.Fatalf("Expected 3 colours (all available), got %q", out)
		}
		if got[0] != "#FF0000" {
			t.Errorf("Expected dominant red first, got %s", got[0])
		}
	})

	t.Run("ClampedToTwo", func(t *testing.T) {
		out, _, err := run(t, "", "extract", "-c", "1", path)
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}
		if got := lines(out); len(got) != 2 {
			t.Errorf("Expected count clamped to 2, got %q", out)
		}
	})

	t.Run("AllCandidates", func(t *testing.T) {
		out, _, err := run(t, "", "extract", "--all", path)
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}
		if !strings.Contains(out, "POPULATION") || !strings.Contains(out, "50.0%") {
			t.Errorf("Expected candidate table, got %q", out)
		}
	})

	t.Run("InvalidImage", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "test.png")
		if err := os.WriteFile(bad, []byte("dummy image data"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, _, err := run(t, "", "extract", bad)
		if err == nil || !strings.Contains(err.Error(), "unsupported or invalid image format") {
			t.Errorf("Expected invalid image error, got %v", err)
		}
	})
}

func TestSortCommand(t *testing.T) {
	out, _, err := run(t, "", "sort", "#0000FF", "#FFFFFF", "#FF0000", "#000000")
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}
	got := lines(out)
	if len(got) != 4 || got[0] != "#000000" || got[1] != "#FFFFFF" {
		t.Errorf("Expected greys first, got %q", got)
	}

	stdin := "// palette\n#00FF2B\n\n#FF00FF  magenta\n#55FF00\n"
	out, _, err = run(t, stdin, "sort")
	if err != nil {
		t.Fatalf("sort from stdin failed: %v", err)
	}
	if want := []string{"#FF00FF", "#55FF00", "#00FF2B"}; strings.Join(lines(out), ",") != strings.Join(want, ",") {
		t.Errorf("sort from stdin = %q, want %q", lines(out), want)
	}

	if _, _, err := run(t, "", "sort", "#12345"); err == nil {
		t.Error("Expected error for malformed colour")
	}
}

func TestConvertCommand(t *testing.T) {
	out, _, err := run(t, "", "convert", "#3366CC")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	for _, want := range []string{"#3366CC", "rgb(51, 102, 204)", "75% 50% 0% 20%", "oklab"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}

	out, _, err = run(t, "", "convert", "--json", "000000", "ffffff")
	if err != nil {
		t.Fatalf("convert --json failed: %v", err)
	}
	var convs []struct {
		Hex           string   `json:"hex"`
		ContrastWhite float64  `json:"contrast_white"`
		DeltaE        *float64 `json:"delta_e"`
	}
	if err := json.Unmarshal([]byte(out), &convs); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(convs) != 2 || convs[0].DeltaE != nil || convs[1].DeltaE == nil {
		t.Fatalf("Unexpected conversions: %+v", convs)
	}
	if convs[0].ContrastWhite < 20.9 {
		t.Errorf("Black on white contrast = %v, want 21", convs[0].ContrastWhite)
	}

	if _, _, err := run(t, "", "convert"); err == nil {
		t.Error("Expected error without arguments")
	}
}

func TestModesCommand(t *testing.T) {
	out, _, err := run(t, "", "modes")
	if err != nil {
		t.Fatalf("modes failed: %v", err)
	}
	for _, want := range []string{"MODE", "monochromatic", "hyper-warm", "per strategy"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in modes output:\n%s", want, out)
		}
	}

	out, _, err = run(t, "", "modes", "--strategies")
	if err != nil {
		t.Fatalf("modes --strategies failed: %v", err)
	}
	for _, want := range []string{"golden-angle", "smooth-gradient", "duotone"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in strategies output:\n%s", want, out)
		}
	}

	out, _, err = run(t, "", "modes", "--vibes")
	if err != nil {
		t.Fatalf("modes --vibes failed: %v", err)
	}
	for _, want := range []string{"VIBE", "vivid", "75-100%", "pastel", "30%"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in vibes output:\n%s", want, out)
		}
	}

	if _, _, err := run(t, "", "modes", "--vibes", "--strategies"); err == nil {
		t.Error("Expected error combining --vibes and --strategies")
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "pigment version") {
		t.Errorf("Unexpected version output: %q", out)
	}
}
