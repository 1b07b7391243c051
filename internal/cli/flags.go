package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/pigment/internal/generator"
)

// modeValue is a pflag.Value that accepts any generation mode name or alias.
type modeValue generator.Mode

var _ pflag.Value = (*modeValue)(nil)

func newModeValue(def generator.Mode, p *generator.Mode) *modeValue {
	*p = def
	return (*modeValue)(p)
}

func (m *modeValue) String() string { return string(*m) }

func (m *modeValue) Set(s string) error {
	mode, err := generator.ParseMode(s)
	if err != nil {
		return err
	}
	*m = modeValue(mode)
	return nil
}

func (m *modeValue) Type() string { return "mode" }

// outputFormat selects how palettes are written.
type outputFormat string

const (
	formatHex  outputFormat = "hex"
	formatRGB  outputFormat = "rgb"
	formatHSL  outputFormat = "hsl"
	formatCMYK outputFormat = "cmyk"
	formatJSON outputFormat = "json"
)

func outputFormats() []outputFormat {
	return []outputFormat{formatHex, formatRGB, formatHSL, formatCMYK, formatJSON}
}

// formatValue is a pflag.Value restricted to the known output formats.
type formatValue outputFormat

var _ pflag.Value = (*formatValue)(nil)

func newFormatValue(def outputFormat, p *outputFormat) *formatValue {
	*p = def
	return (*formatValue)(p)
}

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	want := outputFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range outputFormats() {
		if want == valid {
			*f = formatValue(want)
			return nil
		}
	}
	names := make([]string, 0, len(outputFormats()))
	for _, valid := range outputFormats() {
		names = append(names, string(valid))
	}
	return fmt.Errorf("invalid format %q (valid: %s)", s, strings.Join(names, ", "))
}

func (f *formatValue) Type() string { return "format" }

// addFormatFlags registers --format and --preview on a command.
func addFormatFlags(fs *pflag.FlagSet, format *outputFormat, preview *bool) {
	fs.VarP(newFormatValue(formatHex, format), "format", "f", "output format (hex, rgb, hsl, cmyk, json)")
	fs.BoolVar(preview, "preview", false, "show coloured swatches in the terminal")
}
