package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jmylchreest/pigment/internal/colour"
)

const (
	defaultSwatchWidth = 12
	minSwatchWidth     = 4
)

// writePalette writes a palette in the requested format. Previews are only
// drawn for the line-oriented formats.
func writePalette(w io.Writer, p *colour.Palette, format outputFormat, preview bool) error {
	if format == formatJSON {
		data, err := p.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	width := swatchWidth()
	var sb strings.Builder
	for _, r := range p.All() {
		if preview {
			sb.WriteString(swatch(r.RGB, width))
			sb.WriteString(" ")
		}
		sb.WriteString(formatRecord(r, format))
		if r.Name != "" {
			sb.WriteString("  ")
			sb.WriteString(r.Name)
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// formatRecord renders one record as a single field.
func formatRecord(r colour.Record, format outputFormat) string {
	switch format {
	case formatRGB:
		return r.RGB.String()
	case formatHSL:
		return r.HSL
	case formatCMYK:
		return r.CMYK
	default:
		return r.Hex
	}
}

// swatch renders a block of the colour labelled with its hex in a readable
// text colour.
func swatch(c colour.RGB, width int) string {
	label := c.Hex()
	if width < len(label)+2 {
		label = ""
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(colour.ReadableText(c).Hex())).
		Width(width).
		Align(lipgloss.Center).
		Render(label)
}

// swatchWidth sizes swatches to the terminal, falling back to a fixed
// width when stdout is not a terminal.
func swatchWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultSwatchWidth
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 {
		return defaultSwatchWidth
	}
	return max(minSwatchWidth, min(defaultSwatchWidth, cols/6))
}
