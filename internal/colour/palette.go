package colour

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/google/uuid"
)

// Palette is an ordered collection of colour records produced by one
// generation or extraction run.
type Palette struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Colors []Record `json:"colors"`
}

// NewPalette wraps records in a palette with a fresh ID.
// Source describes where the colours came from (a mode name or an image path).
func NewPalette(source string, records []Record) *Palette {
	return &Palette{
		ID:     uuid.NewString(),
		Source: source,
		Colors: records,
	}
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// ToHex returns the palette colours as hex strings.
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = c.Hex
	}
	return hexColors
}

// paletteJSON is the serialised form of a palette.
type paletteJSON struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Count  int      `json:"count"`
	Colors []Record `json:"colors"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	out := paletteJSON{
		ID:     p.ID,
		Source: p.Source,
		Count:  len(p.Colors),
		Colors: p.Colors,
	}
	if out.Colors == nil {
		out.Colors = []Record{}
	}
	return json.MarshalIndent(out, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colors:\n", len(p.Colors))
	for i, c := range p.Colors {
		fmt.Fprintf(&sb, "  %2d: %s (%s)\n", i+1, c.Hex, c.RGB.String())
	}
	return sb.String()
}

// Get returns the record at the specified index.
func (p *Palette) Get(index int) (Record, error) {
	if index < 0 || index >= len(p.Colors) {
		return Record{}, fmt.Errorf("index out of bounds: %d (palette has %d colors)", index, len(p.Colors))
	}
	return p.Colors[index], nil
}

// All returns an iterator over all records in the palette.
func (p *Palette) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}
