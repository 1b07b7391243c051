package colour

// Record is the display form of a colour. Hex is the single source of truth;
// every other field is derived from it by NewRecord.
type Record struct {
	Hex    string `json:"hex"`
	RGB    RGB    `json:"rgb"`
	HSL    string `json:"hsl"`
	CMYK   string `json:"cmyk"`
	Locked bool   `json:"locked"`
	Name   string `json:"name,omitempty"`
}

// NewRecord derives a full display record from a hex string.
// Malformed hex yields the record for black.
func NewRecord(hex string) Record {
	rgb := HexToRGB(hex)
	return Record{
		Hex:  rgb.Hex(),
		RGB:  rgb,
		HSL:  RGBToHSL(rgb).String(),
		CMYK: RGBToCMYK(rgb).String(),
	}
}

// WithName returns a copy of the record named after its nearest known colour.
func (r Record) WithName() Record {
	r.Name = NearestName(r.RGB)
	return r
}

// Color decodes the record's hex into HSL.
func (r Record) Color() HSL {
	return RGBToHSL(r.RGB)
}

// Records builds display records for a list of hex strings.
func Records(hexes []string) []Record {
	out := make([]Record, len(hexes))
	for i, h := range hexes {
		out[i] = NewRecord(h)
	}
	return out
}
