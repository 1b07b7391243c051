package colour

import "math"

// namedColour is an entry in the reference table used by NearestName.
type namedColour struct {
	name string
	lab  OKLab
}

// namedHex lists the reference colours. Kept short; names only need to be evocative.
var namedHex = []struct {
	name string
	hex  string
}{
	{"Black", "#000000"},
	{"Charcoal", "#36454F"},
	{"Slate", "#708090"},
	{"Silver", "#C0C0C0"},
	{"Ivory", "#FFFFF0"},
	{"White", "#FFFFFF"},
	{"Maroon", "#800000"},
	{"Crimson", "#DC143C"},
	{"Red", "#FF0000"},
	{"Coral", "#FF7F50"},
	{"Salmon", "#FA8072"},
	{"Terracotta", "#E2725B"},
	{"Rust", "#B7410E"},
	{"Sienna", "#A0522D"},
	{"Chocolate", "#7B3F00"},
	{"Tan", "#D2B48C"},
	{"Sand", "#C2B280"},
	{"Orange", "#FF8C00"},
	{"Amber", "#FFBF00"},
	{"Ochre", "#CC7722"},
	{"Mustard", "#FFDB58"},
	{"Gold", "#FFD700"},
	{"Yellow", "#FFFF00"},
	{"Lime", "#BFFF00"},
	{"Olive", "#808000"},
	{"Chartreuse", "#7FFF00"},
	{"Green", "#008000"},
	{"Emerald", "#50C878"},
	{"Forest", "#228B22"},
	{"Sage", "#B2AC88"},
	{"Mint", "#98FF98"},
	{"Teal", "#008080"},
	{"Turquoise", "#40E0D0"},
	{"Cyan", "#00FFFF"},
	{"Sky", "#87CEEB"},
	{"Azure", "#007FFF"},
	{"Cobalt", "#0047AB"},
	{"Blue", "#0000FF"},
	{"Navy", "#000080"},
	{"Indigo", "#4B0082"},
	{"Violet", "#8F00FF"},
	{"Lavender", "#E6E6FA"},
	{"Purple", "#800080"},
	{"Plum", "#8E4585"},
	{"Magenta", "#FF00FF"},
	{"Fuchsia", "#FF1DCE"},
	{"Pink", "#FFC0CB"},
	{"Rose", "#FF007F"},
	{"Burgundy", "#800020"},
}

var namedTable = buildNamedTable()

func buildNamedTable() []namedColour {
	out := make([]namedColour, len(namedHex))
	for i, n := range namedHex {
		out[i] = namedColour{name: n.name, lab: ToOKLab(HexToRGB(n.hex))}
	}
	return out
}

// NearestName returns the name of the closest reference colour by Oklab distance.
func NearestName(rgb RGB) string {
	lab := ToOKLab(rgb)
	best := ""
	bestDist := math.MaxFloat64
	for _, n := range namedTable {
		if d := lab.Distance(n.lab); d < bestDist {
			bestDist = d
			best = n.name
		}
	}
	return best
}
