package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pigment/internal/colour"
)

// conversion is the full description of one colour.
type conversion struct {
	colour.Record
	OKLab         [3]float64 `json:"oklab"`
	Luminance     float64    `json:"luminance"`
	ContrastWhite float64    `json:"contrast_white"`
	ContrastBlack float64    `json:"contrast_black"`
	DeltaE        *float64   `json:"delta_e,omitempty"`
}

func newConvertCmd(_ *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "convert <hex> [hex...]",
		Short: "Show a colour in every supported space",
		Long: `Show each colour as hex, RGB, HSL, CMYK and Oklab, with its nearest
name, relative luminance and WCAG contrast against white and black.

When several colours are given, each is also compared with the first
using CIEDE2000.

Examples:
  pigment convert "#3366CC"
  pigment convert 3366cc 3466cb --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := parseRecords(args)
			if err != nil {
				return err
			}

			convs := make([]conversion, len(records))
			for i, r := range records {
				convs[i] = describe(r.WithName())
				if i > 0 {
					d := colour.DeltaE2000(records[0].RGB, r.RGB)
					convs[i].DeltaE = &d
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(convs, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to convert to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			for i, c := range convs {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s  %s\n", c.Hex, c.Name)
				fmt.Fprintf(out, "  rgb       %s\n", c.RGB.String())
				fmt.Fprintf(out, "  hsl       %s\n", c.HSL)
				fmt.Fprintf(out, "  cmyk      %s\n", c.CMYK)
				fmt.Fprintf(out, "  oklab     %.4f %.4f %.4f\n", c.OKLab[0], c.OKLab[1], c.OKLab[2])
				fmt.Fprintf(out, "  contrast  %.2f:1 on white, %.2f:1 on black\n", c.ContrastWhite, c.ContrastBlack)
				if c.DeltaE != nil {
					fmt.Fprintf(out, "  ΔE2000    %.2f from %s\n", *c.DeltaE, convs[0].Hex)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func describe(r colour.Record) conversion {
	lab := colour.ToOKLab(r.RGB)
	white := colour.RGB{R: 255, G: 255, B: 255}
	return conversion{
		Record:        r,
		OKLab:         [3]float64{lab.L, lab.A, lab.B},
		Luminance:     colour.Luminance(r.RGB),
		ContrastWhite: colour.ContrastRatio(r.RGB, white),
		ContrastBlack: colour.ContrastRatio(r.RGB, colour.RGB{}),
	}
}
