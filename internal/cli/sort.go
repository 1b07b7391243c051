package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/generator"
)

func newSortCmd(_ *app) *cobra.Command {
	var (
		format  outputFormat
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "sort [hex...]",
		Short: "Sort colours into a visual progression",
		Long: `Sort colours into a smooth sequence: greys from dark to light, then
colours around the hue wheel, starting after the widest gap between hues.

Colours are read from the arguments, or one per line from stdin when no
arguments are given.

Examples:
  pigment sort "#FF0000" "#00FF00" "#0000FF" "#808080"
  pigment generate -n 8 | pigment sort --preview`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hexes := args
			if len(hexes) == 0 {
				var err error
				if hexes, err = readHexes(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			records, err := parseRecords(hexes)
			if err != nil {
				return err
			}
			sorted := generator.SortByVisualProgression(records)
			return writePalette(cmd.OutOrStdout(), colour.NewPalette("sort", sorted), format, preview)
		},
	}
	addFormatFlags(cmd.Flags(), &format, &preview)
	return cmd
}

// readHexes reads the first field of every non-empty, non-comment line.
func readHexes(r io.Reader) ([]string, error) {
	var hexes []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		hexes = append(hexes, strings.Fields(line)[0])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read colours: %w", err)
	}
	return hexes, nil
}

// parseRecords strictly parses hex strings into records.
func parseRecords(hexes []string) ([]colour.Record, error) {
	records := make([]colour.Record, 0, len(hexes))
	for _, h := range hexes {
		rgb, err := colour.ParseHex(h)
		if err != nil {
			return nil, err
		}
		records = append(records, colour.NewRecord(rgb.Hex()))
	}
	return records, nil
}
