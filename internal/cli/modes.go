package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pigment/internal/generator"
)

func newModesCmd(_ *app) *cobra.Command {
	var strategies, vibes bool

	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List generation modes",
		Long: `List every generation mode with its family, ordering policy and
post-processing. With --strategies, list the sub-strategies the random
mode chooses between. With --vibes, list the saturation and lightness
envelopes drawn for unseeded palettes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if vibes {
				fmt.Fprint(cmd.OutOrStdout(), vibeTable().Render())
				return nil
			}
			if strategies {
				fmt.Fprint(cmd.OutOrStdout(), randomStrategyTable().Render())
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), modeTable().Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&strategies, "strategies", false, "list the random mode's sub-strategies")
	cmd.Flags().BoolVar(&vibes, "vibes", false, "list the vibe envelopes and their weights")
	cmd.MarkFlagsMutuallyExclusive("strategies", "vibes")
	return cmd
}

func modeTable() *Table {
	t := NewTable([]string{"MODE", "FAMILY", "ORDER", "CONTRAST", "NOVELTY CHECK"})
	for _, m := range generator.Modes() {
		order, contrast := "per strategy", "per strategy"
		if s, ok := generator.StrategyFor(m); ok {
			order = s.Traits.Ordering.String()
			contrast = onOff(!s.Traits.SkipContrast)
		}
		t.AddRow([]string{m.String(), m.Family(), order, contrast, onOff(m.ChecksSignature())})
	}
	return t
}

func randomStrategyTable() *Table {
	t := NewTable([]string{"STRATEGY", "ORDER", "CONTRAST"})
	for _, name := range generator.RandomStrategyNames() {
		s, _ := generator.RandomStrategy(name)
		t.AddRow([]string{name, s.Traits.Ordering.String(), onOff(!s.Traits.SkipContrast)})
	}
	return t
}

func vibeTable() *Table {
	t := NewTable([]string{"VIBE", "SATURATION", "LIGHTNESS", "WEIGHT"})
	t.AlignRight(3)
	for _, v := range generator.Vibes() {
		t.AddRow([]string{
			v.Name,
			fmt.Sprintf("%.0f-%.0f%%", v.SatMin, v.SatMax),
			fmt.Sprintf("%.0f-%.0f%%", v.LightMin, v.LightMax),
			fmt.Sprintf("%.0f%%", v.Weight*100),
		})
	}
	return t
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
