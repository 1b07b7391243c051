package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/generator"
	"github.com/jmylchreest/pigment/internal/memory"
)

type generateOptions struct {
	mode     generator.Mode
	count    int
	seed     string
	repeat   int
	randSeed uint64
	sort     bool
	names    bool
	format   outputFormat
	preview  bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a colour palette",
		Long: `Generate a palette of distinct, harmonious colours.

Modes:
  random               one of fifteen varied strategies, chosen per palette
  monochromatic        one hue, spread across lightness
  analogous            a narrow arc of neighbouring hues
  complementary        the base hue and its opposite
  split-complementary  the base and the neighbours of its complement
  triadic              three hues 120° apart
  tetradic             four hues 90° apart
  compound             analogous and complementary hues with tints and shades
  shades               one hue, light to dark
  cyberpunk, modern-ui, retro-future, warm-earth, hyper-warm
                       themed recipes

Examples:
  # Five colours from a random strategy
  pigment generate

  # A complementary pair anchored on red
  pigment generate --mode complementary --count 2 --seed "#FF0000"

  # Three palettes in a row, with swatches
  pigment generate --mode warm-earth --repeat 3 --preview

  # Reproducible output
  pigment generate --rand-seed 42 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, a, opts)
		},
	}

	fs := cmd.Flags()
	fs.VarP(newModeValue(generator.ModeRandom, &opts.mode), "mode", "m", "generation mode (see 'pigment modes')")
	fs.IntVarP(&opts.count, "count", "n", 5, "number of colours")
	fs.StringVarP(&opts.seed, "seed", "s", "", "anchor colour as hex, e.g. #3366CC")
	fs.IntVarP(&opts.repeat, "repeat", "r", 1, "number of palettes to generate")
	fs.Uint64Var(&opts.randSeed, "rand-seed", 0, "random seed for reproducible output (0 = time-based)")
	fs.BoolVar(&opts.sort, "sort", false, "sort colours into a visual progression")
	fs.BoolVar(&opts.names, "names", false, "annotate colours with their nearest name")
	addFormatFlags(fs, &opts.format, &opts.preview)

	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, opts *generateOptions) error {
	if opts.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", opts.count)
	}
	if opts.repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", opts.repeat)
	}
	if opts.seed != "" {
		rgb, err := colour.ParseHex(opts.seed)
		if err != nil {
			return fmt.Errorf("invalid seed: %w", err)
		}
		opts.seed = rgb.Hex()
	}

	genOpts := []generator.Option{
		generator.WithConfig(a.cfg.Generator),
		generator.WithMemory(memory.New(a.cfg.Memory)),
		generator.WithLogger(a.logger.Named("generator")),
	}
	if opts.randSeed != 0 {
		genOpts = append(genOpts, generator.WithSeed(opts.randSeed))
	}
	gen := generator.New(genOpts...)

	out := cmd.OutOrStdout()
	for i := 0; i < opts.repeat; i++ {
		records := gen.Generate(opts.mode, opts.count, opts.seed)
		if opts.sort {
			records = generator.SortByVisualProgression(records)
		}
		if opts.names {
			for j := range records {
				records[j] = records[j].WithName()
			}
		}

		if i > 0 && opts.format != formatJSON {
			fmt.Fprintln(out)
		}
		if err := writePalette(out, colour.NewPalette(opts.mode.String(), records), opts.format, opts.preview); err != nil {
			return fmt.Errorf("failed to write palette: %w", err)
		}
	}

	hexes, hues, sigs := gen.Memory().Stats()
	a.logger.Debug("memory after run", "hexes", hexes, "hues", hues, "signatures", sigs)
	return nil
}
