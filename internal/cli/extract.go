package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/extract"
	"github.com/jmylchreest/pigment/internal/image"
	httputil "github.com/jmylchreest/pigment/internal/util/http"
	"github.com/jmylchreest/pigment/internal/util/imagecache"
)

type extractOptions struct {
	count   int
	max     int
	all     bool
	names   bool
	cache   bool
	format  outputFormat
	preview bool
}

func newExtractCmd(a *app) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a colour palette from an image",
		Long: `Extract the representative colours of an image.

The image is downscaled, transparent pixels are ignored, similar colours
are merged, and the survivors are ranked by how much of the image they
cover and how colourful they are. The top colours form the palette.

Supported image formats: JPEG, PNG, GIF, WebP, AVIF. HTTP(S) URLs are fetched.

Examples:
  # The five strongest colours
  pigment extract wallpaper.jpg

  # Every candidate with its score
  pigment extract --all wallpaper.png

  # Eight colours as JSON, keeping the download for next time
  pigment extract -c 8 -f json --cache https://example.com/photo.webp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, a, opts, args[0])
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&opts.count, "count", "c", 5, "number of colours in the palette (clamped to 2-10)")
	fs.IntVar(&opts.max, "max", 0, "maximum candidates to consider (0 = configured default)")
	fs.BoolVar(&opts.all, "all", false, "list every candidate with population and score")
	fs.BoolVar(&opts.names, "names", false, "annotate colours with their nearest name")
	fs.BoolVar(&opts.cache, "cache", false, "keep downloaded images in the user cache directory")
	addFormatFlags(fs, &opts.format, &opts.preview)

	return cmd
}

func runExtract(cmd *cobra.Command, a *app, opts *extractOptions, path string) error {
	if err := image.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	logger := a.logger.Named("extract")
	logger.Debug("loading image", "path", path)

	loader := image.NewSmartLoader(httputil.FetchOptions{})
	if opts.cache && image.IsURL(path) {
		c, err := imagecache.New("", httputil.FetchOptions{})
		if err != nil {
			return fmt.Errorf("failed to open image cache: %w", err)
		}
		logger.Debug("using image cache", "dir", c.Dir(), "file", c.Path(path))
		loader.WithCache(c)
	}

	img, err := loader.Load(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	b := img.Bounds()
	logger.Debug("image loaded", "width", b.Dx(), "height", b.Dy())

	ex := extract.New(a.cfg.Extract, logger)
	candidates, err := ex.ImageCandidates(img, opts.max)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	if len(candidates) == 0 {
		logger.Warn("image has no opaque pixels", "path", path)
	}

	out := cmd.OutOrStdout()
	if opts.all && opts.format != formatJSON {
		writeCandidates(out, candidates)
		return nil
	}

	if !opts.all {
		active := extract.ClampActive(opts.count, len(candidates))
		if active != opts.count && len(candidates) > 0 {
			logger.Info("palette size clamped", "requested", opts.count, "active", active, "available", len(candidates))
		}
		candidates = candidates[:active]
	}

	records := make([]colour.Record, len(candidates))
	for i, c := range candidates {
		records[i] = c.Record
		if opts.names {
			records[i] = records[i].WithName()
		}
	}
	if err := writePalette(out, colour.NewPalette(path, records), opts.format, opts.preview); err != nil {
		return fmt.Errorf("failed to write palette: %w", err)
	}
	return nil
}

// writeCandidates prints the full candidate list as a table.
func writeCandidates(w io.Writer, candidates []extract.Candidate) {
	t := NewTable([]string{"#", "HEX", "SWATCH", "POPULATION", "SHARE", "SCORE"})
	for i, c := range candidates {
		t.AddRow([]string{
			strconv.Itoa(i + 1),
			c.Record.Hex,
			swatch(c.Record.RGB, 6),
			strconv.Itoa(c.Population),
			fmt.Sprintf("%.1f%%", c.Frequency*100),
			fmt.Sprintf("%.4f", c.Score),
		})
	}
	fmt.Fprint(w, t.Render())
}
