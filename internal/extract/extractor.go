// Package extract reduces raster pixel data to a small representative palette
// by quantizing into bins, merging perceptually close bins and scoring the
// survivors by dominance and colourfulness.
package extract

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/pigment/internal/colour"
	imageutil "github.com/jmylchreest/pigment/internal/image"
)

// Candidate is one extracted colour with its dominance data.
type Candidate struct {
	Record     colour.Record `json:"record"`
	Population int           `json:"population"`
	Frequency  float64       `json:"frequency"`
	Score      float64       `json:"score"`
	Lab        colour.OKLab  `json:"-"`
}

// Extractor runs the extraction pipeline. It holds no mutable state and is
// safe for concurrent use.
type Extractor struct {
	opts   Options
	logger hclog.Logger
}

// New creates an extractor. A nil logger discards output.
func New(opts Options, logger hclog.Logger) *Extractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Extractor{opts: opts, logger: logger}
}

// Options returns the extractor's options.
func (e *Extractor) Options() Options {
	return e.opts
}

// Extract returns up to maxOutputs representative colours of an RGBA buffer
// (4 bytes per pixel, row-major, no padding) in score order. A maxOutputs of
// zero or less uses Options.MaxOutputs. Zero-size or fully transparent input
// yields an empty list and no error.
func (e *Extractor) Extract(pixels []byte, width, height, maxOutputs int) ([]colour.Record, error) {
	candidates, err := e.Candidates(pixels, width, height, maxOutputs)
	if err != nil {
		return nil, err
	}
	records := make([]colour.Record, len(candidates))
	for i, c := range candidates {
		records[i] = c.Record
	}
	return records, nil
}

// Candidates runs the pipeline and returns the scored candidates.
func (e *Extractor) Candidates(pixels []byte, width, height, maxOutputs int) ([]Candidate, error) {
	if width <= 0 || height <= 0 {
		return []Candidate{}, nil
	}
	if need := width * height * 4; len(pixels) < need {
		return nil, fmt.Errorf("pixel buffer too short for %dx%d: have %d bytes, need %d", width, height, len(pixels), need)
	}
	if maxOutputs <= 0 {
		maxOutputs = e.opts.MaxOutputs
	}

	bins, total := e.binPixels(pixels[:width*height*4])
	if total == 0 {
		e.logger.Debug("no opaque pixels", "width", width, "height", height)
		return []Candidate{}, nil
	}

	clusters := e.merge(bins)
	scored := e.score(clusters, total)
	out := e.selectDistinct(scored, maxOutputs)

	e.logger.Debug("extracted palette",
		"pixels", total, "bins", len(bins), "clusters", len(clusters), "candidates", len(out))
	return out, nil
}

// ExtractImage downscales img to Options.MaxDimension and extracts from it.
func (e *Extractor) ExtractImage(img image.Image, maxOutputs int) ([]colour.Record, error) {
	candidates, err := e.ImageCandidates(img, maxOutputs)
	if err != nil {
		return nil, err
	}
	records := make([]colour.Record, len(candidates))
	for i, c := range candidates {
		records[i] = c.Record
	}
	return records, nil
}

// ImageCandidates is Candidates for an image.Image.
func (e *Extractor) ImageCandidates(img image.Image, maxOutputs int) ([]Candidate, error) {
	small := imageutil.Downscale(img, e.opts.MaxDimension)
	b := small.Bounds()
	return e.Candidates(small.Pix, b.Dx(), b.Dy(), maxOutputs)
}

// Extract runs the pipeline with default options.
func Extract(pixels []byte, width, height, maxOutputs int) ([]colour.Record, error) {
	return New(DefaultOptions(), nil).Extract(pixels, width, height, maxOutputs)
}

// ClampActive bounds the number of colours a caller shows from a candidate
// list of length available to [2, min(10, available)]. With fewer than two
// candidates it returns available.
func ClampActive(requested, available int) int {
	const lo, hi = 2, 10
	if available < lo {
		return max(available, 0)
	}
	return min(max(requested, lo), min(hi, available))
}

// bin accumulates the pixels that quantize to one bucket.
type bin struct {
	key              uint32
	sumR, sumG, sumB int
	count            int
}

// mean is the bin's average colour, not its bucket centre.
func (b bin) mean() colour.RGB {
	n := float64(b.count)
	return colour.RGB{
		R: uint8(math.Round(float64(b.sumR) / n)),
		G: uint8(math.Round(float64(b.sumG) / n)),
		B: uint8(math.Round(float64(b.sumB) / n)),
	}
}

// binPixels quantizes every opaque pixel in a single pass and returns the
// bins sorted by descending count, ties broken by bucket key.
func (e *Extractor) binPixels(pixels []byte) ([]bin, int) {
	step := e.opts.BucketSize
	index := make(map[uint32]int)
	var bins []bin
	total := 0

	for i := 0; i+3 < len(pixels); i += 4 {
		if pixels[i+3] < e.opts.AlphaThreshold {
			continue
		}
		r, g, b := int(pixels[i]), int(pixels[i+1]), int(pixels[i+2])
		key := uint32(quantize(r, step))<<16 | uint32(quantize(g, step))<<8 | uint32(quantize(b, step))

		idx, ok := index[key]
		if !ok {
			idx = len(bins)
			index[key] = idx
			bins = append(bins, bin{key: key})
		}
		bins[idx].sumR += r
		bins[idx].sumG += g
		bins[idx].sumB += b
		bins[idx].count++
		total++
	}

	sort.Slice(bins, func(i, j int) bool {
		if bins[i].count != bins[j].count {
			return bins[i].count > bins[j].count
		}
		return bins[i].key < bins[j].key
	})
	return bins, total
}

// quantize rounds v to the nearest multiple of step, capped at 255.
func quantize(v, step int) int {
	if step <= 1 {
		return v
	}
	q := (v + step/2) / step * step
	return min(q, 255)
}

// cluster is a group of bins judged indistinguishable.
type cluster struct {
	sumR, sumG, sumB int
	count            int
	lab              colour.OKLab
	rgb              colour.RGB
}

func (c *cluster) absorb(b bin) {
	c.sumR += b.sumR
	c.sumG += b.sumG
	c.sumB += b.sumB
	c.count += b.count
	n := float64(c.count)
	c.rgb = colour.RGB{
		R: uint8(math.Round(float64(c.sumR) / n)),
		G: uint8(math.Round(float64(c.sumG) / n)),
		B: uint8(math.Round(float64(c.sumB) / n)),
	}
	c.lab = colour.ToOKLab(c.rgb)
}

// merge greedily folds each bin, most populous first, into the first kept
// cluster within MergeThreshold. The running mean is pixel-weighted, so the
// dominant side of a merge dominates the result.
func (e *Extractor) merge(bins []bin) []cluster {
	var clusters []cluster
	for _, b := range bins {
		lab := colour.ToOKLab(b.mean())
		merged := false
		for i := range clusters {
			if clusters[i].lab.Distance(lab) < e.opts.MergeThreshold {
				clusters[i].absorb(b)
				merged = true
				break
			}
		}
		if !merged {
			c := cluster{}
			c.absorb(b)
			clusters = append(clusters, c)
		}
	}
	return clusters
}

// score ranks clusters by frequency × (1 + k·chroma) × lightness penalty.
func (e *Extractor) score(clusters []cluster, total int) []Candidate {
	out := make([]Candidate, len(clusters))
	for i, c := range clusters {
		freq := float64(c.count) / float64(total)
		penalty := 1.0
		if c.lab.L < e.opts.DarkCutoff || c.lab.L > e.opts.LightCutoff {
			penalty = e.opts.ExtremePenalty
		}
		out[i] = Candidate{
			Record:     colour.NewRecord(c.rgb.Hex()),
			Population: c.count,
			Frequency:  freq,
			Score:      freq * (1 + e.opts.ChromaWeight*c.lab.Chroma()) * penalty,
			Lab:        c.lab,
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Population != out[j].Population {
			return out[i].Population > out[j].Population
		}
		return out[i].Record.Hex < out[j].Record.Hex
	})
	return out
}

// selectDistinct keeps candidates, best first, that are at least
// OutputThreshold from every kept candidate, stopping at limit.
func (e *Extractor) selectDistinct(scored []Candidate, limit int) []Candidate {
	out := make([]Candidate, 0, min(limit, len(scored)))
	for _, c := range scored {
		if len(out) >= limit {
			break
		}
		distinct := true
		for _, kept := range out {
			if kept.Lab.Distance(c.Lab) <= e.opts.OutputThreshold {
				distinct = false
				break
			}
		}
		if distinct {
			out = append(out, c)
		}
	}
	return out
}
