package image

import (
	"image"

	"golang.org/x/image/draw"
)

// FitDimensions scales w×h so the longest side is at most maxDim, keeping
// the aspect ratio. Neither side drops below 1.
func FitDimensions(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h
	}
	if w >= h {
		return maxDim, max(1, h*maxDim/w)
	}
	return max(1, w*maxDim/h), maxDim
}

// Downscale returns img as non-premultiplied RGBA with its longest side at
// most maxDim, resampled bilinearly. Images already small enough are only
// converted. The result's Pix has no row padding.
func Downscale(img image.Image, maxDim int) *image.NRGBA {
	src := img.Bounds()
	w, h := FitDimensions(src.Dx(), src.Dy(), maxDim)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
		return dst
	}
	draw.BiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}
