package mixer

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Policy picks how the scale factor is derived from the source and target sizes.
type Policy int

const (
	// ScaleRatio divides the source size by the target size and takes the
	// smaller quotient. Frames produced by earlier releases of the converter
	// were sized this way.
	ScaleRatio Policy = iota
	// ScaleFit divides the target size by the source size and takes the
	// smaller quotient, so the picture keeps its aspect ratio.
	ScaleFit
)

func (p Policy) String() string {
	switch p {
	case ScaleRatio:
		return "ratio"
	case ScaleFit:
		return "fit"
	}
	return "unknown"
}

type resizeConfig struct {
	policy  Policy
	upscale bool
	filter  imaging.ResampleFilter
}

// Resize scales src so that it fits in a w x h box. The result is never
// larger than the box on either axis.
func Resize(src image.Image, w, h int, opts ...ResizeOption) *image.NRGBA {
	cfg := newResizeConfig(opts)
	b := src.Bounds()
	nw, nh := resizedBounds(b.Dx(), b.Dy(), w, h, cfg)
	return imaging.Resize(src, nw, nh, cfg.filter)
}

// ResizedBounds returns the size Resize would produce for a sw x sh source.
func ResizedBounds(sw, sh, w, h int, opts ...ResizeOption) (int, int) {
	return resizedBounds(sw, sh, w, h, newResizeConfig(opts))
}

func newResizeConfig(opts []ResizeOption) *resizeConfig {
	cfg := &resizeConfig{
		policy:  ScaleRatio,
		upscale: true,
		filter:  imaging.Lanczos,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

func resizedBounds(sw, sh, w, h int, cfg *resizeConfig) (int, int) {
	if sw <= 0 || sh <= 0 {
		return 0, 0
	}

	var scale float64
	switch cfg.policy {
	case ScaleFit:
		scale = math.Min(float64(w)/float64(sw), float64(h)/float64(sh))
	default:
		scale = math.Min(float64(sw)/float64(w), float64(sh)/float64(h))
	}

	if !cfg.upscale && scale > 1 {
		scale = 1
	}

	return fitSide(scale, sw, w), fitSide(scale, sh, h)
}

// fitSide scales one side, caps it at the bound and keeps at least one pixel.
func fitSide(scale float64, side, bound int) int {
	n := int(math.Floor(scale * float64(side)))
	if n > bound {
		n = bound
	}
	if n < 1 {
		n = 1
	}
	return n
}
