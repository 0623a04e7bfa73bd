// Package frame turns pictures into frames for the 7.3" ACeP e-paper panel.
//
// A frame is produced in four steps, each one working on a fresh image:
//
//	resize    fit the picture in the screen box (Lanczos)
//	canvas    draw it at the top-left of a screen sized background
//	quantize  map every pixel to the nearest panel color, optionally dithered
//	pack      two 4-bit indices per byte, rows top to bottom
package frame

import (
	"image"
	"image/color"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"epaperframe/pkg/bitmap"
	"epaperframe/pkg/mixer"
	"epaperframe/pkg/palette"
	"epaperframe/pkg/quant"
)

// Panel resolution.
const (
	Width  = 800
	Height = 480
)

func New(logger *zap.Logger, opts ...Option) (*Frame, error) {
	f := &Frame{
		logger:  logger,
		width:   Width,
		height:  Height,
		palette: palette.Default(),
		policy:  mixer.ScaleRatio,
		upscale: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.width <= 0 || f.height <= 0 {
		return nil, errors.Errorf("frame: invalid size %dx%d", f.width, f.height)
	}

	q, err := quant.New(f.palette, f.dither)
	if err != nil {
		return nil, err
	}
	f.quant = q

	if f.background == nil {
		f.background = color.White
		if len(f.palette) > int(palette.Background) {
			f.background = f.palette[palette.Background]
		}
	}

	return f, nil
}

type Frame struct {
	logger     *zap.Logger
	width      int
	height     int
	palette    color.Palette
	background color.Color
	dither     bool
	policy     mixer.Policy
	upscale    bool
	quant      *quant.Quantizer
}

func (f *Frame) Size() (int, int) {
	return f.width, f.height
}

func (f *Frame) Palette() color.Palette {
	return f.palette
}

func (f *Frame) resizeOptions() []mixer.ResizeOption {
	opts := []mixer.ResizeOption{mixer.WithPolicy(f.policy)}
	if !f.upscale {
		opts = append(opts, mixer.WithoutUpscale())
	}
	return opts
}

// Process runs resize, canvas and quantize on src.
func (f *Frame) Process(src image.Image) *image.Paletted {
	b := src.Bounds()

	resized := mixer.Resize(src, f.width, f.height, f.resizeOptions()...)
	f.logger.With(
		zap.Int("w", b.Dx()),
		zap.Int("h", b.Dy()),
		zap.Int("resizedW", resized.Bounds().Dx()),
		zap.Int("resizedH", resized.Bounds().Dy()),
		zap.Stringer("policy", f.policy),
		zap.Bool("upscale", f.upscale),
	).Debug("resized")

	canvas := mixer.Canvas(resized, f.width, f.height, f.background)
	f.logger.With(zap.Int("w", f.width), zap.Int("h", f.height)).Debug("canvas")

	quantized := f.quant.Quantize(canvas)
	f.logger.With(zap.Bool("dithering", f.dither)).Debug("quantized")

	return quantized
}

// Encode processes src and returns the packed frame.
func (f *Frame) Encode(src image.Image) (*image.Paletted, []byte, error) {
	m := f.Process(src)
	bs, err := bitmap.Encode(m)
	if err != nil {
		return m, nil, err
	}
	return m, bs, nil
}

// Write processes src and streams the packed frame to w.
func (f *Frame) Write(w io.Writer, src image.Image) error {
	return bitmap.Write(w, f.Process(src))
}
