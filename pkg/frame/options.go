package frame

import (
	"image/color"

	"epaperframe/pkg/mixer"
)

type Option func(f *Frame)

// WithSize overrides the panel resolution. The packer rejects odd widths.
func WithSize(w, h int) Option {
	return func(f *Frame) {
		f.width = w
		f.height = h
	}
}

// WithPalette replaces the panel palette, mostly useful in tests.
func WithPalette(p color.Palette) Option {
	return func(f *Frame) {
		f.palette = p
	}
}

func WithBackground(c color.Color) Option {
	return func(f *Frame) {
		f.background = c
	}
}

func WithDithering(on bool) Option {
	return func(f *Frame) {
		f.dither = on
	}
}

func WithPolicy(p mixer.Policy) Option {
	return func(f *Frame) {
		f.policy = p
	}
}

func WithoutUpscale() Option {
	return func(f *Frame) {
		f.upscale = false
	}
}
