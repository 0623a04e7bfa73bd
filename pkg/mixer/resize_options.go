package mixer

import "github.com/disintegration/imaging"

type ResizeOption func(c *resizeConfig)

func WithPolicy(p Policy) ResizeOption {
	return func(c *resizeConfig) {
		c.policy = p
	}
}

// WithoutUpscale caps the scale factor at 1.0.
func WithoutUpscale() ResizeOption {
	return func(c *resizeConfig) {
		c.upscale = false
	}
}

func WithFilter(f imaging.ResampleFilter) ResizeOption {
	return func(c *resizeConfig) {
		c.filter = f
	}
}
