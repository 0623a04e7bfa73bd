// Package mixer scales pictures and lays them out on a screen sized canvas.
package mixer

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Canvas returns a w x h image filled with bg with src drawn over it at the
// top-left corner. Transparent parts of src show the background; anything
// outside the canvas is clipped.
func Canvas(src image.Image, w, h int, bg color.Color) *image.NRGBA {
	dst := imaging.New(w, h, bg)
	return imaging.Overlay(dst, src, image.Pt(0, 0), 1.0)
}

// Fill runs Resize and Canvas in one go.
func Fill(src image.Image, w, h int, bg color.Color, opts ...ResizeOption) *image.NRGBA {
	return Canvas(Resize(src, w, h, opts...), w, h, bg)
}
