// Package palette holds the color table of the 7.3" ACeP e-paper panel.
package palette

import (
	"image/color"

	"github.com/pkg/errors"
)

// Index is the 4-bit value the panel firmware expects for a color.
type Index = uint8

const (
	Black Index = iota
	White
	Green
	Blue
	Red
	Yellow
	Orange
)

// Background is the color used to fill the parts of the screen not covered
// by the picture.
const Background = White

// MaxColors is the largest palette a nibble can address.
const MaxColors = 16

// Color values match the vendor demo code for the panel. The vendor table
// repeats Black as an eighth entry; it is not a distinct color and is left out.
var colors = [...]color.RGBA{
	Black:  {0, 0, 0, 0xff},
	White:  {255, 255, 255, 0xff},
	Green:  {67, 138, 28, 0xff},
	Blue:   {100, 64, 255, 0xff},
	Red:    {191, 0, 0, 0xff},
	Yellow: {255, 243, 56, 0xff},
	Orange: {232, 126, 0, 0xff},
}

var names = [...]string{
	Black:  "black",
	White:  "white",
	Green:  "green",
	Blue:   "blue",
	Red:    "red",
	Yellow: "yellow",
	Orange: "orange",
}

// Default returns a fresh copy of the panel palette, ordered by Index.
func Default() color.Palette {
	p := make(color.Palette, len(colors))
	for i, c := range colors {
		p[i] = c
	}
	return p
}

// Len is the number of colors the panel can show.
func Len() int {
	return len(colors)
}

// Name returns a lower case name for i, or "" when i is not a panel color.
func Name(i Index) string {
	if int(i) >= len(names) {
		return ""
	}
	return names[i]
}

// Validate checks that p can be addressed with 4-bit indices.
func Validate(p color.Palette) error {
	if len(p) == 0 {
		return errors.New("palette: empty")
	}
	if len(p) > MaxColors {
		return errors.Errorf("palette: %d colors do not fit in a nibble", len(p))
	}
	return nil
}
