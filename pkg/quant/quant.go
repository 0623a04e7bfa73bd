// Package quant maps true color pictures onto a small fixed palette.
//
// Colors are matched by squared euclidean distance over 8-bit R, G and B,
// ties going to the lowest palette index. Optional Floyd-Steinberg error
// diffusion works on integers only, so a given input always produces the
// same indices whatever the platform.
package quant

import (
	"image"
	"image/color"

	"github.com/pkg/errors"

	"epaperframe/pkg/palette"
)

var ErrPaletteSize = errors.New("quant: palette must hold 1 to 16 colors")

type rgb struct {
	r, g, b int32
}

func toRGB(c color.Color) rgb {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rgb{int32(n.R), int32(n.G), int32(n.B)}
}

func New(p color.Palette, dither bool) (*Quantizer, error) {
	if palette.Validate(p) != nil {
		return nil, errors.Wrapf(ErrPaletteSize, "got %d", len(p))
	}

	q := &Quantizer{
		palette: p,
		colors:  make([]rgb, len(p)),
		dither:  dither,
	}
	for i, c := range p {
		q.colors[i] = toRGB(c)
	}

	return q, nil
}

type Quantizer struct {
	palette color.Palette
	colors  []rgb
	dither  bool
}

func (q *Quantizer) Dithering() bool {
	return q.dither
}

// Index returns the palette index closest to c.
func (q *Quantizer) Index(c color.Color) uint8 {
	return q.nearest(toRGB(c))
}

func (q *Quantizer) nearest(c rgb) uint8 {
	var best uint8
	bestSum := int32(1<<31 - 1)
	for i, p := range q.colors {
		dr, dg, db := c.r-p.r, c.g-p.g, c.b-p.b
		if sum := dr*dr + dg*dg + db*db; sum < bestSum {
			best, bestSum = uint8(i), sum
			if sum == 0 {
				break
			}
		}
	}
	return best
}

// Quantize returns a paletted copy of src. The result starts at (0, 0).
func (q *Quantizer) Quantize(src image.Image) *image.Paletted {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewPaletted(image.Rect(0, 0, w, h), q.palette)

	// Error rows in sixteenths, padded by one on each side so the
	// neighbours of the first and last column need no bounds checks.
	var curr, next []rgb
	if q.dither {
		curr = make([]rgb, w+2)
		next = make([]rgb, w+2)
	}

	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := 0; x < w; x++ {
			c := toRGB(src.At(b.Min.X+x, b.Min.Y+y))
			if !q.dither {
				row[x] = q.nearest(c)
				continue
			}

			e := curr[x+1]
			c = rgb{
				clamp(c.r + round16(e.r)),
				clamp(c.g + round16(e.g)),
				clamp(c.b + round16(e.b)),
			}

			i := q.nearest(c)
			row[x] = i

			p := q.colors[i]
			diffuse(curr, next, x, rgb{c.r - p.r, c.g - p.g, c.b - p.b})
		}

		if q.dither {
			curr, next = next, curr
			for i := range next {
				next[i] = rgb{}
			}
		}
	}

	return dst
}

// diffuse spreads the error d of column x over the padded error rows:
// 7/16 right, 3/16 below left, 5/16 below, 1/16 below right. Shares that
// fall off the image land in the padding and are never read.
func diffuse(curr, next []rgb, x int, d rgb) {
	curr[x+2].add(d, 7)
	next[x].add(d, 3)
	next[x+1].add(d, 5)
	next[x+2].add(d, 1)
}

func (c *rgb) add(d rgb, weight int32) {
	c.r += d.r * weight
	c.g += d.g * weight
	c.b += d.b * weight
}

// round16 turns an error sum in sixteenths into whole units, rounding halves up.
func round16(v int32) int32 {
	return (v + 8) >> 4
}

func clamp(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > 0xff {
		return 0xff
	}
	return v
}
