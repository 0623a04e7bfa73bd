package bitmap

import (
	"image"
	"image/color"
)

// NewNibble allocates a packed frame for r. The width of r must be even.
func NewNibble(r image.Rectangle, p color.Palette) *Nibble {
	w, h := r.Dx(), r.Dy()
	if w%2 != 0 {
		panic("bitmap: odd width")
	}
	return &Nibble{
		Pix:     make([]byte, w/2*h),
		Stride:  w / 2,
		Rect:    r,
		Palette: p,
	}
}

// Nibble is a frame in the layout the panel controller reads: two palette
// indices per byte, rows top to bottom. It implements the draw.Image
// interface.
//
//	bit 7654 3210
//	    LLLL RRRR
//	    x    x+1
type Nibble struct {
	Pix     []byte
	Stride  int
	Rect    image.Rectangle
	Palette color.Palette
}

// Bounds implements the image.Image interface.
func (p *Nibble) Bounds() image.Rectangle {
	return p.Rect
}

// ColorModel implements the image.Image interface.
func (p *Nibble) ColorModel() color.Model {
	return p.Palette
}

// At implements the image.Image interface.
func (p *Nibble) At(x, y int) color.Color {
	if len(p.Palette) == 0 {
		return color.Transparent
	}
	i := p.ColorIndexAt(x, y)
	if int(i) >= len(p.Palette) {
		return p.Palette[0]
	}
	return p.Palette[i]
}

// Set implements the draw.Image interface.
func (p *Nibble) Set(x, y int, c color.Color) {
	p.SetColorIndex(x, y, uint8(p.Palette.Index(c)))
}

func (p *Nibble) ColorIndexAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return 0
	}
	offset, shift := p.pixOffset(x, y)
	return p.Pix[offset] >> shift & 0x0f
}

func (p *Nibble) SetColorIndex(x, y int, index uint8) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, shift := p.pixOffset(x, y)
	p.Pix[offset] = p.Pix[offset]&^(0x0f<<shift) | (index&0x0f)<<shift
}

// Paletted unpacks the frame into one index per byte.
func (p *Nibble) Paletted() *image.Paletted {
	dst := image.NewPaletted(p.Rect, p.Palette)
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			dst.SetColorIndex(x, y, p.ColorIndexAt(x, y))
		}
	}
	return dst
}

// pixOffset counts columns from Rect.Min.X, so the left pixel of a pair is
// always in the high nibble.
func (p *Nibble) pixOffset(x, y int) (offset int, shift uint) {
	dx := x - p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + dx/2
	shift = uint(4 * (1 - dx&1))
	return
}
