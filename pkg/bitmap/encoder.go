/*
Package bitmap packs paletted frames for the 7.3" ACeP e-paper controller.

The controller takes one 4-bit palette index per pixel, two pixels per byte
with the left pixel in the high nibble. Rows are sent top to bottom and there
is no header, so an 800 by 480 frame is exactly 192000 bytes.
*/
package bitmap

import (
	"bufio"
	"image"
	"image/color"
	"io"

	"github.com/pkg/errors"
)

var (
	ErrOddWidth   = errors.New("bitmap: width must be even")
	ErrIndexRange = errors.New("bitmap: palette index does not fit in a nibble")
	ErrShortFrame = errors.New("bitmap: frame size does not match dimensions")
)

// Size is the packed length of a w x h frame.
func Size(w, h int) int {
	return w * h / 2
}

func check(m *image.Paletted) error {
	b := m.Bounds()
	if b.Dx()%2 != 0 {
		return errors.Wrapf(ErrOddWidth, "got %d", b.Dx())
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		for x, v := range m.Pix[i : i+b.Dx()] {
			if v > 0x0f {
				return errors.Wrapf(ErrIndexRange, "index %d at (%d, %d)", v, b.Min.X+x, y)
			}
		}
	}
	return nil
}

// Pack copies m into a packed frame. The frame keeps the bounds of m.
func Pack(m *image.Paletted) (*Nibble, error) {
	if err := check(m); err != nil {
		return nil, err
	}

	b := m.Bounds()
	d := NewNibble(b, m.Palette)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x += 2 {
			d.Pix[(y-b.Min.Y)*d.Stride+(x-b.Min.X)/2] = m.ColorIndexAt(x, y)<<4 | m.ColorIndexAt(x+1, y)
		}
	}

	return d, nil
}

// Encode returns the packed bytes of m.
func Encode(m *image.Paletted) ([]byte, error) {
	d, err := Pack(m)
	if err != nil {
		return nil, err
	}
	return d.Pix, nil
}

// Write streams the packed bytes of m to w. Nothing is written when m
// cannot be packed.
func Write(w io.Writer, m *image.Paletted) error {
	if err := check(m); err != nil {
		return err
	}

	b := m.Bounds()
	bw := bufio.NewWriter(w)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x += 2 {
			if err := bw.WriteByte(m.ColorIndexAt(x, y)<<4 | m.ColorIndexAt(x+1, y)); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// Decode wraps a packed w x h frame. bs is used in place.
func Decode(bs []byte, w, h int, p color.Palette) (*Nibble, error) {
	if w%2 != 0 {
		return nil, errors.Wrapf(ErrOddWidth, "got %d", w)
	}
	if len(bs) != Size(w, h) {
		return nil, errors.Wrapf(ErrShortFrame, "want %d bytes, got %d", Size(w, h), len(bs))
	}
	return &Nibble{
		Pix:     bs,
		Stride:  w / 2,
		Rect:    image.Rect(0, 0, w, h),
		Palette: p,
	}, nil
}

// Read reads a packed w x h frame from r.
func Read(r io.Reader, w, h int, p color.Palette) (*Nibble, error) {
	if w%2 != 0 {
		return nil, errors.Wrapf(ErrOddWidth, "got %d", w)
	}
	bs := make([]byte, Size(w, h))
	if _, err := io.ReadFull(r, bs); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errors.Wrapf(ErrShortFrame, "want %d bytes", len(bs))
		}
		return nil, err
	}
	return Decode(bs, w, h, p)
}
