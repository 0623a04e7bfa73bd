package bitmap

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epaperframe/pkg/palette"
)

func paletted(w, h int, pix ...uint8) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, w, h), palette.Default())
	copy(m.Pix, pix)
	return m
}

func randomIndices(w, h int, seed int64) *image.Paletted {
	r := rand.New(rand.NewSource(seed))
	m := paletted(w, h)
	for i := range m.Pix {
		m.Pix[i] = uint8(r.Intn(palette.Len()))
	}
	return m
}

func TestEncodeWhiteScreen(t *testing.T) {
	m := paletted(800, 480)
	for i := range m.Pix {
		m.Pix[i] = palette.White
	}

	bs, err := Encode(m)
	require.NoError(t, err)
	require.Len(t, bs, 192000)
	assert.Equal(t, Size(800, 480), len(bs))
	for _, b := range bs {
		require.Equal(t, byte(0x11), b)
	}
}

func TestEncodeNibbleOrder(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		pix  []uint8
		want []byte
	}{
		{"pair", 2, 1, []uint8{5, 10}, []byte{0x5a}},
		{"row", 4, 1, []uint8{5, 10, 3, 12}, []byte{0x5a, 0x3c}},
		{"rows", 2, 2, []uint8{1, 2, 3, 4}, []byte{0x12, 0x34}},
		{"palette", 6, 1, []uint8{0, 1, 2, 3, 4, 5}, []byte{0x01, 0x23, 0x45}},
		{"empty", 0, 0, nil, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs, err := Encode(paletted(tt.w, tt.h, tt.pix...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, bs)
		})
	}
}

func TestEncodeOddWidth(t *testing.T) {
	m := paletted(3, 2)

	_, err := Encode(m)
	assert.True(t, errors.Is(err, ErrOddWidth))

	var buf bytes.Buffer
	err = Write(&buf, m)
	assert.True(t, errors.Is(err, ErrOddWidth))
	assert.Zero(t, buf.Len())
}

func TestEncodeIndexRange(t *testing.T) {
	m := paletted(4, 1, 1, 2, 16, 3)

	_, err := Encode(m)
	assert.True(t, errors.Is(err, ErrIndexRange))
}

func TestWriteMatchesEncode(t *testing.T) {
	m := randomIndices(800, 480, 7)

	bs, err := Encode(m)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))
	assert.Equal(t, bs, buf.Bytes())
}

func TestRoundTrip(t *testing.T) {
	m := randomIndices(64, 10, 3)

	bs, err := Encode(m)
	require.NoError(t, err)
	require.Len(t, bs, 320)

	var split []uint8
	for _, b := range bs {
		split = append(split, b>>4, b&0x0f)
	}
	assert.Equal(t, m.Pix, split)

	d, err := Decode(bs, 64, 10, m.Palette)
	require.NoError(t, err)
	assert.Equal(t, m.Pix, d.Paletted().Pix)

	r, err := Read(bytes.NewReader(bs), 64, 10, m.Palette)
	require.NoError(t, err)
	assert.Equal(t, bs, r.Pix)
}

func TestEncodeSubImage(t *testing.T) {
	m := paletted(6, 2, 0, 1, 2, 3, 4, 5, 6, 5, 4, 3, 2, 1)
	sub := m.SubImage(image.Rect(2, 0, 6, 2)).(*image.Paletted)

	bs, err := Encode(sub)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x23, 0x45, 0x43, 0x21}, bs)

	n, err := Pack(sub)
	require.NoError(t, err)
	assert.Equal(t, sub.Bounds(), n.Bounds())
	assert.Equal(t, uint8(2), n.ColorIndexAt(2, 0))
	assert.Equal(t, uint8(1), n.ColorIndexAt(5, 1))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(make([]byte, 10), 3, 2, palette.Default())
	assert.True(t, errors.Is(err, ErrOddWidth))

	_, err = Decode(make([]byte, 10), 4, 4, palette.Default())
	assert.True(t, errors.Is(err, ErrShortFrame))

	_, err = Read(bytes.NewReader(make([]byte, 5)), 4, 4, palette.Default())
	assert.True(t, errors.Is(err, ErrShortFrame))
}

func TestNewNibble(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantPanic  bool
		wantStride int
		wantPixLen int
	}{
		{"800x480", image.Rect(0, 0, 800, 480), false, 400, 192000},
		{"4x2", image.Rect(0, 0, 4, 2), false, 2, 4},
		{"offset", image.Rect(10, 20, 14, 22), false, 2, 4},
		{"odd width panics", image.Rect(0, 0, 5, 2), true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantPanic {
				assert.Panics(t, func() { NewNibble(tt.rect, palette.Default()) })
				return
			}
			n := NewNibble(tt.rect, palette.Default())
			assert.Equal(t, tt.rect, n.Bounds())
			assert.Equal(t, tt.wantStride, n.Stride)
			assert.Len(t, n.Pix, tt.wantPixLen)
		})
	}
}

func TestNibbleSetAt(t *testing.T) {
	p := palette.Default()
	n := NewNibble(image.Rect(0, 0, 4, 1), p)

	n.Set(0, 0, color.RGBA{191, 0, 0, 0xff})
	n.Set(1, 0, color.RGBA{255, 243, 56, 0xff})
	n.SetColorIndex(3, 0, palette.Orange)

	assert.Equal(t, []byte{0x45, 0x06}, n.Pix)
	assert.Equal(t, p[palette.Red], n.At(0, 0))
	assert.Equal(t, p[palette.Black], n.At(2, 0))
	assert.Equal(t, uint8(0), n.ColorIndexAt(9, 9))

	// out of bounds writes are ignored
	n.SetColorIndex(4, 0, palette.White)
	assert.Equal(t, []byte{0x45, 0x06}, n.Pix)
}

func TestNibbleAtWithoutPalette(t *testing.T) {
	n := NewNibble(image.Rect(0, 0, 2, 2), nil)
	n.SetColorIndex(1, 1, palette.Red)

	assert.Equal(t, color.Transparent, n.At(1, 1))
	assert.Equal(t, color.Transparent, n.At(5, 5))
	assert.Equal(t, palette.Red, n.ColorIndexAt(1, 1))
}
