package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Len(t, p, 7)

	tests := []struct {
		index Index
		want  color.RGBA
	}{
		{Black, color.RGBA{0, 0, 0, 0xff}},
		{White, color.RGBA{255, 255, 255, 0xff}},
		{Green, color.RGBA{67, 138, 28, 0xff}},
		{Blue, color.RGBA{100, 64, 255, 0xff}},
		{Red, color.RGBA{191, 0, 0, 0xff}},
		{Yellow, color.RGBA{255, 243, 56, 0xff}},
		{Orange, color.RGBA{232, 126, 0, 0xff}},
	}

	for _, tt := range tests {
		t.Run(Name(tt.index), func(t *testing.T) {
			assert.Equal(t, tt.want, p[tt.index])
		})
	}
}

func TestDefaultIsACopy(t *testing.T) {
	p := Default()
	p[White] = color.RGBA{1, 2, 3, 0xff}

	assert.Equal(t, color.RGBA{255, 255, 255, 0xff}, Default()[White])
}

func TestBackgroundIsWhite(t *testing.T) {
	assert.Equal(t, Index(1), Background)
	assert.Equal(t, "white", Name(Background))
}

func TestName(t *testing.T) {
	assert.Equal(t, "orange", Name(Orange))
	assert.Equal(t, "", Name(7))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Default()))
	assert.Error(t, Validate(nil))
	assert.Error(t, Validate(make(color.Palette, 17)))
	assert.NoError(t, Validate(make(color.Palette, 16)))
}
