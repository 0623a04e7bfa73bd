package file

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func frame() []byte {
	return bytes.Repeat([]byte{0x11}, 192000)
}

func TestSend(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/sd", 0755))

	s := New(fs, "/sd/photo.bin", zaptest.NewLogger(t))
	assert.Equal(t, "/sd/photo.bin", s.Name())
	require.NoError(t, s.Send(frame()))

	got, err := afero.ReadFile(fs, "/sd/photo.bin")
	require.NoError(t, err)
	assert.Equal(t, frame(), got)
}

func TestSendTruncates(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/photo.bin", bytes.Repeat([]byte{0xff}, 300000), 0644))

	require.NoError(t, New(fs, "/photo.bin", zaptest.NewLogger(t)).Send([]byte{0x01, 0x23}))

	got, err := afero.ReadFile(fs, "/photo.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x23}, got)
}

func TestSendAtomic(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/sd", 0755))

	s := New(fs, "/sd/photo.bin", zaptest.NewLogger(t), WithAtomic())
	require.NoError(t, s.Send(frame()))

	got, err := afero.ReadFile(fs, "/sd/photo.bin")
	require.NoError(t, err)
	assert.Equal(t, frame(), got)

	infos, err := afero.ReadDir(fs, "/sd")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "photo.bin", infos[0].Name())
}

func TestSendReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	assert.Error(t, New(fs, "/photo.bin", zaptest.NewLogger(t)).Send(frame()))
	assert.Error(t, New(fs, "/photo.bin", zaptest.NewLogger(t), WithAtomic()).Send(frame()))

	exists, err := afero.Exists(fs, "/photo.bin")
	require.NoError(t, err)
	assert.False(t, exists)
}
