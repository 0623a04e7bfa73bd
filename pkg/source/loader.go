// Package source opens the pictures to convert, from disk or over http.
package source

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrNotFound = errors.New("source not found")

func NewLoader(fs afero.Fs, logger *zap.Logger, opts ...Option) *Loader {
	l := &Loader{
		fs:     fs,
		cli:    resty.New().SetDoNotParseResponse(true),
		log:    logger,
		orient: true,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

type Loader struct {
	fs       afero.Fs
	cli      *resty.Client
	log      *zap.Logger
	progress bool
	orient   bool
}

func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Load reads src, a path on the loader filesystem or an http(s) URL, and
// decodes it.
func (l *Loader) Load(src string) (image.Image, error) {
	var bs []byte
	var err error
	if isURL(src) {
		bs, err = l.fetch(src)
	} else {
		bs, err = l.read(src)
	}
	if err != nil {
		return nil, err
	}

	return l.decode(src, bs)
}

func (l *Loader) read(path string) ([]byte, error) {
	bs, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNotFound, path)
		}
		return nil, fmt.Errorf("read image failed: %w", err)
	}
	return bs, nil
}

func (l *Loader) fetch(url string) ([]byte, error) {
	resp, err := l.cli.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("download image failed: %w", err)
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, errors.Wrap(ErrNotFound, url)
	case resp.StatusCode() >= http.StatusBadRequest:
		return nil, errors.Errorf("download image failed: %s", resp.Status())
	}

	var dst io.Writer
	var buf bytes.Buffer
	dst = &buf
	if l.progress {
		dst = io.MultiWriter(&buf, progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Downloading %s", url)))
	}

	if _, err := io.Copy(dst, resp.RawBody()); err != nil {
		return nil, fmt.Errorf("download image failed: %w", err)
	}

	return buf.Bytes(), nil
}

func (l *Loader) decode(src string, bs []byte) (image.Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(bs))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s failed", src)
	}

	img, err := imaging.Decode(bytes.NewReader(bs), imaging.AutoOrientation(l.orient))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s failed", src)
	}

	l.log.With(
		zap.String("src", src),
		zap.String("format", format),
		zap.String("size", bytesize.New(float64(len(bs))).String()),
		zap.Int("w", cfg.Width),
		zap.Int("h", cfg.Height),
		zap.Int("orientedW", img.Bounds().Dx()),
		zap.Int("orientedH", img.Bounds().Dy()),
	).Debug("image opened")

	return img, nil
}
