// Package file writes frames to a path, typically on the SD card the frame
// boots from.
package file

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"epaperframe/pkg/proto"
)

func New(fs afero.Fs, path string, logger *zap.Logger, opts ...Option) proto.Sink {
	f := &File{
		fs:     fs,
		path:   path,
		logger: logger,
		perm:   0644,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

type File struct {
	fs       afero.Fs
	path     string
	logger   *zap.Logger
	perm     os.FileMode
	atomic   bool
	progress bool
}

func (f *File) Name() string {
	return f.path
}

// Send writes frame to the target path. Without the atomic option a failed
// write can leave a partial file behind.
func (f *File) Send(frame []byte) error {
	if !f.atomic {
		return f.write(f.path, frame)
	}

	tmp := filepath.Join(filepath.Dir(f.path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(f.path), xid.New().String()))
	if err := f.write(tmp, frame); err != nil {
		_ = f.fs.Remove(tmp)
		return err
	}

	if err := f.fs.Rename(tmp, f.path); err != nil {
		_ = f.fs.Remove(tmp)
		return errors.Wrap(err, "rename output failed")
	}

	return nil
}

func (f *File) write(name string, frame []byte) (err error) {
	out, err := f.fs.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, f.perm)
	if err != nil {
		return errors.Wrap(err, "open output failed")
	}

	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close output failed")
		}
	}()

	var w io.Writer = out
	if f.progress {
		w = proto.Progress(out, int64(len(frame)), fmt.Sprintf("Writing %s", f.path))
	}

	n, err := io.Copy(w, bytes.NewReader(frame))
	if err != nil {
		return errors.Wrap(err, "write output failed")
	}

	f.logger.With(
		zap.String("path", name),
		zap.String("size", bytesize.New(float64(n)).String()),
	).Debug("frame written")

	return nil
}
