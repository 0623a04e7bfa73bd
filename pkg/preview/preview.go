// Package preview shows a converted frame in the desktop image viewer.
package preview

import (
	"image"
	"os"
	"os/exec"
	"runtime"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Opener starts a viewer for the file at path.
type Opener func(path string) error

func NewViewer(tmp *TmpFs, logger *zap.Logger) *Viewer {
	return &Viewer{tmp: tmp, logger: logger, open: systemOpener(logger)}
}

type Viewer struct {
	tmp    *TmpFs
	logger *zap.Logger
	open   Opener
}

// SetOpener replaces the system viewer.
func (v *Viewer) SetOpener(o Opener) {
	v.open = o
}

// Show writes img as a PNG into the temp dir and opens it. The file is left
// in place since viewers may read it after the command returns.
func (v *Viewer) Show(img image.Image) (string, error) {
	name := v.tmp.NewFile(".png")

	f, err := v.tmp.Fs().OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return "", errors.Wrap(err, "create preview failed")
	}

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		_ = f.Close()
		return "", errors.Wrap(err, "encode preview failed")
	}

	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "write preview failed")
	}

	path, err := v.tmp.RealPath(name)
	if err != nil {
		return "", err
	}

	v.logger.With(zap.String("path", path)).Debug("preview written")

	if err := v.open(path); err != nil {
		return path, errors.Wrap(err, "open preview failed")
	}

	return path, nil
}

func systemOpener(logger *zap.Logger) Opener {
	return func(path string) error {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", path)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
		default:
			cmd = exec.Command("xdg-open", path)
		}

		if bs, err := cmd.CombinedOutput(); err != nil {
			logger.With(zap.String("exec", cmd.String()), zap.ByteString("output", bs), zap.Error(err)).Info("failed")
			return err
		}

		return nil
	}
}
