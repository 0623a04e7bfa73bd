package preview

import (
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/spf13/afero"
)

var ErrNoDir = errors.New("preview: no directory given")

// NewTmpFs keeps preview files under dir on the host, creating it if needed.
func NewTmpFs(dir string) (*TmpFs, error) {
	return newTmpFs(afero.NewOsFs(), dir)
}

func newTmpFs(host afero.Fs, dir string) (*TmpFs, error) {
	if dir == "" {
		return nil, ErrNoDir
	}
	if err := host.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create preview dir %s failed", dir)
	}
	return &TmpFs{base: afero.NewBasePathFs(host, dir).(*afero.BasePathFs)}, nil
}

// TmpFs hands out unique file names under a directory.
type TmpFs struct {
	base *afero.BasePathFs
}

// NewFile returns a fresh name relative to the directory.
func (t *TmpFs) NewFile(ext string) string {
	return xid.New().String() + ext
}

// RealPath maps a name from NewFile to a host path.
func (t *TmpFs) RealPath(name string) (string, error) {
	return t.base.RealPath(name)
}

func (t *TmpFs) Fs() afero.Fs {
	return t.base
}
