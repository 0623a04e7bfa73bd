package source

import "time"

type Option func(l *Loader)

func WithProgress() Option {
	return func(l *Loader) {
		l.progress = true
	}
}

func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.cli.SetTimeout(d)
	}
}

// WithoutOrientation ignores the EXIF orientation tag of JPEG sources.
func WithoutOrientation() Option {
	return func(l *Loader) {
		l.orient = false
	}
}
