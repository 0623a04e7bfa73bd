package file

import "os"

type Option func(f *File)

// WithAtomic writes to a temporary file next to the target and renames it
// into place once complete.
func WithAtomic() Option {
	return func(f *File) {
		f.atomic = true
	}
}

func WithProgress() Option {
	return func(f *File) {
		f.progress = true
	}
}

func WithPerm(perm os.FileMode) Option {
	return func(f *File) {
		f.perm = perm
	}
}
