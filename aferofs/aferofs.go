// Package aferofs adapts an [afero.Fs] into a metadata source for realpath.
package aferofs

import (
	"io/fs"
	"path"

	"github.com/spf13/afero"
)

// Fs queries an afero.Fs.
//
// Lstat uses [afero.Lstater] when the wrapped fs implements it and falls back to Stat otherwise.
// ReadLink requires [afero.LinkReader]; without it every call fails with [afero.ErrNoReadlink].
// Filesystems without symlinks, e.g. [afero.MemMapFs], never report one, so ReadLink is not reached.
type Fs struct {
	inner afero.Fs
	wd    string
}

// New wraps fsys. wd is reported as the working directory and must be absolute.
// An empty wd means "/".
func New(fsys afero.Fs, wd string) *Fs {
	if wd == "" {
		wd = "/"
	}
	return &Fs{inner: fsys, wd: path.Clean(wd)}
}

// NewBasePath returns an Fs that resolves every path under base on the OS filesystem,
// using [afero.NewBasePathFs]. wd is interpreted under base as well.
func NewBasePath(base, wd string) *Fs {
	return New(afero.NewBasePathFs(afero.NewOsFs(), base), wd)
}

func (fsys *Fs) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := fsys.inner.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	return fsys.inner.Stat(name)
}

func (fsys *Fs) ReadLink(name string) (string, error) {
	if reader, ok := fsys.inner.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(name)
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
}

func (fsys *Fs) Getwd() (string, error) {
	return fsys.wd, nil
}
