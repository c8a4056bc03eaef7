// Package osfs provides the OS filesystem as a metadata source for realpath.
package osfs

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Fs forwards metadata queries to the os package.
//
// If base is non empty, every name is joined under base
// and Getwd reports "/", which makes base act as the root directory.
// Symlink targets are returned as stored and thus absolute ones are interpreted
// relative to base by the resolver. This is not a security boundary:
// the OS still follows links in intermediate components of each queried name.
type Fs struct {
	base string
}

// New returns an Fs rooted at base. An empty base means the real root.
func New(base string) *Fs {
	return &Fs{base: base}
}

func (fsys *Fs) path(name string) string {
	if fsys.base == "" {
		return name
	}
	return filepath.Join(fsys.base, filepath.FromSlash(name))
}

func (fsys *Fs) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(fsys.path(name))
}

func (fsys *Fs) ReadLink(name string) (string, error) {
	target, err := os.Readlink(fsys.path(name))
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(target), nil
}

func (fsys *Fs) Getwd() (string, error) {
	if fsys.base != "" {
		return "/", nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(wd), nil
}
