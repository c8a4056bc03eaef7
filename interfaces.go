package realpath

import "io/fs"

type LstatFs interface {
	Lstat(name string) (fs.FileInfo, error)
}

type ReadLinkFs interface {
	ReadLink(name string) (string, error)
}

type GetwdFs interface {
	Getwd() (string, error)
}

// Fs is the set of metadata queries a Resolver consults.
//
// Lstat must not follow a symlink in the final element of name.
// ReadLink is only called on names Lstat reported as symlinks.
// Getwd is only called for relative input and must return an absolute path.
type Fs interface {
	LstatFs
	ReadLinkFs
	GetwdFs
}
