package realpath

import (
	"errors"
	"io/fs"

	"github.com/ngicks/go-fsys-helper/realpath/errdef"
)

// Kind classifies a resolution failure.
type Kind int

const (
	// KindOther is an error propagated unchanged from the filesystem, e.g. EACCES.
	KindOther Kind = iota
	// KindInvalid means the input name or the output buffer was missing or malformed.
	KindInvalid
	// KindNameTooLong means the output buffer, or a scratch buffer sized after it, was exhausted.
	KindNameTooLong
	// KindNotExist means the final component does not exist.
	KindNotExist
	// KindNotDir means a non-final component is not a traversable directory.
	KindNotDir
	// KindLoop means too many symlinks were expanded.
	KindLoop
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid argument"
	case KindNameTooLong:
		return "name too long"
	case KindNotExist:
		return "no such entry"
	case KindNotDir:
		return "not a directory"
	case KindLoop:
		return "too many levels of symbolic links"
	}
	return "other"
}

// Error is returned by [Resolver.Resolve] and [Resolver.Realpath] on failure.
type Error struct {
	// Op is the failed operation: "realpath", "lstat", "readlink" or "getwd".
	Op string
	// Path is the name given to the resolver.
	Path string
	// Resolved is the canonical prefix resolved before the failure.
	// It is identical to the content left in the caller's buffer.
	Resolved string
	Err      error
}

func (e *Error) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Kind classifies e.Err.
func (e *Error) Kind() Kind {
	return kindOfErrno(e.Err)
}

// KindOf classifies err.
// It returns KindOther for nil or unrecognized errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindOther
	}
	var rErr *Error
	if errors.As(err, &rErr) {
		return rErr.Kind()
	}
	return kindOfErrno(err)
}

func kindOfErrno(err error) Kind {
	switch {
	case errors.Is(err, errdef.EINVAL):
		return KindInvalid
	case errors.Is(err, errdef.ENAMETOOLONG):
		return KindNameTooLong
	case errors.Is(err, errdef.ENOENT), errors.Is(err, fs.ErrNotExist):
		return KindNotExist
	case errors.Is(err, errdef.ENOTDIR):
		return KindNotDir
	case errors.Is(err, errdef.ELOOP):
		return KindLoop
	}
	return KindOther
}

// unwrapPathErr strips *fs.PathError so that the errno is reported
// against the path the caller passed rather than an intermediate prefix.
func unwrapPathErr(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
