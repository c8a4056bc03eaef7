// Package errdef aliases the errno values the resolver classifies its failures with.
package errdef

import "io/fs"

type errTy struct {
	Base    error
	Message string
}

func newErr(base error, msg string) error {
	return &errTy{
		Base:    base,
		Message: msg,
	}
}

func (e *errTy) Error() string {
	return e.Message
}

func (e *errTy) Unwrap() error {
	return e.Base
}

var (
	EINVAL       = newErr(fs.ErrInvalid, "invalid argument")
	ENAMETOOLONG = newErr(fs.ErrInvalid, "file name too long")
	ENOENT       = newErr(fs.ErrNotExist, "no such file or directory")
	ENOTDIR      = newErr(fs.ErrInvalid, "not a directory")
	ELOOP        = newErr(fs.ErrInvalid, "too many levels of symbolic links")
	ERANGE       = newErr(fs.ErrInvalid, "result too large")
)
