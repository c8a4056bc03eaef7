//go:build !plan9

// Package errdef aliases the errno values the resolver classifies its failures with.
package errdef

import "syscall"

var (
	EINVAL       = syscall.EINVAL
	ENAMETOOLONG = syscall.ENAMETOOLONG
	ENOENT       = syscall.ENOENT
	ENOTDIR      = syscall.ENOTDIR
	ELOOP        = syscall.ELOOP
	ERANGE       = syscall.ERANGE
)
