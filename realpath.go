package realpath

import (
	"cmp"
	"log/slog"
	"strings"

	"github.com/ngicks/go-fsys-helper/realpath/errdef"
	"github.com/ngicks/go-fsys-helper/realpath/internal/boundbuf"
	"github.com/ngicks/go-fsys-helper/realpath/osfs"
)

// following linux's maximum: https://man7.org/linux/man-pages/man7/path_resolution.7.html
const DefaultMaxSymlinks = 40

// PathMax is the buffer size [Resolver.Realpath] allocates.
const PathMax = 4096

type Config struct {
	// Fs is queried for metadata. If nil, the OS filesystem is used.
	Fs Fs
	// MaxSymlinks bounds symlink expansions per call.
	// Resolution fails with ELOOP once the count reaches MaxSymlinks.
	// Zero or negative means DefaultMaxSymlinks.
	MaxSymlinks int
	// Logger receives debug records of symlink expansions and re-runs.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// Resolver canonicalizes paths against an Fs.
//
// A Resolver never changes after New returns,
// so it is safe for concurrent use as long as its Fs is.
type Resolver struct {
	fsys        Fs
	maxSymlinks int
	logger      *slog.Logger
}

// Default resolves against the OS filesystem.
var Default = New(Config{})

func New(cfg Config) *Resolver {
	r := &Resolver{
		fsys:        cfg.Fs,
		maxSymlinks: cmp.Or(max(cfg.MaxSymlinks, 0), DefaultMaxSymlinks),
		logger:      cfg.Logger,
	}
	if r.fsys == nil {
		r.fsys = osfs.New("")
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// MaxSymlinks returns the expansion bound r was built with.
func (r *Resolver) MaxSymlinks() int {
	return r.maxSymlinks
}

// Resolve writes the canonical form of name into buf and returns its length.
//
// The capacity of the output is len(buf); the result occupies buf[:n] and buf[n] is NUL,
// so at most len(buf)-1 bytes of path fit. Nothing past len(buf) is ever written.
//
// If name is relative, it is resolved from the working directory reported by the Fs.
//
// On failure, err is *Error and buf[:n] holds the canonical prefix resolved
// before the failing component (it may be empty). The error wraps one of
// EINVAL (nil buf, empty name or name containing NUL), ENAMETOOLONG, ENOENT
// (the final component is missing), ENOTDIR (a non-final component is missing or not a directory),
// ELOOP, or an error returned from the Fs unchanged.
// Unlike realpath(3) and [path/filepath.EvalSymlinks], an empty name is EINVAL rather than ENOENT.
func (r *Resolver) Resolve(name string, buf []byte) (n int, err error) {
	if len(buf) > 0 {
		buf[0] = 0
	}
	if buf == nil || name == "" || strings.IndexByte(name, 0) >= 0 {
		return 0, &Error{Op: "realpath", Path: name, Err: errdef.EINVAL}
	}

	c := newResolveCtx(r, max(len(buf), len(name))+1)

	src := name
	for {
		boundbuf.Copy(c.work, src, &c.overflow)
		n = c.pass(buf)
		if c.err != nil {
			break
		}
		if !c.spliced {
			break
		}
		src = string(buf[:n])
		r.logger.Debug("re-running on spliced path", slog.String("path", src))
	}

	if c.err != nil {
		return n, &Error{
			Op:       c.op,
			Path:     name,
			Resolved: string(buf[:n]),
			Err:      c.err,
		}
	}
	return n, nil
}

// Realpath is like Resolve but allocates a PathMax sized buffer and returns the result as a string.
// On failure the canonical prefix resolved so far is returned alongside the error.
func (r *Resolver) Realpath(name string) (string, error) {
	buf := make([]byte, PathMax)
	n, err := r.Resolve(name, buf)
	return string(buf[:n]), err
}

// Resolve calls Default.Resolve.
func Resolve(name string, buf []byte) (int, error) {
	return Default.Resolve(name, buf)
}

// Realpath calls Default.Realpath.
func Realpath(name string) (string, error) {
	return Default.Realpath(name)
}
