package realpath

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/ngicks/go-fsys-helper/realpath/errdef"
	"github.com/ngicks/go-fsys-helper/realpath/internal/boundbuf"
	"github.com/ngicks/go-fsys-helper/realpath/internal/paths"
)

// resolveCtx is the state of a single Resolve call.
type resolveCtx struct {
	fsys     Fs
	logger   *slog.Logger
	maxLinks int

	// work holds the text the current pass consumes.
	work []byte
	// scratch receives link targets and the working directory.
	scratch  []byte
	overflow bool

	links int
	// spliced is set once the current pass wrote a link target or the working directory
	// into the output. From then on the rest of the input is copied as written
	// and the next pass resolves it.
	spliced bool
	// verified is the length of the output known to be canonical
	// when spliced text was written after it.
	verified int

	op  string
	err error
}

func newResolveCtx(r *Resolver, size int) *resolveCtx {
	return &resolveCtx{
		fsys:     r.fsys,
		logger:   r.logger,
		maxLinks: r.maxSymlinks,
		work:     make([]byte, size),
		scratch:  make([]byte, size),
	}
}

// fail latches err. Only the first error is kept.
func (c *resolveCtx) fail(op string, err error) {
	if c.err != nil {
		return
	}
	c.op = op
	c.err = err
}

// pass resolves the text held in c.work into out and returns the length of out.
func (c *resolveCtx) pass(out []byte) int {
	c.spliced = false

	var n int
	if c.work[0] == '/' {
		n = boundbuf.Copy(out, "/", &c.overflow)
		if c.overflow {
			c.fail("realpath", errdef.ENAMETOOLONG)
			return boundbuf.Truncate(out, 0)
		}
	} else {
		n = c.seed(out)
		if c.err != nil {
			return n
		}
	}

	// pending is the Remaining of the last appended name while it awaits its Lstat.
	pending := -1
	for comp := range paths.SplitSeq(c.work) {
		tok := paths.Classify(comp.Name)
		if tok == paths.TokenSkip {
			continue
		}
		if c.spliced {
			n = c.appendSpliced(out, n, comp.Name)
			if c.err != nil {
				return n
			}
			continue
		}

		if pending >= 0 {
			if tok == paths.TokenParent {
				n = c.checkParent(out, n)
			} else {
				n = c.check(out, n, pending)
			}
			pending = -1
			if c.err != nil {
				return n
			}
			if c.spliced {
				n = c.appendSpliced(out, n, comp.Name)
				if c.err != nil {
					return n
				}
				continue
			}
		}

		if tok == paths.TokenParent {
			n = boundbuf.Backup(out, n)
			continue
		}

		n = c.appendName(out, n, comp.Name)
		if c.err != nil {
			return n
		}
		pending = comp.Remaining
	}
	if pending >= 0 {
		n = c.check(out, n, pending)
	}
	return n
}

// check stats out[:n] and expands it if it is a symlink.
// remaining is the amount of input following the last name of out.
func (c *resolveCtx) check(out []byte, n int, remaining int) int {
	info, err := c.fsys.Lstat(string(out[:n]))
	if err != nil {
		err = unwrapPathErr(err)
		if errors.Is(err, fs.ErrNotExist) {
			err = errdef.ENOENT
			if remaining > 0 {
				// a missing intermediate component means its parent can not be traversed.
				err = errdef.ENOTDIR
			}
		}
		c.fail("lstat", err)
		return boundbuf.Backup(out, n)
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return n
	}
	return c.expand(out, n)
}

// checkParent is check for a name about to be removed by "..".
// The name is not required to exist, but a symlink is expanded
// so that ".." moves up from its target.
func (c *resolveCtx) checkParent(out []byte, n int) int {
	info, err := c.fsys.Lstat(string(out[:n]))
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return n
	}
	return c.expand(out, n)
}

// seed writes the working directory into out.
func (c *resolveCtx) seed(out []byte) int {
	wd, err := c.fsys.Getwd()
	if err != nil {
		err = unwrapPathErr(err)
		if errors.Is(err, errdef.ERANGE) {
			err = errdef.ENAMETOOLONG
		}
		c.fail("getwd", err)
		return boundbuf.Truncate(out, 0)
	}
	if len(wd) == 0 || wd[0] != '/' {
		c.fail("getwd", errdef.EINVAL)
		return boundbuf.Truncate(out, 0)
	}

	tn := boundbuf.Copy(c.scratch, wd, &c.overflow)
	if c.overflow || tn >= len(out) {
		c.fail("getwd", errdef.ENAMETOOLONG)
		return boundbuf.Truncate(out, 0)
	}

	c.logger.Debug("seeded from working directory", slog.String("wd", wd))

	// the working directory may itself go through symlinks; nothing of it is verified.
	c.verified = 0
	n := boundbuf.Copy(out, "/", &c.overflow)
	return c.splice(out, n)
}

// appendName appends "/" and name to out.
// On overflow out is restored to n bytes and ENAMETOOLONG is latched.
func (c *resolveCtx) appendName(out []byte, n int, name string) int {
	prev := n
	if n == 0 || out[n-1] != '/' {
		n = boundbuf.Cat(out, "/", &c.overflow)
	}
	n = boundbuf.Cat(out, name, &c.overflow)
	if c.overflow {
		c.fail("realpath", errdef.ENAMETOOLONG)
		return boundbuf.Truncate(out, prev)
	}
	return n
}

// appendSpliced appends name after spliced text.
// On overflow out is cut back to its verified prefix.
func (c *resolveCtx) appendSpliced(out []byte, n int, name string) int {
	n = c.appendName(out, n, name)
	if c.err != nil {
		return boundbuf.Truncate(out, c.verified)
	}
	return n
}

// expand replaces the symlink at the end of out[:n] with its target.
func (c *resolveCtx) expand(out []byte, n int) int {
	link := string(out[:n])

	c.links++
	if c.links >= c.maxLinks {
		c.fail("realpath", errdef.ELOOP)
		return boundbuf.Backup(out, n)
	}

	target, err := c.fsys.ReadLink(link)
	if err != nil {
		c.fail("readlink", unwrapPathErr(err))
		return boundbuf.Backup(out, n)
	}

	tn := boundbuf.Copy(c.scratch, target, &c.overflow)
	if c.overflow {
		c.fail("readlink", errdef.ENAMETOOLONG)
		return boundbuf.Backup(out, n)
	}
	if tn == 0 {
		// Linux refuses to traverse empty links the same way.
		c.fail("readlink", errdef.ENOENT)
		return boundbuf.Backup(out, n)
	}

	c.logger.Debug(
		"symlink expanded",
		slog.String("link", link),
		slog.String("target", target),
		slog.Int("count", c.links),
	)

	if c.scratch[0] == '/' {
		n = boundbuf.Truncate(out, 1)
	} else {
		n = boundbuf.Backup(out, n)
	}
	c.verified = n
	return c.splice(out, n)
}

// splice appends the path held in c.scratch to out[:n] as written,
// keeping its ".." so that the next pass resolves them against the filesystem.
func (c *resolveCtx) splice(out []byte, n int) int {
	c.spliced = true
	for comp := range paths.SplitSeq(c.scratch) {
		if paths.Classify(comp.Name) == paths.TokenSkip {
			continue
		}
		n = c.appendSpliced(out, n, comp.Name)
		if c.err != nil {
			return n
		}
	}
	return n
}
