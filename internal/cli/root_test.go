//go:build unix

package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ngicks/go-fsys-helper/realpath/errdef"
	"github.com/ngicks/go-fsys-helper/realpath/internal/cli"
	"github.com/ngicks/go-fsys-helper/realpath/internal/testhelper"
	"gotest.tools/v3/assert"
)

var tree = []string{
	"a/c: c",
	"b/d: d",
	"l -> a",
	"a/up -> ../b",
	"loop -> loop",
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	err = cli.Execute(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), err
}

func TestExecute(t *testing.T) {
	base := testhelper.Prepare(t, tree...)

	stdout, _, err := execute(t, base+"/l/c", base+"/l/up/./d")
	assert.NilError(t, err)
	assert.Equal(t, stdout, base+"/a/c\n"+base+"/b/d\n")
}

func TestExecute_root(t *testing.T) {
	base := testhelper.Prepare(t, tree...)

	stdout, _, err := execute(t, "--root", base, "/l/c", "/../l/up")
	assert.NilError(t, err)
	assert.Equal(t, stdout, "/a/c\n/b\n")

	stdout, _, err = execute(t, "-r", base, "--wd", "/a", "up/d")
	assert.NilError(t, err)
	assert.Equal(t, stdout, "/b/d\n")
}

func TestExecute_wd(t *testing.T) {
	base := testhelper.Prepare(t, tree...)

	stdout, _, err := execute(t, "--wd", base+"/a", "c", "../l")
	assert.NilError(t, err)
	assert.Equal(t, stdout, base+"/a/c\n"+base+"/a\n")
}

func TestExecute_failures(t *testing.T) {
	base := testhelper.Prepare(t, tree...)

	stdout, _, err := execute(t, "-r", base, "/l/c", "/a/missing", "/loop")
	assert.ErrorIs(t, err, errdef.ENOENT)
	assert.ErrorIs(t, err, errdef.ELOOP)
	assert.ErrorContains(t, err, "arg 1: ")
	assert.ErrorContains(t, err, "arg 2: ")
	assert.Equal(t, stdout, "/a/c\n")

	stdout, _, err = execute(t, "-r", base, "--partial", "/a/missing/x", "/l/c")
	assert.ErrorIs(t, err, errdef.ENOTDIR)
	assert.Equal(t, stdout, "/a\n/a/c\n")
}

func TestExecute_max_symlinks(t *testing.T) {
	base := testhelper.Prepare(t, tree...)

	_, _, err := execute(t, "-r", base, "-l", "1", "/l")
	assert.ErrorIs(t, err, errdef.ELOOP)

	stdout, _, err := execute(t, "-r", base, "-l", "2", "/l")
	assert.NilError(t, err)
	assert.Equal(t, stdout, "/a\n")
}

func TestExecute_size(t *testing.T) {
	base := testhelper.Prepare(t, tree...)

	stdout, _, err := execute(t, "-r", base, "-p", "-s", "4", "/a/c")
	assert.ErrorIs(t, err, errdef.ENAMETOOLONG)
	assert.Equal(t, stdout, "/a\n")
}

func TestExecute_table(t *testing.T) {
	base := testhelper.Prepare(t, tree...)

	stdout, _, err := execute(t, "-r", base, "-t", "/l/c", "/a/missing")
	assert.ErrorIs(t, err, errdef.ENOENT)
	assert.Assert(t, strings.Contains(stdout, "/l/c"), stdout)
	assert.Assert(t, strings.Contains(stdout, "/a/c"), stdout)
	assert.Assert(t, strings.Contains(stdout, "/a/missing"), stdout)
	assert.Assert(t, strings.Contains(stdout, "no such entry"), stdout)
}

func TestExecute_config(t *testing.T) {
	base := testhelper.Prepare(t, tree...)
	configPath := filepath.Join(t.TempDir(), "realpath.yaml")
	err := os.WriteFile(configPath, []byte("root: "+base+"\nsize: 4\npartial: true\n"), 0o644)
	assert.NilError(t, err)

	stdout, _, err := execute(t, "-c", configPath, "/a/c")
	assert.ErrorIs(t, err, errdef.ENAMETOOLONG)
	assert.Equal(t, stdout, "/a\n")

	// flags win over the file.
	stdout, _, err = execute(t, "-c", configPath, "--size", "64", "/l/c")
	assert.NilError(t, err)
	assert.Equal(t, stdout, "/a/c\n")
}

func TestExecute_verbose(t *testing.T) {
	base := testhelper.Prepare(t, tree...)

	_, stderr, err := execute(t, "-r", base, "-v", "/l/c")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(stderr, "symlink expanded"), stderr)

	_, stderr, err = execute(t, "-r", base, "/l/c")
	assert.NilError(t, err)
	assert.Equal(t, stderr, "")
}

func TestExecute_no_args(t *testing.T) {
	_, _, err := execute(t)
	assert.ErrorContains(t, err, "requires at least 1 arg")
}
