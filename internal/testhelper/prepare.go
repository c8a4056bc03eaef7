// Package testhelper builds directory trees for tests from a line based description.
//
// Each line is one of
//
//	dir/                 creates a directory (and its parents)
//	dir/ 0o500           same, then chmods it
//	file: content        writes a file
//	link -> target       creates a symlink; target is stored verbatim
//
// Paths are slash separated and relative to the base directory.
package testhelper

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

type LineKind string

const (
	LineKindMkdir     LineKind = "mkdir"
	LineKindWriteFile LineKind = "write_file"
	LineKindSymlink   LineKind = "symlink"
)

type LineDirection struct {
	LineKind   LineKind
	Permission fs.FileMode
	Path       string
	TargetPath string // for symlink target
	Content    []byte // for write file content
}

func ParseLine(txt string) LineDirection {
	switch {
	case strings.Contains(txt, " -> "):
		path, target, _ := strings.Cut(txt, " -> ")
		return LineDirection{
			LineKind:   LineKindSymlink,
			Path:       path,
			TargetPath: target,
		}
	case strings.Contains(txt, "/ ") || strings.HasSuffix(txt, "/"):
		var suf string
		if strings.Contains(txt, "/ ") {
			txt, suf, _ = strings.Cut(txt, "/ ")
		} else {
			txt = strings.TrimSuffix(txt, "/")
		}
		var perm uint64
		if suf != "" {
			perm, _ = strconv.ParseUint(suf, 0, 64)
		}
		return LineDirection{
			LineKind:   LineKindMkdir,
			Path:       txt,
			Permission: fs.FileMode(perm),
		}
	case strings.Contains(txt, ": "):
		path, content, _ := strings.Cut(txt, ": ")
		return LineDirection{
			LineKind: LineKindWriteFile,
			Path:     path,
			Content:  []byte(content),
		}
	}
	return LineDirection{}
}

func (l LineDirection) ExecuteOs(baseDir string) error {
	path := filepath.Join(baseDir, filepath.FromSlash(l.Path))
	switch l.LineKind {
	default:
		return fmt.Errorf("unknown line kind %q", l.LineKind)
	case LineKindMkdir:
		err := os.MkdirAll(path, fs.ModePerm)
		if err != nil || l.Permission == 0 {
			return err
		}
		return os.Chmod(path, l.Permission&fs.ModePerm)
	case LineKindWriteFile:
		err := os.MkdirAll(filepath.Dir(path), fs.ModePerm)
		if err != nil {
			return err
		}
		return os.WriteFile(path, l.Content, 0o644)
	case LineKindSymlink:
		err := os.MkdirAll(filepath.Dir(path), fs.ModePerm)
		if err != nil {
			return err
		}
		return os.Symlink(l.TargetPath, path)
	}
}

func ExecuteLines(baseDir string, lines ...string) error {
	for _, line := range lines {
		l := ParseLine(line)
		if l.LineKind == "" {
			return fmt.Errorf("unknown line %q", line)
		}
		if err := l.ExecuteOs(baseDir); err != nil {
			return err
		}
	}
	return nil
}

// Prepare creates a temporary directory populated by lines
// and returns its path with every symlink resolved,
// so that tests can compare resolution results against plain string concatenation.
func Prepare(t *testing.T, lines ...string) string {
	t.Helper()
	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temp dir: %v", err)
	}
	base = filepath.ToSlash(base)
	if err := ExecuteLines(base, lines...); err != nil {
		t.Fatalf("preparing %s: %v", base, err)
	}
	return base
}
