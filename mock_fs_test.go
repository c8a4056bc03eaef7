package realpath

import (
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/ngicks/go-fsys-helper/realpath/errdef"
)

var _ Fs = (*mockFs)(nil)

type mockFileInfo struct {
	name string
	mode fs.FileMode
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return 0 }
func (i mockFileInfo) Mode() fs.FileMode  { return i.mode }
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return i.mode.IsDir() }
func (i mockFileInfo) Sys() any           { return nil }

// mockFs is an in-memory tree keyed by clean absolute path.
// Values ending in "/" are directories, values starting with "-> " are symlinks,
// anything else is a regular file.
//
// Like the kernel, Lstat follows links in every element but the last.
type mockFs struct {
	entries map[string]string

	wd       string
	getwdErr error

	lstatErr    map[string]error
	readLinkErr map[string]error

	lstatCalls []string
}

func newMockFs(entries ...string) *mockFs {
	m := &mockFs{
		entries:     map[string]string{"/": "/"},
		wd:          "/",
		lstatErr:    map[string]error{},
		readLinkErr: map[string]error{},
	}
	for _, e := range entries {
		path, value, _ := strings.Cut(e, " ")
		m.entries[path] = value
	}
	return m
}

func (m *mockFs) Lstat(name string) (fs.FileInfo, error) {
	m.lstatCalls = append(m.lstatCalls, name)
	if err := m.lstatErr[name]; err != nil {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: err}
	}
	key, err := m.walk(name, false, 0)
	if err != nil {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: err}
	}
	v := m.entries[key]
	base := path.Base(key)
	switch {
	case strings.HasSuffix(v, "/"):
		return mockFileInfo{base, fs.ModeDir | 0o755}, nil
	case strings.HasPrefix(v, "-> "):
		return mockFileInfo{base, fs.ModeSymlink | 0o777}, nil
	}
	return mockFileInfo{base, 0o644}, nil
}

// walk returns the key name refers to.
func (m *mockFs) walk(name string, followLast bool, depth int) (string, error) {
	if depth > 40 {
		return "", errdef.ELOOP
	}
	cur := "/"
	comps := strings.FieldsFunc(name, func(r rune) bool { return r == '/' })
	for i, comp := range comps {
		last := i == len(comps)-1
		switch comp {
		case ".":
			continue
		case "..":
			cur = path.Dir(cur)
			continue
		}
		next := path.Join(cur, comp)
		v, ok := m.entries[next]
		if !ok {
			return "", errdef.ENOENT
		}
		if target, isLink := strings.CutPrefix(v, "-> "); isLink && (!last || followLast) {
			if !path.IsAbs(target) {
				target = path.Join(cur, target)
			}
			resolved, err := m.walk(target, true, depth+1)
			if err != nil {
				return "", err
			}
			next = resolved
			v = m.entries[next]
		}
		if !last && !strings.HasSuffix(v, "/") {
			return "", errdef.ENOTDIR
		}
		cur = next
	}
	return cur, nil
}

func (m *mockFs) ReadLink(name string) (string, error) {
	if err := m.readLinkErr[name]; err != nil {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: err}
	}
	key, err := m.walk(name, false, 0)
	if err != nil {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: err}
	}
	target, ok := strings.CutPrefix(m.entries[key], "-> ")
	if !ok {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: errdef.EINVAL}
	}
	return target, nil
}

func (m *mockFs) Getwd() (string, error) {
	if m.getwdErr != nil {
		return "", m.getwdErr
	}
	return m.wd, nil
}
