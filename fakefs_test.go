package finfo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"syscall"
)

// fakeFS is an in-memory Inspector with deterministic directory order and
// hooks for injecting failures.
type fakeFS struct {
	nodes     map[string]*fakeNode
	statCalls map[string]int
	nextIno   uint64

	// openDirErr fails OpenDir for a path.
	openDirErr map[string]error
	// failAfter makes Next fail once the given number of entries was returned.
	failAfter map[string]int
}

type fakeNode struct {
	mode    uint32
	ino     uint64
	data    []byte
	target  string
	entries []DirEntry
}

const (
	fakeModeReg  = 0o100644
	fakeModeDir  = 0o040755
	fakeModeLink = 0o120777
)

func newFakeFS() *fakeFS {
	return &fakeFS{
		nodes:      make(map[string]*fakeNode),
		statCalls:  make(map[string]int),
		openDirErr: make(map[string]error),
		failAfter:  make(map[string]int),
	}
}

func (f *fakeFS) add(path string, n *fakeNode) *fakeNode {
	f.nextIno++
	n.ino = f.nextIno
	f.nodes[path] = n
	return n
}

func (f *fakeFS) file(path, content string) {
	f.add(path, &fakeNode{mode: fakeModeReg, data: []byte(content)})
}

func (f *fakeFS) symlink(path, target string) {
	f.add(path, &fakeNode{mode: fakeModeLink, target: target})
}

// dir adds a directory whose listing returns entries in the given order.
// Entry inodes are filled from nodes already added under dir.
func (f *fakeFS) dir(path string, entries ...DirEntry) {
	n := f.add(path, &fakeNode{mode: fakeModeDir})
	for _, e := range entries {
		if child, ok := f.nodes[joinPath(path, e.Name)]; ok {
			e.Ino = child.ino
		}
		n.entries = append(n.entries, e)
	}
}

func ent(name string, typ EntryType) DirEntry {
	return DirEntry{Name: name, Type: typ}
}

func notExist(op, path string) error {
	return &PathError{Op: op, Path: path, Err: syscall.ENOENT}
}

func (n *fakeNode) stat() *StatInfo {
	return &StatInfo{Ino: n.ino, Mode: n.mode, Nlink: 1, Size: int64(len(n.data))}
}

func (f *fakeFS) Stat(ctx context.Context, path string) (*StatInfo, error) {
	f.statCalls[path]++
	n, ok := f.nodes[path]
	for hops := 0; ok && n.mode == fakeModeLink; hops++ {
		if hops > 8 {
			return nil, &PathError{Op: "stat", Path: path, Err: syscall.ELOOP}
		}
		n, ok = f.nodes[n.target]
	}
	if !ok {
		return nil, notExist("stat", path)
	}
	return n.stat(), nil
}

func (f *fakeFS) Lstat(ctx context.Context, path string) (*StatInfo, error) {
	n, ok := f.nodes[path]
	if !ok {
		return nil, notExist("lstat", path)
	}
	return n.stat(), nil
}

func (f *fakeFS) Readlink(ctx context.Context, path string) (string, error) {
	n, ok := f.nodes[path]
	if !ok {
		return "", notExist("readlink", path)
	}
	if n.mode != fakeModeLink {
		return "", &PathError{Op: "readlink", Path: path, Err: syscall.EINVAL}
	}
	return n.target, nil
}

func (f *fakeFS) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	n, ok := f.nodes[path]
	if !ok {
		return nil, notExist("open", path)
	}
	if n.mode == fakeModeDir {
		return nil, &PathError{Op: "read", Path: path, Err: syscall.EISDIR}
	}
	return io.NopCloser(bytes.NewReader(n.data)), nil
}

func (f *fakeFS) OpenDir(ctx context.Context, path string) (DirReader, error) {
	if err := f.openDirErr[path]; err != nil {
		return nil, &PathError{Op: "opendir", Path: path, Err: err}
	}
	n, ok := f.nodes[path]
	if !ok {
		return nil, notExist("opendir", path)
	}
	if n.mode != fakeModeDir {
		return nil, &PathError{Op: "opendir", Path: path, Err: syscall.ENOTDIR}
	}

	failAt, fails := f.failAfter[path]
	if !fails {
		failAt = -1
	}
	entries := append([]DirEntry{ent(".", TypeDir), ent("..", TypeDir)}, n.entries...)
	return &fakeDirReader{path: path, entries: entries, failAt: failAt}, nil
}

type fakeDirReader struct {
	path    string
	entries []DirEntry
	pos     int
	failAt  int
	closed  bool
}

var errFakeEnumeration = errors.New("fake enumeration failure")

func (r *fakeDirReader) Next() (DirEntry, error) {
	if r.closed {
		return DirEntry{}, errors.New("read after close")
	}
	// "." and ".." do not count towards failAt.
	if r.failAt >= 0 && r.pos-2 >= r.failAt {
		return DirEntry{}, &PathError{Op: "readdir", Path: r.path, Err: errFakeEnumeration}
	}
	if r.pos >= len(r.entries) {
		return DirEntry{}, io.EOF
	}
	e := r.entries[r.pos]
	r.pos++
	return e, nil
}

func (r *fakeDirReader) Close() error {
	r.closed = true
	return nil
}

// fakeTree builds:
//
//	/d        dir: a, sub, link
//	/d/a      file "hello"
//	/d/sub    dir: inner
//	/d/sub/inner file ""
//	/d/link   symlink -> /d/a
func fakeTree() *fakeFS {
	f := newFakeFS()
	f.file("/d/a", "hello")
	f.file("/d/sub/inner", "")
	f.dir("/d/sub", ent("inner", TypeRegular))
	f.symlink("/d/link", "/d/a")
	f.dir("/d", ent("a", TypeRegular), ent("sub", TypeDir), ent("link", TypeSymlink))
	return f
}
