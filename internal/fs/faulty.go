package fs

import (
	"os"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrInjected is the error a Fault returns when it has no Err of its own.
var ErrInjected = errors.New("fs: injected fault")

// Fault describes how operations on matching paths fail.
type Fault struct {
	// FailAfterBytes fails writes once a file would exceed this many bytes.
	// -1 disables the limit.
	FailAfterBytes int64
	FailOnSync     bool
	FailOnClose    bool
	FailOnRename   bool
	FailOnLink     bool
	Err            error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}

	return errors.WithStack(ErrInjected)
}

// FaultyFS wraps a FileSystem and injects failures by path substring.
type FaultyFS struct {
	FS FileSystem

	mu      sync.Mutex
	rules   map[string]Fault
	written int64
}

// NewFaultyFS wraps fsys, or Default when fsys is nil.
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}

	return &FaultyFS{FS: fsys, rules: make(map[string]Fault)}
}

// AddRule applies fault to every path containing pattern. When several
// patterns match, the longest wins.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rules[pattern] = fault
}

// Written returns the bytes written through the wrapper so far.
func (f *FaultyFS) Written() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.written
}

func (f *FaultyFS) match(name string) (Fault, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		best  Fault
		found bool
		n     = -1
	)

	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) && len(pattern) > n {
			best, found, n = rule, true, len(pattern)
		}
	}

	return best, found
}

func (f *FaultyFS) CreateTemp(dir, pattern string) (File, error) {
	file, err := f.FS.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}

	fault, ok := f.match(file.Name())
	if !ok {
		fault = Fault{FailAfterBytes: -1}
	}

	return &faultyFile{File: file, fs: f, fault: fault}, nil
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if fault, ok := f.match(newpath); ok && fault.FailOnRename {
		return fault.err()
	}

	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) Link(oldname, newname string) error {
	if fault, ok := f.match(newname); ok && fault.FailOnLink {
		return fault.err()
	}

	return f.FS.Link(oldname, newname)
}

func (f *FaultyFS) Remove(name string) error { return f.FS.Remove(name) }

func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error {
	return f.FS.MkdirAll(path, perm)
}

type faultyFile struct {
	File
	fs      *FaultyFS
	fault   Fault
	written int64
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.fault.FailAfterBytes >= 0 && ff.written+int64(len(p)) > ff.fault.FailAfterBytes {
		return 0, ff.fault.err()
	}

	n, err := ff.File.Write(p)
	ff.written += int64(n)

	ff.fs.mu.Lock()
	ff.fs.written += int64(n)
	ff.fs.mu.Unlock()

	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.err()
	}

	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		_ = ff.File.Close()
		return ff.fault.err()
	}

	return ff.File.Close()
}
