package blobstore

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	ifs "github.com/hupe1980/collections/internal/fs"
	"github.com/hupe1980/collections/internal/mmap"
)

const (
	tempPrefix  = ".tmp-"
	tempPattern = tempPrefix + "*"
)

// LocalStore keeps blobs as files below a root directory. Names use forward
// slashes; Put creates missing parent directories.
type LocalStore struct {
	root string
	fs   ifs.FileSystem
}

// NewLocalStore returns a store rooted at root. The directory is created on
// first write.
func NewLocalStore(root string) *LocalStore {
	return newLocalStoreFS(root, ifs.Default)
}

func newLocalStoreFS(root string, fsys ifs.FileSystem) *LocalStore {
	return &LocalStore{root: root, fs: fsys}
}

// Root returns the directory the store writes to.
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open maps the blob into memory.
func (s *LocalStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := mmap.Open(s.path(name))
	if err != nil {
		return nil, errors.Wrapf(err, "blobstore: open %s", name)
	}

	_ = m.Advise(mmap.AccessSequential)

	return &localBlob{m: m}, nil
}

// Put writes data to a temporary file and renames it into place.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	tmp, err := s.writeTemp(ctx, name, data)
	if err != nil {
		return err
	}

	if err := s.fs.Rename(tmp, s.path(name)); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, "blobstore: rename %s", name)
	}

	return nil
}

// PutIfNotExists links a fully written temporary file into place, which
// fails when name exists.
func (s *LocalStore) PutIfNotExists(ctx context.Context, name string, data []byte) error {
	tmp, err := s.writeTemp(ctx, name, data)
	if err != nil {
		return err
	}
	defer func() { _ = s.fs.Remove(tmp) }()

	if err := s.fs.Link(tmp, s.path(name)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errors.Wrapf(ErrConflict, "blobstore: %s", name)
		}

		return errors.Wrapf(err, "blobstore: link %s", name)
	}

	return nil
}

func (s *LocalStore) writeTemp(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Dir(s.path(name))
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "blobstore: mkdir for %s", name)
	}

	f, err := s.fs.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", errors.Wrapf(err, "blobstore: create %s", name)
	}

	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		_ = s.fs.Remove(f.Name())
		return "", errors.Wrapf(err, "blobstore: write %s", name)
	}

	return f.Name(), nil
}

func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.fs.Remove(s.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "blobstore: delete %s", name)
	}

	return nil
}

// List walks the root and returns slash-separated names. Temporary files
// of unfinished writes are skipped.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == s.root {
				return fs.SkipAll
			}

			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() || strings.HasPrefix(d.Name(), tempPrefix) {
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}

		if name := filepath.ToSlash(rel); strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "blobstore: list %q", prefix)
	}

	slices.Sort(names)

	return names, nil
}

type localBlob struct {
	m *mmap.Mapping
}

func (b *localBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if len(p) == 0 {
		return 0, nil
	}

	return b.m.ReadAt(p, off)
}

func (b *localBlob) Close() error { return b.m.Close() }

func (b *localBlob) Size() int64 { return int64(b.m.Size()) }

func (b *localBlob) Bytes() ([]byte, error) {
	data := b.m.Bytes()
	if data == nil && b.m.Size() > 0 {
		return nil, mmap.ErrClosed
	}

	return data, nil
}
