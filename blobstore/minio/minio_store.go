package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/collections/blobstore"
)

// Store implements blobstore.BlobStore on a MinIO bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ blobstore.BlobStore = (*Store)(nil)

// NewStore returns a store for bucket. rootPrefix is prepended to every key.
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(rootPrefix, "/"),
	}
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}

	return path.Join(s.prefix, name)
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	default:
		return false
	}
}

func mapError(err error, op, key string) error {
	if isNotFound(err) {
		return errors.Wrapf(blobstore.ErrNotFound, "minio: %s %s", op, key)
	}

	return errors.Wrapf(err, "minio: %s %s", op, key)
}

func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, mapError(err, "stat", key)
	}

	return &blob{client: s.client, bucket: s.bucket, key: key, size: info.Size}, nil
}

func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	key := s.key(name)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
		// The server verifies a CRC32C of the body.
		Checksum: minio.ChecksumCRC32C,
	})
	if err != nil {
		return mapError(err, "put", key)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	key := s.key(name)

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil && !isNotFound(err) {
		return mapError(err, "remove", key)
	}

	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	root := ""
	if s.prefix != "" {
		root = s.prefix + "/"
	}

	var names []string

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    root + prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, mapError(obj.Err, "list", root+prefix)
		}

		if name, ok := strings.CutPrefix(obj.Key, root); ok && name != "" {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names, nil
}

type blob struct {
	client *minio.Client
	bucket string
	key    string
	size   int64
}

func (b *blob) Size() int64 { return b.size }

func (b *blob) Close() error { return nil }

func (b *blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if off < 0 {
		return 0, errors.Newf("minio: negative offset %d", off)
	}

	if off >= b.size {
		return 0, io.EOF
	}

	end := min(off+int64(len(p)), b.size) - 1

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, end); err != nil {
		return 0, errors.Wrapf(err, "minio: range %s", b.key)
	}

	obj, err := b.client.GetObject(ctx, b.bucket, b.key, opts)
	if err != nil {
		return 0, mapError(err, "get", b.key)
	}
	defer obj.Close()

	n, err := io.ReadFull(obj, p[:end-off+1])
	if err != nil {
		return n, mapError(err, "read", b.key)
	}

	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}
