package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"

	"github.com/hupe1980/collections/blobstore"
)

// Store implements blobstore.ConditionalStore on an S3 bucket.
type Store struct {
	client   Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
	partSize int64
}

var _ blobstore.ConditionalStore = (*Store)(nil)

// New returns a store for bucket. Without WithClient it loads the default
// AWS configuration.
func New(ctx context.Context, bucket string, opts ...Option) (*Store, error) {
	o := options{upload: DefaultUploadConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	if o.client == nil {
		loaders := o.loaders
		if o.region != "" {
			loaders = append(loaders, config.WithRegion(o.region))
		}

		cfg, err := config.LoadDefaultConfig(ctx, loaders...)
		if err != nil {
			return nil, errors.Wrap(err, "s3: load aws config")
		}

		o.client = s3.NewFromConfig(cfg)
	}

	return newStore(o.client, bucket, o.prefix, o.upload), nil
}

// NewStore returns a store over an existing client. rootPrefix is prepended
// to every key.
func NewStore(client Client, bucket, rootPrefix string) *Store {
	return newStore(client, bucket, rootPrefix, DefaultUploadConfig())
}

func newStore(client Client, bucket, prefix string, cfg UploadConfig) *Store {
	return &Store{
		client:   client,
		uploader: newUploader(client, cfg),
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		partSize: cfg.PartSize,
	}
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}

	return path.Join(s.prefix, name)
}

func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, mapError(err, "head", key)
	}

	return &blob{
		client: s.client,
		bucket: s.bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
	}, nil
}

// Put writes data. Blobs above the part size go through the multipart
// uploader.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	return s.put(ctx, name, data, nil)
}

// PutIfNotExists writes data only when no object exists under name. It
// returns blobstore.ErrConflict otherwise.
func (s *Store) PutIfNotExists(ctx context.Context, name string, data []byte) error {
	return s.put(ctx, name, data, aws.String("*"))
}

func (s *Store) put(ctx context.Context, name string, data []byte, ifNoneMatch *string) error {
	key := s.key(name)

	if int64(len(data)) > s.partSize && ifNoneMatch == nil {
		_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket:            aws.String(s.bucket),
			Key:               aws.String(key),
			Body:              bytes.NewReader(data),
			ChecksumAlgorithm: types.ChecksumAlgorithmCrc32c,
		})
		if err != nil {
			return mapError(err, "upload", key)
		}

		return nil
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:         aws.String(s.bucket),
		Key:            aws.String(key),
		Body:           bytes.NewReader(data),
		ContentLength:  aws.Int64(int64(len(data))),
		ChecksumCRC32C: aws.String(crc32cHeader(data)),
		IfNoneMatch:    ifNoneMatch,
	})
	if err != nil {
		return mapError(err, "put", key)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	key := s.key(name)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isNotFound(err) {
		return mapError(err, "delete", key)
	}

	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	root := ""
	if s.prefix != "" {
		root = s.prefix + "/"
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(root + prefix),
	})

	var names []string

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, mapError(err, "list", root+prefix)
		}

		for _, obj := range page.Contents {
			if name, ok := strings.CutPrefix(aws.ToString(obj.Key), root); ok && name != "" {
				names = append(names, name)
			}
		}
	}

	slices.Sort(names)

	return names, nil
}

type blob struct {
	client Client
	bucket string
	key    string
	size   int64
}

func (b *blob) Size() int64 { return b.size }

func (b *blob) Close() error { return nil }

// ReadAt issues one ranged GET clamped to the object size.
func (b *blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if off < 0 {
		return 0, errors.Newf("s3: negative offset %d", off)
	}

	if off >= b.size {
		return 0, io.EOF
	}

	end := min(off+int64(len(p)), b.size) - 1

	resp, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return 0, mapError(err, "get", b.key)
	}
	defer resp.Body.Close()

	want := int(end - off + 1)

	n, err := io.ReadFull(resp.Body, p[:want])
	if err != nil {
		return n, errors.Wrapf(err, "s3: read %s", b.key)
	}

	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}
