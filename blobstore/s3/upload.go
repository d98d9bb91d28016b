package s3

import (
	"encoding/base64"
	"encoding/binary"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"

	"github.com/hupe1980/collections/internal/hash"
)

// UploadConfig tunes writes.
type UploadConfig struct {
	// PartSize is the multipart part size. Blobs no larger than PartSize
	// are written with a single PutObject. The SDK minimum is 5 MiB.
	PartSize int64
	// Concurrency is the number of parts uploaded in parallel.
	Concurrency int
	// LeavePartsOnError keeps the parts of a failed multipart upload
	// instead of aborting it.
	LeavePartsOnError bool
}

// DefaultUploadConfig returns 8 MiB parts uploaded five at a time.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:    8 * 1024 * 1024,
		Concurrency: manager.DefaultUploadConcurrency,
	}
}

func newUploader(client Client, cfg UploadConfig) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = cfg.PartSize
		u.Concurrency = cfg.Concurrency
		u.LeavePartsOnError = cfg.LeavePartsOnError
	})
}

// crc32cHeader encodes the checksum the way S3 expects it: base64 of the
// big-endian bytes.
func crc32cHeader(data []byte) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], hash.CRC32C(data))

	return base64.StdEncoding.EncodeToString(b[:])
}
