// Package blobstore is the storage abstraction checkpoints are written to.
//
// A BlobStore holds immutable named blobs. Checkpoint payloads are written
// once under fresh names; only the commit pointer is ever overwritten, which
// stores that can do so make atomic (see ConditionalStore and
// s3.DDBCommitStore).
//
// # Built-in implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral state
//   - LocalStore: local filesystem, reads through mmap
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - s3.DDBCommitStore: any BlobStore plus a DynamoDB commit log
//   - minio.Store: MinIO and other S3-compatible services
package blobstore
