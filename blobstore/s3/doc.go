// Package s3 stores checkpoint blobs in Amazon S3.
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("checkpoints/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	mgr, err := checkpoint.New(store)
//
// Reads use ranged GETs. Small blobs are written with a single PutObject
// carrying a CRC32C checksum; large ones go through the multipart uploader.
//
// S3 has no compare-and-swap on ordinary buckets, so concurrent writers
// wrap the store in a DDBCommitStore, which keeps the commit pointer in a
// DynamoDB table with conditional writes.
package s3
