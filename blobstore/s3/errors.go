package s3

import (
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/cockroachdb/errors"

	"github.com/hupe1980/collections/blobstore"
)

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}

	return false
}

func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return true
		}
	}

	return false
}

func mapError(err error, op, key string) error {
	switch {
	case isNotFound(err):
		return errors.Wrapf(blobstore.ErrNotFound, "s3: %s %s", op, key)
	case isPreconditionFailed(err):
		return errors.Wrapf(blobstore.ErrConflict, "s3: %s %s", op, key)
	default:
		return errors.Wrapf(err, "s3: %s %s", op, key)
	}
}
