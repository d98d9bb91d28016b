package s3

import (
	"context"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"

	"github.com/hupe1980/collections/blobstore"
)

// DefaultPointerName is the blob name a DDBCommitStore routes to DynamoDB.
const DefaultPointerName = "CURRENT"

// ErrConcurrentModification is returned when another writer committed the
// same version first. It also matches blobstore.ErrConflict.
var ErrConcurrentModification = errors.Mark(
	errors.New("s3: concurrent modification detected"),
	blobstore.ErrConflict,
)

// DDBClient is the subset of *dynamodb.Client the commit store calls.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ DDBClient = (*dynamodb.Client)(nil)

// DDBCommitStore routes the commit pointer of a checkpoint to a DynamoDB
// table and every other blob to an inner store. Each pointer write becomes
// a new version row guarded by a conditional put, so of two writers racing
// on the same version exactly one wins.
//
// Table schema:
//
//	aws dynamodb create-table \
//	  --table-name collections-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DDBCommitStore struct {
	inner     blobstore.BlobStore
	ddb       DDBClient
	tableName string
	baseURI   string
	pointer   string
}

var _ blobstore.BlobStore = (*DDBCommitStore)(nil)

// NewDDBCommitStore returns a commit store. baseURI, for example
// "s3://bucket/prefix", partitions the table between stores.
func NewDDBCommitStore(inner blobstore.BlobStore, ddb DDBClient, tableName, baseURI string) *DDBCommitStore {
	return &DDBCommitStore{
		inner:     inner,
		ddb:       ddb,
		tableName: tableName,
		baseURI:   baseURI,
		pointer:   DefaultPointerName,
	}
}

// WithPointerName returns a copy of s that routes name instead of
// DefaultPointerName.
func (s *DDBCommitStore) WithPointerName(name string) *DDBCommitStore {
	c := *s
	c.pointer = name

	return &c
}

// Open serves the pointer from the latest committed version.
func (s *DDBCommitStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if name != s.pointer {
		return s.inner.Open(ctx, name)
	}

	version, content, err := s.latest(ctx)
	if err != nil {
		return nil, err
	}

	if version == 0 {
		return nil, errors.Wrapf(blobstore.ErrNotFound, "s3: %s has no committed version", s.baseURI)
	}

	return blobstore.BytesBlob(content), nil
}

// Put commits the pointer as a new version.
func (s *DDBCommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name != s.pointer {
		return s.inner.Put(ctx, name, data)
	}

	version, _, err := s.latest(ctx)
	if err != nil {
		return err
	}

	return s.commit(ctx, version+1, string(data))
}

func (s *DDBCommitStore) Delete(ctx context.Context, name string) error {
	if name == s.pointer {
		return errors.Newf("s3: the commit pointer %s cannot be deleted", name)
	}

	return s.inner.Delete(ctx, name)
}

// List lists the inner store. The pointer lives in DynamoDB and is not
// listed.
func (s *DDBCommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Version returns the latest committed version, 0 before the first commit.
func (s *DDBCommitStore) Version(ctx context.Context) (uint64, error) {
	version, _, err := s.latest(ctx)
	return version, err
}

func (s *DDBCommitStore) latest(ctx context.Context) (uint64, []byte, error) {
	resp, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, nil, errors.Wrap(err, "s3: query commit table")
	}

	if len(resp.Items) == 0 {
		return 0, nil, nil
	}

	item := resp.Items[0]

	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, nil, errors.New("s3: commit row without numeric version")
	}

	pathAttr, ok := item["manifest_path"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, nil, errors.New("s3: commit row without manifest_path")
	}

	version, err := strconv.ParseUint(strings.TrimSpace(versionAttr.Value), 10, 64)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "s3: parse version %q", versionAttr.Value)
	}

	return version, []byte(pathAttr.Value), nil
}

func (s *DDBCommitStore) commit(ctx context.Context, version uint64, manifestPath string) error {
	_, err := s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri":      &types.AttributeValueMemberS{Value: s.baseURI},
			"version":       &types.AttributeValueMemberN{Value: strconv.FormatUint(version, 10)},
			"manifest_path": &types.AttributeValueMemberS{Value: manifestPath},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return errors.WithStack(ErrConcurrentModification)
		}

		return errors.Wrapf(err, "s3: commit version %d", version)
	}

	return nil
}
