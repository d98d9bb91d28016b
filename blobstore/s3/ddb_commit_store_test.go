package s3

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/collections/blobstore"
)

// mockDDBClient is an in-memory DynamoDB table keyed by (base_uri, version).
type mockDDBClient struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{items: make(map[string]map[string]types.AttributeValue)}
}

func attrS(item map[string]types.AttributeValue, name string) string {
	return item[name].(*types.AttributeValueMemberS).Value
}

func attrN(item map[string]types.AttributeValue, name string) uint64 {
	v, _ := strconv.ParseUint(item[name].(*types.AttributeValueMemberN).Value, 10, 64)
	return v
}

func (m *mockDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("%s:%d", attrS(params.Item, "base_uri"), attrN(params.Item, "version"))

	if aws.ToString(params.ConditionExpression) == "attribute_not_exists(version)" {
		if _, exists := m.items[key]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	}

	m.items[key] = params.Item

	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	uri := params.ExpressionAttributeValues[":uri"].(*types.AttributeValueMemberS).Value

	var items []map[string]types.AttributeValue

	for _, item := range m.items {
		if attrS(item, "base_uri") == uri {
			items = append(items, item)
		}
	}

	slices.SortFunc(items, func(a, b map[string]types.AttributeValue) int {
		return int(attrN(b, "version")) - int(attrN(a, "version"))
	})

	if params.Limit != nil && int(*params.Limit) < len(items) {
		items = items[:*params.Limit]
	}

	return &dynamodb.QueryOutput{Items: items}, nil
}

func newTestCommitStore(ddb *mockDDBClient, baseURI string) *DDBCommitStore {
	return NewDDBCommitStore(blobstore.NewMemoryStore(), ddb, "collections-commits", baseURI)
}

func readPointer(t *testing.T, store *DDBCommitStore) string {
	t.Helper()

	data, err := blobstore.ReadAll(context.Background(), store, DefaultPointerName)
	require.NoError(t, err)

	return string(data)
}

func TestDDBCommitStore_NotFoundBeforeCommit(t *testing.T) {
	store := newTestCommitStore(newMockDDBClient(), "s3://bucket/path/")

	_, err := store.Open(context.Background(), DefaultPointerName)
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	v, err := store.Version(context.Background())
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestDDBCommitStore_CommitsAdvanceVersion(t *testing.T) {
	ctx := context.Background()
	store := newTestCommitStore(newMockDDBClient(), "s3://bucket/path/")

	for i := 1; i <= 12; i++ {
		require.NoError(t, store.Put(ctx, DefaultPointerName, []byte(fmt.Sprintf("manifest-%05d", i))))
	}

	assert.Equal(t, "manifest-00012", readPointer(t, store))

	v, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), v)
}

func TestDDBCommitStore_OtherBlobsGoToInner(t *testing.T) {
	ctx := context.Background()
	inner := blobstore.NewMemoryStore()
	store := NewDDBCommitStore(inner, newMockDDBClient(), "t", "u")

	require.NoError(t, store.Put(ctx, "gen-1/list", []byte("x")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"gen-1/list"}, names)

	require.NoError(t, store.Delete(ctx, "gen-1/list"))
	assert.Zero(t, inner.Len())
	assert.Error(t, store.Delete(ctx, DefaultPointerName))
}

func TestDDBCommitStore_LosingWriterSeesConflict(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	store := newTestCommitStore(ddb, "s3://bucket/path/")

	require.NoError(t, store.commit(ctx, 1, "a"))

	err := store.commit(ctx, 1, "b")
	require.ErrorIs(t, err, ErrConcurrentModification)
	assert.ErrorIs(t, err, blobstore.ErrConflict)
	assert.Equal(t, "a", readPointer(t, store))
}

func TestDDBCommitStore_ConcurrentCommits(t *testing.T) {
	ctx := context.Background()
	store := newTestCommitStore(newMockDDBClient(), "s3://bucket/path/")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)

	for i := range 5 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := store.Put(ctx, DefaultPointerName, []byte(fmt.Sprintf("manifest-%d", i)))

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				successes++
			case !errors.Is(err, ErrConcurrentModification):
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	v, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Positive(t, successes)
	assert.Equal(t, uint64(successes), v)
}

func TestDDBCommitStore_IsolatedNamespaces(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()

	a := newTestCommitStore(ddb, "s3://bucket-a/path/")
	b := newTestCommitStore(ddb, "s3://bucket-b/path/").WithPointerName("HEAD")

	require.NoError(t, a.Put(ctx, DefaultPointerName, []byte("MANIFEST-A")))
	require.NoError(t, b.Put(ctx, "HEAD", []byte("MANIFEST-B")))

	assert.Equal(t, "MANIFEST-A", readPointer(t, a))

	data, err := blobstore.ReadAll(ctx, b, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, "MANIFEST-B", string(data))
}
