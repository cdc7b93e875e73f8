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
	"github.com/hupe1980/launcherkit/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDDB is an in-memory commit table.
type fakeDDB struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
}

func newFakeDDB() *fakeDDB {
	return &fakeDDB{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeDDB) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := in.Item["base_uri"].(*types.AttributeValueMemberS).Value + ":" +
		in.Item["version"].(*types.AttributeValueMemberN).Value
	if aws.ToString(in.ConditionExpression) == "attribute_not_exists(version)" {
		if _, ok := f.items[key]; ok {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
		}
	}
	f.items[key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDDB) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uri := in.ExpressionAttributeValues[":uri"].(*types.AttributeValueMemberS).Value
	var items []map[string]types.AttributeValue
	for _, item := range f.items {
		if item["base_uri"].(*types.AttributeValueMemberS).Value == uri {
			items = append(items, item)
		}
	}
	version := func(item map[string]types.AttributeValue) uint64 {
		v, _ := strconv.ParseUint(item["version"].(*types.AttributeValueMemberN).Value, 10, 64)
		return v
	}
	slices.SortFunc(items, func(a, b map[string]types.AttributeValue) int {
		return int(version(b)) - int(version(a))
	})
	if in.Limit != nil && int(*in.Limit) < len(items) {
		items = items[:*in.Limit]
	}
	return &dynamodb.QueryOutput{Items: items}, nil
}

func TestDDBCommitStoreCurrent(t *testing.T) {
	ctx := context.Background()
	store := NewDDBCommitStore(blobstore.NewMemoryStore(), newFakeDDB(), "commits", "s3://icons/pixel")

	_, err := store.Open(ctx, blobstore.CurrentName)
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	for i := 1; i <= 11; i++ {
		require.NoError(t, store.Put(ctx, blobstore.CurrentName, []byte(fmt.Sprintf("manifests/%d.json.zst", i))))
	}

	v, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), v)

	got, err := blobstore.ReadAll(ctx, store, blobstore.CurrentName)
	require.NoError(t, err)
	assert.Equal(t, "manifests/11.json.zst", string(got))
}

func TestDDBCommitStoreConflict(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDDB()
	a := NewDDBCommitStore(blobstore.NewMemoryStore(), ddb, "commits", "s3://icons/pixel")
	b := NewDDBCommitStore(blobstore.NewMemoryStore(), ddb, "commits", "s3://icons/pixel")

	require.NoError(t, a.CommitVersion(ctx, 1, "manifests/a1"))
	require.ErrorIs(t, b.CommitVersion(ctx, 1, "manifests/b1"), ErrConcurrentModification)
	require.NoError(t, b.CommitVersion(ctx, 2, "manifests/b2"))

	got, err := blobstore.ReadAll(ctx, a, blobstore.CurrentName)
	require.NoError(t, err)
	assert.Equal(t, "manifests/b2", string(got))

	other := NewDDBCommitStore(blobstore.NewMemoryStore(), ddb, "commits", "s3://icons/tablet")
	_, err = other.Open(ctx, blobstore.CurrentName)
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestDDBCommitStorePassThrough(t *testing.T) {
	ctx := context.Background()
	inner := blobstore.NewMemoryStore()
	store := NewDDBCommitStore(inner, newFakeDDB(), "commits", "s3://icons/pixel")

	require.NoError(t, store.Put(ctx, "icons/a.bin", []byte("png")))
	got, err := blobstore.ReadAll(ctx, inner, "icons/a.bin")
	require.NoError(t, err)
	assert.Equal(t, "png", string(got))

	names, err := store.List(ctx, "icons/")
	require.NoError(t, err)
	assert.Equal(t, []string{"icons/a.bin"}, names)
}
