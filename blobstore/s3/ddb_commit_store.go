package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/launcherkit/blobstore"
)

// DDBClient is the subset of *dynamodb.Client the commit store uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ DDBClient = (*dynamodb.Client)(nil)

// ErrConcurrentModification is blobstore.ErrConcurrentModification.
var ErrConcurrentModification = blobstore.ErrConcurrentModification

// DDBCommitStore keeps blobs in S3 and the CURRENT pointer in DynamoDB.
//
// Every commit is a new item keyed by (base_uri, version) and written with
// attribute_not_exists, so exactly one writer wins each version.
//
// Table schema:
//
//	aws dynamodb create-table \
//	  --table-name launcher-icon-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DDBCommitStore struct {
	blobstore.BlobStore
	ddb     DDBClient
	table   string
	baseURI string
}

var _ blobstore.Committer = (*DDBCommitStore)(nil)

// NewDDBCommitStore wraps store. baseURI, usually "s3://bucket/prefix",
// partitions the commit table between caches.
func NewDDBCommitStore(store blobstore.BlobStore, ddb DDBClient, table, baseURI string) *DDBCommitStore {
	return &DDBCommitStore{BlobStore: store, ddb: ddb, table: table, baseURI: baseURI}
}

// Open serves CURRENT from the latest committed version.
func (s *DDBCommitStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if name != blobstore.CurrentName {
		return s.BlobStore.Open(ctx, name)
	}
	version, target, err := s.latest(ctx)
	if err != nil {
		return nil, err
	}
	if version == 0 {
		return nil, blobstore.ErrNotFound
	}
	return blobstore.NewBytesBlob([]byte(target)), nil
}

// Put commits the next version when name is CURRENT.
func (s *DDBCommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name != blobstore.CurrentName {
		return s.BlobStore.Put(ctx, name, data)
	}
	version, _, err := s.latest(ctx)
	if err != nil {
		return err
	}
	return s.CommitVersion(ctx, version+1, string(data))
}

// CommitVersion implements blobstore.Committer.
func (s *DDBCommitStore) CommitVersion(ctx context.Context, version uint64, target string) error {
	_, err := s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"base_uri":      &types.AttributeValueMemberS{Value: s.baseURI},
			"version":       &types.AttributeValueMemberN{Value: strconv.FormatUint(version, 10)},
			"manifest_path": &types.AttributeValueMemberS{Value: target},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("s3: commit version %d: %w", version, err)
	}
	return nil
}

// Version returns the latest committed version, 0 if none.
func (s *DDBCommitStore) Version(ctx context.Context) (uint64, error) {
	v, _, err := s.latest(ctx)
	return v, err
}

func (s *DDBCommitStore) latest(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("s3: query commits: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	vAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("s3: commit item has no numeric version")
	}
	pAttr, ok := item["manifest_path"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("s3: commit item has no manifest_path")
	}
	version, err := strconv.ParseUint(vAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("s3: parse commit version: %w", err)
	}
	return version, pAttr.Value, nil
}
