// Package s3 stores icon cache blobs in Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "launcher-icons",
//	    s3.WithPrefix("devices/pixel-8/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
// S3 has no compare-and-swap, so concurrent writers should wrap the store in
// a DDBCommitStore, which keeps the CURRENT pointer in DynamoDB.
package s3
