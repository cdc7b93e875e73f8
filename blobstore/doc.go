// Package blobstore is the storage abstraction under the icon cache.
//
// A BlobStore holds named, immutable blobs: serialized icons, low-res
// previews, manifests and the CURRENT pointer naming the live manifest.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral caches
//   - LocalStore: a directory on disk, read through mmap
//   - CachingStore: block cache in front of any other store
//   - s3.Store, s3.DDBCommitStore: Amazon S3, optionally with DynamoDB commits
//   - minio.Store: MinIO and other S3-compatible servers
//
// # Commits
//
// Stores that implement Committer advance the CURRENT pointer with a
// conditional write, so two writers cannot both commit the same version.
// Other stores get a plain Put.
package blobstore
