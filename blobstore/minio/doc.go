// Package minio stores icon cache blobs on MinIO and other S3-compatible
// servers (Ceph, Garage, SeaweedFS) through minio-go.
//
//	store, err := minio.New("minio.local:9000", "launcher-icons",
//	    minio.WithStaticCredentials(accessKey, secretKey),
//	    minio.WithPrefix("pixel-8/"),
//	)
//
// The store has no compare-and-swap for CURRENT; one writer per prefix is
// assumed.
package minio
