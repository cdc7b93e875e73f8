// Package iconcache persists launcher icons in a blobstore.BlobStore.
//
// Each component's serialized BitmapInfo lives in its own blob, next to a
// downscaled preview used for folder icons. A versioned manifest records
// every entry's color, flags and label, and which entries only ever had a
// low-res placeholder. The CURRENT blob names the live manifest.
//
// # Layout
//
//	CURRENT                              name of the live manifest
//	manifests/<version>-<uuid>.json.zst  zstd-compressed manifest
//	icons/<hash>.bin                     full icon, compression frame
//	lowres/<hash>.bin                    preview icon, compression frame
//
// Changes become visible to other processes on Commit. On a store that
// implements blobstore.Committer, two caches committing the same version
// conflict and the loser gets blobstore.ErrConcurrentModification.
package iconcache
