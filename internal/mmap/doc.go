// Package mmap maps files read-only into memory. Local icon blobs are served
// straight from the mapping instead of being copied through read calls.
package mmap
