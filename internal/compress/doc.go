// Package compress frames byte blocks with a small header and compresses them
// with LZ4 or Zstandard.
//
// Frame layout (little endian):
//
//	[Type uint8][UncompressedSize uint32][CompressedSize uint32][Data...]
//
// CompressedSize 0 means Data is stored raw, which happens for TypeNone and
// whenever compression does not shrink the block enough to pay off.
package compress
