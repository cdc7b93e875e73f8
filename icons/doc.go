// Package icons holds launcher icon bitmaps together with their metadata
// (dominant color, work/instant flags, an optional nested badge and an
// optional themed variant) and converts them to and from the byte buffers
// kept in the icon cache.
//
// # Wire format
//
//	[1 byte type][payload]
//
// Type 1 (TypeDefault) carries a lossless PNG. Type 2 (TypeThemed) carries the
// full icon, its monochrome theme layer and the theme background color.
// Decoders for other types can be added with RegisterDecoder.
//
// The shared LowResIcon sentinel and nil icons are never serialized.
package icons
