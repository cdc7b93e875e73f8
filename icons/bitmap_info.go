package icons

import (
	"image"
)

// LowResIcon is the shared placeholder bitmap for icons that have not been
// loaded at full resolution. It is compared by identity.
var LowResIcon image.Image = image.NewAlpha(image.Rect(0, 0, 1, 1))

// LowResInfo wraps LowResIcon.
var LowResInfo = FromBitmap(LowResIcon)

// BitmapInfo is an icon bitmap plus the metadata needed to draw it.
//
// Values are treated as immutable once shared, except for Flags, which
// WithUser updates in place.
type BitmapInfo struct {
	Icon  image.Image
	Color uint32 // dominant color, packed ARGB
	Flags Flags

	// Theme is the optional themed variant. Infos with a theme serialize as TypeThemed.
	Theme *ThemeData

	badgeInfo *BitmapInfo
}

// New returns a BitmapInfo for icon with the given dominant color.
func New(icon image.Image, color uint32) *BitmapInfo {
	return &BitmapInfo{Icon: icon, Color: color}
}

// FromBitmap returns a BitmapInfo for icon with no color.
func FromBitmap(icon image.Image) *BitmapInfo {
	return New(icon, 0)
}

// Clone returns a copy carrying the icon, color, flags and theme, but no badge.
func (b *BitmapInfo) Clone() *BitmapInfo {
	return &BitmapInfo{
		Icon:  b.Icon,
		Color: b.Color,
		Flags: b.Flags,
		Theme: b.Theme,
	}
}

// WithBadgeInfo returns a copy of b that draws badge as its badge.
func (b *BitmapInfo) WithBadgeInfo(badge *BitmapInfo) *BitmapInfo {
	c := b.Clone()
	c.badgeInfo = badge
	return c
}

// BadgeInfo returns the nested badge, if any.
func (b *BitmapInfo) BadgeInfo() *BitmapInfo { return b.badgeInfo }

// WithUser sets or clears FlagWork depending on whether user is the process
// user, and returns b.
func (b *BitmapInfo) WithUser(user UserHandle) *BitmapInfo {
	if user == UserNull || user == MyUserHandle() {
		b.Flags = b.Flags.Without(FlagWork)
	} else {
		b.Flags = b.Flags.With(FlagWork)
	}
	return b
}

// IsNullOrLowRes reports whether the icon is missing or the low-res placeholder.
// A missing icon only happens when generating the bitmap failed.
func (b *BitmapInfo) IsNullOrLowRes() bool {
	return b.Icon == nil || b.IsLowRes()
}

// IsLowRes reports whether the icon is the LowResIcon sentinel.
func (b *BitmapInfo) IsLowRes() bool {
	return b.Icon == LowResIcon
}

// expectedBitmapSize is the uncompressed ARGB size, used to presize buffers.
func expectedBitmapSize(img image.Image) int {
	r := img.Bounds()
	return r.Dx() * r.Dy() * 4
}
