package icons

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// DefaultIconBitmapSize is the edge length, in pixels, of persisted icons.
const DefaultIconBitmapSize = 192

// IconFactory renders source images into icon bitmaps.
type IconFactory struct {
	IconBitmapSize int
}

// NewIconFactory returns a factory producing size x size bitmaps. A
// non-positive size selects DefaultIconBitmapSize.
func NewIconFactory(size int) *IconFactory {
	if size <= 0 {
		size = DefaultIconBitmapSize
	}
	return &IconFactory{IconBitmapSize: size}
}

// CreateIconBitmap scales src to the factory's bitmap size.
func (f *IconFactory) CreateIconBitmap(src image.Image) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, f.IconBitmapSize, f.IconBitmapSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// Extender is implemented by icon sources that carry more than a plain
// bitmap, such as adaptive or animated icons.
type Extender interface {
	// ExtendedInfo returns the BitmapInfo to use for this source.
	ExtendedInfo(icon image.Image, color uint32, factory *IconFactory, normalizationScale float32) *BitmapInfo
	// DrawForPersistence draws the static form stored in the cache.
	DrawForPersistence(dst draw.Image)
	// ThemedDrawable returns the drawable used under a themed icon pack.
	ThemedDrawable(res Resources) Drawable
}

// InfoFor builds the BitmapInfo for src. Sources implementing Extender
// decide for themselves; anything else is scaled by factory.
func InfoFor(src image.Image, color uint32, factory *IconFactory, normalizationScale float32) *BitmapInfo {
	if ext, ok := src.(Extender); ok {
		return ext.ExtendedInfo(src, color, factory, normalizationScale)
	}
	if factory == nil {
		return New(src, color)
	}
	return New(factory.CreateIconBitmap(src), color)
}

// PersistenceBitmap renders ext into a size x size bitmap for storage.
func PersistenceBitmap(ext Extender, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	ext.DrawForPersistence(dst)
	return dst
}
