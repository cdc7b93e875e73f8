package icons

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// LowResScale is the factor by which low-res previews are smaller than the
// full icon.
const LowResScale = 5

// CreateLowResIcon returns a downscaled copy of info for folder previews.
// size is the full icon edge; a non-positive size uses the icon's own width.
// Nil and low-res infos give nil.
func CreateLowResIcon(info *BitmapInfo, size int) *BitmapInfo {
	if info == nil || info.IsNullOrLowRes() {
		return nil
	}
	src := info.Icon
	if size <= 0 {
		size = src.Bounds().Dx()
	}
	edge := max(size/LowResScale, 1)

	dst := image.NewNRGBA(image.Rect(0, 0, edge, edge))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	out := New(dst, info.Color)
	out.Flags = info.Flags
	return out
}
