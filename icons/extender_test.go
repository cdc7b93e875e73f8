package icons

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adaptiveIcon struct {
	*image.NRGBA
	fill color.NRGBA
}

func (a adaptiveIcon) ExtendedInfo(icon image.Image, c uint32, _ *IconFactory, _ float32) *BitmapInfo {
	info := New(icon, c)
	info.Flags = FlagInstant
	return info
}

func (a adaptiveIcon) DrawForPersistence(dst draw.Image) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(a.fill), image.Point{}, draw.Src)
}

func (a adaptiveIcon) ThemedDrawable(Resources) Drawable { return ImageDrawable{Img: a.NRGBA} }

func TestInfoFor(t *testing.T) {
	f := NewIconFactory(16)
	assert.Equal(t, 16, f.IconBitmapSize)
	assert.Equal(t, DefaultIconBitmapSize, NewIconFactory(0).IconBitmapSize)

	plain := InfoFor(checkerboard(4), 1, f, 1)
	assert.Equal(t, 16, plain.Icon.Bounds().Dx())
	assert.Equal(t, Flags(0), plain.Flags)

	ext := adaptiveIcon{NRGBA: checkerboard(4)}
	info := InfoFor(ext, 2, f, 1)
	assert.Equal(t, FlagInstant, info.Flags)
	assert.Equal(t, uint32(2), info.Color)
}

func TestPersistenceBitmap(t *testing.T) {
	fill := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	img := PersistenceBitmap(adaptiveIcon{fill: fill}, 3)
	require.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, fill, img.NRGBAAt(2, 2))
}

func TestCreateLowResIcon(t *testing.T) {
	assert.Nil(t, CreateLowResIcon(nil, 10))
	assert.Nil(t, CreateLowResIcon(LowResInfo, 10))

	info := &BitmapInfo{Icon: checkerboard(20), Color: 4, Flags: FlagWork}
	low := CreateLowResIcon(info, 0)
	require.NotNil(t, low)
	assert.Equal(t, 4, low.Icon.Bounds().Dx())
	assert.Equal(t, uint32(4), low.Color)
	assert.Equal(t, FlagWork, low.Flags)

	tiny := CreateLowResIcon(New(checkerboard(2), 0), 2)
	assert.Equal(t, 1, tiny.Icon.Bounds().Dx())
}
