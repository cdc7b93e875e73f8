package icons

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func checkerboard(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 0x80, A: 0xff}
			if (x+y)%2 == 0 {
				c.A = 0x40
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func requireSamePixels(t *testing.T, want, got image.Image) {
	t.Helper()
	require.Equal(t, want.Bounds().Size(), got.Bounds().Size())
	wb, gb := want.Bounds(), got.Bounds()
	for y := 0; y < wb.Dy(); y++ {
		for x := 0; x < wb.Dx(); x++ {
			w := color.NRGBAModel.Convert(want.At(wb.Min.X+x, wb.Min.Y+y))
			g := color.NRGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y))
			require.Equal(t, w, g, "pixel (%d,%d)", x, y)
		}
	}
}
