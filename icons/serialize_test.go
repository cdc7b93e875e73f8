package icons

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripDefault(t *testing.T) {
	src := checkerboard(12)
	info := New(src, 0xff336699)

	data := info.ToByteArray()
	require.NotEmpty(t, data)
	assert.Equal(t, TypeDefault, data[0])

	got, err := FromByteArray(data, 0xff336699, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xff336699), got.Color)
	requireSamePixels(t, src, got.Icon)
}

func TestNotPersisted(t *testing.T) {
	var nilInfo *BitmapInfo
	assert.Nil(t, nilInfo.ToByteArray())
	assert.Nil(t, LowResInfo.ToByteArray())
	assert.Nil(t, (&BitmapInfo{}).ToByteArray())

	data, err := LowResInfo.Encode()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFromByteArrayErrors(t *testing.T) {
	_, err := FromByteArray(nil, 0, nil)
	require.ErrorIs(t, err, ErrNoData)

	_, err = FromByteArray([]byte{}, 0, nil)
	require.ErrorIs(t, err, ErrNoData)

	_, err = FromByteArray([]byte{0x7f, 1, 2, 3}, 0, nil)
	var ute *UnknownTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, byte(0x7f), ute.Type)

	_, err = FromByteArray([]byte{TypeDefault, 'n', 'o', 't', 'p', 'n', 'g'}, 0, nil)
	require.ErrorIs(t, err, ErrDecode)
}

func TestDecodeJPEGPayload(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(TypeDefault)
	require.NoError(t, jpeg.Encode(&buf, checkerboard(8), nil))

	got, err := FromByteArray(buf.Bytes(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Icon.Bounds().Dx())
}

func TestHardwareBitmaps(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	gray.Pix[4] = 0xaa

	var buf bytes.Buffer
	buf.WriteByte(TypeDefault)
	require.NoError(t, png.Encode(&buf, gray))

	plain, err := FromByteArray(buf.Bytes(), 0, nil)
	require.NoError(t, err)
	_, isNRGBA := plain.Icon.(*image.NRGBA)
	assert.False(t, isNRGBA)

	hw, err := FromByteArray(buf.Bytes(), 0, nil, WithHardwareBitmaps())
	require.NoError(t, err)
	require.IsType(t, &image.NRGBA{}, hw.Icon)
	requireSamePixels(t, gray, hw.Icon)
}

func TestRoundTripThemed(t *testing.T) {
	mono := image.NewAlpha(image.Rect(0, 0, 6, 6))
	for i := range mono.Pix {
		mono.Pix[i] = uint8(i * 7)
	}
	info := New(checkerboard(6), 3)
	info.Theme = &ThemeData{Mono: mono, BackgroundColor: 0xff102030}

	data := info.ToByteArray()
	require.NotEmpty(t, data)
	assert.Equal(t, TypeThemed, data[0])

	got, err := FromByteArray(data, 3, nil)
	require.NoError(t, err)
	require.NotNil(t, got.Theme)
	assert.Equal(t, uint32(0xff102030), got.Theme.BackgroundColor)
	requireSamePixels(t, info.Icon, got.Icon)
	requireSamePixels(t, mono, got.Theme.Mono)
}

func TestThemedWithoutMono(t *testing.T) {
	info := New(checkerboard(4), 0)
	info.Theme = &ThemeData{BackgroundColor: 5}

	got, err := FromByteArray(info.ToByteArray(), 0, nil)
	require.NoError(t, err)
	require.NotNil(t, got.Theme)
	assert.Nil(t, got.Theme.Mono)
	assert.Equal(t, uint32(5), got.Theme.BackgroundColor)
}

func TestThemedTruncated(t *testing.T) {
	info := New(checkerboard(4), 0)
	info.Theme = &ThemeData{BackgroundColor: 5}
	data := info.ToByteArray()

	_, err := FromByteArray(data[:len(data)-2], 0, nil)
	require.ErrorIs(t, err, ErrDecode)

	_, err = FromByteArray(data[:3], 0, nil)
	require.ErrorIs(t, err, ErrDecode)
}

func TestRegisterDecoder(t *testing.T) {
	const typ byte = 0x42
	sentinel := New(checkerboard(1), 0)
	RegisterDecoder(typ, func(data []byte, color uint32, _ DecodeConfig, _ Resources) (*BitmapInfo, error) {
		assert.Equal(t, []byte{typ, 1}, data)
		assert.Equal(t, uint32(77), color)
		return sentinel, nil
	})
	t.Cleanup(func() {
		decodersMu.Lock()
		delete(decoders, typ)
		decodersMu.Unlock()
	})

	got, err := FromByteArray([]byte{typ, 1}, 77, nil)
	require.NoError(t, err)
	assert.Same(t, sentinel, got)
}
