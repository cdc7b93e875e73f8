package icons

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
)

// ThemeData is the monochrome layer a themed icon is drawn from, plus the
// background color it sits on.
type ThemeData struct {
	Mono            image.Image
	BackgroundColor uint32
}

// encodeThemed writes
//
//	[TypeThemed][uvarint n][n bytes icon PNG][uvarint m][m bytes mono PNG][uint32 BE background]
//
// A missing mono layer is written with m = 0.
func (b *BitmapInfo) encodeThemed() ([]byte, error) {
	icon, err := encodePNG(b.Icon)
	if err != nil {
		return nil, err
	}
	var mono []byte
	if b.Theme.Mono != nil {
		if mono, err = encodePNG(b.Theme.Mono); err != nil {
			return nil, err
		}
	}

	out := make([]byte, 0, 1+2*binary.MaxVarintLen64+len(icon)+len(mono)+4)
	out = append(out, TypeThemed)
	out = binary.AppendUvarint(out, uint64(len(icon)))
	out = append(out, icon...)
	out = binary.AppendUvarint(out, uint64(len(mono)))
	out = append(out, mono...)
	out = binary.BigEndian.AppendUint32(out, b.Theme.BackgroundColor)
	return out, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(expectedBitmapSize(img))
	if err := pngEncoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("icons: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeThemed(data []byte, color uint32, cfg DecodeConfig, _ Resources) (*BitmapInfo, error) {
	p := data[1:]

	iconBytes, p, err := readChunk(p)
	if err != nil {
		return nil, err
	}
	monoBytes, p, err := readChunk(p)
	if err != nil {
		return nil, err
	}
	if len(p) != 4 {
		return nil, fmt.Errorf("%w: themed trailer is %d bytes", ErrDecode, len(p))
	}

	icon, err := decodeImage(iconBytes, cfg)
	if err != nil {
		return nil, err
	}
	theme := &ThemeData{BackgroundColor: binary.BigEndian.Uint32(p)}
	if len(monoBytes) > 0 {
		if theme.Mono, err = decodeImage(monoBytes, cfg); err != nil {
			return nil, err
		}
	}

	info := New(icon, color)
	info.Theme = theme
	return info, nil
}

func readChunk(p []byte) (chunk, rest []byte, err error) {
	n, k := binary.Uvarint(p)
	if k <= 0 || uint64(len(p)-k) < n {
		return nil, nil, fmt.Errorf("%w: truncated themed chunk", ErrDecode)
	}
	p = p[k:]
	return p[:n], p[n:], nil
}
