package icons

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // accepted payload format
	"image/png"
	"sync"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // accepted payload format
)

// Type tags of serialized icons.
const (
	TypeDefault byte = 1
	TypeThemed  byte = 2
)

var (
	// ErrNoData is returned when FromByteArray is called without a buffer.
	ErrNoData = errors.New("icons: no data")

	// ErrDecode is returned when the image payload cannot be decoded.
	ErrDecode = errors.New("icons: decode failed")
)

// UnknownTypeError is returned for a buffer whose type tag has no decoder.
type UnknownTypeError struct {
	Type byte
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("icons: unknown type %d", e.Type)
}

// DecodeConfig carries decode hints.
type DecodeConfig struct {
	// HardwareBitmaps normalizes decoded pixels to *image.NRGBA, the layout
	// uploaded to the GPU without conversion.
	HardwareBitmaps bool
}

// DecodeOption configures FromByteArray.
type DecodeOption func(*DecodeConfig)

// WithHardwareBitmaps enables DecodeConfig.HardwareBitmaps.
func WithHardwareBitmaps() DecodeOption {
	return func(c *DecodeConfig) { c.HardwareBitmaps = true }
}

// Decoder turns a full serialized buffer (type byte included) into a BitmapInfo.
type Decoder func(data []byte, color uint32, cfg DecodeConfig, res Resources) (*BitmapInfo, error)

var (
	decodersMu sync.RWMutex
	decoders   = map[byte]Decoder{
		TypeDefault: decodeDefault,
		TypeThemed:  decodeThemed,
	}
)

// RegisterDecoder installs d for buffers tagged typ, replacing any previous decoder.
func RegisterDecoder(typ byte, d Decoder) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	decoders[typ] = d
}

func lookupDecoder(typ byte) (Decoder, bool) {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	d, ok := decoders[typ]
	return d, ok
}

var pngEncoder = &png.Encoder{CompressionLevel: png.DefaultCompression}

// Encode serializes b. It returns (nil, nil) for a nil or low-res icon,
// which are never persisted.
func (b *BitmapInfo) Encode() ([]byte, error) {
	if b == nil || b.IsNullOrLowRes() {
		return nil, nil
	}
	if b.Theme != nil {
		return b.encodeThemed()
	}

	var buf bytes.Buffer
	buf.Grow(expectedBitmapSize(b.Icon) + 1)
	buf.WriteByte(TypeDefault)
	if err := pngEncoder.Encode(&buf, b.Icon); err != nil {
		return nil, fmt.Errorf("icons: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ToByteArray serializes b, or returns nil for a nil/low-res icon.
// Encode failures are logged and reported as nil.
func (b *BitmapInfo) ToByteArray() []byte {
	data, err := b.Encode()
	if err != nil {
		logger().Warn("could not write bitmap", "error", err)
		return nil
	}
	return data
}

// FromByteArray decodes a buffer produced by Encode. color is the dominant
// color stored next to the buffer; res is handed to the decoder of themed
// buffers.
func FromByteArray(data []byte, color uint32, res Resources, optFns ...DecodeOption) (*BitmapInfo, error) {
	if len(data) == 0 {
		return nil, ErrNoData
	}

	var cfg DecodeConfig
	for _, fn := range optFns {
		if fn != nil {
			fn(&cfg)
		}
	}

	d, ok := lookupDecoder(data[0])
	if !ok {
		return nil, &UnknownTypeError{Type: data[0]}
	}
	return d(data, color, cfg, res)
}

func decodeDefault(data []byte, color uint32, cfg DecodeConfig, _ Resources) (*BitmapInfo, error) {
	img, err := decodeImage(data[1:], cfg)
	if err != nil {
		return nil, err
	}
	return New(img, color), nil
}

func decodeImage(p []byte, cfg DecodeConfig) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(p))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if cfg.HardwareBitmaps {
		img = toNRGBA(img)
	}
	return img, nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
	return dst
}
