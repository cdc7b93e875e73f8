package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type selects the compression algorithm.
type Type uint8

const (
	// TypeNone stores blocks raw.
	TypeNone Type = 0
	// TypeLZ4 is fast block compression, used for icon payloads.
	TypeLZ4 Type = 1
	// TypeZSTD trades speed for ratio, used for manifests.
	TypeZSTD Type = 2
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeLZ4:
		return "lz4"
	case TypeZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compress.Type(%d)", uint8(t))
	}
}

// HeaderSize is the frame header length.
const HeaderSize = 9

// maxRatio is the compressed/raw ratio above which blocks are stored raw.
const maxRatio = 0.9

var (
	// ErrCorrupt is returned for frames whose header does not match the payload.
	ErrCorrupt = errors.New("compress: corrupt frame")
	// ErrUnknownType is returned for frames with an unknown type byte.
	ErrUnknownType = errors.New("compress: unknown type")
)

var (
	zstdEncoderPool = sync.Pool{New: func() any {
		enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		return enc
	}}
	zstdDecoderPool = sync.Pool{New: func() any {
		dec, _ := zstd.NewReader(nil)
		return dec
	}}
)

// Encode frames data, compressing it with t.
func Encode(data []byte, t Type) ([]byte, error) {
	var (
		packed []byte
		err    error
	)
	switch t {
	case TypeNone:
	case TypeLZ4:
		packed, err = encodeLZ4(data)
	case TypeZSTD:
		packed = encodeZSTD(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
	if err != nil {
		return nil, err
	}

	if len(packed) == 0 || float64(len(packed)) > float64(len(data))*maxRatio {
		return frame(t, len(data), 0, data), nil
	}
	return frame(t, len(data), len(packed), packed), nil
}

func frame(t Type, rawSize, packedSize int, payload []byte) []byte {
	out := make([]byte, HeaderSize+len(payload))
	out[0] = byte(t)
	binary.LittleEndian.PutUint32(out[1:], uint32(rawSize))
	binary.LittleEndian.PutUint32(out[5:], uint32(packedSize))
	copy(out[HeaderSize:], payload)
	return out
}

func encodeLZ4(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, fmt.Errorf("compress: lz4: %w", err)
	}
	return dst[:n], nil
}

func encodeZSTD(data []byte) []byte {
	enc := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(data, nil)
}

// Decode reverses Encode.
func Decode(frame []byte) ([]byte, error) {
	if len(frame) < HeaderSize {
		return nil, fmt.Errorf("%w: %d byte frame", ErrCorrupt, len(frame))
	}
	t := Type(frame[0])
	rawSize := binary.LittleEndian.Uint32(frame[1:])
	packedSize := binary.LittleEndian.Uint32(frame[5:])
	payload := frame[HeaderSize:]

	if packedSize == 0 {
		if uint32(len(payload)) != rawSize {
			return nil, fmt.Errorf("%w: raw size %d, have %d", ErrCorrupt, rawSize, len(payload))
		}
		return payload, nil
	}
	if uint32(len(payload)) != packedSize {
		return nil, fmt.Errorf("%w: packed size %d, have %d", ErrCorrupt, packedSize, len(payload))
	}

	switch t {
	case TypeLZ4:
		out := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
		}
		if uint32(n) != rawSize {
			return nil, fmt.Errorf("%w: lz4 produced %d of %d bytes", ErrCorrupt, n, rawSize)
		}
		return out, nil
	case TypeZSTD:
		dec := zstdDecoderPool.Get().(*zstd.Decoder)
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(payload, make([]byte, 0, rawSize))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		if uint32(len(out)) != rawSize {
			return nil, fmt.Errorf("%w: zstd produced %d of %d bytes", ErrCorrupt, len(out), rawSize)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
}
