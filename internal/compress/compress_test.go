package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("com.example.app/.MainActivity#0 "), 256)

	rnd := rand.New(rand.NewSource(1))
	random := make([]byte, 4096)
	rnd.Read(random)

	for _, typ := range []Type{TypeNone, TypeLZ4, TypeZSTD} {
		for name, data := range map[string][]byte{
			"compressible": compressible,
			"random":       random,
			"empty":        {},
		} {
			t.Run(typ.String()+"/"+name, func(t *testing.T) {
				framed, err := Encode(data, typ)
				require.NoError(t, err)
				assert.Equal(t, byte(typ), framed[0])

				got, err := Decode(framed)
				require.NoError(t, err)
				assert.Equal(t, len(data), len(got))
				assert.True(t, bytes.Equal(data, got))
			})
		}
	}
}

func TestCompressibleShrinks(t *testing.T) {
	data := bytes.Repeat([]byte{0xab, 0xcd}, 8192)
	for _, typ := range []Type{TypeLZ4, TypeZSTD} {
		framed, err := Encode(data, typ)
		require.NoError(t, err)
		assert.Less(t, len(framed), len(data)/4, typ.String())
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte{1, 2})
	require.ErrorIs(t, err, ErrCorrupt)

	framed, err := Encode(bytes.Repeat([]byte("x"), 1024), TypeZSTD)
	require.NoError(t, err)
	_, err = Decode(framed[:len(framed)-1])
	require.ErrorIs(t, err, ErrCorrupt)

	_, err = Encode([]byte("x"), Type(9))
	require.ErrorIs(t, err, ErrUnknownType)

	bad := append([]byte(nil), framed...)
	bad[0] = 9
	_, err = Decode(bad)
	require.ErrorIs(t, err, ErrUnknownType)
}
