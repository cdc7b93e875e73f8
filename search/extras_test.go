package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtras_NilSafe(t *testing.T) {
	var e Extras
	assert.Equal(t, "", e.GetString(ExtraGroupID))
	assert.False(t, e.GetBool(ExtraAnswer))
	_, ok := e.GetInt(ExtraResultAppGridX)
	assert.False(t, ok)

	assert.Equal(t, "", DecoratorID(nil))
	assert.False(t, IsAnswer(nil))
	assert.False(t, IsRichAnswer(nil))
	assert.False(t, IsEntity(&Target{}))
	assert.False(t, IsBlobstoreAsset(nil))
}

func TestExtras_GetInt(t *testing.T) {
	e := Extras{"a": 3, "b": float64(4), "c": int64(5), "d": "6"}
	for key, want := range map[string]int{"a": 3, "b": 4, "c": 5} {
		got, ok := e.GetInt(key)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := e.GetInt("d")
	assert.False(t, ok)
}

func TestDecorator(t *testing.T) {
	tg := app("a1")
	assert.Equal(t, DecoratorType(0), DecoratorTypeOf(tg))

	tg.PutExtra(ExtraGroupID, "g1")
	assert.Equal(t, "g1", DecoratorID(tg))
	assert.Equal(t, Grouping, DecoratorTypeOf(tg))
}

func TestIsRichAnswer(t *testing.T) {
	tests := []struct {
		name string
		t    *Target
		want bool
	}{
		{"plain web", web("w"), false},
		{"answer", answer("a"), false},
		{"rich answer", richAnswer("r"), true},
		{"tall card without answer flag", target("c", LayoutTallCardWithImageNoIcon, ResultWebSuggest), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRichAnswer(tt.t))
		})
	}
}

func TestIsBlobstoreAsset(t *testing.T) {
	tg := target("thumb", LayoutThumbnail, ResultImage)
	assert.False(t, IsBlobstoreAsset(tg))

	tg.PutExtra(ExtraBlobstoreHandle, "not a handle")
	assert.False(t, IsBlobstoreAsset(tg))

	tg.PutExtra(ExtraBlobstoreHandle, BlobHandle{Algorithm: "sha256", Digest: []byte{1, 2}})
	assert.True(t, IsBlobstoreAsset(tg))

	tg.PutExtra(ExtraBlobstoreHandle, (*BlobHandle)(nil))
	assert.False(t, IsBlobstoreAsset(tg))
}

func TestExtraKeys(t *testing.T) {
	// These values are read by other components verbatim.
	assert.Equal(t, "group_id", ExtraGroupID)
	assert.Equal(t, "hide_label", ExtraHideLabel)
	assert.Equal(t, "blobstore_handle_key", ExtraBlobstoreHandle)
	assert.Equal(t, "proxy_web_item", ExtraProxyWebItem)
	assert.Equal(t, "icon_cache_key", ActionExtraIconCacheKey)
}

func TestResultType_Has(t *testing.T) {
	rt := ResultApplication | ResultShortcut
	assert.True(t, rt.Has(ResultApplication))
	assert.False(t, rt.Has(ResultSuggest))
	assert.False(t, rt.Has(ResultUnknown))
}
