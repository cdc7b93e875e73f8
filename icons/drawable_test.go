package icons

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIconBadgePriority(t *testing.T) {
	res := DefaultResources()
	instant, err := res.Drawable(ResInstantAppBadge)
	require.NoError(t, err)
	work, err := res.Drawable(ResWorkAppBadge)
	require.NoError(t, err)

	nested := New(checkerboard(2), 0)

	tests := []struct {
		name  string
		info  *BitmapInfo
		flags CreationFlags
		want  func(t *testing.T, badge Drawable)
	}{
		{
			name: "none",
			info: New(checkerboard(2), 0),
			want: func(t *testing.T, badge Drawable) { assert.Nil(t, badge) },
		},
		{
			name: "work",
			info: &BitmapInfo{Icon: checkerboard(2), Flags: FlagWork},
			want: func(t *testing.T, badge Drawable) { assert.Equal(t, work, badge) },
		},
		{
			name: "instant beats work",
			info: &BitmapInfo{Icon: checkerboard(2), Flags: FlagWork | FlagInstant},
			want: func(t *testing.T, badge Drawable) { assert.Equal(t, instant, badge) },
		},
		{
			name: "nested beats instant",
			info: (&BitmapInfo{Icon: checkerboard(2), Flags: FlagInstant}).WithBadgeInfo(nested),
			want: func(t *testing.T, badge Drawable) {
				fb, ok := badge.(*FastBitmapDrawable)
				require.True(t, ok)
				assert.Same(t, nested, fb.Info)
			},
		},
		{
			name:  "no badge flag",
			info:  (&BitmapInfo{Icon: checkerboard(2), Flags: FlagWork | FlagInstant}).WithBadgeInfo(nested),
			flags: CreationNoBadge,
			want:  func(t *testing.T, badge Drawable) { assert.Nil(t, badge) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.info.NewIcon(res, tt.flags)
			tt.want(t, d.Badge())
		})
	}
}

func TestNewIconPlaceholderAndThemed(t *testing.T) {
	res := &StaticResources{DisabledAlpha: 0.5}

	p := LowResInfo.NewIcon(res, 0)
	assert.True(t, p.IsPlaceholder())
	assert.InDelta(t, 0.5, p.DisabledAlpha, 1e-6)

	mono := image.NewAlpha(image.Rect(0, 0, 2, 2))
	info := New(checkerboard(2), 0)
	info.Theme = &ThemeData{Mono: mono}

	assert.False(t, info.NewIcon(res, 0).IsThemed())
	themed := info.NewIcon(res, CreationThemed)
	assert.True(t, themed.IsThemed())
	assert.Equal(t, image.Image(mono), themed.Image())

	assert.False(t, New(checkerboard(2), 0).NewIcon(res, CreationThemed).IsThemed())
}

func TestMissingBadgeResource(t *testing.T) {
	info := &BitmapInfo{Icon: checkerboard(2), Flags: FlagWork}
	d := info.NewIcon(&StaticResources{}, 0)
	assert.Nil(t, d.Badge())

	_, err := (&StaticResources{}).Drawable(ResWorkAppBadge)
	require.ErrorIs(t, err, ErrResourceNotFound)

	assert.Nil(t, info.NewIcon(nil, 0).Badge())
}
