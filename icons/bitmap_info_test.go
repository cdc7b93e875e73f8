package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowRes(t *testing.T) {
	assert.True(t, LowResInfo.IsLowRes())
	assert.True(t, LowResInfo.IsNullOrLowRes())

	assert.True(t, (&BitmapInfo{}).IsNullOrLowRes())
	assert.False(t, (&BitmapInfo{}).IsLowRes())

	full := New(checkerboard(4), 0xff00ff00)
	assert.False(t, full.IsNullOrLowRes())
}

func TestCloneDropsBadge(t *testing.T) {
	badge := New(checkerboard(2), 1)
	theme := &ThemeData{BackgroundColor: 7}
	info := &BitmapInfo{Icon: checkerboard(4), Color: 9, Flags: FlagInstant, Theme: theme}

	withBadge := info.WithBadgeInfo(badge)
	require.Same(t, badge, withBadge.BadgeInfo())
	assert.Equal(t, FlagInstant, withBadge.Flags)
	assert.Nil(t, info.BadgeInfo())

	c := withBadge.Clone()
	assert.Nil(t, c.BadgeInfo())
	assert.Same(t, theme, c.Theme)
	assert.Equal(t, uint32(9), c.Color)
	assert.Equal(t, FlagInstant, c.Flags)
}

func TestWithUser(t *testing.T) {
	info := New(checkerboard(2), 0)

	require.Same(t, info, info.WithUser(10))
	assert.True(t, info.Flags.Has(FlagWork))

	info.WithUser(MyUserHandle())
	assert.False(t, info.Flags.Has(FlagWork))

	info.WithUser(10)
	info.WithUser(UserNull)
	assert.False(t, info.Flags.Has(FlagWork))
}

func TestFlags(t *testing.T) {
	f := Flags(0).With(FlagWork).With(FlagInstant)
	assert.Equal(t, "work|instant", f.String())
	assert.Equal(t, "instant", f.Without(FlagWork).String())
	assert.Equal(t, "none", Flags(0).String())
}
