package icons

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ResourceID names a drawable supplied by Resources.
type ResourceID int

const (
	ResInstantAppBadge ResourceID = iota + 1
	ResWorkAppBadge
)

// ErrResourceNotFound is returned by Resources that do not carry a drawable.
var ErrResourceNotFound = errors.New("icons: resource not found")

// Drawable is anything the UI can draw.
type Drawable interface {
	Image() image.Image
}

// ImageDrawable draws a fixed image.
type ImageDrawable struct {
	Img image.Image
}

// Image implements Drawable.
func (d ImageDrawable) Image() image.Image { return d.Img }

// Resources supplies the UI theme values icon drawables depend on.
type Resources interface {
	// DisabledIconAlpha is the alpha applied to icons of disabled apps.
	DisabledIconAlpha() float32
	// Drawable returns the drawable for id.
	Drawable(id ResourceID) (Drawable, error)
}

// StaticResources is a Resources backed by fixed values.
type StaticResources struct {
	DisabledAlpha float32
	Drawables     map[ResourceID]Drawable
}

// DisabledIconAlpha implements Resources.
func (r *StaticResources) DisabledIconAlpha() float32 { return r.DisabledAlpha }

// Drawable implements Resources.
func (r *StaticResources) Drawable(id ResourceID) (Drawable, error) {
	if d, ok := r.Drawables[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrResourceNotFound, id)
}

// DefaultResources returns resources with flat colored badges and full
// disabled alpha.
func DefaultResources() *StaticResources {
	return &StaticResources{
		DisabledAlpha: 1,
		Drawables: map[ResourceID]Drawable{
			ResInstantAppBadge: ImageDrawable{Img: solidBadge(color.NRGBA{R: 0xff, G: 0x98, A: 0xff})},
			ResWorkAppBadge:    ImageDrawable{Img: solidBadge(color.NRGBA{R: 0x1a, G: 0x73, B: 0xe8, A: 0xff})},
		},
	}
}

func solidBadge(c color.NRGBA) image.Image {
	return image.NewUniform(c)
}

// FastBitmapDrawable draws a BitmapInfo with an optional badge.
type FastBitmapDrawable struct {
	Info          *BitmapInfo
	DisabledAlpha float32

	badge       Drawable
	placeholder bool
	themed      bool
}

// Image implements Drawable. Themed drawables draw the mono layer.
func (d *FastBitmapDrawable) Image() image.Image {
	if d.themed {
		return d.Info.Theme.Mono
	}
	return d.Info.Icon
}

// Badge returns the badge drawn over the icon, or nil.
func (d *FastBitmapDrawable) Badge() Drawable { return d.badge }

// SetBadge sets the badge drawn over the icon.
func (d *FastBitmapDrawable) SetBadge(b Drawable) { d.badge = b }

// IsPlaceholder reports whether the drawable stands in for a low-res icon.
func (d *FastBitmapDrawable) IsPlaceholder() bool { return d.placeholder }

// IsThemed reports whether the themed variant is drawn.
func (d *FastBitmapDrawable) IsThemed() bool { return d.themed }

// NewIcon creates a drawable for b.
func (b *BitmapInfo) NewIcon(res Resources, flags CreationFlags) *FastBitmapDrawable {
	d := &FastBitmapDrawable{
		Info:        b,
		placeholder: b.IsLowRes(),
		themed:      flags.Has(CreationThemed) && b.Theme != nil && b.Theme.Mono != nil,
	}
	b.applyFlags(res, d, flags)
	return d
}

// applyFlags picks the badge: nested badge info, then instant, then work.
func (b *BitmapInfo) applyFlags(res Resources, d *FastBitmapDrawable, flags CreationFlags) {
	d.DisabledAlpha = 1
	if res != nil {
		d.DisabledAlpha = res.DisabledIconAlpha()
	}
	if flags.Has(CreationNoBadge) {
		return
	}

	switch {
	case b.badgeInfo != nil:
		d.SetBadge(b.badgeInfo.NewIcon(res, flags))
	case b.Flags.Has(FlagInstant):
		d.SetBadge(resourceBadge(res, ResInstantAppBadge))
	case b.Flags.Has(FlagWork):
		d.SetBadge(resourceBadge(res, ResWorkAppBadge))
	}
}

func resourceBadge(res Resources, id ResourceID) Drawable {
	if res == nil {
		return nil
	}
	badge, err := res.Drawable(id)
	if err != nil {
		logger().Warn("missing badge drawable", "resource", int(id), "error", err)
		return nil
	}
	return badge
}
