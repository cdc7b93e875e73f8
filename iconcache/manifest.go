package iconcache

import (
	"maps"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/launcherkit/codec"
	"github.com/hupe1980/launcherkit/icons"
	"github.com/hupe1980/launcherkit/internal/compress"
)

// Entry is the manifest record of one component.
type Entry struct {
	Slot        uint32           `json:"slot"`
	Package     string           `json:"package"`
	Class       string           `json:"class"`
	User        icons.UserHandle `json:"user"`
	Label       string           `json:"label,omitempty"`
	Color       uint32           `json:"color"`
	Flags       icons.Flags      `json:"flags"`
	Size        int64            `json:"size"`
	Compression compress.Type    `json:"compression"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Key returns the entry's component.
func (e *Entry) Key() ComponentKey {
	return ComponentKey{Package: e.Package, Class: e.Class, User: e.User}
}

// manifest is one committed state of the cache. Entries are replaced, never
// mutated, once published.
type manifest struct {
	Version   uint64            `json:"version"`
	Codec     string            `json:"codec"`
	CreatedAt time.Time         `json:"created_at"`
	NextSlot  uint32            `json:"next_slot"`
	Entries   map[string]*Entry `json:"entries"`
	LowRes    []byte            `json:"low_res,omitempty"`

	// lowRes holds the slots of entries stored without a full icon.
	lowRes *roaring.Bitmap
}

func newManifest() *manifest {
	return &manifest{
		Entries: make(map[string]*Entry),
		lowRes:  roaring.New(),
	}
}

func (m *manifest) isLowRes(e *Entry) bool {
	return m.lowRes.Contains(e.Slot)
}

// encode serializes a copy of m as version, compressed with zstd.
func (m *manifest) encode(c codec.Codec, version uint64) ([]byte, error) {
	low, err := m.lowRes.ToBytes()
	if err != nil {
		return nil, err
	}
	snap := manifest{
		Version:   version,
		Codec:     c.Name(),
		CreatedAt: time.Now().UTC(),
		NextSlot:  m.NextSlot,
		Entries:   maps.Clone(m.Entries),
		LowRes:    low,
	}
	raw, err := c.Marshal(&snap)
	if err != nil {
		return nil, err
	}
	return compress.Encode(raw, compress.TypeZSTD)
}

func decodeManifest(c codec.Codec, data []byte) (*manifest, error) {
	raw, err := compress.Decode(data)
	if err != nil {
		return nil, err
	}
	m := newManifest()
	if err := c.Unmarshal(raw, m); err != nil {
		return nil, err
	}
	if m.Entries == nil {
		m.Entries = make(map[string]*Entry)
	}
	if len(m.LowRes) > 0 {
		if err := m.lowRes.UnmarshalBinary(m.LowRes); err != nil {
			return nil, err
		}
	}
	m.LowRes = nil
	return m, nil
}
