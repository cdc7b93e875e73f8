package search

import (
	"fmt"

	"github.com/hupe1980/launcherkit/codec"
)

// Target is a single search result. Identity is by pointer within a merge.
type Target struct {
	ID          string     `json:"id"`
	ParentID    string     `json:"parent_id,omitempty"`
	PackageName string     `json:"package_name"`
	User        int        `json:"user,omitempty"`
	LayoutType  LayoutType `json:"layout_type"`
	ResultType  ResultType `json:"result_type"`
	Score       float32    `json:"score,omitempty"`
	Action      *Action    `json:"action,omitempty"`
	Extras      Extras     `json:"extras,omitempty"`
}

// PutExtra stores v under key, allocating the extras map if needed.
func (t *Target) PutExtra(key string, v any) {
	if t.Extras == nil {
		t.Extras = make(Extras)
	}
	t.Extras[key] = v
}

// Clone returns a copy of t with its own extras map. Extra values are shared.
func (t *Target) Clone() *Target {
	if t == nil {
		return nil
	}
	c := *t
	if t.Extras != nil {
		c.Extras = make(Extras, len(t.Extras))
		for k, v := range t.Extras {
			c.Extras[k] = v
		}
	}
	return &c
}

func (t *Target) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", t.ID, t.LayoutType)
}

// DecodeTargets decodes a JSON array of targets with c (codec.Default if nil).
func DecodeTargets(c codec.Codec, data []byte) ([]*Target, error) {
	if c == nil {
		c = codec.Default
	}
	var targets []*Target
	if err := c.Unmarshal(data, &targets); err != nil {
		return nil, fmt.Errorf("search: decode targets (%s): %w", c.Name(), err)
	}
	for i, t := range targets {
		if t == nil {
			return nil, fmt.Errorf("search: decode targets (%s): element %d is null", c.Name(), i)
		}
	}
	return targets, nil
}

// EncodeTargets encodes targets as a JSON array with c (codec.Default if nil).
func EncodeTargets(c codec.Codec, targets []*Target) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	data, err := c.Marshal(targets)
	if err != nil {
		return nil, fmt.Errorf("search: encode targets (%s): %w", c.Name(), err)
	}
	return data, nil
}
