package codec

import gojson "github.com/goccy/go-json"

// GoJSON uses github.com/goccy/go-json. It is the default.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

func (GoJSON) Name() string { return "go-json" }
