// Package codec centralizes how launcherkit encodes structured values:
// icon cache manifests and search result lists.
//
// Every manifest records the name of the codec that wrote it. Built-in
// codecs all produce plain JSON, so any of them reads any manifest; a
// registered custom codec must keep that property.
package codec

import (
	"fmt"
	"slices"
	"sync"
)

// Codec marshals values to bytes and back. Implementations must be safe
// for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Codec{
		"json":    JSON{},
		"go-json": GoJSON{},
	}
)

// Register makes c available to ByName, replacing any codec of the same name.
func Register(c Codec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[c.Name()] = c
}

// ByName looks a codec up by the name it reports.
func ByName(name string) (Codec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[name]
	return c, ok
}

// Names lists the registered codec names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MustMarshal marshals v with c (Default if nil) and panics on error.
// Meant for fixtures.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec: %s marshal: %w", c.Name(), err))
	}
	return b
}
