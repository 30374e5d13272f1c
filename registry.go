package keymaster

import (
	"reflect"
	"sync"
)

// registryKey identifies a cached serializer: the codec's content type and,
// when the codec is a comparable value, its configuration.
type registryKey struct {
	contentType string
	config      any
}

var (
	registry   = make(map[registryKey]*Serializer)
	registryMu sync.RWMutex
)

func keyFor(codec Codec) registryKey {
	k := registryKey{contentType: codec.ContentType()}
	if v := reflect.Indirect(reflect.ValueOf(codec)); v.IsValid() && v.Comparable() {
		k.config = v.Interface()
	}
	return k
}

// Use returns a cached serializer for codec or builds a new one.
// Serializers are cached by codec content type and codec configuration, so
// json.New and json.NewIndent get separate serializers, while configuration
// applied to the result (encryptors, sealed tags) is shared by every caller of
// Use with an equal codec.
func Use(codec Codec) *Serializer {
	key := keyFor(codec)

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[key]; ok {
		return cached
	}

	s := NewSerializer(codec)
	registry[key] = s
	return s
}

// Reset clears the serializer registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]*Serializer)
}
