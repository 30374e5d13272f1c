package keymaster

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitSerializerCreated(_ *testing.T) {
	// Should not panic
	emitSerializerCreated(context.Background(), "application/json")
}

func TestEmitMarshalStart(_ *testing.T) {
	emitMarshalStart(context.Background(), "application/json", 3)
}

func TestEmitMarshalComplete_Success(_ *testing.T) {
	emitMarshalComplete(context.Background(), "application/json", 3, 1024, 100*time.Millisecond, 1, nil)
}

func TestEmitMarshalComplete_Error(_ *testing.T) {
	emitMarshalComplete(context.Background(), "application/json", 3, 0, 100*time.Millisecond, 0, errors.New("test error"))
}

func TestEmitUnmarshalStart(_ *testing.T) {
	emitUnmarshalStart(context.Background(), "application/cbor", 512)
}

func TestEmitUnmarshalComplete_Success(_ *testing.T) {
	emitUnmarshalComplete(context.Background(), "application/cbor", 4, 100*time.Millisecond, 2, nil)
}

func TestEmitUnmarshalComplete_Error(_ *testing.T) {
	emitUnmarshalComplete(context.Background(), "application/cbor", 0, 100*time.Millisecond, 0, errors.New("test error"))
}

func TestSignalVariables(t *testing.T) {
	signals := []struct {
		name   string
		signal interface{}
	}{
		{"SignalSerializerCreated", SignalSerializerCreated},
		{"SignalMarshalStart", SignalMarshalStart},
		{"SignalMarshalComplete", SignalMarshalComplete},
		{"SignalUnmarshalStart", SignalUnmarshalStart},
		{"SignalUnmarshalComplete", SignalUnmarshalComplete},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	keys := []struct {
		name string
		key  interface{}
	}{
		{"KeyContentType", KeyContentType},
		{"KeyCount", KeyCount},
		{"KeySize", KeySize},
		{"KeyDuration", KeyDuration},
		{"KeyError", KeyError},
		{"KeySealedCount", KeySealedCount},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}
