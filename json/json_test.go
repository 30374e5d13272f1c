package json

import (
	"context"
	"testing"

	"github.com/zoobzio/keymaster"
	kmtest "github.com/zoobzio/keymaster/testing"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
	}
}

func TestSerializerRoundTrip(t *testing.T) {
	s := keymaster.NewSerializer(New())
	want := kmtest.SampleSet()

	data, err := s.Marshal(context.Background(), want)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	got, err := s.Unmarshal(context.Background(), data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	kmtest.AssertSetsEqual(t, want, got)
}

func TestSerializerRoundTrip_Sealed(t *testing.T) {
	s := keymaster.NewSerializer(New()).
		SetEncryptor(keymaster.EncryptAES, kmtest.TestEncryptor(t)).
		SealDefaults(keymaster.EncryptAES)
	want := kmtest.SampleSet()

	data, err := s.Marshal(context.Background(), want)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	got, err := s.Unmarshal(context.Background(), data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	kmtest.AssertSetsEqual(t, want, got)
}

func TestMarshalEmpty(t *testing.T) {
	s := keymaster.NewSerializer(New())

	data, err := s.Marshal(context.Background(), nil)
	if err != nil {
		t.Fatalf("Marshal(nil) error: %v", err)
	}

	got, err := s.Unmarshal(context.Background(), data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("Unmarshal() len = %d, want 0", got.Len())
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var doc keymaster.Document
	err := c.Unmarshal([]byte("invalid json"), &doc)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestUnmarshalUnknownField(t *testing.T) {
	c := New()

	var doc keymaster.Document
	if err := c.Unmarshal([]byte("{\"params\":[{\"tag\":\"KEY_SIZE\",\"int\":128,\"extra\":1}]}"), &doc); err == nil {
		t.Error("Unmarshal() with unknown field should return error")
	}
}
