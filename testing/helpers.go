// Package testing provides test utilities for keymaster.
package testing

import (
	"bytes"
	"testing"

	"github.com/zoobzio/keymaster"
)

// TestKey returns a valid 32-byte AES key for testing.
func TestKey(tb testing.TB) []byte {
	tb.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestEncryptor returns an AES encryptor configured for testing.
func TestEncryptor(tb testing.TB) keymaster.Encryptor {
	tb.Helper()
	enc, err := keymaster.AES(TestKey(tb))
	if err != nil {
		tb.Fatalf("AES() error: %v", err)
	}
	return enc
}

// SampleSet returns an authorization set for an AES-256 key that exercises
// every payload category: enum, repeated enum, integer, long, date, bool and
// bytes.
func SampleSet() keymaster.AuthorizationSet {
	return keymaster.NewAuthorizationSet(
		keymaster.Authorization(keymaster.TagAlgorithm, keymaster.AlgorithmAES),
		keymaster.Authorization(keymaster.TagKeySize, uint32(256)),
		keymaster.Authorization(keymaster.TagPurpose, keymaster.PurposeEncrypt),
		keymaster.Authorization(keymaster.TagPurpose, keymaster.PurposeDecrypt),
		keymaster.Authorization(keymaster.TagBlockMode, keymaster.BlockModeGCM),
		keymaster.Authorization(keymaster.TagPadding, keymaster.PaddingNone),
		keymaster.Authorization(keymaster.TagMinMacLength, uint32(128)),
		keymaster.Authorization(keymaster.TagUserSecureID, uint64(0x1122334455667788)),
		keymaster.Authorization(keymaster.TagActiveDatetime, uint64(1700000000000)),
		keymaster.BoolAuthorization(keymaster.TagNoAuthRequired),
		keymaster.Authorization(keymaster.TagApplicationID, []byte("com.example.app")),
		keymaster.Authorization(keymaster.TagApplicationData, []byte{0x00, 0xff, 0x10, 0x80}),
	)
}

// AssertSetsEqual fails tb unless got and want hold equal parameters in the
// same order.
func AssertSetsEqual(tb testing.TB, want, got keymaster.AuthorizationSet) {
	tb.Helper()
	if len(got) != len(want) {
		tb.Fatalf("set length = %d, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if !keymaster.Equal(want[i], got[i]) {
			tb.Errorf("param %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// AssertBlob fails tb unless set holds tag with exactly the given payload.
func AssertBlob(tb testing.TB, set keymaster.AuthorizationSet, tag keymaster.TypedTag[[]byte], want []byte) {
	tb.Helper()
	v := keymaster.GetTagValue(set, tag)
	if !v.IsOk() {
		tb.Fatalf("%s missing from set", tag)
	}
	if !bytes.Equal(v.Value(), want) {
		tb.Errorf("%s = %x, want %x", tag, v.Value(), want)
	}
}
