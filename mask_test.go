package keymaster

import (
	"strings"
	"testing"
)

func TestPrefixMasker(t *testing.T) {
	m := PrefixMasker(2)

	tests := []struct {
		input    []byte
		expected string
	}{
		{[]byte{0xab, 0x12, 0x00, 0x01}, "ab12****(4 bytes)"},
		{make([]byte, 16), "0000****(16 bytes)"},
		{[]byte{0xab, 0x12}, "****(2 bytes)"},
		{[]byte{0xff}, "****(1 bytes)"},
		{nil, "****(0 bytes)"},
	}

	for _, tt := range tests {
		result := m.Mask(tt.input)
		if result != tt.expected {
			t.Errorf("Mask(%x) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestPrefixMasker_Negative(t *testing.T) {
	if got := PrefixMasker(-3).Mask([]byte{1}); got != "****(1 bytes)" {
		t.Errorf("Mask() = %q, want %q", got, "****(1 bytes)")
	}
}

func TestLengthMasker(t *testing.T) {
	if got := LengthMasker().Mask([]byte("secret")); got != "[6 bytes]" {
		t.Errorf("Mask() = %q, want %q", got, "[6 bytes]")
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name     string
		param    KeyParameter
		expected string
	}{
		{"sensitive blob", Authorization(TagApplicationID, []byte{0xab, 0x12, 0x34}), "APPLICATION_ID=ab12****(3 bytes)"},
		{"nonce", Authorization(TagNonce, make([]byte, 12)), "NONCE=0000****(12 bytes)"},
		{"public blob", Authorization(TagAttestationChallenge, []byte{0xab, 0x12, 0x34}), "ATTESTATION_CHALLENGE=ab1234"},
		{"enum", Authorization(TagAlgorithm, AlgorithmRSA), "ALGORITHM=RSA"},
		{"integer", Authorization(TagKeySize, uint32(2048)), "KEY_SIZE=2048"},
		{"bool", BoolAuthorization(TagNoAuthRequired), "NO_AUTH_REQUIRED=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redact(tt.param); got != tt.expected {
				t.Errorf("Redact() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRedactSet(t *testing.T) {
	s := NewAuthorizationSet(
		Authorization(TagAlgorithm, AlgorithmAES),
		Authorization(TagApplicationData, []byte("top secret")),
	)

	got := RedactSet(s)
	if strings.Contains(got, "top secret") || strings.Contains(got, "746f7020") {
		t.Errorf("RedactSet() leaked payload: %q", got)
	}
	want := "{ALGORITHM=AES, APPLICATION_DATA=746f****(10 bytes)}"
	if got != want {
		t.Errorf("RedactSet() = %q, want %q", got, want)
	}
}
