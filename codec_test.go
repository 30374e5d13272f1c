package keymaster

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeEntry(t *testing.T) {
	tests := []struct {
		name  string
		param KeyParameter
		want  Entry
	}{
		{"enum", Authorization(TagAlgorithm, AlgorithmAES), Entry{Tag: "ALGORITHM", Enum: "AES"}},
		{"enum zero", Authorization(TagPurpose, PurposeEncrypt), Entry{Tag: "PURPOSE", Enum: "ENCRYPT"}},
		{"uint", Authorization(TagKeySize, uint32(256)), Entry{Tag: "KEY_SIZE", Int: 256}},
		{"ulong", Authorization(TagUserSecureID, uint64(1)<<63), Entry{Tag: "USER_SECURE_ID", Int: 1 << 63}},
		{"date", Authorization(TagCreationDatetime, uint64(1700000000000)), Entry{Tag: "CREATION_DATETIME", Int: 1700000000000}},
		{"bool", BoolAuthorization(TagRollbackResistance), Entry{Tag: "ROLLBACK_RESISTANCE"}},
		{"bytes", Authorization(TagNonce, []byte{0, 1}), Entry{Tag: "NONCE", Blob: Bytes{0, 1}}},
		{"combined flags", Authorization(TagUserAuthType, AuthenticatorPassword|AuthenticatorFingerprint), Entry{Tag: "USER_AUTH_TYPE", Int: 3}},
		{"unnamed enum", Authorization(TagAlgorithm, Algorithm(77)), Entry{Tag: "ALGORITHM", Int: 77}},
		{"unnamed enum zero", Authorization(TagAlgorithm, Algorithm(0)), Entry{Tag: "ALGORITHM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeEntry(tt.param)
			if err != nil {
				t.Fatalf("EncodeEntry() error: %v", err)
			}
			if got.Tag != tt.want.Tag || got.Int != tt.want.Int || got.Enum != tt.want.Enum ||
				!bytes.Equal(got.Blob, tt.want.Blob) || got.Sealed != "" {
				t.Errorf("EncodeEntry() = %+v, want %+v", got, tt.want)
			}

			back, err := DecodeEntry(0, got)
			if err != nil {
				t.Fatalf("DecodeEntry() error: %v", err)
			}
			if !Equal(back, tt.param) {
				t.Errorf("DecodeEntry() = %v, want %v", back, tt.param)
			}
		})
	}
}

func TestEncodeEntry_Errors(t *testing.T) {
	if _, err := EncodeEntry(KeyParameter{Tag: Tag(TypeUint) | 9999}); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("undeclared tag error = %v, want ErrUnknownTag", err)
	}
}

func TestDecodeEntry_EnumInt(t *testing.T) {
	p, err := DecodeEntry(0, Entry{Tag: "USER_AUTH_TYPE", Int: 3})
	if err != nil {
		t.Fatalf("DecodeEntry() error: %v", err)
	}
	if got := p.F.HardwareAuthenticatorType; got != AuthenticatorPassword|AuthenticatorFingerprint {
		t.Errorf("USER_AUTH_TYPE = %v, want PASSWORD|FINGERPRINT", got)
	}

	// A named value may also arrive as its number.
	p, err = DecodeEntry(0, Entry{Tag: "ALGORITHM", Int: uint64(AlgorithmAES)})
	if err != nil {
		t.Fatalf("DecodeEntry() error: %v", err)
	}
	if p.F.Algorithm != AlgorithmAES {
		t.Errorf("ALGORITHM = %v, want AES", p.F.Algorithm)
	}
}

func TestDecodeEntry_Errors(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		err   error
	}{
		{"unknown tag", Entry{Tag: "KEY_SIZ", Int: 1}, ErrUnknownTag},
		{"bool with payload", Entry{Tag: "CALLER_NONCE", Enum: "X"}, ErrInvalidValue},
		{"int with blob", Entry{Tag: "KEY_SIZE", Blob: Bytes{1}}, ErrInvalidValue},
		{"uint overflow", Entry{Tag: "KEY_SIZE", Int: 1 << 32}, ErrInvalidValue},
		{"enum with name and int", Entry{Tag: "ALGORITHM", Enum: "AES", Int: 32}, ErrInvalidValue},
		{"enum with blob", Entry{Tag: "ALGORITHM", Blob: Bytes{1}}, ErrInvalidValue},
		{"enum overflow", Entry{Tag: "USER_AUTH_TYPE", Int: 1 << 32}, ErrInvalidValue},
		{"unknown enum name", Entry{Tag: "ALGORITHM", Enum: "ROT13"}, ErrInvalidValue},
		{"bytes with enum", Entry{Tag: "NONCE", Enum: "AES"}, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEntry(3, tt.entry)
			if !errors.Is(err, tt.err) {
				t.Fatalf("DecodeEntry() error = %v, want %v", err, tt.err)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("error type = %T, want *DecodeError", err)
			}
			if de.Index != 3 || de.Tag != tt.entry.Tag {
				t.Errorf("DecodeError = %+v", de)
			}
		})
	}
}

func TestDecodeEntry_EmptyBlob(t *testing.T) {
	p, err := DecodeEntry(0, Entry{Tag: "ASSOCIATED_DATA"})
	if err != nil {
		t.Fatalf("DecodeEntry() error: %v", err)
	}
	if p.Tag != TagAssociatedData.Tag() || len(p.Blob) != 0 {
		t.Errorf("DecodeEntry() = %v", p)
	}
}

func TestBytes_Text(t *testing.T) {
	in := Bytes{0x00, 0xff, 0x10, 0x80}
	text, err := in.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error: %v", err)
	}
	if string(text) != "AP8QgA==" {
		t.Errorf("MarshalText() = %q, want AP8QgA==", text)
	}

	var out Bytes
	if err := out.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Errorf("UnmarshalText() = %x, want %x", out, in)
	}

	if err := out.UnmarshalText([]byte("not base64!")); err == nil {
		t.Error("UnmarshalText(invalid) should fail")
	}
}
