// Package keymaster provides typed access to keymaster key parameters.
//
// A key parameter is one authorization attached to a hardware-backed key: a
// 32-bit Tag whose top four bits name the value category (ENUM, UINT, BYTES,
// and so on) plus a payload. The package declares the closed set of keymaster
// 4.0 tags once, as typed package variables, so that building or reading a
// parameter with the wrong value type does not compile.
//
// # Tags
//
// Every tag is a TypedTag[V] whose V is the Go type of its payload, or a
// BoolTag for the BOOL category, whose parameters carry no payload:
//
//	p := keymaster.Authorization(keymaster.TagKeySize, uint32(256))
//	q := keymaster.BoolAuthorization(keymaster.TagNoAuthRequired)
//
//	size := keymaster.AuthorizationValue(keymaster.TagKeySize, &p)
//	if size.IsOk() {
//	    fmt.Println(size.Value()) // 256
//	}
//
// AuthorizationValue returns an absent NullOr when the parameter carries a
// different tag, so the payload slot of one tag is never read as another.
//
// # Authorization Sets
//
// AuthorizationSet is an ordered list of parameters with lookup, repeated
// value access, deduplication and set algebra:
//
//	set := keymaster.NewAuthorizationSet(
//	    keymaster.Authorization(keymaster.TagAlgorithm, keymaster.AlgorithmAES),
//	    keymaster.Authorization(keymaster.TagPurpose, keymaster.PurposeEncrypt),
//	    keymaster.Authorization(keymaster.TagPurpose, keymaster.PurposeDecrypt),
//	)
//	purposes := keymaster.GetRepeated(set, keymaster.TagPurpose)
//	digest := keymaster.DefaultOr(keymaster.GetTagValue(set, keymaster.TagDigest), keymaster.DigestNone)
//
// # Serialization
//
// A Serializer moves sets across a Codec. Payloads of sealed tags are
// encrypted on the wire with the tag name as associated data:
//
//	s := keymaster.NewSerializer(json.New())
//	s.SetEncryptor(keymaster.EncryptAES, aes)
//	s.SealDefaults(keymaster.EncryptAES)
//
//	data, err := s.Marshal(ctx, set)
//	back, err := s.Unmarshal(ctx, data)
//
// The following codec implementations are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//   - cbor - CBOR encoding (application/cbor)
//
// # Struct Binding
//
// Encode and Decode move sets to and from structs whose fields carry km tags:
//
//	type KeySpec struct {
//	    Algorithm keymaster.Algorithm    `km:"ALGORITHM"`
//	    Size      uint32                 `km:"KEY_SIZE"`
//	    Purposes  []keymaster.KeyPurpose `km:"PURPOSE"`
//	    NoAuth    bool                   `km:"NO_AUTH_REQUIRED"`
//	}
//
// # Observability
//
// Serializers emit capitan events for marshal and unmarshal; see signals.go.
// Redact renders parameters with sensitive payloads masked.
package keymaster

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Override interfaces allow types to bypass reflection-based binding.
// When a type implements one of these interfaces, Encode or Decode calls the
// interface method instead of walking the type's km struct tags.
//
// These interfaces are designed for codegen: a code generator can implement
// these methods based on struct tags, providing compile-time safety and
// optimal performance.

// ParamsMarshaler bypasses reflection in Encode.
type ParamsMarshaler interface {
	// MarshalParams returns the authorizations describing the receiver.
	MarshalParams() (AuthorizationSet, error)
}

// ParamsUnmarshaler bypasses reflection in Decode.
type ParamsUnmarshaler interface {
	// UnmarshalParams fills the receiver from set. Parameters the receiver
	// does not model are ignored.
	UnmarshalParams(set AuthorizationSet) error
}
