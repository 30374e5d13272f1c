package keymaster

import (
	"bytes"
	"fmt"
)

// IntegerParams holds the fixed-size payload slots of a KeyParameter. Which
// slot is meaningful is decided by the parameter's tag, never stored here.
type IntegerParams struct {
	Algorithm                 Algorithm
	BlockMode                 BlockMode
	PaddingMode               PaddingMode
	Digest                    Digest
	EcCurve                   EcCurve
	Origin                    KeyOrigin
	KeyBlobUsageRequirements  KeyBlobUsageRequirements
	Purpose                   KeyPurpose
	KeyDerivationFunction     KeyDerivationFunction
	HardwareAuthenticatorType HardwareAuthenticatorType
	HardwareType              SecurityLevel
	BoolValue                 bool
	Integer                   uint32
	LongInteger               uint64
	DateTime                  uint64
}

// KeyParameter is one authorization: a tag plus the payload its category selects.
// It has the same shape as the keymaster hardware interface struct.
//
// Build parameters with Authorization or BoolAuthorization and read them with
// AuthorizationValue; writing F or Blob directly bypasses the tag/type check.
type KeyParameter struct {
	Tag  Tag
	F    IntegerParams
	Blob []byte
}

// TypedTag binds a Tag to its category and to the Go type V of its payload.
// Values exist only as the package-level Tag* variables, each validated
// against its numeric encoding when the package is built and initialized.
type TypedTag[V any] struct {
	tag    Tag
	access func(*KeyParameter) *V
}

// Tag returns the underlying Tag.
func (t TypedTag[V]) Tag() Tag { return t.tag }

// Type returns the tag's category.
func (t TypedTag[V]) Type() TagType { return TypeOf(t.tag) }

// MaskedTag returns the tag number without category bits.
func (t TypedTag[V]) MaskedTag() uint32 { return t.tag.MaskedTag() }

func (t TypedTag[V]) String() string { return t.tag.String() }

// Access returns a pointer to the payload slot for this tag inside p.
// The pointer is valid for as long as p is.
func (t TypedTag[V]) Access(p *KeyParameter) *V {
	if t.access == nil {
		return nil
	}
	return t.access(p)
}

// BoolTag is the typed tag of the BOOL category. Its parameters carry no
// payload: presence in an authorization list is truth.
type BoolTag struct {
	tag Tag
}

// Tag returns the underlying Tag.
func (t BoolTag) Tag() Tag { return t.tag }

// Type returns TypeBool.
func (t BoolTag) Type() TagType { return TypeOf(t.tag) }

// MaskedTag returns the tag number without category bits.
func (t BoolTag) MaskedTag() uint32 { return t.tag.MaskedTag() }

func (t BoolTag) String() string { return t.tag.String() }

// Access returns a pointer to the boolean slot of p.
func (t BoolTag) Access(p *KeyParameter) *bool { return &p.F.BoolValue }

// Field is a typed tag whose payload has Go type V. TypedTag[V] and BoolTag
// (as Field[bool]) implement it.
type Field[V any] interface {
	Tagger
	Access(p *KeyParameter) *V
}

var (
	_ Field[uint32] = TypedTag[uint32]{}
	_ Field[bool]   = BoolTag{}
)

// Authorization returns a KeyParameter for t holding v. The compiler rejects
// values whose type does not match the tag, and BOOL tags, which take no value
// (see BoolAuthorization).
//
// Slots other than the active one are left at their zero value. Byte payloads
// are copied.
func Authorization[V any](t TypedTag[V], v V) KeyParameter {
	if t.access == nil {
		panic("keymaster: Authorization called with a zero TypedTag")
	}
	p := KeyParameter{Tag: t.tag}
	*t.access(&p) = v
	if p.Blob != nil {
		p.Blob = bytes.Clone(p.Blob)
	}
	return p
}

// BoolAuthorization returns the KeyParameter asserting t.
func BoolAuthorization(t BoolTag) KeyParameter {
	p := KeyParameter{Tag: t.tag}
	p.F.BoolValue = true
	return p
}

// AuthorizationValue returns a reference to the payload of p when p carries
// tag t, and an absent NullOr otherwise. No slot is read on mismatch. A zero
// TypedTag matches nothing.
func AuthorizationValue[V any](t Field[V], p *KeyParameter) NullOr[V] {
	if p == nil || p.Tag != t.Tag() {
		return NullOr[V]{}
	}
	return Ref(t.Access(p))
}

// Equal reports whether a and b carry the same tag and the same value in the
// slot that tag selects. BOOL parameters with equal tags are always equal.
// Parameters whose tag is not declared are never equal.
func Equal(a, b KeyParameter) bool {
	if a.Tag != b.Tag {
		return false
	}
	d, ok := declared[a.Tag]
	if !ok {
		return false
	}
	return d.equal(&a, &b)
}

// Equal reports whether p and o are equal as defined by the package Equal.
func (p KeyParameter) Equal(o KeyParameter) bool {
	return Equal(p, o)
}

// Clone returns a copy of p that shares no memory with it.
func (p KeyParameter) Clone() KeyParameter {
	c := p
	if p.Blob != nil {
		c.Blob = bytes.Clone(p.Blob)
	}
	return c
}

func (p KeyParameter) String() string {
	d, ok := lookupDecl(p.Tag)
	if !ok {
		return fmt.Sprintf("%s=?", p.Tag)
	}
	return d.name + "=" + d.format(&p)
}
