package keymaster

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
)

// Document is the wire form of an AuthorizationSet. It is a struct rather
// than a bare list so that document-oriented formats (BSON, XML) can carry it.
type Document struct {
	XMLName xml.Name `json:"-" yaml:"-" msgpack:"-" bson:"-" cbor:"-" xml:"authorizations"`
	Params  []Entry  `json:"params" yaml:"params" msgpack:"params" bson:"params" xml:"param" cbor:"1,keyasint"`
}

// Entry is the wire form of one KeyParameter. Exactly one payload field is
// used, selected by the tag's category:
//
//   - BOOL: none (presence is truth)
//   - UINT, UINT_REP, ULONG, ULONG_REP, DATE: Int
//   - ENUM, ENUM_REP: Enum (schema name of the value)
//   - BYTES, BIGNUM: Blob
//
// Sealed names the EncryptAlgo that encrypted Blob, if any.
type Entry struct {
	Tag    string `json:"tag" yaml:"tag" msgpack:"tag" bson:"tag" xml:"tag,attr" cbor:"1,keyasint"`
	Int    uint64 `json:"int,omitempty" yaml:"int,omitempty" msgpack:"int,omitempty" bson:"int,omitempty" xml:"int,attr,omitempty" cbor:"2,keyasint,omitempty"`
	Enum   string `json:"enum,omitempty" yaml:"enum,omitempty" msgpack:"enum,omitempty" bson:"enum,omitempty" xml:"enum,attr,omitempty" cbor:"3,keyasint,omitempty"`
	Blob   Bytes  `json:"blob,omitempty" yaml:"blob,omitempty" msgpack:"blob,omitempty" bson:"blob,omitempty" xml:"blob,omitempty" cbor:"4,keyasint,omitempty"`
	Sealed string `json:"sealed,omitempty" yaml:"sealed,omitempty" msgpack:"sealed,omitempty" bson:"sealed,omitempty" xml:"sealed,attr,omitempty" cbor:"5,keyasint,omitempty"`
}

// Bytes is a byte payload. Text formats carry it as standard base64; binary
// formats carry it as a byte string.
type Bytes []byte

// MarshalText implements encoding.TextMarshaler.
func (b Bytes) MarshalText() ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(b)))
	base64.StdEncoding.Encode(out, b)
	return out, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes) UnmarshalText(text []byte) error {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(out, text)
	if err != nil {
		return err
	}
	*b = out[:n]
	return nil
}

// EncodeEntry converts p to its wire form.
func EncodeEntry(p KeyParameter) (Entry, error) {
	d, ok := lookupDecl(p.Tag)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownTag, p.Tag)
	}
	e := Entry{Tag: d.name}
	switch d.kind {
	case payloadInt:
		e.Int = d.slot(&p).Uint()
	case payloadEnum:
		// Values without a schema name, such as combined authenticator
		// flags, travel as plain integers.
		v := d.slot(&p).Uint()
		name := d.enumName(v)
		if _, err := d.enumParse(name); err == nil {
			e.Enum = name
		} else {
			e.Int = v
		}
	case payloadBlob:
		e.Blob = append([]byte{}, p.Blob...)
	}
	return e, nil
}

// DecodeEntry converts a wire entry back to a KeyParameter. index is reported
// in errors.
func DecodeEntry(index int, e Entry) (KeyParameter, error) {
	d, ok := lookupName(e.Tag)
	if !ok {
		return KeyParameter{}, newDecodeError(ErrUnknownTag, index, e.Tag, "")
	}
	p := KeyParameter{Tag: d.tag}
	switch d.kind {
	case payloadNone:
		if e.Int != 0 || e.Enum != "" || len(e.Blob) != 0 {
			return KeyParameter{}, newDecodeError(ErrInvalidValue, index, e.Tag, "boolean tag carries a payload")
		}
		p.F.BoolValue = true
	case payloadInt:
		if e.Enum != "" || len(e.Blob) != 0 {
			return KeyParameter{}, newDecodeError(ErrInvalidValue, index, e.Tag, "integer tag carries a non-integer payload")
		}
		slot := d.slot(&p)
		if slot.OverflowUint(e.Int) {
			return KeyParameter{}, newDecodeError(ErrInvalidValue, index, e.Tag, "integer out of range")
		}
		slot.SetUint(e.Int)
	case payloadEnum:
		if len(e.Blob) != 0 || (e.Int != 0 && e.Enum != "") {
			return KeyParameter{}, newDecodeError(ErrInvalidValue, index, e.Tag, "enum tag carries a non-enum payload")
		}
		slot := d.slot(&p)
		if e.Enum == "" {
			if slot.OverflowUint(e.Int) {
				return KeyParameter{}, newDecodeError(ErrInvalidValue, index, e.Tag, "enum value out of range")
			}
			slot.SetUint(e.Int)
			break
		}
		v, err := d.enumParse(e.Enum)
		if err != nil {
			return KeyParameter{}, newDecodeError(ErrInvalidValue, index, e.Tag, err.Error())
		}
		slot.SetUint(v)
	case payloadBlob:
		if e.Int != 0 || e.Enum != "" {
			return KeyParameter{}, newDecodeError(ErrInvalidValue, index, e.Tag, "bytes tag carries a non-bytes payload")
		}
		p.Blob = append([]byte{}, e.Blob...)
	}
	return p, nil
}
