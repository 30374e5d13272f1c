package keymaster

import "fmt"

// TagType is the value category of a Tag, encoded in the tag's top four bits.
type TagType uint32

// Tag categories as defined by the keymaster 4.0 hardware interface.
const (
	TypeInvalid  TagType = 0 << 28
	TypeEnum     TagType = 1 << 28
	TypeEnumRep  TagType = 2 << 28 // repeatable enum
	TypeUint     TagType = 3 << 28
	TypeUintRep  TagType = 4 << 28
	TypeUlong    TagType = 5 << 28
	TypeDate     TagType = 6 << 28 // milliseconds since the epoch
	TypeBool     TagType = 7 << 28 // presence is truth
	TypeBignum   TagType = 8 << 28
	TypeBytes    TagType = 9 << 28
	TypeUlongRep TagType = 10 << 28
)

const (
	typeMask   = 0xf0000000
	maskedMask = 0x0fffffff
)

var tagTypeNames = map[TagType]string{
	TypeInvalid:  "INVALID",
	TypeEnum:     "ENUM",
	TypeEnumRep:  "ENUM_REP",
	TypeUint:     "UINT",
	TypeUintRep:  "UINT_REP",
	TypeUlong:    "ULONG",
	TypeDate:     "DATE",
	TypeBool:     "BOOL",
	TypeBignum:   "BIGNUM",
	TypeBytes:    "BYTES",
	TypeUlongRep: "ULONG_REP",
}

func (t TagType) String() string {
	if name, ok := tagTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TagType(%#x)", uint32(t))
}

// Repeatable reports whether tags of this category may appear more than once
// in an authorization list.
func (t TagType) Repeatable() bool {
	switch t {
	case TypeEnumRep, TypeUintRep, TypeUlongRep:
		return true
	}
	return false
}

// ParseTagType returns the category with the given schema name.
func ParseTagType(name string) (TagType, error) {
	for t, n := range tagTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: tag type %q", ErrUnknownTag, name)
}

// Tag identifies one authorization or key attribute.
type Tag uint32

// Tagger is implemented by anything that names a Tag. Typed tags implement it,
// so they can be passed wherever a plain Tag is accepted.
type Tagger interface {
	Tag() Tag
}

// Tag returns t itself, so Tag satisfies Tagger.
func (t Tag) Tag() Tag { return t }

// TypeOf returns the category encoded in tag.
func TypeOf(tag Tag) TagType {
	return TagType(uint32(tag) & typeMask)
}

// Type returns the category encoded in t.
func (t Tag) Type() TagType { return TypeOf(t) }

// MaskedTag returns t with the category bits cleared.
func (t Tag) MaskedTag() uint32 {
	return uint32(t) & maskedMask
}

func (t Tag) String() string {
	if d, ok := lookupDecl(t); ok {
		return d.name
	}
	return fmt.Sprintf("Tag(%s|%d)", t.Type(), t.MaskedTag())
}

// ParseTag returns the declared tag with the given schema name.
func ParseTag(name string) (Tag, error) {
	if t, ok := byName[name]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, name)
}

// Tags returns every declared tag in schema order.
func Tags() []Tag {
	out := make([]Tag, len(order))
	copy(out, order)
	return out
}

// IsDeclared reports whether tag is part of the closed tag set.
func IsDeclared(tag Tag) bool {
	_, ok := declared[tag]
	return ok
}
