package keymaster

import "reflect"

// Tag values that predate keymaster 4.0. Old key blobs still carry them. They
// are outside the closed tag set: they have no typed tag and never compare
// equal, but they decode, print and upgrade.
const (
	// TagDigestOld is the value DIGEST had when it was a single enum.
	TagDigestOld = Tag(TypeEnum) | 5
	// TagPaddingOld is the value PADDING had when it was a single enum.
	TagPaddingOld = Tag(TypeEnum) | 7
	// TagFBEIce marks keys used for file-based encryption inline crypto.
	TagFBEIce = Tag(TypeBool) | 16201
	// TagKeyType is a vendor key type discriminator.
	TagKeyType = Tag(TypeUint) | 16202
)

// Legacy payloads all live in the integer slot, except FBE_ICE.
var legacy = map[Tag]*tagDecl{
	TagDigestOld:  legacyDecl("DIGEST_OLD", TagDigestOld, payloadInt),
	TagPaddingOld: legacyDecl("PADDING_OLD", TagPaddingOld, payloadInt),
	TagFBEIce:     legacyDecl("FBE_ICE", TagFBEIce, payloadNone),
	TagKeyType:    legacyDecl("KEY_TYPE", TagKeyType, payloadInt),
}

func legacyDecl(name string, tag Tag, kind payloadKind) *tagDecl {
	d := &tagDecl{tag: tag, name: name, typ: TypeOf(tag), kind: kind}
	if kind == payloadNone {
		d.valueType = reflect.TypeFor[bool]()
		d.slot = slotOf(func(p *KeyParameter) *bool { return &p.F.BoolValue })
	} else {
		d.valueType = reflect.TypeFor[uint32]()
		d.slot = slotOf(integerSlot)
	}
	d.equal = func(_, _ *KeyParameter) bool { return false }
	return d
}

// lookupDecl finds the declaration for tag, including legacy tags.
func lookupDecl(tag Tag) (*tagDecl, bool) {
	if d, ok := declared[tag]; ok {
		return d, true
	}
	d, ok := legacy[tag]
	return d, ok
}

// lookupName finds a declaration by schema name, including legacy tags.
func lookupName(name string) (*tagDecl, bool) {
	if t, ok := byName[name]; ok {
		return declared[t], true
	}
	for _, d := range legacy {
		if d.name == name {
			return d, true
		}
	}
	return nil, false
}

// UpgradeLegacy returns a copy of s with DIGEST_OLD and PADDING_OLD rewritten
// to DIGEST and PADDING, moving the value from the integer slot to the enum
// slot of the new tag. Other parameters are copied unchanged.
func UpgradeLegacy(s AuthorizationSet) AuthorizationSet {
	out := make(AuthorizationSet, 0, len(s))
	for _, p := range s {
		switch p.Tag {
		case TagDigestOld:
			out = append(out, Authorization(TagDigest, Digest(p.F.Integer)))
		case TagPaddingOld:
			out = append(out, Authorization(TagPadding, PaddingMode(p.F.Integer)))
		default:
			out = append(out, p.Clone())
		}
	}
	return out
}
