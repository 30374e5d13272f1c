package keymaster

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// Raw tag values of the keymaster 4.0 hardware interface.
const (
	tagInvalid                     = Tag(TypeInvalid) | 0
	tagPurpose                     = Tag(TypeEnumRep) | 1
	tagAlgorithm                   = Tag(TypeEnum) | 2
	tagKeySize                     = Tag(TypeUint) | 3
	tagBlockMode                   = Tag(TypeEnumRep) | 4
	tagDigest                      = Tag(TypeEnumRep) | 5
	tagPadding                     = Tag(TypeEnumRep) | 6
	tagCallerNonce                 = Tag(TypeBool) | 7
	tagMinMacLength                = Tag(TypeUint) | 8
	tagEcCurve                     = Tag(TypeEnum) | 10
	tagRSAPublicExponent           = Tag(TypeUlong) | 200
	tagIncludeUniqueID             = Tag(TypeBool) | 202
	tagBlobUsageRequirements       = Tag(TypeEnum) | 301
	tagBootloaderOnly              = Tag(TypeBool) | 302
	tagRollbackResistance          = Tag(TypeBool) | 303
	tagHardwareType                = Tag(TypeEnum) | 304
	tagActiveDatetime              = Tag(TypeDate) | 400
	tagOriginationExpireDatetime   = Tag(TypeDate) | 401
	tagUsageExpireDatetime         = Tag(TypeDate) | 402
	tagMinSecondsBetweenOps        = Tag(TypeUint) | 403
	tagMaxUsesPerBoot              = Tag(TypeUint) | 404
	tagUserID                      = Tag(TypeUint) | 501
	tagUserSecureID                = Tag(TypeUlongRep) | 502
	tagNoAuthRequired              = Tag(TypeBool) | 503
	tagUserAuthType                = Tag(TypeEnum) | 504
	tagAuthTimeout                 = Tag(TypeUint) | 505
	tagAllowWhileOnBody            = Tag(TypeBool) | 506
	tagTrustedUserPresenceRequired = Tag(TypeBool) | 507
	tagTrustedConfirmationRequired = Tag(TypeBool) | 508
	tagUnlockedDeviceRequired      = Tag(TypeBool) | 509
	tagApplicationID               = Tag(TypeBytes) | 601
	tagApplicationData             = Tag(TypeBytes) | 700
	tagCreationDatetime            = Tag(TypeDate) | 701
	tagOrigin                      = Tag(TypeEnum) | 702
	tagRootOfTrust                 = Tag(TypeBytes) | 704
	tagOSVersion                   = Tag(TypeUint) | 705
	tagOSPatchlevel                = Tag(TypeUint) | 706
	tagUniqueID                    = Tag(TypeBytes) | 707
	tagAttestationChallenge        = Tag(TypeBytes) | 708
	tagAttestationApplicationID    = Tag(TypeBytes) | 709
	tagAttestationIDBrand          = Tag(TypeBytes) | 710
	tagAttestationIDDevice         = Tag(TypeBytes) | 711
	tagAttestationIDProduct        = Tag(TypeBytes) | 712
	tagAttestationIDSerial         = Tag(TypeBytes) | 713
	tagAttestationIDIMEI           = Tag(TypeBytes) | 714
	tagAttestationIDMEID           = Tag(TypeBytes) | 715
	tagAttestationIDManufacturer   = Tag(TypeBytes) | 716
	tagAttestationIDModel          = Tag(TypeBytes) | 717
	tagVendorPatchlevel            = Tag(TypeUint) | 718
	tagBootPatchlevel              = Tag(TypeUint) | 719
	tagAssociatedData              = Tag(TypeBytes) | 1000
	tagNonce                       = Tag(TypeBytes) | 1001
	tagMacLength                   = Tag(TypeUint) | 1003
	tagResetSinceIDRotation        = Tag(TypeBool) | 1004
	tagConfirmationToken           = Tag(TypeBytes) | 1005
)

// Typed tags. Each one is checked against its numeric encoding in
// tags_check.go at build time and again by declare at initialization.
var (
	TagInvalid                     = declareBool("INVALID", TypeInvalid, tagInvalid)
	TagPurpose                     = declareEnum("PURPOSE", TypeEnumRep, tagPurpose, purposeNames, func(p *KeyParameter) *KeyPurpose { return &p.F.Purpose })
	TagAlgorithm                   = declareEnum("ALGORITHM", TypeEnum, tagAlgorithm, algorithmNames, func(p *KeyParameter) *Algorithm { return &p.F.Algorithm })
	TagKeySize                     = declareNumeric("KEY_SIZE", TypeUint, tagKeySize, integerSlot)
	TagBlockMode                   = declareEnum("BLOCK_MODE", TypeEnumRep, tagBlockMode, blockModeNames, func(p *KeyParameter) *BlockMode { return &p.F.BlockMode })
	TagDigest                      = declareEnum("DIGEST", TypeEnumRep, tagDigest, digestNames, func(p *KeyParameter) *Digest { return &p.F.Digest })
	TagPadding                     = declareEnum("PADDING", TypeEnumRep, tagPadding, paddingNames, func(p *KeyParameter) *PaddingMode { return &p.F.PaddingMode })
	TagCallerNonce                 = declareBool("CALLER_NONCE", TypeBool, tagCallerNonce)
	TagMinMacLength                = declareNumeric("MIN_MAC_LENGTH", TypeUint, tagMinMacLength, integerSlot)
	TagEcCurve                     = declareEnum("EC_CURVE", TypeEnum, tagEcCurve, ecCurveNames, func(p *KeyParameter) *EcCurve { return &p.F.EcCurve })
	TagRSAPublicExponent           = declareNumeric("RSA_PUBLIC_EXPONENT", TypeUlong, tagRSAPublicExponent, longSlot)
	TagIncludeUniqueID             = declareBool("INCLUDE_UNIQUE_ID", TypeBool, tagIncludeUniqueID)
	TagBlobUsageRequirements       = declareEnum("BLOB_USAGE_REQUIREMENTS", TypeEnum, tagBlobUsageRequirements, blobUsageNames, func(p *KeyParameter) *KeyBlobUsageRequirements { return &p.F.KeyBlobUsageRequirements })
	TagBootloaderOnly              = declareBool("BOOTLOADER_ONLY", TypeBool, tagBootloaderOnly)
	TagRollbackResistance          = declareBool("ROLLBACK_RESISTANCE", TypeBool, tagRollbackResistance)
	TagHardwareType                = declareEnum("HARDWARE_TYPE", TypeEnum, tagHardwareType, securityLevelNames, func(p *KeyParameter) *SecurityLevel { return &p.F.HardwareType })
	TagActiveDatetime              = declareNumeric("ACTIVE_DATETIME", TypeDate, tagActiveDatetime, dateSlot)
	TagOriginationExpireDatetime   = declareNumeric("ORIGINATION_EXPIRE_DATETIME", TypeDate, tagOriginationExpireDatetime, dateSlot)
	TagUsageExpireDatetime         = declareNumeric("USAGE_EXPIRE_DATETIME", TypeDate, tagUsageExpireDatetime, dateSlot)
	TagMinSecondsBetweenOps        = declareNumeric("MIN_SECONDS_BETWEEN_OPS", TypeUint, tagMinSecondsBetweenOps, integerSlot)
	TagMaxUsesPerBoot              = declareNumeric("MAX_USES_PER_BOOT", TypeUint, tagMaxUsesPerBoot, integerSlot)
	TagUserID                      = declareNumeric("USER_ID", TypeUint, tagUserID, integerSlot)
	TagUserSecureID                = declareNumeric("USER_SECURE_ID", TypeUlongRep, tagUserSecureID, longSlot)
	TagNoAuthRequired              = declareBool("NO_AUTH_REQUIRED", TypeBool, tagNoAuthRequired)
	TagUserAuthType                = declareEnum("USER_AUTH_TYPE", TypeEnum, tagUserAuthType, authenticatorNames, func(p *KeyParameter) *HardwareAuthenticatorType { return &p.F.HardwareAuthenticatorType })
	TagAuthTimeout                 = declareNumeric("AUTH_TIMEOUT", TypeUint, tagAuthTimeout, integerSlot)
	TagAllowWhileOnBody            = declareBool("ALLOW_WHILE_ON_BODY", TypeBool, tagAllowWhileOnBody)
	TagTrustedUserPresenceRequired = declareBool("TRUSTED_USER_PRESENCE_REQUIRED", TypeBool, tagTrustedUserPresenceRequired)
	TagTrustedConfirmationRequired = declareBool("TRUSTED_CONFIRMATION_REQUIRED", TypeBool, tagTrustedConfirmationRequired)
	TagUnlockedDeviceRequired      = declareBool("UNLOCKED_DEVICE_REQUIRED", TypeBool, tagUnlockedDeviceRequired)
	TagApplicationID               = declareBlob("APPLICATION_ID", TypeBytes, tagApplicationID)
	TagApplicationData             = declareBlob("APPLICATION_DATA", TypeBytes, tagApplicationData)
	TagCreationDatetime            = declareNumeric("CREATION_DATETIME", TypeDate, tagCreationDatetime, dateSlot)
	TagOrigin                      = declareEnum("ORIGIN", TypeEnum, tagOrigin, originNames, func(p *KeyParameter) *KeyOrigin { return &p.F.Origin })
	TagRootOfTrust                 = declareBlob("ROOT_OF_TRUST", TypeBytes, tagRootOfTrust)
	TagOSVersion                   = declareNumeric("OS_VERSION", TypeUint, tagOSVersion, integerSlot)
	TagOSPatchlevel                = declareNumeric("OS_PATCHLEVEL", TypeUint, tagOSPatchlevel, integerSlot)
	TagUniqueID                    = declareBlob("UNIQUE_ID", TypeBytes, tagUniqueID)
	TagAttestationChallenge        = declareBlob("ATTESTATION_CHALLENGE", TypeBytes, tagAttestationChallenge)
	TagAttestationApplicationID    = declareBlob("ATTESTATION_APPLICATION_ID", TypeBytes, tagAttestationApplicationID)
	TagAttestationIDBrand          = declareBlob("ATTESTATION_ID_BRAND", TypeBytes, tagAttestationIDBrand)
	TagAttestationIDDevice         = declareBlob("ATTESTATION_ID_DEVICE", TypeBytes, tagAttestationIDDevice)
	TagAttestationIDProduct        = declareBlob("ATTESTATION_ID_PRODUCT", TypeBytes, tagAttestationIDProduct)
	TagAttestationIDSerial         = declareBlob("ATTESTATION_ID_SERIAL", TypeBytes, tagAttestationIDSerial)
	TagAttestationIDIMEI           = declareBlob("ATTESTATION_ID_IMEI", TypeBytes, tagAttestationIDIMEI)
	TagAttestationIDMEID           = declareBlob("ATTESTATION_ID_MEID", TypeBytes, tagAttestationIDMEID)
	TagAttestationIDManufacturer   = declareBlob("ATTESTATION_ID_MANUFACTURER", TypeBytes, tagAttestationIDManufacturer)
	TagAttestationIDModel          = declareBlob("ATTESTATION_ID_MODEL", TypeBytes, tagAttestationIDModel)
	TagVendorPatchlevel            = declareNumeric("VENDOR_PATCHLEVEL", TypeUint, tagVendorPatchlevel, integerSlot)
	TagBootPatchlevel              = declareNumeric("BOOT_PATCHLEVEL", TypeUint, tagBootPatchlevel, integerSlot)
	TagAssociatedData              = declareBlob("ASSOCIATED_DATA", TypeBytes, tagAssociatedData)
	TagNonce                       = declareBlob("NONCE", TypeBytes, tagNonce)
	TagMacLength                   = declareNumeric("MAC_LENGTH", TypeUint, tagMacLength, integerSlot)
	TagResetSinceIDRotation        = declareBool("RESET_SINCE_ID_ROTATION", TypeBool, tagResetSinceIDRotation)
	TagConfirmationToken           = declareBlob("CONFIRMATION_TOKEN", TypeBytes, tagConfirmationToken)
)

// Category-level slots. Enum tags bind their own slot in the Tag* declarations.
func integerSlot(p *KeyParameter) *uint32 { return &p.F.Integer }
func longSlot(p *KeyParameter) *uint64    { return &p.F.LongInteger }
func dateSlot(p *KeyParameter) *uint64    { return &p.F.DateTime }
func blobSlot(p *KeyParameter) *[]byte    { return &p.Blob }

// payloadKind is the wire shape of a tag's payload.
type payloadKind int

const (
	payloadNone payloadKind = iota
	payloadInt
	payloadEnum
	payloadBlob
)

// tagDecl is one row of the declaration table. Every operation that dispatches
// on a tag at runtime (equality, wire encoding, struct binding, formatting)
// reads it from here.
type tagDecl struct {
	tag       Tag
	name      string
	typ       TagType
	kind      payloadKind
	valueType reflect.Type
	slot      func(p *KeyParameter) reflect.Value
	equal     func(a, b *KeyParameter) bool
	enumName  func(v uint64) string
	enumParse func(s string) (uint64, error)
}

var (
	declared = make(map[Tag]*tagDecl)
	byName   = make(map[string]Tag)
	order    []Tag
)

// declare registers a tag. It panics when typ disagrees with the category
// encoded in tag, when the payload type does not belong to that category, or
// when the tag or name is declared twice. Nothing is registered on panic.
func declare(d *tagDecl) {
	if got := TypeOf(d.tag); got != d.typ {
		panic(fmt.Sprintf("keymaster: tag %s encodes type %s, declared as %s", d.name, got, d.typ))
	}
	if !payloadFits(d.typ, d.valueType) {
		panic(fmt.Sprintf("keymaster: tag %s of type %s cannot carry %v", d.name, d.typ, d.valueType))
	}
	if _, dup := declared[d.tag]; dup {
		panic(fmt.Sprintf("keymaster: tag %s declared twice", d.name))
	}
	if _, dup := byName[d.name]; dup {
		panic(fmt.Sprintf("keymaster: tag name %s declared twice", d.name))
	}
	declared[d.tag] = d
	byName[d.name] = d.tag
	order = append(order, d.tag)
	sort.Slice(order, func(i, j int) bool {
		return order[i].MaskedTag() < order[j].MaskedTag()
	})
}

var (
	uint32Type = reflect.TypeFor[uint32]()
	uint64Type = reflect.TypeFor[uint64]()
	bytesType  = reflect.TypeFor[[]byte]()
	boolType   = reflect.TypeFor[bool]()
)

// payloadFits reports whether values of type vt belong in the slot that
// category typ selects. Enum categories need a named uint32 type.
func payloadFits(typ TagType, vt reflect.Type) bool {
	if vt == nil {
		return false
	}
	switch typ {
	case TypeUint, TypeUintRep:
		return vt == uint32Type
	case TypeUlong, TypeUlongRep, TypeDate:
		return vt == uint64Type
	case TypeBytes, TypeBignum:
		return vt == bytesType
	case TypeBool, TypeInvalid:
		return vt == boolType
	case TypeEnum, TypeEnumRep:
		return vt.Kind() == reflect.Uint32 && vt != uint32Type
	}
	return false
}

func slotOf[V any](access func(*KeyParameter) *V) func(*KeyParameter) reflect.Value {
	return func(p *KeyParameter) reflect.Value {
		return reflect.ValueOf(access(p)).Elem()
	}
}

type numeric interface {
	~uint32 | ~uint64
}

func declareNumeric[V numeric](name string, typ TagType, tag Tag, access func(*KeyParameter) *V) TypedTag[V] {
	declare(&tagDecl{
		tag:       tag,
		name:      name,
		typ:       typ,
		kind:      payloadInt,
		valueType: reflect.TypeFor[V](),
		slot:      slotOf(access),
		equal:     func(a, b *KeyParameter) bool { return *access(a) == *access(b) },
	})
	return TypedTag[V]{tag: tag, access: access}
}

func declareEnum[V ~uint32](name string, typ TagType, tag Tag, names enumTable[V], access func(*KeyParameter) *V) TypedTag[V] {
	declare(&tagDecl{
		tag:       tag,
		name:      name,
		typ:       typ,
		kind:      payloadEnum,
		valueType: reflect.TypeFor[V](),
		slot:      slotOf(access),
		equal:     func(a, b *KeyParameter) bool { return *access(a) == *access(b) },
		enumName:  func(v uint64) string { return names.name(V(v)) },
		enumParse: func(s string) (uint64, error) {
			v, err := names.parse(s)
			return uint64(v), err
		},
	})
	return TypedTag[V]{tag: tag, access: access}
}

func declareBlob(name string, typ TagType, tag Tag) TypedTag[[]byte] {
	declare(&tagDecl{
		tag:       tag,
		name:      name,
		typ:       typ,
		kind:      payloadBlob,
		valueType: reflect.TypeFor[[]byte](),
		slot:      slotOf(blobSlot),
		equal:     func(a, b *KeyParameter) bool { return bytes.Equal(a.Blob, b.Blob) },
	})
	return TypedTag[[]byte]{tag: tag, access: blobSlot}
}

// declareBool also serves INVALID, which carries no payload either.
func declareBool(name string, typ TagType, tag Tag) BoolTag {
	declare(&tagDecl{
		tag:       tag,
		name:      name,
		typ:       typ,
		kind:      payloadNone,
		valueType: reflect.TypeFor[bool](),
		slot:      slotOf(func(p *KeyParameter) *bool { return &p.F.BoolValue }),
		equal:     func(_, _ *KeyParameter) bool { return true },
	})
	return BoolTag{tag: tag}
}

// format renders the active slot of p for display.
func (d *tagDecl) format(p *KeyParameter) string {
	switch d.kind {
	case payloadNone:
		return "true"
	case payloadEnum:
		return d.enumName(d.slot(p).Uint())
	case payloadBlob:
		return hex.EncodeToString(p.Blob)
	}
	v := d.slot(p).Uint()
	if d.typ == TypeDate {
		return time.UnixMilli(int64(v)).UTC().Format(time.RFC3339Nano) // #nosec G115 -- dates are millis within int64
	}
	return strconv.FormatUint(v, 10)
}
