package keymaster

import "fmt"

// Algorithm is the cryptographic algorithm of a key.
type Algorithm uint32

const (
	AlgorithmRSA       Algorithm = 1
	AlgorithmEC        Algorithm = 3
	AlgorithmAES       Algorithm = 32
	AlgorithmTripleDES Algorithm = 33
	AlgorithmHMAC      Algorithm = 128
)

// KeyPurpose is an operation a key may be used for.
type KeyPurpose uint32

const (
	PurposeEncrypt KeyPurpose = 0
	PurposeDecrypt KeyPurpose = 1
	PurposeSign    KeyPurpose = 2
	PurposeVerify  KeyPurpose = 3
	PurposeWrapKey KeyPurpose = 5
)

// BlockMode is a symmetric block cipher mode.
type BlockMode uint32

const (
	BlockModeECB BlockMode = 1
	BlockModeCBC BlockMode = 2
	BlockModeCTR BlockMode = 3
	BlockModeGCM BlockMode = 32
)

// Digest is a message digest algorithm.
type Digest uint32

const (
	DigestNone     Digest = 0
	DigestMD5      Digest = 1
	DigestSHA1     Digest = 2
	DigestSHA2_224 Digest = 3
	DigestSHA2_256 Digest = 4
	DigestSHA2_384 Digest = 5
	DigestSHA2_512 Digest = 6
)

// PaddingMode is a padding scheme.
type PaddingMode uint32

const (
	PaddingNone               PaddingMode = 1
	PaddingRSAOAEP            PaddingMode = 2
	PaddingRSAPSS             PaddingMode = 3
	PaddingRSAPKCS1_15Encrypt PaddingMode = 4
	PaddingRSAPKCS1_15Sign    PaddingMode = 5
	PaddingPKCS7              PaddingMode = 64
)

// EcCurve is a named elliptic curve.
type EcCurve uint32

const (
	EcCurveP224 EcCurve = 0
	EcCurveP256 EcCurve = 1
	EcCurveP384 EcCurve = 2
	EcCurveP521 EcCurve = 3
)

// KeyOrigin records how a key came into existence.
type KeyOrigin uint32

const (
	OriginGenerated        KeyOrigin = 0
	OriginDerived          KeyOrigin = 1
	OriginImported         KeyOrigin = 2
	OriginUnknown          KeyOrigin = 3
	OriginSecurelyImported KeyOrigin = 4
)

// KeyBlobUsageRequirements describes what a key blob needs to be usable.
type KeyBlobUsageRequirements uint32

const (
	BlobStandalone         KeyBlobUsageRequirements = 0
	BlobRequiresFileSystem KeyBlobUsageRequirements = 1
)

// HardwareAuthenticatorType is a bitmask of user authenticators.
type HardwareAuthenticatorType uint32

const (
	AuthenticatorNone        HardwareAuthenticatorType = 0
	AuthenticatorPassword    HardwareAuthenticatorType = 1 << 0
	AuthenticatorFingerprint HardwareAuthenticatorType = 1 << 1
	AuthenticatorAny         HardwareAuthenticatorType = 0xFFFFFFFF
)

// SecurityLevel is where key material lives.
type SecurityLevel uint32

const (
	SecuritySoftware           SecurityLevel = 0
	SecurityTrustedEnvironment SecurityLevel = 1
	SecurityStrongBox          SecurityLevel = 2
)

// KeyDerivationFunction names a KDF. It has a slot in IntegerParams but no
// 4.0 tag selects it.
type KeyDerivationFunction uint32

const (
	KDFNone                 KeyDerivationFunction = 0
	KDFRFC5869SHA256        KeyDerivationFunction = 1
	KDFISO18033_2KDF1SHA1   KeyDerivationFunction = 2
	KDFISO18033_2KDF1SHA256 KeyDerivationFunction = 3
	KDFISO18033_2KDF2SHA1   KeyDerivationFunction = 4
	KDFISO18033_2KDF2SHA256 KeyDerivationFunction = 5
)

// enumTable maps the values of one enum type to their schema names.
type enumTable[E ~uint32] struct {
	kind  string
	names map[E]string
}

func (t enumTable[E]) name(v E) string {
	if n, ok := t.names[v]; ok {
		return n
	}
	return fmt.Sprintf("%s(%d)", t.kind, uint32(v))
}

func (t enumTable[E]) parse(s string) (E, error) {
	for v, n := range t.names {
		if n == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrInvalidValue, t.kind, s)
}

var (
	algorithmNames = enumTable[Algorithm]{"Algorithm", map[Algorithm]string{
		AlgorithmRSA:       "RSA",
		AlgorithmEC:        "EC",
		AlgorithmAES:       "AES",
		AlgorithmTripleDES: "TRIPLE_DES",
		AlgorithmHMAC:      "HMAC",
	}}
	purposeNames = enumTable[KeyPurpose]{"KeyPurpose", map[KeyPurpose]string{
		PurposeEncrypt: "ENCRYPT",
		PurposeDecrypt: "DECRYPT",
		PurposeSign:    "SIGN",
		PurposeVerify:  "VERIFY",
		PurposeWrapKey: "WRAP_KEY",
	}}
	blockModeNames = enumTable[BlockMode]{"BlockMode", map[BlockMode]string{
		BlockModeECB: "ECB",
		BlockModeCBC: "CBC",
		BlockModeCTR: "CTR",
		BlockModeGCM: "GCM",
	}}
	digestNames = enumTable[Digest]{"Digest", map[Digest]string{
		DigestNone:     "NONE",
		DigestMD5:      "MD5",
		DigestSHA1:     "SHA1",
		DigestSHA2_224: "SHA_2_224",
		DigestSHA2_256: "SHA_2_256",
		DigestSHA2_384: "SHA_2_384",
		DigestSHA2_512: "SHA_2_512",
	}}
	paddingNames = enumTable[PaddingMode]{"PaddingMode", map[PaddingMode]string{
		PaddingNone:               "NONE",
		PaddingRSAOAEP:            "RSA_OAEP",
		PaddingRSAPSS:             "RSA_PSS",
		PaddingRSAPKCS1_15Encrypt: "RSA_PKCS1_1_5_ENCRYPT",
		PaddingRSAPKCS1_15Sign:    "RSA_PKCS1_1_5_SIGN",
		PaddingPKCS7:              "PKCS7",
	}}
	ecCurveNames = enumTable[EcCurve]{"EcCurve", map[EcCurve]string{
		EcCurveP224: "P_224",
		EcCurveP256: "P_256",
		EcCurveP384: "P_384",
		EcCurveP521: "P_521",
	}}
	originNames = enumTable[KeyOrigin]{"KeyOrigin", map[KeyOrigin]string{
		OriginGenerated:        "GENERATED",
		OriginDerived:          "DERIVED",
		OriginImported:         "IMPORTED",
		OriginUnknown:          "UNKNOWN",
		OriginSecurelyImported: "SECURELY_IMPORTED",
	}}
	blobUsageNames = enumTable[KeyBlobUsageRequirements]{"KeyBlobUsageRequirements", map[KeyBlobUsageRequirements]string{
		BlobStandalone:         "STANDALONE",
		BlobRequiresFileSystem: "REQUIRES_FILE_SYSTEM",
	}}
	authenticatorNames = enumTable[HardwareAuthenticatorType]{"HardwareAuthenticatorType", map[HardwareAuthenticatorType]string{
		AuthenticatorNone:        "NONE",
		AuthenticatorPassword:    "PASSWORD",
		AuthenticatorFingerprint: "FINGERPRINT",
		AuthenticatorAny:         "ANY",
	}}
	securityLevelNames = enumTable[SecurityLevel]{"SecurityLevel", map[SecurityLevel]string{
		SecuritySoftware:           "SOFTWARE",
		SecurityTrustedEnvironment: "TRUSTED_ENVIRONMENT",
		SecurityStrongBox:          "STRONGBOX",
	}}
	kdfNames = enumTable[KeyDerivationFunction]{"KeyDerivationFunction", map[KeyDerivationFunction]string{
		KDFNone:                 "NONE",
		KDFRFC5869SHA256:        "RFC5869_SHA256",
		KDFISO18033_2KDF1SHA1:   "ISO18033_2_KDF1_SHA1",
		KDFISO18033_2KDF1SHA256: "ISO18033_2_KDF1_SHA256",
		KDFISO18033_2KDF2SHA1:   "ISO18033_2_KDF2_SHA1",
		KDFISO18033_2KDF2SHA256: "ISO18033_2_KDF2_SHA256",
	}}
)

func (v Algorithm) String() string                 { return algorithmNames.name(v) }
func (v KeyPurpose) String() string                { return purposeNames.name(v) }
func (v BlockMode) String() string                 { return blockModeNames.name(v) }
func (v Digest) String() string                    { return digestNames.name(v) }
func (v PaddingMode) String() string               { return paddingNames.name(v) }
func (v EcCurve) String() string                   { return ecCurveNames.name(v) }
func (v KeyOrigin) String() string                 { return originNames.name(v) }
func (v KeyBlobUsageRequirements) String() string  { return blobUsageNames.name(v) }
func (v HardwareAuthenticatorType) String() string { return authenticatorNames.name(v) }
func (v SecurityLevel) String() string             { return securityLevelNames.name(v) }
func (v KeyDerivationFunction) String() string     { return kdfNames.name(v) }

// ParseAlgorithm returns the Algorithm with the given schema name.
func ParseAlgorithm(s string) (Algorithm, error) { return algorithmNames.parse(s) }

// ParseKeyPurpose returns the KeyPurpose with the given schema name.
func ParseKeyPurpose(s string) (KeyPurpose, error) { return purposeNames.parse(s) }

// ParseBlockMode returns the BlockMode with the given schema name.
func ParseBlockMode(s string) (BlockMode, error) { return blockModeNames.parse(s) }

// ParseDigest returns the Digest with the given schema name.
func ParseDigest(s string) (Digest, error) { return digestNames.parse(s) }

// ParsePaddingMode returns the PaddingMode with the given schema name.
func ParsePaddingMode(s string) (PaddingMode, error) { return paddingNames.parse(s) }

// ParseEcCurve returns the EcCurve with the given schema name.
func ParseEcCurve(s string) (EcCurve, error) { return ecCurveNames.parse(s) }

// ParseKeyOrigin returns the KeyOrigin with the given schema name.
func ParseKeyOrigin(s string) (KeyOrigin, error) { return originNames.parse(s) }

// ParseKeyBlobUsageRequirements returns the requirement with the given schema name.
func ParseKeyBlobUsageRequirements(s string) (KeyBlobUsageRequirements, error) {
	return blobUsageNames.parse(s)
}

// ParseHardwareAuthenticatorType returns the authenticator with the given schema name.
func ParseHardwareAuthenticatorType(s string) (HardwareAuthenticatorType, error) {
	return authenticatorNames.parse(s)
}

// ParseSecurityLevel returns the SecurityLevel with the given schema name.
func ParseSecurityLevel(s string) (SecurityLevel, error) { return securityLevelNames.parse(s) }
