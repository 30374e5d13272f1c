package keymaster

// EncryptAlgo represents a supported encryption algorithm for sealed payloads.
type EncryptAlgo string

const (
	// EncryptAES uses AES-GCM symmetric encryption.
	EncryptAES EncryptAlgo = "aes"

	// EncryptRSA uses RSA-OAEP asymmetric encryption.
	EncryptRSA EncryptAlgo = "rsa"

	// EncryptEnvelope uses envelope encryption with per-message data keys.
	EncryptEnvelope EncryptAlgo = "envelope"
)

// HashAlgo represents a supported fingerprint algorithm.
type HashAlgo string

const (
	// HashSHA256 uses SHA-256 for deterministic fingerprints.
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 uses SHA-512 for deterministic fingerprints.
	HashSHA512 HashAlgo = "sha512"
)

// validEncryptAlgos contains all valid encryption algorithms.
var validEncryptAlgos = map[EncryptAlgo]bool{
	EncryptAES:      true,
	EncryptRSA:      true,
	EncryptEnvelope: true,
}

// validHashAlgos contains all valid hash algorithms.
var validHashAlgos = map[HashAlgo]bool{
	HashSHA256: true,
	HashSHA512: true,
}

// IsValidEncryptAlgo returns true if the algorithm is a known encryption algorithm.
func IsValidEncryptAlgo(algo EncryptAlgo) bool {
	return validEncryptAlgos[algo]
}

// IsValidHashAlgo returns true if the algorithm is a known hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	return validHashAlgos[algo]
}

// sensitiveTags are blob tags whose payload is secret material or binds a key
// to a caller. They are masked by Redact and sealed by default once an
// encryptor is configured via SealDefaults.
var sensitiveTags = map[Tag]bool{
	tagApplicationID:   true,
	tagApplicationData: true,
	tagRootOfTrust:     true,
	tagNonce:           true,
	tagAssociatedData:  true,
}

// IsSensitive reports whether tag's payload is masked in logs and sealed by
// SealDefaults.
func IsSensitive(tag Tagger) bool {
	return sensitiveTags[tag.Tag()]
}
