package keymaster

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/argon2"
)

// Hasher performs one-way hashing.
type Hasher interface {
	// Hash returns the hex-encoded digest of data.
	Hash(data []byte) (string, error)
}

type sha256Hasher struct{}

// SHA256Hasher returns a SHA-256 hasher.
// The result is a hex-encoded 64-character string.
func SHA256Hasher() Hasher {
	return &sha256Hasher{}
}

func (h *sha256Hasher) Hash(data []byte) (string, error) {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

type sha512Hasher struct{}

// SHA512Hasher returns a SHA-512 hasher.
// The result is a hex-encoded 128-character string.
func SHA512Hasher() Hasher {
	return &sha512Hasher{}
}

func (h *sha512Hasher) Hash(data []byte) (string, error) {
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:]), nil
}

var hashers = map[HashAlgo]Hasher{
	HashSHA256: SHA256Hasher(),
	HashSHA512: SHA512Hasher(),
}

var canonicalMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Canonical returns the deterministic encoding of set: parameters sorted and
// duplicates removed, encoded as core deterministic CBOR. Two sets with the
// same parameters in any order have the same canonical encoding.
func Canonical(set AuthorizationSet) ([]byte, error) {
	sorted := set.Clone().Deduplicate()

	doc := Document{Params: make([]Entry, 0, len(sorted))}
	for _, p := range sorted {
		e, err := EncodeEntry(p)
		if err != nil {
			return nil, newCodecError(ErrMarshal, err)
		}
		doc.Params = append(doc.Params, e)
	}
	data, err := canonicalMode.Marshal(&doc)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// Fingerprint returns the hex digest of the canonical encoding of set.
func Fingerprint(set AuthorizationSet, algo HashAlgo) (string, error) {
	h, ok := hashers[algo]
	if !ok {
		return "", newConfigError(ErrMissingHasher, string(algo), "")
	}
	data, err := Canonical(set)
	if err != nil {
		return "", err
	}
	return h.Hash(data)
}

// Argon2Params configures Argon2id key derivation.
type Argon2Params struct {
	Time    uint32 // Number of iterations
	Memory  uint32 // Memory usage in KiB
	Threads uint8  // Parallelism factor
	KeyLen  uint32 // Output key length
}

// DefaultArgon2Params returns recommended Argon2id parameters producing an
// AES-256 key.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024, // 64 MiB
		Threads: 4,
		KeyLen:  32,
	}
}

// DeriveKey stretches passphrase into a key suitable for AES or Envelope.
// The same passphrase, salt and params always yield the same key.
func DeriveKey(passphrase, salt []byte, params Argon2Params) ([]byte, error) {
	switch params.KeyLen {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: key length must be 16, 24, or 32 bytes, got %d", ErrInvalidKey, params.KeyLen)
	}
	if len(salt) < 8 {
		return nil, fmt.Errorf("%w: salt must be at least 8 bytes, got %d", ErrInvalidKey, len(salt))
	}
	if params.Time == 0 || params.Threads == 0 {
		return nil, fmt.Errorf("%w: argon2 time and threads must be non-zero", ErrInvalidKey)
	}
	return argon2.IDKey(passphrase, salt, params.Time, params.Memory, params.Threads, params.KeyLen), nil
}
