package keymaster

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

// Encryption errors.
var (
	ErrCiphertextShort  = errors.New("ciphertext too short")
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Encryptor seals and opens blob payloads. The label binds a ciphertext to
// the tag it was produced for; opening with a different label fails.
type Encryptor interface {
	// Encrypt encrypts plaintext and returns ciphertext.
	Encrypt(plaintext, label []byte) ([]byte, error)

	// Decrypt decrypts ciphertext and returns plaintext.
	Decrypt(ciphertext, label []byte) ([]byte, error)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != 16 && len(key) != 24 && len(key) != 32 {
		return nil, fmt.Errorf("%w: must be 16, 24, or 32 bytes, got %d", ErrInvalidKey, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// sealGCM returns nonce || ciphertext.
func sealGCM(gcm cipher.AEAD, plaintext, label []byte) ([]byte, error) {
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, label), nil
}

func openGCM(gcm cipher.AEAD, ciphertext, label []byte) ([]byte, error) {
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrCiphertextShort
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, label)
}

type aesEncryptor struct {
	gcm cipher.AEAD
}

// AES returns an AES-GCM encryptor.
// Key must be 16, 24, or 32 bytes for AES-128, AES-192, or AES-256.
// DeriveKey produces a suitable key from a passphrase.
func AES(key []byte) (Encryptor, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return &aesEncryptor{gcm: gcm}, nil
}

func (e *aesEncryptor) Encrypt(plaintext, label []byte) ([]byte, error) {
	return sealGCM(e.gcm, plaintext, label)
}

func (e *aesEncryptor) Decrypt(ciphertext, label []byte) ([]byte, error) {
	plaintext, err := openGCM(e.gcm, ciphertext, label)
	if err != nil {
		if errors.Is(err, ErrCiphertextShort) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// rsaEncryptor implements RSA-OAEP encryption.
type rsaEncryptor struct {
	pub  *rsa.PublicKey
	priv *rsa.PrivateKey
}

// RSA returns an RSA-OAEP encryptor. The label is passed as the OAEP label.
// pub is required for encryption; priv is required for decryption.
// Either can be nil if only one operation is needed.
func RSA(pub *rsa.PublicKey, priv *rsa.PrivateKey) Encryptor {
	return &rsaEncryptor{pub: pub, priv: priv}
}

func (e *rsaEncryptor) Encrypt(plaintext, label []byte) ([]byte, error) {
	if e.pub == nil {
		return nil, errors.New("public key required for encryption")
	}
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, e.pub, plaintext, label)
}

func (e *rsaEncryptor) Decrypt(ciphertext, label []byte) ([]byte, error) {
	if e.priv == nil {
		return nil, errors.New("private key required for decryption")
	}
	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, e.priv, ciphertext, label)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// envelopeEncryptor generates a random data key per payload, encrypts it with
// the master key and prepends it to the ciphertext.
type envelopeEncryptor struct {
	masterGCM   cipher.AEAD
	dataKeySize int
}

// Envelope returns an envelope encryptor using a master key.
// Master key must be 16, 24, or 32 bytes.
func Envelope(masterKey []byte) (Encryptor, error) {
	gcm, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}
	return &envelopeEncryptor{
		masterGCM:   gcm,
		dataKeySize: 32, // AES-256 data keys
	}, nil
}

func (e *envelopeEncryptor) Encrypt(plaintext, label []byte) ([]byte, error) {
	dataKey := make([]byte, e.dataKeySize)
	if _, err := io.ReadFull(rand.Reader, dataKey); err != nil {
		return nil, err
	}

	dataGCM, err := newGCM(dataKey)
	if err != nil {
		return nil, err
	}
	encryptedData, err := sealGCM(dataGCM, plaintext, label)
	if err != nil {
		return nil, err
	}
	encryptedKey, err := sealGCM(e.masterGCM, dataKey, label)
	if err != nil {
		return nil, err
	}

	// Format: [2 bytes key len][encrypted key][encrypted data]
	if len(encryptedKey) > 65535 {
		return nil, errors.New("encrypted key exceeds maximum length")
	}
	keyLen := uint16(len(encryptedKey)) // #nosec G115 -- bounds checked above
	result := make([]byte, 2+len(encryptedKey)+len(encryptedData))
	result[0] = byte(keyLen >> 8)
	result[1] = byte(keyLen)
	copy(result[2:], encryptedKey)
	copy(result[2+len(encryptedKey):], encryptedData)

	return result, nil
}

func (e *envelopeEncryptor) Decrypt(ciphertext, label []byte) ([]byte, error) {
	if len(ciphertext) < 2 {
		return nil, ErrCiphertextShort
	}

	keyLen := int(uint16(ciphertext[0])<<8 | uint16(ciphertext[1]))
	if len(ciphertext) < 2+keyLen {
		return nil, ErrCiphertextShort
	}
	encryptedKey := ciphertext[2 : 2+keyLen]
	encryptedData := ciphertext[2+keyLen:]

	dataKey, err := openGCM(e.masterGCM, encryptedKey, label)
	if err != nil {
		if errors.Is(err, ErrCiphertextShort) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to decrypt data key: %w", ErrDecryptionFailed, err)
	}

	dataGCM, err := newGCM(dataKey)
	if err != nil {
		return nil, err
	}
	plaintext, err := openGCM(dataGCM, encryptedData, label)
	if err != nil {
		if errors.Is(err, ErrCiphertextShort) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to decrypt data: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}
