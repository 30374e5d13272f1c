package keymaster

import (
	"context"
	"sync"
	"time"
)

// Serializer encodes authorization sets with a Codec and seals the blob
// payloads of selected tags.
//
// Serializers are safe for concurrent use. Configuration methods (SetEncryptor,
// Seal, SealDefaults) may be called at any time to update or rotate keys.
//
// Validation occurs automatically on first operation. Configure all required
// encryptors before the first call to Marshal or Unmarshal.
type Serializer struct {
	codec Codec

	// Mutable configuration protected by mu
	mu         sync.RWMutex
	encryptors map[EncryptAlgo]Encryptor
	sealed     map[Tag]EncryptAlgo
	configErr  error

	// Validation state (runs once on first operation)
	validateOnce sync.Once
	validateErr  error
}

// NewSerializer creates a Serializer for codec. Nothing is sealed until Seal
// or SealDefaults is called.
func NewSerializer(codec Codec) *Serializer {
	s := &Serializer{
		codec:      codec,
		encryptors: make(map[EncryptAlgo]Encryptor),
		sealed:     make(map[Tag]EncryptAlgo),
	}
	emitSerializerCreated(context.Background(), codec.ContentType())
	return s
}

// ContentType returns the content type of the underlying codec.
func (s *Serializer) ContentType() string {
	return s.codec.ContentType()
}

// SetEncryptor registers an encryptor for the given algorithm.
// Returns the serializer for chaining. Safe for concurrent use.
func (s *Serializer) SetEncryptor(algo EncryptAlgo, enc Encryptor) *Serializer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.encryptors[algo] = enc
	return s
}

// Seal marks tags so their blob payloads are encrypted with algo on Marshal.
// Only BYTES and BIGNUM tags carry blobs; any other tag, or an unknown algo,
// is reported by Validate.
func (s *Serializer) Seal(algo EncryptAlgo, tags ...Tagger) *Serializer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !IsValidEncryptAlgo(algo) {
		s.recordConfigError(newConfigError(ErrInvalidTag, string(algo), ""))
		return s
	}
	for _, t := range tags {
		tag := t.Tag()
		d, ok := declared[tag]
		if !ok || d.kind != payloadBlob {
			s.recordConfigError(newConfigError(ErrInvalidTag, string(algo), tag.String()))
			continue
		}
		s.sealed[tag] = algo
	}
	return s
}

// SealDefaults seals every tag reported by IsSensitive.
func (s *Serializer) SealDefaults(algo EncryptAlgo) *Serializer {
	tags := make([]Tagger, 0, len(sensitiveTags))
	for t := range sensitiveTags {
		tags = append(tags, t)
	}
	return s.Seal(algo, tags...)
}

func (s *Serializer) recordConfigError(err error) {
	if s.configErr == nil {
		s.configErr = err
	}
}

// Validate checks that every sealing algorithm has a registered encryptor.
//
// Validation also runs automatically on first operation. Calling Validate
// explicitly allows catching configuration errors at startup.
func (s *Serializer) Validate() error {
	return s.ensureValidated()
}

func (s *Serializer) ensureValidated() error {
	s.validateOnce.Do(func() {
		s.mu.RLock()
		defer s.mu.RUnlock()
		s.validateErr = s.validateCapabilities()
	})
	return s.validateErr
}

// validateCapabilities must be called with mu held.
func (s *Serializer) validateCapabilities() error {
	if s.configErr != nil {
		return s.configErr
	}
	for tag, algo := range s.sealed {
		if _, ok := s.encryptors[algo]; !ok {
			return newConfigError(ErrMissingEncryptor, string(algo), tag.String())
		}
	}
	return nil
}

// Marshal encodes set. Parameters keep their order.
func (s *Serializer) Marshal(ctx context.Context, set AuthorizationSet) ([]byte, error) {
	if err := s.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitMarshalStart(ctx, s.codec.ContentType(), len(set))

	var retErr error
	var retData []byte
	var sealedCount int
	defer func() {
		emitMarshalComplete(ctx, s.codec.ContentType(), len(set),
			len(retData), time.Since(start), sealedCount, retErr)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := Document{Params: make([]Entry, 0, len(set))}
	for _, p := range set {
		e, err := EncodeEntry(p)
		if err != nil {
			retErr = newCodecError(ErrMarshal, err)
			return nil, retErr
		}
		if algo, ok := s.sealed[p.Tag]; ok {
			enc, ok := s.encryptors[algo]
			if !ok {
				retErr = newConfigError(ErrMissingEncryptor, string(algo), e.Tag)
				return nil, retErr
			}
			ct, err := enc.Encrypt(e.Blob, []byte(e.Tag))
			if err != nil {
				retErr = newTransformError(ErrEncrypt, "encrypt", e.Tag, err)
				return nil, retErr
			}
			e.Blob = ct
			e.Sealed = string(algo)
			sealedCount++
		}
		doc.Params = append(doc.Params, e)
	}

	data, err := s.codec.Marshal(&doc)
	if err != nil {
		retErr = newCodecError(ErrMarshal, err)
		return nil, retErr
	}
	retData = data
	return data, nil
}

// Unmarshal decodes data into a new AuthorizationSet. Sealed payloads are
// opened with the encryptor named on the wire, whether or not the tag is
// sealed by this serializer.
func (s *Serializer) Unmarshal(ctx context.Context, data []byte) (AuthorizationSet, error) {
	if err := s.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitUnmarshalStart(ctx, s.codec.ContentType(), len(data))

	var retErr error
	var set AuthorizationSet
	var sealedCount int
	defer func() {
		emitUnmarshalComplete(ctx, s.codec.ContentType(), len(set),
			time.Since(start), sealedCount, retErr)
	}()

	var doc Document
	if err := s.codec.Unmarshal(data, &doc); err != nil {
		retErr = newCodecError(ErrUnmarshal, err)
		return nil, retErr
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(AuthorizationSet, 0, len(doc.Params))
	for i, e := range doc.Params {
		if e.Sealed != "" {
			enc, ok := s.encryptors[EncryptAlgo(e.Sealed)]
			if !ok {
				retErr = newConfigError(ErrMissingEncryptor, e.Sealed, e.Tag)
				return nil, retErr
			}
			pt, err := enc.Decrypt(e.Blob, []byte(e.Tag))
			if err != nil {
				retErr = newTransformError(ErrDecrypt, "decrypt", e.Tag, err)
				return nil, retErr
			}
			e.Blob = pt
			e.Sealed = ""
			sealedCount++
		}
		p, err := DecodeEntry(i, e)
		if err != nil {
			retErr = err
			return nil, retErr
		}
		out = append(out, p)
	}
	set = out
	return set, nil
}
