package keymaster

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnknownTag indicates a tag name or value outside the declared set.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrInvalidValue indicates a payload that does not fit its tag's category.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidTag indicates a struct tag that names an unknown keymaster tag
	// or binds it to a field of the wrong Go type.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrMissingEncryptor indicates a sealed tag has no registered encryptor.
	ErrMissingEncryptor = errors.New("missing encryptor")

	// ErrMissingHasher indicates a fingerprint algorithm is not registered.
	ErrMissingHasher = errors.New("missing hasher")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrEncrypt indicates sealing a payload failed.
	ErrEncrypt = errors.New("encrypt failed")

	// ErrDecrypt indicates unsealing a payload failed.
	ErrDecrypt = errors.New("decrypt failed")

	// ErrInvalidKey indicates an encryption key has invalid size or format.
	ErrInvalidKey = errors.New("invalid key")
)

// ConfigError represents a serializer or binding configuration error.
// It wraps a sentinel error with additional context about the field and algorithm.
type ConfigError struct {
	Err       error  // Underlying sentinel error (ErrMissingEncryptor, etc.)
	Field     string // Struct field or tag name that triggered the error
	Algorithm string // Algorithm that was missing/invalid
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q (field %s)", e.Err.Error(), e.Algorithm, e.Field)
	}
	if e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q", e.Err.Error(), e.Algorithm)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransformError represents an error while sealing or unsealing one payload.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrEncrypt, ErrDecrypt)
	Tag       string // Tag whose payload failed
	Operation string // encrypt or decrypt
	Cause     error  // Original error from the encryptor
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s tag %s: %v", e.Operation, e.Tag, e.Cause)
	}
	return fmt.Sprintf("%s tag %s", e.Operation, e.Tag)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// DecodeError reports a wire entry that cannot become a KeyParameter.
type DecodeError struct {
	Err    error  // ErrUnknownTag or ErrInvalidValue
	Index  int    // Position of the entry in the document
	Tag    string // Tag name as it appeared on the wire
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: entry %d (%s): %s", e.Err.Error(), e.Index, e.Tag, e.Reason)
	}
	return fmt.Sprintf("%s: entry %d (%s)", e.Err.Error(), e.Index, e.Tag)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for missing handler scenarios.
func newConfigError(sentinel error, algorithm, field string) error {
	return &ConfigError{
		Err:       sentinel,
		Algorithm: algorithm,
		Field:     field,
	}
}

// newTransformError creates a TransformError for payload transformation failures.
func newTransformError(sentinel error, operation, tag string, cause error) error {
	return &TransformError{
		Err:       sentinel,
		Tag:       tag,
		Operation: operation,
		Cause:     cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}

func newDecodeError(sentinel error, index int, tag, reason string) error {
	return &DecodeError{
		Err:    sentinel,
		Index:  index,
		Tag:    tag,
		Reason: reason,
	}
}
