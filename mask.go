package keymaster

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Masker renders a secret blob payload for display without revealing it.
type Masker interface {
	// Mask returns a display form of b.
	Mask(b []byte) string
}

type prefixMasker struct {
	keep int
}

// PrefixMasker returns a masker that shows the first keep bytes in hex and
// the payload length: ab12****(16 bytes). Payloads no longer than keep are
// fully masked.
func PrefixMasker(keep int) Masker {
	return &prefixMasker{keep: max(keep, 0)}
}

func (m *prefixMasker) Mask(b []byte) string {
	if len(b) <= m.keep {
		return fmt.Sprintf("****(%d bytes)", len(b))
	}
	return fmt.Sprintf("%s****(%d bytes)", hex.EncodeToString(b[:m.keep]), len(b))
}

type lengthMasker struct{}

// LengthMasker returns a masker that shows only the payload length.
func LengthMasker() Masker {
	return &lengthMasker{}
}

func (m *lengthMasker) Mask(b []byte) string {
	return fmt.Sprintf("[%d bytes]", len(b))
}

// defaultMasker is used by Redact.
var defaultMasker = PrefixMasker(2)

// Redact renders p like KeyParameter.String, with the payload of sensitive
// tags masked.
func Redact(p KeyParameter) string {
	return RedactWith(p, defaultMasker)
}

// RedactWith renders p, masking sensitive payloads with m.
func RedactWith(p KeyParameter, m Masker) string {
	if !IsSensitive(p.Tag) {
		return p.String()
	}
	d, ok := lookupDecl(p.Tag)
	if !ok {
		return p.String()
	}
	return d.name + "=" + m.Mask(p.Blob)
}

// RedactSet renders every parameter of s with Redact, as {A, B, ...}.
func RedactSet(s AuthorizationSet) string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = Redact(p)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
