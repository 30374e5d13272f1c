package keymaster

import (
	"bytes"
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

// namedEnumValues lists, per enum tag, the values that have a schema name.
func namedEnumValues() map[Tag][]uint64 {
	out := make(map[Tag][]uint64)
	for _, tag := range Tags() {
		d := declared[tag]
		if d.kind != payloadEnum {
			continue
		}
		candidates := []uint64{0xFFFFFFFF}
		for v := uint64(0); v <= 256; v++ {
			candidates = append(candidates, v)
		}
		for _, v := range candidates {
			if _, err := d.enumParse(d.enumName(v)); err == nil {
				out[tag] = append(out[tag], v)
			}
		}
	}
	return out
}

// enumValueGen draws a named value, two named values or'ed together (the
// shape of combined authenticator flags), or any uint32.
func enumValueGen(named []uint64) *rapid.Generator[uint64] {
	return rapid.Custom(func(t *rapid.T) uint64 {
		switch rapid.IntRange(0, 2).Draw(t, "shape") {
		case 0:
			return rapid.SampledFrom(named).Draw(t, "named")
		case 1:
			return rapid.SampledFrom(named).Draw(t, "a") | rapid.SampledFrom(named).Draw(t, "b")
		default:
			return uint64(rapid.Uint32().Draw(t, "raw"))
		}
	})
}

// paramGen draws a parameter of any declared tag.
func paramGen() *rapid.Generator[KeyParameter] {
	tags := Tags()
	enums := namedEnumValues()

	return rapid.Custom(func(t *rapid.T) KeyParameter {
		tag := rapid.SampledFrom(tags).Draw(t, "tag")
		d := declared[tag]
		p := KeyParameter{Tag: tag}

		switch d.kind {
		case payloadNone:
			p.F.BoolValue = true
		case payloadEnum:
			d.slot(&p).SetUint(enumValueGen(enums[tag]).Draw(t, "enum"))
		case payloadBlob:
			p.Blob = rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "blob")
		case payloadInt:
			if d.valueType.Kind() == reflect.Uint32 {
				d.slot(&p).SetUint(uint64(rapid.Uint32().Draw(t, "uint")))
			} else {
				d.slot(&p).SetUint(rapid.Uint64().Draw(t, "ulong"))
			}
		}
		return p
	})
}

func TestProperty_AuthorizationRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.Uint32().Draw(t, "size")
		p := Authorization(TagKeySize, size)
		v := AuthorizationValue(TagKeySize, &p)
		if !v.IsOk() || v.Value() != size {
			t.Fatalf("KEY_SIZE = %v (ok %v), want %d", v.Value(), v.IsOk(), size)
		}

		sid := rapid.Uint64().Draw(t, "sid")
		p = Authorization(TagUserSecureID, sid)
		if got := AuthorizationValue(TagUserSecureID, &p).Value(); got != sid {
			t.Errorf("USER_SECURE_ID = %d, want %d", got, sid)
		}

		alg := Algorithm(rapid.Uint32().Draw(t, "alg"))
		p = Authorization(TagAlgorithm, alg)
		if got := AuthorizationValue(TagAlgorithm, &p).Value(); got != alg {
			t.Errorf("ALGORITHM = %v, want %v", got, alg)
		}
		if AuthorizationValue(TagPurpose, &p).IsOk() {
			t.Error("PURPOSE read from an ALGORITHM parameter should be absent")
		}

		nonce := rapid.SliceOfN(rapid.Byte(), 1, 32).Draw(t, "nonce")
		p = Authorization(TagNonce, nonce)
		if got := AuthorizationValue(TagNonce, &p).Value(); !bytes.Equal(got, nonce) {
			t.Errorf("NONCE = %x, want %x", got, nonce)
		}
	})
}

func TestProperty_EqualReflexive(t *testing.T) {
	gen := paramGen()
	rapid.Check(t, func(t *rapid.T) {
		p := gen.Draw(t, "param")
		if !Equal(p, p) {
			t.Errorf("Equal(%v, itself) = false", p)
		}
		if !Equal(p, p.Clone()) {
			t.Errorf("Equal(%v, clone) = false", p)
		}
	})
}

func TestProperty_BlobChangeBreaksEquality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		blob := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "blob")
		i := rapid.IntRange(0, len(blob)-1).Draw(t, "index")

		a := Authorization(TagNonce, blob)
		b := a.Clone()
		b.Blob[i]++

		if Equal(a, b) {
			t.Errorf("Equal(%x, %x) = true", a.Blob, b.Blob)
		}
	})
}

func TestProperty_EntryRoundTrip(t *testing.T) {
	gen := paramGen()
	rapid.Check(t, func(t *rapid.T) {
		p := gen.Draw(t, "param")

		e, err := EncodeEntry(p)
		if err != nil {
			t.Fatalf("EncodeEntry(%v) error: %v", p, err)
		}
		back, err := DecodeEntry(0, e)
		if err != nil {
			t.Fatalf("DecodeEntry(%+v) error: %v", e, err)
		}

		if !Equal(p, back) {
			t.Errorf("round-trip %v = %v", p, back)
		}
		if p.Blob != nil && !bytes.Equal(p.Blob, back.Blob) {
			t.Errorf("round-trip blob = %x, want %x", back.Blob, p.Blob)
		}
	})
}

func TestProperty_DeduplicateIdempotent(t *testing.T) {
	gen := paramGen()
	rapid.Check(t, func(t *rapid.T) {
		s := AuthorizationSet(rapid.SliceOfN(gen, 0, 12).Draw(t, "set"))

		once := s.Clone().Deduplicate()
		twice := once.Clone().Deduplicate()
		if !once.Equal(twice) {
			t.Errorf("Deduplicate() not idempotent: %v then %v", once, twice)
		}

		for _, p := range s {
			if !once.ContainsParam(p) {
				t.Errorf("Deduplicate() dropped %v", p)
			}
		}
	})
}

func TestProperty_FingerprintOrderIndependent(t *testing.T) {
	gen := paramGen()
	rapid.Check(t, func(t *rapid.T) {
		s := AuthorizationSet(rapid.SliceOfN(gen, 1, 8).Draw(t, "set"))
		perm := rapid.Permutation(s).Draw(t, "perm")

		a, err := Fingerprint(s, HashSHA256)
		if err != nil {
			t.Fatalf("Fingerprint() error: %v", err)
		}
		b, err := Fingerprint(AuthorizationSet(perm), HashSHA256)
		if err != nil {
			t.Fatalf("Fingerprint(permuted) error: %v", err)
		}
		if a != b {
			t.Errorf("Fingerprint() = %s, permuted %s", a, b)
		}
	})
}
