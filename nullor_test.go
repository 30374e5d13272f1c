package keymaster

import "testing"

func TestNullOr(t *testing.T) {
	absent := Null[uint32]()
	if absent.IsOk() || absent.Ptr() != nil || absent.Value() != 0 {
		t.Errorf("Null() = %v/%v/%v", absent.IsOk(), absent.Ptr(), absent.Value())
	}

	v := Valid(uint32(7))
	if !v.IsOk() || v.Value() != 7 {
		t.Errorf("Valid(7) = %v/%v", v.IsOk(), v.Value())
	}

	if Ref[uint32](nil).IsOk() {
		t.Error("Ref(nil) should be absent")
	}
	x := uint32(1)
	r := Ref(&x)
	x = 2
	if r.Value() != 2 {
		t.Errorf("Ref() does not track its target: %d", r.Value())
	}
}

func TestNullOrOr(t *testing.T) {
	tests := []struct {
		name   string
		in     []NullOr[uint32]
		wantOk bool
		want   uint32
	}{
		{"none", nil, false, 0},
		{"all absent", []NullOr[uint32]{Null[uint32](), Null[uint32]()}, false, 0},
		{"first present", []NullOr[uint32]{Valid(uint32(1)), Valid(uint32(2))}, true, 1},
		{"skips absent", []NullOr[uint32]{Null[uint32](), Valid(uint32(2)), Valid(uint32(3))}, true, 2},
		{"present zero", []NullOr[uint32]{Valid(uint32(0)), Valid(uint32(9))}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NullOrOr(tt.in...)
			if got.IsOk() != tt.wantOk || got.Value() != tt.want {
				t.Errorf("NullOrOr() = %v/%v, want %v/%v", got.IsOk(), got.Value(), tt.wantOk, tt.want)
			}
		})
	}
}

func TestDefaultOr(t *testing.T) {
	if got := DefaultOr(Null[Digest](), DigestSHA2_256); got != DigestSHA2_256 {
		t.Errorf("DefaultOr(absent) = %v, want SHA_2_256", got)
	}
	if got := DefaultOr(Valid(DigestNone), DigestSHA2_256); got != DigestNone {
		t.Errorf("DefaultOr(NONE) = %v, want NONE", got)
	}

	set := NewAuthorizationSet(Authorization(TagMacLength, uint32(128)))
	if got := DefaultOr(GetTagValue(set, TagMinMacLength), 96); got != 96 {
		t.Errorf("DefaultOr(missing tag) = %d, want 96", got)
	}
	if got := DefaultOr(GetTagValue(set, TagMacLength), 96); got != 128 {
		t.Errorf("DefaultOr(present tag) = %d, want 128", got)
	}
}
