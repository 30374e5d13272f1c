package keymaster

import (
	"bytes"
	"slices"
)

// AuthorizationSet is an ordered list of key parameters, as exchanged with a
// keymaster device. It is a plain value; Clone before sharing across goroutines
// that mutate it.
type AuthorizationSet []KeyParameter

// NewAuthorizationSet returns a set holding params in the given order.
func NewAuthorizationSet(params ...KeyParameter) AuthorizationSet {
	s := make(AuthorizationSet, 0, len(params))
	return s.Push(params...)
}

// Push appends params and returns the extended set.
func (s AuthorizationSet) Push(params ...KeyParameter) AuthorizationSet {
	for _, p := range params {
		s = append(s, p.Clone())
	}
	return s
}

// Len returns the number of parameters.
func (s AuthorizationSet) Len() int { return len(s) }

// Find returns the index of the first parameter at or after from carrying tag,
// or -1.
func (s AuthorizationSet) Find(tag Tagger, from int) int {
	t := tag.Tag()
	for i := max(from, 0); i < len(s); i++ {
		if s[i].Tag == t {
			return i
		}
	}
	return -1
}

// Contains reports whether any parameter carries tag.
func (s AuthorizationSet) Contains(tag Tagger) bool {
	return s.Find(tag, 0) >= 0
}

// ContainsParam reports whether s holds a parameter equal to p.
func (s AuthorizationSet) ContainsParam(p KeyParameter) bool {
	return slices.ContainsFunc(s, p.Equal)
}

// Erase removes the parameter at index i.
func (s AuthorizationSet) Erase(i int) AuthorizationSet {
	if i < 0 || i >= len(s) {
		return s
	}
	return slices.Delete(s, i, i+1)
}

// EraseTag removes every parameter carrying tag.
func (s AuthorizationSet) EraseTag(tag Tagger) AuthorizationSet {
	t := tag.Tag()
	return slices.DeleteFunc(s, func(p KeyParameter) bool { return p.Tag == t })
}

// Clone returns a deep copy of s.
func (s AuthorizationSet) Clone() AuthorizationSet {
	if s == nil {
		return nil
	}
	c := make(AuthorizationSet, len(s))
	for i, p := range s {
		c[i] = p.Clone()
	}
	return c
}

// Sort orders s by tag, then by payload, in place.
func (s AuthorizationSet) Sort() {
	slices.SortStableFunc(s, compareParams)
}

// Deduplicate sorts s and drops parameters equal to their predecessor.
func (s AuthorizationSet) Deduplicate() AuthorizationSet {
	s.Sort()
	return slices.CompactFunc(s, Equal)
}

// Union returns the deduplicated union of s and other.
func (s AuthorizationSet) Union(other AuthorizationSet) AuthorizationSet {
	u := s.Clone().Push(other...)
	return u.Deduplicate()
}

// Subtract returns the parameters of s that have no equal in other.
func (s AuthorizationSet) Subtract(other AuthorizationSet) AuthorizationSet {
	out := make(AuthorizationSet, 0, len(s))
	for _, p := range s {
		if !other.ContainsParam(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Equal reports whether s and other hold pairwise equal parameters in the same
// order.
func (s AuthorizationSet) Equal(other AuthorizationSet) bool {
	return slices.EqualFunc(s, other, Equal)
}

// GetTagValue returns the value of the first parameter carrying t.
func GetTagValue[V any](s AuthorizationSet, t Field[V]) NullOr[V] {
	i := s.Find(t, 0)
	if i < 0 {
		return NullOr[V]{}
	}
	return AuthorizationValue(t, &s[i])
}

// GetRepeated returns the values of every parameter carrying t, in order.
func GetRepeated[V any](s AuthorizationSet, t TypedTag[V]) []V {
	var out []V
	for i := range s {
		if v := AuthorizationValue(t, &s[i]); v.IsOk() {
			out = append(out, v.Value())
		}
	}
	return out
}

// compareParams orders by tag, then by the active slot. Undeclared tags
// compare equal among themselves.
func compareParams(a, b KeyParameter) int {
	if a.Tag != b.Tag {
		if a.Tag < b.Tag {
			return -1
		}
		return 1
	}
	d, ok := declared[a.Tag]
	if !ok {
		return 0
	}
	switch d.kind {
	case payloadNone:
		return 0
	case payloadBlob:
		return bytes.Compare(a.Blob, b.Blob)
	}
	av, bv := d.slot(&a).Uint(), d.slot(&b).Uint()
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	}
	return 0
}
