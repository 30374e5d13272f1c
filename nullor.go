package keymaster

// NullOr wraps a value that may be absent. A nil pointer marks absence, so an
// absent NullOr never refers to storage that does not exist.
//
// NullOr values returned by AuthorizationValue refer to the slot inside the
// KeyParameter; writes through Ptr are visible in that parameter.
type NullOr[V any] struct {
	ptr *V
}

// Valid returns a present NullOr holding a copy of v.
func Valid[V any](v V) NullOr[V] {
	return NullOr[V]{ptr: &v}
}

// Ref returns a NullOr referring to *p. A nil p yields an absent NullOr.
func Ref[V any](p *V) NullOr[V] {
	return NullOr[V]{ptr: p}
}

// Null returns an absent NullOr.
func Null[V any]() NullOr[V] {
	return NullOr[V]{}
}

// IsOk reports whether a value is present.
func (n NullOr[V]) IsOk() bool {
	return n.ptr != nil
}

// Value returns the wrapped value. When absent it returns the zero value of V,
// which carries no meaning; check IsOk first.
func (n NullOr[V]) Value() V {
	if n.ptr == nil {
		var zero V
		return zero
	}
	return *n.ptr
}

// Ptr returns the wrapped reference, or nil when absent.
func (n NullOr[V]) Ptr() *V {
	return n.ptr
}

// NullOrOr returns the first present argument, scanning left to right, or an
// absent NullOr when none is present.
func NullOrOr[V any](candidates ...NullOr[V]) NullOr[V] {
	for _, c := range candidates {
		if c.IsOk() {
			return c
		}
	}
	return NullOr[V]{}
}

// DefaultOr returns the wrapped value when present and def otherwise.
func DefaultOr[V any](n NullOr[V], def V) V {
	if n.IsOk() {
		return *n.ptr
	}
	return def
}
