package keymaster

import (
	"bytes"
	"fmt"
	"reflect"
	"sync"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag("km")
}

// fieldShape is how a struct field holds its tag's value.
type fieldShape int

const (
	shapeValue    fieldShape = iota // V; zero value means absent
	shapePointer                    // *V; nil means absent
	shapeRepeated                   // []V, for repeatable categories
	shapeFlag                       // bool, for BOOL tags
)

// fieldBinding describes how to move one struct field to and from a set.
type fieldBinding struct {
	index []int
	name  string
	decl  *tagDecl
	shape fieldShape
}

type bindPlan struct {
	typeName string
	fields   []fieldBinding
}

var (
	plans   = make(map[reflect.Type]*bindPlan)
	plansMu sync.RWMutex
)

// planFor returns the cached binding plan for T, building it on first use.
func planFor[T any]() (*bindPlan, error) {
	typ := reflect.TypeFor[T]()

	plansMu.RLock()
	if p, ok := plans[typ]; ok {
		plansMu.RUnlock()
		return p, nil
	}
	plansMu.RUnlock()

	p, err := buildPlan[T](typ)
	if err != nil {
		return nil, err
	}

	plansMu.Lock()
	defer plansMu.Unlock()
	if cached, ok := plans[typ]; ok {
		return cached, nil
	}
	plans[typ] = p
	return p, nil
}

func buildPlan[T any](typ reflect.Type) (*bindPlan, error) {
	if typ.Kind() != reflect.Struct {
		return nil, newConfigError(ErrInvalidTag, "", typ.String())
	}

	spec := sentinel.Scan[T]()
	plan := &bindPlan{typeName: spec.TypeName}

	for _, field := range spec.Fields {
		name, ok := field.Tags["km"]
		if !ok || name == "" || name == "-" {
			continue
		}
		tag, err := ParseTag(name)
		if err != nil || TypeOf(tag) == TypeInvalid {
			return nil, newConfigError(ErrInvalidTag, "", field.Name)
		}
		d := declared[tag]

		shape, ok := shapeOf(d, field.ReflectType)
		if !ok {
			return nil, &ConfigError{
				Err:   fmt.Errorf("%w: %s wants %s", ErrInvalidTag, d.name, wantType(d)),
				Field: field.Name,
			}
		}
		plan.fields = append(plan.fields, fieldBinding{
			index: field.Index,
			name:  field.Name,
			decl:  d,
			shape: shape,
		})
	}
	return plan, nil
}

// shapeOf reports how a field of type ft can hold d's value.
func shapeOf(d *tagDecl, ft reflect.Type) (fieldShape, bool) {
	switch {
	case d.kind == payloadNone:
		return shapeFlag, ft.Kind() == reflect.Bool
	case d.typ.Repeatable():
		return shapeRepeated, ft.Kind() == reflect.Slice && ft.Elem() == d.valueType
	case ft == d.valueType:
		return shapeValue, true
	case ft.Kind() == reflect.Pointer && ft.Elem() == d.valueType:
		return shapePointer, true
	}
	return 0, false
}

func wantType(d *tagDecl) string {
	switch {
	case d.kind == payloadNone:
		return "bool"
	case d.typ.Repeatable():
		return "[]" + d.valueType.String()
	}
	return d.valueType.String()
}

// Encode returns the authorizations described by v's km-tagged fields, in
// field order. Zero-valued plain fields, nil pointers, empty slices and
// false flags are omitted; use a pointer field to emit an explicit zero.
//
// Encode returns a ConfigError wrapping ErrInvalidTag when a km tag names an
// unknown tag or a field has the wrong type for it.
func Encode[T any](v T) (AuthorizationSet, error) {
	if m, ok := any(v).(ParamsMarshaler); ok {
		return m.MarshalParams()
	}

	plan, err := planFor[T]()
	if err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(&v).Elem()
	var out AuthorizationSet
	for _, fb := range plan.fields {
		fv := rv.FieldByIndex(fb.index)
		switch fb.shape {
		case shapeFlag:
			if fv.Bool() {
				out = append(out, fb.decl.param(reflect.ValueOf(true)))
			}
		case shapePointer:
			if !fv.IsNil() {
				out = append(out, fb.decl.param(fv.Elem()))
			}
		case shapeRepeated:
			for i := 0; i < fv.Len(); i++ {
				out = append(out, fb.decl.param(fv.Index(i)))
			}
		case shapeValue:
			if !fv.IsZero() && !(fb.decl.kind == payloadBlob && fv.Len() == 0) {
				out = append(out, fb.decl.param(fv))
			}
		}
	}
	return out, nil
}

// Decode returns a T whose km-tagged fields are filled from set. For
// non-repeatable tags the first matching parameter wins. Parameters with no
// matching field are ignored.
func Decode[T any](set AuthorizationSet) (T, error) {
	var v T
	if u, ok := any(&v).(ParamsUnmarshaler); ok {
		err := u.UnmarshalParams(set)
		return v, err
	}

	plan, err := planFor[T]()
	if err != nil {
		return v, err
	}

	rv := reflect.ValueOf(&v).Elem()
	for _, fb := range plan.fields {
		fv := rv.FieldByIndex(fb.index)
		d := fb.decl
		switch fb.shape {
		case shapeFlag:
			fv.SetBool(set.Contains(d.tag))
		case shapeRepeated:
			for i := range set {
				if set[i].Tag == d.tag {
					fv.Set(reflect.Append(fv, d.value(&set[i])))
				}
			}
		case shapePointer:
			if i := set.Find(d.tag, 0); i >= 0 {
				ptr := reflect.New(d.valueType)
				ptr.Elem().Set(d.value(&set[i]))
				fv.Set(ptr)
			}
		case shapeValue:
			if i := set.Find(d.tag, 0); i >= 0 {
				fv.Set(d.value(&set[i]))
			}
		}
	}
	return v, nil
}

// param builds a parameter of d's tag holding v, which has d.valueType.
func (d *tagDecl) param(v reflect.Value) KeyParameter {
	p := KeyParameter{Tag: d.tag}
	d.slot(&p).Set(v)
	if p.Blob != nil {
		p.Blob = bytes.Clone(p.Blob)
	}
	return p
}

// value returns a copy of the active slot of p.
func (d *tagDecl) value(p *KeyParameter) reflect.Value {
	if d.kind == payloadBlob {
		return reflect.ValueOf(bytes.Clone(p.Blob))
	}
	return d.slot(p)
}
