package ruleschema

import (
	"reflect"

	js "github.com/reoring/ruleschema/jsonschema"
)

// Category is the primitive category of a type, as far as inference cares.
type Category int

const (
	CategoryOther    Category = iota
	CategoryText              // string
	CategoryInt32             // 32-bit integer
	CategoryObject            // opaque object (Go: any)
	CategorySequence          // ordered list (Go: slice)
)

// TypeDescriptor is the type information inference needs.
type TypeDescriptor interface {
	// Category reports the primitive category. Ignored for optional wrappers.
	Category() Category
	// Unwrap returns the inner type when the descriptor is an optional
	// wrapper (Go: pointer).
	Unwrap() (TypeDescriptor, bool)
}

// TypeName maps a type to its JSON Schema type name. Optional wrappers are
// unwrapped first; unmapped or nil types yield "any".
func TypeName(t TypeDescriptor) string {
	if t == nil {
		return js.TypeAny
	}
	if inner, ok := t.Unwrap(); ok {
		return TypeName(inner)
	}
	switch t.Category() {
	case CategoryText:
		return js.TypeString
	case CategoryInt32:
		return js.TypeNumber
	case CategoryObject:
		return js.TypeObject
	case CategorySequence:
		return js.TypeArray
	default:
		return js.TypeAny
	}
}

// MemberTypeName infers the type name of a rule target. Only simple
// properties carry a usable type; every other member is treated as a string.
func MemberTypeName(m Member) string {
	if m.Kind != MemberProperty {
		return js.TypeString
	}
	return TypeName(m.Type)
}

// TypeOf returns a descriptor backed by a reflect.Type. A nil type yields nil.
func TypeOf(t reflect.Type) TypeDescriptor {
	if t == nil {
		return nil
	}
	return reflectType{t}
}

type reflectType struct{ t reflect.Type }

func (r reflectType) Category() Category {
	switch r.t.Kind() {
	case reflect.String:
		return CategoryText
	case reflect.Int32:
		return CategoryInt32
	case reflect.Interface:
		if r.t.NumMethod() == 0 {
			return CategoryObject
		}
	case reflect.Slice:
		return CategorySequence
	}
	return CategoryOther
}

func (r reflectType) Unwrap() (TypeDescriptor, bool) {
	if r.t.Kind() != reflect.Pointer {
		return nil, false
	}
	return reflectType{r.t.Elem()}, true
}

func (r reflectType) String() string { return r.t.String() }

// Primitive returns a static descriptor of the given category.
func Primitive(c Category) TypeDescriptor { return staticType{cat: c} }

// Optional returns a static optional wrapper around inner.
func Optional(inner TypeDescriptor) TypeDescriptor { return staticType{inner: inner, wrap: true} }

type staticType struct {
	cat   Category
	inner TypeDescriptor
	wrap  bool
}

func (s staticType) Category() Category { return s.cat }

func (s staticType) Unwrap() (TypeDescriptor, bool) { return s.inner, s.wrap }
