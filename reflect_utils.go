package ruleschema

import (
	"reflect"
	"strings"
)

// ResolveStructKey resolves the property name of a struct field.
// Priority: ruleschema:"name=..." > json tag name > field name. A field the
// json tag skips (`json:"-"`) keeps its field name so it cannot collide with
// another skipped field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("ruleschema"); gt != "" {
		parts := strings.Split(gt, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return sf.Name
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if i == 0 {
				return sf.Name
			}
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// FieldOf returns the top-level struct field of S whose address selector
// returns, e.g.:
//
//	FieldOf(func(p *Person) *string { return &p.Name })
//
// It panics when selector does not return the address of an exported
// top-level field.
func FieldOf[S any, F any](selector func(*S) *F) reflect.StructField {
	if selector == nil {
		panic("ruleschema.FieldOf: selector must not be nil")
	}
	var zero S
	rv := reflect.ValueOf(&zero).Elem()
	if rv.Kind() != reflect.Struct {
		panic("ruleschema.FieldOf: " + rv.Type().String() + " is not a struct")
	}
	fp := reflect.ValueOf(selector(&zero)).Pointer()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := rv.Field(i)
		// Zero-size fields share addresses with their neighbours; the type
		// check keeps the match exact.
		if fv.Addr().Pointer() == fp && sf.Type == reflect.TypeOf((*F)(nil)).Elem() {
			return sf
		}
	}
	panic("ruleschema.FieldOf: selector must return address of an exported top-level field")
}

// MemberOf resolves a member of t by property name: an exported field whose
// key is name, or else a method called name. Anything else is MemberOther.
func MemberOf(t reflect.Type, name string) Member {
	if t == nil {
		return Member{Name: name}
	}
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() == reflect.Struct {
		for i := 0; i < st.NumField(); i++ {
			sf := st.Field(i)
			if !sf.IsExported() {
				continue
			}
			if ResolveStructKey(sf) == name {
				return Member{Name: sf.Name, Kind: MemberProperty, Type: TypeOf(sf.Type)}
			}
		}
	}
	// Methods with pointer receivers are only visible on *T.
	if _, ok := reflect.PointerTo(st).MethodByName(name); ok {
		return Member{Name: name, Kind: MemberMethod}
	}
	return Member{Name: name}
}
