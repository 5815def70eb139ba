package jsonschema

import (
	"bytes"

	j "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fragment is the partial schema describing one property. Keywords keep the
// order in which they were first set; overwriting a keyword keeps its slot.
type Fragment struct {
	kw *orderedmap.OrderedMap[string, any]
}

// NewFragment returns an empty fragment.
func NewFragment() *Fragment {
	return &Fragment{kw: orderedmap.New[string, any]()}
}

// Set assigns keyword k. An existing keyword is overwritten in place.
func (f *Fragment) Set(k string, v any) { f.kw.Set(k, v) }

// Get returns the value of keyword k.
func (f *Fragment) Get(k string) (any, bool) { return f.kw.Get(k) }

// Delete removes keyword k and reports whether it was present.
func (f *Fragment) Delete(k string) bool {
	_, ok := f.kw.Delete(k)
	return ok
}

// Len returns the number of keywords.
func (f *Fragment) Len() int { return f.kw.Len() }

// Keywords returns keyword names in output order.
func (f *Fragment) Keywords() []string {
	out := make([]string, 0, f.kw.Len())
	for p := f.kw.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// MarshalJSON emits the keywords as a compact JSON object in output order.
func (f *Fragment) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for p := f.kw.Oldest(); p != nil; p = p.Next() {
		if err := writeMember(&buf, p.Key, p.Value, first); err != nil {
			return nil, err
		}
		first = false
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Document is the root schema object. $schema and type are fixed; properties
// is absent until the first property is added.
type Document struct {
	properties *orderedmap.OrderedMap[string, *Fragment]
}

// NewDocument returns the minimal document: {"$schema": SchemaURI, "type": "object"}.
func NewDocument() *Document { return &Document{} }

// Schema returns the $schema URI.
func (d *Document) Schema() string { return SchemaURI }

// Type returns the root type, always "object".
func (d *Document) Type() string { return TypeObject }

// HasProperties reports whether the properties keyword is present.
func (d *Document) HasProperties() bool { return d.properties != nil }

// Property returns the fragment for name, if one exists.
func (d *Document) Property(name string) (*Fragment, bool) {
	if d.properties == nil {
		return nil, false
	}
	return d.properties.Get(name)
}

// PropertyFor returns the fragment for name, creating it (and the properties
// keyword) on first use. Creation order is the output order.
func (d *Document) PropertyFor(name string) (f *Fragment, created bool) {
	if d.properties == nil {
		d.properties = orderedmap.New[string, *Fragment]()
	}
	if existing, ok := d.properties.Get(name); ok {
		return existing, false
	}
	f = NewFragment()
	d.properties.Set(name, f)
	return f, true
}

// PropertyNames returns property names in first-seen order.
func (d *Document) PropertyNames() []string {
	if d.properties == nil {
		return nil
	}
	out := make([]string, 0, d.properties.Len())
	for p := d.properties.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// MarshalJSON emits $schema, type and (when present) properties, in that order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, KeywordSchema, SchemaURI, true); err != nil {
		return nil, err
	}
	if err := writeMember(&buf, KeywordType, TypeObject, false); err != nil {
		return nil, err
	}
	if d.properties != nil {
		if err := writeKey(&buf, KeywordProperties, false); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		first := true
		for p := d.properties.Oldest(); p != nil; p = p.Next() {
			if err := writeMember(&buf, p.Key, p.Value, first); err != nil {
				return nil, err
			}
			first = false
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalIndent is MarshalJSON with indentation applied.
func (d *Document) MarshalIndent(prefix, indent string) ([]byte, error) {
	raw, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := j.Indent(&out, raw, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, k string, first bool) error {
	if !first {
		buf.WriteByte(',')
	}
	if err := writeValue(buf, k); err != nil {
		return err
	}
	buf.WriteByte(':')
	return nil
}

func writeMember(buf *bytes.Buffer, k string, v any, first bool) error {
	if err := writeKey(buf, k, first); err != nil {
		return err
	}
	return writeValue(buf, v)
}

// writeValue encodes v without HTML escaping so patterns come out verbatim.
func writeValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := j.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}
