package jsonschema

import (
	"gopkg.in/yaml.v3"
)

// MarshalYAML renders the fragment as a mapping node so keyword order survives.
func (f *Fragment) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for p := f.kw.Oldest(); p != nil; p = p.Next() {
		if err := appendPair(n, p.Key, p.Value); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// MarshalYAML renders the document with the same key order as MarshalJSON.
func (d *Document) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	if err := appendPair(n, KeywordSchema, SchemaURI); err != nil {
		return nil, err
	}
	if err := appendPair(n, KeywordType, TypeObject); err != nil {
		return nil, err
	}
	if d.properties == nil {
		return n, nil
	}
	props := &yaml.Node{Kind: yaml.MappingNode}
	for p := d.properties.Oldest(); p != nil; p = p.Next() {
		fn, err := p.Value.MarshalYAML()
		if err != nil {
			return nil, err
		}
		props.Content = append(props.Content, keyNode(p.Key), fn.(*yaml.Node))
	}
	n.Content = append(n.Content, keyNode(KeywordProperties), props)
	return n, nil
}

func appendPair(n *yaml.Node, k string, v any) error {
	vn := &yaml.Node{}
	if err := vn.Encode(v); err != nil {
		return err
	}
	n.Content = append(n.Content, keyNode(k), vn)
	return nil
}

func keyNode(k string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
}
