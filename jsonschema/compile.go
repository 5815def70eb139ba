package jsonschema

import (
	"fmt"

	jschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// compileURL names the resource a document is compiled under. It must not
// need a loader, so it carries no scheme.
const compileURL = "ruleschema.json"

// Compile turns the document into a validator for JSON instances. Documents
// that use TypeAny do not pass the draft 2020-12 meta-schema and fail here.
func (d *Document) Compile() (*jschema.Schema, error) {
	raw, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	s, err := jschema.CompileString(compileURL, string(raw))
	if err != nil {
		return nil, fmt.Errorf("jsonschema: compile generated document: %w", err)
	}
	return s, nil
}
