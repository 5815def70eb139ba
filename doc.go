package ruleschema

// Package ruleschema derives a JSON Schema document from a set of
// per-property validation rules, so the wire contract does not have to be
// maintained by hand next to the validator.
//
// - A RuleSource yields Rules; each Rule names a property and carries ordered
//   Components (NotNull, NotEmpty, Pattern; anything else is ignored).
// - Parse groups rules by property in first-seen order and applies components
//   in order to one fragment per property. Later components win on shared
//   keywords.
// - Types are inferred from the member's TypeDescriptor: text, 32-bit
//   integers, opaque objects and sequences map to string, number, object and
//   array; everything else is "any".
//
// Design policy:
// - Keep the engine and the rule contract in the root package; the document
//   model lives under jsonschema/.
// - Typed declaration helpers live under rules/, rule files under ruleset/,
//   and the CLI under cmd/ruleschema.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  v := rules.For[Person]()
//  rules.RuleFor(v, func(p *Person) *string { return &p.Name }).NotEmpty()
//  doc, err := ruleschema.Parse(v)
//  out, err := doc.MarshalIndent("", "  ")
//
