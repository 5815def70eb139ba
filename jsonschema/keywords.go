package jsonschema

// SchemaURI is the $schema value of every generated document.
const SchemaURI = "https://json-schema.org/draft/2020-12/schema"

// Keywords emitted by the generator.
const (
	KeywordSchema     = "$schema"
	KeywordType       = "type"
	KeywordProperties = "properties"
	KeywordPattern    = "pattern"
	KeywordMinLength  = "minLength"
	KeywordMinItems   = "minItems"
)

// JSON type names produced by type inference. TypeAny is not a draft 2020-12
// type; it marks a member whose type could not be mapped.
const (
	TypeString = "string"
	TypeNumber = "number"
	TypeObject = "object"
	TypeArray  = "array"
	TypeAny    = "any"
)
