package ruleschema

// Kind identifies a constraint component.
type Kind int

const (
	KindUnknown  Kind = iota // Not understood by the builder; ignored.
	KindNotNull              // Value must be present and non-null.
	KindNotEmpty             // Value must be non-empty (strings, sequences).
	KindPattern              // Value must match a regular expression.
)

var kindNames = [...]string{
	KindUnknown:  "unknown",
	KindNotNull:  "not-null",
	KindNotEmpty: "not-empty",
	KindPattern:  "pattern",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// ParseKind maps a kind tag such as "not-null" to its Kind. Unrecognized tags
// map to KindUnknown.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if Kind(k) != KindUnknown && name == s {
			return Kind(k)
		}
	}
	return KindUnknown
}

// Component is one constraint within a Rule. The set of implementations is
// closed: NotNull, NotEmpty, Pattern and Unknown.
type Component interface {
	Kind() Kind
	component()
}

// NotNull requires the member to be present and non-null.
type NotNull struct{}

func (NotNull) Kind() Kind { return KindNotNull }
func (NotNull) component() {}

// NotEmpty requires the member to be non-empty.
type NotEmpty struct{}

func (NotEmpty) Kind() Kind { return KindNotEmpty }
func (NotEmpty) component() {}

// Pattern requires the member to match a regular expression. The zero value
// carries no expression; use Matches to build one.
type Pattern struct {
	expr string
	set  bool
}

// Matches returns a Pattern for the given expression text.
func Matches(expr string) Pattern { return Pattern{expr: expr, set: true} }

func (Pattern) Kind() Kind { return KindPattern }
func (Pattern) component() {}

// Expression returns the expression text and whether one was supplied.
func (p Pattern) Expression() (string, bool) { return p.expr, p.set }

// Unknown is a component the builder does not understand. Name keeps the
// original tag for diagnostics.
type Unknown struct {
	Name string
}

func (Unknown) Kind() Kind { return KindUnknown }
func (Unknown) component() {}
