package ruleschema

// RuleSource yields the validation rules of a validator. A source with no
// rules converts to the minimal document.
type RuleSource interface {
	Rules() []Rule
}

// Rule targets one property with an ordered list of components.
type Rule struct {
	Property   string // Non-empty; also the key under "properties".
	Member     Member
	Components []Component
}

// MemberKind classifies the member a rule targets.
type MemberKind int

const (
	MemberOther    MemberKind = iota // Computed or otherwise untyped member.
	MemberProperty                   // Simple typed property; the only kind whose type is inferred.
	MemberField
	MemberMethod
)

func (k MemberKind) String() string {
	switch k {
	case MemberProperty:
		return "property"
	case MemberField:
		return "field"
	case MemberMethod:
		return "method"
	default:
		return "other"
	}
}

// Member describes the rule target for type inference. Type is never
// serialized.
type Member struct {
	Name string
	Kind MemberKind
	Type TypeDescriptor
}

// Rules is a static RuleSource.
type Rules []Rule

func (r Rules) Rules() []Rule { return r }
