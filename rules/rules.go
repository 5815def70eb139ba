package rules

import (
	"reflect"

	rs "github.com/reoring/ruleschema"
)

// Validator collects rules for the properties of T. The zero value is not
// usable; call For. A nil *Validator has no rules.
type Validator[T any] struct {
	rules []*Builder
}

// For returns an empty Validator for T.
func For[T any]() *Validator[T] { return &Validator[T]{} }

// Rules implements ruleschema.RuleSource. Rules are returned in declaration
// order; each call returns fresh slices.
func (v *Validator[T]) Rules() []rs.Rule {
	if v == nil || len(v.rules) == 0 {
		return nil
	}
	out := make([]rs.Rule, 0, len(v.rules))
	for _, b := range v.rules {
		r := b.rule
		r.Components = append([]rs.Component(nil), b.rule.Components...)
		out = append(out, r)
	}
	return out
}

// RuleFor starts a rule for the field of T that selector points at, e.g.:
//
//	rules.RuleFor(v, func(p *Person) *string { return &p.Name }).NotEmpty()
//
// The property name comes from ruleschema.ResolveStructKey. Every call starts
// a new rule, even for a field that already has one.
func RuleFor[T any, F any](v *Validator[T], selector func(*T) *F) *Builder {
	sf := rs.FieldOf(selector)
	return v.add(rs.Rule{
		Property: rs.ResolveStructKey(sf),
		Member:   rs.Member{Name: sf.Name, Kind: rs.MemberProperty, Type: rs.TypeOf(sf.Type)},
	})
}

// RuleForMember starts a rule for a member of T looked up by name. A method
// or unknown member has no inferable type, so type-dependent components treat
// it as a string.
func (v *Validator[T]) RuleForMember(name string) *Builder {
	return v.add(rs.Rule{
		Property: name,
		Member:   rs.MemberOf(reflect.TypeOf((*T)(nil)).Elem(), name),
	})
}

func (v *Validator[T]) add(r rs.Rule) *Builder {
	b := &Builder{rule: r}
	v.rules = append(v.rules, b)
	return b
}

// Builder appends components to one rule.
type Builder struct {
	rule rs.Rule
}

// NotNull requires a non-null value.
func (b *Builder) NotNull() *Builder { return b.With(rs.NotNull{}) }

// NotEmpty requires a non-empty value.
func (b *Builder) NotEmpty() *Builder { return b.With(rs.NotEmpty{}) }

// Matches requires the value to match expr.
func (b *Builder) Matches(expr string) *Builder { return b.With(rs.Matches(expr)) }

// With appends an arbitrary component, including ruleschema.Unknown.
func (b *Builder) With(c rs.Component) *Builder {
	b.rule.Components = append(b.rule.Components, c)
	return b
}

// WithName overrides the property name of the rule.
func (b *Builder) WithName(name string) *Builder {
	b.rule.Property = name
	return b
}
