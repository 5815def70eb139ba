package ruleschema

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	js "github.com/reoring/ruleschema/jsonschema"
)

// Builder is the rule-to-schema engine. See New.
type Builder struct {
	log      *zap.Logger
	handlers map[Kind]componentHandler
}

// componentHandler applies one component to the fragment of its property.
// code is the issue code reported when apply fails.
type componentHandler struct {
	apply func(c Component, m Member, f *js.Fragment) error
	code  string
}

// expressioner is implemented by components that carry expression text.
type expressioner interface {
	Expression() (string, bool)
}

var errNoExpression = fmt.Errorf("%w: pattern component has no expression", ErrMalformedRule)

func defaultHandlers() map[Kind]componentHandler {
	return map[Kind]componentHandler{
		KindNotNull:  {apply: applyNotNull, code: CodeInvalidRule},
		KindPattern:  {apply: applyPattern, code: CodeMissingExpression},
		KindNotEmpty: {apply: applyNotEmpty, code: CodeInvalidRule},
	}
}

// Parse implements Parser.
func (b *Builder) Parse(src RuleSource) (*js.Document, error) {
	doc := js.NewDocument()
	if src == nil {
		b.log.Debug("no rule source; returning minimal schema")
		return doc, nil
	}
	rules := src.Rules()
	if len(rules) == 0 {
		b.log.Debug("rule source has no rules; returning minimal schema")
		return doc, nil
	}
	for i, r := range rules {
		if err := b.addRule(doc, i, r); err != nil {
			return nil, err
		}
	}
	b.log.Debug("schema generated", zap.Int("rules", len(rules)), zap.Strings("properties", doc.PropertyNames()))
	return doc, nil
}

func (b *Builder) addRule(doc *js.Document, i int, r Rule) error {
	if r.Property == "" {
		return Issues{RulePath(i).Field("property").Issue(CodeInvalidRule, ErrMalformedRule)}
	}
	f, created := doc.PropertyFor(r.Property)
	b.log.Debug("processing rule",
		zap.Int("rule", i),
		zap.String("property", r.Property),
		zap.Bool("newProperty", created),
		zap.Int("components", len(r.Components)),
	)
	for j, c := range r.Components {
		if isNilComponent(c) {
			continue
		}
		h, ok := b.handlers[c.Kind()]
		if !ok {
			b.log.Debug("ignoring unrecognized component",
				zap.String("property", r.Property),
				zap.Stringer("kind", c.Kind()),
				zap.Any("component", c),
			)
			continue
		}
		if err := h.apply(c, r.Member, f); err != nil {
			return Issues{RulePath(i).Field("components").Index(j).Issue(h.code, err, "property", r.Property)}
		}
	}
	return nil
}

// isNilComponent reports whether c is nil or a nil pointer to a variant.
func isNilComponent(c Component) bool {
	if c == nil {
		return true
	}
	rv := reflect.ValueOf(c)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// applyNotNull replaces type with the single-element list form, which means
// "exactly this type, never null". Removing first moves type to the end.
func applyNotNull(_ Component, m Member, f *js.Fragment) error {
	f.Delete(js.KeywordType)
	f.Set(js.KeywordType, []string{MemberTypeName(m)})
	return nil
}

func applyPattern(c Component, _ Member, f *js.Fragment) error {
	p, ok := c.(expressioner)
	if !ok {
		return errNoExpression
	}
	expr, ok := p.Expression()
	if !ok {
		return errNoExpression
	}
	f.Set(js.KeywordType, js.TypeString)
	f.Set(js.KeywordPattern, expr)
	return nil
}

func applyNotEmpty(_ Component, m Member, f *js.Fragment) error {
	name := MemberTypeName(m)
	switch name {
	case js.TypeString:
		f.Set(js.KeywordType, js.TypeString)
		f.Set(js.KeywordMinLength, 1)
	case js.TypeArray:
		f.Set(js.KeywordType, js.TypeArray)
		f.Set(js.KeywordMinItems, 1)
	default:
		f.Set(js.KeywordType, name)
	}
	return nil
}
