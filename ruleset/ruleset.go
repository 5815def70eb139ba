package ruleset

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	rs "github.com/reoring/ruleschema"
)

// Format selects the encoding of a rule file.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// FormatOf picks the format from a file extension (.yaml, .yml, .json).
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, rs.Issues{rs.Root().Issue(rs.CodeUnknownFormat, nil, "detail", path)}
}

// File is the on-disk shape of a rule set.
type File struct {
	Rules []RuleSpec `yaml:"rules" json:"rules"`
}

// RuleSpec declares one rule.
type RuleSpec struct {
	Property   string          `yaml:"property" json:"property"`
	Member     string          `yaml:"member,omitempty" json:"member,omitempty"`
	Type       string          `yaml:"type,omitempty" json:"type,omitempty"`
	Components []ComponentSpec `yaml:"components" json:"components"`
}

// ComponentSpec declares one component. Expression is only read for
// pattern components; nil means the key was absent.
type ComponentSpec struct {
	Kind       string  `yaml:"kind" json:"kind"`
	Expression *string `yaml:"expression,omitempty" json:"expression,omitempty"`
}

// Set is a decoded rule set. It implements ruleschema.RuleSource.
type Set struct {
	rules []rs.Rule
}

// Rules implements ruleschema.RuleSource.
func (s *Set) Rules() []rs.Rule {
	if s == nil {
		return nil
	}
	return s.rules
}

// Load reads and decodes the rule file at path.
func Load(path string) (*Set, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data), format)
}

// Decode reads a rule set in the given format. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (*Set, error) {
	var f File
	var err error
	switch format {
	case FormatJSON:
		dec := j.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&f)
		if errors.Is(err, io.EOF) {
			// empty document: no rules
			err = nil
		}
	}
	if err != nil {
		return nil, rs.Issues{rs.Root().Issue(rs.CodeParseError, err, "detail", err.Error())}
	}
	return Build(f)
}

// Build converts a File into a Set.
func Build(f File) (*Set, error) {
	s := &Set{rules: make([]rs.Rule, 0, len(f.Rules))}
	var iss rs.Issues
	for i, spec := range f.Rules {
		kind, ok := parseMemberKind(spec.Member)
		if !ok {
			iss = rs.AppendIssues(iss, rs.RulePath(i).Field("member").Issue(rs.CodeParseError, nil, "detail", "unknown member kind "+spec.Member))
			continue
		}
		r := rs.Rule{
			Property: spec.Property,
			Member:   rs.Member{Name: spec.Property, Kind: kind},
		}
		if kind == rs.MemberProperty {
			r.Member.Type = ParseType(spec.Type)
		}
		for _, c := range spec.Components {
			r.Components = append(r.Components, toComponent(c))
		}
		s.rules = append(s.rules, r)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

func parseMemberKind(s string) (rs.MemberKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "property":
		return rs.MemberProperty, true
	case "field":
		return rs.MemberField, true
	case "method":
		return rs.MemberMethod, true
	case "other":
		return rs.MemberOther, true
	}
	return 0, false
}

func toComponent(c ComponentSpec) rs.Component {
	switch rs.ParseKind(strings.TrimSpace(c.Kind)) {
	case rs.KindNotNull:
		return rs.NotNull{}
	case rs.KindNotEmpty:
		return rs.NotEmpty{}
	case rs.KindPattern:
		if c.Expression == nil {
			return rs.Pattern{}
		}
		return rs.Matches(*c.Expression)
	default:
		return rs.Unknown{Name: c.Kind}
	}
}

// ParseType parses a Go-style type expression: string, int32, object (or
// any), *T for an optional T and []T for a sequence. Other names describe an
// unmapped type; the empty string describes nothing at all.
func ParseType(expr string) rs.TypeDescriptor {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return nil
	case strings.HasPrefix(expr, "*"):
		return rs.Optional(ParseType(expr[1:]))
	case strings.HasPrefix(expr, "[]"):
		return rs.Primitive(rs.CategorySequence)
	}
	switch expr {
	case "string":
		return rs.Primitive(rs.CategoryText)
	case "int32":
		return rs.Primitive(rs.CategoryInt32)
	case "object", "any", "interface{}":
		return rs.Primitive(rs.CategoryObject)
	}
	return rs.Primitive(rs.CategoryOther)
}
