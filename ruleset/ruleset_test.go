package ruleset_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rs "github.com/reoring/ruleschema"
	"github.com/reoring/ruleschema/rules"
	"github.com/reoring/ruleschema/ruleset"
)

const personSchema = `{"$schema":"https://json-schema.org/draft/2020-12/schema","type":"object","properties":{` +
	`"name":{"type":"string","minLength":1,"pattern":"^[\\w-\\.]+$"},` +
	`"age":{"type":["number"]},` +
	`"tags":{"type":"array","minItems":1},` +
	`"displayName":{"type":["string"]}}}`

func compile(t *testing.T, src rs.RuleSource) string {
	t.Helper()
	doc, err := rs.Parse(src)
	require.NoError(t, err)
	b, err := doc.MarshalJSON()
	require.NoError(t, err)
	return string(b)
}

func TestLoad_YAMLAndJSONAgree(t *testing.T) {
	for _, path := range []string{"testdata/person.yaml", "testdata/person.json"} {
		t.Run(path, func(t *testing.T) {
			set, err := ruleset.Load(path)
			require.NoError(t, err)
			require.Len(t, set.Rules(), 4)
			assert.Equal(t, personSchema, compile(t, set))
		})
	}
}

type person struct {
	Name string   `json:"name"`
	Age  *int32   `json:"age"`
	Tags []string `json:"tags"`
}

func (p person) DisplayName() string { return p.Name }

func TestLoad_MatchesTypedDeclaration(t *testing.T) {
	v := rules.For[person]()
	rules.RuleFor(v, func(p *person) *string { return &p.Name }).NotEmpty().Matches(`^[\w-\.]+$`)
	rules.RuleFor(v, func(p *person) **int32 { return &p.Age }).NotNull()
	rules.RuleFor(v, func(p *person) *[]string { return &p.Tags }).NotEmpty()
	v.RuleForMember("DisplayName").NotNull().With(rs.Unknown{Name: "credit-card"}).WithName("displayName")

	set, err := ruleset.Load("testdata/person.yaml")
	require.NoError(t, err)
	assert.Equal(t, compile(t, v), compile(t, set))
}

func TestDecode_EmptyYAMLHasNoRules(t *testing.T) {
	set, err := ruleset.Decode(strings.NewReader(""), ruleset.FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, set.Rules())
	assert.Equal(t, `{"$schema":"https://json-schema.org/draft/2020-12/schema","type":"object"}`, compile(t, set))

	var nilSet *ruleset.Set
	assert.Nil(t, nilSet.Rules())
}

func TestDecode_PatternWithoutExpression(t *testing.T) {
	set, err := ruleset.Decode(strings.NewReader(`{"rules":[{"property":"code","components":[{"kind":"pattern"}]}]}`), ruleset.FormatJSON)
	require.NoError(t, err)

	_, err = rs.Parse(set)
	require.Error(t, err)
	assert.ErrorIs(t, err, rs.ErrMalformedRule)

	// An explicit empty expression is still an expression.
	set, err = ruleset.Decode(strings.NewReader("rules:\n  - property: code\n    components:\n      - kind: pattern\n        expression: ''\n"), ruleset.FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, compile(t, set), `"code":{"type":"string","pattern":""}`)
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		format ruleset.Format
		path   string
	}{
		{"unknown yaml key", "rules:\n  - property: a\n    required: true\n", ruleset.FormatYAML, "/"},
		{"unknown json key", `{"rules":[{"property":"a","nullable":true}]}`, ruleset.FormatJSON, "/"},
		{"broken json", `{"rules":[`, ruleset.FormatJSON, "/"},
		{"bad member", "rules:\n  - property: a\n    member: event\n", ruleset.FormatYAML, "/rules/0/member"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ruleset.Decode(strings.NewReader(tc.input), tc.format)
			require.Error(t, err)
			iss, ok := rs.AsIssues(err)
			require.True(t, ok)
			assert.Equal(t, rs.CodeParseError, iss[0].Code)
			assert.Equal(t, tc.path, iss[0].Path)
		})
	}
}

func TestFormatOf(t *testing.T) {
	f, err := ruleset.FormatOf("a/b.YML")
	require.NoError(t, err)
	assert.Equal(t, ruleset.FormatYAML, f)

	f, err = ruleset.FormatOf("rules.json")
	require.NoError(t, err)
	assert.Equal(t, "json", f.String())

	_, err = ruleset.FormatOf("rules.toml")
	iss, ok := rs.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, rs.CodeUnknownFormat, iss[0].Code)

	_, err = ruleset.Load("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	cases := map[string]string{
		"string":         "string",
		" int32 ":        "number",
		"*int32":         "number",
		"**string":       "string",
		"object":         "object",
		"any":            "object",
		"interface{}":    "object",
		"[]string":       "array",
		"*[]int":         "array",
		"int":            "any",
		"map[string]int": "any",
		"":               "any",
	}
	for expr, want := range cases {
		assert.Equal(t, want, rs.TypeName(ruleset.ParseType(expr)), expr)
	}
}
