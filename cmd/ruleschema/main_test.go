package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "name": {
      "type": "string",
      "minLength": 1,
      "pattern": "^[a-z]+$"
    },
    "age": {
      "type": [
        "number"
      ]
    },
    "tags": {
      "type": "array",
      "minItems": 1
    },
    "displayName": {
      "type": [
        "string"
      ]
    }
  }
}
`

func TestRun_Usage(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, exitUsage, run(nil, &out, &errOut))
	assert.Contains(t, errOut.String(), "Usage:")
	assert.Equal(t, exitUsage, run([]string{"bogus"}, &out, &errOut))
	assert.Equal(t, exitUsage, run([]string{"compile"}, &out, &errOut))
	assert.Equal(t, exitUsage, run([]string{"compile", "-f", "testdata/person.yaml", "--format", "toml"}, &out, &errOut))
	assert.Equal(t, exitUsage, run([]string{"validate", "-f", "testdata/person.yaml"}, &out, &errOut))
}

func TestRun_MissingRequiredFlagPrintsUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NotPanics(t, func() {
		assert.Equal(t, exitUsage, run([]string{"compile"}, &out, &errOut))
	})
	assert.Contains(t, errOut.String(), "Usage of compile:")
	assert.Contains(t, errOut.String(), "--file")

	errOut.Reset()
	require.NotPanics(t, func() {
		assert.Equal(t, exitUsage, run([]string{"validate", "-f", "testdata/person.yaml"}, &out, &errOut))
	})
	assert.Contains(t, errOut.String(), "Usage of validate:")
	assert.Contains(t, errOut.String(), "--data")
	assert.Empty(t, out.String())
}

func TestCompile_Stdout(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"compile", "-f", "testdata/person.yaml"}, &out, &errOut)
	require.Equal(t, exitOK, code, errOut.String())
	assert.Equal(t, personJSON, out.String())
}

func TestCompile_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "schema.yaml")
	var out, errOut bytes.Buffer
	code := run([]string{"compile", "-f", "testdata/person.yaml", "-o", target, "-v"}, &out, &errOut)
	require.Equal(t, exitOK, code, errOut.String())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "$schema: https://json-schema.org/draft/2020-12/schema\ntype: object\nproperties:\n  name:\n    type: string\n")
	assert.Empty(t, out.String())
}

func TestCompile_MissingExpression(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"compile", "-f", "testdata/missing_expression.yaml"}, &out, &errOut)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut.String(), "missing_expression at /rules/0/components/0")
	assert.Contains(t, errOut.String(), "/rules/0/components/0: pattern component has no expression (code)")
	assert.Empty(t, out.String())
}

func TestValidate(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"validate", "-f", "testdata/person.yaml", "-d", "testdata/valid.json"}, &out, &errOut)
	require.Equal(t, exitOK, code, errOut.String())
	assert.Equal(t, "testdata/valid.json: ok\n", out.String())

	out.Reset()
	errOut.Reset()
	code = run([]string{"validate", "-f", "testdata/person.yaml", "-d", "testdata/invalid.json"}, &out, &errOut)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut.String(), "testdata/invalid.json")
}
