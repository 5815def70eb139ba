package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	j "github.com/goccy/go-json"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	rs "github.com/reoring/ruleschema"
	"github.com/reoring/ruleschema/i18n"
	js "github.com/reoring/ruleschema/jsonschema"
	"github.com/reoring/ruleschema/ruleset"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	i18n.SetLanguage(os.Getenv("RULESCHEMA_LANG"))
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "compile":
		return compileCmd(args[1:], stdout, stderr)
	case "validate":
		return validateCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "ruleschema CLI\n\nUsage:\n  ruleschema compile -f rules.yaml [-o schema.json] [--format json|yaml] [-v]\n  ruleschema validate -f rules.yaml -d data.json [-v]\n\nEnvironment:\n  RULESCHEMA_LANG=ja  localize issue messages")
}

func compileCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("compile", stderr)
	var in, out, format string
	var verbose bool
	fs.StringVarP(&in, "file", "f", "", "rule file (.yaml, .yml or .json)")
	fs.StringVarP(&out, "output", "o", "", "output filename (default stdout)")
	fs.StringVar(&format, "format", "", "output format: json or yaml (default from -o extension, else json)")
	fs.BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if in == "" {
		fs.Usage()
		return exitUsage
	}
	if format == "" {
		format = "json"
		if ext := filepath.Ext(out); ext == ".yaml" || ext == ".yml" {
			format = "yaml"
		}
	}
	if format != "json" && format != "yaml" {
		fmt.Fprintf(stderr, "unknown --format %q\n", format)
		return exitUsage
	}

	log := newLogger(verbose)
	defer func() { _ = log.Sync() }()

	doc, err := buildDocument(in, log)
	if err != nil {
		return fail(stderr, "compile %s: %v", in, err)
	}
	data, err := encode(doc, format)
	if err != nil {
		return fail(stderr, "encode: %v", err)
	}
	if out == "" {
		_, _ = stdout.Write(data)
		return exitOK
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fail(stderr, "creating output dir: %v", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fail(stderr, "writing output: %v", err)
	}
	log.Debug("wrote schema", zap.String("path", out), zap.String("format", format))
	return exitOK
}

// validateCmd compiles the rule file and checks a JSON data file against the
// resulting schema.
func validateCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("validate", stderr)
	var in, dataPath string
	var verbose bool
	fs.StringVarP(&in, "file", "f", "", "rule file (.yaml, .yml or .json)")
	fs.StringVarP(&dataPath, "data", "d", "", "JSON document to validate")
	fs.BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if in == "" || dataPath == "" {
		fs.Usage()
		return exitUsage
	}

	log := newLogger(verbose)
	defer func() { _ = log.Sync() }()

	doc, err := buildDocument(in, log)
	if err != nil {
		return fail(stderr, "compile %s: %v", in, err)
	}
	sch, err := doc.Compile()
	if err != nil {
		return fail(stderr, "%v", err)
	}
	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return fail(stderr, "reading data: %v", err)
	}
	var v any
	if err := j.Unmarshal(raw, &v); err != nil {
		return fail(stderr, "decoding %s: %v", dataPath, err)
	}
	if err := sch.Validate(v); err != nil {
		return fail(stderr, "%s: %v", dataPath, err)
	}
	log.Debug("document is valid", zap.String("path", dataPath))
	fmt.Fprintf(stdout, "%s: ok\n", dataPath)
	return exitOK
}

// newFlagSet returns a subcommand flag set writing usage to stderr. pflag
// leaves Usage nil, so it is set here.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage of %s:\n", name)
		fs.PrintDefaults()
	}
	return fs
}

func buildDocument(path string, log *zap.Logger) (*js.Document, error) {
	set, err := ruleset.Load(path)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded rule file", zap.String("path", path), zap.Int("rules", len(set.Rules())))
	return rs.Parse(set, rs.WithLogger(log))
}

func encode(doc *js.Document, format string) ([]byte, error) {
	if format == "yaml" {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	data, err := doc.MarshalIndent("", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func fail(w io.Writer, format string, a ...any) int {
	red := color.New(color.FgRed)
	red.Fprintf(w, format+"\n", a...)
	if iss, ok := rs.AsIssues(unwrapLast(a)); ok {
		for _, it := range iss {
			fmt.Fprintf(w, "  %s: %s\n", it.Path, it.Message)
		}
	}
	return exitFailure
}

func unwrapLast(a []any) error {
	if len(a) == 0 {
		return nil
	}
	err, _ := a[len(a)-1].(error)
	return err
}
