package grammar

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// configFormat mirrors the grammar configuration file's three named
// lists, exactly as spec.md §6 describes: delims (pairs of open/close
// strings), breaks (strings), whitespace (strings). Order within each
// list is preserved.
type configFormat struct {
	Delims     [][2]string `yaml:"delims"`
	Breaks     []string    `yaml:"breaks"`
	Whitespace []string    `yaml:"whitespace"`
}

// configSchema rejects malformed or misspelled top-level keys before the
// YAML is ever turned into a Grammar, so a typo surfaces as a precise
// schema error instead of a zero-value field silently doing nothing.
const configSchema = `{
	"type": "object",
	"properties": {
		"delims": {
			"type": "array",
			"items": {
				"type": "array",
				"items": {"type": "string"},
				"minItems": 2,
				"maxItems": 2
			}
		},
		"breaks": {
			"type": "array",
			"items": {"type": "string"}
		},
		"whitespace": {
			"type": "array",
			"items": {"type": "string"}
		}
	},
	"additionalProperties": false
}`

var knownTopLevelKeys = []string{"delims", "breaks", "whitespace"}

var compiledConfigSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("shft-config.json", strings.NewReader(configSchema)); err != nil {
		panic(fmt.Sprintf("grammar: invalid embedded config schema: %v", err))
	}
	return compiler.MustCompile("shft-config.json")
}()

// Load reads a grammar configuration file and builds a Grammar from it.
// The file is a YAML document with three named lists; see spec.md §6 for
// the external format. Load is the concrete external loader the core
// Grammar type never depends on directly.
func Load(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grammar config %q: %w", path, err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding grammar config %q: %w", path, err)
	}

	if err := compiledConfigSchema.Validate(toJSONCompatible(raw)); err != nil {
		return nil, fmt.Errorf("validating grammar config %q: %w", path, annotateUnknownKey(raw, err))
	}

	var cfg configFormat
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding grammar config %q: %w", path, err)
	}

	return FromConfig(cfg.Delims, cfg.Breaks, cfg.Whitespace), nil
}

// FromConfig builds a Grammar from the three decoded lists, composing
// them as spec.md §4.1 requires: delimiters first, then breakers, in the
// order supplied; whitespace kept separate.
func FromConfig(delims [][2]string, breaks []string, whitespace []string) *Grammar {
	defs := make([]GrammarDef, 0, len(delims)+len(breaks))
	for _, pair := range delims {
		defs = append(defs, GrammarDef{
			Kind:  KindDelim,
			Open:  []byte(pair[0]),
			Close: []byte(pair[1]),
		})
	}
	for _, pattern := range breaks {
		defs = append(defs, GrammarDef{
			Kind: KindBreaker,
			Open: []byte(pattern),
		})
	}

	ws := make([][]byte, 0, len(whitespace))
	for _, pattern := range whitespace {
		ws = append(ws, []byte(pattern))
	}

	return New(defs, ws)
}

// toJSONCompatible converts a value decoded by yaml.v3 into the plain
// map[string]any / []any / scalar shape jsonschema.Validate expects.
// yaml.v3 already decodes mapping nodes as map[string]any, so this
// returns v unchanged; a root document that isn't a mapping is passed
// through as is and rejected by the schema's "type": "object" check.
func toJSONCompatible(v any) any {
	return v
}

// annotateUnknownKey adds a "did you mean" hint when the schema rejected
// an unrecognized top-level key, using a fuzzy match against the three
// known list names.
func annotateUnknownKey(raw any, cause error) error {
	m, ok := raw.(map[string]any)
	if !ok {
		return cause
	}

	var unknown []string
	for key := range m {
		known := false
		for _, k := range knownTopLevelKeys {
			if key == k {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	if len(unknown) == 0 {
		return cause
	}

	var hints []string
	for _, key := range unknown {
		matches := fuzzy.RankFindFold(key, knownTopLevelKeys)
		if len(matches) == 0 {
			continue
		}
		sort.Sort(matches)
		hints = append(hints, fmt.Sprintf("%q (did you mean %q?)", key, matches[0].Target))
	}

	if len(hints) == 0 {
		return cause
	}
	return fmt.Errorf("%w; unknown key %s", cause, strings.Join(hints, ", "))
}
