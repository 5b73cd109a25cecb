package grammar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "grammar.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
delims:
  - ["<<", ">>"]
breaks:
  - ";"
whitespace:
  - " "
  - "\r\n"
`)

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(g.Defs) != 2 {
		t.Fatalf("expected 2 defs (1 delim + 1 breaker), got %d", len(g.Defs))
	}
	if g.Defs[0].Kind != KindDelim {
		t.Errorf("expected delims before breakers, got kind %v first", g.Defs[0].Kind)
	}
	if len(g.Whitespace) != 2 {
		t.Fatalf("expected 2 whitespace patterns, got %d", len(g.Whitespace))
	}
}

func TestLoadUnknownKeySuggestsClosestMatch(t *testing.T) {
	path := writeConfig(t, `
delim:
  - ["<<", ">>"]
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for the misspelled 'delim' key")
	}
	if !strings.Contains(err.Error(), "delims") {
		t.Errorf("expected suggestion mentioning 'delims', got: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "delims: [")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
