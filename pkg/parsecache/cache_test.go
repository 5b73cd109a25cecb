package parsecache

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shft-fuzz/shft/pkg/grammar"
	"github.com/shft-fuzz/shft/pkg/parse"
)

func fixtureParsedFile() (buf []byte, p *parse.ParsedFile) {
	g := grammar.New([]grammar.GrammarDef{
		{Kind: grammar.KindDelim, Open: []byte("<<"), Close: []byte(">>")},
	}, [][]byte{[]byte(" ")})
	buf = []byte("1<<2<<3>>4>>5 6<<7>>8")
	return buf, parse.Parse(g, buf)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	buf, p := fixtureParsedFile()
	snap := Build(buf, p)

	path := filepath.Join(t.TempDir(), "cache.cbor")
	if err := Save(path, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff(snap, loaded); diff != "" {
		t.Errorf("round-tripped snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestFreshDetectsMatchingInput(t *testing.T) {
	buf, p := fixtureParsedFile()
	snap := Build(buf, p)

	if !snap.Fresh(buf) {
		t.Error("expected Fresh to report true for the exact input it was built from")
	}
	if snap.Fresh([]byte("a different input entirely")) {
		t.Error("expected Fresh to report false for a different input")
	}
}

func TestParsedFileReconstructsArenas(t *testing.T) {
	buf, p := fixtureParsedFile()
	snap := Build(buf, p)
	rebuilt := snap.ParsedFile()

	if diff := cmp.Diff(p.Root, rebuilt.Root); diff != "" {
		t.Errorf("Root mismatch (-want +got):\n%s", diff)
	}
	if len(rebuilt.Nodes) != len(p.Nodes) {
		t.Fatalf("Nodes length = %d, want %d", len(rebuilt.Nodes), len(p.Nodes))
	}
	for i := range p.Nodes {
		if diff := cmp.Diff(p.Nodes[i].Kind, rebuilt.Nodes[i].Kind); diff != "" {
			t.Errorf("node %d Kind mismatch (-want +got):\n%s", i, diff)
		}
		if string(p.Nodes[i].Open) != string(rebuilt.Nodes[i].Open) {
			t.Errorf("node %d Open mismatch: %q vs %q", i, p.Nodes[i].Open, rebuilt.Nodes[i].Open)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.cbor"))
	if err == nil {
		t.Fatal("expected an error loading a nonexistent cache file")
	}
}

func TestHashIsDeterministicAndInputSensitive(t *testing.T) {
	a := Hash([]byte("same input"))
	b := Hash([]byte("same input"))
	c := Hash([]byte("different input"))

	if a != b {
		t.Error("Hash should be deterministic for identical input")
	}
	if a == c {
		t.Error("Hash should differ for different input")
	}
}
