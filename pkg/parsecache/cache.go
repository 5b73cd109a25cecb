// Package parsecache snapshots a parse.ParsedFile to and from disk with
// CBOR, so the CLI's fuzz subcommand can skip re-parsing a large input
// across repeated invocations against the same file. This is a
// convenience layered on top of the core; the core never reads or
// writes a Snapshot, and a Snapshot is never required to produce a
// valid ParsedFile (a missing or stale cache simply means re-parsing).
package parsecache

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/shft-fuzz/shft/pkg/parse"
)

// Snapshot is a CBOR-encodable projection of a ParsedFile's three
// arenas, tagged with a hash of the input it was parsed from so a
// mismatched cache is detected instead of silently reused.
type Snapshot struct {
	InputHash [blake2b.Size256]byte
	Root      []parse.NodeRef
	Nodes     []snapshotNode
	Ranges    []parse.Range
}

// snapshotNode mirrors parse.Node field for field; parse.Node's fields
// are already exported and simple enough to encode directly, but a
// dedicated type keeps the on-disk format stable even if parse.Node's
// internal layout changes.
type snapshotNode struct {
	Kind  parse.NodeKind
	Open  []byte
	Close []byte
	Range parse.RangeRef
}

// Hash computes the cache key for buf.
func Hash(buf []byte) [blake2b.Size256]byte {
	return blake2b.Sum256(buf)
}

// Build captures p as a Snapshot tagged with buf's hash.
func Build(buf []byte, p *parse.ParsedFile) *Snapshot {
	nodes := make([]snapshotNode, len(p.Nodes))
	for i, n := range p.Nodes {
		nodes[i] = snapshotNode{Kind: n.Kind, Open: n.Open, Close: n.Close, Range: n.Range}
	}

	return &Snapshot{
		InputHash: Hash(buf),
		Root:      p.Root,
		Nodes:     nodes,
		Ranges:    p.Ranges,
	}
}

// ParsedFile reconstructs a parse.ParsedFile from the snapshot. The
// reconstructed ParsedFile's token and delimiter slices point into the
// snapshot's own decoded byte slices, not into any live input buffer;
// callers must not assume they alias the original file on disk.
func (s *Snapshot) ParsedFile() *parse.ParsedFile {
	nodes := make([]parse.Node, len(s.Nodes))
	for i, n := range s.Nodes {
		nodes[i] = parse.Node{Kind: n.Kind, Open: n.Open, Close: n.Close, Range: n.Range}
	}

	return &parse.ParsedFile{
		Root:   s.Root,
		Nodes:  nodes,
		Ranges: s.Ranges,
	}
}

// Save CBOR-encodes s to path.
func Save(path string, s *Snapshot) error {
	data, err := cbor.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding parse cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing parse cache %q: %w", path, err)
	}
	return nil
}

// Load reads and CBOR-decodes a Snapshot from path. It does not validate
// InputHash against anything; callers compare it against Hash(buf)
// themselves (Load returning successfully only means the file parsed as
// a well-formed Snapshot).
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parse cache %q: %w", path, err)
	}

	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding parse cache %q: %w", path, err)
	}
	return &s, nil
}

// Fresh reports whether the snapshot was built from exactly buf.
func (s *Snapshot) Fresh(buf []byte) bool {
	return s.InputHash == Hash(buf)
}
