// Package serialize flattens a fuzzfile.FuzzFile back into bytes.
package serialize

import (
	"github.com/shft-fuzz/shft/pkg/fuzzfile"
	"github.com/shft-fuzz/shft/pkg/parse"
)

// Sink is the serializer's append-only byte destination.
type Sink interface {
	Append(b []byte)
}

// state guards against runaway expansion of shared ranges: mutators
// like DuplicateRootNode and NestDelim introduce nodes that reference
// the same range from more than one place. A range may still be
// serialized more than once in disjoint contexts, but it never re-enters
// itself on the active expansion path.
type state struct {
	seen []bool
}

func newState(n int) *state {
	return &state{seen: make([]bool, n)}
}

// expand serializes a range if it is not already on the active
// expansion path, recursing into its children and clearing the guard on
// exit.
func (s *state) expand(f *fuzzfile.FuzzFile, ref parse.RangeRef, out Sink) {
	if s.seen[ref] {
		return
	}
	s.seen[ref] = true
	for _, child := range f.Ranges()[ref] {
		serializeNode(f, s, child, out)
	}
	s.seen[ref] = false
}

func serializeNode(f *fuzzfile.FuzzFile, s *state, ref parse.NodeRef, out Sink) {
	n := f.Nodes()[ref]
	switch n.Kind {
	case parse.NodeToken:
		out.Append(n.Open)
	case parse.NodeDelim:
		out.Append(n.Open)
		s.expand(f, n.Range, out)
		out.Append(n.Close)
	case parse.NodeRange:
		s.expand(f, n.Range, out)
	}
}

// Serialize flattens f into out by walking its root sequence in order.
func Serialize(f *fuzzfile.FuzzFile, out Sink) {
	s := newState(len(f.Ranges()))
	for _, ref := range f.Root() {
		serializeNode(f, s, ref, out)
	}
}
