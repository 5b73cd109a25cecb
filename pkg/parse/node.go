// Package parse turns a raw byte buffer and a Grammar into a ParsedFile:
// a flat arena of nodes, an arena of ranges, and a root sequence. The
// scan is single-pass, left-to-right, and never fails — any byte buffer
// produces a ParsedFile whose serialization reproduces it exactly.
package parse

// NodeRef indexes into a ParsedFile's node arena.
type NodeRef int

// RangeRef indexes into a ParsedFile's range arena.
type RangeRef int

// NodeKind distinguishes the three Node shapes.
type NodeKind int

const (
	// NodeDelim is an open pattern, a child range, and a close pattern.
	NodeDelim NodeKind = iota
	// NodeRange is a purely structural node standing in for a range
	// with no surrounding delimiters.
	NodeRange
	// NodeToken is a literal leaf that serializes verbatim.
	NodeToken
)

// Node is a tagged variant: a Delim, a Range, or a Token. Only the
// fields relevant to Kind are meaningful.
type Node struct {
	Kind  NodeKind
	Open  []byte   // Delim: open pattern. Token: the literal bytes.
	Close []byte   // Delim: close pattern.
	Range RangeRef // Delim, Range: child range index.
}

// Range is an ordered sequence of NodeRefs, the child content of a Delim
// or Range node. Multiple nodes may reference the same Range; that
// sharing is intentional (see spec's design notes on mutators) and must
// be detected at serialization time rather than prevented here.
type Range []NodeRef

// ParsedFile is the arena-backed tree produced by Parse. It is read-only
// after construction; FuzzFile provides the mutable copy-on-write view
// used by the fuzzer.
type ParsedFile struct {
	Root   []NodeRef
	Nodes  []Node
	Ranges []Range
}
