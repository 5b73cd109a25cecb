// Package grammar describes a target file format as paired delimiters,
// breakers, and whitespace patterns. A Grammar is immutable once built and
// is read by the parser for the life of a run.
package grammar

import "bytes"

// Kind distinguishes the two shapes a GrammarDef can take.
type Kind int

const (
	// KindDelim is a paired (open, close) rule.
	KindDelim Kind = iota
	// KindBreaker is a single pattern that forces a token boundary.
	KindBreaker
)

// GrammarDef is one rule in the grammar's ordered rule list.
type GrammarDef struct {
	Kind  Kind
	Open  []byte // delim open pattern, or the breaker pattern
	Close []byte // delim close pattern; unused for breakers
}

// DelimPair is an (open, close) pair, as returned by Grammar.Delims.
type DelimPair struct {
	Open  []byte
	Close []byte
}

// Equal reports whether two delim pairs match byte-for-byte on both
// patterns.
func (d DelimPair) Equal(other DelimPair) bool {
	return bytes.Equal(d.Open, other.Open) && bytes.Equal(d.Close, other.Close)
}

// Grammar is an immutable description of a target file format's
// structural patterns. Order within Defs is significant: the parser
// tries the first matching rule at a given position.
type Grammar struct {
	Defs       []GrammarDef
	Whitespace [][]byte
}

// New composes defs and whitespace into a Grammar. defs should already be
// ordered delimiters-first, then breakers, in the order the caller wants
// them tried.
func New(defs []GrammarDef, whitespace [][]byte) *Grammar {
	return &Grammar{
		Defs:       defs,
		Whitespace: whitespace,
	}
}

// Delims returns the grammar's delimiter pairs, in definition order, for
// use by mutators that need to pick a replacement delimiter (RandDelim).
func (g *Grammar) Delims() []DelimPair {
	var out []DelimPair
	for _, def := range g.Defs {
		if def.Kind == KindDelim {
			out = append(out, DelimPair{Open: def.Open, Close: def.Close})
		}
	}
	return out
}
