package parse

import (
	"bytes"

	"github.com/shft-fuzz/shft/pkg/grammar"
)

type eventKind int

const (
	eventBreak eventKind = iota
	eventTokenizer
	eventDelimStart
	eventDelimEnd
)

// event is the result of scanning forward from the start of remainder
// for the next grammar-defined boundary. Slices reference buf (or, for
// a DelimStart's close pattern, the Grammar) and are never copied.
type event struct {
	kind    eventKind
	prefix  []byte // bytes before the match; becomes a Token if non-empty
	pattern []byte // the matched pattern itself
	close   []byte // DelimStart only: the expected close pattern
	rest    []byte // remainder of buf after the match
}

// scanNext finds the next event in remainder: the first grammar rule
// that matches at the earliest position, trying rules in grammar order
// at each position (delimiters, then whitespace, then breakers), and
// suppressing breaker matches at position 0 to guarantee forward
// progress. If nothing matches before end of buffer, the whole of
// remainder is a Break token.
func scanNext(g *grammar.Grammar, remainder []byte) event {
	for i := 0; i < len(remainder); i++ {
		rest := remainder[i:]

		for _, def := range g.Defs {
			if def.Kind != grammar.KindDelim {
				continue
			}
			if bytes.HasPrefix(rest, def.Open) {
				return event{
					kind:    eventDelimStart,
					prefix:  remainder[:i],
					pattern: rest[:len(def.Open)],
					close:   def.Close,
					rest:    rest[len(def.Open):],
				}
			}
			if bytes.HasPrefix(rest, def.Close) {
				return event{
					kind:    eventDelimEnd,
					prefix:  remainder[:i],
					pattern: rest[:len(def.Close)],
					rest:    rest[len(def.Close):],
				}
			}
		}

		for _, ws := range g.Whitespace {
			if bytes.HasPrefix(rest, ws) {
				return event{
					kind:    eventTokenizer,
					prefix:  remainder[:i],
					pattern: rest[:len(ws)],
					rest:    rest[len(ws):],
				}
			}
		}

		if i == 0 {
			continue
		}
		for _, def := range g.Defs {
			if def.Kind != grammar.KindBreaker {
				continue
			}
			if bytes.HasPrefix(rest, def.Open) {
				return event{
					kind:   eventBreak,
					prefix: remainder[:i],
					rest:   rest,
				}
			}
		}
	}

	return event{kind: eventBreak, prefix: remainder, rest: remainder[len(remainder):]}
}

// openFrame is an unterminated delimiter open on the builder's stack.
type openFrame struct {
	open  []byte
	close []byte
	nodes []NodeRef
}

// treeBuilder accumulates nodes and ranges while the scanner walks the
// buffer, tracking a stack of open delimiter frames.
type treeBuilder struct {
	root   []NodeRef
	nodes  []Node
	ranges []Range
	stack  []openFrame
}

func (b *treeBuilder) attach(ref NodeRef) {
	if len(b.stack) == 0 {
		b.root = append(b.root, ref)
		return
	}
	top := len(b.stack) - 1
	b.stack[top].nodes = append(b.stack[top].nodes, ref)
}

func (b *treeBuilder) pushNode(n Node) NodeRef {
	ref := NodeRef(len(b.nodes))
	b.nodes = append(b.nodes, n)
	return ref
}

func (b *treeBuilder) pushToken(buf []byte) {
	if len(buf) == 0 {
		return
	}
	b.attach(b.pushNode(Node{Kind: NodeToken, Open: buf}))
}

func (b *treeBuilder) pushRange(nodes []NodeRef) RangeRef {
	ref := RangeRef(len(b.ranges))
	b.ranges = append(b.ranges, Range(nodes))
	return ref
}

func (b *treeBuilder) startDelim(open, close []byte) {
	b.stack = append(b.stack, openFrame{open: open, close: close})
}

// endDelim pops the top frame if its expected close pattern matches;
// otherwise the close pattern itself is emitted as a Token leaf (the
// close-without-matching-open policy from spec.md §4.2).
func (b *treeBuilder) endDelim(close []byte) {
	if len(b.stack) == 0 || !bytes.Equal(b.stack[len(b.stack)-1].close, close) {
		b.pushToken(close)
		return
	}

	top := len(b.stack) - 1
	frame := b.stack[top]
	b.stack = b.stack[:top]

	rangeRef := b.pushRange(frame.nodes)
	nodeRef := b.pushNode(Node{Kind: NodeDelim, Open: frame.open, Close: close, Range: rangeRef})
	b.attach(nodeRef)
}

// finish flushes any still-open frames at end of input: each frame's
// open pattern is emitted as a literal Token (the open was never
// matched), and its accumulated children are re-attached to the parent
// frame (or root). The stack drains from top to bottom.
func (b *treeBuilder) finish() {
	for len(b.stack) > 0 {
		top := len(b.stack) - 1
		frame := b.stack[top]
		b.stack = b.stack[:top]

		b.pushToken(frame.open)
		for _, ref := range frame.nodes {
			b.attach(ref)
		}
	}
}

// Parse converts buf into a ParsedFile using the rules in g. It never
// fails: any byte input, including the empty buffer, produces a valid
// tree whose serialization reproduces buf exactly.
func Parse(g *grammar.Grammar, buf []byte) *ParsedFile {
	b := &treeBuilder{}

	remainder := buf
	for len(remainder) > 0 {
		ev := scanNext(g, remainder)
		switch ev.kind {
		case eventTokenizer:
			b.pushToken(ev.prefix)
			b.pushToken(ev.pattern)
		case eventDelimStart:
			b.pushToken(ev.prefix)
			b.startDelim(ev.pattern, ev.close)
		case eventDelimEnd:
			b.pushToken(ev.prefix)
			b.endDelim(ev.pattern)
		case eventBreak:
			b.pushToken(ev.prefix)
		}
		remainder = ev.rest
	}

	b.finish()

	return &ParsedFile{
		Root:   b.root,
		Nodes:  b.nodes,
		Ranges: b.ranges,
	}
}
