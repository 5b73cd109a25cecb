package fuzzfile

import (
	"math/rand"

	"github.com/shft-fuzz/shft/pkg/grammar"
	"github.com/shft-fuzz/shft/pkg/parse"
)

// Mutator is one structural rewrite from the catalogue. It reports
// whether it changed the FuzzFile; mutators that cannot apply (their
// preconditions aren't met) return false and leave the FuzzFile
// unchanged rather than raising.
type Mutator func(f *FuzzFile, rng *rand.Rand) bool

// twoDistinctIndices draws two distinct indices uniformly from [0, n).
// Returns ok=false if n < 2.
func twoDistinctIndices(rng *rand.Rand, n int) (a, b int, ok bool) {
	if n < 2 {
		return 0, 0, false
	}
	a = rng.Intn(n)
	b = rng.Intn(n - 1)
	if b >= a {
		b++
	}
	return a, b, true
}

// delimIndices collects the indices of every Delim node in nodes.
func delimIndices(nodes []parse.Node) []int {
	var out []int
	for i, n := range nodes {
		if n.Kind == parse.NodeDelim {
			out = append(out, i)
		}
	}
	return out
}

// SwapRanges picks two distinct range indices uniformly and swaps the
// two range entries. Requires at least two ranges.
func SwapRanges(f *FuzzFile, rng *rand.Rand) bool {
	i, j, ok := twoDistinctIndices(rng, len(f.ranges))
	if !ok {
		return false
	}
	ranges := f.mutRanges()
	ranges[i], ranges[j] = ranges[j], ranges[i]
	return true
}

// ShuffleRanges picks one range uniformly and permutes its children.
func ShuffleRanges(f *FuzzFile, rng *rand.Rand) bool {
	if len(f.ranges) == 0 {
		return false
	}
	i := rng.Intn(len(f.ranges))
	ranges := f.mutRanges()
	rng.Shuffle(len(ranges[i]), func(a, b int) {
		ranges[i][a], ranges[i][b] = ranges[i][b], ranges[i][a]
	})
	return true
}

// NewDuplicateRange returns a DuplicateRange mutator bound to
// maxDuplications. It picks one range uniformly, picks k uniformly in
// [1, maxDuplications), and appends k concatenated copies of its current
// children to itself. maxDuplications must be >= 2; the driver rejects
// smaller values at construction time (spec.md §9's resolution of the
// "DuplicateRange multiplier" open question).
func NewDuplicateRange(maxDuplications int) Mutator {
	return func(f *FuzzFile, rng *rand.Rand) bool {
		if len(f.ranges) == 0 {
			return false
		}
		i := rng.Intn(len(f.ranges))
		k := 1 + rng.Intn(maxDuplications-1)

		ranges := f.mutRanges()
		original := append([]parse.NodeRef(nil), ranges[i]...)
		extension := make([]parse.NodeRef, 0, len(original)*k)
		for n := 0; n < k; n++ {
			extension = append(extension, original...)
		}
		ranges[i] = append(ranges[i], extension...)
		return true
	}
}

// DuplicateRootNode draws two distinct indices from the node arena
// (spec.md §9 resolves the reference implementation's ambiguous index
// domain this way), clones nodes[dst] as a new node n', appends a new
// range [n', src], and overwrites nodes[dst] with Range(r').
func DuplicateRootNode(f *FuzzFile, rng *rand.Rand) bool {
	src, dst, ok := twoDistinctIndices(rng, len(f.nodes))
	if !ok {
		return false
	}

	nodes := f.mutNodes()
	dup := nodes[dst]
	newNodeRef := parse.NodeRef(len(nodes))
	nodes = append(nodes, dup)
	f.setNodes(nodes)

	ranges := f.mutRanges()
	newRangeRef := parse.RangeRef(len(ranges))
	ranges = append(ranges, parse.Range{newNodeRef, parse.NodeRef(src)})
	f.setRanges(ranges)

	f.nodes[dst] = parse.Node{Kind: parse.NodeRange, Range: newRangeRef}
	return true
}

// RemoveDelim picks a uniformly random Delim node and replaces it with a
// bare Range, dropping its open/close patterns but keeping its children.
func RemoveDelim(f *FuzzFile, rng *rand.Rand) bool {
	delims := delimIndices(f.nodes)
	if len(delims) == 0 {
		return false
	}
	idx := delims[rng.Intn(len(delims))]

	nodes := f.mutNodes()
	nodes[idx] = parse.Node{Kind: parse.NodeRange, Range: nodes[idx].Range}
	return true
}

// SwapDelim picks a uniformly random Delim node and transposes its open
// and close patterns.
func SwapDelim(f *FuzzFile, rng *rand.Rand) bool {
	delims := delimIndices(f.nodes)
	if len(delims) == 0 {
		return false
	}
	idx := delims[rng.Intn(len(delims))]

	nodes := f.mutNodes()
	n := nodes[idx]
	nodes[idx] = parse.Node{Kind: parse.NodeDelim, Open: n.Close, Close: n.Open, Range: n.Range}
	return true
}

// NestDelim picks a Delim node (open, r, close) and wraps its current
// range in a fresh copy of the same delimiter: it appends a new node
// Delim(open, r, close) as n', a new range [n'] as r', and overwrites
// the original node with Delim(open, r', close).
func NestDelim(f *FuzzFile, rng *rand.Rand) bool {
	delims := delimIndices(f.nodes)
	if len(delims) == 0 {
		return false
	}
	idx := delims[rng.Intn(len(delims))]

	nodes := f.mutNodes()
	orig := nodes[idx]

	newNodeRef := parse.NodeRef(len(nodes))
	nodes = append(nodes, parse.Node{Kind: parse.NodeDelim, Open: orig.Open, Close: orig.Close, Range: orig.Range})
	f.setNodes(nodes)

	ranges := f.mutRanges()
	newRangeRef := parse.RangeRef(len(ranges))
	ranges = append(ranges, parse.Range{newNodeRef})
	f.setRanges(ranges)

	f.nodes[idx] = parse.Node{Kind: parse.NodeDelim, Open: orig.Open, Close: orig.Close, Range: newRangeRef}
	return true
}

// EmptyDelim picks a Delim node and overwrites its range with a fresh
// empty range, without touching open/close. The original children
// become unreachable from this node, but may remain reachable elsewhere
// if the range is shared.
func EmptyDelim(f *FuzzFile, rng *rand.Rand) bool {
	delims := delimIndices(f.nodes)
	if len(delims) == 0 {
		return false
	}
	idx := delims[rng.Intn(len(delims))]

	ranges := f.mutRanges()
	newRangeRef := parse.RangeRef(len(ranges))
	ranges = append(ranges, parse.Range{})
	f.setRanges(ranges)

	nodes := f.mutNodes()
	orig := nodes[idx]
	nodes[idx] = parse.Node{Kind: parse.NodeDelim, Open: orig.Open, Close: orig.Close, Range: newRangeRef}
	return true
}

// NewRandDelim returns a RandDelim mutator bound to the grammar's
// delimiter pairs. It picks a Delim node and a replacement pair
// uniformly from delims; if the pair is byte-equal to the node's
// current patterns it returns false rather than emitting a no-op
// "change".
func NewRandDelim(delims []grammar.DelimPair) Mutator {
	return func(f *FuzzFile, rng *rand.Rand) bool {
		if len(delims) == 0 {
			return false
		}
		candidates := delimIndices(f.nodes)
		if len(candidates) == 0 {
			return false
		}
		idx := candidates[rng.Intn(len(candidates))]
		pick := delims[rng.Intn(len(delims))]

		current := grammar.DelimPair{Open: f.nodes[idx].Open, Close: f.nodes[idx].Close}
		if current.Equal(pick) {
			return false
		}

		nodes := f.mutNodes()
		nodes[idx] = parse.Node{Kind: parse.NodeDelim, Open: pick.Open, Close: pick.Close, Range: nodes[idx].Range}
		return true
	}
}
