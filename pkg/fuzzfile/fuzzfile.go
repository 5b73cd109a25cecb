// Package fuzzfile provides FuzzFile, a copy-on-write working view over a
// parse.ParsedFile, and the catalogue of structural mutators that operate
// on it.
package fuzzfile

import (
	"github.com/shft-fuzz/shft/pkg/parse"
)

// FuzzFile holds three independently copy-on-write handles onto a
// ParsedFile's root, nodes, and ranges. Reads borrow from the underlying
// ParsedFile; the first write to a handle materializes an owned clone,
// and later writes mutate that clone in place. A FuzzFile must not
// outlive the ParsedFile it was built from, nor the buffer the
// ParsedFile borrows token and delimiter slices from.
type FuzzFile struct {
	root      []parse.NodeRef
	rootOwned bool

	nodes      []parse.Node
	nodesOwned bool

	ranges      []parse.Range
	rangesOwned bool
}

// New creates a FuzzFile as a borrowed view over p. No copying happens
// until a mutator writes.
func New(p *parse.ParsedFile) *FuzzFile {
	return &FuzzFile{
		root:   p.Root,
		nodes:  p.Nodes,
		ranges: p.Ranges,
	}
}

// Root returns the current (possibly borrowed) root sequence.
func (f *FuzzFile) Root() []parse.NodeRef { return f.root }

// Nodes returns the current (possibly borrowed) node arena.
func (f *FuzzFile) Nodes() []parse.Node { return f.nodes }

// Ranges returns the current (possibly borrowed) range arena.
func (f *FuzzFile) Ranges() []parse.Range { return f.ranges }

// mutRoot returns an owned, writable root slice, cloning on first use.
func (f *FuzzFile) mutRoot() []parse.NodeRef {
	if !f.rootOwned {
		owned := make([]parse.NodeRef, len(f.root))
		copy(owned, f.root)
		f.root = owned
		f.rootOwned = true
	}
	return f.root
}

// mutNodes returns an owned, writable node arena, cloning on first use.
func (f *FuzzFile) mutNodes() []parse.Node {
	if !f.nodesOwned {
		owned := make([]parse.Node, len(f.nodes))
		copy(owned, f.nodes)
		f.nodes = owned
		f.nodesOwned = true
	}
	return f.nodes
}

// mutRanges returns an owned, writable range arena, cloning on first
// use. Each inner Range is its own slice over a shared source array, so
// a shallow copy of the outer slice would still let a write through
// owned[i] reach back into the ParsedFile's backing array; every
// element is cloned individually to give the owned arena fully
// independent storage.
func (f *FuzzFile) mutRanges() []parse.Range {
	if !f.rangesOwned {
		owned := make([]parse.Range, len(f.ranges))
		for i, r := range f.ranges {
			owned[i] = append(parse.Range(nil), r...)
		}
		f.ranges = owned
		f.rangesOwned = true
	}
	return f.ranges
}

// setNodes installs a (possibly grown) node arena as the owned arena,
// used after an append grows the slice's backing array.
func (f *FuzzFile) setNodes(nodes []parse.Node) {
	f.nodes = nodes
	f.nodesOwned = true
}

// setRanges installs a (possibly grown) range arena as the owned arena.
func (f *FuzzFile) setRanges(ranges []parse.Range) {
	f.ranges = ranges
	f.rangesOwned = true
}
