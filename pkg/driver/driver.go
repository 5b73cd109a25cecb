// Package driver runs the fuzz iteration loop: clone a view, apply up to
// a bounded number of mutations, serialize, and hand bytes to a caller.
package driver

import (
	"fmt"
	"math/rand"

	"github.com/shft-fuzz/shft/pkg/fuzzfile"
	"github.com/shft-fuzz/shft/pkg/grammar"
	"github.com/shft-fuzz/shft/pkg/parse"
	"github.com/shft-fuzz/shft/pkg/serialize"
)

// Config controls one driver's mutation batches.
type Config struct {
	// MaxMutations is how many mutator applications one variant gets.
	MaxMutations int
	// MaxDuplications bounds DuplicateRange's multiplier; must be >= 2.
	MaxDuplications int
	// Mutators is the enabled subset of the catalogue to choose from
	// uniformly. NewConfig fills it with the full catalogue. If it is
	// empty, FuzzOne applies no mutation and reports ok=false.
	Mutators []fuzzfile.Mutator
}

// NewConfig builds a Config bound to g's delimiter pairs, with the full
// mutator catalogue enabled. maxDuplications must be >= 2 (spec.md §9);
// NewConfig returns an error rather than constructing a Config that
// could panic mid-run.
func NewConfig(g *grammar.Grammar, maxMutations, maxDuplications int) (*Config, error) {
	if maxDuplications < 2 {
		return nil, fmt.Errorf("driver: maxDuplications must be >= 2, got %d", maxDuplications)
	}

	return &Config{
		MaxMutations:    maxMutations,
		MaxDuplications: maxDuplications,
		Mutators: []fuzzfile.Mutator{
			fuzzfile.SwapRanges,
			fuzzfile.ShuffleRanges,
			fuzzfile.NewDuplicateRange(maxDuplications),
			fuzzfile.DuplicateRootNode,
			fuzzfile.RemoveDelim,
			fuzzfile.SwapDelim,
			fuzzfile.NestDelim,
			fuzzfile.EmptyDelim,
			fuzzfile.NewRandDelim(g.Delims()),
		},
	}, nil
}

// FuzzOne starts a fresh view over p, applies up to cfg.MaxMutations
// mutators chosen uniformly at random, and returns the mutated FuzzFile
// together with whether any mutation actually changed it. Callers should
// discard the variant (not serialize it) when ok is false, per spec.md
// §4.4's "suppress emission of a variant whose batch produced no
// mutation".
func FuzzOne(cfg *Config, p *parse.ParsedFile, rng *rand.Rand) (ff *fuzzfile.FuzzFile, ok bool) {
	ff = fuzzfile.New(p)
	if len(cfg.Mutators) == 0 {
		return ff, false
	}

	didMutate := false
	for i := 0; i < cfg.MaxMutations; i++ {
		m := cfg.Mutators[rng.Intn(len(cfg.Mutators))]
		if m(ff, rng) {
			didMutate = true
		}
	}

	return ff, didMutate
}

// Run generates n variants from p, calling emit with the serialized
// bytes of each one whose mutation batch actually changed something.
// Iterations whose batch was a no-op are silently skipped, matching the
// reference driver's behavior.
func Run(cfg *Config, p *parse.ParsedFile, rng *rand.Rand, n int, emit func(variant int, data []byte) error) error {
	for i := 1; i <= n; i++ {
		ff, ok := FuzzOne(cfg, p, rng)
		if !ok {
			continue
		}

		var sink serialize.BufferSink
		serialize.Serialize(ff, &sink)

		if err := emit(i, sink.Bytes()); err != nil {
			return fmt.Errorf("emitting variant %d: %w", i, err)
		}
	}
	return nil
}
