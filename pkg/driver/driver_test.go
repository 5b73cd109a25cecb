package driver

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shft-fuzz/shft/pkg/grammar"
	"github.com/shft-fuzz/shft/pkg/parse"
)

func fixtureGrammar() *grammar.Grammar {
	return grammar.New([]grammar.GrammarDef{
		{Kind: grammar.KindDelim, Open: []byte("<<"), Close: []byte(">>")},
	}, [][]byte{[]byte(" ")})
}

func TestNewConfigRejectsMaxDuplicationsBelowTwo(t *testing.T) {
	g := fixtureGrammar()
	if _, err := NewConfig(g, 5, 1); err == nil {
		t.Error("expected an error for maxDuplications=1")
	}
	if _, err := NewConfig(g, 5, 0); err == nil {
		t.Error("expected an error for maxDuplications=0")
	}
}

func TestNewConfigAcceptsMinimumMaxDuplications(t *testing.T) {
	g := fixtureGrammar()
	cfg, err := NewConfig(g, 5, 2)
	if err != nil {
		t.Fatalf("NewConfig with maxDuplications=2: %v", err)
	}
	if len(cfg.Mutators) != 9 {
		t.Errorf("expected the full 9-mutator catalogue, got %d", len(cfg.Mutators))
	}
}

func TestFuzzOneReportsNoOpWhenNothingCanMutate(t *testing.T) {
	g := grammar.New(nil, nil)
	cfg, err := NewConfig(g, 5, 2)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	p := parse.Parse(g, []byte("plain text, no delimiters or whitespace"))
	rng := rand.New(rand.NewSource(1))

	_, ok := FuzzOne(cfg, p, rng)
	if ok {
		t.Error("expected FuzzOne to report no mutation on a file with no eligible structure")
	}
}

func TestFuzzOneMutatesStructuredFileWithoutShrinkingNodes(t *testing.T) {
	g := fixtureGrammar()
	cfg, err := NewConfig(g, 3, 2)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	p := parse.Parse(g, []byte("1<<2<<3>>4>>5 6<<7>>8"))
	rng := rand.New(rand.NewSource(9))

	ff, ok := FuzzOne(cfg, p, rng)
	if !ok {
		t.Fatal("expected at least one mutation to apply over a richly structured file")
	}
	if len(ff.Nodes()) < len(p.Nodes) {
		t.Error("FuzzOne should never shrink the node arena")
	}
}

func TestRunPropagatesEmitErrors(t *testing.T) {
	g := fixtureGrammar()
	cfg, err := NewConfig(g, 3, 2)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	p := parse.Parse(g, []byte("1<<2>>3"))
	rng := rand.New(rand.NewSource(5))

	emitted := 0
	boom := errors.New("boom")
	err = Run(cfg, p, rng, 10, func(variant int, data []byte) error {
		emitted++
		if emitted == 2 {
			return boom
		}
		return nil
	})

	if err == nil {
		t.Fatal("expected Run to propagate the emit error")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected the wrapped error to unwrap to boom, got %v", err)
	}
	if emitted != 2 {
		t.Errorf("expected Run to stop right after the failing emit, got %d calls", emitted)
	}
}

func TestRunEmitsUpToNVariants(t *testing.T) {
	g := fixtureGrammar()
	cfg, err := NewConfig(g, 3, 2)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	p := parse.Parse(g, []byte("1<<2<<3>>4>>5"))
	rng := rand.New(rand.NewSource(2))

	var variants [][]byte
	if err := Run(cfg, p, rng, 20, func(variant int, data []byte) error {
		variants = append(variants, data)
		return nil
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(variants) == 0 {
		t.Fatal("expected at least one emitted variant over 20 iterations")
	}
	if len(variants) > 20 {
		t.Fatalf("Run emitted more variants (%d) than requested iterations (20)", len(variants))
	}
}
