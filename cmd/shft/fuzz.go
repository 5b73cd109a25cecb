package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shft-fuzz/shft/pkg/driver"
	"github.com/shft-fuzz/shft/pkg/grammar"
	"github.com/shft-fuzz/shft/pkg/outpattern"
	"github.com/shft-fuzz/shft/pkg/parse"
	"github.com/shft-fuzz/shft/pkg/parsecache"
)

func runFuzz(cmd *cobra.Command, args []string) error {
	if numVariants < 0 {
		return fmt.Errorf("--num must be a non-negative integer, got %d", numVariants)
	}

	pattern, err := outpattern.Parse(outputPattern)
	if err != nil {
		return fmt.Errorf("invalid output pattern: %w", err)
	}

	g, buf, err := loadGrammarAndInput()
	if err != nil {
		return err
	}

	p, err := parsedFileFor(g, buf)
	if err != nil {
		return err
	}

	cfg, err := driver.NewConfig(g, maxMutations, maxDuplications)
	if err != nil {
		return fmt.Errorf("configuring driver: %w", err)
	}

	if err := os.MkdirAll(pattern.Dir(), 0o755); err != nil {
		return fmt.Errorf("creating output directory %q: %w", pattern.Dir(), err)
	}

	rng := newRand()
	return driver.Run(cfg, p, rng, numVariants, func(variant int, data []byte) error {
		path := pattern.With(variant)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing variant to %q: %w", path, err)
		}
		return nil
	})
}

// parsedFileFor returns a ParsedFile for buf, consulting and refreshing
// the parse cache at cachePath when one is configured.
func parsedFileFor(g *grammar.Grammar, buf []byte) (*parse.ParsedFile, error) {
	if cachePath == "" {
		return parse.Parse(g, buf), nil
	}

	if snap, err := parsecache.Load(cachePath); err == nil && snap.Fresh(buf) {
		return snap.ParsedFile(), nil
	}

	p := parse.Parse(g, buf)
	if err := parsecache.Save(cachePath, parsecache.Build(buf, p)); err != nil {
		return nil, fmt.Errorf("caching parsed file: %w", err)
	}
	return p, nil
}
