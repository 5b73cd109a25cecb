package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shft-fuzz/shft/pkg/grammar"
	"github.com/shft-fuzz/shft/pkg/parse"
)

func runDump(cmd *cobra.Command, args []string) error {
	g, buf, err := loadGrammarAndInput()
	if err != nil {
		return err
	}

	p := parse.Parse(g, buf)
	return parse.Dump(p, os.Stdout)
}

func loadGrammarAndInput() (*grammar.Grammar, []byte, error) {
	g, err := grammar.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading grammar: %w", err)
	}

	buf, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading input %q: %w", inputPath, err)
	}

	return g, buf, nil
}
