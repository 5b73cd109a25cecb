// Command shft is the CLI driver for the structural file fuzzer: it
// parses a grammar config and an input file, and either dumps the
// parsed tree or generates mutated variants.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shft-fuzz/shft/pkg/shfterr"
)

var (
	inputPath  string
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, shfterr.Report(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "shft",
	Short:         "A grammar-driven structural file fuzzer",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "input file to parse")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "grammar config file")
	_ = rootCmd.MarkPersistentFlagRequired("input")
	_ = rootCmd.MarkPersistentFlagRequired("config")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(fuzzCmd)
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "print the parsed tree",
	RunE:  runDump,
}

var (
	outputPattern   string
	numVariants     int
	maxMutations    int
	maxDuplications int
	seed            uint64
	useSeed         bool
	cachePath       string
)

var fuzzCmd = &cobra.Command{
	Use:   "fuzz",
	Short: "generate mutated variants",
	RunE:  runFuzz,
}

func init() {
	fuzzCmd.Flags().StringVarP(&outputPattern, "output", "o", "", "output path pattern, must contain a directory and a '{}' filename marker")
	fuzzCmd.Flags().IntVarP(&numVariants, "num", "n", 0, "number of variants to generate")
	fuzzCmd.Flags().IntVar(&maxMutations, "max-mutations", 5, "mutator applications per variant")
	fuzzCmd.Flags().IntVar(&maxDuplications, "max-duplications", 4, "exclusive upper bound on DuplicateRange's multiplier")
	fuzzCmd.Flags().Uint64Var(&seed, "seed", 0, "PRNG seed (default: derived from the current time)")
	fuzzCmd.Flags().StringVar(&cachePath, "cache", "", "optional parse-cache snapshot path")
	_ = fuzzCmd.MarkFlagRequired("output")
	_ = fuzzCmd.MarkFlagRequired("num")

	fuzzCmd.PreRun = func(cmd *cobra.Command, args []string) {
		useSeed = cmd.Flags().Changed("seed")
	}
}

func newRand() *rand.Rand {
	s := seed
	if !useSeed {
		s = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(int64(s)))
}
