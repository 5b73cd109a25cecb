// Command shft-harness builds as a C shared library exposing three
// C-linkage entry points for a coverage-guided fuzzing driver: init,
// parse_one, and fuzz_one (spec.md §4.6, §6). It parks a single
// Grammar, ParsedFile, and PRNG in process-wide state; the host is
// trusted to serialize every call into this library (spec.md §5).
package main

/*
#include <stddef.h>
*/
import "C"

import (
	"math/rand"
	"os"
	"unsafe"

	"github.com/shft-fuzz/shft/pkg/driver"
	"github.com/shft-fuzz/shft/pkg/grammar"
	"github.com/shft-fuzz/shft/pkg/parse"
	"github.com/shft-fuzz/shft/pkg/serialize"
)

// defaultGrammarConfigPath is where shft_init loads the grammar from
// when SHFT_GRAMMAR_CONFIG is unset, matching the reference harness's
// hardcoded config path.
const defaultGrammarConfigPath = "/etc/shft/grammar.yaml"

// harnessMaxMutations matches the reference harness's fixed mutation
// count per fuzz_one call.
const harnessMaxMutations = 5

// harnessMaxDuplications is the DuplicateRange multiplier bound used by
// the harness driver config.
const harnessMaxDuplications = 4

var (
	harnessGrammar *grammar.Grammar
	harnessParsed  *parse.ParsedFile
	harnessRNG     *rand.Rand
	harnessDriver  *driver.Config
)

//export shft_init
func shft_init() C.size_t {
	path := os.Getenv("SHFT_GRAMMAR_CONFIG")
	if path == "" {
		path = defaultGrammarConfigPath
	}

	g, err := grammar.Load(path)
	if err != nil {
		return 1
	}

	cfg, err := driver.NewConfig(g, harnessMaxMutations, harnessMaxDuplications)
	if err != nil {
		return 1
	}

	harnessGrammar = g
	harnessDriver = cfg
	harnessRNG = rand.New(rand.NewSource(1))
	return 0
}

//export shft_parse_one
func shft_parse_one(buf unsafe.Pointer, length C.size_t) C.size_t {
	if buf == nil || length == 0 {
		return 1
	}

	in := C.GoBytes(buf, C.int(length))
	harnessParsed = parse.Parse(harnessGrammar, in)
	return 0
}

//export shft_fuzz_one
func shft_fuzz_one(out unsafe.Pointer, outLen C.size_t) C.size_t {
	if out == nil || outLen == 0 {
		return 0
	}

	ff, ok := driver.FuzzOne(harnessDriver, harnessParsed, harnessRNG)
	if !ok {
		return 0
	}

	slice := unsafe.Slice((*byte)(out), int(outLen))
	sink := serialize.NewSliceSink(slice)
	serialize.Serialize(ff, sink)
	return C.size_t(sink.BytesWritten())
}

func main() {}
