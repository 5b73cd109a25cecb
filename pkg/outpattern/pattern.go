// Package outpattern implements the CLI fuzz subcommand's output
// filename templating: a pattern with a directory component and a
// filename component containing the literal marker "{}", substituted
// with the variant number.
package outpattern

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Pattern is a parsed output pattern, split into the directory, the
// filename text before "{}", and the filename text after it.
type Pattern struct {
	dir    string
	prefix string
	suffix string
}

// Parse validates and splits pattern. It must include both a directory
// component and a filename component, and the filename component must
// contain the literal marker "{}".
func Parse(pattern string) (*Pattern, error) {
	dir := filepath.Dir(pattern)
	base := filepath.Base(pattern)

	if dir == "." && !strings.Contains(pattern, string(filepath.Separator)) {
		return nil, fmt.Errorf("output pattern %q must include a directory component", pattern)
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return nil, fmt.Errorf("output pattern %q must include a filename component", pattern)
	}

	idx := strings.Index(base, "{}")
	if idx < 0 {
		return nil, fmt.Errorf("output pattern %q: filename must contain the '{}' marker", pattern)
	}

	return &Pattern{
		dir:    dir,
		prefix: base[:idx],
		suffix: base[idx+2:],
	}, nil
}

// With substitutes value for the "{}" marker and returns the full path.
func (p *Pattern) With(value int) string {
	filename := fmt.Sprintf("%s%d%s", p.prefix, value, p.suffix)
	return filepath.Join(p.dir, filename)
}

// Dir returns the pattern's directory component, so callers can ensure
// it exists before writing variants into it.
func (p *Pattern) Dir() string {
	return p.dir
}
