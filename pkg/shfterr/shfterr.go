// Package shfterr formats the chained "error: … caused by: …" reports
// the CLI prints on failure (spec.md §7). It adds no new error type of
// its own; it walks the standard library's errors.Unwrap chain that the
// rest of the CLI builds with ordinary fmt.Errorf("...: %w", err).
package shfterr

import (
	"errors"
	"strings"
)

// Report renders err and its wrapped causes as spec.md §6's chained
// format: "error: <outermost>", then one "caused by: <cause>" line per
// link in the errors.Unwrap chain.
func Report(err error) string {
	if err == nil {
		return ""
	}

	var lines []string
	lines = append(lines, "error: "+err.Error())

	cause := errors.Unwrap(err)
	for cause != nil {
		lines = append(lines, "caused by: "+cause.Error())
		cause = errors.Unwrap(cause)
	}

	return strings.Join(lines, "\n")
}
