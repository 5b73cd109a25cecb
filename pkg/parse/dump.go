package parse

import (
	"fmt"
	"io"
	"strings"
)

// Dump renders a ParsedFile as the indented tree format from spec.md §6:
// tokens as quoted, escaped strings; delimiters as "open" { ... } "close"
// blocks; bare ranges as { ... } blocks. Indentation is 4 spaces per
// depth.
func Dump(p *ParsedFile, w io.Writer) error {
	for _, ref := range p.Root {
		if err := dumpNode(p, 0, ref, w); err != nil {
			return err
		}
	}
	return nil
}

// DumpString is a convenience wrapper around Dump for callers that want
// the rendered tree as a string, such as tests.
func DumpString(p *ParsedFile) string {
	var sb strings.Builder
	// Dump never returns an error writing to a strings.Builder.
	_ = Dump(p, &sb)
	return sb.String()
}

func dumpNode(p *ParsedFile, depth int, ref NodeRef, w io.Writer) error {
	indent := strings.Repeat("    ", depth)
	n := p.Nodes[ref]

	switch n.Kind {
	case NodeToken:
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, escapeToken(n.Open)); err != nil {
			return err
		}
	case NodeDelim:
		if _, err := fmt.Fprintf(w, "%s%s {\n", indent, escapeToken(n.Open)); err != nil {
			return err
		}
		for _, child := range p.Ranges[n.Range] {
			if err := dumpNode(p, depth+1, child, w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s} %s\n", indent, escapeToken(n.Close)); err != nil {
			return err
		}
	case NodeRange:
		if _, err := fmt.Fprintf(w, "%s{\n", indent); err != nil {
			return err
		}
		for _, child := range p.Ranges[n.Range] {
			if err := dumpNode(p, depth+1, child, w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s}\n", indent); err != nil {
			return err
		}
	}
	return nil
}

// escapeToken renders a byte slice as a double-quoted string with the
// escapes spec.md §6 specifies: \t, \n, \r, printable ASCII verbatim,
// everything else as \xNN.
func escapeToken(b []byte) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range b {
		switch {
		case c == 0x09:
			sb.WriteString(`\t`)
		case c == 0x0a:
			sb.WriteString(`\n`)
		case c == 0x0d:
			sb.WriteString(`\r`)
		case c >= 0x20 && c <= 0x7e:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
