package scopes

import (
	"strconv"
	"strings"
)

const (
	printIndent  = "  "
	snippetLimit = 20
)

// Print renders scopes as an indented outline. Each scope prints as
// `kind [start-end]: "snippet"` followed by its named spans and metadata.
// When text is empty snippets are omitted.
func Print(nodes []*Scope, text string) string {
	var b strings.Builder
	b.WriteString("\n")

	Walk(nodes, Visitor{Enter: func(scope *Scope, path Path) {
		depth := len(path)

		b.WriteString(strings.Repeat(printIndent, depth))
		b.WriteString(scope.Kind.String())
		b.WriteString(" ")
		writeSpan(&b, scope.Source.Scope, text)
		b.WriteString("\n")

		for _, f := range scope.Fields() {
			b.WriteString(strings.Repeat(printIndent, depth+1))
			b.WriteString("- ")
			b.WriteString(f.Name)
			b.WriteString(" ")
			if f.Span == nil {
				b.WriteString("(none)\n")
				continue
			}
			writeSpan(&b, *f.Span, text)
			b.WriteString("\n")
		}

		for _, m := range scope.MetaFields() {
			b.WriteString(strings.Repeat(printIndent, depth+1))
			b.WriteString("- ")
			b.WriteString(m.Name)
			b.WriteString(": ")
			b.WriteString(m.Value)
			b.WriteString("\n")
		}
	}})

	return b.String()
}

func writeSpan(b *strings.Builder, span Span, text string) {
	b.WriteString("[")
	b.WriteString(strconv.Itoa(span.Start))
	b.WriteString("-")
	b.WriteString(strconv.Itoa(span.End))
	b.WriteString("]:")
	if text == "" {
		return
	}
	b.WriteString(" \"")
	b.WriteString(Snippet(span, text))
	b.WriteString("\"")
}

// Snippet returns up to twenty bytes of the text under span with line breaks
// escaped, followed by "..." when truncated
func Snippet(span Span, text string) string {
	truncated := span.Len() > snippetLimit
	if truncated {
		span.End = span.Start + snippetLimit
	}
	s := strings.ReplaceAll(span.Text(text), "\n", `\n`)
	if truncated {
		s += "..."
	}
	return s
}
