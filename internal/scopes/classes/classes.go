// Package classes splits class lists into class name scopes and derives
// class lists from class attribute values.
package classes

import (
	"strings"

	"bennypowers.dev/twls/internal/scopes"
)

// Segment is one run of a split class list: either a class name (possibly
// empty) or a run of whitespace between names
type Segment struct {
	Span       scopes.Span
	Whitespace bool
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// Split divides text into alternating name and whitespace segments, starting
// and ending with a name. Leading or trailing whitespace therefore yields an
// empty name at the edge, and the segment lengths always sum to len(text).
// offset is added to every span.
func Split(text string, offset int) []Segment {
	segments := make([]Segment, 0, 4)
	start := 0
	i := 0
	for i < len(text) {
		if !isSpace(text[i]) {
			i++
			continue
		}
		segments = append(segments, Segment{Span: scopes.Span{Start: offset + start, End: offset + i}})

		ws := i
		for i < len(text) && isSpace(text[i]) {
			i++
		}
		segments = append(segments, Segment{
			Span:       scopes.Span{Start: offset + ws, End: offset + i},
			Whitespace: true,
		})
		start = i
	}
	return append(segments, Segment{Span: scopes.Span{Start: offset + start, End: offset + len(text)}})
}

// ScanList builds a class.list scope over span with one class.name child
// per name segment. text is the full document.
func ScanList(text string, span scopes.Span) *scopes.Scope {
	return NewList(span.Text(text), span.Start)
}

// NewList builds a class.list scope for list, which starts at offset in the
// document
func NewList(list string, offset int) *scopes.Scope {
	scope := scopes.NewClassList(scopes.Span{Start: offset, End: offset + len(list)})
	for _, seg := range Split(list, offset) {
		if seg.Whitespace {
			continue
		}
		scope.Children = append(scope.Children, scopes.NewClassName(seg.Span))
	}
	return scope
}

// Names returns the class names in a list, including empty ones
func Names(list string) []string {
	var names []string
	for _, seg := range Split(list, 0) {
		if !seg.Whitespace {
			names = append(names, seg.Span.Text(list))
		}
	}
	return names
}

// FromAttr derives the class lists held by a class.attr scope. A static
// attribute holds one list covering its trimmed value. A dynamic attribute
// holds an expression, so each plain string literal inside it becomes a
// list. Empty values produce no list. text is the full document.
func FromAttr(text string, attr *scopes.Scope) []*scopes.Scope {
	span := attr.Source.Scope
	value := span.Text(text)

	if attr.Meta.Static {
		if list, ok := trimmedList(text, span.Start, value); ok {
			return []*scopes.Scope{list}
		}
		return nil
	}

	var lists []*scopes.Scope
	for _, lit := range stringLiterals(value) {
		start := span.Start + lit.Start
		if list, ok := trimmedList(text, start, value[lit.Start:lit.End]); ok {
			lists = append(lists, list)
		}
	}
	return lists
}

func trimmedList(text string, start int, value string) (*scopes.Scope, bool) {
	trimmed := strings.TrimLeftFunc(value, func(r rune) bool { return r < 0x80 && isSpace(byte(r)) })
	lead := len(value) - len(trimmed)
	trimmed = strings.TrimRightFunc(trimmed, func(r rune) bool { return r < 0x80 && isSpace(byte(r)) })
	if trimmed == "" {
		return nil, false
	}
	begin := start + lead
	return ScanList(text, scopes.Span{Start: begin, End: begin + len(trimmed)}), true
}

// stringLiterals finds the contents of quoted strings in a JS-like
// expression. Template literals with interpolations are skipped because their
// text is not a literal class list. Spans are relative to expr.
func stringLiterals(expr string) []scopes.Span {
	var out []scopes.Span
	for i := 0; i < len(expr); i++ {
		quote := expr[i]
		if quote != '\'' && quote != '"' && quote != '`' {
			continue
		}

		end := -1
		for k := i + 1; k < len(expr); k++ {
			if expr[k] == '\\' {
				k++
				continue
			}
			if expr[k] == quote {
				end = k
				break
			}
		}
		if end < 0 {
			return out
		}

		body := expr[i+1 : end]
		if quote != '`' || !strings.Contains(body, "${") {
			out = append(out, scopes.Span{Start: i + 1, End: end})
		}
		i = end
	}
	return out
}
