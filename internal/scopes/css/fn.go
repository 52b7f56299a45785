package css

import (
	"regexp"

	"bennypowers.dev/twls/internal/scopes"
)

// Helper function names. var() is plain CSS and is left alone.
var helperFnPattern = regexp.MustCompile(`(--theme|--alpha|--spacing|theme|config)\(`)

// ScanHelperFns returns a css.fn scope for every call of a Tailwind helper
// function inside span of text. The scope runs from the function name to
// the balancing `)` inclusive and params covers the text between the
// parentheses. Calls that are never closed produce no scope.
func ScanHelperFns(text string, span scopes.Span) []*scopes.Scope {
	slice := BlankComments(span.Text(text))

	var out []*scopes.Scope
	for _, m := range helperFnPattern.FindAllStringSubmatchIndex(slice, -1) {
		nameStart, nameEnd := m[2], m[3]
		if nameStart > 0 && isIdent(slice[nameStart-1]) {
			continue
		}

		open := nameEnd
		closing := matchParen(slice, open)
		if closing >= len(slice) {
			continue
		}

		out = append(out, scopes.NewFn(
			scopes.Span{Start: nameStart, End: closing + 1}.Shift(span.Start),
			scopes.Span{Start: nameStart, End: nameEnd}.Shift(span.Start),
			scopes.Span{Start: open + 1, End: closing}.Shift(span.Start),
		))
	}
	return out
}
