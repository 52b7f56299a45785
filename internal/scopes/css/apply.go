package css

import (
	"regexp"

	"bennypowers.dev/twls/internal/scopes"
	"bennypowers.dev/twls/internal/scopes/classes"
)

var (
	applyPattern              = regexp.MustCompile(`(@apply\s+)([^;}]+?)(\s*!important)?\s*[;}]`)
	applySemicolonlessPattern = regexp.MustCompile(`(@apply\s+)([^}\r\n]+?)(\s*!important)?(?:\r|\n|}|$)`)
)

// ScanApply returns a class.list scope for the class list of every @apply
// inside span of text. An `!important` flag is not part of the list.
// Comments are blanked first so `@apply /* */;` yields a whitespace list
// with empty class names.
func ScanApply(text string, span scopes.Span, semicolonless bool) []*scopes.Scope {
	slice := BlankComments(span.Text(text))
	pattern := applyPattern
	if semicolonless {
		pattern = applySemicolonlessPattern
	}

	var out []*scopes.Scope
	for _, m := range pattern.FindAllStringSubmatchIndex(slice, -1) {
		list := slice[m[4]:m[5]]
		out = append(out, classes.NewList(list, span.Start+m[4]))
	}
	return out
}
