// Package css finds at-rule, @apply class list, and helper function scopes
// in CSS-like text. Scanners are regex and byte driven so that partial input
// still yields scopes with exact spans.
package css

import "strings"

// BlankComments replaces the contents of every terminated `/* */` comment
// with spaces, keeping line breaks, so offsets into the result match offsets
// into text
func BlankComments(text string) string {
	if !strings.Contains(text, "/*") {
		return text
	}

	out := []byte(text)
	for i := 0; i+1 < len(out); i++ {
		if out[i] != '/' || out[i+1] != '*' {
			continue
		}
		end := strings.Index(text[i+2:], "*/")
		if end < 0 {
			break
		}
		end += i + 2 + 2
		for k := i; k < end; k++ {
			if out[k] != '\n' {
				out[k] = ' '
			}
		}
		i = end - 1
	}
	return string(out)
}
