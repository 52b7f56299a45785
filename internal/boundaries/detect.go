// Package boundaries splits documents into language regions: script and style
// blocks of HTML-like files, and css/html tagged templates of JavaScript.
package boundaries

import (
	"slices"

	"bennypowers.dev/twls/internal/scopes"
)

// Detect returns the language boundaries of text, in order, covering every
// byte of it exactly once. languageID is the editor's language id.
func Detect(text, languageID string) []scopes.Boundary {
	whole := []scopes.Boundary{{
		Span:   scopes.Span{Start: 0, End: len(text)},
		Syntax: Classify(languageID),
		Lang:   languageID,
	}}

	switch whole[0].Syntax {
	case scopes.SyntaxHTML:
		p := acquireHTMLParser()
		defer releaseHTMLParser(p)

		if languageID == "vue" {
			// Outside <template> a component is neither markup nor script
			return fill(p.blocks([]byte(text), true), len(text), scopes.SyntaxOther, languageID)
		}
		return fill(p.blocks([]byte(text), false), len(text), scopes.SyntaxHTML, languageID)

	case scopes.SyntaxJS:
		lang, ok := jsLang[languageID]
		if !ok {
			return whole
		}
		p := acquireJSParser()
		defer releaseJSParser(p)

		return fill(p.blocks([]byte(text)), len(text), scopes.SyntaxJS, lang)

	case scopes.SyntaxCSS, scopes.SyntaxOther:
		return whole
	}
	return whole
}

// fill orders blocks and fills the gaps between them with gap boundaries.
// Blocks that overlap an earlier block are dropped.
func fill(blocks []block, length int, gap scopes.Syntax, gapLang string) []scopes.Boundary {
	slices.SortStableFunc(blocks, func(a, b block) int {
		return a.span.Start - b.span.Start
	})

	var out []scopes.Boundary
	pos := 0
	for _, b := range blocks {
		if b.span.Start < pos {
			continue
		}
		if b.span.Start > pos {
			out = append(out, scopes.Boundary{Span: scopes.Span{Start: pos, End: b.span.Start}, Syntax: gap, Lang: gapLang})
		}
		out = append(out, scopes.Boundary{Span: b.span, Syntax: b.syntax, Lang: b.lang})
		pos = b.span.End
	}
	if pos < length || len(out) == 0 {
		out = append(out, scopes.Boundary{Span: scopes.Span{Start: pos, End: length}, Syntax: gap, Lang: gapLang})
	}
	return out
}

// ClosePool closes the pooled tree-sitter parsers
func ClosePool() {
	for range 100 {
		if p, ok := htmlPool.Get().(*htmlParser); ok && p != nil {
			p.Close()
		}
		if p, ok := jsPool.Get().(*jsParser); ok && p != nil {
			p.Close()
		}
	}
}
