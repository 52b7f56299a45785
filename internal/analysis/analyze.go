// Package analysis builds a scope tree for a whole document by running the
// scanner that matches each language boundary and optimizing the result.
package analysis

import (
	"bennypowers.dev/twls/internal/scopes"
	"bennypowers.dev/twls/internal/scopes/classes"
	"bennypowers.dev/twls/internal/scopes/css"
	"bennypowers.dev/twls/internal/scopes/html"
)

// Config holds the settings that change what the scanners report
type Config struct {
	// ClassAttributes lists the attribute names holding class lists. When
	// empty no class.attr scopes are produced.
	ClassAttributes []string

	// Semicolonless reports whether a CSS language ends statements at line
	// breaks rather than semicolons (Sass, Stylus). Nil means never.
	Semicolonless func(lang string) bool
}

func (c Config) semicolonless(lang string) bool {
	return c.Semicolonless != nil && c.Semicolonless(lang)
}

// AnalyzeDocument returns the scope tree of text. boundaries must cover the
// text without gaps or overlaps; each becomes one root context scope. The
// result is a pure function of its inputs.
func AnalyzeDocument(text string, boundaries []scopes.Boundary, cfg Config) *scopes.Tree {
	roots := make([]*scopes.Scope, 0, len(boundaries))
	for _, b := range boundaries {
		ctx := scopes.NewContext(b.Span, b.Syntax, b.Language())
		ctx.Children = analyzeRegion(text, ctx, cfg)
		roots = append(roots, ctx)
	}
	return scopes.NewTree(scopes.Optimize(roots))
}

// analyzeRegion returns the candidate scopes inside a context
func analyzeRegion(text string, ctx *scopes.Scope, cfg Config) []*scopes.Scope {
	span := ctx.Source.Scope
	switch ctx.Meta.Syntax {
	case scopes.SyntaxHTML:
		return analyzeHTML(text, span, cfg)
	case scopes.SyntaxJS:
		return analyzeJS(text, span, cfg)
	case scopes.SyntaxCSS:
		return analyzeCSS(text, span, cfg.semicolonless(ctx.Meta.Lang))
	case scopes.SyntaxOther:
		return nil
	}
	return nil
}

func analyzeHTML(text string, span scopes.Span, cfg Config) []*scopes.Scope {
	root := html.Scan(html.ScanOptions{
		Input:           span.Text(text),
		Offset:          span.Start,
		ClassAttributes: cfg.ClassAttributes,
	})

	var nested []*scopes.Scope
	for _, child := range root.Children {
		if child.Kind == scopes.KindContext {
			child.Children = analyzeRegion(text, child, cfg)
			nested = append(nested, child)
		}
	}

	// Candidates inside a script or style element were already reported by
	// that element's own analysis
	out := make([]*scopes.Scope, 0, len(root.Children))
	for _, child := range root.Children {
		switch {
		case child.Kind == scopes.KindContext:
			out = append(out, child)
		case withinAny(nested, child.Span()):
		case child.Kind == scopes.KindClassAttr:
			child.Children = classes.FromAttr(text, child)
			out = append(out, child)
		default:
			out = append(out, child)
		}
	}
	return out
}

func withinAny(contexts []*scopes.Scope, span scopes.Span) bool {
	for _, ctx := range contexts {
		if ctx.Span().Contains(span) {
			return true
		}
	}
	return false
}

// analyzeJS reports class attributes in JSX-like markup and the comments
// around them. Script and style tags inside JavaScript are not contexts.
func analyzeJS(text string, span scopes.Span, cfg Config) []*scopes.Scope {
	root := html.Scan(html.ScanOptions{
		Input:           span.Text(text),
		Offset:          span.Start,
		ClassAttributes: cfg.ClassAttributes,
	})

	out := make([]*scopes.Scope, 0, len(root.Children))
	for _, child := range root.Children {
		switch child.Kind {
		case scopes.KindClassAttr:
			child.Children = classes.FromAttr(text, child)
			out = append(out, child)
		case scopes.KindComment:
			out = append(out, child)
		}
	}
	return out
}

func analyzeCSS(text string, span scopes.Span, semicolonless bool) []*scopes.Scope {
	var out []*scopes.Scope
	out = append(out, css.ScanAtRules(text, span, semicolonless)...)
	out = append(out, css.ScanApply(text, span, semicolonless)...)
	out = append(out, css.ScanHelperFns(text, span)...)
	return out
}
