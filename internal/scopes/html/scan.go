package html

import (
	"strings"

	"bennypowers.dev/twls/internal/scopes"
)

// ScanOptions configures Scan
type ScanOptions struct {
	// Input is the HTML to scan
	Input string
	// Offset is where Input starts in the enclosing document
	Offset int
	// ClassAttributes lists attribute names that hold class lists. Each name
	// also matches its `[name]`, `:name`, and `:[name]` binding forms.
	ClassAttributes []string
}

type scanState int

const (
	scanIdle scanState = iota
	scanInComment
	scanWaitForTagOpen
)

// Scan returns a root html context spanning the whole input. Its children
// are unordered candidates: nested script and style contexts, comments, and
// class attributes. Nesting is left to scopes.Optimize.
func Scan(opts ScanOptions) *scopes.Scope {
	input, offset := opts.Input, opts.Offset
	root := scopes.NewContext(scopes.Span{Start: offset, End: offset + len(input)}, scopes.SyntaxHTML, "html")

	text := func(span scopes.Span) string {
		return input[span.Start-offset : span.End-offset]
	}

	state := scanIdle
	var (
		context    *scopes.Scope
		comment    *scopes.Scope
		currentTag string
		attr       string
	)

	for _, event := range Stream(input, offset) {
		switch event.Kind {
		case AttrName:
			attr = text(event.Span)

		case AttrValue, AttrExpr:
			value := text(event.Span)

			if attr == "lang" || attr == "type" {
				if state == scanWaitForTagOpen && context != nil {
					overrideLang(context, attr, value)
				}
				continue
			}

			if !IsClassAttribute(attr, opts.ClassAttributes) {
				continue
			}
			static := event.Kind == AttrValue && !isBinding(attr)
			root.Children = append(root.Children, scopes.NewClassAttr(event.Span, static))

		case CommentStart:
			comment = scopes.NewComment(scopes.Span{Start: event.Span.Start, End: event.Span.Start})
			state = scanInComment

		case CommentEnd:
			if state == scanInComment {
				comment.Source.Scope.End = event.Span.End
				root.Children = append(root.Children, comment)
				state = scanIdle
			}

		case ElementStart:
			switch tag := text(event.Span); tag {
			case "<script":
				currentTag = tag
				context = scopes.NewContext(scopes.Span{Start: event.Span.Start, End: event.Span.Start}, scopes.SyntaxJS, "js")
				state = scanWaitForTagOpen
			case "<style":
				currentTag = tag
				context = scopes.NewContext(scopes.Span{Start: event.Span.Start, End: event.Span.Start}, scopes.SyntaxCSS, "css")
				state = scanWaitForTagOpen
			case "</script", "</style":
				if context == nil || currentTag != "<"+tag[2:] {
					continue
				}
				context.Source.Scope.End = event.Span.Start
				root.Children = append(root.Children, context)
				context = nil
				currentTag = ""
				state = scanIdle
			}

		case ElementEnd:
			if state == scanWaitForTagOpen {
				context.Source.Scope.Start = event.Span.End
				state = scanIdle
			}
		}
	}

	return root
}

// IsClassAttribute reports whether name is one of classAttributes or a
// binding form of one, compared case-insensitively
func IsClassAttribute(name string, classAttributes []string) bool {
	if len(classAttributes) == 0 || name == "" {
		return false
	}

	candidates := []string{name}
	if bare, ok := strings.CutPrefix(name, ":"); ok {
		candidates = append(candidates, bare)
	}

	for _, c := range candidates {
		if len(c) > 2 && c[0] == '[' && c[len(c)-1] == ']' {
			c = c[1 : len(c)-1]
		}
		for _, attr := range classAttributes {
			if strings.EqualFold(c, attr) {
				return true
			}
		}
	}
	return false
}

// isBinding reports whether an attribute name is a framework binding, whose
// value is an expression rather than a literal class list
func isBinding(name string) bool {
	if strings.HasPrefix(name, ":") {
		return true
	}
	return len(name) > 1 && name[0] == '[' && name[len(name)-1] == ']'
}

// overrideLang applies a lang or type attribute of a script or style tag to
// its context
func overrideLang(context *scopes.Scope, attr, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	if attr == "lang" {
		context.Meta.Lang = value
		return
	}

	switch strings.ToLower(value) {
	case "text/html", "text/x-template", "text/x-handlebars-template":
		context.Meta.Syntax = scopes.SyntaxHTML
		context.Meta.Lang = "html"
	case "text/babel", "text/jsx":
		context.Meta.Lang = "jsx"
	case "text/typescript", "application/typescript":
		context.Meta.Lang = "ts"
	case "text/css":
		context.Meta.Lang = "css"
	}
}
