package scopes

import (
	"encoding/json"
	"fmt"
)

// Span is a half-open [Start, End) range of document-absolute byte offsets
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether o lies entirely within s. Both ends are inclusive,
// so a zero-width span sitting on either edge of s is contained.
func (s Span) Contains(o Span) bool {
	return o.Start >= s.Start && o.End <= s.End
}

// Includes reports whether pos falls within s, inclusive at both ends
func (s Span) Includes(pos int) bool {
	return pos >= s.Start && pos <= s.End
}

// Shift moves the span by n bytes
func (s Span) Shift(n int) Span {
	return Span{Start: s.Start + n, End: s.End + n}
}

// Text returns the slice of text covered by the span, clamped to the text bounds
func (s Span) Text(text string) string {
	start, end := max(s.Start, 0), min(s.End, len(text))
	if start >= end {
		return ""
	}
	return text[start:end]
}

func (s Span) String() string {
	return fmt.Sprintf("[%d-%d]", s.Start, s.End)
}

// MarshalJSON encodes the span as a two element array
func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Start, s.End})
}

// UnmarshalJSON decodes a two element array
func (s *Span) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	s.Start, s.End = pair[0], pair[1]
	return nil
}

// Kind identifies the syntactic construct a scope describes
type Kind int

const (
	// KindContext is a region governed by one syntax (html, css, js, other)
	KindContext Kind = iota
	// KindComment is a comment whose contents are excluded from analysis
	KindComment
	// KindClassAttr is the value of a class-bearing attribute
	KindClassAttr
	// KindClassList is a whitespace separated list of classes
	KindClassList
	// KindClassName is a single class inside a class list
	KindClassName
	// KindAtRule is any CSS at-rule with name, params, and optional body
	KindAtRule
	// KindAtRuleUtility is an @utility definition
	KindAtRuleUtility
	// KindAtRuleImport is an @import or @reference of another stylesheet
	KindAtRuleImport
	// KindFn is a CSS helper function call such as theme(...) or --alpha(...)
	KindFn
	// KindThemeOptionList is the option list of @theme or an import's theme(...)
	KindThemeOptionList
	// KindThemeOptionName is a single theme option
	KindThemeOptionName
	// KindThemePrefix is the argument of an import's prefix(...)
	KindThemePrefix
)

var kindNames = [...]string{
	KindContext:         "context",
	KindComment:         "comment",
	KindClassAttr:       "class.attr",
	KindClassList:       "class.list",
	KindClassName:       "class.name",
	KindAtRule:          "css.at-rule",
	KindAtRuleUtility:   "css.at-rule.utility",
	KindAtRuleImport:    "css.at-rule.import",
	KindFn:              "css.fn",
	KindThemeOptionList: "theme.option.list",
	KindThemeOptionName: "theme.option.name",
	KindThemePrefix:     "theme.prefix",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given dotted name
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// MarshalText encodes the kind by its dotted name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a dotted kind name
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown scope kind %q", text)
	}
	*k = parsed
	return nil
}

// Syntax is the coarse family of language a context is written in
type Syntax int

const (
	// SyntaxHTML covers HTML-like languages (HTML, Vue, Svelte, Astro, PHP, ...)
	SyntaxHTML Syntax = iota
	// SyntaxCSS covers CSS-like languages (CSS, SCSS, Sass, Less, Stylus, ...)
	SyntaxCSS
	// SyntaxJS covers JavaScript-like languages (JS, JSX, TS, TSX)
	SyntaxJS
	// SyntaxOther is any language the server treats as plain text
	SyntaxOther
)

var syntaxNames = [...]string{
	SyntaxHTML:  "html",
	SyntaxCSS:   "css",
	SyntaxJS:    "js",
	SyntaxOther: "other",
}

func (s Syntax) String() string {
	if s < 0 || int(s) >= len(syntaxNames) {
		return fmt.Sprintf("Syntax(%d)", int(s))
	}
	return syntaxNames[s]
}

// MarshalText encodes the syntax by name
func (s Syntax) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a syntax name
func (s *Syntax) UnmarshalText(text []byte) error {
	for i, n := range syntaxNames {
		if n == string(text) {
			*s = Syntax(i)
			return nil
		}
	}
	return fmt.Errorf("unknown syntax %q", text)
}

// UtilityKind distinguishes `@utility foo` from `@utility foo-*`
type UtilityKind int

const (
	// UtilityStatic is a utility with a fixed name
	UtilityStatic UtilityKind = iota
	// UtilityFunctional is a utility that accepts a value (`name-*`)
	UtilityFunctional
)

func (u UtilityKind) String() string {
	if u == UtilityFunctional {
		return "functional"
	}
	return "static"
}

// MarshalText encodes the utility kind by name
func (u UtilityKind) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// Source holds the spans of text a scope was derived from. Scope is always
// set; the remaining spans are only meaningful for the kinds that define them
// and nil marks an absent part (e.g. an at-rule without a body).
type Source struct {
	Scope     Span
	Name      *Span
	Params    *Span
	Body      *Span
	URL       *Span
	SourceURL *Span
}

// Meta holds kind-specific non-span information
type Meta struct {
	Syntax  Syntax
	Lang    string
	Static  bool
	Utility UtilityKind
}

// Scope describes what syntactic construct occupies a range of a document.
// Children are sorted by start offset and never partially overlap.
type Scope struct {
	Kind     Kind
	Source   Source
	Meta     Meta
	Children []*Scope
}

// Span returns the overall span of the scope
func (s *Scope) Span() Span {
	return s.Source.Scope
}

// Field is a named, possibly absent, sub-span of a scope
type Field struct {
	Name string
	Span *Span
}

// Fields lists the kind-specific spans of a scope in a stable order
func (s *Scope) Fields() []Field {
	switch s.Kind {
	case KindAtRule:
		return []Field{
			{Name: "name", Span: s.Source.Name},
			{Name: "params", Span: s.Source.Params},
			{Name: "body", Span: s.Source.Body},
		}
	case KindAtRuleUtility:
		return []Field{{Name: "name", Span: s.Source.Name}}
	case KindAtRuleImport:
		return []Field{
			{Name: "url", Span: s.Source.URL},
			{Name: "sourceUrl", Span: s.Source.SourceURL},
		}
	case KindFn:
		return []Field{
			{Name: "name", Span: s.Source.Name},
			{Name: "params", Span: s.Source.Params},
		}
	case KindContext, KindComment, KindClassAttr, KindClassList, KindClassName,
		KindThemeOptionList, KindThemeOptionName, KindThemePrefix:
		return nil
	}
	panic(fmt.Sprintf("scopes: unhandled kind %v", s.Kind))
}

// MetaField is a named piece of scope metadata rendered as text
type MetaField struct {
	Name  string
	Value string
}

// MetaFields lists the kind-specific metadata of a scope in a stable order
func (s *Scope) MetaFields() []MetaField {
	switch s.Kind {
	case KindContext:
		return []MetaField{
			{Name: "syntax", Value: s.Meta.Syntax.String()},
			{Name: "lang", Value: s.Meta.Lang},
		}
	case KindClassAttr:
		return []MetaField{{Name: "static", Value: fmt.Sprint(s.Meta.Static)}}
	case KindAtRuleUtility:
		return []MetaField{{Name: "kind", Value: s.Meta.Utility.String()}}
	case KindComment, KindClassList, KindClassName, KindAtRule, KindAtRuleImport, KindFn,
		KindThemeOptionList, KindThemeOptionName, KindThemePrefix:
		return nil
	}
	panic(fmt.Sprintf("scopes: unhandled kind %v", s.Kind))
}

// MarshalJSON encodes a scope as {kind, source, meta?, children}
func (s *Scope) MarshalJSON() ([]byte, error) {
	source := map[string]any{"scope": s.Source.Scope}
	for _, f := range s.Fields() {
		if f.Span == nil {
			source[f.Name] = nil
		} else {
			source[f.Name] = *f.Span
		}
	}

	out := map[string]any{
		"kind":     s.Kind,
		"source":   source,
		"children": s.childrenOrEmpty(),
	}

	switch s.Kind {
	case KindContext:
		out["meta"] = map[string]any{"syntax": s.Meta.Syntax, "lang": s.Meta.Lang}
	case KindClassAttr:
		out["meta"] = map[string]any{"static": s.Meta.Static}
	case KindAtRuleUtility:
		out["meta"] = map[string]any{"kind": s.Meta.Utility}
	}

	return json.Marshal(out)
}

func (s *Scope) childrenOrEmpty() []*Scope {
	if s.Children == nil {
		return []*Scope{}
	}
	return s.Children
}

func spanPtr(s Span) *Span {
	return &s
}

// NewContext creates a context scope
func NewContext(span Span, syntax Syntax, lang string) *Scope {
	return &Scope{
		Kind:   KindContext,
		Source: Source{Scope: span},
		Meta:   Meta{Syntax: syntax, Lang: lang},
	}
}

// NewComment creates a comment scope
func NewComment(span Span) *Scope {
	return &Scope{Kind: KindComment, Source: Source{Scope: span}}
}

// NewClassAttr creates a class attribute scope. static is false when the
// attribute value may not be a literal class list.
func NewClassAttr(span Span, static bool) *Scope {
	return &Scope{
		Kind:   KindClassAttr,
		Source: Source{Scope: span},
		Meta:   Meta{Static: static},
	}
}

// NewClassList creates a class list scope
func NewClassList(span Span) *Scope {
	return &Scope{Kind: KindClassList, Source: Source{Scope: span}}
}

// NewClassName creates a class name scope
func NewClassName(span Span) *Scope {
	return &Scope{Kind: KindClassName, Source: Source{Scope: span}}
}

// NewAtRule creates a generic at-rule scope. body may be nil.
func NewAtRule(span, name, params Span, body *Span) *Scope {
	src := Source{Scope: span, Name: spanPtr(name), Params: spanPtr(params)}
	if body != nil {
		src.Body = spanPtr(*body)
	}
	return &Scope{Kind: KindAtRule, Source: src}
}

// NewAtRuleUtility creates an @utility scope
func NewAtRuleUtility(span, name Span, kind UtilityKind) *Scope {
	return &Scope{
		Kind:   KindAtRuleUtility,
		Source: Source{Scope: span, Name: spanPtr(name)},
		Meta:   Meta{Utility: kind},
	}
}

// NewAtRuleImport creates an @import scope. url and sourceURL may be nil.
func NewAtRuleImport(span Span, url, sourceURL *Span) *Scope {
	src := Source{Scope: span}
	if url != nil {
		src.URL = spanPtr(*url)
	}
	if sourceURL != nil {
		src.SourceURL = spanPtr(*sourceURL)
	}
	return &Scope{Kind: KindAtRuleImport, Source: src}
}

// NewFn creates a helper function scope
func NewFn(span, name, params Span) *Scope {
	return &Scope{
		Kind:   KindFn,
		Source: Source{Scope: span, Name: spanPtr(name), Params: spanPtr(params)},
	}
}

// NewThemeOptionList creates a theme option list scope
func NewThemeOptionList(span Span) *Scope {
	return &Scope{Kind: KindThemeOptionList, Source: Source{Scope: span}}
}

// NewThemeOptionName creates a theme option scope
func NewThemeOptionName(span Span) *Scope {
	return &Scope{Kind: KindThemeOptionName, Source: Source{Scope: span}}
}

// NewThemePrefix creates a theme prefix scope
func NewThemePrefix(span Span) *Scope {
	return &Scope{Kind: KindThemePrefix, Source: Source{Scope: span}}
}
