package css_test

import (
	"testing"

	"bennypowers.dev/twls/internal/scopes"
	"bennypowers.dev/twls/internal/scopes/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func span(start, end int) scopes.Span {
	return scopes.Span{Start: start, End: end}
}

func whole(text string) scopes.Span {
	return span(0, len(text))
}

func spanOf(p *scopes.Span) any {
	if p == nil {
		return nil
	}
	return *p
}

func TestBlankComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no comments", "a { b: c }", "a { b: c }"},
		{"inline comment", "@apply /* */;", "@apply      ;"},
		{"keeps line breaks", "a/* x\ny */b", "a    \n    b"},
		{"two comments", "/**/a/**/", "    a    "},
		{"unterminated comment is kept", "a /* b", "a /* b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := css.BlankComments(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(tt.input))
		})
	}
}

func TestScanAtRules_Utility(t *testing.T) {
	text := "@utility foo {\n  color: red;\n}\n\n@utility bar-* {\n  color: --value(number);\n}"

	rules := css.ScanAtRules(text, whole(text), false)

	require.Len(t, rules, 2)

	foo := rules[0]
	assert.Equal(t, scopes.KindAtRule, foo.Kind)
	assert.Equal(t, span(0, 29), foo.Span())
	assert.Equal(t, span(0, 8), *foo.Source.Name)
	assert.Equal(t, span(9, 13), *foo.Source.Params)
	assert.Equal(t, span(13, 29), *foo.Source.Body)
	require.Len(t, foo.Children, 1)
	assert.Equal(t, scopes.KindAtRuleUtility, foo.Children[0].Kind)
	assert.Equal(t, span(0, 29), foo.Children[0].Span())
	assert.Equal(t, span(9, 12), *foo.Children[0].Source.Name)
	assert.Equal(t, scopes.UtilityStatic, foo.Children[0].Meta.Utility)

	bar := rules[1]
	assert.Equal(t, span(32, 75), bar.Span())
	assert.Equal(t, span(41, 47), *bar.Source.Params)
	assert.Equal(t, span(47, 75), *bar.Source.Body)
	require.Len(t, bar.Children, 1)
	assert.Equal(t, span(41, 44), *bar.Children[0].Source.Name)
	assert.Equal(t, scopes.UtilityFunctional, bar.Children[0].Meta.Utility)
}

func TestScanAtRules_Partial(t *testing.T) {
	text := ".foo {\n  @apply bg-red-500 text-white;\n}\n\n@vari /* */;\n@apply /* */;\n@theme inline;"

	rules := css.ScanAtRules(text, whole(text), false)

	require.Len(t, rules, 4)

	type rule struct {
		name, params scopes.Span
		span         scopes.Span
	}
	var got []rule
	for _, r := range rules {
		assert.Nil(t, r.Source.Body)
		got = append(got, rule{*r.Source.Name, *r.Source.Params, r.Span()})
	}

	assert.Equal(t, []rule{
		{span(9, 15), span(16, 37), span(9, 37)},
		{span(42, 47), span(48, 53), span(42, 53)},
		{span(55, 61), span(62, 67), span(55, 67)},
		{span(69, 75), span(76, 82), span(69, 82)},
	}, got)

	theme := rules[3]
	require.Len(t, theme.Children, 1)
	assert.Equal(t, scopes.KindThemeOptionList, theme.Children[0].Kind)
	assert.Equal(t, span(76, 82), theme.Children[0].Span())
	require.Len(t, theme.Children[0].Children, 1)
	assert.Equal(t, span(76, 82), theme.Children[0].Children[0].Span())
}

func TestScanAtRules_Body(t *testing.T) {
	t.Run("nested braces", func(t *testing.T) {
		text := "@media screen { .a { color: red } }"

		rules := css.ScanAtRules(text, whole(text), false)

		require.Len(t, rules, 1)
		assert.Equal(t, span(14, 34), *rules[0].Source.Body)
		assert.Equal(t, span(0, 34), rules[0].Span())
	})

	t.Run("nested at-rules are found", func(t *testing.T) {
		text := "@layer base { @apply flex; }"

		rules := css.ScanAtRules(text, whole(text), false)

		require.Len(t, rules, 2)
		assert.Equal(t, span(0, 27), rules[0].Span())
		assert.Equal(t, span(14, 25), rules[1].Span())
	})

	t.Run("unterminated body runs to the end", func(t *testing.T) {
		text := "@media screen {\n  .a { color: red }"

		rules := css.ScanAtRules(text, whole(text), false)

		require.Len(t, rules, 1)
		assert.Equal(t, span(14, len(text)), *rules[0].Source.Body)
	})

	t.Run("offset spans are document absolute", func(t *testing.T) {
		text := "<style>@apply flex;</style>"

		rules := css.ScanAtRules(text, span(7, 19), false)

		require.Len(t, rules, 1)
		assert.Equal(t, span(7, 18), rules[0].Span())
		assert.Equal(t, span(14, 18), *rules[0].Source.Params)
	})
}

func TestScanAtRules_Semicolonless(t *testing.T) {
	text := ".a\n  @apply flex underline\n  color: red\n@theme inline\n"

	rules := css.ScanAtRules(text, whole(text), true)

	require.Len(t, rules, 2)
	assert.Equal(t, span(12, 26), *rules[0].Source.Params)
	assert.Nil(t, rules[0].Source.Body)
	assert.Equal(t, span(47, 53), *rules[1].Source.Params)
}

func TestScanAtRules_Import(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		url       any
		sourceURL any
		children  []scopes.Span
		kinds     []scopes.Kind
	}{
		{
			name:  "quoted url",
			input: "@import './foo.css';",
			url:   span(9, 18),
		},
		{
			name:  "url function",
			input: "@import url('./foo.css');",
			url:   span(13, 22),
		},
		{
			name:  "reference",
			input: `@reference "./foo.css";`,
			url:   span(12, 21),
		},
		{
			name:      "bare source",
			input:     "@import './foo.css' source(none);",
			url:       span(9, 18),
			sourceURL: span(27, 31),
		},
		{
			name:      "quoted source",
			input:     "@import './foo.css' source('./foo');",
			url:       span(9, 18),
			sourceURL: span(28, 33),
		},
		{
			name:      "source and theme",
			input:     "@import './foo.css' source('./foo') theme(inline);",
			url:       span(9, 18),
			sourceURL: span(28, 33),
			children:  []scopes.Span{span(42, 48)},
			kinds:     []scopes.Kind{scopes.KindThemeOptionList},
		},
		{
			name:     "empty theme",
			input:    "@import './foo.css' theme();",
			url:      span(9, 18),
			children: []scopes.Span{span(26, 26)},
			kinds:    []scopes.Kind{scopes.KindThemeOptionList},
		},
		{
			name:     "prefix",
			input:    "@import 'tailwindcss' prefix(tw);",
			url:      span(9, 20),
			children: []scopes.Span{span(29, 31)},
			kinds:    []scopes.Kind{scopes.KindThemePrefix},
		},
		{
			name:  "bare url",
			input: "@import tailwindcss;",
			url:   span(8, 19),
		},
		{
			name:  "unterminated url",
			input: "@import './foo",
			url:   span(9, 14),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := css.ScanAtRules(tt.input, whole(tt.input), false)

			require.Len(t, rules, 1)
			require.Len(t, rules[0].Children, 1)
			imp := rules[0].Children[0]

			assert.Equal(t, scopes.KindAtRuleImport, imp.Kind)
			assert.Equal(t, rules[0].Span(), imp.Span())
			assert.Equal(t, tt.url, spanOf(imp.Source.URL))
			assert.Equal(t, tt.sourceURL, spanOf(imp.Source.SourceURL))

			var children []scopes.Span
			var kinds []scopes.Kind
			for _, c := range imp.Children {
				children = append(children, c.Span())
				kinds = append(kinds, c.Kind)
			}
			assert.Equal(t, tt.children, children)
			assert.Equal(t, tt.kinds, kinds)
		})
	}
}

func TestScanAtRules_ImportThemeOptions(t *testing.T) {
	text := "@import './foo.css' theme(inline reference default);"

	rules := css.ScanAtRules(text, whole(text), false)

	list := rules[0].Children[0].Children[0]
	assert.Equal(t, span(26, 50), list.Span())

	var names []string
	for _, c := range list.Children {
		assert.Equal(t, scopes.KindThemeOptionName, c.Kind)
		names = append(names, c.Span().Text(text))
	}
	assert.Equal(t, []string{"inline", "reference", "default"}, names)
}

func TestScanApply(t *testing.T) {
	t.Run("class list excludes the terminator", func(t *testing.T) {
		text := ".foo {\n  @apply bg-red-500 text-white;\n}"

		lists := css.ScanApply(text, whole(text), false)

		require.Len(t, lists, 1)
		assert.Equal(t, scopes.KindClassList, lists[0].Kind)
		assert.Equal(t, span(16, 37), lists[0].Span())
		require.Len(t, lists[0].Children, 2)
		assert.Equal(t, span(16, 26), lists[0].Children[0].Span())
		assert.Equal(t, span(27, 37), lists[0].Children[1].Span())
	})

	t.Run("important flag is excluded", func(t *testing.T) {
		text := "@apply flex !important;"

		lists := css.ScanApply(text, whole(text), false)

		require.Len(t, lists, 1)
		assert.Equal(t, "flex", lists[0].Span().Text(text))
	})

	t.Run("closing brace ends the list", func(t *testing.T) {
		text := ".a { @apply flex }"

		lists := css.ScanApply(text, whole(text), false)

		require.Len(t, lists, 1)
		assert.Equal(t, "flex", lists[0].Span().Text(text))
	})

	t.Run("comment only list has empty names", func(t *testing.T) {
		text := "@apply /* */;"

		lists := css.ScanApply(text, whole(text), false)

		require.Len(t, lists, 1)
		assert.Equal(t, span(11, 12), lists[0].Span())
		require.Len(t, lists[0].Children, 2)
		assert.Equal(t, span(11, 11), lists[0].Children[0].Span())
		assert.Equal(t, span(12, 12), lists[0].Children[1].Span())
	})

	t.Run("apply inside a comment is ignored", func(t *testing.T) {
		text := "/* @apply flex; */"

		assert.Empty(t, css.ScanApply(text, whole(text), false))
	})

	t.Run("semicolonless lists end at the line break", func(t *testing.T) {
		text := ".a\n  @apply flex underline\n  color: red"

		lists := css.ScanApply(text, whole(text), true)

		require.Len(t, lists, 1)
		assert.Equal(t, "flex underline", lists[0].Span().Text(text))
	})

	t.Run("semicolonless list at the end of text", func(t *testing.T) {
		text := "@apply flex"

		lists := css.ScanApply(text, whole(text), true)

		require.Len(t, lists, 1)
		assert.Equal(t, span(7, 11), lists[0].Span())
	})
}

func TestScanHelperFns(t *testing.T) {
	text := ".foo {\n  color: theme(--color-red-500);\n  background: --alpha(var(--color-red-500));\n}"

	fns := css.ScanHelperFns(text, whole(text))

	require.Len(t, fns, 2)

	assert.Equal(t, scopes.KindFn, fns[0].Kind)
	assert.Equal(t, span(16, 38), fns[0].Span())
	assert.Equal(t, span(16, 21), *fns[0].Source.Name)
	assert.Equal(t, span(22, 37), *fns[0].Source.Params)

	assert.Equal(t, span(54, 83), fns[1].Span())
	assert.Equal(t, span(54, 61), *fns[1].Source.Name)
	assert.Equal(t, span(62, 82), *fns[1].Source.Params)
}

func TestScanHelperFns_Edges(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"all helpers", "a: config(x) --theme(y) --spacing(2) theme(z)", []string{"config(x)", "--theme(y)", "--spacing(2)", "theme(z)"}},
		{"nested helpers", "--alpha(theme(--c) / 50%)", []string{"--alpha(theme(--c) / 50%)", "theme(--c)"}},
		{"quoted parens", `theme("a)b")`, []string{`theme("a)b")`}},
		{"var is not a helper", "var(--x)", nil},
		{"suffix of another name", "mytheme(x) a-theme(y)", nil},
		{"unclosed call", "theme(--x", nil},
		{"commented call", "/* theme(x) */", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, fn := range css.ScanHelperFns(tt.input, whole(tt.input)) {
				got = append(got, fn.Span().Text(tt.input))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
