package boundaries_test

import (
	"fmt"
	"testing"
	"time"

	"bennypowers.dev/twls/internal/boundaries"
	"bennypowers.dev/twls/internal/scopes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b(start, end int, syntax scopes.Syntax, lang string) scopes.Boundary {
	return scopes.Boundary{Span: scopes.Span{Start: start, End: end}, Syntax: syntax, Lang: lang}
}

const document = `<html>
  <head>
    <style>
      @import 'tailwindcss' theme(static);

      .foo {
        @apply bg-red-500 text-white;
      }
    </style>
  </head>
  <body>
    <div class="bg-red-500 underline">Hello, world!</div>
    <script>
      export function Home() {
        return <div className="bg-red-500 underline">Hello, world!</div>
      }
    </script>
  </body>
</html>`

func assertCovers(t *testing.T, text string, got []scopes.Boundary) {
	t.Helper()
	require.NotEmpty(t, got)
	assert.Equal(t, 0, got[0].Span.Start)
	assert.Equal(t, len(text), got[len(got)-1].Span.End)
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1].Span.End, got[i].Span.Start, "boundary %d", i)
	}
}

func TestDetect_HTML(t *testing.T) {
	got := boundaries.Detect(document, "html")

	assert.Equal(t, []scopes.Boundary{
		b(0, 20, scopes.SyntaxHTML, "html"),
		b(20, 135, scopes.SyntaxCSS, ""),
		b(135, 225, scopes.SyntaxHTML, "html"),
		b(225, 350, scopes.SyntaxJS, ""),
		b(350, 377, scopes.SyntaxHTML, "html"),
	}, got)
	assertCovers(t, document, got)

	assert.Equal(t, "css", got[1].Language())
	assert.Equal(t, "js", got[3].Language())
}

func TestDetect_StyleBlock(t *testing.T) {
	text := "<head>\n  <style>\n    .foo {\n      @apply bg-black text-white;\n    }\n  </style>\n</head>"

	got := boundaries.Detect(text, "php")

	require.Len(t, got, 3)
	assert.Equal(t, b(0, 9, scopes.SyntaxHTML, "php"), got[0])
	assert.Equal(t, scopes.SyntaxCSS, got[1].Syntax)
	assert.Equal(t, 9, got[1].Span.Start)
	assertCovers(t, text, got)
}

func TestDetect_LanguageAttributes(t *testing.T) {
	text := `<script lang="ts">a</script><style lang="scss">b</style><script type="text/x-template"><div></div></script><script type="text/babel">c</script>`

	got := boundaries.Detect(text, "html")

	assert.Equal(t, []scopes.Boundary{
		b(0, 19, scopes.SyntaxJS, "ts"),
		b(19, 28, scopes.SyntaxHTML, "html"),
		b(28, 48, scopes.SyntaxCSS, "scss"),
		b(48, 56, scopes.SyntaxHTML, "html"),
		b(56, 98, scopes.SyntaxHTML, "html"),
		b(98, 107, scopes.SyntaxHTML, "html"),
		b(107, 134, scopes.SyntaxJS, "jsx"),
		b(134, 143, scopes.SyntaxHTML, "html"),
	}, got)
}

func TestDetect_Vue(t *testing.T) {
	text := "<template>\n  <div class=\"a\"></div>\n</template>\n\n<script>\nexport default {}\n</script>\n\n<style>\n.a { @apply flex; }\n</style>\n"

	got := boundaries.Detect(text, "vue")

	assert.Equal(t, []scopes.Boundary{
		b(0, 35, scopes.SyntaxHTML, "html"),
		b(35, 48, scopes.SyntaxOther, "vue"),
		b(48, 75, scopes.SyntaxJS, ""),
		b(75, 86, scopes.SyntaxOther, "vue"),
		b(86, 114, scopes.SyntaxCSS, ""),
		b(114, 123, scopes.SyntaxOther, "vue"),
	}, got)
}

func TestDetect_TaggedTemplates(t *testing.T) {
	text := "const s = css`.a { @apply flex; }`;\nconst h = html`<div class=\"p-4\"></div>`;\n"

	got := boundaries.Detect(text, "javascript")

	assert.Equal(t, []scopes.Boundary{
		b(0, 14, scopes.SyntaxJS, "js"),
		b(14, 33, scopes.SyntaxCSS, "css"),
		b(33, 51, scopes.SyntaxJS, "js"),
		b(51, 74, scopes.SyntaxHTML, "html"),
		b(74, 77, scopes.SyntaxJS, "js"),
	}, got)

	t.Run("language names", func(t *testing.T) {
		got := boundaries.Detect("let a = 1", "typescriptreact")
		assert.Equal(t, []scopes.Boundary{b(0, 9, scopes.SyntaxJS, "tsx")}, got)
	})

	t.Run("other tags are plain script", func(t *testing.T) {
		text := "const s = sql`select 1`"
		got := boundaries.Detect(text, "javascript")
		assert.Equal(t, []scopes.Boundary{b(0, len(text), scopes.SyntaxJS, "js")}, got)
	})
}

func TestDetect_SingleLanguage(t *testing.T) {
	tests := []struct {
		name       string
		languageID string
		want       scopes.Syntax
	}{
		{"css", "css", scopes.SyntaxCSS},
		{"sass keeps its lang", "sass", scopes.SyntaxCSS},
		{"reason is not parsed", "reason", scopes.SyntaxJS},
		{"unknown language", "plaintext", scopes.SyntaxOther},
	}

	text := "@apply flex;"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := boundaries.Detect(text, tt.languageID)
			assert.Equal(t, []scopes.Boundary{b(0, len(text), tt.want, tt.languageID)}, got)
		})
	}
}

func TestDetect_Edges(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		got := boundaries.Detect("", "html")
		assert.Equal(t, []scopes.Boundary{b(0, 0, scopes.SyntaxHTML, "html")}, got)
	})

	inputs := []string{
		"<style>.a { @apply flex; }",
		"<script>let a = '</scr",
		"<div><style></style><script></script></div>",
		"<<<>>><style",
		"plain text",
	}
	for _, input := range inputs {
		t.Run(fmt.Sprintf("covers %q", input), func(t *testing.T) {
			assertCovers(t, input, boundaries.Detect(input, "html"))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		languageID string
		want       scopes.Syntax
	}{
		{"html", scopes.SyntaxHTML},
		{"svelte", scopes.SyntaxHTML},
		{"vue", scopes.SyntaxHTML},
		{"HTML (EEx)", scopes.SyntaxHTML},
		{"postcss", scopes.SyntaxCSS},
		{"tailwindcss", scopes.SyntaxCSS},
		{"typescriptreact", scopes.SyntaxJS},
		{"rescript", scopes.SyntaxJS},
		{"go", scopes.SyntaxOther},
		{"", scopes.SyntaxOther},
	}

	for _, tt := range tests {
		t.Run(tt.languageID, func(t *testing.T) {
			assert.Equal(t, tt.want, boundaries.Classify(tt.languageID))
		})
	}

	assert.True(t, boundaries.IsCSSLanguage("scss"))
	assert.False(t, boundaries.IsCSSLanguage("html"))
}

func TestLanguageFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"index.html", "html"},
		{"src/App.VUE", "vue"},
		{"views/home.blade.php", "blade"},
		{"index.php", "php"},
		{"app.tsx", "typescriptreact"},
		{"styles/main.scss", "scss"},
		{"README", "plaintext"},
		{"main.go", "plaintext"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, boundaries.LanguageFromPath(tt.path))
		})
	}
}

func TestCache(t *testing.T) {
	t.Run("memoizes by language and text", func(t *testing.T) {
		c := boundaries.NewCache(boundaries.DefaultCacheSize, time.Minute)

		first := c.Detect(document, "html")
		second := c.Detect(document, "html")
		assert.Equal(t, first, second)
		assert.Equal(t, 1, c.Len())

		c.Detect(document, "plaintext")
		assert.Equal(t, 2, c.Len())
		assert.True(t, c.Cached(document, "html"))
		assert.False(t, c.Cached(document+" ", "html"))
	})

	t.Run("results are copies", func(t *testing.T) {
		c := boundaries.NewCache(boundaries.DefaultCacheSize, time.Minute)

		first := c.Detect(document, "html")
		first[0].Lang = "changed"
		assert.Equal(t, "html", c.Detect(document, "html")[0].Lang)
	})

	t.Run("bounded", func(t *testing.T) {
		c := boundaries.NewCache(2, time.Minute)

		c.Detect("a", "css")
		c.Detect("b", "css")
		c.Detect("c", "css")

		assert.Equal(t, 2, c.Len())
		assert.False(t, c.Cached("a", "css"))
		assert.True(t, c.Cached("c", "css"))
	})

	t.Run("expires", func(t *testing.T) {
		c := boundaries.NewCache(boundaries.DefaultCacheSize, 10*time.Millisecond)

		c.Detect("a", "css")
		assert.Eventually(t, func() bool {
			return !c.Cached("a", "css")
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("purge", func(t *testing.T) {
		c := boundaries.NewCache(boundaries.DefaultCacheSize, time.Minute)
		c.Detect("a", "css")
		c.Purge()
		assert.Equal(t, 0, c.Len())
	})
}

func BenchmarkDetect(b *testing.B) {
	for b.Loop() {
		boundaries.Detect(document, "html")
	}
}
