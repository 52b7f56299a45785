package hover_test

import (
	"testing"

	"bennypowers.dev/twls/lsp/methods/textDocument/hover"
	"bennypowers.dev/twls/lsp/testutil"
	"bennypowers.dev/twls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func hoverAt(t *testing.T, server *testutil.MockServerContext, uri string, line, char uint32) *protocol.Hover {
	t.Helper()
	result, err := hover.Hover(types.NewRequestContext(server, nil), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: line, Character: char},
		},
	})
	require.NoError(t, err)
	return result
}

func TestHover_ClassName(t *testing.T) {
	server := testutil.NewMockServerContext()
	uri := "file:///workspace/index.html"
	require.NoError(t, server.DocumentManager().DidOpen(uri, "html", 1, `<div class="flex p-4"></div>`))

	result := hoverAt(t, server, uri, 0, 13)

	require.NotNil(t, result)
	content, ok := result.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, protocol.MarkupKindMarkdown, content.Kind)
	assert.Equal(t, "**Scopes**\n\n"+
		"- `context` (syntax: html, lang: html)\n"+
		"- `class.attr` `flex p-4` (static: true)\n"+
		"- `class.list` `flex p-4`\n"+
		"- `class.name` `flex`\n"+
		"\n**Syntax** `html`\n", content.Value)

	require.NotNil(t, result.Range)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 12},
		End:   protocol.Position{Line: 0, Character: 16},
	}, *result.Range)
}

func TestHover_AtRule(t *testing.T) {
	server := testutil.NewMockServerContext()
	uri := "file:///workspace/app.css"
	text := ".a {\n  @apply underline;\n}"
	require.NoError(t, server.DocumentManager().DidOpen(uri, "css", 1, text))

	result := hoverAt(t, server, uri, 1, 12)

	require.NotNil(t, result)
	content := result.Contents.(protocol.MarkupContent)
	assert.Equal(t, "**Scopes**\n\n"+
		"- `context` (syntax: css, lang: css)\n"+
		"- `css.at-rule` `@apply`\n"+
		"- `class.list` `underline`\n"+
		"- `class.name` `underline`\n"+
		"\n**Syntax** `css`\n"+
		"\n**At-rules** `@apply`\n", content.Value)
}

func TestHover_Plaintext(t *testing.T) {
	server := testutil.NewMockServerContext()
	server.SetPreferredHoverFormat(protocol.MarkupKindPlainText)
	uri := "file:///workspace/index.html"
	require.NoError(t, server.DocumentManager().DidOpen(uri, "html", 1, `<p class="grid"></p>`))

	result := hoverAt(t, server, uri, 0, 11)

	require.NotNil(t, result)
	content := result.Contents.(protocol.MarkupContent)
	assert.Equal(t, protocol.MarkupKindPlainText, content.Kind)
	assert.Equal(t, "Scopes\n\n"+
		"context (syntax: html, lang: html)\n"+
		"class.attr \"grid\" (static: true)\n"+
		"class.list \"grid\"\n"+
		"class.name \"grid\"\n"+
		"\nSyntax: html\n", content.Value)
}

func TestHover_FoldedContext(t *testing.T) {
	t.Run("nested at-rules", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		uri := "file:///workspace/print.css"
		text := ".a {\n  @media print {\n    @apply flex;\n  }\n}"
		require.NoError(t, server.DocumentManager().DidOpen(uri, "css", 1, text))

		result := hoverAt(t, server, uri, 2, 12)

		require.NotNil(t, result)
		content := result.Contents.(protocol.MarkupContent)
		assert.Contains(t, content.Value, "**Syntax** `css`\n")
		assert.Contains(t, content.Value, "**At-rules** `@media` › `@apply`\n")
		assert.NotContains(t, content.Value, "_In comment_")
	})

	t.Run("comment", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		server.SetPreferredHoverFormat(protocol.MarkupKindPlainText)
		uri := "file:///workspace/index.html"
		require.NoError(t, server.DocumentManager().DidOpen(uri, "html", 1, `<!-- note --><p></p>`))

		result := hoverAt(t, server, uri, 0, 6)

		require.NotNil(t, result)
		content := result.Contents.(protocol.MarkupContent)
		assert.Contains(t, content.Value, "comment \"<!-- note -->\"\n")
		assert.Contains(t, content.Value, "Syntax: html\nIn comment\n")
		assert.NotContains(t, content.Value, "At-rules")
	})
}

func TestHover_NoResult(t *testing.T) {
	t.Run("unknown document", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		assert.Nil(t, hoverAt(t, server, "file:///workspace/missing.html", 0, 0))
	})

	t.Run("excluded document", func(t *testing.T) {
		server := testutil.NewMockServerContext()
		uri := "file:///workspace/node_modules/pkg/index.html"
		require.NoError(t, server.DocumentManager().DidOpen(uri, "html", 1, `<div class="flex"></div>`))

		assert.Nil(t, hoverAt(t, server, uri, 0, 13))
		assert.Zero(t, server.AnalyzeCalls)
	})
}

func TestHover_CachesAnalysis(t *testing.T) {
	server := testutil.NewMockServerContext()
	uri := "file:///workspace/index.html"
	require.NoError(t, server.DocumentManager().DidOpen(uri, "html", 1, `<div class="flex p-4"></div>`))

	hoverAt(t, server, uri, 0, 13)
	hoverAt(t, server, uri, 0, 18)

	assert.Equal(t, 1, server.AnalyzeCalls)
}
