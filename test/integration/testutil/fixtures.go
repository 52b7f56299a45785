package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/twls/internal/config"
	"bennypowers.dev/twls/internal/scopes"
	"bennypowers.dev/twls/lsp"
	"bennypowers.dev/twls/lsp/methods/tailwindCSS"
	"bennypowers.dev/twls/lsp/methods/textDocument"
	"bennypowers.dev/twls/lsp/methods/textDocument/hover"
	"bennypowers.dev/twls/lsp/types"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// FixtureRoot returns the path to the test fixtures directory
func FixtureRoot() string {
	return filepath.Join("..", "fixtures")
}

// LoadFixture loads a fixture file and returns its content
func LoadFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(FixtureRoot(), name)
	data, err := os.ReadFile(path) //nolint:gosec // G304: Test fixture path - test code only
	require.NoError(t, err, "Failed to load fixture: %s", name)
	return string(data)
}

// NewTestServer creates a server with the default configuration. It is
// closed when the test ends.
func NewTestServer(t *testing.T) *lsp.Server {
	t.Helper()
	server, err := lsp.NewServer(config.Default())
	require.NoError(t, err, "Failed to create test server")
	t.Cleanup(func() { _ = server.Close() })
	return server
}

// Request returns a request context for calling handlers directly
func Request(server *lsp.Server) *types.RequestContext {
	return types.NewRequestContext(server, nil)
}

// OpenDocument opens text as a document in the server
func OpenDocument(t *testing.T, server *lsp.Server, uri, languageID, text string) {
	t.Helper()
	err := textDocument.DidOpen(Request(server), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: languageID,
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err, "Failed to open %s", uri)
}

// Hover requests hover information at a position
func Hover(t *testing.T, server *lsp.Server, uri string, line, character uint32) *protocol.Hover {
	t.Helper()
	result, err := hover.Hover(Request(server), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: line, Character: character},
		},
	})
	require.NoError(t, err, "Hover failed for %s", uri)
	return result
}

// ClassNames returns the text of every class.name scope in a document, in
// document order
func ClassNames(t *testing.T, server *lsp.Server, uri string) []string {
	t.Helper()
	result, err := tailwindCSS.GetScopes(Request(server), &tailwindCSS.GetScopesParams{URI: uri})
	require.NoError(t, err, "Failed to get scopes for %s", uri)

	doc := server.Document(uri)
	require.NotNil(t, doc)
	text := doc.Content()

	names := []string{}
	scopes.Walk(result.Scopes, scopes.Visitor{Enter: func(scope *scopes.Scope, _ scopes.Path) {
		if scope.Kind == scopes.KindClassName {
			names = append(names, scope.Span().Text(text))
		}
	}})
	return names
}
