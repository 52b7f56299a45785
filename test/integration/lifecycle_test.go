package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/twls/internal/uriutil"
	"bennypowers.dev/twls/lsp/methods/lifecycle"
	"bennypowers.dev/twls/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// TestServerLifecycle drives a session from initialize to shutdown against a
// workspace with a project config file
func TestServerLifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "twls.yaml"), []byte("classAttributes: [class, tw]\n"), 0o600))

	server := testutil.NewTestServer(t)
	rootURI := uriutil.PathToURI(tmpDir)

	result, err := lifecycle.Initialize(testutil.Request(server), &protocol.InitializeParams{
		RootURI: &rootURI,
		InitializationOptions: map[string]any{
			"tailwindCSS": map[string]any{"includeLanguages": map[string]any{"gotmpl": "html"}},
		},
	})
	require.NoError(t, err)
	initResult, ok := result.(protocol.InitializeResult)
	require.True(t, ok, "Result should be InitializeResult")
	require.NotNil(t, initResult.ServerInfo)
	assert.Equal(t, "tailwind-scopes", initResult.ServerInfo.Name)
	assert.Equal(t, tmpDir, server.RootPath())

	require.NoError(t, lifecycle.Initialized(testutil.Request(server), &protocol.InitializedParams{}))

	cfg := server.GetConfig()
	assert.Equal(t, []string{"class", "tw"}, cfg.ClassAttributes, "project file should be loaded")
	assert.Equal(t, "html", cfg.ResolveLanguage("gotmpl"), "initialization options should survive the project file")

	uri := uriutil.PathToURI(filepath.Join(tmpDir, "index.gotmpl"))
	testutil.OpenDocument(t, server, uri, "gotmpl", `<p tw="grid"></p>`)
	assert.Equal(t, []string{"grid"}, testutil.ClassNames(t, server, uri))

	hover := testutil.Hover(t, server, uri, 0, 8)
	require.NotNil(t, hover)
	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "`class.name` `grid`")

	require.NoError(t, lifecycle.Shutdown(testutil.Request(server)))
}
