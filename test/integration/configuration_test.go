package integration_test

import (
	"testing"

	"bennypowers.dev/twls/lsp/methods/workspace"
	"bennypowers.dev/twls/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// TestConfiguration_IncludeLanguages tests that a settings change reanalyzes
// documents already open
func TestConfiguration_IncludeLanguages(t *testing.T) {
	server := testutil.NewTestServer(t)
	uri := "file:///workspace/page.gotmpl"
	testutil.OpenDocument(t, server, uri, "gotmpl", `<div class="a b"></div>`)

	assert.Empty(t, testutil.ClassNames(t, server, uri))

	err := workspace.DidChangeConfiguration(testutil.Request(server), &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{
			"tailwindCSS": map[string]any{
				"includeLanguages": map[string]any{"gotmpl": "html"},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, testutil.ClassNames(t, server, uri))
}

// TestConfiguration_Exclude tests that excluded documents are not analyzed
func TestConfiguration_Exclude(t *testing.T) {
	server := testutil.NewTestServer(t)
	uri := "file:///workspace/dist/index.html"
	testutil.OpenDocument(t, server, uri, "html", `<div class="a"></div>`)
	assert.Equal(t, []string{"a"}, testutil.ClassNames(t, server, uri))

	err := workspace.DidChangeConfiguration(testutil.Request(server), &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{"tailwindCSS.files.exclude": []any{"**/dist/**"}},
	})
	require.NoError(t, err)

	assert.Empty(t, testutil.ClassNames(t, server, uri))
	assert.Nil(t, testutil.Hover(t, server, uri, 0, 12))
}
