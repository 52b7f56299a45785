// Package tailwindCSS implements the server's custom requests.
package tailwindCSS

import (
	"fmt"

	"bennypowers.dev/twls/internal/documents"
	"bennypowers.dev/twls/internal/log"
	"bennypowers.dev/twls/internal/scopes"
	"bennypowers.dev/twls/lsp/types"
)

// MethodGetScopes returns the scope tree of an open document
const MethodGetScopes = "@/tailwindCSS/scopes/get"

// GetScopesParams names the document to analyze
type GetScopesParams struct {
	URI string `json:"uri"`
}

// GetScopesResult holds the root scopes of the document
type GetScopesResult struct {
	Scopes []*scopes.Scope `json:"scopes"`
}

// GetScopes handles the @/tailwindCSS/scopes/get request. Excluded documents
// yield an empty list.
func GetScopes(req *types.RequestContext, params *GetScopesParams) (*GetScopesResult, error) {
	log.Debug("Scopes requested: %s", params.URI)

	doc := req.Server.Document(params.URI)
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", documents.ErrDocumentNotFound, params.URI)
	}
	if req.Server.IsExcluded(params.URI) {
		return &GetScopesResult{Scopes: []*scopes.Scope{}}, nil
	}

	tree := doc.Scopes(req.Server.Analyze)
	if log.Enabled(log.LevelDebug) {
		log.Debug("Scopes of %s:%s", params.URI, scopes.Print(tree.All(), doc.Content()))
	}
	roots := tree.All()
	if roots == nil {
		roots = []*scopes.Scope{}
	}
	return &GetScopesResult{Scopes: roots}, nil
}
