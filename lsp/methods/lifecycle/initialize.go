package lifecycle

import (
	"fmt"
	"slices"

	"bennypowers.dev/twls/internal/log"
	"bennypowers.dev/twls/internal/uriutil"
	"bennypowers.dev/twls/internal/version"
	"bennypowers.dev/twls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported to clients in serverInfo
const ServerName = "tailwind-scopes"

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", clientName)

	if params.RootURI != nil {
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
	} else if params.RootPath != nil {
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
	}
	if root := req.Server.RootPath(); root != "" {
		log.Info("Workspace root: %s", root)
	}

	req.Server.SetPreferredHoverFormat(hoverFormat(params.Capabilities))

	if params.InitializationOptions != nil {
		if err := req.Server.ApplySettings(params.InitializationOptions); err != nil {
			req.AddWarning(fmt.Errorf("ignoring initialization options: %w", err))
		}
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	v := version.GetVersion()
	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: boolPtr(true),
				Change:    &syncKind,
			},
			HoverProvider: true,
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: &v,
		},
	}, nil
}

// hoverFormat picks the first markup kind the client lists that the server
// renders, preferring markdown when the client lists none
func hoverFormat(caps protocol.ClientCapabilities) protocol.MarkupKind {
	if caps.TextDocument == nil || caps.TextDocument.Hover == nil {
		return protocol.MarkupKindMarkdown
	}
	supported := []protocol.MarkupKind{protocol.MarkupKindMarkdown, protocol.MarkupKindPlainText}
	for _, kind := range caps.TextDocument.Hover.ContentFormat {
		if slices.Contains(supported, kind) {
			return kind
		}
	}
	return protocol.MarkupKindMarkdown
}

func boolPtr(b bool) *bool {
	return &b
}
