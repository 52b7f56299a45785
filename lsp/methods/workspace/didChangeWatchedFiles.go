package workspace

import (
	"bennypowers.dev/twls/internal/log"
	"bennypowers.dev/twls/internal/uriutil"
	"bennypowers.dev/twls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles handles the workspace/didChangeWatchedFiles
// notification by reloading the project config file when it changes
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	log.Debug("Watched files changed: %d files", len(params.Changes))

	reload := false
	for _, change := range params.Changes {
		path := uriutil.URIToPath(change.URI)
		if req.Server.IsProjectConfigFile(path) {
			log.Info("Project config changed: %s (type: %d)", path, change.Type)
			reload = true
		}
	}

	if !reload {
		return nil
	}
	if err := req.Server.LoadProjectConfig(); err != nil {
		req.AddWarning(err)
	}
	return nil
}
