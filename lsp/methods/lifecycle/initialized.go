package lifecycle

import (
	"bennypowers.dev/twls/internal/log"
	"bennypowers.dev/twls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification. Project config and
// watcher failures are warnings; the server keeps running on defaults.
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	req.Server.SetGLSPContext(req.GLSP)

	if err := req.Server.LoadProjectConfig(); err != nil {
		req.AddWarning(err)
	}
	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		req.AddWarning(err)
	}
	return nil
}
