package lifecycle

import (
	"bennypowers.dev/twls/internal/boundaries"
	"bennypowers.dev/twls/internal/log"
	"bennypowers.dev/twls/lsp/types"
)

// Shutdown handles the LSP shutdown request by releasing the pooled parsers
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")
	boundaries.ClosePool()
	return nil
}
