package workspace

import (
	"bennypowers.dev/twls/internal/config"
	"bennypowers.dev/twls/internal/log"
	"bennypowers.dev/twls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration
// notification. Invalid settings are reported and ignored.
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	if err := req.Server.ApplySettings(params.Settings); err != nil {
		LogWarning(req.GLSP, "Ignoring invalid %s settings: %v", config.SettingsKey, err)
		return nil
	}

	log.Debug("New configuration: %+v", req.Server.GetConfig())
	return nil
}
