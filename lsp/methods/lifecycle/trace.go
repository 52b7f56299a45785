package lifecycle

import (
	"bennypowers.dev/twls/internal/log"
	"bennypowers.dev/twls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SetTrace handles the $/setTrace notification by adjusting the log level:
// verbose logs debug messages, messages logs info, off logs errors only
func SetTrace(req *types.RequestContext, params *protocol.SetTraceParams) error {
	level, err := log.ParseLevel(string(params.Value))
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.Info("Trace level set to: %s", params.Value)
	return nil
}
