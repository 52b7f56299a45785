package lsp

import (
	"encoding/json"
	"fmt"

	"bennypowers.dev/twls/lsp/methods/tailwindCSS"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CustomHandler wraps protocol.Handler to serve the server's own requests,
// which protocol.Handler has no fields for
type CustomHandler struct {
	*protocol.Handler // Pointer to avoid copying embedded mutex
	server            *Server
}

// Handle implements glsp.Handler interface
func (h *CustomHandler) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	switch context.Method {
	case tailwindCSS.MethodGetScopes:
		var params tailwindCSS.GetScopesParams
		if err := json.Unmarshal(context.Params, &params); err != nil {
			return nil, true, false, err
		}
		if params.URI == "" {
			return nil, true, false, fmt.Errorf("%s: missing uri", context.Method)
		}

		result, err := method(h.server, tailwindCSS.MethodGetScopes, tailwindCSS.GetScopes)(context, &params)
		return result, true, true, err
	}

	return h.Handler.Handle(context)
}
