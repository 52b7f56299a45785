package textDocument

import (
	"bennypowers.dev/twls/internal/log"
	"bennypowers.dev/twls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification
func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	log.Debug("Document opened: %s (language: %s, version: %d)", doc.URI, doc.LanguageID, doc.Version)

	return req.Server.DocumentManager().DidOpen(doc.URI, doc.LanguageID, int(doc.Version), doc.Text)
}

// DidChange handles the textDocument/didChange notification
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)
	log.Debug("Document changed: %s (version: %d, changes: %d)", uri, version, len(params.ContentChanges))

	return req.Server.DocumentManager().DidChange(uri, version, contentChanges(params.ContentChanges))
}

// contentChanges converts the decoded change events. Whole-document events
// become range-less changes; anything else is dropped.
func contentChanges(raw []any) []protocol.TextDocumentContentChangeEvent {
	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(raw))
	for _, change := range raw {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, c)
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, protocol.TextDocumentContentChangeEvent{Text: c.Text})
		default:
			log.Warn("Ignoring content change of type %T", change)
		}
	}
	return changes
}

// DidClose handles the textDocument/didClose notification
func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	log.Debug("Document closed: %s", params.TextDocument.URI)
	return req.Server.DocumentManager().DidClose(params.TextDocument.URI)
}
