package types

import (
	"bennypowers.dev/twls/internal/config"
	"bennypowers.dev/twls/internal/documents"
	"bennypowers.dev/twls/internal/scopes"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerContext provides all dependencies needed for LSP handlers.
// Handlers depend on this interface so tests can substitute a mock.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Analyze builds the scope tree of a document's content. It matches
	// documents.AnalyzeFunc so it can be handed to Document.Scopes.
	Analyze(content, languageID string) *scopes.Tree

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration
	GetConfig() config.Config
	SetConfig(cfg config.Config)
	// ApplySettings merges client settings onto the project configuration
	ApplySettings(settings any) error
	IsExcluded(uri string) bool
	LoadProjectConfig() error
	IsProjectConfigFile(path string) bool
	RegisterFileWatchers(ctx *glsp.Context) error

	// Client capabilities
	PreferredHoverFormat() protocol.MarkupKind
	SetPreferredHoverFormat(format protocol.MarkupKind)

	// LSP context (for notifications outside a request)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)
}
