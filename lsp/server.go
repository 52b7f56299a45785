// Package lsp serves scope analysis over the Language Server Protocol.
package lsp

import (
	"path/filepath"
	"slices"
	"sync"

	"bennypowers.dev/twls/internal/analysis"
	"bennypowers.dev/twls/internal/boundaries"
	"bennypowers.dev/twls/internal/config"
	"bennypowers.dev/twls/internal/documents"
	"bennypowers.dev/twls/internal/log"
	"bennypowers.dev/twls/internal/scopes"
	"bennypowers.dev/twls/internal/uriutil"
	"bennypowers.dev/twls/lsp/methods/lifecycle"
	"bennypowers.dev/twls/lsp/methods/textDocument"
	"bennypowers.dev/twls/lsp/methods/textDocument/hover"
	"bennypowers.dev/twls/lsp/methods/workspace"
	"bennypowers.dev/twls/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server is the Tailwind scope analysis language server
type Server struct {
	documents  *documents.Manager
	boundaries *boundaries.Cache
	glspServer *server.Server

	// configMu protects every field below
	configMu      sync.RWMutex
	context       *glsp.Context
	rootURI       string
	rootPath      string
	config        config.Config
	projectConfig config.Config // defaults or the project file, before client settings
	settings      any           // last client settings, reapplied when the project file changes
	hoverFormat   protocol.MarkupKind
}

// NewServer creates a new server. cfg seeds the configuration until a
// project file or client settings replace it.
func NewServer(cfg config.Config) (*Server, error) {
	s := &Server{
		documents:     documents.NewManager(),
		boundaries:    boundaries.NewCache(boundaries.DefaultCacheSize, boundaries.DefaultCacheTTL),
		config:        cfg,
		projectConfig: cfg,
		hoverFormat:   protocol.MarkupKindMarkdown,
	}

	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceDidChangeWatchedFiles:  notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentHover:               method(s, "textDocument/hover", hover.Hover),
	}

	customHandler := &CustomHandler{
		Handler: &protocolHandler,
		server:  s,
	}

	s.glspServer = server.NewServer(customHandler, lifecycle.ServerName, false)

	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases the pooled parsers. It is safe to call Close multiple
// times.
func (s *Server) Close() error {
	boundaries.ClosePool()
	return nil
}

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// Analyze builds the scope tree of content. Custom language ids are mapped
// through includeLanguages before boundary detection.
func (s *Server) Analyze(content, languageID string) *scopes.Tree {
	cfg := s.GetConfig()
	languageID = cfg.ResolveLanguage(languageID)
	return analysis.AnalyzeDocument(content, s.boundaries.Detect(content, languageID), cfg.AnalysisConfig())
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
}

// GetConfig returns the current configuration
func (s *Server) GetConfig() config.Config {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config
}

// SetConfig replaces the configuration and drops cached scope trees
func (s *Server) SetConfig(cfg config.Config) {
	s.configMu.Lock()
	s.config = cfg
	s.projectConfig = cfg
	s.settings = nil
	s.configMu.Unlock()

	s.documents.InvalidateAll()
}

// ApplySettings merges client settings onto the project configuration.
// Invalid settings leave the configuration unchanged.
func (s *Server) ApplySettings(settings any) error {
	s.configMu.Lock()
	cfg, err := config.MergeSettings(s.projectConfig, settings)
	if err != nil {
		s.configMu.Unlock()
		return err
	}
	s.config = cfg
	s.settings = settings
	s.configMu.Unlock()

	s.documents.InvalidateAll()
	return nil
}

// LoadProjectConfig reads the project config file from the workspace root,
// then reapplies client settings on top. Without a file the defaults apply.
func (s *Server) LoadProjectConfig() error {
	base := config.Default()
	if root := s.RootPath(); root != "" {
		if path := config.FindProjectFile(root); path != "" {
			loaded, err := config.LoadFile(path)
			if err != nil {
				return err
			}
			log.Info("Loaded project config: %s", path)
			base = loaded
		}
	}

	s.configMu.Lock()
	s.projectConfig = base
	cfg, err := config.MergeSettings(base, s.settings)
	if err != nil {
		cfg = base
	}
	s.config = cfg
	s.configMu.Unlock()

	s.documents.InvalidateAll()
	return nil
}

// IsProjectConfigFile reports whether path names a project config file
func (s *Server) IsProjectConfigFile(path string) bool {
	return slices.Contains(config.ProjectFileNames, filepath.Base(path))
}

// IsExcluded reports whether a document matches files.exclude. Only file
// URIs can be excluded.
func (s *Server) IsExcluded(uri string) bool {
	if !uriutil.IsFileURI(uri) {
		return false
	}
	return s.GetConfig().IsExcluded(uriutil.URIToPath(uri))
}

// PreferredHoverFormat returns the markup kind hover content is rendered in
func (s *Server) PreferredHoverFormat() protocol.MarkupKind {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.hoverFormat
}

// SetPreferredHoverFormat sets the markup kind for hover content
func (s *Server) SetPreferredHoverFormat(format protocol.MarkupKind) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.hoverFormat = format
}

// GLSPContext returns the GLSP context
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}

// RegisterFileWatchers asks the client to watch project config files
func (s *Server) RegisterFileWatchers(context *glsp.Context) error {
	// Contexts built in tests have no connection
	if context == nil || context.Call == nil {
		log.Debug("Skipping file watcher registration (no client context)")
		return nil
	}

	watchers := make([]protocol.FileSystemWatcher, 0, len(config.ProjectFileNames))
	for _, name := range config.ProjectFileNames {
		watchers = append(watchers, protocol.FileSystemWatcher{GlobPattern: "**/" + name})
	}

	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{
			{
				ID:     "tailwind-scopes-config-watcher",
				Method: "workspace/didChangeWatchedFiles",
				RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
					Watchers: watchers,
				},
			},
		},
	}

	// client/registerCapability is a request; waiting for the response on the
	// handler goroutine would deadlock the message loop
	go func(ctx *glsp.Context) {
		var result any
		ctx.Call("client/registerCapability", params, &result)
		log.Debug("File watcher registration completed")
	}(context)

	log.Info("Sent file watcher registration request (%d watchers)", len(watchers))
	return nil
}
