// Package testutil provides a ServerContext for handler tests.
package testutil

import (
	"path/filepath"
	"slices"

	"bennypowers.dev/twls/internal/analysis"
	"bennypowers.dev/twls/internal/boundaries"
	"bennypowers.dev/twls/internal/config"
	"bennypowers.dev/twls/internal/documents"
	"bennypowers.dev/twls/internal/scopes"
	"bennypowers.dev/twls/internal/uriutil"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// MockServerContext implements types.ServerContext for testing. It analyzes
// documents for real; workspace hooks are configurable via callbacks.
type MockServerContext struct {
	docs        *documents.Manager
	rootURI     string
	rootPath    string
	config      config.Config
	hoverFormat protocol.MarkupKind
	glspContext *glsp.Context

	// Optional callbacks for custom behavior in tests
	LoadProjectConfigFunc func() error
	RegisterWatchersFunc  func(*glsp.Context) error

	// Tracking for tests that verify calls
	LoadProjectConfigCalled bool
	RegisterWatchersCalled  bool
	AnalyzeCalls            int
}

// NewMockServerContext creates a mock with the default configuration
func NewMockServerContext() *MockServerContext {
	return &MockServerContext{
		docs:        documents.NewManager(),
		config:      config.Default(),
		hoverFormat: protocol.MarkupKindMarkdown,
	}
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// Analyze detects boundaries and analyzes content without caching
func (m *MockServerContext) Analyze(content, languageID string) *scopes.Tree {
	m.AnalyzeCalls++
	languageID = m.config.ResolveLanguage(languageID)
	return analysis.AnalyzeDocument(content, boundaries.Detect(content, languageID), m.config.AnalysisConfig())
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.rootPath = path
}

// GetConfig returns the server configuration
func (m *MockServerContext) GetConfig() config.Config {
	return m.config
}

// SetConfig sets the server configuration
func (m *MockServerContext) SetConfig(cfg config.Config) {
	m.config = cfg
}

// ApplySettings merges settings onto the current configuration
func (m *MockServerContext) ApplySettings(settings any) error {
	cfg, err := config.MergeSettings(m.config, settings)
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// IsExcluded reports whether the document's path matches an exclude glob
func (m *MockServerContext) IsExcluded(uri string) bool {
	return m.config.IsExcluded(uriutil.URIToPath(uri))
}

// LoadProjectConfig records the call and runs LoadProjectConfigFunc
func (m *MockServerContext) LoadProjectConfig() error {
	m.LoadProjectConfigCalled = true
	if m.LoadProjectConfigFunc != nil {
		return m.LoadProjectConfigFunc()
	}
	return nil
}

// IsProjectConfigFile matches the server's project config file names
func (m *MockServerContext) IsProjectConfigFile(path string) bool {
	return slices.Contains(config.ProjectFileNames, filepath.Base(path))
}

// RegisterFileWatchers records the call and runs RegisterWatchersFunc
func (m *MockServerContext) RegisterFileWatchers(ctx *glsp.Context) error {
	m.RegisterWatchersCalled = true
	if m.RegisterWatchersFunc != nil {
		return m.RegisterWatchersFunc(ctx)
	}
	return nil
}

// PreferredHoverFormat returns the hover markup kind
func (m *MockServerContext) PreferredHoverFormat() protocol.MarkupKind {
	return m.hoverFormat
}

// SetPreferredHoverFormat sets the hover markup kind
func (m *MockServerContext) SetPreferredHoverFormat(format protocol.MarkupKind) {
	m.hoverFormat = format
}

// GLSPContext returns the GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

// SetGLSPContext sets the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}
