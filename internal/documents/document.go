package documents

import (
	"fmt"
	"sync"

	"bennypowers.dev/twls/internal/scopes"
)

// AnalyzeFunc builds the scope tree of a document's content
type AnalyzeFunc func(content, languageID string) *scopes.Tree

// Document represents a text document being managed by the language server.
// Its scope tree is built on first use and dropped whenever the content
// changes, so a tree always belongs to exactly one version.
type Document struct {
	mu         sync.RWMutex
	uri        string
	languageID string
	content    string
	version    int

	tree  *scopes.Tree
	folds *scopes.FoldCache
}

// NewDocument creates a new document
func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the document's version
func (d *Document) Version() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// Content returns the document's current content
func (d *Document) Content() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content
}

// Snapshot returns the content and version together
func (d *Document) Snapshot() (content string, version int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content, d.version
}

// SetContent updates the document's content and version.
// Updates older than the current version fail with ErrStaleVersion.
func (d *Document) SetContent(content string, version int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if version < d.version {
		return fmt.Errorf("%w: document version is %d but update version is %d", ErrStaleVersion, d.version, version)
	}
	d.content = content
	d.version = version
	d.tree = nil
	d.folds = nil
	return nil
}

// Invalidate drops the cached scope tree so the next use rebuilds it
func (d *Document) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tree = nil
	d.folds = nil
}

func (d *Document) analyzed(analyze AnalyzeFunc) (*scopes.Tree, *scopes.FoldCache) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tree == nil {
		d.tree = analyze(d.content, d.languageID)
		d.folds = scopes.NewFoldCache()
	}
	return d.tree, d.folds
}

// Scopes returns the scope tree of the current version, running analyze
// only when no tree has been built for it yet
func (d *Document) Scopes(analyze AnalyzeFunc) *scopes.Tree {
	tree, _ := d.analyzed(analyze)
	return tree
}

// ContextAt returns the scope path at byte offset and its folded context.
// Folded contexts are memoized for the current version.
func (d *Document) ContextAt(analyze AnalyzeFunc, offset int) (scopes.Path, scopes.Context) {
	tree, folds := d.analyzed(analyze)
	path := tree.At(offset)
	return path, folds.Fold(path)
}
