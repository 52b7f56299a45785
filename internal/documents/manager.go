// Package documents tracks the open text documents of an LSP session and
// caches one scope tree per document version.
package documents

import (
	"errors"
	"fmt"
	"sync"

	"bennypowers.dev/twls/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	// ErrDocumentNotFound is returned for URIs that are not open
	ErrDocumentNotFound = errors.New("document not found")
	// ErrStaleVersion is returned for updates older than the document
	ErrStaleVersion = errors.New("rejected stale update")
)

// Manager manages text documents for the language server
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates a new document manager
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
	}
}

// Get retrieves a document by URI
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns all managed documents
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	return docs
}

// InvalidateAll drops every cached scope tree, as needed when the analysis
// configuration changes
func (m *Manager) InvalidateAll() {
	for _, doc := range m.GetAll() {
		doc.Invalidate()
	}
}

// DidOpen handles the textDocument/didOpen notification. Reopening a URI
// replaces the previous document.
func (m *Manager) DidOpen(uri, languageID string, version int, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documents[uri] = NewDocument(uri, languageID, version, content)
	return nil
}

// DidClose handles the textDocument/didClose notification
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, uri)
	}

	delete(m.documents, uri)
	return nil
}

// DidChange handles the textDocument/didChange notification. Changes apply
// in order; if any fails the document is left untouched.
func (m *Manager) DidChange(uri string, version int, changes []protocol.TextDocumentContentChangeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, uri)
	}

	content := doc.Content()
	for i, change := range changes {
		next, err := applyChange(content, change)
		if err != nil {
			return fmt.Errorf("failed to apply change %d: %w", i, err)
		}
		content = next
	}

	if err := doc.SetContent(content, version); err != nil {
		return fmt.Errorf("failed to set document content: %w", err)
	}
	return nil
}

// applyChange applies one content change. A change without a range
// replaces the whole document.
func applyChange(content string, change protocol.TextDocumentContentChangeEvent) (string, error) {
	if change.Range == nil {
		return change.Text, nil
	}

	start, err := offsetOf(content, change.Range.Start, "start")
	if err != nil {
		return "", err
	}
	end, err := offsetOf(content, change.Range.End, "end")
	if err != nil {
		return "", err
	}
	if end < start {
		return "", fmt.Errorf("range end %d:%d is before its start %d:%d",
			change.Range.End.Line, change.Range.End.Character,
			change.Range.Start.Line, change.Range.Start.Character)
	}

	return content[:start] + change.Text + content[end:], nil
}

// offsetOf converts an LSP position to a byte offset. Characters past the
// end of a line clamp to it. The line just past the last one is accepted at
// character 0, where clients insert at end of file.
func offsetOf(content string, pos protocol.Position, which string) (int, error) {
	lines := position.LineCount(content)
	switch line := int(pos.Line); {
	case line < lines:
		return position.OffsetAt(content, pos), nil
	case line == lines && pos.Character == 0:
		return len(content), nil
	default:
		return 0, fmt.Errorf("%s line %d out of bounds (total lines: %d)", which, line, lines)
	}
}
