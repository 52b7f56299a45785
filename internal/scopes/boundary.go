package scopes

// Boundary is a region of a document written in a single language. A
// document's boundaries are contiguous, non-overlapping, and together cover
// the whole text.
type Boundary struct {
	Span   Span
	Syntax Syntax
	// Lang is the specific language id (e.g. "ts", "scss"). Empty means the
	// syntax name.
	Lang string
}

// Language returns Lang, falling back to the syntax name
func (b Boundary) Language() string {
	if b.Lang == "" {
		return b.Syntax.String()
	}
	return b.Lang
}
