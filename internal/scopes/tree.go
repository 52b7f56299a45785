package scopes

// Tree is an immutable, position-indexed view of a document's scopes.
//
// Construction requires that at every level children are sorted by start
// offset and never partially overlap, which Optimize guarantees. The tree
// does not re-validate this. A Tree must not be mutated after NewTree, which
// makes it safe for concurrent queries.
type Tree struct {
	roots []*Scope
}

// NewTree wraps optimized root scopes in a Tree
func NewTree(roots []*Scope) *Tree {
	return &Tree{roots: roots}
}

// At returns the path from the root to the innermost scope active at pos.
// Span ends are inclusive so a cursor sitting just after the last character
// of a scope is still inside it. A position outside every root yields an
// empty path.
func (t *Tree) At(pos int) Path {
	var path Path
	nodes := t.roots

	for {
		node := search(nodes, pos)
		if node == nil {
			return path
		}
		path = append(path, node)
		nodes = node.Children
	}
}

func search(nodes []*Scope, pos int) *Scope {
	low, high := 0, len(nodes)-1
	for low <= high {
		mid := int(uint(low+high) >> 1)
		span := nodes[mid].Source.Scope
		switch {
		case pos < span.Start:
			high = mid - 1
		case pos > span.End:
			low = mid + 1
		default:
			return nodes[mid]
		}
	}
	return nil
}

// ClosestAt returns the innermost scope of the given kind active at pos, or nil
func (t *Tree) ClosestAt(kind Kind, pos int) *Scope {
	path := t.At(pos)
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].Kind == kind {
			return path[i]
		}
	}
	return nil
}

// PathTo returns the path from the root to scope, ending with scope itself.
// It returns nil when scope is not part of the tree.
func (t *Tree) PathTo(scope *Scope) Path {
	path := t.At(scope.Source.Scope.Start)
	for i, s := range path {
		if s == scope {
			return path[:i+1]
		}
	}

	// At picks one side when adjacent siblings share a boundary offset, so
	// descend by containment instead.
	return descend(t.roots, scope, nil)
}

func descend(nodes []*Scope, target *Scope, path Path) Path {
	span := target.Source.Scope
	for _, node := range nodes {
		if node == target {
			return append(path, node)
		}
		if node.Source.Scope.Start > span.Start {
			break
		}
		if !node.Source.Scope.Contains(span) {
			continue
		}
		if found := descend(node.Children, target, append(path, node)); found != nil {
			return found
		}
	}
	return nil
}

// All returns the root scopes. The slice is shared and must not be modified.
func (t *Tree) All() []*Scope {
	return t.roots
}

// Len returns the total number of scopes in the tree
func (t *Tree) Len() int {
	n := 0
	Walk(t.roots, Visitor{Enter: func(*Scope, Path) { n++ }})
	return n
}

// Description renders the tree in the indented debug format of Print
func (t *Tree) Description(text string) string {
	return Print(t.roots, text)
}
