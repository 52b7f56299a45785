package scopes

// Path is the chain of scopes from a root down to and including the
// innermost active scope
type Path []*Scope

// Innermost returns the last scope of the path, or nil for an empty path
func (p Path) Innermost() *Scope {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// Kinds returns the kind of every scope in the path, outermost first
func (p Path) Kinds() []Kind {
	kinds := make([]Kind, len(p))
	for i, s := range p {
		kinds[i] = s.Kind
	}
	return kinds
}

// Visitor receives scopes during a depth-first walk. path holds the
// ancestors of scope, not the scope itself. Either hook may be nil.
type Visitor struct {
	Enter func(scope *Scope, path Path)
	Exit  func(scope *Scope, path Path)
}

// Walk visits nodes and all of their descendants in document order
func Walk(nodes []*Scope, v Visitor) {
	walk(nodes, v, make(Path, 0, 8))
}

func walk(nodes []*Scope, v Visitor, path Path) {
	for _, node := range nodes {
		if v.Enter != nil {
			v.Enter(node, path)
		}
		walk(node.Children, v, append(path, node))
		if v.Exit != nil {
			v.Exit(node, path)
		}
	}
}
