package scopes

import (
	"cmp"
	"slices"
)

// Optimize nests contained siblings and then removes redundant wrapper scopes.
// It takes ownership of nodes and their descendants.
func Optimize(nodes []*Scope) []*Scope {
	return EliminateScopes(NestSiblings(nodes))
}

// compareScopes orders scopes by ascending start, then descending end, so a
// container always sorts before anything it contains
func compareScopes(a, z *Scope) int {
	if c := cmp.Compare(a.Source.Scope.Start, z.Source.Scope.Start); c != 0 {
		return c
	}
	return cmp.Compare(z.Source.Scope.End, a.Source.Scope.End)
}

func sortScopes(nodes []*Scope) []*Scope {
	sorted := slices.Clone(nodes)
	slices.SortStableFunc(sorted, compareScopes)
	return sorted
}

// NestSiblings sorts nodes and, at every level below them, moves each scope
// under the nearest earlier sibling that fully contains it. The top level is
// sorted but not nested into itself: roots are the caller's regions.
func NestSiblings(nodes []*Scope) []*Scope {
	roots := sortScopes(nodes)
	for _, root := range roots {
		root.Children = nestLevel(root.Children)
	}
	return roots
}

func nestLevel(children []*Scope) []*Scope {
	if len(children) == 0 {
		return children
	}

	sorted := sortScopes(children)

	if len(sorted) > 1 {
		moved := make([]bool, len(sorted))
		adopted := make(map[*Scope][]*Scope)

		for i := len(sorted) - 1; i > 0; i-- {
			current := sorted[i].Source.Scope
			for j := i - 1; j >= 0; j-- {
				if moved[j] {
					continue
				}
				if sorted[j].Source.Scope.Contains(current) {
					moved[i] = true
					adopted[sorted[j]] = append(adopted[sorted[j]], sorted[i])
					break
				}
			}
		}

		kept := make([]*Scope, 0, len(sorted))
		for i, s := range sorted {
			if moved[i] {
				continue
			}
			kept = append(kept, s)
		}

		// Adopted scopes were collected back to front
		for parent, list := range adopted {
			slices.Reverse(list)
			parent.Children = append(slices.Clone(parent.Children), list...)
		}

		sorted = kept
	}

	for _, s := range sorted {
		s.Children = nestLevel(s.Children)
	}

	return sorted
}

// EliminateScopes removes wrapper scopes whose information is already carried
// by their parent: a css.fn directly under a css.at-rule.import is replaced by
// its own children.
func EliminateScopes(nodes []*Scope) []*Scope {
	for _, node := range nodes {
		node.Children = EliminateScopes(node.Children)
		if node.Kind != KindAtRuleImport {
			continue
		}

		hasFn := slices.ContainsFunc(node.Children, func(s *Scope) bool {
			return s.Kind == KindFn
		})
		if !hasFn {
			continue
		}

		node.Children = sortScopes(flattenFns(node.Children))
	}
	return nodes
}

func flattenFns(children []*Scope) []*Scope {
	out := make([]*Scope, 0, len(children))
	for _, child := range children {
		if child.Kind == KindFn {
			out = append(out, flattenFns(child.Children)...)
			continue
		}
		out = append(out, child)
	}
	return out
}
