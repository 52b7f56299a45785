package scopes

import (
	"strconv"
	"strings"
	"sync"
)

// Context summarizes a path: the innermost scope of each interesting kind and
// the chain of enclosing at-rules. Unset fields mean no such scope is active.
type Context struct {
	Context   *Scope
	Comment   *Scope
	ClassAttr *Scope
	ClassList *Scope
	ClassName *Scope
	AtRule    *Scope
	Utility   *Scope
	Import    *Scope
	Fn        *Scope
	Theme     *Scope

	// AtRules lists every enclosing css.at-rule, outermost first
	AtRules []*Scope
}

// Syntax returns the syntax of the innermost context, or SyntaxOther when
// the path has no context
func (c Context) Syntax() Syntax {
	if c.Context == nil {
		return SyntaxOther
	}
	return c.Context.Meta.Syntax
}

// InComment reports whether the path passes through a comment
func (c Context) InComment() bool {
	return c.Comment != nil
}

// Fold computes the Context of a path in a single pass
func Fold(path Path) Context {
	var ctx Context
	for _, s := range path {
		switch s.Kind {
		case KindContext:
			ctx.Context = s
		case KindComment:
			ctx.Comment = s
		case KindClassAttr:
			ctx.ClassAttr = s
		case KindClassList:
			ctx.ClassList = s
		case KindClassName:
			ctx.ClassName = s
		case KindAtRule:
			ctx.AtRule = s
			ctx.AtRules = append(ctx.AtRules, s)
		case KindAtRuleUtility:
			ctx.Utility = s
		case KindAtRuleImport:
			ctx.Import = s
		case KindFn:
			ctx.Fn = s
		case KindThemeOptionList, KindThemeOptionName, KindThemePrefix:
			ctx.Theme = s
		}
	}
	return ctx
}

// FoldCache memoizes Fold keyed by the kinds and spans along a path. It is
// owned by whoever owns the tree the paths come from and must be discarded
// with it.
type FoldCache struct {
	mu      sync.Mutex
	entries map[string]Context
}

// NewFoldCache creates an empty cache
func NewFoldCache() *FoldCache {
	return &FoldCache{entries: make(map[string]Context)}
}

// Fold returns the memoized Context of path, computing it on first use
func (c *FoldCache) Fold(path Path) Context {
	key := pathKey(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx, ok := c.entries[key]; ok {
		return ctx
	}
	ctx := Fold(path)
	c.entries[key] = ctx
	return ctx
}

// Len returns the number of memoized paths
func (c *FoldCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func pathKey(path Path) string {
	var b strings.Builder
	for _, s := range path {
		b.WriteString(strconv.Itoa(int(s.Kind)))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s.Source.Scope.Start))
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(s.Source.Scope.End))
		b.WriteByte('/')
	}
	return b.String()
}
