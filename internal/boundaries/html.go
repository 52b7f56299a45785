package boundaries

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/twls/internal/scopes"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// htmlParser finds script and style elements in HTML-like documents
type htmlParser struct {
	parser     *sitter.Parser
	blockQuery *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// htmlPool is a pool of reusable HTML parsers
var htmlPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		blockQuery, qerr := sitter.NewQuery(htmlLang, `[(script_element) (style_element)] @block`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile block query: %v", qerr))
		}

		return &htmlParser{
			parser:     parser,
			blockQuery: blockQuery,
		}
	},
}

func acquireHTMLParser() *htmlParser {
	p := htmlPool.Get().(*htmlParser)
	p.parser.Reset()
	return p
}

func releaseHTMLParser(p *htmlParser) {
	if p != nil {
		htmlPool.Put(p)
	}
}

func (p *htmlParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.blockQuery != nil {
		p.blockQuery.Close()
	}
}

// block is an embedded region found by a parser
type block struct {
	span   scopes.Span
	syntax scopes.Syntax
	lang   string
}

// blocks returns the script and style elements of source. With templates set
// (Vue single file components) top-level <template> elements are html blocks.
func (p *htmlParser) blocks(source []byte, templates bool) []block {
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	var out []block

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(p.blockQuery, root, source)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			node := capture.Node
			out = append(out, elementBlock(&node, source))
		}
	}

	if templates {
		for i := uint(0); i < root.NamedChildCount(); i++ {
			child := root.NamedChild(i)
			if child == nil || child.Kind() != "element" {
				continue
			}
			if tag := startTag(child); tag != nil && tagName(tag, source) == "template" {
				out = append(out, block{span: elementSpan(child), syntax: scopes.SyntaxHTML, lang: "html"})
			}
		}
	}

	return out
}

// elementSpan runs from the `<` of the start tag to the `<` of the end tag,
// or to the end of the element when it is never closed
func elementSpan(node *sitter.Node) scopes.Span {
	span := scopes.Span{Start: int(node.StartByte()), End: int(node.EndByte())}
	for i := node.ChildCount(); i > 0; i-- {
		child := node.Child(i - 1)
		if child != nil && child.Kind() == "end_tag" && !child.IsMissing() {
			span.End = int(child.StartByte())
			break
		}
	}
	return span
}

func startTag(node *sitter.Node) *sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && child.Kind() == "start_tag" {
			return child
		}
	}
	return nil
}

func tagName(tag *sitter.Node, source []byte) string {
	for i := uint(0); i < tag.NamedChildCount(); i++ {
		if child := tag.NamedChild(i); child != nil && child.Kind() == "tag_name" {
			return strings.ToLower(child.Utf8Text(source))
		}
	}
	return ""
}

// attributes returns the attributes of a start tag, keyed by lower-cased
// name. Attributes without a value map to "".
func attributes(tag *sitter.Node, source []byte) map[string]string {
	attrs := make(map[string]string)
	for i := uint(0); i < tag.NamedChildCount(); i++ {
		attr := tag.NamedChild(i)
		if attr == nil || attr.Kind() != "attribute" {
			continue
		}
		var name, value string
		for j := uint(0); j < attr.NamedChildCount(); j++ {
			part := attr.NamedChild(j)
			switch part.Kind() {
			case "attribute_name":
				name = strings.ToLower(part.Utf8Text(source))
			case "attribute_value":
				value = part.Utf8Text(source)
			case "quoted_attribute_value":
				if inner := part.NamedChild(0); inner != nil {
					value = inner.Utf8Text(source)
				}
			}
		}
		if name != "" {
			attrs[name] = value
		}
	}
	return attrs
}

var (
	htmlScriptTypes = []string{"text/html", "text/x-template", "text/x-handlebars-template"}
	jsxScriptTypes  = []string{"text/babel", "text/jsx"}
)

func elementBlock(node *sitter.Node, source []byte) block {
	b := block{span: elementSpan(node), syntax: scopes.SyntaxCSS}
	script := node.Kind() == "script_element"
	if script {
		b.syntax = scopes.SyntaxJS
	}

	tag := startTag(node)
	if tag == nil {
		return b
	}
	attrs := attributes(tag, source)

	if lang := strings.TrimSpace(attrs["lang"]); lang != "" {
		b.syntax, b.lang = langSyntax(lang), lang
	}

	if script {
		typ := strings.ToLower(strings.TrimSpace(attrs["type"]))
		switch {
		case contains(htmlScriptTypes, typ):
			b.syntax, b.lang = scopes.SyntaxHTML, "html"
		case contains(jsxScriptTypes, typ):
			b.syntax, b.lang = scopes.SyntaxJS, "jsx"
		}
	}
	return b
}

// langSyntax maps the value of a lang attribute to a syntax family
func langSyntax(lang string) scopes.Syntax {
	switch lang {
	case "js", "jsx", "ts", "tsx":
		return scopes.SyntaxJS
	case "html":
		return scopes.SyntaxHTML
	}
	if IsCSSLanguage(lang) {
		return scopes.SyntaxCSS
	}
	return scopes.SyntaxOther
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
