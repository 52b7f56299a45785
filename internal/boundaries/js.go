package boundaries

import (
	"fmt"
	"sync"

	"bennypowers.dev/twls/internal/scopes"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// jsParser finds css and html tagged template literals
type jsParser struct {
	parser        *sitter.Parser
	templateQuery *sitter.Query
	genericQuery  *sitter.Query // css<Type>`...`, which the grammar parses as binary expressions
}

var jsGrammar = sitter.NewLanguage(tree_sitter_javascript.Language())

// jsPool is a pool of reusable JS parsers
var jsPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsGrammar); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}

		templateQuery, qerr := sitter.NewQuery(jsGrammar, `
			(call_expression
				function: (identifier) @tag
				arguments: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile template query: %v", qerr))
		}

		genericQuery, qerr := sitter.NewQuery(jsGrammar, `
			(binary_expression
				left: (binary_expression
					left: (identifier) @tag)
				right: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile generic query: %v", qerr))
		}

		return &jsParser{
			parser:        parser,
			templateQuery: templateQuery,
			genericQuery:  genericQuery,
		}
	},
}

func acquireJSParser() *jsParser {
	p := jsPool.Get().(*jsParser)
	p.parser.Reset()
	return p
}

func releaseJSParser(p *jsParser) {
	if p != nil {
		jsPool.Put(p)
	}
}

func (p *jsParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.templateQuery != nil {
		p.templateQuery.Close()
	}
	if p.genericQuery != nil {
		p.genericQuery.Close()
	}
}

// blocks returns the bodies of css`...` and html`...` templates, between the
// backticks
func (p *jsParser) blocks(source []byte) []block {
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	var out []block
	for _, query := range []*sitter.Query{p.templateQuery, p.genericQuery} {
		out = p.runTemplateQuery(query, root, source, out)
	}
	return out
}

func (p *jsParser) runTemplateQuery(query *sitter.Query, root *sitter.Node, source []byte, out []block) []block {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, root, source)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var tag string
		var template *sitter.Node

		for _, capture := range match.Captures {
			node := capture.Node
			switch query.CaptureNames()[capture.Index] {
			case "tag":
				tag = node.Utf8Text(source)
			case "template":
				template = &node
			}
		}

		if template == nil {
			continue
		}

		var syntax scopes.Syntax
		switch tag {
		case "css":
			syntax = scopes.SyntaxCSS
		case "html":
			syntax = scopes.SyntaxHTML
		default:
			continue
		}

		start, end := int(template.StartByte())+1, int(template.EndByte())-1
		if end < start {
			// unterminated template
			end = start
		}
		out = append(out, block{span: scopes.Span{Start: start, End: end}, syntax: syntax, lang: tag})
	}
	return out
}
