package hover

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"bennypowers.dev/twls/internal/log"
	"bennypowers.dev/twls/internal/position"
	"bennypowers.dev/twls/internal/scopes"
	"bennypowers.dev/twls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// row is one scope of the path under the cursor, outermost first
type row struct {
	Kind   string
	Detail string
	Meta   string
}

// summary is the folded context of the path: the active syntax, the chain
// of enclosing at-rules, and whether the cursor is in a comment
type summary struct {
	Rows      []row
	Syntax    string
	AtRules   []string
	InComment bool
}

var scopesTemplate = template.Must(template.New("scopes").Parse("**Scopes**\n\n" +
	"{{range .Rows}}- `{{.Kind}}`{{with .Detail}} `{{.}}`{{end}}{{with .Meta}} ({{.}}){{end}}\n{{end}}" +
	"\n**Syntax** `{{.Syntax}}`\n" +
	"{{with .AtRules}}\n**At-rules** {{range $i, $r := .}}{{if $i}} › {{end}}`{{$r}}`{{end}}\n{{end}}" +
	"{{if .InComment}}\n_In comment_\n{{end}}"))

var scopesPlaintextTemplate = template.Must(template.New("scopesPlaintext").Parse("Scopes\n\n" +
	`{{range .Rows}}{{.Kind}}{{with .Detail}} "{{.}}"{{end}}{{with .Meta}} ({{.}}){{end}}` + "\n{{end}}" +
	"\nSyntax: {{.Syntax}}\n" +
	"{{with .AtRules}}At-rules: {{range $i, $r := .}}{{if $i}} > {{end}}{{$r}}{{end}}\n{{end}}" +
	"{{if .InComment}}In comment\n{{end}}"))

// Hover handles the textDocument/hover request by listing the scopes that
// contain the cursor
func Hover(req *types.RequestContext, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI
	log.Debug("Hover requested: %s at line %d, char %d", uri, params.Position.Line, params.Position.Character)

	doc := req.Server.Document(uri)
	if doc == nil || req.Server.IsExcluded(uri) {
		return nil, nil
	}

	content := doc.Content()
	offset := position.OffsetAt(content, params.Position)
	path, folded := doc.ContextAt(req.Server.Analyze, offset)
	if len(path) == 0 {
		return nil, nil
	}

	format := req.Server.PreferredHoverFormat()
	value, err := render(summarize(path, folded, content), format)
	if err != nil {
		return nil, fmt.Errorf("failed to render scopes: %w", err)
	}

	span := path.Innermost().Span()
	r := position.RangeOf(content, span.Start, span.End)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: format, Value: value},
		Range:    &r,
	}, nil
}

func render(data summary, format protocol.MarkupKind) (string, error) {
	tmpl := scopesTemplate
	if format == protocol.MarkupKindPlainText {
		tmpl = scopesPlaintextTemplate
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func summarize(path scopes.Path, folded scopes.Context, text string) summary {
	atRules := make([]string, 0, len(folded.AtRules))
	for _, rule := range folded.AtRules {
		atRules = append(atRules, detail(rule, text))
	}
	return summary{
		Rows:      rows(path, text),
		Syntax:    folded.Syntax().String(),
		AtRules:   atRules,
		InComment: folded.InComment(),
	}
}

func rows(path scopes.Path, text string) []row {
	out := make([]row, 0, len(path))
	for _, s := range path {
		meta := make([]string, 0, 2)
		for _, m := range s.MetaFields() {
			meta = append(meta, m.Name+": "+m.Value)
		}
		out = append(out, row{
			Kind:   s.Kind.String(),
			Detail: detail(s, text),
			Meta:   strings.Join(meta, ", "),
		})
	}
	return out
}

// detail is the most telling text of a scope: the name of at-rules and
// functions, the url of imports, the scope's own text otherwise. Contexts
// have none.
func detail(s *scopes.Scope, text string) string {
	switch {
	case s.Kind == scopes.KindContext:
		return ""
	case s.Source.Name != nil:
		return scopes.Snippet(*s.Source.Name, text)
	case s.Source.URL != nil:
		return scopes.Snippet(*s.Source.URL, text)
	}
	return scopes.Snippet(s.Span(), text)
}
