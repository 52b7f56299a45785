package css

import (
	"regexp"
	"strings"

	"bennypowers.dev/twls/internal/scopes"
	"bennypowers.dev/twls/internal/scopes/classes"
)

var (
	atRulePattern              = regexp.MustCompile(`(@[a-z-]+)\s*([^;{]*)(?:[;{]|$)`)
	atRuleSemicolonlessPattern = regexp.MustCompile(`(@[a-z-]+)[ \t]*([^;{\r\n]*)(?:[;{]|\r?\n|$)`)
)

type atRule struct {
	name   scopes.Span
	params scopes.Span
	body   *scopes.Span
}

// ScanAtRules returns a css.at-rule scope for every `@name params` inside
// span of text, with name, params, and body spans. Rules the engine knows
// more about get a specialized child: @import and @reference an import
// scope, @utility a utility scope, and @theme an option list. In
// semicolonless dialects params and bodies also end at line breaks.
func ScanAtRules(text string, span scopes.Span, semicolonless bool) []*scopes.Scope {
	slice := span.Text(text)
	pattern := atRulePattern
	if semicolonless {
		pattern = atRuleSemicolonlessPattern
	}

	var out []*scopes.Scope
	for _, m := range pattern.FindAllStringSubmatchIndex(slice, -1) {
		rule := atRule{
			name:   scopes.Span{Start: m[2], End: m[3]},
			params: scopes.Span{Start: m[4], End: m[5]},
		}
		rule.body = findBody(slice, rule.params.End, semicolonless)
		out = append(out, buildAtRule(slice, rule, span.Start))
	}
	return out
}

// findBody scans forward from the end of an at-rule's params for a braced
// body. A `;` (or line break when semicolonless) before any brace means the
// rule has no body. An unterminated body runs to the end of the text.
func findBody(slice string, from int, semicolonless bool) *scopes.Span {
	var body *scopes.Span
	depth := 0
	for i := from; i < len(slice); i++ {
		c := slice[i]
		if depth == 0 && (c == ';' || (semicolonless && c == '\n')) {
			return nil
		}
		switch c {
		case '{':
			depth++
			if depth == 1 {
				body = &scopes.Span{Start: i, End: i}
			}
		case '}':
			depth--
			if depth < 0 {
				// closed the enclosing block
				return nil
			}
			if depth == 0 {
				body.End = i
				return body
			}
		}
	}
	if body != nil {
		body.End = len(slice)
	}
	return body
}

func buildAtRule(slice string, rule atRule, offset int) *scopes.Scope {
	end := rule.params.End
	if rule.body != nil {
		end = rule.body.End
	}
	whole := scopes.Span{Start: rule.name.Start, End: end}.Shift(offset)

	var body *scopes.Span
	if rule.body != nil {
		shifted := rule.body.Shift(offset)
		body = &shifted
	}
	scope := scopes.NewAtRule(whole, rule.name.Shift(offset), rule.params.Shift(offset), body)

	params := rule.params.Text(slice)
	paramsStart := rule.params.Start + offset

	switch rule.name.Text(slice) {
	case "@import", "@reference":
		scope.Children = append(scope.Children, parseImport(whole, params, paramsStart))
	case "@utility":
		if utility := parseUtility(whole, params, paramsStart); utility != nil {
			scope.Children = append(scope.Children, utility)
		}
	case "@theme":
		if trimmed, start := trim(params, paramsStart); trimmed != "" {
			scope.Children = append(scope.Children, optionList(trimmed, start))
		}
	}

	return scope
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// trim strips surrounding whitespace from s, which starts at offset, and
// returns the result with its new offset
func trim(s string, offset int) (string, int) {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end], offset + start
}

// optionList builds a theme.option.list with one theme.option.name per
// whitespace separated word
func optionList(options string, offset int) *scopes.Scope {
	list := scopes.NewThemeOptionList(scopes.Span{Start: offset, End: offset + len(options)})
	for _, seg := range classes.Split(options, offset) {
		if !seg.Whitespace {
			list.Children = append(list.Children, scopes.NewThemeOptionName(seg.Span))
		}
	}
	return list
}

// parseUtility reads `name` or `name-*` from @utility params
func parseUtility(whole scopes.Span, params string, offset int) *scopes.Scope {
	trimmed, start := trim(params, offset)
	name := trimmed
	if i := strings.IndexFunc(trimmed, func(r rune) bool { return r < 0x80 && isSpace(byte(r)) }); i >= 0 {
		name = trimmed[:i]
	}

	kind := scopes.UtilityStatic
	if root, ok := strings.CutSuffix(name, "-*"); ok {
		name = root
		kind = scopes.UtilityFunctional
	}
	if name == "" {
		return nil
	}

	return scopes.NewAtRuleUtility(whole, scopes.Span{Start: start, End: start + len(name)}, kind)
}

// parseImport reads the stylesheet url and the source(), theme(), and
// prefix() arguments of @import or @reference params
func parseImport(whole scopes.Span, params string, offset int) *scopes.Scope {
	var url, sourceURL *scopes.Span
	var children []*scopes.Scope

	at := func(start, end int) *scopes.Span {
		return &scopes.Span{Start: offset + start, End: offset + end}
	}

	p := 0
	for p < len(params) && isSpace(params[p]) {
		p++
	}

	switch {
	case p < len(params) && (params[p] == '\'' || params[p] == '"'):
		end := strings.IndexByte(params[p+1:], params[p])
		if end < 0 {
			// unterminated, e.g. mid-edit
			rest, start := trim(params[p+1:], p+1)
			url = at(p+1, start+len(rest))
			p = len(params)
			break
		}
		end += p + 1
		url = at(p+1, end)
		p = end + 1

	case strings.HasPrefix(params[p:], "url("):
		open := p + len("url")
		closing := matchParen(params, open)
		inner, start := trim(params[open+1:closing], open+1)
		inner, start = unquote(inner, start)
		url = at(start, start+len(inner))
		p = min(closing+1, len(params))

	default:
		word := p
		for word < len(params) && !isSpace(params[word]) {
			word++
		}
		if w := params[p:word]; w != "" && !strings.ContainsRune(w, '(') {
			url = at(p, word)
			p = word
		}
	}

	for p < len(params) {
		c := params[p]
		if !isIdentStart(c) {
			p++
			continue
		}
		nameStart := p
		for p < len(params) && isIdent(params[p]) {
			p++
		}
		if p >= len(params) || params[p] != '(' {
			continue
		}
		name := params[nameStart:p]
		open := p
		closing := matchParen(params, open)
		p = closing + 1

		inner, start := trim(params[open+1:closing], open+1)
		switch name {
		case "source":
			inner, start = unquote(inner, start)
			sourceURL = at(start, start+len(inner))
		case "theme":
			if inner == "" {
				start = open + 1
			}
			children = append(children, optionList(inner, offset+start))
		case "prefix":
			children = append(children, scopes.NewThemePrefix(*at(start, start+len(inner))))
		}
	}

	imp := scopes.NewAtRuleImport(whole, url, sourceURL)
	imp.Children = children
	return imp
}

func isIdentStart(c byte) bool {
	return c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdent(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// unquote strips one pair of matching quotes
func unquote(s string, offset int) (string, int) {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], offset + 1
	}
	return s, offset
}

// matchParen returns the index of the `)` balancing the `(` at open,
// skipping quoted strings and escapes. It returns len(s) when the
// parenthesis is never closed.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			i++
		case '\'', '"':
			for i++; i < len(s) && s[i] != c; i++ {
				if s[i] == '\\' {
					i++
				}
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s)
}
