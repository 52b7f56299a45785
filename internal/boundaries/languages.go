package boundaries

import (
	"path/filepath"
	"strings"

	"bennypowers.dev/twls/internal/scopes"
)

var htmlLanguages = []string{
	"aspnetcorerazor",
	"astro",
	"astro-markdown",
	"blade",
	"django-html",
	"edge",
	"ejs",
	"erb",
	"gohtml",
	"GoHTML",
	"gohtmltmpl",
	"haml",
	"handlebars",
	"hbs",
	"html",
	"HTML (Eex)",
	"HTML (EEx)",
	"html-eex",
	"htmldjango",
	"jade",
	"leaf",
	"liquid",
	"markdown",
	"mdx",
	"mustache",
	"njk",
	"nunjucks",
	"phoenix-heex",
	"php",
	"razor",
	"slim",
	"surface",
	"svelte",
	"twig",
	"vue",
}

var cssLanguages = []string{
	"css",
	"less",
	"postcss",
	"sass",
	"scss",
	"stylus",
	"sugarss",
	"tailwindcss",
}

var jsLanguages = []string{
	"javascript",
	"javascriptreact",
	"reason",
	"rescript",
	"typescript",
	"typescriptreact",
}

// jsLang maps editor language ids to the short lang names scopes carry
var jsLang = map[string]string{
	"javascript":      "js",
	"javascriptreact": "jsx",
	"typescript":      "ts",
	"typescriptreact": "tsx",
}

var languageSyntax = func() map[string]scopes.Syntax {
	m := make(map[string]scopes.Syntax)
	for _, l := range htmlLanguages {
		m[l] = scopes.SyntaxHTML
	}
	for _, l := range cssLanguages {
		m[l] = scopes.SyntaxCSS
	}
	for _, l := range jsLanguages {
		m[l] = scopes.SyntaxJS
	}
	return m
}()

// Classify returns the syntax family of an editor language id.
// Unknown languages are SyntaxOther.
func Classify(languageID string) scopes.Syntax {
	if s, ok := languageSyntax[languageID]; ok {
		return s
	}
	return scopes.SyntaxOther
}

// IsCSSLanguage reports whether languageID is a stylesheet language
func IsCSSLanguage(languageID string) bool {
	return Classify(languageID) == scopes.SyntaxCSS
}

var extensionLanguages = map[string]string{
	".astro":      "astro",
	".css":        "css",
	".ejs":        "ejs",
	".erb":        "erb",
	".hbs":        "handlebars",
	".handlebars": "handlebars",
	".heex":       "phoenix-heex",
	".htm":        "html",
	".html":       "html",
	".js":         "javascript",
	".cjs":        "javascript",
	".mjs":        "javascript",
	".jsx":        "javascriptreact",
	".less":       "less",
	".liquid":     "liquid",
	".md":         "markdown",
	".mdx":        "mdx",
	".njk":        "nunjucks",
	".pcss":       "postcss",
	".php":        "php",
	".sass":       "sass",
	".scss":       "scss",
	".styl":       "stylus",
	".sss":        "sugarss",
	".svelte":     "svelte",
	".ts":         "typescript",
	".cts":        "typescript",
	".mts":        "typescript",
	".tsx":        "typescriptreact",
	".twig":       "twig",
	".vue":        "vue",
}

// LanguageFromPath guesses an editor language id from a file name. It
// returns "plaintext" for unknown extensions.
func LanguageFromPath(path string) string {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, ".blade.php") {
		return "blade"
	}
	if lang, ok := extensionLanguages[filepath.Ext(base)]; ok {
		return lang
	}
	return "plaintext"
}
