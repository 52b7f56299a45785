package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"bennypowers.dev/twls/internal/analysis"
	"bennypowers.dev/twls/internal/boundaries"
	"bennypowers.dev/twls/internal/config"
	"bennypowers.dev/twls/internal/scopes"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var (
	dumpLang  string
	dumpAt    int
	dumpColor string
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] FILE...",
	Short: "Print the scope tree of files",
	Long: `Analyze files and print their scope trees. The language is guessed
from each file's extension unless --lang is given.

With --at, only the scopes containing the given byte offset are printed,
outermost first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpLang, "lang", "l", "", "Language id for all files (default: from extension)")
	dumpCmd.Flags().IntVar(&dumpAt, "at", -1, "Print only the scopes containing this byte offset")
	dumpCmd.Flags().StringVar(&dumpColor, "color", "auto", "Color output: auto, always, never")
}

// styles holds color formatters for dump output
type styles struct {
	heading *color.Color
	kind    *color.Color
	span    *color.Color
	skipped *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		heading: color.New(color.Bold),
		kind:    color.New(color.FgCyan),
		span:    color.New(color.FgHiBlack),
		skipped: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{s.heading, s.kind, s.span, s.skipped} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// colorEnabled resolves the --color flag. auto colors only terminals and
// honors NO_COLOR.
func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "", nil
	}
	return false, fmt.Errorf("invalid --color value %q (want auto, always, or never)", mode)
}

// dumpResult is the analysis of one file
type dumpResult struct {
	path     string
	language string
	text     string
	tree     *scopes.Tree
	excluded bool
}

func runDump(cmd *cobra.Command, args []string) error {
	if dumpAt < -1 {
		return fmt.Errorf("invalid --at offset %d", dumpAt)
	}

	out := cmd.OutOrStdout()
	enabled, err := colorEnabled(dumpColor, out)
	if err != nil {
		return err
	}
	s := newStyles(enabled)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := analyzeFiles(ctx, cfg, args)
	if err != nil {
		return err
	}

	for _, r := range results {
		if err := writeResult(out, s, r); err != nil {
			return err
		}
	}
	return nil
}

// analyzeFiles reads and analyzes files in parallel. Results keep the order
// of paths.
func analyzeFiles(ctx context.Context, cfg config.Config, paths []string) ([]dumpResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.NumCPU(), 1))

	results := make([]dumpResult, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := analyzeFile(cfg, path)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func analyzeFile(cfg config.Config, path string) (dumpResult, error) {
	if cfg.IsExcluded(path) {
		return dumpResult{path: path, excluded: true}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: user-selected input file
	if err != nil {
		return dumpResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := string(data)

	lang := dumpLang
	if lang == "" {
		lang = boundaries.LanguageFromPath(path)
	}
	lang = cfg.ResolveLanguage(lang)

	if dumpAt > len(text) {
		return dumpResult{}, fmt.Errorf("offset %d is past the end of %s (%d bytes)", dumpAt, path, len(text))
	}

	tree := analysis.AnalyzeDocument(text, boundaries.Detect(text, lang), cfg.AnalysisConfig())
	return dumpResult{path: path, language: lang, text: text, tree: tree}, nil
}

func writeResult(out io.Writer, s *styles, r dumpResult) error {
	var b strings.Builder

	if r.excluded {
		b.WriteString(s.heading.Sprint(r.path))
		b.WriteString(" ")
		b.WriteString(s.skipped.Sprint("skipped (excluded)"))
		b.WriteString("\n")
		_, err := io.WriteString(out, b.String())
		return err
	}

	b.WriteString(s.heading.Sprintf("%s (%s)", r.path, r.language))
	if dumpAt < 0 {
		b.WriteString(scopes.Print(r.tree.All(), r.text))
		b.WriteString("\n")
		_, err := io.WriteString(out, b.String())
		return err
	}

	b.WriteString(s.heading.Sprintf(" @ %d", dumpAt))
	b.WriteString("\n")
	path := r.tree.At(dumpAt)
	if len(path) == 0 {
		b.WriteString("  (no scopes)\n")
	}
	for depth, scope := range path {
		b.WriteString(strings.Repeat("  ", depth+1))
		b.WriteString(s.kind.Sprint(scope.Kind.String()))
		b.WriteString(" ")
		b.WriteString(s.span.Sprint(scope.Span().String()))
		fmt.Fprintf(&b, ": \"%s\"\n", scopes.Snippet(scope.Span(), r.text))
	}
	b.WriteString("\n")
	_, err := io.WriteString(out, b.String())
	return err
}
