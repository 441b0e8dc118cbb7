// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// read/fetch → extract → normalize → translate → write.
//
// It handles flag validation, renderer selection, and single / --all modes.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gaurav-prasanna/bbpipe/core"
	"github.com/gaurav-prasanna/bbpipe/core/diag"
	"github.com/gaurav-prasanna/bbpipe/core/dialect"
	"github.com/gaurav-prasanna/bbpipe/core/extract"
	"github.com/gaurav-prasanna/bbpipe/core/fetch"
	"github.com/gaurav-prasanna/bbpipe/core/normalize"
	"github.com/gaurav-prasanna/bbpipe/core/output"
	"github.com/gaurav-prasanna/bbpipe/core/parse"
	"github.com/gaurav-prasanna/bbpipe/core/render"
	"github.com/gaurav-prasanna/bbpipe/crawl"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

// Flag variables.
var (
	flagDialect          dialect.Dialect
	flagOutput           string
	flagEncodingWarnings bool
	flagFrom             string
	flagJSON             bool
	flagToMarkdown       bool
	flagAll              bool
	flagOutputDir        string
	flagJobs             int

	flagMarkdown parse.Options
)

var convertCmd = &cobra.Command{
	Use:   "convert [file|url|-]...",
	Short: "Translate Markdown or HTML into BBCode",
	Long: `Convert reads a Markdown document (a file, a URL or stdin), translates it
into the BBCode of the chosen forum dialect and writes the result to stdout
or a file. HTML input is reduced to its main content and normalized to
Markdown first.

Warnings about constructs the dialect cannot express go to stderr.

Examples:
  bbpipe convert post.md --dialect xenforo
  bbpipe convert post.md -d proboards -t -f -s -o post.bbcode
  cat post.md | bbpipe convert -d xenforo
  bbpipe convert https://example.com/changelog --from html -d xenforo --json
  bbpipe convert https://example.com/changelog --markdown
  bbpipe convert docs/ notes.md --all -d proboards --output_dir ./out`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.VarP(&flagDialect, "dialect", "d", "target forum dialect ("+strings.Join(dialect.Names(), "|")+")")
	flags.StringVarP(&flagOutput, "output", "o", "", "output file (default: stdout)")
	flags.BoolVarP(&flagEncodingWarnings, "encoding-warnings", "e", false, "warn about characters the dialect cannot store")
	flags.BoolVar(&flagJSON, "json", false, "output a JSON report instead of raw BBCode")
	flags.BoolVar(&flagToMarkdown, "markdown", false, "output the Markdown that would be translated")

	// Mode flags.
	flags.BoolVar(&flagAll, "all", false, "batch mode: convert every document found in the arguments")
	flags.StringVar(&flagOutputDir, "output_dir", "", "batch output directory (default: current directory)")
	flags.IntVarP(&flagJobs, "jobs", "j", runtime.NumCPU(), "documents converted in parallel in batch mode")

	addInputFlags(flags)
}

// addInputFlags registers the flags that control how input is read and
// parsed. They are shared by convert and events.
func addInputFlags(flags *pflag.FlagSet) {
	flags.StringVar(&flagFrom, "from", string(core.FormatAuto), "input format (auto|markdown|html)")
	flags.BoolVarP(&flagMarkdown.Tables, "tables", "t", false, "enable tables")
	flags.BoolVarP(&flagMarkdown.Footnotes, "footnotes", "f", false, "enable footnotes")
	flags.BoolVarP(&flagMarkdown.Strikethrough, "strikethrough", "s", false, "enable strikethrough")
	flags.BoolVar(&flagMarkdown.TaskLists, "tasklists", false, "enable task lists")
	flags.BoolVar(&flagMarkdown.SmartPunctuation, "smart-punctuation", false, "enable smart punctuation")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	// --- Validate flags ---
	if err := validateFlags(cmd.Flags(), args); err != nil {
		return err
	}
	format, err := parseFormat(flagFrom)
	if err != nil {
		return err
	}

	bbcode := render.NewBBCodeRenderer(render.Options{
		Dialect:          flagDialect,
		Markdown:         flagMarkdown,
		EncodingWarnings: flagEncodingWarnings,
	})
	p := &pipeline{
		fetcher:    fetch.New(),
		extractor:  extract.New(),
		normalizer: normalize.New(normalize.Options{Tables: flagMarkdown.Tables, Strikethrough: flagMarkdown.Strikethrough}),
		renderer:   selectRenderer(bbcode),
		format:     format,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagAll {
		return runAll(ctx, args, p)
	}

	source := "-"
	if len(args) == 1 {
		source = args[0]
	}
	return runOnly(ctx, source, p)
}

// applyConfig loads the config file and fills in flags not given on the
// command line.
func applyConfig(cmd *cobra.Command) error {
	cfg, err := loadConfig(flagConfig, ".")
	if err != nil {
		return err
	}
	return cfg.applyTo(cmd.Flags())
}

// runOnly converts a single document.
func runOnly(ctx context.Context, source string, p *pipeline) error {
	sink := diag.NewWriterSink(os.Stderr, useColor(os.Stderr))

	data, err := p.convert(ctx, source, sink)
	if err != nil {
		return err
	}

	if flagOutput == "" {
		return output.Write(os.Stdout, data)
	}
	if err := output.WriteFile(flagOutput, data); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", flagOutput)
	return nil
}

// batchResult is the outcome of one document in --all mode.
type batchResult struct {
	path     string
	warnings diag.Collector
	err      error
}

// runAll discovers every document in args and converts them concurrently.
// Results are reported in discovery order once all conversions finish.
func runAll(ctx context.Context, args []string, p *pipeline) error {
	targets, err := crawl.Discover(ctx, args, p.fetcher)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no documents found")
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Found %d documents\n", len(targets))

	results := make([]batchResult, len(targets))
	var g errgroup.Group
	g.SetLimit(flagJobs)
	for i, target := range targets {
		g.Go(func() error {
			res := &results[i]
			path, err := writer.Path(target.Rel, p.renderer.Extension())
			if err != nil {
				res.err = err
				return nil
			}
			if !target.Remote && output.SameFile(path, target.Source) {
				res.err = fmt.Errorf("output %s would overwrite its input", path)
				return nil
			}
			data, err := p.convert(ctx, target.Source, &res.warnings)
			if err != nil {
				res.err = err
				return nil
			}
			res.path, res.err = writer.WriteMirrored(target.Rel, data, p.renderer.Extension())
			return nil
		})
	}
	// Failures are recorded per document; the group itself never fails.
	_ = g.Wait()

	warnings := diag.NewWriterSink(os.Stderr, useColor(os.Stderr))
	errCount := 0
	for i, target := range targets {
		res := &results[i]
		fmt.Fprintf(os.Stdout, "[%d/%d] %s\n", i+1, len(targets), target.Source)
		res.warnings.Replay(warnings.WithPrefix(target.Source))
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", res.err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", res.path)
	}

	if errCount > 0 {
		return fmt.Errorf("%d/%d documents failed", errCount, len(targets))
	}
	return nil
}

// pipeline holds the stages a document passes through.
type pipeline struct {
	fetcher    core.Fetcher
	extractor  *extract.HTMLExtractor
	normalizer core.Normalizer
	renderer   core.Renderer
	format     core.Format
}

// document is an input reduced to Markdown.
type document struct {
	meta     core.DocumentMetadata
	markdown string
}

// convert runs a single source through the full pipeline.
func (p *pipeline) convert(ctx context.Context, source string, sink diag.Sink) ([]byte, error) {
	doc, err := p.load(ctx, source)
	if err != nil {
		return nil, err
	}

	data, err := p.renderer.Render(doc.markdown, doc.meta, sink)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return data, nil
}

// load reads source and returns its Markdown. HTML input is reduced to its
// main content and normalized.
func (p *pipeline) load(ctx context.Context, source string) (*document, error) {
	var (
		body        []byte
		contentType string
		name        = source
		baseURL     string
		err         error
	)

	switch {
	case source == "-":
		body, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	case crawl.IsRemote(source):
		// 1. Fetch
		result, err := p.fetcher.Fetch(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("fetch: %w", err)
		}
		body, contentType, baseURL = result.Body, result.ContentType, result.URL
		if u, err := url.Parse(result.URL); err == nil {
			name = u.Path
		}
	default:
		body, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
	}

	format := detectFormat(p.format, contentType, name)
	slog.Debug("loaded input", "source", source, "format", format, "bytes", len(body))

	doc := &document{meta: buildMetadata(source, format), markdown: string(body)}
	if format != core.FormatHTML {
		return doc, nil
	}

	html := string(body)
	doc.meta.Title = p.extractor.Title(html)

	// 2. Extract main content
	content, err := p.extractor.Extract(html, baseURL)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	// 3. Normalize to Markdown
	doc.markdown, err = p.normalizer.Normalize(content)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return doc, nil
}

// buildMetadata constructs DocumentMetadata for a source.
func buildMetadata(source string, format core.Format) core.DocumentMetadata {
	return core.DocumentMetadata{
		Source:      source,
		Format:      format,
		Dialect:     flagDialect,
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// parseFormat validates the --from value.
func parseFormat(s string) (core.Format, error) {
	switch f := core.Format(strings.ToLower(s)); f {
	case core.FormatAuto, core.FormatMarkdown, core.FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid --from %q (want auto, markdown or html)", s)
	}
}

// detectFormat resolves FormatAuto using the response content type, then
// the file extension. Markdown is the default.
func detectFormat(requested core.Format, contentType, name string) core.Format {
	if requested != core.FormatAuto {
		return requested
	}
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			switch mediaType {
			case "text/html", "application/xhtml+xml":
				return core.FormatHTML
			case "text/markdown", "text/x-markdown":
				return core.FormatMarkdown
			}
		}
	}
	if crawl.IsHTMLFile(filepath.Base(name)) {
		return core.FormatHTML
	}
	return core.FormatMarkdown
}

// validateFlags checks flag combinations after the config file is applied.
func validateFlags(flags *pflag.FlagSet, args []string) error {
	if flagJSON && flagToMarkdown {
		return fmt.Errorf("only one output format allowed per run: --json or --markdown")
	}
	if !flagToMarkdown && !flags.Changed("dialect") {
		return fmt.Errorf("--dialect is required (one of: %s)", strings.Join(dialect.Names(), ", "))
	}

	if flagAll {
		if len(args) == 0 {
			return fmt.Errorf("--all needs at least one file, directory or URL")
		}
		if flagOutput != "" {
			return fmt.Errorf("--output and --all are mutually exclusive; use --output_dir")
		}
		if flagJobs < 1 {
			return fmt.Errorf("--jobs must be at least 1")
		}
		return nil
	}

	if len(args) > 1 {
		return fmt.Errorf("convert takes one input (got %d); use --all for several", len(args))
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer(bbcode *render.BBCodeRenderer) core.Renderer {
	switch {
	case flagJSON:
		return render.NewJSONRenderer(bbcode)
	case flagToMarkdown:
		return render.NewMarkdownRenderer()
	default:
		return bbcode
	}
}
