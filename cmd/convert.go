// Package cmd: convert command.
// This is the main command that orchestrates the pipeline:
// load → (extract) → convert → render → write.
//
// It handles flag validation, renderer selection, and the local / URL /
// --all crawl modes.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/scrollpipe/core"
	"github.com/gaurav-prasanna/scrollpipe/core/convert"
	"github.com/gaurav-prasanna/scrollpipe/core/extract"
	"github.com/gaurav-prasanna/scrollpipe/core/fetch"
	"github.com/gaurav-prasanna/scrollpipe/core/output"
	"github.com/gaurav-prasanna/scrollpipe/core/render"
	"github.com/gaurav-prasanna/scrollpipe/crawl"
)

// Flag variables.
var (
	flagFrom        string
	flagOutputDir   string
	flagStdout      bool
	flagJSON        bool
	flagPDF         bool
	flagAll         bool
	flagExtract     bool
	flagViaMarkdown bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <source>...",
	Short: "Convert HTML, LaTeX or Markdown sources to Scroll",
	Long: `Convert reads each source, detects its format from the extension (or --from),
converts it to Scroll and writes the result under the output directory,
mirroring each file's path below the sources' common directory.

Sources may be files, directories, glob patterns (** supported), "-" for
stdin, or http(s) URLs.

Examples:
  scrollpipe convert README.md
  scrollpipe convert 'docs/**/*.md' --output_dir ./out
  scrollpipe convert paper.tex --json
  cat page.html | scrollpipe convert - --from html --stdout
  scrollpipe convert https://example.com --all --extract`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&flagFrom, "from", "", "Source format: html, latex or markdown (default: detect from extension)")
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	convertCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write output to stdout instead of files")

	// Output format flags (mutually exclusive, default Scroll).
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")

	convertCmd.Flags().BoolVar(&flagAll, "all", false, "Crawl and convert all same-domain pages of a URL")
	convertCmd.Flags().BoolVar(&flagExtract, "extract", false, "Strip navigation and other noise from HTML before converting")
	convertCmd.Flags().BoolVar(&flagViaMarkdown, "via-markdown", false, "Convert HTML through Markdown instead of the DOM converter")
}

// pipeline bundles the stages shared by every source in a run.
type pipeline struct {
	cfg       core.Config
	from      core.Format
	registry  *convert.Registry
	fetcher   core.Fetcher
	extractor core.Extractor
	renderer  core.Renderer
	writer    *output.Writer
	stdin     io.Reader
	stdout    io.Writer
	now       func() time.Time
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := validateFlags(args); err != nil {
		return err
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)

	p, err := newPipeline(cfg, flagFrom, flagStdout, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagAll {
		return p.runAll(ctx, args[0])
	}

	sources, err := crawl.Expand(args, convert.Extensions())
	if err != nil {
		return fmt.Errorf("resolving sources: %w", err)
	}
	return p.runSources(ctx, sources)
}

// validateFlags checks mutually exclusive flags and --all arguments.
func validateFlags(args []string) error {
	if flagJSON && flagPDF {
		return fmt.Errorf("only one output format allowed per run: --json or --pdf")
	}
	if flagStdout && flagPDF {
		return fmt.Errorf("--pdf cannot be combined with --stdout")
	}
	if flagAll {
		if len(args) != 1 || !crawl.IsRemote(args[0]) {
			return fmt.Errorf("--all takes exactly one http(s) URL")
		}
		if flagStdout {
			return fmt.Errorf("--all cannot be combined with --stdout")
		}
	}
	if flagFrom != "" {
		if _, err := convert.ParseFormat(flagFrom); err != nil {
			return err
		}
	}
	return nil
}

// applyFlags lets explicitly set flags override the loaded config.
func applyFlags(cmd *cobra.Command, cfg *core.Config) {
	if cmd.Flags().Changed("output_dir") {
		cfg.OutputDir = flagOutputDir
	}
	if cmd.Flags().Changed("extract") {
		cfg.HTML.Extract = flagExtract
	}
	if cmd.Flags().Changed("via-markdown") {
		cfg.HTML.ViaMarkdown = flagViaMarkdown
	}
}

// selectRenderer creates the Renderer chosen by flags.
func selectRenderer(cfg core.Config) core.Renderer {
	switch {
	case flagJSON:
		return render.NewJSONRenderer()
	case flagPDF:
		return render.NewPDFRenderer()
	default:
		return render.NewScrollRenderer(cfg.Extension)
	}
}

func newPipeline(cfg core.Config, from string, toStdout bool, stdin io.Reader, stdout io.Writer) (*pipeline, error) {
	p := &pipeline{
		cfg:       cfg,
		registry:  convert.New(cfg),
		fetcher:   fetch.New(cfg.Fetch),
		extractor: extract.New(),
		renderer:  selectRenderer(cfg),
		stdin:     stdin,
		stdout:    stdout,
		now:       time.Now,
	}
	if from != "" {
		f, err := convert.ParseFormat(from)
		if err != nil {
			return nil, err
		}
		p.from = f
	}
	if !toStdout {
		w, err := output.New(cfg.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("initializing output writer: %w", err)
		}
		p.writer = w
	}
	return p, nil
}

// runSources converts each source, continuing past failures.
// Local sources are mirrored below their common directory so that files
// sharing a base name don't collide.
func (p *pipeline) runSources(ctx context.Context, sources []string) error {
	if p.writer != nil {
		var local []string
		for _, src := range sources {
			if src != "-" && !crawl.IsRemote(src) {
				local = append(local, src)
			}
		}
		p.writer.Root = output.CommonDir(local)
	}

	var errCount int
	for _, src := range sources {
		if err := p.convertOne(ctx, src, false); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", src, err)
			errCount++
		}
	}
	if errCount > 0 {
		return fmt.Errorf("%d/%d sources failed", errCount, len(sources))
	}
	return nil
}

// runAll discovers the pages of a site and converts each one.
func (p *pipeline) runAll(ctx context.Context, rawURL string) error {
	fmt.Fprintf(p.stdout, "Discovering pages from %s...\n", rawURL)

	urls, err := crawl.DiscoverAll(ctx, rawURL, p.fetcher, p.cfg.Fetch.MaxPages)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	fmt.Fprintf(p.stdout, "Found %d pages to process\n", len(urls))

	var errCount int
	for i, pageURL := range urls {
		fmt.Fprintf(p.stdout, "[%d/%d] Processing %s\n", i+1, len(urls), pageURL)
		if err := p.convertOne(ctx, pageURL, true); err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
		}
	}
	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d pages failed\n", errCount, len(urls))
	}
	return nil
}

// convertOne runs a single source through the full pipeline.
func (p *pipeline) convertOne(ctx context.Context, src string, mirrored bool) error {
	doc, err := p.load(ctx, src)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	title := ""
	if doc.Format == core.FormatHTML {
		title = extract.Title(doc.Text)
		if p.cfg.HTML.Extract {
			content, err := p.extractor.Extract(doc.Text)
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}
			doc.Text = content
		}
	}

	slog.Debug("converting", "source", src, "format", doc.Format)
	out, err := p.registry.Convert(doc)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return core.ErrEmptyOutput
	}

	meta := core.DocumentMetadata{
		Origin:      doc.Origin,
		Format:      doc.Format,
		Title:       title,
		ConvertedAt: p.now().UTC().Format(time.RFC3339),
	}
	data, err := p.renderer.Render(out, meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if p.writer == nil {
		_, err := p.stdout.Write(data)
		return err
	}

	var path string
	ext := p.renderer.Extension()
	switch {
	case mirrored:
		path, err = p.writer.WriteMirrored(src, data, ext)
	case crawl.IsRemote(src):
		path, err = p.writer.WriteURL(src, data, ext)
	default:
		path, err = p.writer.WriteFile(src, data, ext)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(p.stdout, "✓ Written: %s\n", path)
	return nil
}

// load reads a source and resolves its format.
func (p *pipeline) load(ctx context.Context, src string) (core.SourceDocument, error) {
	format := p.from
	if format == "" {
		f, err := convert.DetectFormat(src)
		if err != nil {
			if src == "-" {
				return core.SourceDocument{}, fmt.Errorf("%w: use --from with stdin", core.ErrUnknownFormat)
			}
			return core.SourceDocument{}, err
		}
		format = f
	}

	var text string
	switch {
	case src == "-":
		data, err := io.ReadAll(p.stdin)
		if err != nil {
			return core.SourceDocument{}, fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	case crawl.IsRemote(src):
		res, err := p.fetcher.Fetch(ctx, src)
		if err != nil {
			return core.SourceDocument{}, err
		}
		text = res.HTML
	default:
		data, err := os.ReadFile(src)
		if err != nil {
			return core.SourceDocument{}, fmt.Errorf("reading %s: %w", src, err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return core.SourceDocument{}, errors.New("source is empty")
	}
	return core.SourceDocument{Origin: src, Format: format, Text: text}, nil
}
