package core

// Config holds every tunable of the pipeline. It is built once at startup
// (defaults, then config file, then environment) and shared read-only.
type Config struct {
	// OutputDir is where converted files are written (default: working directory).
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Extension is the file extension of Scroll output.
	Extension string `mapstructure:"extension" yaml:"extension"`

	HTML     HTMLConfig     `mapstructure:"html" yaml:"html"`
	LaTeX    LaTeXConfig    `mapstructure:"latex" yaml:"latex"`
	Markdown MarkdownConfig `mapstructure:"markdown" yaml:"markdown"`
	Fetch    FetchConfig    `mapstructure:"fetch" yaml:"fetch"`
}

// HTMLConfig holds settings for HTML sources.
type HTMLConfig struct {
	// Extract isolates the main content (<main>, <article>, <body>) and strips
	// navigation, scripts and forms before conversion.
	Extract bool `mapstructure:"extract" yaml:"extract"`

	// ViaMarkdown converts HTML to Markdown first and runs the Markdown
	// converter on the result instead of walking the DOM directly.
	ViaMarkdown bool `mapstructure:"via_markdown" yaml:"via_markdown"`
}

// LaTeXConfig holds settings for the LaTeX converter.
type LaTeXConfig struct {
	// ResolveInputs rewrites \input{name} to a cross-reference filename.
	ResolveInputs bool `mapstructure:"resolve_inputs" yaml:"resolve_inputs"`

	// InputExtension replaces ".tex" on \input targets.
	InputExtension string `mapstructure:"input_extension" yaml:"input_extension"`
}

// MarkdownConfig holds settings for the Markdown converter.
type MarkdownConfig struct {
	// Fence is the line prefix that opens and closes a code block.
	Fence string `mapstructure:"fence" yaml:"fence"`

	// Tables enables pipe-table conversion.
	Tables bool `mapstructure:"tables" yaml:"tables"`

	// Footnotes enables footnote definition lines.
	Footnotes bool `mapstructure:"footnotes" yaml:"footnotes"`

	// LinkTitles emits a title line under links that carry one.
	LinkTitles bool `mapstructure:"link_titles" yaml:"link_titles"`
}

// FetchConfig holds settings for remote HTML sources.
type FetchConfig struct {
	// TimeoutSeconds bounds a single HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`

	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`

	// MaxPages caps link crawling in --all mode.
	MaxPages int `mapstructure:"max_pages" yaml:"max_pages"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Extension: ".scroll",
		HTML: HTMLConfig{
			Extract: false,
		},
		LaTeX: LaTeXConfig{
			ResolveInputs:  true,
			InputExtension: ".scroll",
		},
		Markdown: MarkdownConfig{
			Fence:      "```",
			Tables:     true,
			Footnotes:  true,
			LinkTitles: true,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 30,
			UserAgent:      "scrollpipe/1.0 (https://github.com/gaurav-prasanna/scrollpipe)",
			MaxPages:       100,
		},
	}
}
