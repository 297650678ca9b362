// Package cmd implements the CLI commands for scrollpipe using Cobra.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/scrollpipe/core"
)

var rootCmd = &cobra.Command{
	Use:   "scrollpipe",
	Short: "scrollpipe converts HTML, LaTeX and Markdown into Scroll",
	Long: `scrollpipe is a deterministic conversion pipeline that turns HTML pages,
LaTeX sources and Markdown files into Scroll, a line-oriented markup.

Usage:
  scrollpipe convert <source>... [flags]
  scrollpipe config`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scrollpipe.yaml or ~/.config/scrollpipe/scrollpipe.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log pipeline steps to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	setupLogging(rootCmd.ErrOrStderr(), verbose)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scrollpipe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scrollpipe"))
		}
	}

	setDefaults(viper.GetViper(), core.DefaultConfig())

	viper.SetEnvPrefix("SCROLLPIPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so that environment variables
// and Unmarshal see them even when no config file exists.
func setDefaults(v *viper.Viper, cfg core.Config) {
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("extension", cfg.Extension)
	v.SetDefault("html.extract", cfg.HTML.Extract)
	v.SetDefault("html.via_markdown", cfg.HTML.ViaMarkdown)
	v.SetDefault("latex.resolve_inputs", cfg.LaTeX.ResolveInputs)
	v.SetDefault("latex.input_extension", cfg.LaTeX.InputExtension)
	v.SetDefault("markdown.fence", cfg.Markdown.Fence)
	v.SetDefault("markdown.tables", cfg.Markdown.Tables)
	v.SetDefault("markdown.footnotes", cfg.Markdown.Footnotes)
	v.SetDefault("markdown.link_titles", cfg.Markdown.LinkTitles)
	v.SetDefault("fetch.timeout_seconds", cfg.Fetch.TimeoutSeconds)
	v.SetDefault("fetch.user_agent", cfg.Fetch.UserAgent)
	v.SetDefault("fetch.max_pages", cfg.Fetch.MaxPages)
}

// loadConfig decodes the effective configuration out of v.
func loadConfig(v *viper.Viper) (core.Config, error) {
	var cfg core.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return core.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Extension != "" && !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}
	return cfg, nil
}

// setupLogging installs a text slog handler on stderr. Debug records are
// only shown with --verbose.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
