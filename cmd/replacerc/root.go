package main

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/replacerc/pkg/config"
	"github.com/walteh/replacerc/pkg/log"
	"github.com/walteh/replacerc/pkg/operation"
	"github.com/walteh/replacerc/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the flag values
type rootOpts struct {
	configFile string
	roots      []string
	format     string
	debug      bool
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "replacerc",
		Short: "Find and replace school name variants across a project",
		Long: `replacerc walks the configured folders, rewrites every matching file in place
and prints a summary of what changed.

With no flags it uses the built-in configuration: ./src and ./public, common
source and text extensions, and the "SMP Muslimin" -> "SMPN 2 Cililin" rules.
Rules run in order; each one sees the output of the rules before it.`,
		Example: `  replacerc
  replacerc --root ./docs --root ./site
  replacerc -c replacerc.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	addRootFlags(cmd, opts)

	return cmd
}

// addRootFlags adds flags to the root command
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file path (.yaml, .json, .hcl or .replacerc)")
	cmd.Flags().StringArrayVarP(&opts.roots, "root", "r", nil, "folder to scan, repeatable (overrides config roots)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(report.FormatText), "summary format: text, json or yaml")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging on stderr")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
}

// setupLogging configures zerolog based on flags. Structured logs are off
// unless --debug is set; the console output covers normal use.
func setupLogging(stderr io.Writer, debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

// setupColor turns styling off for --no-color and for non-terminal output.
func setupColor(stdout io.Writer, noColor bool) {
	tty := false
	if f, ok := stdout.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	if noColor || !tty {
		color.NoColor = true
		pterm.DisableStyling()
	}
}

func loadConfig(ctx context.Context, opts *rootOpts) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		loaded, err := config.Load(ctx, opts.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if len(opts.roots) > 0 {
		cfg.Roots = opts.roots
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func run(ctx context.Context, opts *rootOpts, stdout, stderr io.Writer) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	zlog := setupLogging(stderr, opts.debug)
	ctx = zlog.WithContext(ctx)
	setupColor(stdout, opts.noColor)

	// keep stdout clean for machine-readable output
	console := stdout
	if format != report.FormatText {
		console = stderr
	}
	ctx = log.NewContext(ctx, log.New(console, zlog))

	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	replacer, err := operation.New(operation.Options{
		Config: cfg,
		Logger: log.FromContext(ctx),
	})
	if err != nil {
		return errors.Errorf("creating replacer: %w", err)
	}

	summary, err := replacer.Run(ctx)
	if err != nil {
		return errors.Errorf("running replacer: %w", err)
	}

	if err := report.Write(stdout, format, summary); err != nil {
		return errors.Errorf("writing report: %w", err)
	}

	return nil
}
