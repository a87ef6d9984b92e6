package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/springs/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	cfg *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Config returns the loaded configuration, or the defaults when no
// configuration has been loaded.
func (o *RootOptions) Config() config.Config {
	if o.cfg == nil {
		return config.Default()
	}
	return *o.cfg
}

// NewRootCommand creates the root command for the springs CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "springs",
		Short: "Count damaged-spring arrangements",
		Long: `springs counts the arrangements of damaged springs that agree with
each condition record of a puzzle input and sums them.

A condition record is a line of '#' (damaged), '.' (operational) and
'?' (unknown) followed by comma-separated damaged group sizes:

  ???.### 1,1,3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a CUE configuration file")

	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewCountCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// prepare loads the configuration, applies it beneath explicit flags and
// installs the default logger.
func (o *RootOptions) prepare(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			f := &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
			return f.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
		}
		cfg = loaded
	}
	o.cfg = &cfg

	if !cmd.Flags().Changed("format") {
		o.Format = cfg.Format
	}
	if !cmd.Flags().Changed("verbose") {
		o.Verbose = cfg.Verbose
	}
	if !slices.Contains(ValidFormats, o.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	setupLogging(cmd.ErrOrStderr(), o.Verbose)
	return nil
}

// setupLogging installs a text slog handler on w. Verbose enables debug
// records; otherwise only warnings and errors are written.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
