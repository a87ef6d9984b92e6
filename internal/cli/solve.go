package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/springs/internal/puzzle"
	"github.com/roach88/springs/internal/solver"
	"github.com/roach88/springs/internal/store"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Unfold    int
	Workers   int
	Database  string
	PerRecord bool
}

// SolveOutput is the JSON payload of the solve command.
type SolveOutput struct {
	RunID       string        `json:"run_id"`
	InputDigest string        `json:"input_digest"`
	Unfold      int           `json:"unfold"`
	Workers     int           `json:"workers"`
	Total       uint64        `json:"total"`
	Records     []RecordCount `json:"records,omitempty"`
}

// RecordCount is the count of one input line.
type RecordCount struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Count  uint64 `json:"count"`
	Cached bool   `json:"cached,omitempty"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve [input-file]",
		Short: "Sum the arrangement counts of a puzzle input",
		Long: `Parse a puzzle input, count the arrangements of every condition record
and print the total. Reads standard input when no file (or "-") is given.

With --db, counts of previously seen records are served from the database
and the run is appended to its history.

Exit codes:
  0 - Total printed
  1 - A count exceeded the 64-bit range
  2 - Command error (malformed input, unreadable file, etc.)

Examples:
  springs solve input.txt
  springs solve input.txt --unfold 5
  springs solve --db springs.db --per-record < input.txt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runSolve(cmd, opts, path)
		},
	}

	cmd.Flags().IntVar(&opts.Unfold, "unfold", 1, "unfold factor applied to every record")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "records counted in parallel (0 = number of CPUs)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database for the count cache and run history")
	cmd.Flags().BoolVar(&opts.PerRecord, "per-record", false, "print each record's count before the total")

	return cmd
}

// applyConfig fills flags the user did not set from the configuration.
func (o *SolveOptions) applyConfig(cmd *cobra.Command) {
	cfg := o.Config()
	if !cmd.Flags().Changed("unfold") {
		o.Unfold = cfg.Unfold
	}
	if !cmd.Flags().Changed("workers") {
		o.Workers = cfg.Workers
	}
	if !cmd.Flags().Changed("db") {
		o.Database = cfg.DB
	}
}

func runSolve(cmd *cobra.Command, opts *SolveOptions, path string) error {
	opts.applyConfig(cmd)
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	entries, err := readEntries(cmd, path)
	if err != nil {
		if puzzle.IsParseError(err) {
			return f.Fail(ExitCommandError, ErrCodeInput, "malformed input", err)
		}
		return f.Fail(ExitCommandError, ErrCodeInput, "failed to read input", err)
	}

	solverOpts := []solver.Option{
		solver.WithUnfold(opts.Unfold),
		solver.WithWorkers(opts.Workers),
	}

	var st *store.Store
	if opts.Database != "" {
		slog.Debug("opening database", "path", opts.Database)
		st, err = store.Open(opts.Database)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		solverOpts = append(solverOpts, solver.WithResultCache(st))
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, err := solver.New(solverOpts...).SolveAll(ctx, entries)
	if err != nil {
		switch {
		case solver.IsOverflowError(err):
			return f.Fail(ExitFailure, ErrCodeOverflow, "count overflow", err)
		case solver.IsCanceledError(err):
			return f.Fail(ExitFailure, ErrCodeCanceled, "solve interrupted", err)
		case puzzle.IsParseError(err):
			return f.Fail(ExitCommandError, ErrCodeInput, "invalid unfold factor", err)
		default:
			return f.Fail(ExitCommandError, ErrCodeStore, "solve failed", err)
		}
	}

	if st != nil {
		seq, err := st.WriteRun(ctx, run.Record())
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, "failed to record run", err)
		}
		slog.Debug("run recorded", "run_id", run.ID, "seq", seq)
	}

	if opts.Format == "json" {
		return f.Success(solveOutput(run, opts.PerRecord))
	}
	return printSolveText(cmd.OutOrStdout(), run, opts.PerRecord)
}

// readEntries parses the input at path, or standard input for "-".
func readEntries(cmd *cobra.Command, path string) ([]puzzle.Entry, error) {
	if path == "-" {
		return puzzle.Parse(cmd.InOrStdin())
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return puzzle.Parse(file)
}

func solveOutput(run *solver.Run, perRecord bool) SolveOutput {
	out := SolveOutput{
		RunID:       run.ID,
		InputDigest: run.InputDigest,
		Unfold:      run.Unfold,
		Workers:     run.Workers,
		Total:       run.Total,
	}
	if perRecord {
		out.Records = make([]RecordCount, len(run.Results))
		for i, res := range run.Results {
			out.Records[i] = RecordCount{Line: res.Line, Text: res.Text, Count: res.Count, Cached: res.Cached}
		}
	}
	return out
}

func printSolveText(w io.Writer, run *solver.Run, perRecord bool) error {
	if perRecord {
		for _, res := range run.Results {
			if _, err := fmt.Fprintf(w, "%d\t%s\t%d\n", res.Line, res.Text, res.Count); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, run.Total)
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
