package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/springs/internal/ir"
	"github.com/roach88/springs/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded solve runs",
		Long: `List the runs recorded by "springs solve --db", newest first.
With a run ID, show that run's per-line counts.

Examples:
  springs history --db springs.db
  springs history --db springs.db --limit 5
  springs history --db springs.db 01920f3e-7c1a-7b3e-9f00-3c5a1e2d4b6f`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			return runHistory(cmd, opts, runID)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database written by solve --db")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum runs to list (0 = all)")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions, runID string) error {
	if !cmd.Flags().Changed("db") {
		opts.Database = opts.Config().DB
	}
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Database == "" {
		return NewExitError(ExitCommandError, "no database: pass --db or set db in the configuration")
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := commandContext(cmd)
	if runID != "" {
		run, err := st.ReadRun(ctx, runID)
		if errors.Is(err, store.ErrNotFound) {
			return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("run not found: %s", runID), nil)
		}
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, "failed to read run", err)
		}
		if opts.Format == "json" {
			return f.Success(run)
		}
		return printRun(cmd.OutOrStdout(), run)
	}

	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to list runs", err)
	}
	if opts.Format == "json" {
		if runs == nil {
			runs = []ir.RunRecord{}
		}
		return f.Success(runs)
	}
	return printRuns(cmd.OutOrStdout(), runs)
}

func printRuns(w io.Writer, runs []ir.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tUNFOLD\tWORKERS\tTOTAL\tELAPSED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\n",
			r.Seq, r.ID, r.Unfold, r.Workers, r.Total, elapsed(r.ElapsedMS))
	}
	return tw.Flush()
}

func printRun(w io.Writer, run ir.RunRecord) error {
	fmt.Fprintf(w, "Run %s (seq %d)\n", run.ID, run.Seq)
	fmt.Fprintf(w, "  input:   %s\n", run.InputDigest)
	fmt.Fprintf(w, "  unfold:  %d\n", run.Unfold)
	fmt.Fprintf(w, "  workers: %d\n", run.Workers)
	fmt.Fprintf(w, "  elapsed: %s\n", elapsed(run.ElapsedMS))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tRECORD\tCOUNT")
	for _, l := range run.Lines {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", l.Line, l.Text, l.Count)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d\n", run.Total)
	return err
}

func elapsed(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}
