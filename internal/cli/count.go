package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/springs/internal/ir"
	"github.com/roach88/springs/internal/puzzle"
	"github.com/roach88/springs/internal/solver"
	"github.com/roach88/springs/internal/spring"
)

// CountOptions holds flags for the count command.
type CountOptions struct {
	*RootOptions
	Unfold int
}

// CountOutput is the JSON payload of the count command.
type CountOutput struct {
	Symbols string `json:"symbols"`
	Groups  []int  `json:"groups"`
	Unfold  int    `json:"unfold"`
	Digest  string `json:"digest"`
	Count   uint64 `json:"count"`
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CountOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "count <symbols> <groups>",
		Short: "Count the arrangements of a single record",
		Long: `Count the arrangements of one condition record given on the command line.

Examples:
  springs count '???.###' 1,1,3
  springs count '?###????????' 3,2,1 --unfold 5`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().IntVar(&opts.Unfold, "unfold", 1, "unfold factor applied to the record")

	return cmd
}

func runCount(cmd *cobra.Command, opts *CountOptions, symbols, groups string) error {
	if !cmd.Flags().Changed("unfold") {
		opts.Unfold = opts.Config().Unfold
	}
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	row, err := puzzle.ParseLine(symbols + " " + groups)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInput, "malformed record", err)
	}
	row, err = puzzle.Unfold(row, opts.Unfold)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInput, "invalid unfold factor", err)
	}

	n, err := solver.SolveOne(row)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeOverflow, "count overflow", err)
	}

	if opts.Format != "json" {
		return f.Success(n)
	}
	text := spring.FormatSymbols(row.Symbols)
	digest, err := ir.RecordDigest(text, row.Groups)
	if err != nil {
		return err
	}
	return f.Success(CountOutput{
		Symbols: text,
		Groups:  row.Groups,
		Unfold:  opts.Unfold,
		Digest:  digest,
		Count:   n,
	})
}
