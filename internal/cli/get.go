package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/roehl/interlog/internal/ledger"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <index>",
		Short: "Print the interaction at the given index",
		Long: `Print the interaction at the given index.

Fails with exit code 1 and an INDEX_OUT_OF_RANGE error when the index is
not less than the current count.

Example:
  interlog get 0
  interlog get 42 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getInteraction(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func getInteraction(opts *RootOptions, rawIndex string, cmd *cobra.Command) error {
	index, err := strconv.ParseInt(rawIndex, 10, 64)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid index %q", rawIndex), err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(opts, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	rec, err := st.Get(commandContext(cmd), index)
	if err != nil {
		if ledger.IsIndexOutOfRange(err) {
			_ = out.Error(string(ledger.ErrCodeIndexOutOfRange), err.Error())
			return NewExitError(ExitFailure, "")
		}
		return WrapExitError(ExitCommandError, "failed to read interaction", err)
	}

	if opts.Format == "json" {
		return out.Success(rec)
	}
	return out.Success(formatInteraction(rec))
}

// formatInteraction renders one record for text output.
func formatInteraction(rec ledger.Interaction) string {
	ts := time.Unix(rec.Timestamp, 0).UTC().Format(time.RFC3339)
	return fmt.Sprintf("%d\t%s\t%s\t%s", rec.Index, ts, rec.Actor, rec.Action)
}
