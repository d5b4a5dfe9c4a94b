package cli

import (
	"github.com/spf13/cobra"
)

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the current number of interactions",
		Long: `Print the current number of interactions in the ledger.

Example:
  interlog count --db ./interlog.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return countInteractions(rootOpts, cmd)
		},
	}

	return cmd
}

func countInteractions(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(opts, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	count, err := st.Count(commandContext(cmd))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read count", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(map[string]any{"count": count})
	}
	return out.Success(count)
}
