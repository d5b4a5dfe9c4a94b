package cli

import (
	"github.com/spf13/cobra"

	"github.com/roehl/interlog/internal/ledger"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Actor string
	Limit int
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print interactions in index order",
		Long: `Print interactions in index order, optionally filtered by actor.

Example:
  interlog list
  interlog list --actor alice --limit 10 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listInteractions(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Actor, "actor", "", "only interactions recorded by this actor")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum records to print (0 = no limit)")

	return cmd
}

func listInteractions(opts *ListOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(opts.RootOptions, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := commandContext(cmd)

	var recs []ledger.Interaction
	if opts.Actor != "" {
		recs, err = st.ListByActor(ctx, opts.Actor, opts.Limit)
	} else {
		recs, err = st.List(ctx, opts.Limit)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list interactions", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(map[string]any{"interactions": recs})
	}

	for _, rec := range recs {
		if err := out.Success(formatInteraction(rec)); err != nil {
			return err
		}
	}
	return nil
}
