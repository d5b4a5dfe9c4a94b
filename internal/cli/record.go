package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roehl/interlog/internal/identity"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	Key string
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record <action>",
		Short: "Append an interaction to the ledger",
		Long: `Append an interaction to the ledger.

The actor is derived from the invocation context: with a keyring configured
(INTERLOG_KEYRING), the API key resolves to an actor; without one, the
operating-system user is the actor. The timestamp is assigned by the system.
Prints the index assigned to the new record.

Example:
  interlog record "Article Posted"
  interlog record "Article Posted" --key s3cr3t-key-1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordInteraction(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Key, "key", "", "API key to authenticate as (default: INTERLOG_API_KEY)")

	return cmd
}

func recordInteraction(opts *RecordOptions, action string, cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	principal, err := resolvePrincipal(cfg, opts.Key)
	if err != nil {
		return err
	}

	st, err := openStore(opts.RootOptions, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	notifier, cleanup := buildNotifier(cfg)
	defer cleanup()

	ctx := identity.WithPrincipal(commandContext(cmd), principal)
	rec, err := st.Record(ctx, action)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to append interaction", err)
	}
	slog.Debug("interaction appended",
		"index", rec.Index,
		"actor", rec.Actor,
		"timestamp", rec.Timestamp,
	)

	if notifier != nil {
		notifier.Publish(rec)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(map[string]any{"index": rec.Index})
	}
	return out.Success(fmt.Sprintf("Recorded interaction %d as %s", rec.Index, rec.Actor))
}
