package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roehl/interlog/internal/ledger"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the hash chain over the stored sequence",
		Long: `Recompute every record hash and chain hash and report the first
divergence. A clean ledger exits 0; a divergent one exits 1 with a
CHAIN_DIVERGENCE error naming the offending index.

Example:
  interlog verify --db ./interlog.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return verifyLedger(rootOpts, cmd)
		},
	}

	return cmd
}

func verifyLedger(opts *RootOptions, cmd *cobra.Command) error {
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

	verified, err := st.VerifyChain(commandContext(cmd))
	if err != nil {
		if ledger.IsChainDivergence(err) {
			_ = out.Error(string(ledger.ErrCodeChainDivergence), err.Error())
			return NewExitError(ExitFailure, "")
		}
		return WrapExitError(ExitCommandError, "failed to verify chain", err)
	}

	if opts.Format == "json" {
		return out.Success(map[string]any{"verified": verified})
	}
	return out.Success(fmt.Sprintf("Chain OK: %d interactions verified", verified))
}
