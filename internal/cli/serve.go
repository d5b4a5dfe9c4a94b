package cli

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roehl/interlog/internal/identity"
	"github.com/roehl/interlog/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen  string
	Keyring string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger over HTTP",
		Long: `Serve the ledger over HTTP.

Reads (count, get, list) are public. Writes require an API key from the
keyring; the resolved actor is recorded, never one named in the request.

Example:
  interlog serve --db ./interlog.db --keyring ./keys.yaml --listen :8080`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveLedger(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address (default: INTERLOG_LISTEN or :8080)")
	cmd.Flags().StringVar(&opts.Keyring, "keyring", "", "path to keyring YAML (default: INTERLOG_KEYRING)")

	return cmd
}

func serveLedger(opts *ServeOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	keyringPath := opts.Keyring
	if keyringPath == "" {
		keyringPath = cfg.KeyringPath
	}
	if keyringPath == "" {
		return NewExitError(ExitCommandError,
			"serve requires a keyring (--keyring or INTERLOG_KEYRING) to authenticate writers")
	}
	kr, err := identity.LoadKeyring(keyringPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load keyring", err)
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
	slog.Info("database ready")

	notifier, cleanup := buildNotifier(cfg)
	defer cleanup()

	listen := opts.Listen
	if listen == "" {
		listen = cfg.Listen
	}

	srv, err := server.New(st, kr, notifier, listen)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create server", err)
	}

	// Graceful shutdown on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("shutting down", "signal", sig.String())
		if err := srv.Stop(); err != nil {
			return WrapExitError(ExitCommandError, "shutdown failed", err)
		}
		<-errChan
		return nil
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return WrapExitError(ExitCommandError, "server failed", err)
		}
		return nil
	}
}
