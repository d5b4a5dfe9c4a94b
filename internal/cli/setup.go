package cli

import (
	"context"
	"log/slog"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/roehl/interlog/internal/config"
	"github.com/roehl/interlog/internal/identity"
	"github.com/roehl/interlog/internal/notify"
	"github.com/roehl/interlog/internal/store"
)

// commandContext returns the command's context, or a background context
// when none was set (direct RunE invocation in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig reads environment configuration for a command.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	return cfg, nil
}

// openStore opens the ledger database, preferring the --db flag over the
// environment default.
func openStore(opts *RootOptions, cfg *config.Config) (*store.Store, error) {
	path := opts.DBPath
	if path == "" {
		path = cfg.DBPath
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// resolvePrincipal establishes the caller identity for a write.
//
// With a keyring configured, identity comes from the API key (--key flag
// or INTERLOG_API_KEY) resolved through the keyring. Without one, the
// ledger runs in local trusted mode and the actor is the operating-system
// user running the command. There is no flag to claim an arbitrary actor:
// identity always comes from the invocation context.
func resolvePrincipal(cfg *config.Config, keyFlag string) (identity.Principal, error) {
	if cfg.KeyringPath != "" {
		kr, err := identity.LoadKeyring(cfg.KeyringPath)
		if err != nil {
			return identity.Principal{}, WrapExitError(ExitCommandError, "failed to load keyring", err)
		}

		key := keyFlag
		if key == "" {
			key = cfg.APIKey
		}
		p, ok := kr.Resolve(key)
		if !ok {
			return identity.Principal{}, NewExitError(ExitCommandError,
				"keyring is configured but no valid API key was provided (--key or INTERLOG_API_KEY)")
		}
		return p, nil
	}

	u, err := user.Current()
	if err != nil {
		return identity.Principal{}, WrapExitError(ExitCommandError, "failed to determine local user", err)
	}
	return identity.Principal{Actor: u.Username}, nil
}

// buildNotifier assembles the notification dispatcher from configured
// sinks. Returns nil when no sink is configured; the cleanup function is
// always safe to call and drains the dispatcher before closing sinks.
func buildNotifier(cfg *config.Config) (*notify.Dispatcher, func()) {
	fanout := notify.NewFanout()
	var jsonl *notify.JSONLSink

	if cfg.NotifyJSONLPath != "" {
		jsonl = notify.NewJSONLSink(cfg.NotifyJSONLPath)
		fanout.Add(jsonl)
	}
	if cfg.NotifyWebhookURL != "" {
		fanout.Add(notify.NewWebhookSink(cfg.NotifyWebhookURL))
	}

	if fanout.Len() == 0 {
		return nil, func() {}
	}

	d := notify.NewDispatcher(fanout, cfg.NotifyBuffer)
	cleanup := func() {
		d.Close()
		if jsonl != nil {
			if err := jsonl.Close(); err != nil {
				slog.Warn("closing notification log failed", "error", err)
			}
		}
	}
	return d, cleanup
}
