package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/internal/session"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Session  *session.Session
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a fresh calculator session.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cmdCtx := NewCommandContextWithoutSession(cmd)
	cmdCtx.Session = session.New(session.Config{
		AngleMode: cmdCtx.Cfg.AngleMode,
		Precision: cmdCtx.Cfg.Precision,
		Logger:    cmdCtx.Logger,
	})
	return cmdCtx
}

// NewCommandContextWithoutSession creates a CommandContext without a session.
// Useful for commands that only report static information.
func NewCommandContextWithoutSession(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	cfg := getConfig(ctx)
	r := output.FromContext(ctx)
	if r == nil {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: r,
	}
}

// getConfig returns the configuration the root command stored in ctx, then
// the last loaded one, then the defaults (commands run outside the root
// command).
func getConfig(ctx context.Context) *config.Config {
	if cfg := config.FromContext(ctx); cfg != nil {
		return cfg
	}
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// sessionError prefixes a session error with its kind, e.g.
// "DomainError: division by zero".
func sessionError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", session.KindOf(err), err)
}
