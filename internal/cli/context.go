// Package cli contains the cobra commands for the caseflow binary.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/caseflow/internal/config"
	"github.com/example/caseflow/internal/ctxutil"
)

// requestContext builds the request context for a command, resolving the
// acting identity from the --actor flag, the local config, or the OS user.
func requestContext(cmd *cobra.Command) context.Context {
	actor, _ := cmd.Flags().GetString("actor")

	var cfg *config.Config
	if cwd, err := os.Getwd(); err == nil {
		cfg, _ = config.LoadConfig(cwd)
	}

	return ctxutil.WithActorID(context.Background(), config.ResolveActor(actor, cfg))
}

// loadLocalConfig returns the config from the working directory, or nil.
func loadLocalConfig() *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		return nil
	}
	return cfg
}
