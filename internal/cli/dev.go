package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/caseflow/internal/db"
	"github.com/example/caseflow/internal/wire"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Development utilities",
		Long: `Development utilities for working with a caseflow dev database.

These commands require CASEFLOW_DB to point at a dev database. Running
against the default database path will error to prevent accidental
modification of production data.`,
	}

	cmd.AddCommand(devSeedCmd())
	return cmd
}

func devSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the dev database with fixture data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv("CASEFLOW_DB") == "" {
				return fmt.Errorf("CASEFLOW_DB not set - refusing to seed the default database")
			}

			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			// Provision the workflow graph first so the fixture cases have
			// stages to live in.
			if _, err := wire.WorkflowService().GetDefaultTemplate(context.Background()); err != nil {
				return fmt.Errorf("failed to provision default workflow: %w", err)
			}

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}

			fmt.Println("✓ Seeded dev fixtures")
			return nil
		},
	}
	return cmd
}
