package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/caseflow/internal/config"
	"github.com/example/caseflow/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the caseflow database and local config",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.InitSchema(); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		dbPath, err := db.GetDBPath()
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}
		fmt.Printf("✓ Database ready at %s\n", dbPath)

		actor, _ := cmd.Flags().GetString("actor")
		if actor != "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			cfg := &config.Config{Version: "1.0", ActorID: actor}
			if existing := loadLocalConfig(); existing != nil {
				existing.ActorID = actor
				cfg = existing
			}
			if err := config.SaveConfig(cwd, cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Printf("✓ Default actor set to %s\n", actor)
		}

		return nil
	},
}

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return initCmd
}
