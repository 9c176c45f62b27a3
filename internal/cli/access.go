package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/caseflow/internal/ports/primary"
	"github.com/example/caseflow/internal/wire"
)

var accessCmd = &cobra.Command{
	Use:   "access",
	Short: "Record and inspect gate/dock movements",
}

var accessLogCmd = &cobra.Command{
	Use:   "log [subject]",
	Short: "Record a gate movement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gate, _ := cmd.Flags().GetString("gate")
		direction, _ := cmd.Flags().GetString("direction")
		carrier, _ := cmd.Flags().GetString("carrier")
		notes, _ := cmd.Flags().GetString("notes")

		if gate == "" {
			if cfg := loadLocalConfig(); cfg != nil {
				gate = cfg.DefaultGate
			}
		}

		entry, err := wire.AccessService().RecordEntry(requestContext(cmd), primary.RecordEntryRequest{
			Gate:      gate,
			Direction: direction,
			Subject:   args[0],
			Carrier:   carrier,
			Notes:     notes,
		})
		if err != nil {
			return fmt.Errorf("failed to record entry: %w", err)
		}

		fmt.Printf("✓ Recorded %s at gate %s: %s\n", entry.Direction, entry.Gate, entry.Subject)
		return nil
	},
}

var accessListCmd = &cobra.Command{
	Use:   "list",
	Short: "List gate movements, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		gate, _ := cmd.Flags().GetString("gate")
		direction, _ := cmd.Flags().GetString("direction")
		limit, _ := cmd.Flags().GetInt("limit")

		entries, err := wire.AccessService().ListEntries(requestContext(cmd), primary.AccessFilters{
			Gate:      gate,
			Direction: direction,
			Limit:     limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No entries found.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%s  %-3s gate %-8s %s", e.RecordedAt, e.Direction, e.Gate, e.Subject)
			if e.Carrier != "" {
				fmt.Printf(" (%s)", e.Carrier)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	accessLogCmd.Flags().String("gate", "", "Gate name (defaults to the configured gate)")
	accessLogCmd.Flags().String("direction", "in", "Movement direction: in or out")
	accessLogCmd.Flags().String("carrier", "", "Carrier company")
	accessLogCmd.Flags().String("notes", "", "Free-form notes")

	accessListCmd.Flags().String("gate", "", "Filter by gate")
	accessListCmd.Flags().String("direction", "", "Filter by direction")
	accessListCmd.Flags().Int("limit", 0, "Maximum number of entries")

	accessCmd.AddCommand(accessLogCmd)
	accessCmd.AddCommand(accessListCmd)
}

// AccessCmd returns the access command
func AccessCmd() *cobra.Command {
	return accessCmd
}
