package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/caseflow/internal/core/workflow"
	"github.com/example/caseflow/internal/ports/primary"
	"github.com/example/caseflow/internal/wire"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Edit a workflow template's graph",
	Long:  "Add, rename, move and delete the states and transitions of a workflow template",
}

var workflowAddStateCmd = &cobra.Command{
	Use:   "add-state [template-id]",
	Short: "Add a state to a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stateType, _ := cmd.Flags().GetString("type")
		label, _ := cmd.Flags().GetString("label")
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		assignee, _ := cmd.Flags().GetString("assign")
		notifyTemplate, _ := cmd.Flags().GetString("notify")

		if stateType == "" {
			return fmt.Errorf("--type is required (one of: %s)", strings.Join(stateTypeNames(), ", "))
		}

		state, err := wire.EditorService().AddState(context.Background(), primary.AddStateRequest{
			TemplateID:           args[0],
			Label:                label,
			StateType:            stateType,
			X:                    x,
			Y:                    y,
			Assignee:             assignee,
			Notify:               notifyTemplate != "",
			NotificationTemplate: notifyTemplate,
		})
		if err != nil {
			return fmt.Errorf("failed to add state: %w", err)
		}

		fmt.Printf("✓ Added state %s (%s) to %s\n", state.ID, state.StateType, state.TemplateID)
		return nil
	},
}

var workflowRenameStateCmd = &cobra.Command{
	Use:   "rename-state [state-id] [new-label]",
	Short: "Rename a state's display label",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.EditorService().RenameState(context.Background(), args[0], args[1]); err != nil {
			return fmt.Errorf("failed to rename state: %w", err)
		}
		fmt.Printf("✓ Renamed state %s to %q\n", args[0], args[1])
		return nil
	},
}

var workflowMoveStateCmd = &cobra.Command{
	Use:   "move-state [state-id]",
	Short: "Move a state on the canvas",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")

		if err := wire.EditorService().RepositionState(context.Background(), args[0], x, y); err != nil {
			return fmt.Errorf("failed to move state: %w", err)
		}
		fmt.Printf("✓ Moved state %s to (%.0f, %.0f)\n", args[0], x, y)
		return nil
	},
}

var workflowDeleteStateCmd = &cobra.Command{
	Use:   "delete-state [state-id]",
	Short: "Delete a state and every transition touching it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.EditorService().DeleteState(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete state: %w", err)
		}
		fmt.Printf("✓ Deleted state %s and its transitions\n", args[0])
		return nil
	},
}

var workflowAddTransitionCmd = &cobra.Command{
	Use:   "add-transition [template-id]",
	Short: "Add a directed transition between two states",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		label, _ := cmd.Flags().GetString("label")

		if from == "" || to == "" {
			return fmt.Errorf("--from and --to state IDs are required")
		}

		transition, err := wire.EditorService().AddTransition(context.Background(), primary.AddTransitionRequest{
			TemplateID:  args[0],
			FromStateID: from,
			ToStateID:   to,
			Label:       label,
		})
		if err != nil {
			return fmt.Errorf("failed to add transition: %w", err)
		}

		fmt.Printf("✓ Added transition %s (%s -> %s)\n", transition.ID, from, to)
		return nil
	},
}

var workflowDeleteTransitionCmd = &cobra.Command{
	Use:   "delete-transition [transition-id]",
	Short: "Delete a transition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.EditorService().DeleteTransition(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete transition: %w", err)
		}
		fmt.Printf("✓ Deleted transition %s\n", args[0])
		return nil
	},
}

var workflowShowCmd = &cobra.Command{
	Use:   "show [template-id]",
	Short: "Show a template's graph (default template if no ID given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var graph *primary.TemplateGraph
		var err error
		if len(args) == 0 {
			graph, err = wire.WorkflowService().GetDefaultTemplate(ctx)
		} else {
			graph, err = wire.WorkflowService().GetTemplate(ctx, args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to load template: %w", err)
		}

		printGraph(graph)
		return nil
	},
}

func stateTypeNames() []string {
	names := make([]string, len(workflow.CanonicalOrder))
	for i, st := range workflow.CanonicalOrder {
		names[i] = string(st)
	}
	return names
}

func init() {
	workflowAddStateCmd.Flags().String("type", "", "State type (required)")
	workflowAddStateCmd.Flags().String("label", "", "Display label (defaults to the state type)")
	workflowAddStateCmd.Flags().Float64("x", 0, "Canvas X position")
	workflowAddStateCmd.Flags().Float64("y", 0, "Canvas Y position")
	workflowAddStateCmd.Flags().String("assign", "", "Reassign arriving cases to this assignee")
	workflowAddStateCmd.Flags().String("notify", "", "Notification template to send on arrival")

	workflowMoveStateCmd.Flags().Float64("x", 0, "Canvas X position")
	workflowMoveStateCmd.Flags().Float64("y", 0, "Canvas Y position")

	workflowAddTransitionCmd.Flags().String("from", "", "Source state ID")
	workflowAddTransitionCmd.Flags().String("to", "", "Target state ID")
	workflowAddTransitionCmd.Flags().String("label", "", "Transition label")

	workflowCmd.AddCommand(workflowAddStateCmd)
	workflowCmd.AddCommand(workflowRenameStateCmd)
	workflowCmd.AddCommand(workflowMoveStateCmd)
	workflowCmd.AddCommand(workflowDeleteStateCmd)
	workflowCmd.AddCommand(workflowAddTransitionCmd)
	workflowCmd.AddCommand(workflowDeleteTransitionCmd)
	workflowCmd.AddCommand(workflowShowCmd)
}

// WorkflowCmd returns the workflow command
func WorkflowCmd() *cobra.Command {
	return workflowCmd
}
