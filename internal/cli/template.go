package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/caseflow/internal/ports/primary"
	"github.com/example/caseflow/internal/wire"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage workflow templates",
	Long:  "Inspect and provision the workflow templates that govern case transitions",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workflow templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := wire.WorkflowService().ListTemplates(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		if len(templates) == 0 {
			fmt.Println("No templates found. Run 'caseflow template provision' to create the default workflow.")
			return nil
		}

		fmt.Printf("Found %d template(s):\n\n", len(templates))
		for _, tmpl := range templates {
			marker := ""
			if tmpl.IsDefault {
				marker = color.New(color.FgGreen).Sprint(" [default]")
			}
			fmt.Printf("%s: %s%s\n", tmpl.ID, tmpl.Name, marker)
			if tmpl.Description != "" {
				fmt.Printf("   %s\n", tmpl.Description)
			}
		}
		return nil
	},
}

var templateShowCmd = &cobra.Command{
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

var templateProvisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Ensure the default workflow template exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		graph, err := wire.WorkflowService().GetDefaultTemplate(context.Background())
		if err != nil {
			return fmt.Errorf("failed to provision default template: %w", err)
		}

		fmt.Printf("✓ Default template %s ready (%d states, %d transitions)\n",
			graph.Template.ID, len(graph.States), len(graph.Transitions))
		return nil
	},
}

// printGraph renders a template graph as text: states first, then edges
// labelled with their endpoint state types.
func printGraph(graph *primary.TemplateGraph) {
	marker := ""
	if graph.Template.IsDefault {
		marker = color.New(color.FgGreen).Sprint(" [default]")
	}
	fmt.Printf("%s: %s%s\n", graph.Template.ID, graph.Template.Name, marker)
	if graph.Template.Description != "" {
		fmt.Printf("%s\n", graph.Template.Description)
	}

	typeByID := make(map[string]string, len(graph.States))
	fmt.Printf("\nStates (%d):\n", len(graph.States))
	for _, st := range graph.States {
		typeByID[st.ID] = st.StateType
		fmt.Printf("  %s  %-12s %q at (%.0f, %.0f)\n", st.ID, st.StateType, st.Label, st.X, st.Y)
		if st.Assignee != "" || st.Notify {
			effects := ""
			if st.Assignee != "" {
				effects += fmt.Sprintf(" assign=%s", st.Assignee)
			}
			if st.Notify {
				effects += fmt.Sprintf(" notify=%s", st.NotificationTemplate)
			}
			fmt.Printf("      on arrival:%s\n", effects)
		}
	}

	fmt.Printf("\nTransitions (%d):\n", len(graph.Transitions))
	for _, tr := range graph.Transitions {
		label := ""
		if tr.Label != "" {
			label = fmt.Sprintf(" (%s)", tr.Label)
		}
		fmt.Printf("  %s  %s → %s%s\n", tr.ID, typeByID[tr.FromStateID], typeByID[tr.ToStateID], label)
	}
}

func init() {
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateProvisionCmd)
}

// TemplateCmd returns the template command
func TemplateCmd() *cobra.Command {
	return templateCmd
}
