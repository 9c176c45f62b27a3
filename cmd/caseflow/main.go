package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/caseflow/internal/cli"
	"github.com/example/caseflow/internal/version"
	"github.com/example/caseflow/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "caseflow",
		Short:   "caseflow - quality incident tracking with configurable workflows",
		Version: version.String(),
		Long: `caseflow tracks quality incidents (non-conformance cases) through a
configurable workflow. The workflow is a directed graph of states and
transitions that can be edited while cases are in flight; every case
movement is validated against the graph as it is at that moment.`,
	}

	rootCmd.PersistentFlags().String("actor", "", "Acting identity for audited operations")

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.TemplateCmd())
	rootCmd.AddCommand(cli.WorkflowCmd())
	rootCmd.AddCommand(cli.CaseCmd())
	rootCmd.AddCommand(cli.AccessCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	err := rootCmd.Execute()
	wire.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
