package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/rql"
)

// NewNodesCmd creates the "nodes" subcommand.
func NewNodesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes <query>",
		Short: "Print the operator nodes extracted from a query",
		Args:  cobra.ExactArgs(1),
		RunE:  runNodes,
	}

	cmd.Flags().String("format", "text", "Output format: text | json")

	return cmd
}

func runNodes(cmd *cobra.Command, args []string) error {
	query := args[0]
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	nodes, err := rql.ExtractNodes(query)
	if err != nil {
		var v *rql.Violation
		if errors.As(err, &v) {
			fmt.Fprintln(out, newCheckResult(query, err).diagnostic())
		}
		return exitError(exitValidation, "cannot extract nodes: %v", err)
	}
	nodes = rql.AnnotateNestedCount(nodes)

	if format == "json" {
		if nodes == nil {
			nodes = []rql.OperatorNode{}
		}
		return writeJSON(out, nodes)
	}

	if len(nodes) == 0 {
		fmt.Fprintln(out, "No operator nodes.")
		return nil
	}
	printNodeTable(out, nodes)
	return nil
}
