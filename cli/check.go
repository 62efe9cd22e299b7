package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petal-labs/rql"
)

// NewCheckCmd creates the "check" subcommand.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [query...]",
		Short: "Validate RQL queries given as arguments or read line by line from stdin",
		RunE:  runCheck,
	}

	cmd.Flags().String("format", "text", "Output format: text | json")
	cmd.Flags().Bool("explain", false, "Print the operator node table for invalid queries")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	explain, _ := cmd.Flags().GetBool("explain")
	out := cmd.OutOrStdout()

	queries := args
	if len(queries) == 0 {
		var err error
		queries, err = readQueries(cmd.InOrStdin())
		if err != nil {
			return exitError(exitInputParse, "reading queries: %v", err)
		}
	}
	if len(queries) == 0 {
		return exitError(exitInputParse, "no queries given")
	}

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()
	v := sess.validator(cmd.Context())

	results := make([]checkResult, 0, len(queries))
	invalid := 0
	for _, q := range queries {
		res := newCheckResult(q, v.Check(q))
		if !res.Valid {
			invalid++
		}
		results = append(results, res)
	}

	if format == "json" {
		if err := writeJSON(out, results); err != nil {
			return err
		}
	} else {
		printCheckText(out, results, explain)
	}

	if invalid > 0 {
		return exitError(exitValidation, "%d of %d queries invalid", invalid, len(results))
	}
	return nil
}

func printCheckText(w io.Writer, results []checkResult, explain bool) {
	invalid := 0
	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(w, "VALID    %s\n", r.Query)
			continue
		}
		invalid++
		fmt.Fprintf(w, "INVALID  %s\n", r.Query)
		fmt.Fprintf(w, "  %s\n", r.diagnostic())
		if explain {
			if nodes, err := rql.ExtractNodes(r.Query); err == nil && len(nodes) > 0 {
				printNodeTable(w, rql.AnnotateNestedCount(nodes))
			}
		}
	}

	valid := len(results) - invalid
	fmt.Fprintf(w, "\n%d valid, %d invalid\n", valid, invalid)
}

// readQueries returns the non-blank lines of r, trimmed of surrounding
// whitespace.
func readQueries(r io.Reader) ([]string, error) {
	var queries []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		queries = append(queries, line)
	}
	return queries, scanner.Err()
}
