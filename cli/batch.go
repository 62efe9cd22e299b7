package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"
)

// Suite is a named list of queries with their expected validity.
type Suite struct {
	Name  string      `json:"name"`
	Cases []SuiteCase `json:"cases"`
}

// SuiteCase is one query in a Suite.
type SuiteCase struct {
	Query       string `json:"query"`
	Valid       bool   `json:"valid"`
	Description string `json:"description,omitempty"`
}

// batchReport is the outcome of running a Suite.
type batchReport struct {
	RunID   string        `json:"run_id"`
	Suite   string        `json:"suite"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
	Results []batchResult `json:"results"`
}

type batchResult struct {
	checkResult
	Expected    bool   `json:"expected"`
	Pass        bool   `json:"pass"`
	Description string `json:"description,omitempty"`
}

// NewBatchCmd creates the "batch" subcommand.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <suite-file>",
		Short: "Run a YAML or JSON suite of queries against their expected validity",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	cmd.Flags().String("format", "text", "Output format: text | json")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	suite, err := loadSuite(filePath)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	report := batchReport{RunID: uuid.New().String(), Suite: suite.Name}

	ctx, span := sess.tracer.Start(cmd.Context(), "rql.batch",
		trace.WithAttributes(
			attribute.String("rql.run_id", report.RunID),
			attribute.String("rql.suite", suite.Name),
			attribute.Int("rql.cases", len(suite.Cases)),
		),
	)
	v := sess.validator(ctx)

	for _, c := range suite.Cases {
		res := batchResult{
			checkResult: newCheckResult(c.Query, v.Check(c.Query)),
			Expected:    c.Valid,
			Description: c.Description,
		}
		res.Pass = res.Valid == c.Valid
		if res.Pass {
			report.Passed++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, res)
	}

	if report.Failed > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d failed", report.Failed))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	sess.logger.Debug("batch finished",
		"run_id", report.RunID,
		"suite", suite.Name,
		"passed", report.Passed,
		"failed", report.Failed,
	)

	if format == "json" {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		printBatchText(out, report)
	}

	if report.Failed > 0 {
		return exitError(exitValidation, "%d %s failed", report.Failed, pluralize("case", report.Failed))
	}
	return nil
}

func printBatchText(w io.Writer, report batchReport) {
	name := report.Suite
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "Suite %s (run %s)\n", name, report.RunID)

	for _, r := range report.Results {
		status := "PASS"
		if !r.Pass {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s  %s\n", status, r.Query)
		if !r.Pass {
			fmt.Fprintf(w, "      expected %s, got %s\n", validity(r.Expected), validity(r.Valid))
		}
		if d := r.diagnostic(); d != "" && !r.Pass {
			fmt.Fprintf(w, "      %s\n", d)
		}
	}

	fmt.Fprintf(w, "\n%d passed, %d failed\n", report.Passed, report.Failed)
}

func validity(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

// loadSuite reads a suite file. YAML is converted to JSON first so both
// formats share one decoding path.
func loadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, exitError(exitFileNotFound, "file not found: %s", path)
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}

	jsonData, err := yamlToJSONIfNeeded(data, path)
	if err != nil {
		return nil, exitError(exitInputParse, "parsing %s: %v", path, err)
	}

	var suite Suite
	if err := json.Unmarshal(jsonData, &suite); err != nil {
		return nil, exitError(exitInputParse, "parsing suite: %v", err)
	}
	if len(suite.Cases) == 0 {
		return nil, exitError(exitInputParse, "suite %s has no cases", path)
	}
	return &suite, nil
}

// yamlToJSONIfNeeded converts YAML data to JSON if the file path indicates a
// YAML file. JSON files are returned as-is.
func yamlToJSONIfNeeded(data []byte, path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return json.Marshal(raw)
	}
	return data, nil
}
