package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/petal-labs/rql"
)

// Diagnostic codes printed next to violation messages.
var violationCodes = map[rql.ViolationKind]string{
	rql.ViolationUnmatchedClosing:         "RQ-001",
	rql.ViolationUnmatchedOpening:         "RQ-002",
	rql.ViolationArity:                    "RQ-003",
	rql.ViolationUnknownOperatorMisplaced: "RQ-004",
}

// checkResult is the outcome for one query, as printed by check and batch.
type checkResult struct {
	Query     string         `json:"query"`
	Valid     bool           `json:"valid"`
	Code      string         `json:"code,omitempty"`
	Violation *rql.Violation `json:"violation,omitempty"`
}

func newCheckResult(query string, err error) checkResult {
	res := checkResult{Query: query, Valid: err == nil}
	var v *rql.Violation
	if errors.As(err, &v) {
		res.Violation = v
		res.Code = violationCodes[v.Kind]
	}
	return res
}

func (r checkResult) diagnostic() string {
	if r.Violation == nil {
		return ""
	}
	if r.Violation.Position >= 0 {
		return fmt.Sprintf("ERROR [%s]: %s (at offset %d)", r.Code, r.Violation.Message, r.Violation.Position)
	}
	return fmt.Sprintf("ERROR [%s]: %s", r.Code, r.Violation.Message)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printNodeTable writes annotated nodes as an aligned table.
func printNodeTable(w io.Writer, nodes []rql.OperatorNode) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tLEVEL\tNAME\tPAYLOAD\tNESTED\tCLASS")
	for i, n := range nodes {
		payload := "-"
		nested := strconv.Itoa(n.NestedCount)
		if n.Payload != nil {
			payload = strconv.Quote(*n.Payload)
			nested = "-"
		}
		class, _ := rql.LookupRule(n.Name)
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n", i+1, n.Level, displayName(n.Name), payload, nested, class)
	}
	_ = tw.Flush()
}

func displayName(name string) string {
	if name == "" {
		return `""`
	}
	return name
}

// pluralize returns the singular or plural form of a word based on count.
func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
