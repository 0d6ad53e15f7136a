package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// RunResult is the machine-readable document the JSON reporter emits once
// the run completes.
type RunResult struct {
	Selected    string       `json:"selected_canister"`
	Counters    Counters     `json:"counters"`
	Validations []Validation `json:"validations"`
	Warnings    []string     `json:"warnings,omitempty"`
}

// jsonReporter collects results silently and emits one JSON document at
// summary time, for machine consumption.
type jsonReporter struct {
	out    io.Writer
	result RunResult
}

// NewJSONReporter creates a Reporter that outputs a single JSON document.
// A nil out defaults to os.Stdout.
func NewJSONReporter(out io.Writer) Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &jsonReporter{out: out}
}

func (r *jsonReporter) ReportRunStart(selected string) {
	r.result.Selected = selected
	r.result.Validations = make([]Validation, 0)
}

func (r *jsonReporter) ReportStep(format string, args ...interface{}) {}

func (r *jsonReporter) ReportValidation(v Validation) {
	r.result.Validations = append(r.result.Validations, v)
}

func (r *jsonReporter) ReportWarning(format string, args ...interface{}) {
	r.result.Warnings = append(r.result.Warnings, fmt.Sprintf(format, args...))
}

func (r *jsonReporter) ReportSummary(c Counters) {
	r.result.Counters = c
}

// ReportRunEnd emits the document. Deferring output to this point keeps
// teardown warnings, which arrive after the summary, in the result.
func (r *jsonReporter) ReportRunEnd() {
	data, err := json.MarshalIndent(r.result, "", "  ")
	if err != nil {
		fmt.Fprintf(r.out, `{"error": "failed to marshal results: %v"}`+"\n", err)
		return
	}
	fmt.Fprintln(r.out, string(data))
}
