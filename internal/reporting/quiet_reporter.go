package reporting

import (
	"fmt"
	"io"
	"os"
)

// quietReporter implements minimal output for CI integration: failures,
// warnings and a one-line summary only.
type quietReporter struct {
	out io.Writer
}

// NewQuietReporter creates a Reporter that only outputs essential
// information. A nil out defaults to os.Stdout.
func NewQuietReporter(out io.Writer) Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &quietReporter{out: out}
}

func (r *quietReporter) ReportRunStart(selected string) {}

func (r *quietReporter) ReportStep(format string, args ...interface{}) {}

func (r *quietReporter) ReportValidation(v Validation) {
	if v.Passed {
		return
	}
	fmt.Fprintf(r.out, "FAIL %d: %s (expected %s, got %s)\n", v.ID, v.Description, v.Expected, v.Actual)
}

func (r *quietReporter) ReportWarning(format string, args ...interface{}) {
	fmt.Fprintf(r.out, "WARNING: "+format+"\n", args...)
}

func (r *quietReporter) ReportSummary(c Counters) {
	if c.AllPassed() {
		fmt.Fprintf(r.out, "%d/%d tests passed\n", c.Passed, c.Total)
		return
	}
	fmt.Fprintf(r.out, "%d/%d tests failed\n", c.Failed, c.Total)
}

func (r *quietReporter) ReportRunEnd() {}
