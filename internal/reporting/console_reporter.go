package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// consoleReporter writes styled, human-readable progress to a terminal.
type consoleReporter struct {
	out     io.Writer
	verbose bool
}

// NewConsoleReporter creates a Reporter that prints styled output to out.
// A nil out defaults to os.Stdout.
func NewConsoleReporter(out io.Writer, verbose bool) Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &consoleReporter{out: out, verbose: verbose}
}

func (r *consoleReporter) ReportRunStart(selected string) {
	fmt.Fprintln(r.out, headerStyle.Render(fmt.Sprintf("==== dolphinex: deploying canister '%s' ====", selected)))
}

func (r *consoleReporter) ReportStep(format string, args ...interface{}) {
	if !r.verbose {
		return
	}
	fmt.Fprintln(r.out, stepStyle.Render(fmt.Sprintf("---> "+format, args...)))
}

func (r *consoleReporter) ReportValidation(v Validation) {
	if v.Passed {
		fmt.Fprintln(r.out, successStyle.Render(fmt.Sprintf("TEST %d SUCCESSFUL: %s", v.ID, v.Description)))
		return
	}
	fmt.Fprintln(r.out, failureStyle.Render(fmt.Sprintf("TEST %d FAILED: %s", v.ID, v.Description)))
	fmt.Fprintln(r.out, failureStyle.Render(fmt.Sprintf("  Expected: %s, Got: %s", v.Expected, v.Actual)))
}

func (r *consoleReporter) ReportWarning(format string, args ...interface{}) {
	fmt.Fprintln(r.out, warningStyle.Render(fmt.Sprintf("WARNING: "+format, args...)))
}

func (r *consoleReporter) ReportSummary(c Counters) {
	fmt.Fprintln(r.out, headerStyle.Render("\n<<< TESTING COMPLETED >>>"))
	fmt.Fprintln(r.out, successStyle.Render(fmt.Sprintf("Tests Passed: %d", c.Passed)))
	if c.Failed > 0 {
		fmt.Fprintln(r.out, failureStyle.Render(fmt.Sprintf("Tests Failed: %d", c.Failed)))
	} else {
		fmt.Fprintf(r.out, "Tests Failed: %d\n", c.Failed)
	}
	fmt.Fprintln(r.out, headerStyle.Render(fmt.Sprintf("Total Tests: %d", c.Total)))
}

func (r *consoleReporter) ReportRunEnd() {}
