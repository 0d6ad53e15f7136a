package reporting

// Reporter receives progress and results of a harness run.
type Reporter interface {
	// ReportRunStart is called once before any work happens.
	ReportRunStart(selected string)
	// ReportStep announces a lifecycle step about to run.
	ReportStep(format string, args ...interface{})
	// ReportValidation is called for every recorded validation.
	ReportValidation(v Validation)
	// ReportWarning surfaces a non-fatal problem, typically from teardown.
	ReportWarning(format string, args ...interface{})
	// ReportSummary is called once after all validations completed.
	// Teardown runs after the summary, so warnings may still arrive.
	ReportSummary(c Counters)
	// ReportRunEnd is called once after teardown, when nothing more will
	// be reported.
	ReportRunEnd()
}
