package reporting

import (
	"fmt"
	"strings"
)

// Failure is a single named failure inside a best-effort aggregate
// operation.
type Failure struct {
	Name string
	Err  error
}

// Aggregate accumulates per-item outcomes of a best-effort operation that
// must not abort early (teardown, rollback). Callers can inspect which
// sub-steps failed even though the operation itself ran to completion.
type Aggregate struct {
	failures []Failure
}

// Add records a failure for name. A nil err is ignored, so call sites can
// pass every outcome through without filtering.
func (a *Aggregate) Add(name string, err error) {
	if err == nil {
		return
	}
	a.failures = append(a.failures, Failure{Name: name, Err: err})
}

// Merge folds the failures of another aggregate into this one.
func (a *Aggregate) Merge(other Aggregate) {
	a.failures = append(a.failures, other.failures...)
}

// OK reports whether no failures were recorded.
func (a *Aggregate) OK() bool {
	return len(a.failures) == 0
}

// Failures returns the recorded failures in insertion order.
func (a *Aggregate) Failures() []Failure {
	return a.failures
}

// Err returns nil when the aggregate is clean, otherwise a single error
// summarizing every recorded failure.
func (a *Aggregate) Err() error {
	if len(a.failures) == 0 {
		return nil
	}
	parts := make([]string, 0, len(a.failures))
	for _, f := range a.failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Name, f.Err))
	}
	return fmt.Errorf("%d failure(s): %s", len(a.failures), strings.Join(parts, "; "))
}
