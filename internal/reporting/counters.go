package reporting

// Validation is one recorded pass/fail comparison.
type Validation struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Actual      string `json:"actual"`
	Expected    string `json:"expected"`
	Passed      bool   `json:"passed"`
}

// Counters tracks validation totals for a run. Counts only ever grow.
type Counters struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`

	nextID int
}

// Record compares actual against expected, updates the counters and
// returns the resulting Validation. IDs are assigned sequentially from 1.
func (c *Counters) Record(description, actual, expected string) Validation {
	c.Total++
	c.nextID++
	v := Validation{
		ID:          c.nextID,
		Description: description,
		Actual:      actual,
		Expected:    expected,
		Passed:      actual == expected,
	}
	if v.Passed {
		c.Passed++
	} else {
		c.Failed++
	}
	return v
}

// AllPassed reports whether every recorded validation passed.
func (c *Counters) AllPassed() bool {
	return c.Failed == 0
}
