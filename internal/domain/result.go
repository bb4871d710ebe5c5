package domain

import "encoding/json"

// TestResult is the outcome of one remote test execution
type TestResult struct {
	Passing bool            // Whether the remote run passed
	Payload json.RawMessage // Diagnostics returned by the execution service
}

// TestRecord is one line of the aggregate run outcome
type TestRecord struct {
	Name       string // Test name, empty when the definition could not be loaded
	Path       string // Definition file
	Passing    bool
	ResultFile string // Where the result was persisted, if anywhere
	Err        error  // Load or execution error, if any
}

// RunOutcome aggregates every test executed in one invocation
type RunOutcome struct {
	Tests []TestRecord
}

// Add appends a record to the outcome.
func (o *RunOutcome) Add(rec TestRecord) {
	o.Tests = append(o.Tests, rec)
}

// Passed returns the number of passing tests.
func (o *RunOutcome) Passed() int {
	n := 0
	for _, t := range o.Tests {
		if t.Passing {
			n++
		}
	}
	return n
}

// Failed returns the number of failing tests.
func (o *RunOutcome) Failed() int {
	return len(o.Tests) - o.Passed()
}

// Success reports whether every executed test passed. An empty outcome is a success.
func (o *RunOutcome) Success() bool {
	return o.Failed() == 0
}
