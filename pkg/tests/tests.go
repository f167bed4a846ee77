// Package tests provides the shared behavior recorder used by the scenario
// tests to assert the exact order of entries, exits and effects.
package tests

import (
	"slices"

	statechart "github.com/stateforward/go-statechart"
)

// Recorder accumulates the names of executed behaviors in order.
type Recorder struct {
	Steps []string
}

// Action returns a behavior that records its name when run.
func (recorder *Recorder) Action(name string) statechart.Action {
	return func(message any, instance statechart.Instance) {
		recorder.Steps = append(recorder.Steps, name)
	}
}

func (recorder *Recorder) Reset() {
	recorder.Steps = nil
}

// Matches reports whether the recorded steps equal the expected sequence.
func (recorder *Recorder) Matches(expected ...string) bool {
	return slices.Equal(recorder.Steps, expected)
}
