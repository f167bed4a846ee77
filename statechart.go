// Package statechart is a runtime library for hierarchical finite state
// machines following the UML state machine semantics.
//
// A model is authored once as a graph of states, regions, pseudo states and
// transitions, compiled into per-element enter/exit cascades and per-transition
// traverse plans, and then driven through any number of independent instances:
//
//	machine := statechart.NewStateMachine("player")
//	off := statechart.NewState("off", machine)
//	on := statechart.NewState("on", machine)
//	initial := statechart.NewPseudoState("initial", machine, kinds.Initial)
//	statechart.NewTransition(initial, off)
//	statechart.NewTransition(off, on).When(statechart.Message("power"))
//	statechart.NewTransition(on, off).When(statechart.Message("power"))
//
//	instance := statechart.NewInstance()
//	statechart.Initialise(machine, instance)
//	statechart.Evaluate(machine, instance, "power")
//
// The model graph is mutated only by authoring calls and by the compiler;
// evaluation mutates instance state alone, so multiple instances may share a
// compiled model. Dispatch is single threaded: guards, effects and entry/exit
// behaviors run to completion on the caller's goroutine.
package statechart

import (
	"errors"
	"log/slog"
	"math/rand"
)

// Action is a user behavior attached to a state's entry/exit lists or to a
// transition's effect list. The message is the value passed to Evaluate, or
// the completing state itself when a completion transition fires.
type Action func(message any, instance Instance)

// Guard decides whether a transition is enabled for a message. A nil guard is
// always enabled.
type Guard func(message any, instance Instance) bool

// Message returns a guard enabling a transition for messages equal to value.
// It covers the common case of string-triggered transitions.
func Message(value any) Guard {
	return func(message any, instance Instance) bool {
		return message == value
	}
}

// Trace observes evaluator steps. It is called with a step name and the
// elements involved and returns a completion callback invoked when the step
// finishes. See pkg/telemetry for an OpenTelemetry backed implementation.
type Trace func(step string, elements ...Element) func()

// Process-wide configuration with process lifetime. Random and
// InternalTransitionsTriggerCompletion are read during dispatch, without
// synchronisation.
var (
	// NamespaceSeparator joins element names into qualified names.
	NamespaceSeparator = "."
	// DefaultRegionName names regions synthesised when a state is used
	// directly as a vertex parent.
	DefaultRegionName = "default"
	// Random selects among simultaneously enabled choice transitions.
	// Returns an integer in [0, max). Replace it for deterministic tests.
	Random = func(max int) int { return rand.Intn(max) }
	// InternalTransitionsTriggerCompletion schedules a completion
	// evaluation of the source state after an internal transition's effect.
	InternalTransitionsTriggerCompletion = false
	// Logger is the diagnostics sink used by Validate.
	Logger = slog.Default()
)

var (
	// ErrIllFormed is wrapped by every runtime error the evaluator raises
	// for a structurally unsound machine: junctions with zero or multiple
	// viable branches, choices with no viable branch, multiple enabled
	// transitions at a single state, or a region with nothing to enter.
	ErrIllFormed = errors.New("ill-formed state machine")
)
