package statechart

import (
	"github.com/stateforward/go-statechart/kinds"
)

// StateMachine is the root state of a model. It tracks whether the compiled
// cascades are current via the clean flag; any authoring mutation anywhere in
// the tree clears it and the next initialise or evaluate recompiles.
type StateMachine struct {
	State
	clean        bool
	onInitialise []step
	trace        Trace
}

func NewStateMachine(name string) *StateMachine {
	machine := &StateMachine{}
	machine.element = element{kind: kinds.StateMachine, name: name}
	machine.self = machine
	return machine
}

func (machine *StateMachine) Root() *StateMachine {
	return machine
}

func (machine *StateMachine) state() *State {
	return &machine.State
}

func (machine *StateMachine) containerRegion() *Region {
	return machine.State.defaultRegionOf(machine)
}

// Clean reports whether the compiled cascades match the model.
func (machine *StateMachine) Clean() bool {
	return machine.clean
}

// WithTrace installs a step observer on the machine; see pkg/telemetry for an
// OpenTelemetry backed implementation. Passing nil removes the hook.
func WithTrace(machine *StateMachine, trace Trace) *StateMachine {
	machine.trace = trace
	return machine
}

func (machine *StateMachine) Accept(visitor Visitor, args ...any) {
	visitor.VisitStateMachine(machine, args...)
	machine.acceptMembers(visitor, args...)
}
