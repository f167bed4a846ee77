package statechart

import (
	"fmt"

	"github.com/stateforward/go-statechart/kinds"
	"github.com/stateforward/go-statechart/queue"
)

// session carries the per-dispatch context: the machine being evaluated, the
// instance being mutated, and completion evaluations produced by the
// traversal, drained before the dispatch returns.
type session struct {
	machine     *StateMachine
	instance    Instance
	completions *queue.Queue[*State]
	selections  map[*PseudoState]*Transition
}

func newSession(machine *StateMachine, instance Instance) *session {
	return &session{
		machine:     machine,
		instance:    instance,
		completions: queue.New[*State](),
		selections:  map[*PseudoState]*Transition{},
	}
}

// Initialise compiles the model if it is dirty and, when an instance is
// supplied, clears its termination flag and runs the machine's initialise
// cascade against it.
func (machine *StateMachine) Initialise(maybeInstance ...Instance) error {
	if !machine.clean {
		Compile(machine)
	}
	if len(maybeInstance) == 0 || maybeInstance[0] == nil {
		return nil
	}
	instance := maybeInstance[0]
	instance.SetTerminated(false)
	session := newSession(machine, instance)
	if machine.trace != nil {
		defer machine.trace("initialise", machine)()
	}
	if err := runSteps(session, machine.onInitialise, nil, instance, false); err != nil {
		return err
	}
	return session.drainCompletions()
}

// Evaluate dispatches a message into the instance and reports whether it was
// consumed. Terminated instances absorb every message. The search is deepest
// first: active child regions are offered the message before the state's own
// transitions, orthogonal regions in declaration order; more than one enabled
// transition at a single state is an ill-formed-machine error.
//
// Junction branches are resolved before any exit runs, so an ill-formed
// junction reached as a transition target executes no behavior at all and
// leaves the configuration map untouched. Ill-formed conditions that can only
// be discovered during entry (a choice with no viable branch, a region with
// no initial pseudo state) raise after the source side's exits and the
// effects have already executed; those behaviors are not rolled back, and any
// state entered before the failure, such as the owner of a region with no
// initial pseudo state, stays recorded as current.
func (machine *StateMachine) Evaluate(instance Instance, message any) (bool, error) {
	if instance == nil || instance.IsTerminated() {
		return false, nil
	}
	if !machine.clean {
		if err := machine.Initialise(); err != nil {
			return false, err
		}
	}
	session := newSession(machine, instance)
	if machine.trace != nil {
		defer machine.trace("evaluate", machine)()
	}
	consumed, err := session.evaluateState(&machine.State, message)
	if err != nil {
		return consumed, err
	}
	if err := session.drainCompletions(); err != nil {
		return consumed, err
	}
	return consumed, nil
}

func (session *session) evaluateState(state *State, message any) (bool, error) {
	consumed := false
	for _, region := range state.regions {
		current := session.instance.GetCurrent(region)
		if current == nil || !current.IsActive(session.instance) {
			continue
		}
		ok, err := session.evaluateState(current, message)
		if err != nil {
			return consumed, err
		}
		if ok {
			consumed = true
		}
		if session.instance.IsTerminated() {
			return consumed, nil
		}
	}
	if consumed {
		return true, nil
	}
	var enabled *Transition
	for _, transition := range state.outgoing {
		if !transition.enabledFor(message, session.instance) {
			continue
		}
		if enabled != nil {
			return false, fmt.Errorf("%w: multiple transitions enabled at %q", ErrIllFormed, state.QualifiedName())
		}
		enabled = transition
	}
	if enabled == nil {
		return false, nil
	}
	if err := session.traverse(enabled, message, session.instance, false); err != nil {
		return true, err
	}
	return true, nil
}

func (session *session) traverse(transition *Transition, message any, instance Instance, history bool) error {
	if err := session.preflight(transition, message, instance); err != nil {
		return err
	}
	return runSteps(session, transition.onTraverse, message, instance, history)
}

// preflight resolves the junction chain reachable from a transition's target
// before any exit step of its plan runs. Junction guards are static: they are
// evaluated once, up front, and the selection is consumed by the junction's
// enter step, so an ill-formed junction surfaces with no behavior executed
// and the instance untouched. Choices and region initials stay dynamic;
// failures found there surface mid-plan after the source side has exited.
func (session *session) preflight(transition *Transition, message any, instance Instance) error {
	for target := transition.target; target != nil; {
		pseudo, ok := target.(*PseudoState)
		if !ok || pseudo.kind != kinds.Junction {
			return nil
		}
		if _, resolved := session.selections[pseudo]; resolved {
			return nil
		}
		selected, err := selectJunctionBranch(pseudo, message, instance)
		if err != nil {
			return err
		}
		session.selections[pseudo] = selected
		target = selected.target
	}
	return nil
}

func (session *session) scheduleCompletion(state *State) {
	session.completions.Push(state)
}

// drainCompletions fires completion transitions for states that finished a
// traversal complete and active. Completion guards are evaluated against the
// completing state itself, so guardless transitions act as completion
// transitions. Chains converge because each firing exits its source.
func (session *session) drainCompletions() error {
	for {
		state, ok := session.completions.Pop()
		if !ok {
			return nil
		}
		if session.instance.IsTerminated() {
			return nil
		}
		if !state.IsActive(session.instance) || !state.IsComplete(session.instance) {
			continue
		}
		var enabled *Transition
		for _, transition := range state.outgoing {
			if !transition.enabledFor(state, session.instance) {
				continue
			}
			if enabled != nil {
				return fmt.Errorf("%w: multiple completion transitions enabled at %q", ErrIllFormed, state.QualifiedName())
			}
			enabled = transition
		}
		if enabled == nil {
			continue
		}
		if err := session.traverse(enabled, state, session.instance, false); err != nil {
			return err
		}
	}
}

// runSteps executes a compiled step list in order. A terminated instance
// halts the walk with no further actions.
func runSteps(session *session, steps []step, message any, instance Instance, history bool) error {
	for _, step := range steps {
		if instance.IsTerminated() {
			return nil
		}
		if err := step(session, message, instance, history); err != nil {
			return err
		}
	}
	return nil
}

// runEnter runs a vertex's full enter cascade.
func runEnter(session *session, vertex Vertex, message any, instance Instance, history bool) error {
	compiled := &vertex.base().compiled
	if err := runSteps(session, compiled.beginEnter, message, instance, history); err != nil {
		return err
	}
	return runSteps(session, compiled.endEnter, message, instance, history)
}

// Initialise compiles the model when dirty and optionally initialises an
// instance against it; see StateMachine.Initialise.
func Initialise(machine *StateMachine, maybeInstance ...Instance) error {
	return machine.Initialise(maybeInstance...)
}

// Evaluate dispatches a message to an instance; see StateMachine.Evaluate.
func Evaluate(machine *StateMachine, instance Instance, message any) (bool, error) {
	return machine.Evaluate(instance, message)
}

// IsActive reports whether the vertex is part of the instance's current
// configuration. Pseudo states never linger, so they are never active.
func IsActive(vertex Vertex, instance Instance) bool {
	if state := vertex.asState(); state != nil {
		return state.IsActive(instance)
	}
	return false
}

// IsComplete reports completion for a region (its current state is final) or
// a state-like element (all of its regions are complete).
func IsComplete(element Element, instance Instance) bool {
	switch node := element.(type) {
	case *Region:
		return node.IsComplete(instance)
	case Vertex:
		if state := node.asState(); state != nil {
			return state.IsComplete(instance)
		}
	}
	return false
}
