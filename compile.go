package statechart

import (
	"fmt"
	"slices"

	"github.com/stateforward/go-statechart/kinds"
)

// step is one compiled unit of an enter/exit cascade or traverse plan. Steps
// are closures over specific model nodes so that run-time execution is a
// straight-line walk with no re-computation.
type step func(session *session, message any, instance Instance, history bool) error

// Compile walks the model leaves first, assigning every region, state and
// pseudo state its enter and exit cascades, then walks it again to give every
// transition its traverse plan, records the machine's initialise cascade and marks the model
// clean. Initialise and Evaluate call it automatically for dirty models.
func Compile(machine *StateMachine) {
	compileState(&machine.State, false)
	compileTransitions(&machine.State)
	root := &machine.State.vertex.compiled
	machine.onInitialise = make([]step, 0, len(root.beginEnter)+len(root.endEnter))
	machine.onInitialise = append(machine.onInitialise, root.beginEnter...)
	machine.onInitialise = append(machine.onInitialise, root.endEnter...)
	machine.clean = true
}

func compileState(state *State, deepHistoryAbove bool) {
	for _, region := range state.regions {
		compileRegion(region, deepHistoryAbove)
	}
	compiled := &state.vertex.compiled
	compiled.reset()

	// exit: child regions in reverse declaration order, then exit behaviors
	for i := len(state.regions) - 1; i >= 0; i-- {
		compiled.leave = append(compiled.leave, state.regions[i].compiled.leave...)
	}
	compiled.leave = append(compiled.leave, traceStep("exit", state.self))
	for _, action := range state.exit {
		compiled.leave = append(compiled.leave, userStep(action))
	}

	// enter: mark the state current in its region, then entry behaviors
	compiled.beginEnter = append(compiled.beginEnter, traceStep("enter", state.self))
	if container := state.container; container != nil {
		compiled.beginEnter = append(compiled.beginEnter, func(session *session, message any, instance Instance, history bool) error {
			instance.SetCurrent(container, state)
			return nil
		})
	}
	for _, action := range state.entry {
		compiled.beginEnter = append(compiled.beginEnter, userStep(action))
	}

	// descend into child regions in declaration order, then evaluate
	// completion once the configuration below is stable
	for _, region := range state.regions {
		compiled.endEnter = append(compiled.endEnter, region.compiled.beginEnter...)
		compiled.endEnter = append(compiled.endEnter, region.compiled.endEnter...)
	}
	if kinds.IsKind(state.kind, kinds.FinalState) {
		// reaching a final state may complete the enclosing composite
		compiled.endEnter = append(compiled.endEnter, completionStep(state.container.state))
	} else if len(state.outgoing) > 0 {
		compiled.endEnter = append(compiled.endEnter, completionStep(state))
	}
}

func compileRegion(region *Region, deepHistoryAbove bool) {
	deep := deepHistoryAbove || (region.initial != nil && region.initial.kind == kinds.DeepHistory)
	for _, v := range region.vertices {
		switch vertex := v.(type) {
		case *PseudoState:
			compilePseudoState(vertex)
		case *FinalState:
			compileState(&vertex.State, deep)
		case *State:
			compileState(vertex, deep)
		}
	}
	compiled := &region.compiled
	compiled.reset()

	compiled.leave = append(compiled.leave, func(session *session, message any, instance Instance, history bool) error {
		current := instance.GetCurrent(region)
		if current == nil {
			return nil
		}
		return runSteps(session, current.vertex.compiled.leave, message, instance, history)
	})

	initial := region.initial
	if deepHistoryAbove || initial == nil || initial.IsHistory() {
		// the entry target depends on the instance's history, so it is
		// picked at run time
		compiled.endEnter = append(compiled.endEnter, func(session *session, message any, instance Instance, history bool) error {
			current := instance.GetCurrent(region)
			if current != nil && (history || (initial != nil && initial.IsHistory())) {
				deeper := history || (initial != nil && initial.kind == kinds.DeepHistory)
				return runEnter(session, current, message, instance, deeper)
			}
			if initial == nil {
				return fmt.Errorf("%w: region %q has no initial pseudo state", ErrIllFormed, region.QualifiedName())
			}
			return runEnter(session, initial, message, instance, history || initial.kind == kinds.DeepHistory)
		})
	} else {
		compiled.endEnter = append(compiled.endEnter, initial.vertex.compiled.beginEnter...)
		compiled.endEnter = append(compiled.endEnter, initial.vertex.compiled.endEnter...)
	}
}

func compilePseudoState(pseudo *PseudoState) {
	compiled := &pseudo.vertex.compiled
	compiled.reset()
	compiled.leave = append(compiled.leave, traceStep("exit", pseudo))
	compiled.beginEnter = append(compiled.beginEnter, traceStep("enter", pseudo))

	switch {
	case pseudo.IsInitial():
		compiled.endEnter = append(compiled.endEnter, func(session *session, message any, instance Instance, history bool) error {
			if len(pseudo.outgoing) != 1 {
				return fmt.Errorf("%w: %q must have exactly one outgoing transition", ErrIllFormed, pseudo.QualifiedName())
			}
			return session.traverse(pseudo.outgoing[0], message, instance, history)
		})
	case pseudo.kind == kinds.Junction:
		compiled.endEnter = append(compiled.endEnter, func(session *session, message any, instance Instance, history bool) error {
			// the branch was resolved by preflight before any exit ran;
			// the fallback path covers junctions reached mid-cascade
			selected, ok := session.selections[pseudo]
			if ok {
				delete(session.selections, pseudo)
			} else {
				var err error
				selected, err = selectJunctionBranch(pseudo, message, instance)
				if err != nil {
					return err
				}
			}
			return session.traverse(selected, message, instance, history)
		})
	case pseudo.kind == kinds.Choice:
		compiled.endEnter = append(compiled.endEnter, func(session *session, message any, instance Instance, history bool) error {
			var enabled []*Transition
			var fallback *Transition
			for _, transition := range pseudo.outgoing {
				if transition.isElse {
					fallback = transition
					continue
				}
				if transition.enabledFor(message, instance) {
					enabled = append(enabled, transition)
				}
			}
			var selected *Transition
			switch len(enabled) {
			case 0:
				selected = fallback
			case 1:
				selected = enabled[0]
			default:
				selected = enabled[Random(len(enabled))]
			}
			if selected == nil {
				return fmt.Errorf("%w: choice %q has no enabled transition", ErrIllFormed, pseudo.QualifiedName())
			}
			return session.traverse(selected, message, instance, history)
		})
	case pseudo.kind == kinds.Terminate:
		compiled.endEnter = append(compiled.endEnter, func(session *session, message any, instance Instance, history bool) error {
			instance.SetTerminated(true)
			return nil
		})
	}
}

// selectJunctionBranch evaluates a junction's outbound guards once: exactly
// one non-else transition may be enabled, with the else branch as fallback.
func selectJunctionBranch(pseudo *PseudoState, message any, instance Instance) (*Transition, error) {
	var enabled, fallback *Transition
	for _, transition := range pseudo.outgoing {
		if transition.isElse {
			fallback = transition
			continue
		}
		if !transition.enabledFor(message, instance) {
			continue
		}
		if enabled != nil {
			return nil, fmt.Errorf("%w: junction %q has multiple enabled transitions", ErrIllFormed, pseudo.QualifiedName())
		}
		enabled = transition
	}
	if enabled == nil {
		enabled = fallback
	}
	if enabled == nil {
		return nil, fmt.Errorf("%w: junction %q has no enabled transition", ErrIllFormed, pseudo.QualifiedName())
	}
	return enabled, nil
}

func compileTransitions(state *State) {
	for _, transition := range state.outgoing {
		compileTransition(transition)
	}
	for _, region := range state.regions {
		for _, v := range region.vertices {
			switch vertex := v.(type) {
			case *PseudoState:
				for _, transition := range vertex.outgoing {
					compileTransition(transition)
				}
			case *FinalState:
				// no outgoing transitions
			case *State:
				compileTransitions(vertex)
			}
		}
	}
}

func compileTransition(transition *Transition) {
	plan := []step{traceStep("traverse", transition)}
	effects := make([]step, 0, len(transition.effect))
	for _, action := range transition.effect {
		effects = append(effects, userStep(action))
	}

	switch {
	case kinds.IsKind(transition.kind, kinds.Internal):
		plan = append(plan, effects...)
		if source := transition.source.asState(); source != nil {
			plan = append(plan, func(session *session, message any, instance Instance, history bool) error {
				if InternalTransitionsTriggerCompletion {
					session.scheduleCompletion(source)
				}
				return nil
			})
		}

	case kinds.IsKind(transition.kind, kinds.Local):
		// the target sits beneath the source; exit only the active chain
		// of the region holding the target's branch
		ancestry := Ancestors(transition.target)
		index := slices.Index(ancestry, Element(transition.source))
		branch := ancestry[index+1].(*Region)
		plan = append(plan, branch.compiled.leave...)
		plan = append(plan, effects...)
		for j := index + 2; j < len(ancestry)-1; j++ {
			plan = append(plan, enterAncestorSteps(ancestry[j], ancestry[j+1])...)
		}
		plan = append(plan, transition.target.base().compiled.beginEnter...)
		plan = append(plan, transition.target.base().compiled.endEnter...)

	default: // external
		source := Ancestors(transition.source)
		target := Ancestors(transition.target)
		index := LowestCommonAncestorIndex(source, target)
		if transition.source == transition.target {
			index = len(source) - 2
		}
		// pseudo states do not linger: exit the source explicitly when it
		// is not already the element being exited
		if pseudo, ok := transition.source.(*PseudoState); ok && source[index+1] != Element(pseudo) {
			plan = append(plan, pseudo.vertex.compiled.leave...)
		}
		plan = append(plan, leaveSteps(source[index+1])...)
		plan = append(plan, effects...)
		for j := index + 1; j < len(target)-1; j++ {
			plan = append(plan, enterAncestorSteps(target[j], target[j+1])...)
		}
		plan = append(plan, transition.target.base().compiled.beginEnter...)
		plan = append(plan, transition.target.base().compiled.endEnter...)
	}
	transition.onTraverse = plan
}

func leaveSteps(node Element) []step {
	switch element := node.(type) {
	case *Region:
		return element.compiled.leave
	case Vertex:
		return element.base().compiled.leave
	}
	return nil
}

// enterAncestorSteps enters an intermediate ancestor on a transition's entry
// path. The on-path region, next in the ancestry chain, skips its generic
// initial selection because the plan drills into a known element; every other
// region of the state still runs its full enter cascade so its own initial or
// history resolves and the active configuration stays complete.
func enterAncestorSteps(node Element, next Element) []step {
	vertex, ok := node.(Vertex)
	if !ok {
		// regions contribute no steps of their own on the way down
		return nil
	}
	steps := slices.Clone(vertex.base().compiled.beginEnter)
	state := vertex.asState()
	if state == nil {
		return steps
	}
	for _, region := range state.regions {
		if Element(region) == next {
			continue
		}
		steps = append(steps, region.compiled.beginEnter...)
		steps = append(steps, region.compiled.endEnter...)
	}
	return steps
}

func traceStep(name string, node Element) step {
	return func(session *session, message any, instance Instance, history bool) error {
		if session.machine.trace != nil {
			session.machine.trace(name, node)()
		}
		return nil
	}
}

func userStep(action Action) step {
	return func(session *session, message any, instance Instance, history bool) error {
		action(message, instance)
		return nil
	}
}

func completionStep(state *State) step {
	return func(session *session, message any, instance Instance, history bool) error {
		session.scheduleCompletion(state)
		return nil
	}
}
