package statechart

import (
	"fmt"
	"slices"

	"github.com/stateforward/go-statechart/kinds"
)

// Transition is a directed edge between vertices. Its kind is normalised at
// construction: no target forces Internal, a target nested below the source
// becomes Local, everything else is External. Requesting Internal with a
// target is a construction error.
type Transition struct {
	element
	source     Vertex
	target     Vertex
	guard      Guard
	isElse     bool
	effect     []Action
	onTraverse []step
}

// NewTransition creates a transition from source to target and links it into
// both vertices. The target may be nil for internal transitions. An optional
// kind is normalised per the rules above.
func NewTransition(source Vertex, target Vertex, maybeKind ...uint64) *Transition {
	if source == nil {
		panic(fmt.Errorf("statechart: transition requires a source"))
	}
	if kinds.IsKind(source.Kind(), kinds.FinalState) {
		panic(fmt.Errorf("statechart: final state %q cannot have outgoing transitions", source.QualifiedName()))
	}
	if source.Kind() == kinds.Terminate {
		panic(fmt.Errorf("statechart: terminate %q cannot have outgoing transitions", source.QualifiedName()))
	}
	requested := kinds.External
	if len(maybeKind) > 0 {
		requested = maybeKind[0]
	}
	kind := kinds.External
	switch {
	case target == nil:
		kind = kinds.Internal
	case requested == kinds.Internal:
		panic(fmt.Errorf("statechart: internal transition from %q cannot have a target", source.QualifiedName()))
	case target != source && isAncestorOf(source, target):
		kind = kinds.Local
	default:
		kind = kinds.External
	}
	if target != nil && source.Root() != target.Root() {
		panic(fmt.Errorf("statechart: transition from %q targets %q in a different machine", source.QualifiedName(), target.QualifiedName()))
	}
	transition := &Transition{
		element: element{
			kind:   kind,
			name:   fmt.Sprintf("transition_%d", len(source.Outgoing())),
			parent: source,
		},
		source: source,
		target: target,
	}
	source.base().outgoing = append(source.base().outgoing, transition)
	if target != nil {
		target.base().incoming = append(target.base().incoming, transition)
	}
	transition.invalidate()
	return transition
}

// isAncestorOf reports whether node appears strictly above other in the
// containment tree.
func isAncestorOf(node Element, other Element) bool {
	for parent := other.Parent(); parent != nil; parent = parent.Parent() {
		if parent == node {
			return true
		}
	}
	return false
}

func (transition *Transition) Source() Vertex {
	return transition.source
}

func (transition *Transition) Target() Vertex {
	return transition.target
}

func (transition *Transition) Guard() Guard {
	return transition.guard
}

// IsElse reports whether the transition is the else branch of a junction or
// choice.
func (transition *Transition) IsElse() bool {
	return transition.isElse
}

func (transition *Transition) Effects() []Action {
	return transition.effect
}

// When replaces the transition's guard. Where is an alias.
func (transition *Transition) When(guard Guard) *Transition {
	transition.guard = guard
	transition.isElse = false
	transition.invalidate()
	return transition
}

// Where replaces the transition's guard; it is an alias for When.
func (transition *Transition) Where(guard Guard) *Transition {
	return transition.When(guard)
}

// Else marks the transition as the fallback branch of a junction or choice.
// An else transition is never enabled by ordinary guard evaluation; it is
// selected only when no other branch is viable.
func (transition *Transition) Else() *Transition {
	transition.guard = nil
	transition.isElse = true
	transition.invalidate()
	return transition
}

// Effect appends behaviors run during traversal, after the source side exits
// and before the target side entries.
func (transition *Transition) Effect(actions ...Action) *Transition {
	transition.effect = append(transition.effect, actions...)
	transition.invalidate()
	return transition
}

// Remove detaches the transition from its source and target.
func (transition *Transition) Remove() {
	source := transition.source.base()
	source.outgoing = slices.DeleteFunc(source.outgoing, func(existing *Transition) bool {
		return existing == transition
	})
	if transition.target != nil {
		target := transition.target.base()
		target.incoming = slices.DeleteFunc(target.incoming, func(existing *Transition) bool {
			return existing == transition
		})
	}
	transition.invalidate()
}

// enabledFor evaluates the guard against a message. Else branches never
// enable here; junctions and choices select them explicitly.
func (transition *Transition) enabledFor(message any, instance Instance) bool {
	if transition.isElse {
		return false
	}
	if transition.guard == nil {
		return true
	}
	return transition.guard(message, instance)
}

func (transition *Transition) Accept(visitor Visitor, args ...any) {
	visitor.VisitTransition(transition, args...)
}
