package statechart

import (
	"fmt"

	"github.com/stateforward/go-statechart/kinds"
)

// State is a vertex that may own regions: zero makes it simple, one
// composite, two or more orthogonal. Entry and exit behaviors run in
// declaration order.
type State struct {
	vertex
	regions  []*Region
	implicit *Region
	entry    []Action
	exit     []Action
}

// NewState creates a state under the given container and links it in.
func NewState(name string, parent Container) *State {
	state := &State{}
	initVertex(&state.vertex, state, kinds.State, name, parent)
	return state
}

func initVertex(v *vertex, self Vertex, kind uint64, name string, parent Container) {
	if parent == nil {
		panic(fmt.Errorf("statechart: vertex %q requires a parent", name))
	}
	region := parent.containerRegion()
	v.element = element{kind: kind, name: name, parent: region}
	v.self = self
	v.container = region
	region.addVertex(self)
}

func (state *State) state() *State {
	return state
}

func (state *State) asState() *State {
	return state
}

func (state *State) containerRegion() *Region {
	return state.defaultRegionOf(state)
}

// defaultRegionOf lazily creates the state's default region. The owner is the
// outermost composite so that machines keep their own identity as the
// region's parent.
func (state *State) defaultRegionOf(owner Composite) *Region {
	if state.implicit == nil {
		state.implicit = NewRegion(DefaultRegionName, owner)
	}
	return state.implicit
}

func (state *State) Regions() []*Region {
	return state.regions
}

// Entry appends entry behaviors, run in order when the state is entered.
func (state *State) Entry(actions ...Action) *State {
	state.entry = append(state.entry, actions...)
	state.invalidate()
	return state
}

// Exit appends exit behaviors, run in order when the state is exited.
func (state *State) Exit(actions ...Action) *State {
	state.exit = append(state.exit, actions...)
	state.invalidate()
	return state
}

func (state *State) EntryBehavior() []Action {
	return state.entry
}

func (state *State) ExitBehavior() []Action {
	return state.exit
}

func (state *State) IsSimple() bool {
	return len(state.regions) == 0
}

func (state *State) IsComposite() bool {
	return len(state.regions) == 1
}

func (state *State) IsOrthogonal() bool {
	return len(state.regions) > 1
}

// IsActive reports whether the state is part of the instance's current
// configuration: its containing region's current state is this state,
// recursively up to the root.
func (state *State) IsActive(instance Instance) bool {
	if state.container == nil {
		return true
	}
	return state.container.isActive(instance) && instance.GetCurrent(state.container) == state
}

// IsComplete reports whether every region of the state has reached a final
// state. Simple states are trivially complete.
func (state *State) IsComplete(instance Instance) bool {
	for _, region := range state.regions {
		if !region.IsComplete(instance) {
			return false
		}
	}
	return true
}

func (state *State) Accept(visitor Visitor, args ...any) {
	visitor.VisitState(state, args...)
	state.acceptMembers(visitor, args...)
}

func (state *State) acceptMembers(visitor Visitor, args ...any) {
	for _, transition := range state.outgoing {
		transition.Accept(visitor, args...)
	}
	for _, region := range state.regions {
		region.Accept(visitor, args...)
	}
}

// FinalState is a state with no outgoing transitions; entering it completes
// the containing region.
type FinalState struct {
	State
}

func NewFinalState(name string, parent Container) *FinalState {
	final := &FinalState{}
	initVertex(&final.vertex, final, kinds.FinalState, name, parent)
	return final
}

func (final *FinalState) Accept(visitor Visitor, args ...any) {
	visitor.VisitFinalState(final, args...)
}
