package statechart

import (
	"fmt"

	"github.com/stateforward/go-statechart/kinds"
)

var pseudoStateKinds = []uint64{
	kinds.Initial,
	kinds.ShallowHistory,
	kinds.DeepHistory,
	kinds.Junction,
	kinds.Choice,
	kinds.Terminate,
}

// PseudoState is a transient vertex. Its kind is one of Initial,
// ShallowHistory, DeepHistory, Junction, Choice or Terminate; the instance
// never rests in a pseudo state.
type PseudoState struct {
	vertex
}

func NewPseudoState(name string, parent Container, kind uint64) *PseudoState {
	valid := false
	for _, candidate := range pseudoStateKinds {
		if kind == candidate {
			valid = true
			break
		}
	}
	if !valid {
		panic(fmt.Errorf("statechart: %q is not a valid pseudo state kind", name))
	}
	pseudo := &PseudoState{}
	initVertex(&pseudo.vertex, pseudo, kind, name, parent)
	return pseudo
}

func (pseudo *PseudoState) asState() *State {
	return nil
}

// IsInitial reports whether the pseudo state can start a region: kind
// Initial, ShallowHistory or DeepHistory.
func (pseudo *PseudoState) IsInitial() bool {
	return kinds.IsKind(pseudo.kind, kinds.Initial)
}

// IsHistory reports whether the pseudo state is ShallowHistory or
// DeepHistory.
func (pseudo *PseudoState) IsHistory() bool {
	return kinds.IsKind(pseudo.kind, kinds.History)
}

func (pseudo *PseudoState) Accept(visitor Visitor, args ...any) {
	visitor.VisitPseudoState(pseudo, args...)
	for _, transition := range pseudo.outgoing {
		transition.Accept(visitor, args...)
	}
}
