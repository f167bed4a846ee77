package statechart

// Visitor is a thin double-dispatch surface over the model graph. Accept on
// any element calls the visit method for its concrete kind and then descends
// structurally: machines and states visit their outgoing transitions and
// regions, regions visit their vertices.
type Visitor interface {
	VisitElement(element Element, args ...any)
	VisitRegion(region *Region, args ...any)
	VisitVertex(vertex Vertex, args ...any)
	VisitPseudoState(pseudo *PseudoState, args ...any)
	VisitState(state *State, args ...any)
	VisitFinalState(final *FinalState, args ...any)
	VisitStateMachine(machine *StateMachine, args ...any)
	VisitTransition(transition *Transition, args ...any)
}

// DefaultVisitor implements Visitor with a pass-through cascade: each visit
// method delegates to the visit method of its base kind, bottoming out in a
// no-op VisitElement. Embed it and override the methods of interest.
type DefaultVisitor struct{}

func (DefaultVisitor) VisitElement(element Element, args ...any) {}

func (visitor DefaultVisitor) VisitRegion(region *Region, args ...any) {
	visitor.VisitElement(region, args...)
}

func (visitor DefaultVisitor) VisitVertex(vertex Vertex, args ...any) {
	visitor.VisitElement(vertex, args...)
}

func (visitor DefaultVisitor) VisitPseudoState(pseudo *PseudoState, args ...any) {
	visitor.VisitVertex(pseudo, args...)
}

func (visitor DefaultVisitor) VisitState(state *State, args ...any) {
	visitor.VisitVertex(state, args...)
}

func (visitor DefaultVisitor) VisitFinalState(final *FinalState, args ...any) {
	visitor.VisitState(&final.State, args...)
}

func (visitor DefaultVisitor) VisitStateMachine(machine *StateMachine, args ...any) {
	visitor.VisitState(&machine.State, args...)
}

func (visitor DefaultVisitor) VisitTransition(transition *Transition, args ...any) {
	visitor.VisitElement(transition, args...)
}
