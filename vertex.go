package statechart

// Vertex is anything that can be the source or target of a transition:
// states, final states, pseudo states and the state machine root itself.
type Vertex interface {
	Element
	Container() *Region
	Outgoing() []*Transition
	Incoming() []*Transition

	base() *vertex
	// asState returns the underlying *State for state-like vertices and
	// nil for pseudo states.
	asState() *State
}

// cascades holds the compiled step lists for an element. The leave list runs
// when the element is exited; beginEnter marks the element active and runs
// entry behaviors; endEnter descends into child structure and evaluates
// completion. The full enter cascade is beginEnter followed by endEnter.
type cascades struct {
	leave      []step
	beginEnter []step
	endEnter   []step
}

func (c *cascades) reset() {
	c.leave = nil
	c.beginEnter = nil
	c.endEnter = nil
}

type vertex struct {
	element
	self      Vertex
	container *Region
	outgoing  []*Transition
	incoming  []*Transition
	compiled  cascades
}

func (vertex *vertex) Container() *Region {
	return vertex.container
}

func (vertex *vertex) Outgoing() []*Transition {
	return vertex.outgoing
}

func (vertex *vertex) Incoming() []*Transition {
	return vertex.incoming
}

func (vertex *vertex) base() *vertex {
	return vertex
}

// Remove detaches the vertex from its region along with every transition
// touching it, and marks the owning machine dirty.
func (vertex *vertex) Remove() {
	for len(vertex.outgoing) > 0 {
		vertex.outgoing[0].Remove()
	}
	for len(vertex.incoming) > 0 {
		vertex.incoming[0].Remove()
	}
	if vertex.container != nil {
		vertex.container.removeVertex(vertex.self)
	}
	vertex.invalidate()
}
