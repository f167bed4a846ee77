package statechart

import (
	"github.com/stateforward/go-statechart/kinds"
)

// Element is implemented by every node of the model graph: regions, states,
// pseudo states, state machines and transitions. The graph is a strict tree on
// Parent; transitions overlay a digraph between vertices.
type Element interface {
	Kind() uint64
	Name() string
	Parent() Element
	// QualifiedName joins the names of all ancestors with
	// NamespaceSeparator. It is derived on demand, never stored.
	QualifiedName() string
	Root() *StateMachine
	Accept(visitor Visitor, args ...any)
}

type element struct {
	kind   uint64
	name   string
	parent Element
}

func (element *element) Kind() uint64 {
	if element == nil {
		return kinds.Null
	}
	return element.kind
}

func (element *element) Name() string {
	if element == nil {
		return ""
	}
	return element.name
}

func (element *element) Parent() Element {
	if element == nil {
		return nil
	}
	return element.parent
}

func (element *element) QualifiedName() string {
	if element == nil {
		return ""
	}
	if element.parent == nil {
		return element.name
	}
	return element.parent.QualifiedName() + NamespaceSeparator + element.name
}

func (element *element) Root() *StateMachine {
	if element == nil || element.parent == nil {
		return nil
	}
	return element.parent.Root()
}

func (element *element) String() string {
	return element.QualifiedName()
}

// invalidate marks the owning machine dirty so the next initialise or
// evaluate recompiles.
func (element *element) invalidate() {
	if root := element.Root(); root != nil {
		root.clean = false
	}
}

// Composite is satisfied by *State and *StateMachine; it identifies elements
// that can own regions.
type Composite interface {
	Element
	state() *State
}

// Container is satisfied by *Region, *State and *StateMachine. Vertex
// constructors accept any Container; a state resolves to its default region,
// created lazily with the name DefaultRegionName.
type Container interface {
	Element
	containerRegion() *Region
}
