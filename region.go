package statechart

import (
	"fmt"
	"slices"

	"github.com/stateforward/go-statechart/kinds"
)

// Region is a container of vertices within a composite state. A well-formed
// region owns exactly one initial-kind pseudo state; construction rejects a
// second one, Validate reports a missing one.
type Region struct {
	element
	state    *State
	vertices []Vertex
	initial  *PseudoState
	compiled cascades
}

// NewRegion creates a region owned by the given composite and links it into
// the composite's region list.
func NewRegion(name string, parent Composite) *Region {
	if parent == nil {
		panic(fmt.Errorf("statechart: region %q requires a parent state", name))
	}
	region := &Region{
		element: element{kind: kinds.Region, name: name, parent: parent},
		state:   parent.state(),
	}
	region.state.regions = append(region.state.regions, region)
	region.invalidate()
	return region
}

// State returns the composite state owning this region.
func (region *Region) State() *State {
	return region.state
}

func (region *Region) Vertices() []Vertex {
	return region.vertices
}

// Initial returns the region's initial-kind pseudo state, if any.
func (region *Region) Initial() *PseudoState {
	return region.initial
}

func (region *Region) containerRegion() *Region {
	return region
}

func (region *Region) addVertex(v Vertex) {
	if pseudo, ok := v.(*PseudoState); ok && pseudo.IsInitial() {
		if region.initial != nil {
			panic(fmt.Errorf("statechart: region %q already has initial pseudo state %q", region.QualifiedName(), region.initial.Name()))
		}
		region.initial = pseudo
	}
	region.vertices = append(region.vertices, v)
	region.invalidate()
}

func (region *Region) removeVertex(v Vertex) {
	region.vertices = slices.DeleteFunc(region.vertices, func(existing Vertex) bool {
		return existing == v
	})
	if region.initial != nil && Vertex(region.initial) == v {
		region.initial = nil
	}
	region.invalidate()
}

// Remove detaches the region and its vertices from the owning state.
func (region *Region) Remove() {
	for len(region.vertices) > 0 {
		region.vertices[0].base().Remove()
	}
	region.state.regions = slices.DeleteFunc(region.state.regions, func(existing *Region) bool {
		return existing == region
	})
	region.invalidate()
}

// IsComplete reports whether the region has reached a final state for the
// given instance.
func (region *Region) IsComplete(instance Instance) bool {
	current := instance.GetCurrent(region)
	return current != nil && kinds.IsKind(current.Kind(), kinds.FinalState)
}

func (region *Region) isActive(instance Instance) bool {
	switch owner := region.parent.(type) {
	case *StateMachine:
		return true
	case *State:
		return owner.IsActive(instance)
	default:
		return false
	}
}

func (region *Region) Accept(visitor Visitor, args ...any) {
	visitor.VisitRegion(region, args...)
	for _, v := range region.vertices {
		v.Accept(visitor, args...)
	}
}
