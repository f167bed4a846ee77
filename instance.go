package statechart

import (
	"github.com/google/uuid"
)

// Instance holds the per-execution state of a machine: the last-known state
// of every region and a termination flag. The core never stores instance
// state inside model nodes and never compares regions by name, only by
// identity, so any implementation honoring this contract can be supplied.
type Instance interface {
	SetCurrent(region *Region, state *State)
	GetCurrent(region *Region) *State
	IsTerminated() bool
	SetTerminated(terminated bool)
}

// DefaultInstance is the map-backed Instance implementation.
type DefaultInstance struct {
	id         string
	current    map[*Region]*State
	terminated bool
}

// NewInstance creates an instance with the given id, or a generated uuid
// when none is supplied.
func NewInstance(maybeId ...string) *DefaultInstance {
	id := ""
	if len(maybeId) > 0 {
		id = maybeId[0]
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &DefaultInstance{
		id:      id,
		current: map[*Region]*State{},
	}
}

func (instance *DefaultInstance) Id() string {
	return instance.id
}

func (instance *DefaultInstance) String() string {
	return instance.id
}

func (instance *DefaultInstance) SetCurrent(region *Region, state *State) {
	instance.current[region] = state
}

func (instance *DefaultInstance) GetCurrent(region *Region) *State {
	return instance.current[region]
}

func (instance *DefaultInstance) IsTerminated() bool {
	return instance.terminated
}

func (instance *DefaultInstance) SetTerminated(terminated bool) {
	instance.terminated = terminated
}
