package statechart_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	statechart "github.com/stateforward/go-statechart"
	"github.com/stateforward/go-statechart/kinds"
)

func TestDefaultInstance(t *testing.T) {
	instance := statechart.NewInstance()
	require.NotEmpty(t, instance.Id())
	require.False(t, instance.IsTerminated())

	named := statechart.NewInstance("order-17")
	require.Equal(t, "order-17", named.Id())
	require.Equal(t, "order-17", named.String())

	machine := statechart.NewStateMachine("m")
	s := statechart.NewState("s", machine)
	region := s.Container()
	require.Nil(t, instance.GetCurrent(region))
	instance.SetCurrent(region, s)
	require.Equal(t, s, instance.GetCurrent(region))

	instance.SetTerminated(true)
	require.True(t, instance.IsTerminated())
	instance.SetTerminated(false)
	require.False(t, instance.IsTerminated())
}

// TestSharedModel runs two instances against one compiled model and expects
// their configurations to stay independent.
func TestSharedModel(t *testing.T) {
	machine := statechart.NewStateMachine("m")
	off := statechart.NewState("off", machine)
	on := statechart.NewState("on", machine)
	initial := statechart.NewPseudoState("initial", machine, kinds.Initial)
	statechart.NewTransition(initial, off)
	statechart.NewTransition(off, on).When(statechart.Message("flip"))
	statechart.NewTransition(on, off).When(statechart.Message("flip"))

	first := statechart.NewInstance()
	second := statechart.NewInstance()
	require.NoError(t, statechart.Initialise(machine, first))
	require.NoError(t, statechart.Initialise(machine, second))

	_, err := statechart.Evaluate(machine, first, "flip")
	require.NoError(t, err)
	require.True(t, statechart.IsActive(on, first))
	require.True(t, statechart.IsActive(off, second), "instances must not share state")
}
