package statechart_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	statechart "github.com/stateforward/go-statechart"
	"github.com/stateforward/go-statechart/kinds"
)

var _ statechart.Visitor = statechart.DefaultVisitor{}

type census struct {
	statechart.DefaultVisitor
	machines     int
	states       int
	finals       int
	pseudoStates int
	regions      int
	transitions  int
}

func (census *census) VisitStateMachine(machine *statechart.StateMachine, args ...any) {
	census.machines++
}

func (census *census) VisitState(state *statechart.State, args ...any) {
	census.states++
}

func (census *census) VisitFinalState(final *statechart.FinalState, args ...any) {
	census.finals++
}

func (census *census) VisitPseudoState(pseudo *statechart.PseudoState, args ...any) {
	census.pseudoStates++
}

func (census *census) VisitRegion(region *statechart.Region, args ...any) {
	census.regions++
}

func (census *census) VisitTransition(transition *statechart.Transition, args ...any) {
	census.transitions++
}

func TestVisitorWalk(t *testing.T) {
	machine := statechart.NewStateMachine("m")
	s := statechart.NewState("s", machine)
	s1 := statechart.NewState("s1", s)
	final := statechart.NewFinalState("end", s)
	initial := statechart.NewPseudoState("initial", machine, kinds.Initial)
	statechart.NewTransition(initial, s)
	nested := statechart.NewPseudoState("initial", s, kinds.Initial)
	statechart.NewTransition(nested, s1)
	statechart.NewTransition(s1, final).When(statechart.Message("finish"))

	counter := &census{}
	machine.Accept(counter)

	require.Equal(t, 1, counter.machines)
	require.Equal(t, 2, counter.states, "s and s1")
	require.Equal(t, 1, counter.finals)
	require.Equal(t, 2, counter.pseudoStates)
	require.Equal(t, 2, counter.regions, "machine default and s default")
	require.Equal(t, 3, counter.transitions)
}

// TestTraceHook installs a Trace and expects evaluate, enter and exit steps
// to be observed during dispatch.
func TestTraceHook(t *testing.T) {
	machine := statechart.NewStateMachine("m")
	off := statechart.NewState("off", machine)
	on := statechart.NewState("on", machine)
	initial := statechart.NewPseudoState("initial", machine, kinds.Initial)
	statechart.NewTransition(initial, off)
	statechart.NewTransition(off, on).When(statechart.Message("flip"))

	var steps []string
	statechart.WithTrace(machine, func(step string, elements ...statechart.Element) func() {
		name := step
		if len(elements) > 0 {
			name += " " + elements[0].QualifiedName()
		}
		steps = append(steps, name)
		return func() {}
	})

	instance := statechart.NewInstance()
	require.NoError(t, statechart.Initialise(machine, instance))
	_, err := statechart.Evaluate(machine, instance, "flip")
	require.NoError(t, err)

	require.Contains(t, steps, "evaluate m")
	require.Contains(t, steps, "exit m.default.off")
	require.Contains(t, steps, "enter m.default.on")

	statechart.WithTrace(machine, nil)
	_, err = statechart.Evaluate(machine, instance, "flip")
	require.NoError(t, err)
}
