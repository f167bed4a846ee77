package statechart_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	statechart "github.com/stateforward/go-statechart"
	"github.com/stateforward/go-statechart/kinds"
	"github.com/stateforward/go-statechart/pkg/tests"
)

type historyModel struct {
	machine *statechart.StateMachine
	c       *statechart.State
	d       *statechart.State
	p       *statechart.State
	q       *statechart.State
	outside *statechart.State
}

// buildHistory assembles C > D > {p q} with the given history kind as C's
// region starting point, plus transitions to leave and re-enter C.
func buildHistory(recorder *tests.Recorder, historyKind uint64) historyModel {
	machine := statechart.NewStateMachine("m")
	c := statechart.NewState("C", machine).
		Entry(recorder.Action("C.entry")).
		Exit(recorder.Action("C.exit"))
	outside := statechart.NewState("outside", machine).
		Entry(recorder.Action("outside.entry")).
		Exit(recorder.Action("outside.exit"))
	d := statechart.NewState("D", c).
		Entry(recorder.Action("D.entry")).
		Exit(recorder.Action("D.exit"))
	p := statechart.NewState("p", d).
		Entry(recorder.Action("p.entry")).
		Exit(recorder.Action("p.exit"))
	q := statechart.NewState("q", d).
		Entry(recorder.Action("q.entry")).
		Exit(recorder.Action("q.exit"))

	initial := statechart.NewPseudoState("initial", machine, kinds.Initial)
	statechart.NewTransition(initial, c)
	history := statechart.NewPseudoState("history", c, historyKind)
	statechart.NewTransition(history, d)
	initialD := statechart.NewPseudoState("initial", d, kinds.Initial)
	statechart.NewTransition(initialD, p)

	statechart.NewTransition(c, q).When(statechart.Message("goq"))
	statechart.NewTransition(c, outside).When(statechart.Message("out"))
	statechart.NewTransition(outside, c).When(statechart.Message("back"))

	return historyModel{machine: machine, c: c, d: d, p: p, q: q, outside: outside}
}

// TestDeepHistory re-enters a composite through deep history and expects the
// previously active leaf to be restored recursively.
func TestDeepHistory(t *testing.T) {
	recorder := &tests.Recorder{}
	model := buildHistory(recorder, kinds.DeepHistory)
	instance := statechart.NewInstance()

	require.NoError(t, statechart.Initialise(model.machine, instance))
	require.True(t, recorder.Matches("C.entry", "D.entry", "p.entry"), "trace: %v", recorder.Steps)
	require.True(t, statechart.IsActive(model.p, instance))

	consumed, err := statechart.Evaluate(model.machine, instance, "goq")
	require.NoError(t, err)
	require.True(t, consumed)
	require.True(t, statechart.IsActive(model.q, instance))

	consumed, err = statechart.Evaluate(model.machine, instance, "out")
	require.NoError(t, err)
	require.True(t, consumed)
	require.True(t, statechart.IsActive(model.outside, instance))
	require.False(t, statechart.IsActive(model.q, instance))

	recorder.Reset()
	consumed, err = statechart.Evaluate(model.machine, instance, "back")
	require.NoError(t, err)
	require.True(t, consumed)
	require.True(t, recorder.Matches(
		"outside.exit", "C.entry", "D.entry", "q.entry",
	), "trace: %v", recorder.Steps)
	require.True(t, statechart.IsActive(model.q, instance), "deep history must restore the leaf")
	require.False(t, statechart.IsActive(model.p, instance))
}

// TestShallowHistory restores the last active direct child but initialises
// its sub-regions fresh.
func TestShallowHistory(t *testing.T) {
	recorder := &tests.Recorder{}
	model := buildHistory(recorder, kinds.ShallowHistory)
	instance := statechart.NewInstance()

	require.NoError(t, statechart.Initialise(model.machine, instance))
	require.True(t, statechart.IsActive(model.p, instance))

	_, err := statechart.Evaluate(model.machine, instance, "goq")
	require.NoError(t, err)
	require.True(t, statechart.IsActive(model.q, instance))

	_, err = statechart.Evaluate(model.machine, instance, "out")
	require.NoError(t, err)

	recorder.Reset()
	consumed, err := statechart.Evaluate(model.machine, instance, "back")
	require.NoError(t, err)
	require.True(t, consumed)
	require.True(t, recorder.Matches(
		"outside.exit", "C.entry", "D.entry", "p.entry",
	), "trace: %v", recorder.Steps)
	require.True(t, statechart.IsActive(model.p, instance), "shallow history restores the child, fresh below")
	require.False(t, statechart.IsActive(model.q, instance))
}

// TestHistoryDefault enters a history region with no recorded history and
// expects the history pseudo state's own transition to be taken.
func TestHistoryDefault(t *testing.T) {
	recorder := &tests.Recorder{}
	model := buildHistory(recorder, kinds.DeepHistory)
	instance := statechart.NewInstance()

	recorder.Reset()
	require.NoError(t, statechart.Initialise(model.machine, instance))
	require.True(t, recorder.Matches("C.entry", "D.entry", "p.entry"), "trace: %v", recorder.Steps)
	require.True(t, statechart.IsActive(model.d, instance))
	require.True(t, statechart.IsActive(model.p, instance))
}
