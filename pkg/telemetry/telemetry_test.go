package telemetry_test

import (
	"testing"

	statechart "github.com/stateforward/go-statechart"
	"github.com/stateforward/go-statechart/kinds"
	"github.com/stateforward/go-statechart/pkg/telemetry"
)

func TestTraceWithNoopTracer(t *testing.T) {
	machine := statechart.NewStateMachine("traced")
	off := statechart.NewState("off", machine)
	on := statechart.NewState("on", machine)
	initial := statechart.NewPseudoState("initial", machine, kinds.Initial)
	statechart.NewTransition(initial, off)
	statechart.NewTransition(off, on).When(statechart.Message("flip"))

	tracer := telemetry.NewProvider().Tracer("statechart")
	statechart.WithTrace(machine, telemetry.Trace(tracer))

	instance := statechart.NewInstance()
	if err := statechart.Initialise(machine, instance); err != nil {
		t.Fatal(err)
	}
	consumed, err := statechart.Evaluate(machine, instance, "flip")
	if err != nil {
		t.Fatal(err)
	}
	if !consumed {
		t.Fatal("flip should be consumed")
	}
	if !statechart.IsActive(on, instance) {
		t.Fatal("on should be active")
	}
}
