package plantuml_test

import (
	"strings"
	"testing"

	statechart "github.com/stateforward/go-statechart"
	"github.com/stateforward/go-statechart/kinds"
	"github.com/stateforward/go-statechart/pkg/plantuml"
)

func TestGenerate(t *testing.T) {
	machine := statechart.NewStateMachine("toggle")
	off := statechart.NewState("off", machine)
	on := statechart.NewState("on", machine)
	initial := statechart.NewPseudoState("initial", machine, kinds.Initial)
	statechart.NewTransition(initial, off)
	statechart.NewTransition(off, on).When(statechart.Message("flip"))
	statechart.NewTransition(on, off).When(statechart.Message("flip"))

	var builder strings.Builder
	if err := plantuml.Generate(&builder, machine); err != nil {
		t.Fatal(err)
	}
	diagram := builder.String()

	for _, expected := range []string{
		"@startuml toggle",
		"state default_off",
		"state default_on",
		"[*] --> default_off",
		"default_off --> default_on",
		"default_on --> default_off",
		"@enduml",
	} {
		if !strings.Contains(diagram, expected) {
			t.Errorf("diagram missing %q:\n%s", expected, diagram)
		}
	}
}

func TestGenerateComposite(t *testing.T) {
	machine := statechart.NewStateMachine("m")
	s := statechart.NewState("s", machine)
	s1 := statechart.NewState("s1", s)
	terminate := statechart.NewPseudoState("terminate", machine, kinds.Terminate)
	choice := statechart.NewPseudoState("pick", machine, kinds.Choice)
	initial := statechart.NewPseudoState("initial", machine, kinds.Initial)
	statechart.NewTransition(initial, s)
	nested := statechart.NewPseudoState("initial", s, kinds.Initial)
	statechart.NewTransition(nested, s1)
	statechart.NewTransition(s, choice).When(statechart.Message("pick"))
	statechart.NewTransition(choice, terminate).When(func(message any, instance statechart.Instance) bool { return true })

	var builder strings.Builder
	if err := plantuml.Generate(&builder, machine); err != nil {
		t.Fatal(err)
	}
	diagram := builder.String()

	for _, expected := range []string{
		"state default_s {",
		"state default_pick <<choice>>",
		"default_pick --> [*]",
	} {
		if !strings.Contains(diagram, expected) {
			t.Errorf("diagram missing %q:\n%s", expected, diagram)
		}
	}
}
