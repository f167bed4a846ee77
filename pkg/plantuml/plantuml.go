// Package plantuml renders a statechart model as a PlantUML state diagram.
package plantuml

import (
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strings"

	statechart "github.com/stateforward/go-statechart"
	"github.com/stateforward/go-statechart/kinds"
)

// Generate writes a PlantUML state diagram of the model to the writer.
func Generate(writer io.Writer, machine *statechart.StateMachine) error {
	var builder strings.Builder
	fmt.Fprintf(&builder, "@startuml %s\n", machine.Name())
	for _, region := range machine.Regions() {
		generateRegion(&builder, 0, region)
	}
	collector := &transitions{}
	machine.Accept(collector)
	for _, transition := range collector.all {
		generateTransition(&builder, transition)
	}
	fmt.Fprintln(&builder, "@enduml")
	_, err := io.WriteString(writer, builder.String())
	return err
}

// transitions gathers every transition in the model through the visitor API.
type transitions struct {
	statechart.DefaultVisitor
	all []*statechart.Transition
}

func (collector *transitions) VisitTransition(transition *statechart.Transition, args ...any) {
	collector.all = append(collector.all, transition)
}

func generateRegion(builder *strings.Builder, depth int, region *statechart.Region) {
	for _, vertex := range region.Vertices() {
		generateVertex(builder, depth, vertex)
	}
}

func generateVertex(builder *strings.Builder, depth int, vertex statechart.Vertex) {
	indent := strings.Repeat(" ", depth*2)
	id := idOf(vertex)
	switch node := vertex.(type) {
	case *statechart.PseudoState:
		switch {
		case node.Kind() == kinds.Choice || node.Kind() == kinds.Junction:
			fmt.Fprintf(builder, "%sstate %s <<choice>>\n", indent, id)
		case node.IsHistory():
			fmt.Fprintf(builder, "%sstate %s <<history>>\n", indent, id)
		}
		// initial and terminate render as [*] endpoints on their transitions
	case *statechart.FinalState:
		fmt.Fprintf(builder, "%sstate %s <<end>>\n", indent, id)
	case *statechart.State:
		if len(node.Regions()) == 0 {
			fmt.Fprintf(builder, "%sstate %s\n", indent, id)
		} else {
			fmt.Fprintf(builder, "%sstate %s {\n", indent, id)
			for i, region := range node.Regions() {
				if i > 0 {
					fmt.Fprintf(builder, "%s  --\n", indent)
				}
				generateRegion(builder, depth+1, region)
			}
			fmt.Fprintf(builder, "%s}\n", indent)
		}
		for _, action := range node.EntryBehavior() {
			fmt.Fprintf(builder, "%sstate %s: entry / %s\n", indent, id, funcName(action))
		}
		for _, action := range node.ExitBehavior() {
			fmt.Fprintf(builder, "%sstate %s: exit / %s\n", indent, id, funcName(action))
		}
	}
}

func generateTransition(builder *strings.Builder, transition *statechart.Transition) {
	source := transition.Source()
	sourceId := idOf(source)
	if pseudo, ok := source.(*statechart.PseudoState); ok && pseudo.IsInitial() && !pseudo.IsHistory() {
		sourceId = "[*]"
	}
	label := ""
	if guard := transition.Guard(); guard != nil {
		label += fmt.Sprintf(" [%s]", funcName(guard))
	}
	if transition.IsElse() {
		label += " [else]"
	}
	for _, action := range transition.Effects() {
		label += fmt.Sprintf(" / %s", funcName(action))
	}
	if label != "" {
		label = " :" + label
	}
	target := transition.Target()
	if target == nil {
		fmt.Fprintf(builder, "%s -> %s%s\n", sourceId, sourceId, label)
		return
	}
	targetId := idOf(target)
	if target.Kind() == kinds.Terminate {
		targetId = "[*]"
	}
	fmt.Fprintf(builder, "%s --> %s%s\n", sourceId, targetId, label)
}

// idOf derives a PlantUML identifier from the qualified name, skipping the
// machine segment.
func idOf(element statechart.Element) string {
	name := element.QualifiedName()
	if root := element.Root(); root != nil {
		name = strings.TrimPrefix(name, root.Name()+statechart.NamespaceSeparator)
	}
	return strings.NewReplacer(statechart.NamespaceSeparator, "_", "-", "_", " ", "_").Replace(name)
}

func funcName(fn any) string {
	value := reflect.ValueOf(fn)
	if !value.IsValid() || value.Kind() != reflect.Func || value.IsNil() {
		return ""
	}
	name := runtime.FuncForPC(value.Pointer()).Name()
	if index := strings.LastIndex(name, "/"); index >= 0 {
		name = name[index+1:]
	}
	return name
}
