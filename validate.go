package statechart

import (
	"github.com/stateforward/go-statechart/kinds"
	"github.com/stateforward/go-statechart/pkg/set"
)

// Validate checks the model against the structural invariants and reports
// every finding through Logger. It never raises; the return value is false
// when at least one error-level finding was reported. Validation is not
// invoked automatically.
func Validate(machine *StateMachine) bool {
	validator := &validator{ok: true}
	machine.Accept(validator)
	return validator.ok
}

type validator struct {
	DefaultVisitor
	ok bool
}

func (validator *validator) fail(message string, args ...any) {
	validator.ok = false
	Logger.Error(message, args...)
}

func (validator *validator) VisitRegion(region *Region, args ...any) {
	initials := 0
	names := set.New[string]()
	for _, vertex := range region.Vertices() {
		if names.Contains(vertex.Name()) {
			Logger.Warn("duplicate vertex name in region", "region", region.QualifiedName(), "name", vertex.Name())
		}
		names.Add(vertex.Name())
		if pseudo, ok := vertex.(*PseudoState); ok && pseudo.IsInitial() {
			initials++
		}
	}
	if initials == 0 {
		validator.fail("region has no initial pseudo state", "region", region.QualifiedName())
	}
	if initials > 1 {
		validator.fail("region has multiple initial pseudo states", "region", region.QualifiedName())
	}
}

func (validator *validator) VisitPseudoState(pseudo *PseudoState, args ...any) {
	switch {
	case pseudo.IsInitial():
		if len(pseudo.Outgoing()) != 1 {
			validator.fail("initial pseudo state must have exactly one outgoing transition", "vertex", pseudo.QualifiedName())
			return
		}
		transition := pseudo.Outgoing()[0]
		if transition.Guard() != nil || transition.IsElse() {
			validator.fail("initial pseudo state transition cannot have a guard", "vertex", pseudo.QualifiedName())
		}
		if target := transition.Target(); target != nil && !isAncestorOf(pseudo.Container(), target) {
			validator.fail("initial pseudo state must target a vertex nested in its region", "vertex", pseudo.QualifiedName(), "target", target.QualifiedName())
		}
	case pseudo.Kind() == kinds.Junction || pseudo.Kind() == kinds.Choice:
		regular, elses := 0, 0
		for _, transition := range pseudo.Outgoing() {
			if transition.IsElse() {
				elses++
			} else {
				regular++
			}
		}
		if regular == 0 {
			validator.fail("junction or choice needs at least one non-else outgoing transition", "vertex", pseudo.QualifiedName())
		}
		if elses > 1 {
			validator.fail("junction or choice can have at most one else transition", "vertex", pseudo.QualifiedName())
		}
	case pseudo.Kind() == kinds.Terminate:
		if len(pseudo.Outgoing()) > 0 {
			validator.fail("terminate pseudo state cannot have outgoing transitions", "vertex", pseudo.QualifiedName())
		}
	}
}

func (validator *validator) VisitFinalState(final *FinalState, args ...any) {
	if len(final.Outgoing()) > 0 {
		validator.fail("final state cannot have outgoing transitions", "vertex", final.QualifiedName())
	}
	if len(final.EntryBehavior()) > 0 || len(final.ExitBehavior()) > 0 {
		Logger.Warn("final state should not declare entry or exit behaviors", "vertex", final.QualifiedName())
	}
	if len(final.Regions()) > 0 {
		validator.fail("final state cannot own regions", "vertex", final.QualifiedName())
	}
}

func (validator *validator) VisitTransition(transition *Transition, args ...any) {
	if kinds.IsKind(transition.Kind(), kinds.Internal) {
		if len(transition.Effects()) == 0 {
			Logger.Warn("internal transition without an effect has no observable behavior", "transition", transition.QualifiedName())
		}
		return
	}
	if transition.Target() == nil {
		validator.fail("external or local transition requires a target", "transition", transition.QualifiedName())
	}
}
