package tactic

import (
	"context"

	"github.com/angr/angr-z3/pkg/logic"
	"github.com/samber/lo"
)

// simplifyOptions are the recognized keys of the simplify tactic:
//
//	propagate_values: substitute variables that an assertion pins to a
//	constant before simplifying.
type simplifyOptions struct {
	PropagateValues bool `mapstructure:"propagate_values"`
}

type simplifyTactic struct {
	options simplifyOptions
}

// NewSimplify returns the simplify leaf: every assertion is rewritten with
// the logic simplifier, settled assertions are dropped, and a contradiction
// collapses the goal to the terminal false goal.
func NewSimplify() Tactic {
	return &simplifyTactic{}
}

func (t *simplifyTactic) Name() string { return "simplify" }

func (t *simplifyTactic) Configure(params Params) (Tactic, error) {
	options := t.options
	if err := decodeParams(t.Name(), params, &options); err != nil {
		return nil, err
	}
	return &simplifyTactic{options: options}, nil
}

func (t *simplifyTactic) Apply(_ context.Context, g *Goal) Result {
	assertions := g.Formulas()
	if t.options.PropagateValues {
		assertions = propagateValues(assertions)
	}

	kept := make([]logic.Term, 0, len(assertions))
	for _, assertion := range assertions {
		simplified := logic.Simplify(assertion)
		if simplified.IsTrue() {
			continue
		}
		if simplified.IsFalse() {
			return Decomposed([]*Goal{g.Child([]logic.Term{logic.False})}, IdentityConverter)
		}
		kept = append(kept, simplified)
	}

	if len(kept) == 0 {
		return Decomposed(nil, IdentityConverter)
	}
	child := g.Child(kept)
	if child.Equal(g) {
		return Decomposed([]*Goal{g.Clone()}, IdentityConverter)
	}
	return Decomposed([]*Goal{child}, IdentityConverter)
}

// propagateValues substitutes variables pinned to a constant by some
// assertion into every other assertion. The pinning assertions stay so the
// bindings remain visible to models.
func propagateValues(assertions []logic.Term) []logic.Term {
	bindings := make(map[string]logic.Term)
	for _, assertion := range assertions {
		switch {
		case assertion.IsVar():
			bindings[assertion.Name()] = logic.True
		case assertion.Op() == logic.OpNot && assertion.Args()[0].IsVar():
			bindings[assertion.Args()[0].Name()] = logic.False
		case assertion.Op() == logic.OpEq:
			left, right := assertion.Args()[0], assertion.Args()[1]
			if left.IsVar() && (right.IsInt() || right.IsBool()) {
				bindings[left.Name()] = right
			} else if right.IsVar() && (left.IsInt() || left.IsBool()) {
				bindings[right.Name()] = left
			}
		}
	}
	if len(bindings) == 0 {
		return assertions
	}

	return lo.Map(assertions, func(assertion logic.Term, _ int) logic.Term {
		if defines(assertion, bindings) {
			return assertion
		}
		return assertion.Subst(bindings)
	})
}

// defines reports whether the assertion is itself one of the binding
// definitions, which must not be rewritten into a tautology check.
func defines(assertion logic.Term, bindings map[string]logic.Term) bool {
	if assertion.IsVar() {
		_, ok := bindings[assertion.Name()]
		return ok
	}
	if assertion.Op() == logic.OpNot && assertion.Args()[0].IsVar() {
		_, ok := bindings[assertion.Args()[0].Name()]
		return ok
	}
	if assertion.Op() == logic.OpEq {
		left, right := assertion.Args()[0], assertion.Args()[1]
		if left.IsVar() {
			if bound, ok := bindings[left.Name()]; ok && bound.Equal(right) {
				return true
			}
		}
		if right.IsVar() {
			if bound, ok := bindings[right.Name()]; ok && bound.Equal(left) {
				return true
			}
		}
	}
	return false
}
