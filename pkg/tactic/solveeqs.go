package tactic

import (
	"context"
	"log"

	"github.com/angr/angr-z3/pkg/logic"
	"github.com/samber/lo"
)

type solveEqsTactic struct{}

// NewSolveEqs returns the equation-elimination leaf: linear equations with a
// unit-coefficient variable are solved for that variable, which is then
// substituted away. The model converter re-derives the eliminated variables
// from a subgoal model, innermost elimination first.
func NewSolveEqs() Tactic {
	return &solveEqsTactic{}
}

func (t *solveEqsTactic) Name() string { return "solve-eqs" }

type elimination struct {
	name string
	rhs  logic.Term
}

func (t *solveEqsTactic) Apply(_ context.Context, g *Goal) Result {
	assertions := g.Formulas()
	var eliminations []elimination

	for {
		index, name, rhs := findSolvableEquation(assertions)
		if index < 0 {
			break
		}
		eliminations = append(eliminations, elimination{name: name, rhs: rhs})

		remaining := make([]logic.Term, 0, len(assertions)-1)
		bindings := map[string]logic.Term{name: rhs}
		for i, assertion := range assertions {
			if i == index {
				continue
			}
			remaining = append(remaining, assertion.Subst(bindings))
		}
		assertions = remaining
	}

	if len(eliminations) == 0 {
		return Decomposed([]*Goal{g.Clone()}, IdentityConverter)
	}
	return Decomposed([]*Goal{g.Child(assertions)}, reconstruct(eliminations))
}

// findSolvableEquation locates the first equation a = b whose difference is
// linear with some variable at coefficient +-1, and solves it for that
// variable.
func findSolvableEquation(assertions []logic.Term) (int, string, logic.Term) {
	for i, assertion := range assertions {
		if assertion.Op() != logic.OpEq {
			continue
		}
		left, okLeft := logic.Linear(assertion.Args()[0])
		right, okRight := logic.Linear(assertion.Args()[1])
		if !okLeft || !okRight {
			continue
		}
		diff := left.Minus(right)
		for _, name := range diff.Vars() {
			coeff := diff.Coeffs[name]
			if coeff != 1 && coeff != -1 {
				continue
			}
			// coeff*name + rest = 0, so name = -coeff * rest.
			rest := logic.LinearForm{Coeffs: lo.OmitByKeys(diff.Coeffs, []string{name}), Constant: diff.Constant}
			return i, name, rest.Scaled(-coeff).Term()
		}
	}
	return -1, "", logic.Term{}
}

// reconstruct extends a subgoal model with the eliminated variables. Later
// eliminations may appear in the right-hand sides of earlier ones, so the
// chain is replayed in reverse. Variables the subgoal left unconstrained
// default to zero.
func reconstruct(eliminations []elimination) Converter {
	return func(_ int, model logic.Model) logic.Model {
		model = model.Clone()
		for i := len(eliminations) - 1; i >= 0; i-- {
			eliminated := eliminations[i]
			for _, name := range logic.VarNames(eliminated.rhs) {
				if _, ok := model[name]; !ok {
					model[name] = logic.IntVal(0)
				}
			}
			value, err := eliminated.rhs.Eval(model)
			if err != nil {
				log.Panicf("cannot reconstruct %q: %v", eliminated.name, err)
			}
			model[eliminated.name] = value
		}
		return model
	}
}
