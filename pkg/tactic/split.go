package tactic

import (
	"context"
	"slices"

	"github.com/angr/angr-z3/pkg/logic"
)

type splitOrTactic struct{}

// NewSplitOr returns the case-split leaf: the first disjunctive assertion is
// replaced by one of its disjuncts per subgoal, all other assertions
// retained. It fails when the goal holds no disjunction.
func NewSplitOr() Tactic {
	return &splitOrTactic{}
}

func (t *splitOrTactic) Name() string { return "split-or" }

func (t *splitOrTactic) Apply(_ context.Context, g *Goal) Result {
	assertions := g.Formulas()
	index := slices.IndexFunc(assertions, func(assertion logic.Term) bool {
		return assertion.Op() == logic.OpOr
	})
	if index < 0 {
		return Failed(&FailureError{Reason: "no disjunction to split"})
	}

	disjuncts := assertions[index].Args()
	subgoals := make([]*Goal, 0, len(disjuncts))
	for _, disjunct := range disjuncts {
		caseAssertions := append([]logic.Term(nil), assertions...)
		caseAssertions[index] = disjunct
		subgoals = append(subgoals, g.Child(caseAssertions))
	}

	// A model of any case already satisfies the disjunction it came from.
	return Decomposed(subgoals, IdentityConverter)
}
