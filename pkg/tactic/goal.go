// Package tactic implements a combinator engine over goals: sets of
// assertions transformed by tactics into solved results or simpler subgoals,
// with model reconstruction back to the original goal. Combinators treat
// assertions as opaque values; only the built-in leaf tactics inspect them.
package tactic

import (
	"strings"

	"github.com/angr/angr-z3/pkg/logic"
	"github.com/samber/lo"
)

// Goal is an ordered sequence of assertions plus a depth counter recording
// how many tactic applications produced it. Goals are value-like: tactics
// never mutate their input goal, they derive children.
type Goal struct {
	assertions []logic.Term
	depth      int
}

func NewGoal(assertions ...logic.Term) *Goal {
	return &Goal{assertions: append([]logic.Term(nil), assertions...)}
}

// Assert appends assertions to the goal. Only the owner of a goal may call
// this, before handing the goal to a tactic.
func (g *Goal) Assert(assertions ...logic.Term) {
	g.assertions = append(g.assertions, assertions...)
}

// Formulas returns a copy of the goal's assertions, in order.
func (g *Goal) Formulas() []logic.Term {
	return append([]logic.Term(nil), g.assertions...)
}

func (g *Goal) Size() int  { return len(g.assertions) }
func (g *Goal) Depth() int { return g.depth }

// IsDecidedSat reports whether the goal is trivially satisfiable: no
// assertions remain.
func (g *Goal) IsDecidedSat() bool {
	return len(g.assertions) == 0
}

// IsDecidedUnsat reports whether the goal contains the literal false and is
// therefore terminal.
func (g *Goal) IsDecidedUnsat() bool {
	return lo.SomeBy(g.assertions, func(assertion logic.Term) bool { return assertion.IsFalse() })
}

// Equal reports structural equality of the assertion sequences, in order.
// This is the fixpoint test used by Repeat.
func (g *Goal) Equal(other *Goal) bool {
	if len(g.assertions) != len(other.assertions) {
		return false
	}
	for i := range g.assertions {
		if !g.assertions[i].Equal(other.assertions[i]) {
			return false
		}
	}
	return true
}

// Child derives a goal holding the given assertions, one split deeper.
func (g *Goal) Child(assertions []logic.Term) *Goal {
	return &Goal{assertions: append([]logic.Term(nil), assertions...), depth: g.depth + 1}
}

func (g *Goal) Clone() *Goal {
	return &Goal{assertions: append([]logic.Term(nil), g.assertions...), depth: g.depth}
}

// Vars returns the free variables of the goal's assertions, in first-seen
// order.
func (g *Goal) Vars() []string {
	return logic.VarNames(g.assertions...)
}

func (g *Goal) String() string {
	rendered := lo.Map(g.assertions, func(assertion logic.Term, _ int) string { return assertion.String() })
	return "[" + strings.Join(rendered, ", ") + "]"
}
