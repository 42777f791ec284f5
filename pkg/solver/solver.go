// Package solver wraps a tactic as an incremental add/check/model interface
// over a single implicit goal of accumulated assertions.
package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/angr/angr-z3/pkg/logic"
	"github.com/angr/angr-z3/pkg/tactic"
	"github.com/samber/lo"
)

type Status int

const (
	Unknown Status = iota
	Sat
	Unsat
)

func (s Status) String() string {
	switch s {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	}
	return "unknown"
}

// Solver accumulates assertions and decides them with the wrapped tactic on
// Check. Push/Pop scope the assertion stack. A Solver is not safe for
// concurrent use.
type Solver struct {
	tactic tactic.Tactic
	scopes [][]logic.Term
	status Status
	model  logic.Model
	reason string
}

func New(t tactic.Tactic) *Solver {
	return &Solver{
		tactic: t,
		scopes: make([][]logic.Term, 1),
	}
}

// Add asserts formulas into the current scope and invalidates any previous
// Check outcome.
func (s *Solver) Add(assertions ...logic.Term) {
	top := len(s.scopes) - 1
	s.scopes[top] = append(s.scopes[top], assertions...)
	s.invalidate()
}

// Push opens a new assertion scope.
func (s *Solver) Push() {
	s.scopes = append(s.scopes, nil)
}

// Pop discards the most recent scope and every assertion added within it.
func (s *Solver) Pop() error {
	if len(s.scopes) == 1 {
		return errors.New("pop without matching push")
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
	s.invalidate()
	return nil
}

// Assertions returns the accumulated assertions, outermost scope first.
func (s *Solver) Assertions() []logic.Term {
	return lo.Flatten(s.scopes)
}

func (s *Solver) invalidate() {
	s.status = Unknown
	s.model = nil
	s.reason = ""
}

// Check applies the tactic to the accumulated assertions. An empty subgoal
// list means the goal holds; a remaining goal pinned to the literal false
// means it cannot; anything else is unknown.
func (s *Solver) Check(ctx context.Context) (Status, error) {
	s.invalidate()
	assertions := s.Assertions()
	goal := tactic.NewGoal(assertions...)

	res := s.tactic.Apply(ctx, goal)
	switch {
	case res.IsSat():
		s.status = Sat
		s.model = completeModel(assertions, res.Model())
	case res.IsUnsat():
		s.status = Unsat
		s.reason = res.Certificate().String()
	case res.IsFailure():
		err := res.Err()
		if !tactic.IsRecoverable(err) {
			return Unknown, err
		}
		s.reason = err.Error()
	default:
		subgoals := res.Subgoals()
		switch {
		case len(subgoals) == 0:
			s.status = Sat
			s.model = completeModel(assertions, res.ConvertModel(0, logic.Model{}))
		case !lo.SomeBy(subgoals, func(g *tactic.Goal) bool { return !g.IsDecidedUnsat() }):
			s.status = Unsat
		default:
			if _, solved, ok := lo.FindIndexOf(subgoals, func(g *tactic.Goal) bool { return g.IsDecidedSat() }); ok {
				s.status = Sat
				s.model = completeModel(assertions, res.ConvertModel(solved, logic.Model{}))
			} else {
				s.reason = "tactic did not decide the goal"
			}
		}
	}
	return s.status, nil
}

// Model returns a model for the accumulated assertions. It is defined only
// after a Check that returned Sat.
func (s *Solver) Model() (logic.Model, error) {
	if s.status != Sat {
		return nil, fmt.Errorf("no model: last check was %v", s.status)
	}
	return s.model.Clone(), nil
}

// Reason explains the most recent Unknown or Unsat outcome.
func (s *Solver) Reason() string {
	return s.reason
}

// completeModel assigns a sort-appropriate default to every assertion
// variable the tactic chain left unconstrained, so the returned model is
// total over the original goal.
func completeModel(assertions []logic.Term, model logic.Model) logic.Model {
	model = model.Clone()
	for name, sort := range inferSorts(assertions) {
		if _, ok := model[name]; ok {
			continue
		}
		if sort == logic.SortBool {
			model[name] = logic.BoolVal(false)
		} else {
			model[name] = logic.IntVal(0)
		}
	}
	return model
}

func inferSorts(assertions []logic.Term) map[string]logic.Sort {
	sorts := make(map[string]logic.Sort)
	var walk func(t logic.Term, sort logic.Sort)
	walk = func(t logic.Term, sort logic.Sort) {
		switch t.Op() {
		case logic.OpVar:
			sorts[t.Name()] = sort
		case logic.OpAnd, logic.OpOr, logic.OpNot:
			for _, arg := range t.Args() {
				walk(arg, logic.SortBool)
			}
		case logic.OpLt, logic.OpLe, logic.OpEq, logic.OpGe, logic.OpGt,
			logic.OpAdd, logic.OpMul, logic.OpNeg:
			for _, arg := range t.Args() {
				walk(arg, logic.SortInt)
			}
		}
	}
	for _, assertion := range assertions {
		walk(assertion, logic.SortBool)
	}
	return sorts
}
