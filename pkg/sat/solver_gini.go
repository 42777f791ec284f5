package sat

import (
	"context"
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

type giniSolver struct{}

// NewGiniSolver returns the in-process backend built on the gini CDCL solver.
func NewGiniSolver() Solver {
	return &giniSolver{}
}

func (solver *giniSolver) Solve(ctx context.Context, cnf CNF) (Solution, error) {
	g := gini.New()
	for _, clause := range cnf.Clauses {
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(int(literal)))
		}
		g.Add(z.LitNull)
	}

	outcomes := make(chan int, 1)
	go func() {
		outcomes <- g.Solve()
	}()

	var outcome int
	select {
	case outcome = <-outcomes:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	switch outcome {
	case unsatisfiable:
		return nil, nil
	case satisfiable:
		solution := make(Solution, 0, cnf.Variables)
		for variable := uint64(1); variable <= cnf.Variables; variable++ {
			literal := z.Dimacs2Lit(int(variable))
			if g.Value(literal) {
				solution = append(solution, int64(variable))
			} else {
				solution = append(solution, -int64(variable))
			}
		}
		return solution, nil
	}
	return nil, fmt.Errorf("gini returned unexpected outcome %d", outcome)
}
