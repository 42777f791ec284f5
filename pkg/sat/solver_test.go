package sat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiniSolverKnownInstances(t *testing.T) {
	solver := NewGiniSolver()

	t.Run("forced assignment", func(t *testing.T) {
		cnf := CNF{Variables: 2, Clauses: [][]int64{{1, 2}, {-1}}}

		solution, err := solver.Solve(context.Background(), cnf)

		require.Nil(t, err)
		require.NotNil(t, solution)
		assert.Contains(t, solution, int64(-1))
		assert.Contains(t, solution, int64(2))
	})

	t.Run("unsatisfiable", func(t *testing.T) {
		cnf := CNF{Variables: 1, Clauses: [][]int64{{1}, {-1}}}

		solution, err := solver.Solve(context.Background(), cnf)

		require.Nil(t, err)
		assert.Nil(t, solution)
	})

	t.Run("empty formula", func(t *testing.T) {
		solution, err := solver.Solve(context.Background(), CNF{Variables: 2})

		require.Nil(t, err)
		assert.NotNil(t, solution)
		assert.Len(t, solution, 2, "every variable gets a value")
	})
}

func TestGiniSolverRandomInstances(t *testing.T) {
	solver := NewGiniSolver()

	for i := 0; i < 50; i++ {
		cnf := GenerateCNF(15, 40)

		solution, err := solver.Solve(context.Background(), cnf)

		require.Nil(t, err)
		if solution != nil {
			assert.True(t, CheckSolution(cnf, solution))
		}
	}
}

func TestGiniSolverCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The solve may still win the race on a tiny instance, so only the error
	// identity is pinned down, not that cancellation is observed.
	solution, err := NewGiniSolver().Solve(ctx, GenerateCNF(60, 400))

	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, solution)
	}
}
