package sat

import "context"

// Solver decides CNF instances. Solve returns a solution if the instance is
// satisfiable, else a nil solution (both with a nil error). The context
// cancels long-running backends.
type Solver interface {
	Solve(ctx context.Context, cnf CNF) (Solution, error)
}
