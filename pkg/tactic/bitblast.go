package tactic

import (
	"context"
	"fmt"
	"strings"

	"github.com/angr/angr-z3/pkg/logic"
	"github.com/angr/angr-z3/pkg/sat"
)

// cnfEncoder performs a Tseitin transformation of propositional terms into
// clauses, mapping goal variables to DIMACS variables and allocating fresh
// auxiliary variables for compound subterms.
type cnfEncoder struct {
	vars    map[string]int64
	names   map[int64]string
	next    int64
	clauses [][]int64
}

const auxPrefix = "k!"

func newCNFEncoder() *cnfEncoder {
	return &cnfEncoder{
		vars:  make(map[string]int64),
		names: make(map[int64]string),
		next:  1,
	}
}

func (e *cnfEncoder) variableFor(name string) int64 {
	if v, ok := e.vars[name]; ok {
		return v
	}
	v := e.next
	e.next++
	e.vars[name] = v
	e.names[v] = name
	return v
}

func (e *cnfEncoder) fresh() int64 {
	v := e.next
	e.next++
	e.names[v] = fmt.Sprintf("%s%d", auxPrefix, v)
	return v
}

// literal returns a CNF literal equisatisfiable with the term, emitting the
// defining clauses of any auxiliary variable it allocates.
func (e *cnfEncoder) literal(t logic.Term) (int64, error) {
	switch t.Op() {
	case logic.OpVar:
		return e.variableFor(t.Name()), nil
	case logic.OpBool:
		v := e.fresh()
		if t.Truth() {
			e.clauses = append(e.clauses, []int64{v})
		} else {
			e.clauses = append(e.clauses, []int64{-v})
		}
		return v, nil
	case logic.OpNot:
		inner, err := e.literal(t.Args()[0])
		if err != nil {
			return 0, err
		}
		return -inner, nil
	case logic.OpAnd, logic.OpOr:
		literals := make([]int64, 0, len(t.Args()))
		for _, arg := range t.Args() {
			l, err := e.literal(arg)
			if err != nil {
				return 0, err
			}
			literals = append(literals, l)
		}
		v := e.fresh()
		if t.Op() == logic.OpAnd {
			// v <-> l1 & ... & ln
			long := []int64{v}
			for _, l := range literals {
				e.clauses = append(e.clauses, []int64{-v, l})
				long = append(long, -l)
			}
			e.clauses = append(e.clauses, long)
		} else {
			// v <-> l1 | ... | ln
			long := []int64{-v}
			for _, l := range literals {
				e.clauses = append(e.clauses, []int64{v, -l})
				long = append(long, l)
			}
			e.clauses = append(e.clauses, long)
		}
		return v, nil
	}
	return 0, fmt.Errorf("operator %v is not propositional", t.Op())
}

func (e *cnfEncoder) assert(t logic.Term) error {
	literal, err := e.literal(t)
	if err != nil {
		return err
	}
	e.clauses = append(e.clauses, []int64{literal})
	return nil
}

func (e *cnfEncoder) cnf() sat.CNF {
	return sat.CNF{Variables: uint64(e.next - 1), Clauses: e.clauses}
}

// model translates a backend solution back to an assignment of the goal's
// propositional variables, dropping auxiliaries.
func (e *cnfEncoder) model(solution sat.Solution) logic.Model {
	assigned := make(map[int64]bool, len(solution))
	for _, literal := range solution {
		if literal > 0 {
			assigned[literal] = true
		} else {
			assigned[-literal] = false
		}
	}
	model := make(logic.Model, len(e.vars))
	for name, v := range e.vars {
		model[name] = logic.BoolVal(assigned[v])
	}
	return model
}

type bitBlastTactic struct{}

// NewBitBlast returns the clausification leaf: a propositional goal is
// reduced to an equisatisfiable clausal goal over the original variables
// plus Tseitin auxiliaries. The converter strips the auxiliaries from any
// subgoal model.
func NewBitBlast() Tactic {
	return &bitBlastTactic{}
}

func (t *bitBlastTactic) Name() string { return "bit-blast" }

func (t *bitBlastTactic) Apply(_ context.Context, g *Goal) Result {
	encoder := newCNFEncoder()
	for _, assertion := range g.Formulas() {
		if err := encoder.assert(assertion); err != nil {
			return Failed(&FailureError{Reason: err.Error()})
		}
	}

	clauses := make([]logic.Term, 0, len(encoder.clauses))
	for _, clause := range encoder.clauses {
		literals := make([]logic.Term, 0, len(clause))
		for _, literal := range clause {
			name := encoder.names[abs(literal)]
			if literal > 0 {
				literals = append(literals, logic.Var(name))
			} else {
				literals = append(literals, logic.Not(logic.Var(name)))
			}
		}
		if len(literals) == 1 {
			clauses = append(clauses, literals[0])
		} else {
			clauses = append(clauses, logic.Or(literals...))
		}
	}

	conv := func(_ int, model logic.Model) logic.Model {
		stripped := make(logic.Model, len(model))
		for name, value := range model {
			if !strings.HasPrefix(name, auxPrefix) {
				stripped[name] = value
			}
		}
		return stripped
	}
	return Decomposed([]*Goal{g.Child(clauses)}, conv)
}

type satTactic struct {
	solver sat.Solver
}

// NewSAT returns the propositional decision leaf: the goal is Tseitin-encoded
// and handed to a SAT backend. Non-propositional goals fail; backend faults
// are fatal.
func NewSAT(solver sat.Solver) Tactic {
	return &satTactic{solver: solver}
}

func (t *satTactic) Name() string { return "sat" }

func (t *satTactic) Apply(ctx context.Context, g *Goal) Result {
	if g.IsDecidedSat() {
		return Decomposed(nil, IdentityConverter)
	}

	encoder := newCNFEncoder()
	for _, assertion := range g.Formulas() {
		if err := encoder.assert(assertion); err != nil {
			return Failed(&FailureError{Reason: err.Error()})
		}
	}

	solution, err := t.solver.Solve(ctx, encoder.cnf())
	if err != nil {
		if ctx.Err() != nil {
			return Failed(ErrTimeout)
		}
		return Failed(err)
	}
	if solution == nil {
		return SolvedUnsat(&Certificate{Reason: "propositional core is unsatisfiable"})
	}
	return SolvedSat(encoder.model(solution))
}

func abs(literal int64) int64 {
	if literal < 0 {
		return -literal
	}
	return literal
}
