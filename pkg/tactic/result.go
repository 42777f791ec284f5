package tactic

import (
	"strings"

	"github.com/angr/angr-z3/pkg/logic"
	"github.com/samber/lo"
)

// Converter lifts a model of the i-th subgoal of a decomposition back to a
// model of the goal the decomposition was produced from. Converters compose
// along the subgoal tree; composition is associative because each link only
// rewrites the model it is handed.
type Converter func(subgoal int, model logic.Model) logic.Model

// IdentityConverter returns the model unchanged for every subgoal.
func IdentityConverter(_ int, model logic.Model) logic.Model {
	return model
}

// Certificate records why a goal is unsatisfiable: a leaf reason, or one
// sub-certificate per refuted case of a split.
type Certificate struct {
	Reason string
	Cases  []*Certificate
}

func (c *Certificate) String() string {
	if c == nil {
		return "unsat"
	}
	if len(c.Cases) == 0 {
		return c.Reason
	}
	rendered := lo.Map(c.Cases, func(sub *Certificate, _ int) string { return sub.String() })
	return c.Reason + " {" + strings.Join(rendered, "; ") + "}"
}

type resultKind uint8

const (
	kindSat resultKind = iota
	kindUnsat
	kindDecomposed
	kindFailed
)

// Result is the outcome of applying a tactic to a goal: a model, a
// refutation, a decomposition into subgoals with a model converter, or a
// failure. Failure is an ordinary value, not a panic; only the recoverable
// kinds (tactic failure, timeout) participate in combinator branching.
type Result struct {
	kind     resultKind
	model    logic.Model
	cert     *Certificate
	subgoals []*Goal
	conv     Converter
	err      error
}

func SolvedSat(model logic.Model) Result {
	return Result{kind: kindSat, model: model}
}

func SolvedUnsat(cert *Certificate) Result {
	return Result{kind: kindUnsat, cert: cert}
}

// Decomposed wraps subgoals and their converter. Zero subgoals is the
// distinguished solved/feasible marker: the goal holds trivially and a model
// is reconstructed by converting the empty model.
func Decomposed(subgoals []*Goal, conv Converter) Result {
	if conv == nil {
		conv = IdentityConverter
	}
	return Result{kind: kindDecomposed, subgoals: subgoals, conv: conv}
}

func Failed(err error) Result {
	return Result{kind: kindFailed, err: err}
}

func (r Result) IsSat() bool        { return r.kind == kindSat }
func (r Result) IsUnsat() bool      { return r.kind == kindUnsat }
func (r Result) IsDecomposed() bool { return r.kind == kindDecomposed }
func (r Result) IsFailure() bool    { return r.kind == kindFailed }

// Model returns the satisfying model of a Sat result.
func (r Result) Model() logic.Model { return r.model }

// Certificate returns the refutation of an Unsat result; may be nil.
func (r Result) Certificate() *Certificate { return r.cert }

// Subgoals returns the decomposition's subgoals. The slice must not be
// mutated.
func (r Result) Subgoals() []*Goal { return r.subgoals }

// ConvertModel lifts a model of the i-th subgoal to the decomposed goal.
func (r Result) ConvertModel(subgoal int, model logic.Model) logic.Model {
	if r.conv == nil {
		return model
	}
	return r.conv(subgoal, model)
}

func (r Result) Err() error { return r.err }
