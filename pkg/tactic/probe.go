package tactic

import (
	"fmt"

	"github.com/angr/angr-z3/pkg/logic"
	"github.com/samber/lo"
)

// Probe measures a goal without mutating it. Numeric probes yield arbitrary
// values; boolean probes yield 0 or 1, with any non-zero value counting as
// true. Evaluation is eager and deterministic for a given goal content.
type Probe struct {
	name string
	eval func(g *Goal) float64
}

func NewProbe(name string, eval func(g *Goal) float64) Probe {
	return Probe{name: name, eval: eval}
}

func (p Probe) Name() string { return p.name }

func (p Probe) Eval(g *Goal) float64 { return p.eval(g) }

// True interprets the probe value as a boolean.
func (p Probe) True(g *Goal) bool { return p.eval(g) != 0 }

// Val is the constant probe.
func Val(value float64) Probe {
	return NewProbe(fmt.Sprintf("%v", value), func(_ *Goal) float64 { return value })
}

// NumExprs counts the goal's assertions.
func NumExprs() Probe {
	return NewProbe("num-exprs", func(g *Goal) float64 { return float64(g.Size()) })
}

// NumConsts counts the distinct uninterpreted constants (free variables) of
// the goal.
func NumConsts() Probe {
	return NewProbe("num-consts", func(g *Goal) float64 { return float64(len(g.Vars())) })
}

// Depth reports how many tactic applications produced the goal.
func Depth() Probe {
	return NewProbe("depth", func(g *Goal) float64 { return float64(g.Depth()) })
}

// Size totals the term nodes of all assertions.
func Size() Probe {
	return NewProbe("size", func(g *Goal) float64 {
		return float64(lo.SumBy(g.Formulas(), func(assertion logic.Term) int { return assertion.Size() }))
	})
}

// IsPropositional reports whether every assertion is purely propositional.
func IsPropositional() Probe {
	return NewProbe("is-propositional", func(g *Goal) float64 {
		propositional := !lo.SomeBy(g.Formulas(), func(assertion logic.Term) bool { return !assertion.IsPropositional() })
		return boolValue(propositional)
	})
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (p Probe) binary(op string, q Probe, compare func(a, b float64) bool) Probe {
	name := fmt.Sprintf("(%s %s %s)", op, p.name, q.name)
	return NewProbe(name, func(g *Goal) float64 {
		return boolValue(compare(p.eval(g), q.eval(g)))
	})
}

func (p Probe) Lt(q Probe) Probe { return p.binary("<", q, func(a, b float64) bool { return a < b }) }
func (p Probe) Le(q Probe) Probe { return p.binary("<=", q, func(a, b float64) bool { return a <= b }) }
func (p Probe) Gt(q Probe) Probe { return p.binary(">", q, func(a, b float64) bool { return a > b }) }
func (p Probe) Ge(q Probe) Probe { return p.binary(">=", q, func(a, b float64) bool { return a >= b }) }
func (p Probe) Eq(q Probe) Probe { return p.binary("=", q, func(a, b float64) bool { return a == b }) }
func (p Probe) Ne(q Probe) Probe { return p.binary("!=", q, func(a, b float64) bool { return a != b }) }

func (p Probe) And(q Probe) Probe {
	return p.binary("and", q, func(a, b float64) bool { return a != 0 && b != 0 })
}

func (p Probe) Or(q Probe) Probe {
	return p.binary("or", q, func(a, b float64) bool { return a != 0 || b != 0 })
}

func (p Probe) Not() Probe {
	name := fmt.Sprintf("(not %s)", p.name)
	return NewProbe(name, func(g *Goal) float64 { return boolValue(p.eval(g) == 0) })
}
