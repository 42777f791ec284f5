package tactic

import (
	"fmt"
	"slices"

	"github.com/angr/angr-z3/pkg/sat"
	"github.com/samber/lo"
)

// The registries map names to builders so that pipelines can be assembled
// from configuration. Resolution happens once, when a tactic is built, never
// during Apply.
var tacticBuilders = map[string]func() Tactic{
	"skip":      Skip,
	"fail":      Fail,
	"simplify":  NewSimplify,
	"solve-eqs": NewSolveEqs,
	"split-or":  NewSplitOr,
	"bit-blast": NewBitBlast,
	"sat":       func() Tactic { return NewSAT(sat.NewGiniSolver()) },
	"default":   Default,
	"propagate-values": func() Tactic {
		configured, err := With(NewSimplify(), Params{"propagate_values": true})
		if err != nil {
			panic(err)
		}
		return configured
	},
}

var probeBuilders = map[string]func() Probe{
	"num-exprs":        NumExprs,
	"num-consts":       NumConsts,
	"depth":            Depth,
	"size":             Size,
	"is-propositional": IsPropositional,
}

// Default is the general-purpose pipeline: simplification and equation
// elimination to a fixpoint, then a SAT decision whenever the residue is
// purely propositional.
func Default() Tactic {
	return AndThen(
		Repeat(AndThen(NewSimplify(), NewSolveEqs()), 8),
		When(IsPropositional(), NewSAT(sat.NewGiniSolver())),
	)
}

// LookupTactic builds the named tactic.
func LookupTactic(name string) (Tactic, error) {
	builder, ok := tacticBuilders[name]
	if !ok {
		return nil, fmt.Errorf("unknown tactic %q (have: %v)", name, TacticNames())
	}
	return builder(), nil
}

// LookupProbe builds the named probe.
func LookupProbe(name string) (Probe, error) {
	builder, ok := probeBuilders[name]
	if !ok {
		return Probe{}, fmt.Errorf("unknown probe %q (have: %v)", name, ProbeNames())
	}
	return builder(), nil
}

// Build resolves a tactic by name and binds a parameter bag to it. An empty
// bag skips the configuration step, so non-configurable tactics remain
// reachable by name.
func Build(name string, params Params) (Tactic, error) {
	t, err := LookupTactic(name)
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return t, nil
	}
	return With(t, params)
}

func TacticNames() []string {
	names := lo.Keys(tacticBuilders)
	slices.Sort(names)
	return names
}

func ProbeNames() []string {
	names := lo.Keys(probeBuilders)
	slices.Sort(names)
	return names
}
