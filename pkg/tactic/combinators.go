package tactic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angr/angr-z3/pkg/logic"
	"github.com/samber/lo"
)

// AndThen sequences tactics: each one is applied to every subgoal produced
// by the previous one. A branch decided Sat short-circuits with the model
// converted through that branch's chain; a branch decided Unsat is dropped,
// and the goal is Unsat only once every branch has been refuted. The first
// failure fails the whole sequence.
func AndThen(tactics ...Tactic) Tactic {
	switch len(tactics) {
	case 0:
		return Skip()
	case 1:
		return tactics[0]
	}
	combined := tactics[0]
	for _, t := range tactics[1:] {
		combined = &andThen{first: combined, second: t}
	}
	return combined
}

type andThen struct {
	first, second Tactic
}

func (t *andThen) Name() string {
	return fmt.Sprintf("(then %s %s)", t.first.Name(), t.second.Name())
}

func (t *andThen) Apply(ctx context.Context, g *Goal) Result {
	res := t.first.Apply(ctx, g)
	if !res.IsDecomposed() {
		return res
	}
	return continueOnto(ctx, res, t.second)
}

type branchEntry struct {
	parent int
	child  int
	conv   Converter
}

// continueOnto applies next to every subgoal of a decomposition and merges
// the outcomes, composing model converters branch by branch.
func continueOnto(ctx context.Context, res Result, next Tactic) Result {
	subgoals := res.Subgoals()
	if len(subgoals) == 0 {
		return res
	}

	var combined []*Goal
	var entries []branchEntry
	var refutations []*Certificate

	for i, subgoal := range subgoals {
		sres := next.Apply(ctx, subgoal)
		switch {
		case sres.IsFailure():
			// First failure propagates, recoverable or not.
			return sres
		case sres.IsSat():
			return SolvedSat(res.ConvertModel(i, sres.Model()))
		case sres.IsUnsat():
			refutations = append(refutations, sres.Certificate())
		default: // decomposed
			children := sres.Subgoals()
			if len(children) == 0 {
				// This case holds trivially, so the whole goal is feasible.
				branch, feasible := i, sres
				return Decomposed(nil, func(_ int, model logic.Model) logic.Model {
					return res.ConvertModel(branch, feasible.ConvertModel(0, model))
				})
			}
			for j, child := range children {
				combined = append(combined, child)
				entries = append(entries, branchEntry{parent: i, child: j, conv: sres.conv})
			}
		}
	}

	if len(combined) == 0 {
		return SolvedUnsat(&Certificate{Reason: "all cases refuted", Cases: refutations})
	}

	conv := func(subgoal int, model logic.Model) logic.Model {
		entry := entries[subgoal]
		if entry.conv != nil {
			model = entry.conv(entry.child, model)
		}
		return res.ConvertModel(entry.parent, model)
	}
	return Decomposed(combined, conv)
}

// OrElse applies tactics in order to the pristine goal until one does not
// fail. Only recoverable failures (tactic failure, timeout) trigger the next
// alternative; fatal errors surface immediately.
func OrElse(tactics ...Tactic) Tactic {
	if len(tactics) == 0 {
		return Skip()
	}
	return &orElse{alternatives: tactics}
}

type orElse struct {
	alternatives []Tactic
}

func (t *orElse) Name() string {
	names := lo.Map(t.alternatives, func(alt Tactic, _ int) string { return alt.Name() })
	return fmt.Sprintf("(or-else %s)", strings.Join(names, " "))
}

func (t *orElse) Apply(ctx context.Context, g *Goal) Result {
	var last Result
	for _, alternative := range t.alternatives {
		last = alternative.Apply(ctx, g.Clone())
		if !last.IsFailure() || !IsRecoverable(last.Err()) {
			return last
		}
	}
	return last
}

// Repeat applies the tactic until it no longer changes the goal or until
// maxIter applications down any branch. A non-positive maxIter means
// unbounded. Hitting the bound returns the goals reached so far, not a
// failure; a recoverable failure of the inner tactic likewise stops the
// iteration with the goal unchanged.
func Repeat(t Tactic, maxIter int) Tactic {
	return &repeat{inner: t, budget: maxIter}
}

type repeat struct {
	inner  Tactic
	budget int
}

func (t *repeat) Name() string {
	return fmt.Sprintf("(repeat %s)", t.inner.Name())
}

func (t *repeat) Apply(ctx context.Context, g *Goal) Result {
	res := t.inner.Apply(ctx, g)
	if res.IsFailure() {
		if IsRecoverable(res.Err()) && !errors.Is(res.Err(), ErrTimeout) {
			return Decomposed([]*Goal{g.Clone()}, IdentityConverter)
		}
		return res
	}
	if !res.IsDecomposed() {
		return res
	}
	subgoals := res.Subgoals()
	if len(subgoals) == 1 && subgoals[0].Equal(g) {
		// Fixpoint reached: the application was a no-op.
		return res
	}
	if t.budget == 1 {
		return res
	}
	next := &repeat{inner: t.inner}
	if t.budget > 1 {
		next.budget = t.budget - 1
	}
	return continueOnto(ctx, res, next)
}

// TryFor runs the tactic under a time budget. On expiry it fails with
// ErrTimeout and the original goal stays untouched, since the tactic only
// ever saw a copy.
func TryFor(t Tactic, timeout time.Duration) Tactic {
	return &tryFor{inner: t, timeout: timeout}
}

type tryFor struct {
	inner   Tactic
	timeout time.Duration
}

func (t *tryFor) Name() string {
	return fmt.Sprintf("(try-for %s %v)", t.inner.Name(), t.timeout)
}

func (t *tryFor) Apply(ctx context.Context, g *Goal) Result {
	budget, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	results := make(chan Result, 1)
	go func() {
		results <- t.inner.Apply(budget, g.Clone())
	}()

	select {
	case res := <-results:
		if res.IsFailure() && (errors.Is(res.Err(), context.DeadlineExceeded) || errors.Is(res.Err(), context.Canceled)) {
			return Failed(ErrTimeout)
		}
		return res
	case <-budget.Done():
		return Failed(ErrTimeout)
	}
}

// Cond branches on a probe: the first tactic runs when the probe is true on
// the goal, the second otherwise.
func Cond(p Probe, onTrue, onFalse Tactic) Tactic {
	name := fmt.Sprintf("(if %s %s %s)", p.Name(), onTrue.Name(), onFalse.Name())
	return New(name, func(ctx context.Context, g *Goal) Result {
		if p.True(g) {
			return onTrue.Apply(ctx, g)
		}
		return onFalse.Apply(ctx, g)
	})
}

// When runs the tactic only when the probe is true; otherwise it skips.
func When(p Probe, t Tactic) Tactic {
	return Cond(p, t, Skip())
}

// FailIf fails when the probe is true and otherwise behaves like Skip, so
// that Cond(p, t, s) is OrElse(AndThen(FailIf(p.Not()), t), s).
func FailIf(p Probe) Tactic {
	name := fmt.Sprintf("(fail-if %s)", p.Name())
	return New(name, func(_ context.Context, g *Goal) Result {
		if p.True(g) {
			return Failed(&FailureError{Reason: fmt.Sprintf("probe %s holds", p.Name())})
		}
		return Decomposed([]*Goal{g.Clone()}, IdentityConverter)
	})
}

// With binds a parameter bag to a tactic. Tactics that accept no options, or
// bags with unrecognized keys, are rejected here rather than at apply time.
func With(t Tactic, params Params) (Tactic, error) {
	configurable, ok := t.(Configurable)
	if !ok {
		return nil, &ConfigError{Tactic: t.Name(), Detail: "tactic accepts no options"}
	}
	return configurable.Configure(params)
}

// Configurable is implemented by tactics that accept a parameter bag.
// Configure validates the bag and returns a configured copy.
type Configurable interface {
	Tactic
	Configure(params Params) (Tactic, error)
}
